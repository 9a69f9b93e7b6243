package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customerrors "github.com/axellelanca/catalog/internal/errors"
	"github.com/axellelanca/catalog/internal/logger"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "John.Doe@example.com", NormalizeEmail(" John.Doe@EXAMPLE.com "))
	assert.Equal(t, "no-at-sign", NormalizeEmail("no-at-sign"))
}

func TestAccountService_Create(t *testing.T) {
	f := newFixture(t)
	svc := NewAccountService(f.users, testHasher, logger.Discard())
	ctx := context.Background()

	user, err := svc.CreateAccount(ctx, CreateAccountInput{Email: "New@Example.COM", Password: "pw", FirstName: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "New@example.com", user.Email)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsSuperuser)
	assert.NotEqual(t, "pw", user.Password)

	_, err = svc.CreateAccount(ctx, CreateAccountInput{Email: "New@example.com", Password: "pw"})
	var verr *customerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "email")

	_, err = svc.CreateAccount(ctx, CreateAccountInput{Email: "not-an-email", Password: "pw"})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Enter a valid email address."}, verr.Fields["email"])
}

func TestAccountService_CreateSuperuserWithoutEmail(t *testing.T) {
	svc := NewAccountService(newFixture(t).users, testHasher, logger.Discard())
	_, err := svc.CreateSuperuser(context.Background(), CreateAccountInput{Password: "pw"})
	assert.ErrorIs(t, err, customerrors.ErrMissingEmail)
}

func TestAccountService_NonStaffIsHidden(t *testing.T) {
	f := newFixture(t)
	customer := f.user(t, "customer@example.com", "pw", false, true)
	svc := NewAccountService(f.users, testHasher, logger.Discard())

	_, err := svc.GetAccount(context.Background(), customer.ID)
	assert.ErrorIs(t, err, customerrors.ErrNotFound)
}

func TestAccountService_Update(t *testing.T) {
	f := newFixture(t)
	admin := f.user(t, "a@example.com", "pw", true, true)
	svc := NewAccountService(f.users, testHasher, logger.Discard())

	updated, err := svc.UpdateAccount(context.Background(), admin.ID, UpdateAccountInput{IsActive: ptr(false), LastName: ptr("Ruiz")})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Ruiz", updated.LastName)

	stored, err := f.users.GetUserByID(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestAccountService_DeleteSelf(t *testing.T) {
	f := newFixture(t)
	admin := f.user(t, "a@example.com", "pw", true, true)
	other := f.user(t, "b@example.com", "pw", true, true)
	svc := NewAccountService(f.users, testHasher, logger.Discard())
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteAccount(ctx, admin, admin.ID), customerrors.ErrSelfDelete)
	require.NoError(t, svc.DeleteAccount(ctx, admin, other.ID))

	_, err := svc.GetAccount(ctx, other.ID)
	assert.ErrorIs(t, err, customerrors.ErrNotFound)
}

func TestAccountService_ResetPassword(t *testing.T) {
	f := newFixture(t)
	actor := f.user(t, "actor@example.com", "actor-pw", true, true)
	target := f.user(t, "target@example.com", "target-pw", true, true)
	svc := NewAccountService(f.users, testHasher, logger.Discard())
	ctx := context.Background()

	t.Run("wrong current password is checked first", func(t *testing.T) {
		err := svc.ResetPassword(ctx, actor, target.ID, "nope", "new-pw")
		assert.ErrorIs(t, err, customerrors.ErrIncorrectPassword)
	})

	t.Run("cannot change someone else's password", func(t *testing.T) {
		err := svc.ResetPassword(ctx, actor, target.ID, "actor-pw", "new-pw")
		assert.ErrorIs(t, err, customerrors.ErrNotOwner)

		stored, err := f.users.GetUserByID(ctx, target.ID)
		require.NoError(t, err)
		assert.True(t, testHasher.Check(stored.Password, "target-pw"))
	})

	t.Run("own password", func(t *testing.T) {
		require.NoError(t, svc.ResetPassword(ctx, actor, actor.ID, "actor-pw", "fresh-pw"))

		stored, err := f.users.GetUserByID(ctx, actor.ID)
		require.NoError(t, err)
		assert.True(t, testHasher.Check(stored.Password, "fresh-pw"))
	})
}
