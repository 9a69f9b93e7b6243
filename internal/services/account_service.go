package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/axellelanca/catalog/internal/auth"
	customerrors "github.com/axellelanca/catalog/internal/errors"
	"github.com/axellelanca/catalog/internal/models"
	"github.com/axellelanca/catalog/internal/repository"
)

// CreateAccountInput carries the fields of a new administrator account.
type CreateAccountInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UpdateAccountInput carries the editable account fields; nil fields are kept.
type UpdateAccountInput struct {
	IsActive  *bool
	FirstName *string
	LastName  *string
}

// AccountService manages administrator (staff) accounts.
type AccountService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	logger *slog.Logger
}

func NewAccountService(users repository.UserRepository, hasher auth.PasswordHasher, logger *slog.Logger) *AccountService {
	return &AccountService{users: users, hasher: hasher, logger: logger.With("service", "accounts")}
}

// NormalizeEmail lower-cases the domain part of an address.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]models.User, error) {
	return s.users.ListStaff(ctx)
}

// GetAccount returns customerrors.ErrNotFound for non-staff users too.
func (s *AccountService) GetAccount(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsStaff {
		return nil, customerrors.ErrNotFound
	}
	return user, nil
}

// CreateAccount creates an active staff account.
func (s *AccountService) CreateAccount(ctx context.Context, in CreateAccountInput) (*models.User, error) {
	v := &customerrors.ValidationError{}
	if strings.TrimSpace(in.Email) == "" {
		v.Add("email", msgRequired)
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		v.Add("email", "Enter a valid email address.")
	}
	if in.Password == "" {
		v.Add("password", msgRequired)
	}
	if err := failed(v); err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		IsActive:  true,
		IsStaff:   true,
	}
	if err := s.createUser(ctx, user, in.Password); err != nil {
		return nil, err
	}
	s.logger.Info("admin account created", "user_id", user.ID)
	return user, nil
}

// CreateSuperuser creates an active staff superuser.
func (s *AccountService) CreateSuperuser(ctx context.Context, in CreateAccountInput) (*models.User, error) {
	user := &models.User{
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		IsActive:    true,
		IsStaff:     true,
		IsSuperuser: true,
	}
	if err := s.createUser(ctx, user, in.Password); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) createUser(ctx context.Context, user *models.User, password string) error {
	if strings.TrimSpace(user.Email) == "" {
		return customerrors.ErrMissingEmail
	}
	user.Email = NormalizeEmail(user.Email)

	_, err := s.users.GetUserByEmail(ctx, user.Email)
	switch {
	case err == nil:
		return customerrors.NewFieldError("email", msgUnique("user", "email"))
	case !errors.Is(err, customerrors.ErrNotFound):
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	user.Password = hash

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, customerrors.ErrDuplicate) {
			return customerrors.NewFieldError("email", msgUnique("user", "email"))
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, id uint, in UpdateAccountInput) (*models.User, error) {
	user, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	// names may be blank, only their length is checked
	v := &customerrors.ValidationError{}
	if in.FirstName != nil && utf8.RuneCountInString(*in.FirstName) > 150 {
		v.Add("first_name", msgMaxLength(150))
	}
	if in.LastName != nil && utf8.RuneCountInString(*in.LastName) > 150 {
		v.Add("last_name", msgMaxLength(150))
	}
	if err := failed(v); err != nil {
		return nil, err
	}

	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount deletes the account id. Administrators cannot delete their
// own account.
func (s *AccountService) DeleteAccount(ctx context.Context, actor *models.User, id uint) error {
	user, err := s.GetAccount(ctx, id)
	if err != nil {
		return err
	}
	if actor.ID == user.ID {
		return customerrors.ErrSelfDelete
	}
	if err := s.users.DeleteUser(ctx, user.ID); err != nil {
		return err
	}
	s.logger.Info("admin account deleted", "user_id", user.ID, "by", actor.ID)
	return nil
}

// ResetPassword sets a new password on account id. The actor's own current
// password is verified first, then the actor must be the account owner.
func (s *AccountService) ResetPassword(ctx context.Context, actor *models.User, id uint, currentPassword, newPassword string) error {
	target, err := s.GetAccount(ctx, id)
	if err != nil {
		return err
	}

	v := &customerrors.ValidationError{}
	if currentPassword == "" {
		v.Add("current_password", msgRequired)
	}
	if newPassword == "" {
		v.Add("new_password", msgRequired)
	}
	if err := failed(v); err != nil {
		return err
	}

	if !s.hasher.Check(actor.Password, currentPassword) {
		return customerrors.IncorrectPasswordError()
	}
	if actor.ID != target.ID {
		return customerrors.NotOwnerError()
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	target.Password = hash
	if err := s.users.UpdateUser(ctx, target); err != nil {
		return err
	}
	s.logger.Info("password updated", "user_id", target.ID)
	return nil
}
