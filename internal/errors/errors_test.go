package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	v := NewFieldError("sku", "This field is required.")
	v.Add("name", "This field may not be blank.")
	v.Add("sku", "Too long.")

	assert.Equal(t, "validation failed: name: This field may not be blank., sku: This field is required.; Too long.", v.Error())
}

func TestPasswordErrors_AreFreshValues(t *testing.T) {
	first := IncorrectPasswordError()
	first.Add("current_password", "extra")

	second := IncorrectPasswordError()
	assert.Equal(t, map[string][]string{"current_password": {"The current password is incorrect."}}, second.Fields)
	assert.ErrorIs(t, second, ErrIncorrectPassword)

	var asErr error = NotOwnerError()
	var v *ValidationError
	require.True(t, errors.As(asErr, &v))
	v.Add(NonFieldErrors, "extra")
	assert.Equal(t, []string{"You can only change your own password."}, NotOwnerError().Fields[NonFieldErrors])
	assert.ErrorIs(t, asErr, ErrNotOwner)
	assert.NotErrorIs(t, asErr, ErrIncorrectPassword)
}
