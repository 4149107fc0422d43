package forms

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Username        string `validate:"required,min=3"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=8"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	Role            string `validate:"required,oneof=admin superAdmin"`
}

func TestFieldErrorsMapsFieldsToLowerCamel(t *testing.T) {
	v := validator.New()
	err := v.Struct(sampleForm{
		Username:        "ab",
		Email:           "not-an-email",
		Password:        "longenough",
		ConfirmPassword: "different1",
		Role:            "root",
	})
	require.Error(t, err)

	out := FieldErrors(err)

	assert.Equal(t, "Must be at least 3 characters", out["username"])
	assert.Equal(t, "Must be a valid email address", out["email"])
	assert.Equal(t, "Passwords do not match", out["confirmPassword"])
	assert.Equal(t, "Must be one of: admin, superAdmin", out["role"])
	assert.NotContains(t, out, "password")
}

func TestFieldErrorsRequired(t *testing.T) {
	v := validator.New()
	err := v.Struct(sampleForm{})
	require.Error(t, err)

	out := FieldErrors(err)
	assert.Equal(t, "This field is required", out["username"])
	assert.Equal(t, "This field is required", out["email"])
}

func TestFieldErrorsNonValidatorError(t *testing.T) {
	out := FieldErrors(errors.New("EOF"))
	assert.Equal(t, map[string]string{"_form": "Please check the highlighted fields"}, out)
}

func TestFieldErrorsNil(t *testing.T) {
	assert.Nil(t, FieldErrors(nil))
}
