package middleware

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	assert.NotNil(t, v)
}

func TestValidationMessage(t *testing.T) {
	SetupValidator()

	type loginBody struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	t.Run("reports json field names with readable messages", func(t *testing.T) {
		err := v.Struct(loginBody{Email: "not-an-email", Password: "short"})
		require.Error(t, err)

		msg := ValidationMessage(err)
		assert.Contains(t, msg, "email: invalid email format")
		assert.Contains(t, msg, "password: must be at least 8 characters")
	})

	t.Run("missing required field", func(t *testing.T) {
		err := v.Struct(loginBody{Password: "longenough"})
		require.Error(t, err)
		assert.Contains(t, ValidationMessage(err), "email: this field is required")
	})

	t.Run("non-validator errors get a generic message", func(t *testing.T) {
		msg := ValidationMessage(errors.New("unexpected EOF"))
		assert.Equal(t, "Invalid request body", msg)
	})
}
