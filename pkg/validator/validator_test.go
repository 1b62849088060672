package validator_test

import (
	"testing"

	"github.com/forgelabs/appforge/pkg/validator"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	type S struct {
		Email string `validate:"required,email"`
	}

	t.Run("nil input", func(t *testing.T) {
		err := validator.Validate(nil)
		assert.Error(t, err)
	})

	t.Run("invalid struct", func(t *testing.T) {
		err := validator.Validate(S{Email: "not-an-email"})
		assert.Error(t, err)
	})

	t.Run("valid struct", func(t *testing.T) {
		err := validator.Validate(S{Email: "user@example.com"})
		assert.NoError(t, err)
	})
}
