package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aasthachits/chitfund/core"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		e := core.NewValidationError()
		assert.True(t, e.IsEmpty())
		assert.Equal(t, "Validation failed", e.Error())
	})

	t.Run("collects messages per field", func(t *testing.T) {
		t.Parallel()

		e := core.NewValidationError()
		e.Add("email", "is required")
		e.Add("email", "must be valid")
		e.Add("name", "is required")

		assert.False(t, e.IsEmpty())
		assert.True(t, e.Has("email"))
		assert.False(t, e.Has("phone"))
		assert.Equal(t, "is required", e.Get("email"))
	})

	t.Run("summary lists fields in stable order", func(t *testing.T) {
		t.Parallel()

		e := core.NewValidationError()
		e.Add("name", "is required")
		e.Add("amount", "must be positive")

		assert.Equal(t, "validation error: amount: must be positive, name: is required", e.Error())
	})
}
