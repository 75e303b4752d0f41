package guard_test

import (
	"errors"
	"testing"

	"procurement/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("approval note must be created via NewApprovalNote")

	t.Run("constructed guard passes with and without custom error", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns the supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, errNotConstructed, g.Validate(errNotConstructed))
	})

	t.Run("zero value falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type approvalNote struct {
		text  string
		guard guard.ConstructorGuard
	}
	errNotConstructed := errors.New("approval note must be created via NewApprovalNote")

	newApprovalNote := func(text string) (approvalNote, error) {
		if text == "" {
			return approvalNote{}, errors.New("text is required")
		}
		return approvalNote{text: text, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor output validates", func(t *testing.T) {
		note, err := newApprovalNote("Approved by Priya")

		require.NoError(t, err)
		require.NoError(t, note.guard.Validate(errNotConstructed))
		assert.Equal(t, "Approved by Priya", note.text)
	})

	t.Run("struct literal is rejected", func(t *testing.T) {
		note := approvalNote{text: "bypassed"}

		require.ErrorIs(t, note.guard.Validate(errNotConstructed), errNotConstructed)
	})

	t.Run("constructor enforces its own rules", func(t *testing.T) {
		_, err := newApprovalNote("")

		require.EqualError(t, err, "text is required")
	})
}
