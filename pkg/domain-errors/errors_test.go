package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("matches the error's own code", func(t *testing.T) {
		err := New(CodeValidation, "name cannot be empty")
		assert.True(t, HasCode(err, CodeValidation))
		assert.False(t, HasCode(err, CodeNotFound))
	})

	t.Run("matches a code deeper in the chain", func(t *testing.T) {
		inner := New(CodeValidation, "surname too long")
		outer := Wrap(inner, CodeBadRequest, "invalid request")
		assert.True(t, HasCode(outer, CodeBadRequest))
		assert.True(t, HasCode(outer, CodeValidation))
		assert.False(t, HasCode(outer, CodeInternal))
	})

	t.Run("matches through fmt.Errorf wrapping", func(t *testing.T) {
		err := fmt.Errorf("register person: %w", New(CodeValidation, "id cannot be negative"))
		assert.True(t, HasCode(err, CodeValidation))
	})

	t.Run("nil and uncoded errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(nil, CodeInternal))
		assert.False(t, HasCode(errors.New("plain"), CodeInternal))
	})
}

func TestWrap(t *testing.T) {
	t.Run("preserves the cause for errors.Is", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(cause, CodeUnavailable, "store unreachable")
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "store unreachable: connection refused", err.Error())
	})
}

func TestMessage(t *testing.T) {
	cause := errors.New("pq: duplicate key value")
	err := Wrap(cause, CodeConflict, "person already exists")
	assert.Equal(t, "person already exists", err.Message(), "Message must not leak the cause")
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(New(CodeNotFound, "person not found")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	assert.Equal(t, CodeConflict, CodeOf(fmt.Errorf("wrapped: %w", New(CodeConflict, "busy"))))
}
