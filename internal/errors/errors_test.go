package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Run("Success_PreservesErrorChain", func(t *testing.T) {
		wrapped := Wrap(ErrUnauthorized, "token validation failed")

		assert.True(t, Is(wrapped, ErrUnauthorized))
		assert.Contains(t, wrapped.Error(), "token validation failed")
	})

	t.Run("Success_NilReturnsNil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "context"))
	})

	t.Run("Success_DoubleWrapKeepsSentinel", func(t *testing.T) {
		inner := Wrap(ErrRateLimited, "too many failed logins")
		outer := Wrap(inner, "auth endpoint")

		assert.True(t, Is(outer, ErrRateLimited))
	})
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrConflict,
		ErrInvalidInput,
		ErrUnauthorized,
		ErrForbidden,
		ErrRateLimited,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, Is(a, b), "%v should not match %v", a, b)
		}
	}
}
