package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/polishfootballnetwork/api/internal/errors"
)

func newTestPasswordService(t *testing.T) PasswordService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPasswordService(logger)
}

func TestPasswordService_Hash(t *testing.T) {
	t.Run("Success_ProducesSaltedHash", func(t *testing.T) {
		svc := newTestPasswordService(t)

		hash1, err := svc.Hash("admin123")
		require.NoError(t, err)
		hash2, err := svc.Hash("admin123")
		require.NoError(t, err)

		// Per-call random salt: same password, different hashes.
		assert.NotEqual(t, hash1, hash2)
		assert.NotEqual(t, "admin123", hash1)
	})

	t.Run("Error_EmptyPassword", func(t *testing.T) {
		svc := newTestPasswordService(t)

		_, err := svc.Hash("")
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("Error_WhitespacePassword", func(t *testing.T) {
		svc := newTestPasswordService(t)

		_, err := svc.Hash("   \t ")
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})
}

func TestPasswordService_Verify(t *testing.T) {
	t.Run("Success_MatchingPassword", func(t *testing.T) {
		svc := newTestPasswordService(t)

		hash, err := svc.Hash("admin123")
		require.NoError(t, err)

		assert.True(t, svc.Verify("admin123", hash))
	})

	t.Run("Failure_WrongPassword", func(t *testing.T) {
		svc := newTestPasswordService(t)

		hash, err := svc.Hash("admin123")
		require.NoError(t, err)

		assert.False(t, svc.Verify("wrong", hash))
	})

	t.Run("Failure_MalformedHashDoesNotPanic", func(t *testing.T) {
		svc := newTestPasswordService(t)

		assert.NotPanics(t, func() {
			assert.False(t, svc.Verify("admin123", "not-a-valid-hash"))
			assert.False(t, svc.Verify("admin123", ""))
		})
	})
}
