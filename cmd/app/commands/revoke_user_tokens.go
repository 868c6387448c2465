package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	authUseCase "github.com/polishfootballnetwork/api/internal/auth/usecase"
)

// revokeUserTokensOutput is the serializable result of the revoke-user-tokens
// command.
type revokeUserTokensOutput struct {
	UserID       string `json:"user_id"`
	RevokedCount int    `json:"revoked_count"`
}

// RunRevokeUserTokens revokes every refresh token owned by the given user,
// forcing a re-login on all their sessions. Outputs the revoked count in
// either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunRevokeUserTokens(
	ctx context.Context,
	useCase authUseCase.AuthUseCase,
	logger *slog.Logger,
	userIDStr string,
	format string,
	io IOTuple,
) error {
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return fmt.Errorf("invalid user id: %s", userIDStr)
	}

	logger.Info("revoking all user tokens", slog.String("user_id", userID.String()))

	count, err := useCase.RevokeAllUserTokens(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}

	output := revokeUserTokensOutput{
		UserID:       userID.String(),
		RevokedCount: count,
	}

	if format == "json" {
		if err := outputJSON(output, io.Writer); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(io.Writer, "Revoked %d refresh token(s) for user %s\n", count, userID)
	}

	return nil
}
