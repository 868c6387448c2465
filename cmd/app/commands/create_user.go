package commands

import (
	"context"
	"fmt"
	"log/slog"

	authDomain "github.com/polishfootballnetwork/api/internal/auth/domain"
	userUseCase "github.com/polishfootballnetwork/api/internal/user/usecase"
)

// createUserOutput is the serializable result of the create-user command.
// The password never appears here.
type createUserOutput struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// RunCreateUser creates a new user account. Outputs the account in either
// text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	useCase userUseCase.UserUseCase,
	logger *slog.Logger,
	username string,
	email string,
	password string,
	roleName string,
	isActive bool,
	format string,
	io IOTuple,
) error {
	role, ok := authDomain.ParseRole(roleName)
	if !ok {
		return fmt.Errorf(
			"invalid role: %s (valid options: user, moderator, administrator, superadmin)",
			roleName,
		)
	}

	logger.Info("creating new user",
		slog.String("username", username),
		slog.String("role", role.String()),
	)

	user, err := useCase.Create(ctx, &userUseCase.CreateUserInput{
		Username: username,
		Email:    email,
		Password: password,
		Role:     role,
		IsActive: isActive,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	output := createUserOutput{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role.String(),
		IsActive: user.IsActive,
	}

	if format == "json" {
		if err := outputJSON(output, io.Writer); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(io.Writer, "User created:\n")
		fmt.Fprintf(io.Writer, "  ID:       %s\n", output.ID)
		fmt.Fprintf(io.Writer, "  Username: %s\n", output.Username)
		fmt.Fprintf(io.Writer, "  Email:    %s\n", output.Email)
		fmt.Fprintf(io.Writer, "  Role:     %s\n", output.Role)
		fmt.Fprintf(io.Writer, "  Active:   %t\n", output.IsActive)
	}

	logger.Info("user created successfully",
		slog.String("user_id", output.ID),
		slog.String("username", username),
	)

	return nil
}
