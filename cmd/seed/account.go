package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"status_board/internal/model"
	"status_board/internal/service"
)

// accountCreator is the part of service.AuthService the seeder needs
type accountCreator interface {
	CreateUser(ctx context.Context, username, password string) (*model.User, error)
}

// createAccount adds a single user. An existing username is reported, not overwritten.
func createAccount(ctx context.Context, auth accountCreator, log *slog.Logger, username, password string) error {
	user, err := auth.CreateUser(ctx, username, password)
	switch {
	case errors.Is(err, service.ErrUserAlreadyExists):
		return fmt.Errorf("user %q already exists: %w", username, err)
	case errors.Is(err, service.ErrInvalidInput):
		return fmt.Errorf("-user and -password must both be set: %w", err)
	case err != nil:
		return fmt.Errorf("failed to create user %q: %w", username, err)
	}
	log.InfoContext(ctx, "user created", "id", user.ID, "username", user.Username)
	return nil
}
