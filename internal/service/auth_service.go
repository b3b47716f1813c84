package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"status_board/internal/model"
	"status_board/internal/repository"
	"status_board/internal/utils"
)

var (
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidInput       = errors.New("username and password are required")
)

// AuthService provides authentication related services
type AuthService interface {
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	CreateUser(ctx context.Context, username, password string) (*model.User, error)
}

// TokenIssuer mints session tokens. *utils.JWTUtil implements it.
type TokenIssuer interface {
	GenerateToken(userID int64, username string) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// CreateUser stores a new user with a bcrypt hash of password
func (s *authService) CreateUser(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	return user, nil
}

// Login authenticates a user and returns a signed token.
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		slog.DebugContext(ctx, "login rejected", "username", username, "reason", "unknown user")
		return nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		slog.DebugContext(ctx, "login rejected", "username", username, "reason", "password mismatch")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}
