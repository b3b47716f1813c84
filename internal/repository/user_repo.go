package repository

import (
	"context"
	"errors"
	"fmt"

	"status_board/internal/model"

	"github.com/jackc/pgx/v5"
)

// ErrDuplicateUsername is returned by Create when the username is taken
var ErrDuplicateUsername = errors.New("username already exists")

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	CreateIfNotExists(ctx context.Context, user *model.User) (bool, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	ListAll(ctx context.Context) ([]model.User, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, user.Username, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// CreateIfNotExists inserts the user unless the username is already taken.
// It reports whether a row was created.
func (r *userRepository) CreateIfNotExists(ctx context.Context, user *model.User) (bool, error) {
	sql := `INSERT INTO users (username, password_hash) VALUES ($1, $2)
            ON CONFLICT (username) DO NOTHING RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, user.Username, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create user: %w", err)
	}
	return true, nil
}

// FindByUsername retrieves a user by username
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`
	err := r.db.QueryRow(ctx, sql, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found is not an error here, service layer decides
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

// ListAll returns every user ordered by username
func (r *userRepository) ListAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT id, username, created_at FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// DeleteAll removes every user. Status entries go with them (ON DELETE CASCADE).
func (r *userRepository) DeleteAll(ctx context.Context) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete users: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
