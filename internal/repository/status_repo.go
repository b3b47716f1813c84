package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"status_board/internal/model"

	"github.com/jackc/pgx/v5"
)

// ErrUnknownUser is returned when a status is written for a user id that no
// longer exists (tokens outlive deleted users).
var ErrUnknownUser = errors.New("user does not exist")

// StatusRepository defines operations on the status log
type StatusRepository interface {
	Insert(ctx context.Context, userID int64, status string) error
	InsertByUsername(ctx context.Context, username, status string) (bool, error)
	FindLatestByUserID(ctx context.Context, userID int64) (*model.StatusEntry, error)
	ListLatest(ctx context.Context) ([]model.RosterEntry, error)
}

type statusRepository struct {
	db DBTX
}

// NewStatusRepository creates a new StatusRepository
func NewStatusRepository(db DBTX) StatusRepository {
	return &statusRepository{db: db}
}

// latestStatusSQL picks one row per user: newest updated_at, then highest id.
const latestStatusSQL = `SELECT DISTINCT ON (user_id) id, user_id, status, updated_at
            FROM status_entries
            ORDER BY user_id, updated_at DESC, id DESC`

// Insert appends a status entry for the user
func (r *statusRepository) Insert(ctx context.Context, userID int64, status string) error {
	sql := `INSERT INTO status_entries (user_id, status) VALUES ($1, $2)`
	if _, err := r.db.Exec(ctx, sql, userID, status); err != nil {
		if isForeignKeyViolation(err) {
			return ErrUnknownUser
		}
		return fmt.Errorf("failed to insert status: %w", err)
	}
	return nil
}

// InsertByUsername appends a status entry for the named user.
// It returns false when no such user exists.
func (r *statusRepository) InsertByUsername(ctx context.Context, username, status string) (bool, error) {
	sql := `INSERT INTO status_entries (user_id, status)
            SELECT id, $2 FROM users WHERE username = $1`
	cmdTag, err := r.db.Exec(ctx, sql, username, status)
	if err != nil {
		return false, fmt.Errorf("failed to insert status for %s: %w", username, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// FindLatestByUserID returns the user's current status, or nil if none was set
func (r *statusRepository) FindLatestByUserID(ctx context.Context, userID int64) (*model.StatusEntry, error) {
	e := &model.StatusEntry{}
	sql := `SELECT id, user_id, status, updated_at FROM status_entries
            WHERE user_id = $1 ORDER BY updated_at DESC, id DESC LIMIT 1`
	err := r.db.QueryRow(ctx, sql, userID).Scan(&e.ID, &e.UserID, &e.Status, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest status: %w", err)
	}
	return e, nil
}

// ListLatest returns every user exactly once with their current status,
// including users that never set one.
func (r *statusRepository) ListLatest(ctx context.Context) ([]model.RosterEntry, error) {
	sql := `SELECT u.username, s.status, s.updated_at
            FROM users u
            LEFT JOIN (` + latestStatusSQL + `) s ON s.user_id = u.id
            ORDER BY u.username`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	roster := []model.RosterEntry{}
	for rows.Next() {
		var (
			e         model.RosterEntry
			status    *string
			updatedAt *time.Time
		)
		if err := rows.Scan(&e.Username, &status, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}
		e.Status = status
		e.UpdatedAt = updatedAt
		roster = append(roster, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster rows: %w", err)
	}
	return roster, nil
}
