package service

import (
	"context"
	"errors"
	"fmt"

	"status_board/internal/model"
	"status_board/internal/repository"
)

var ErrInvalidStatus = errors.New("invalid status option")

// StatusService defines operations for the status board
type StatusService interface {
	Options() []string
	SetStatus(ctx context.Context, userID int64, status string) error
	Current(ctx context.Context, userID int64) (*model.StatusEntry, error)
	Roster(ctx context.Context) ([]model.RosterEntry, error)
	Users(ctx context.Context) ([]model.User, error)
}

type statusService struct {
	statusRepo repository.StatusRepository
	userRepo   repository.UserRepository
	options    model.StatusOptions
}

// NewStatusService creates a new StatusService bound to a fixed set of options
func NewStatusService(statusRepo repository.StatusRepository, userRepo repository.UserRepository, options model.StatusOptions) StatusService {
	return &statusService{statusRepo: statusRepo, userRepo: userRepo, options: options}
}

func (s *statusService) Options() []string {
	return s.options.Values()
}

// SetStatus records status as the user's current one
func (s *statusService) SetStatus(ctx context.Context, userID int64, status string) error {
	if !s.options.Contains(status) {
		return ErrInvalidStatus
	}
	if err := s.statusRepo.Insert(ctx, userID, status); err != nil {
		if errors.Is(err, repository.ErrUnknownUser) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to set status in repo: %w", err)
	}
	return nil
}

// Current returns the user's latest status entry, nil when none was set
func (s *statusService) Current(ctx context.Context, userID int64) (*model.StatusEntry, error) {
	entry, err := s.statusRepo.FindLatestByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get current status from repo: %w", err)
	}
	return entry, nil
}

// Roster lists every user with their current status
func (s *statusService) Roster(ctx context.Context) ([]model.RosterEntry, error) {
	roster, err := s.statusRepo.ListLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster from repo: %w", err)
	}
	if roster == nil {
		roster = []model.RosterEntry{}
	}
	return roster, nil
}

func (s *statusService) Users(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users from repo: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}
