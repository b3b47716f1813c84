package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"status_board/internal/model"
	"status_board/internal/repository"
	"status_board/internal/utils"
)

// DemoUsers are seeded when no users are supplied
var DemoUsers = []model.Credentials{
	{Username: "john.doe", Password: "password123"},
	{Username: "jane.smith", Password: "password456"},
	{Username: "bob.wilson", Password: "password789"},
	{Username: "alice.johnson", Password: "password101"},
	{Username: "charlie.brown", Password: "password123"},
	{Username: "diana.white", Password: "password456"},
	{Username: "emily.green", Password: "password789"},
	{Username: "frank.black", Password: "password101"},
	{Username: "grace.gray", Password: "password123"},
	{Username: "henry.white", Password: "password456"},
}

// SeedStatus assigns a status to a user by name
type SeedStatus struct {
	Username string `json:"username"`
	Status   string `json:"status"`
}

// DemoStatuses match DemoUsers
var DemoStatuses = []SeedStatus{
	{Username: "john.doe", Status: "Working"},
	{Username: "jane.smith", Status: "Working Remotely"},
	{Username: "bob.wilson", Status: "On Vacation"},
	{Username: "alice.johnson", Status: "Working"},
	{Username: "charlie.brown", Status: "Business Trip"},
	{Username: "diana.white", Status: "On Vacation"},
	{Username: "emily.green", Status: "Working"},
	{Username: "frank.black", Status: "Working Remotely"},
	{Username: "grace.gray", Status: "On Vacation"},
	{Username: "henry.white", Status: "Business Trip"},
}

// SeedReport counts the outcome of a bulk operation
type SeedReport struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

func (r SeedReport) String() string {
	return fmt.Sprintf("created=%d skipped=%d failed=%d", r.Created, r.Skipped, r.Failed)
}

// SeedService populates and clears the board. Individual row failures are
// logged and counted; they never abort the batch.
type SeedService struct {
	userRepo   repository.UserRepository
	statusRepo repository.StatusRepository
	options    model.StatusOptions
	log        *slog.Logger
}

// NewSeedService creates a SeedService
func NewSeedService(userRepo repository.UserRepository, statusRepo repository.StatusRepository, options model.StatusOptions, log *slog.Logger) *SeedService {
	if log == nil {
		log = slog.Default()
	}
	return &SeedService{userRepo: userRepo, statusRepo: statusRepo, options: options, log: log}
}

// SeedUsers inserts users that do not exist yet
func (s *SeedService) SeedUsers(ctx context.Context, users []model.Credentials) SeedReport {
	var report SeedReport
	for _, u := range users {
		username := strings.TrimSpace(u.Username)
		if username == "" || u.Password == "" {
			s.log.WarnContext(ctx, "skipping user without username or password", "username", username)
			report.Failed++
			continue
		}

		hash, err := utils.HashPassword(u.Password)
		if err != nil {
			s.log.ErrorContext(ctx, "error hashing password", "username", username, "error", err)
			report.Failed++
			continue
		}

		created, err := s.userRepo.CreateIfNotExists(ctx, &model.User{Username: username, PasswordHash: hash})
		switch {
		case err != nil:
			s.log.ErrorContext(ctx, "error inserting user", "username", username, "error", err)
			report.Failed++
		case created:
			s.log.InfoContext(ctx, "added user", "username", username)
			report.Created++
		default:
			report.Skipped++
		}
	}
	return report
}

// SeedStatuses records a status for each named user. Unknown users and
// statuses outside the configured options are skipped.
func (s *SeedService) SeedStatuses(ctx context.Context, statuses []SeedStatus) SeedReport {
	var report SeedReport
	for _, st := range statuses {
		if !s.options.Contains(st.Status) {
			s.log.WarnContext(ctx, "skipping invalid status", "username", st.Username, "status", st.Status)
			report.Skipped++
			continue
		}

		ok, err := s.statusRepo.InsertByUsername(ctx, st.Username, st.Status)
		switch {
		case err != nil:
			s.log.ErrorContext(ctx, "error inserting status", "username", st.Username, "error", err)
			report.Failed++
		case !ok:
			s.log.WarnContext(ctx, "skipping status for unknown user", "username", st.Username)
			report.Skipped++
		default:
			s.log.InfoContext(ctx, "added status", "username", st.Username, "status", st.Status)
			report.Created++
		}
	}
	return report
}

// DeleteAll removes every user together with their status history
func (s *SeedService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.userRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete users: %w", err)
	}
	return n, nil
}
