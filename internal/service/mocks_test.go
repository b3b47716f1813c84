package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"status_board/internal/model"
	"status_board/internal/repository"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *mockUserRepo) CreateIfNotExists(ctx context.Context, user *model.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockStatusRepo struct {
	mock.Mock
}

func (m *mockStatusRepo) Insert(ctx context.Context, userID int64, status string) error {
	return m.Called(ctx, userID, status).Error(0)
}

func (m *mockStatusRepo) InsertByUsername(ctx context.Context, username, status string) (bool, error) {
	args := m.Called(ctx, username, status)
	return args.Bool(0), args.Error(1)
}

func (m *mockStatusRepo) FindLatestByUserID(ctx context.Context, userID int64) (*model.StatusEntry, error) {
	args := m.Called(ctx, userID)
	entry, _ := args.Get(0).(*model.StatusEntry)
	return entry, args.Error(1)
}

func (m *mockStatusRepo) ListLatest(ctx context.Context) ([]model.RosterEntry, error) {
	args := m.Called(ctx)
	roster, _ := args.Get(0).([]model.RosterEntry)
	return roster, args.Error(1)
}

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) GenerateToken(userID int64, username string) (string, error) {
	args := m.Called(userID, username)
	return args.String(0), args.Error(1)
}

// memoryStore is an in-memory users + status log. latest mirrors
// latestStatusSQL in the repository package: newest updated_at wins and the
// highest id breaks ties. Its foreign key check mirrors status_entries.user_id.
type memoryStore struct {
	mu      sync.Mutex
	users   []model.User
	entries []model.StatusEntry
	clock   func() time.Time
}

var (
	_ repository.UserRepository   = (*memoryStore)(nil)
	_ repository.StatusRepository = (*memoryStore)(nil)
)

func newMemoryStore() *memoryStore {
	fixed := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return &memoryStore{clock: func() time.Time { return fixed }}
}

func (s *memoryStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	user.ID = int64(len(s.users) + 1)
	user.CreatedAt = s.clock()
	s.users = append(s.users, *user)
	return nil
}

func (s *memoryStore) CreateIfNotExists(ctx context.Context, user *model.User) (bool, error) {
	if err := s.Create(ctx, user); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *memoryStore) FindByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) ListAll(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]model.User(nil), s.users...)
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (s *memoryStore) DeleteAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.users))
	s.users, s.entries = nil, nil
	return n, nil
}

func (s *memoryStore) Insert(_ context.Context, userID int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	known := false
	for _, u := range s.users {
		known = known || u.ID == userID
	}
	if !known {
		return repository.ErrUnknownUser
	}
	s.entries = append(s.entries, model.StatusEntry{
		ID:        int64(len(s.entries) + 1),
		UserID:    userID,
		Status:    status,
		UpdatedAt: s.clock(),
	})
	return nil
}

func (s *memoryStore) InsertByUsername(ctx context.Context, username, status string) (bool, error) {
	u, _ := s.FindByUsername(ctx, username)
	if u == nil {
		return false, nil
	}
	return true, s.Insert(ctx, u.ID, status)
}

func (s *memoryStore) latest(userID int64) *model.StatusEntry {
	var best *model.StatusEntry
	for i := range s.entries {
		e := &s.entries[i]
		if e.UserID != userID {
			continue
		}
		if best == nil || e.UpdatedAt.After(best.UpdatedAt) ||
			(e.UpdatedAt.Equal(best.UpdatedAt) && e.ID > best.ID) {
			best = e
		}
	}
	return best
}

func (s *memoryStore) FindLatestByUserID(_ context.Context, userID int64) (*model.StatusEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.latest(userID); e != nil {
		e := *e
		return &e, nil
	}
	return nil, nil
}

func (s *memoryStore) ListLatest(ctx context.Context) ([]model.RosterEntry, error) {
	users, _ := s.ListAll(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	roster := make([]model.RosterEntry, 0, len(users))
	for _, u := range users {
		entry := model.RosterEntry{Username: u.Username}
		if e := s.latest(u.ID); e != nil {
			status, at := e.Status, e.UpdatedAt
			entry.Status, entry.UpdatedAt = &status, &at
		}
		roster = append(roster, entry)
	}
	return roster, nil
}
