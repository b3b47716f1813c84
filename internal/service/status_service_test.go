package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"status_board/internal/model"
	"status_board/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var defaultOptions = model.NewStatusOptions(model.DefaultStatusOptions)

func TestStatusService_Options(t *testing.T) {
	svc := NewStatusService(new(mockStatusRepo), new(mockUserRepo), defaultOptions)

	opts := svc.Options()
	assert.Equal(t, model.DefaultStatusOptions, opts)

	opts[0] = "Asleep"
	assert.Equal(t, "Working", svc.Options()[0])
}

func TestStatusService_SetStatus(t *testing.T) {
	statusRepo := new(mockStatusRepo)
	svc := NewStatusService(statusRepo, new(mockUserRepo), defaultOptions)

	for _, s := range model.DefaultStatusOptions {
		statusRepo.On("Insert", mock.Anything, int64(1), s).Return(nil).Once()
		assert.NoError(t, svc.SetStatus(context.Background(), 1, s))
	}
	statusRepo.AssertExpectations(t)
}

func TestStatusService_SetStatus_Invalid(t *testing.T) {
	statusRepo := new(mockStatusRepo)
	svc := NewStatusService(statusRepo, new(mockUserRepo), defaultOptions)

	for _, s := range []string{"Asleep", "", "working", "Working ", "On vacation"} {
		assert.ErrorIs(t, svc.SetStatus(context.Background(), 1, s), ErrInvalidStatus, s)
	}
	statusRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestStatusService_SetStatus_RepoError(t *testing.T) {
	statusRepo := new(mockStatusRepo)
	svc := NewStatusService(statusRepo, new(mockUserRepo), defaultOptions)

	statusRepo.On("Insert", mock.Anything, int64(1), "Working").Return(errors.New("db down"))

	err := svc.SetStatus(context.Background(), 1, "Working")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidStatus)
}

func TestStatusService_SetStatus_DeletedUser(t *testing.T) {
	statusRepo := new(mockStatusRepo)
	svc := NewStatusService(statusRepo, new(mockUserRepo), defaultOptions)

	statusRepo.On("Insert", mock.Anything, int64(7), "Working").Return(repository.ErrUnknownUser)

	err := svc.SetStatus(context.Background(), 7, "Working")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStatusService_Roster_NilBecomesEmpty(t *testing.T) {
	statusRepo := new(mockStatusRepo)
	svc := NewStatusService(statusRepo, new(mockUserRepo), defaultOptions)

	statusRepo.On("ListLatest", mock.Anything).Return(nil, nil)

	roster, err := svc.Roster(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, roster)
	assert.Empty(t, roster)
}

func TestStatusService_Roster_Error(t *testing.T) {
	statusRepo := new(mockStatusRepo)
	svc := NewStatusService(statusRepo, new(mockUserRepo), defaultOptions)

	statusRepo.On("ListLatest", mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.Roster(context.Background())

	assert.Error(t, err)
}

func TestStatusService_Current(t *testing.T) {
	statusRepo := new(mockStatusRepo)
	svc := NewStatusService(statusRepo, new(mockUserRepo), defaultOptions)
	now := time.Now()

	statusRepo.On("FindLatestByUserID", mock.Anything, int64(1)).
		Return(&model.StatusEntry{ID: 3, UserID: 1, Status: "Working", UpdatedAt: now}, nil)
	statusRepo.On("FindLatestByUserID", mock.Anything, int64(2)).Return(nil, nil)

	entry, err := svc.Current(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Working", entry.Status)

	entry, err = svc.Current(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestStatusService_Users(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewStatusService(new(mockStatusRepo), userRepo, defaultOptions)

	userRepo.On("ListAll", mock.Anything).Return([]model.User{{ID: 1, Username: "alice"}}, nil)

	users, err := svc.Users(context.Background())

	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func rosterByName(t *testing.T, roster []model.RosterEntry) map[string]model.RosterEntry {
	t.Helper()
	out := make(map[string]model.RosterEntry, len(roster))
	for _, e := range roster {
		_, dup := out[e.Username]
		require.False(t, dup, "user %s listed twice", e.Username)
		out[e.Username] = e
	}
	return out
}

func TestStatusService_Scenario_AliceAndBob(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	auth := NewAuthService(store, new(mockTokenIssuer))
	svc := NewStatusService(store, store, defaultOptions)

	alice, err := auth.CreateUser(ctx, "alice", "alice-pw")
	require.NoError(t, err)
	_, err = auth.CreateUser(ctx, "bob", "bob-pw")
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(ctx, alice.ID, "Working"))

	roster, err := svc.Roster(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	byName := rosterByName(t, roster)
	require.NotNil(t, byName["alice"].Status)
	assert.Equal(t, "Working", *byName["alice"].Status)
	assert.Nil(t, byName["bob"].Status)
	assert.Nil(t, byName["bob"].UpdatedAt)

	assert.ErrorIs(t, svc.SetStatus(ctx, alice.ID, "Asleep"), ErrInvalidStatus)
	after, err := svc.Roster(ctx)
	require.NoError(t, err)
	assert.Equal(t, roster, after)
}

func TestStatusService_SetStatusTwiceShowsOneEntry(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	auth := NewAuthService(store, new(mockTokenIssuer))
	svc := NewStatusService(store, store, defaultOptions)

	alice, err := auth.CreateUser(ctx, "alice", "alice-pw")
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(ctx, alice.ID, "On Vacation"))
	require.NoError(t, svc.SetStatus(ctx, alice.ID, "On Vacation"))

	roster, err := svc.Roster(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "On Vacation", *roster[0].Status)
}

func TestStatusService_SameTimestampHighestIDWins(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	auth := NewAuthService(store, new(mockTokenIssuer))
	svc := NewStatusService(store, store, defaultOptions)

	alice, err := auth.CreateUser(ctx, "alice", "alice-pw")
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(ctx, alice.ID, "Working"))
	require.NoError(t, svc.SetStatus(ctx, alice.ID, "Business Trip"))

	current, err := svc.Current(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Business Trip", current.Status)
}

func TestStatusService_SetStatusAfterDeleteAll(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	auth := NewAuthService(store, new(mockTokenIssuer))
	svc := NewStatusService(store, store, defaultOptions)

	alice, err := auth.CreateUser(ctx, "alice", "alice-pw")
	require.NoError(t, err)
	_, err = store.DeleteAll(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.SetStatus(ctx, alice.ID, "Working"), ErrUserNotFound)

	roster, err := svc.Roster(ctx)
	require.NoError(t, err)
	assert.Empty(t, roster)
}
