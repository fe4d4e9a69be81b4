package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/session"
)

func newTestStore() (*session.Store, *session.MemoryStorage) {
	storage := session.NewMemoryStorage()
	return session.NewStore(storage, zap.NewNop()), storage
}

func sampleSession() *session.Session {
	return &session.Session{
		UserID:    42,
		Name:      "Laura Ortega",
		Email:     "laura@example.com",
		RawRole:   "Agente",
		Initials:  "LO",
		ShortName: "Laura",
		StatusID:  1,
		CreatedAt: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestCommitGetRoundTrip(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.Commit(ctx, "tok", sampleSession()))

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, int64(42), got.UserID)
	require.Equal(t, "laura@example.com", got.Email)
	require.Equal(t, "Agente", got.RawRole)
	require.Equal(t, domain.RoleAgent, got.Role)
}

func TestRestartRestoresNormalizedRole(t *testing.T) {
	first, storage := newTestStore()
	ctx := context.Background()

	committed := sampleSession()
	require.NoError(t, first.Commit(ctx, "tok", committed))

	// A new store over the same storage simulates a process restart.
	second := session.NewStore(storage, zap.NewNop())
	restored, err := second.Get(ctx, "tok")
	require.NoError(t, err)
	require.NotNil(t, restored)
	require.Equal(t, domain.NormalizeRole(committed.RawRole), restored.Role)
	require.Equal(t, committed.UserID, restored.UserID)
	require.Equal(t, committed.Name, restored.Name)
	require.Equal(t, committed.Email, restored.Email)
	require.Equal(t, committed.RawRole, restored.RawRole)
	require.Equal(t, committed.Initials, restored.Initials)
	require.Equal(t, committed.ShortName, restored.ShortName)
	require.Equal(t, committed.StatusID, restored.StatusID)
	require.True(t, committed.CreatedAt.Equal(restored.CreatedAt))
}

func TestLegacyStoredSessionRestoresCanonicalRole(t *testing.T) {
	store, storage := newTestStore()
	ctx := context.Background()

	legacy := []byte(`{"id":7,"name":"Pedro Ruiz","email":"pedro@example.com","rol":"Administrador"}`)
	require.NoError(t, storage.Write(ctx, "tok", legacy))

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, domain.RoleAdmin, got.Role)
	require.Equal(t, "Administrador", got.RawRole)
}

func TestCorruptSessionDiscarded(t *testing.T) {
	store, storage := newTestStore()
	ctx := context.Background()

	require.NoError(t, storage.Write(ctx, "tok", []byte(`{"id": not-json`)))

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	require.Nil(t, got)

	// The corrupt entry was deleted, not just ignored.
	_, err = storage.Read(ctx, "tok")
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestClearIdempotent(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.Commit(ctx, "tok", sampleSession()))
	require.NoError(t, store.Clear(ctx, "tok"))
	require.NoError(t, store.Clear(ctx, "tok"))

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGetEmptyToken(t *testing.T) {
	store, _ := newTestStore()
	got, err := store.Get(context.Background(), "")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestUnknownRolePreservedButNotCanonical(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	sess := sampleSession()
	sess.RawRole = "manager"
	require.NoError(t, store.Commit(ctx, "tok", sess))

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, domain.RoleUnknown, got.Role)
	require.Equal(t, "manager", got.RawRole)
}

func TestWatchReplaysCurrentValue(t *testing.T) {
	store, _ := newTestStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, store.Commit(ctx, "tok", sampleSession()))

	ch := store.Watch(ctx, "tok")
	first := <-ch
	require.NotNil(t, first)
	require.Equal(t, int64(42), first.UserID)
}

func TestWatchObservesCommitAndClearInOrder(t *testing.T) {
	store, _ := newTestStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := store.Watch(ctx, "tok")
	require.Nil(t, <-ch) // no session yet

	require.NoError(t, store.Commit(ctx, "tok", sampleSession()))
	got := <-ch
	require.NotNil(t, got)
	require.Equal(t, domain.RoleAgent, got.Role)

	require.NoError(t, store.Clear(ctx, "tok"))
	require.Nil(t, <-ch)
}

func TestWatchClosesOnContextCancel(t *testing.T) {
	store, _ := newTestStore()
	ctx, cancel := context.WithCancel(context.Background())

	ch := store.Watch(ctx, "tok")
	require.Nil(t, <-ch)

	cancel()
	select {
	case _, open := <-ch:
		require.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("watch channel not closed after cancel")
	}
}
