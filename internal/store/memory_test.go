package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kannnkannn-debug/material-hero/internal/catalog"
	"github.com/kannnkannn-debug/material-hero/internal/session"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	cat, err := catalog.Load("")
	require.NoError(t, err)
	return session.New(context.Background(), session.Deps{Catalog: cat})
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession(t)

	_, err := st.Get(ctx, s.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Save(ctx, s))
	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	require.Same(t, s, got)
	require.Equal(t, 1, st.Len())

	require.NoError(t, st.Delete(ctx, s.ID))
	_, err = st.Get(ctx, s.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 0, st.Len())

	require.NoError(t, st.Delete(ctx, "missing"))
}

func TestDeleteClosesSubscriptions(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession(t)
	require.NoError(t, st.Save(ctx, s))

	events, _ := s.Subscribe()
	require.NoError(t, st.Delete(ctx, s.ID))

	_, open := <-events
	require.False(t, open)
}

func TestEvictIdle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	st := NewMemoryStore()
	st.(*memory).now = func() time.Time { return now }

	stale := newSession(t)
	fresh := newSession(t)
	require.NoError(t, st.Save(ctx, stale))
	require.NoError(t, st.Save(ctx, fresh))
	events, _ := stale.Subscribe()

	now = now.Add(90 * time.Minute)
	_, err := st.Get(ctx, fresh.ID) // touch
	require.NoError(t, err)

	now = now.Add(30 * time.Minute)
	require.Equal(t, 1, st.EvictIdle(time.Hour))
	require.Equal(t, 1, st.Len())

	_, err = st.Get(ctx, stale.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get(ctx, fresh.ID)
	require.NoError(t, err)

	_, open := <-events
	require.False(t, open, "evicted session is closed")
}
