package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/notewind/notewind/internal/model"
)

func openTestCache(t *testing.T) *NoteCache {
	t.Helper()
	c, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, c.Close())
	})
	return c
}

func TestPutGetRoundTrip(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()
	scope := Scope{UserID: "u1", Filter: "pdf", Search: "algebra"}
	notes := []model.Note{
		{ID: "n1", UserID: "u1", Title: "Linear Algebra", SourceType: model.SourcePDF, CreateDate: 100},
		{ID: "n2", UserID: "u1", Title: "Matrices", SourceType: model.SourcePDF, CreateDate: 90},
	}

	require.NoError(t, c.Put(ctx, scope, notes))

	got, ok, err := c.Get(ctx, scope)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, notes, got)
}

func TestGetMiss(t *testing.T) {
	c := openTestCache(t)

	got, ok, err := c.Get(context.Background(), Scope{UserID: "u1"})
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, got)
}

func TestPutReplacesExisting(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()
	scope := Scope{UserID: "u1"}

	require.NoError(t, c.Put(ctx, scope, []model.Note{{ID: "old"}}))
	require.NoError(t, c.Put(ctx, scope, []model.Note{{ID: "new"}}))

	got, ok, err := c.Get(ctx, scope)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	require.Equal(t, "new", got[0].ID)
}

func TestScopeKeyIsolation(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, Scope{UserID: "u1", Filter: "pdf"}, []model.Note{{ID: "a"}}))
	require.NoError(t, c.Put(ctx, Scope{UserID: "u1", Search: "pdf"}, []model.Note{{ID: "b"}}))

	got, ok, err := c.Get(ctx, Scope{UserID: "u1", Filter: "pdf"})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a", got[0].ID)
}

func TestPrune(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	require.NoError(t, c.Put(ctx, Scope{UserID: "stale"}, []model.Note{{ID: "s"}}))

	c.now = func() time.Time { return base.Add(48 * time.Hour) }
	require.NoError(t, c.Put(ctx, Scope{UserID: "fresh"}, []model.Note{{ID: "f"}}))

	require.NoError(t, c.Prune(ctx, 24*time.Hour))

	_, ok, err := c.Get(ctx, Scope{UserID: "stale"})
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = c.Get(ctx, Scope{UserID: "fresh"})
	require.NoError(t, err)
	require.True(t, ok)
}
