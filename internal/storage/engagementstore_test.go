package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHasRecentContext(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	store := NewEngagementStore(db, 7, 200)
	bigPayload := strings.Repeat("x", 300)
	smallPayload := strings.Repeat("x", 50)

	t.Run("no context", func(t *testing.T) {
		has, err := store.HasRecentContext(ctx, "nobody")
		require.NoError(t, err)
		require.False(t, has)
	})

	t.Run("recent and large", func(t *testing.T) {
		_, err := store.SaveContext(ctx, "u1", bigPayload, now.Add(-24*time.Hour))
		require.NoError(t, err)

		has, err := store.HasRecentContext(ctx, "u1")
		require.NoError(t, err)
		require.True(t, has)
	})

	t.Run("recent but too small", func(t *testing.T) {
		_, err := store.SaveContext(ctx, "u2", smallPayload, now.Add(-24*time.Hour))
		require.NoError(t, err)

		has, err := store.HasRecentContext(ctx, "u2")
		require.NoError(t, err)
		require.False(t, has)
	})

	t.Run("large but too old", func(t *testing.T) {
		_, err := store.SaveContext(ctx, "u3", bigPayload, now.AddDate(0, 0, -10))
		require.NoError(t, err)

		has, err := store.HasRecentContext(ctx, "u3")
		require.NoError(t, err)
		require.False(t, has)
	})

	t.Run("newest snapshot decides", func(t *testing.T) {
		// A large old snapshot followed by a small new one: the newest
		// inside the window is what counts.
		_, err := store.SaveContext(ctx, "u4", bigPayload, now.Add(-72*time.Hour))
		require.NoError(t, err)
		_, err = store.SaveContext(ctx, "u4", smallPayload, now.Add(-time.Hour))
		require.NoError(t, err)

		has, err := store.HasRecentContext(ctx, "u4")
		require.NoError(t, err)
		require.False(t, has)
	})
}
