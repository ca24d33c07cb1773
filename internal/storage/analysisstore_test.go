package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/valter-silva-au/wellness-brain/internal/core"
)

func TestLatestAnalysisEmptyUser(t *testing.T) {
	store := NewAnalysisStore(testDB(t))

	w, err := store.LatestAnalysis(context.Background(), "u1", "")
	require.NoError(t, err)
	require.Nil(t, w)
}

func TestLatestAnalysisScopedAndGlobal(t *testing.T) {
	store := NewAnalysisStore(testDB(t))
	ctx := context.Background()

	older := time.Now().UTC().Add(-48 * time.Hour).Truncate(time.Second)
	newer := time.Now().UTC().Add(-2 * time.Hour).Truncate(time.Second)

	_, err := store.RecordAnalysis(ctx, "u1", "Foundation Builder", core.AnalysisBehavior, older)
	require.NoError(t, err)
	_, err = store.RecordAnalysis(ctx, "u1", "Peak Performer", core.AnalysisBehavior, newer)
	require.NoError(t, err)

	// Scoped to the older archetype.
	w, err := store.LatestAnalysis(ctx, "u1", "Foundation Builder")
	require.NoError(t, err)
	require.NotNil(t, w)
	require.Equal(t, "Foundation Builder", w.Archetype)
	require.WithinDuration(t, older, w.CompletedAt, time.Second)

	// Unscoped: the newest of any archetype wins.
	w, err = store.LatestAnalysis(ctx, "u1", "")
	require.NoError(t, err)
	require.NotNil(t, w)
	require.Equal(t, "Peak Performer", w.Archetype)
	require.WithinDuration(t, newer, w.CompletedAt, time.Second)

	// Scoped to an archetype the user never ran.
	w, err = store.LatestAnalysis(ctx, "u1", "Mindful Optimizer")
	require.NoError(t, err)
	require.Nil(t, w)
}

func TestLatestAnalysisIsolatedPerUser(t *testing.T) {
	store := NewAnalysisStore(testDB(t))
	ctx := context.Background()

	_, err := store.RecordAnalysis(ctx, "u1", "Peak Performer", core.AnalysisBehavior, time.Now().UTC())
	require.NoError(t, err)

	w, err := store.LatestAnalysis(ctx, "u2", "")
	require.NoError(t, err)
	require.Nil(t, w)
}

func TestCountPriorAnalyses(t *testing.T) {
	store := NewAnalysisStore(testDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		_, err := store.RecordAnalysis(ctx, "u1", "Peak Performer", core.AnalysisBehavior, now.Add(-time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}
	_, err := store.RecordAnalysis(ctx, "u1", "Foundation Builder", core.AnalysisBehavior, now)
	require.NoError(t, err)
	_, err = store.RecordAnalysis(ctx, "u1", "Peak Performer", core.AnalysisCircadian, now)
	require.NoError(t, err)

	count, err := store.CountPriorAnalyses(ctx, "u1", core.AnalysisBehavior, "Peak Performer")
	require.NoError(t, err)
	require.Equal(t, 3, count)

	count, err = store.CountPriorAnalyses(ctx, "u1", core.AnalysisBehavior, "")
	require.NoError(t, err)
	require.Equal(t, 4, count)

	count, err = store.CountPriorAnalyses(ctx, "u1", core.AnalysisCircadian, "")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
