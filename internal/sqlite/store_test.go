package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geocache-router/internal/database"
	"geocache-router/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestHealthCheck(t *testing.T) {
	store := testStore(t)
	assert.NoError(t, store.HealthCheck(context.Background()))
}

func TestSettingsDefaults(t *testing.T) {
	store := testStore(t)

	s, err := store.Settings().Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, DefaultHikingSpeedKmh, s.HikingSpeedKmh)
	assert.Equal(t, DefaultTimeBudgetHours, s.TimeBudgetHours)
	assert.Equal(t, DefaultMaxElevationGainMeters, s.MaxElevationGainMeters)
	assert.Equal(t, DefaultWindowSize, s.WindowSize)
	assert.Equal(t, DefaultWindowStride, s.WindowStride)
}

func TestSettingsRoundtrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	updated := &models.Settings{
		HikingSpeedKmh:         5.5,
		TimeBudgetHours:        6.0,
		MaxElevationGainMeters: 500.0,
		WindowSize:             8,
		WindowStride:           4,
	}
	require.NoError(t, store.Settings().Update(ctx, updated))

	got, err := store.Settings().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestRunCreateAndGet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	run := &models.Run{
		Path:                models.Path{"Start", "A", "Finish"},
		Score:               50,
		DistanceMeters:      481.2,
		ElevationGainMeters: 10,
		Optimizer:           "plan",
		OutputFile:          "/tmp/route.geojson",
	}

	created, err := store.Runs().Create(ctx, run)
	require.NoError(t, err)
	assert.Greater(t, created.ID, int64(0))

	got, err := store.Runs().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Path, got.Path)
	assert.Equal(t, 50, got.Score)
	assert.Equal(t, "plan", got.Optimizer)
	assert.Equal(t, "/tmp/route.geojson", got.OutputFile)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestRunGetByIDNotFound(t *testing.T) {
	store := testStore(t)

	_, err := store.Runs().GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRunList(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Runs().Create(ctx, &models.Run{
			Path:      models.Path{"Start", "Finish"},
			Optimizer: "hillclimb",
		})
		require.NoError(t, err)
	}

	runs, total, err := store.Runs().List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, runs, 2)

	// Newest first
	assert.Greater(t, runs[0].ID, runs[1].ID)

	rest, total, err := store.Runs().List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, rest, 1)
}

func TestRunDelete(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	created, err := store.Runs().Create(ctx, &models.Run{
		Path:      models.Path{"Start", "Finish"},
		Optimizer: "plan",
	})
	require.NoError(t, err)

	require.NoError(t, store.Runs().Delete(ctx, created.ID))

	_, err = store.Runs().GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	assert.ErrorIs(t, store.Runs().Delete(ctx, created.ID), database.ErrNotFound)
}
