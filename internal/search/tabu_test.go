package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geocache-router/internal/models"
	"geocache-router/internal/route"
)

func TestTabuFindsHigherValueNeighborhood(t *testing.T) {
	ev := evaluatorFor(dcRegistryWithB())
	ts := NewTabuSearch(ev, defaultBudget(), DefaultTabuConfig(), nil)

	res, err := ts.Optimize(context.Background(), models.Path{"Start", "A", "Finish"})
	require.NoError(t, err)

	assert.Equal(t, 130, res.Score)
	assert.True(t, res.Path.Contains("A"))
	assert.True(t, res.Path.Contains("B"))
	assert.True(t, route.Feasible(res, defaultBudget()))
}

func TestTabuEscapesInfeasibleSeedViaReplacement(t *testing.T) {
	ev := evaluatorFor(dcRegistryWithB())
	// The seed path is over the elevation budget; the only feasible
	// neighbors drop A or swap it for the cheaper B
	budget := models.SearchBudget{MaxDistanceMeters: 2000, MaxElevationGainMeters: 5}
	ts := NewTabuSearch(ev, budget, DefaultTabuConfig(), nil)

	res, err := ts.Optimize(context.Background(), models.Path{"Start", "A", "Finish"})
	require.NoError(t, err)

	assert.Equal(t, models.Path{"Start", "B", "Finish"}, res.Path)
	assert.Equal(t, 80, res.Score)
}

func TestTabuNeverReturnsWorseThanSeed(t *testing.T) {
	ev := evaluatorFor(dcRegistryWithB())
	ts := NewTabuSearch(ev, defaultBudget(), TabuConfig{Capacity: 10, StallLimit: 20}, nil)

	seed := models.Path{"Start", "B", "A", "Finish"}
	seedRes, err := ev.Evaluate(seed)
	require.NoError(t, err)

	res, err := ts.Optimize(context.Background(), seed)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.Score, seedRes.Score)
}

func TestTabuUnrepairableSeedIsZeroScore(t *testing.T) {
	ev := evaluatorFor(dcRegistryWithB())
	// No complete path fits this budget, so no feasible neighbor exists
	budget := models.SearchBudget{MaxDistanceMeters: 1, MaxElevationGainMeters: 100}
	ts := NewTabuSearch(ev, budget, DefaultTabuConfig(), nil)

	res, err := ts.Optimize(context.Background(), models.Path{"Start", "A", "Finish"})
	require.NoError(t, err)

	assert.Equal(t, 0, res.Score)
	assert.False(t, route.Feasible(res, budget))
}

func TestTabuListBounded(t *testing.T) {
	list := &tabuList{capacity: 3}

	for _, k := range []string{"a", "b", "c", "d"} {
		list.push(k)
	}

	// Oldest entry aged out
	assert.False(t, list.contains("a"))
	assert.True(t, list.contains("b"))
	assert.True(t, list.contains("d"))
	assert.Len(t, list.keys, 3)
}

func TestTabuCancellation(t *testing.T) {
	ev := evaluatorFor(dcRegistryWithB())
	ts := NewTabuSearch(ev, defaultBudget(), DefaultTabuConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ts.Optimize(ctx, models.Path{"Start", "A", "Finish"})
	assert.ErrorIs(t, err, context.Canceled)
}
