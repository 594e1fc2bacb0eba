package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryInterior(t *testing.T) {
	r := Registry{
		"Start":  {Name: "Start"},
		"B":      {Name: "B"},
		"A":      {Name: "A"},
		"Finish": {Name: "Finish"},
	}

	assert.Equal(t, []string{"A", "B"}, r.Interior())
	assert.Equal(t, []string{"A", "B", "Finish", "Start"}, r.Names())
}

func TestRegistryGetMiss(t *testing.T) {
	r := Registry{}

	_, err := r.Get("Nowhere")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWaypointNotFound)
}

func TestPathHelpers(t *testing.T) {
	p := Path{"Start", "A", "B", "Finish"}

	assert.True(t, p.Complete())
	assert.False(t, Path{"Start", "A"}.Complete())
	assert.True(t, p.Contains("B"))
	assert.False(t, p.Contains("C"))
	assert.Equal(t, "Start,A,B,Finish", p.Key())
}

func TestPathCloneIsIndependent(t *testing.T) {
	p := Path{"Start", "A", "Finish"}
	c := p.Clone()
	c[1] = "B"

	assert.Equal(t, "A", p[1])
}

func TestReverseMiddleKeepsEndpoints(t *testing.T) {
	p := Path{"Start", "A", "B", "C", "Finish"}

	assert.Equal(t, Path{"Start", "C", "B", "A", "Finish"}, p.ReverseMiddle())

	// Too short to have a middle: unchanged
	assert.Equal(t, Path{"Start", "Finish"}, Path{"Start", "Finish"}.ReverseMiddle())
	assert.Equal(t, Path{"Start", "A", "Finish"}, Path{"Start", "A", "Finish"}.ReverseMiddle())
}

func TestBudgetFromSettings(t *testing.T) {
	b := BudgetFromSettings(&Settings{
		HikingSpeedKmh:         4.0,
		TimeBudgetHours:        8.0,
		MaxElevationGainMeters: 750.0,
	})

	assert.Equal(t, 32000.0, b.MaxDistanceMeters)
	assert.Equal(t, 750.0, b.MaxElevationGainMeters)
}
