package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbm-eval/benchboard/pkg/metrics"
	"github.com/dbm-eval/benchboard/pkg/models"
)

func TestBuildDashboardNilInput(t *testing.T) {
	// Nil response: upload form only, no chart section, no fault.
	d := BuildDashboard(nil)
	assert.False(t, d.HasData)
	assert.Empty(t, d.Cards)
	assert.Empty(t, d.Charts)
	assert.Nil(t, d.Summary)

	d = BuildDashboard(&metrics.EnginePair{})
	assert.False(t, d.HasData)
}

func TestBuildDashboardPartialInput(t *testing.T) {
	pair := &metrics.EnginePair{
		SciDB: &metrics.EngineMetrics{
			ExecutionTimeSeconds: metrics.Some(0.5),
			MemoryUsageMB:        metrics.Some(256),
			MemorySampling:       metrics.SamplingSnapshot,
		},
		// MapReduce never reported.
	}

	d := BuildDashboard(pair)
	assert.True(t, d.HasData)
	require.NotEmpty(t, d.Cards)

	byKey := map[string]Card{}
	for _, c := range d.Cards {
		byKey[c.Key] = c
	}
	assert.Equal(t, "0.5 s", byKey["execution_time"].SciDB)
	assert.Equal(t, Unavailable, byKey["execution_time"].MapReduce)
	assert.Equal(t, "256 MB (snapshot)", byKey["memory_mb"].SciDB)

	// Chart points for the missing engine are omitted, not drawn at zero.
	for _, bar := range d.Charts {
		assert.Nil(t, bar.MapReduce, "key %s", bar.Key)
	}

	// No winner can be derived from one engine; the view still renders.
	assert.Nil(t, d.Summary)
}

func TestBuildDashboardFullComparison(t *testing.T) {
	pair := &metrics.EnginePair{
		SciDB: &metrics.EngineMetrics{
			ExecutionTimeSeconds: metrics.Some(0.8),
		},
		MapReduce: &metrics.EngineMetrics{
			ExecutionTimeSeconds: metrics.Some(9.2),
		},
	}

	d := BuildDashboard(pair)
	require.NotNil(t, d.Summary)
	assert.Equal(t, models.EngineSciDB, d.Summary.FasterSystem)
	assert.InDelta(t, 8.4, d.Summary.ExecutionTimeDiff, 1e-9)
}

func TestBuildDashboardEngineErrors(t *testing.T) {
	pair := &metrics.EnginePair{
		SciDB:     &metrics.EngineMetrics{Err: "container not running"},
		MapReduce: &metrics.EngineMetrics{ExecutionTimeSeconds: metrics.Some(4)},
	}

	d := BuildDashboard(pair)
	assert.True(t, d.HasData)
	assert.Equal(t, map[string]string{"scidb": "container not running"}, d.EngineErrors)
	assert.Nil(t, d.Summary)
}
