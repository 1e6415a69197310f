package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbm-eval/benchboard/pkg/models"
)

func TestBuildSummaryPicksFasterSystem(t *testing.T) {
	sc := &EngineMetrics{
		ExecutionTimeSeconds: Some(0.8),
		CPUPercent:           Some(60),
		MemoryUsageMB:        Some(300),
	}
	mr := &EngineMetrics{
		ExecutionTimeSeconds: Some(9.2),
		CPUPercent:           Some(40),
		MemoryUsageMB:        Some(120),
	}

	s, err := BuildSummary(sc, mr)
	require.NoError(t, err)
	assert.Equal(t, models.EngineSciDB, s.FasterSystem)

	// Diffs are other_system - faster_system: execution time is non-negative,
	// the rest keep their sign (the faster engine here costs more CPU/memory).
	assert.InDelta(t, 8.4, s.ExecutionTimeDiff, 1e-9)
	assert.InDelta(t, -20, s.CPUDiff, 1e-9)
	assert.InDelta(t, -180, s.MemoryDiff, 1e-9)
}

func TestBuildSummaryMapReduceWins(t *testing.T) {
	sc := &EngineMetrics{ExecutionTimeSeconds: Some(5)}
	mr := &EngineMetrics{ExecutionTimeSeconds: Some(2), DiskReadBytes: Some(1024)}

	s, err := BuildSummary(sc, mr)
	require.NoError(t, err)
	assert.Equal(t, models.EngineMapReduce, s.FasterSystem)
	assert.InDelta(t, 3, s.ExecutionTimeDiff, 1e-9)
	// SciDB reported no disk counters: missing readings fall back to zero.
	assert.InDelta(t, -1024, s.DiskReadDiff, 1e-9)
	assert.InDelta(t, 0, s.DiskWriteDiff, 1e-9)
}

func TestBuildSummaryIncomparable(t *testing.T) {
	withTime := &EngineMetrics{ExecutionTimeSeconds: Some(1)}

	_, err := BuildSummary(nil, withTime)
	assert.ErrorIs(t, err, ErrIncomparable)

	_, err = BuildSummary(withTime, &EngineMetrics{})
	assert.ErrorIs(t, err, ErrIncomparable)

	_, err = BuildSummary(&EngineMetrics{Err: "load failed"}, withTime)
	assert.ErrorIs(t, err, ErrIncomparable)
}
