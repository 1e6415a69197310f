package metrics

import (
	"errors"

	"github.com/dbm-eval/benchboard/pkg/models"
)

// ErrIncomparable is returned when a winner cannot be decided because one
// or both engines did not report an execution time.
var ErrIncomparable = errors.New("missing execution time in one or both engine reports")

// BuildSummary derives the winner and metric deltas from two engine reports.
// The faster system is the one with the lower execution time; every diff is
// other_system minus faster_system, so execution_time_diff is non-negative by
// construction and the other diffs keep their sign. Resource metrics the
// engines did not report fall back to zero in the delta (a missing reading
// must not block the comparison the dashboard exists for).
func BuildSummary(scidb, mapreduce *EngineMetrics) (*models.ComparisonSummary, error) {
	if scidb == nil || mapreduce == nil {
		return nil, ErrIncomparable
	}
	scTime, scOK := scidb.ExecutionTimeSeconds.Float64()
	mrTime, mrOK := mapreduce.ExecutionTimeSeconds.Float64()
	if !scOK || !mrOK {
		return nil, ErrIncomparable
	}

	faster, slower := scidb, mapreduce
	name := models.EngineSciDB
	if mrTime < scTime {
		faster, slower = mapreduce, scidb
		name = models.EngineMapReduce
	}

	fTime, _ := faster.ExecutionTimeSeconds.Float64()
	sTime, _ := slower.ExecutionTimeSeconds.Float64()

	return &models.ComparisonSummary{
		FasterSystem:      name,
		ExecutionTimeDiff: sTime - fTime,
		CPUDiff:           slower.CPUPercent.Or(0) - faster.CPUPercent.Or(0),
		MemoryDiff:        slower.MemoryUsageMB.Or(0) - faster.MemoryUsageMB.Or(0),
		DiskReadDiff:      slower.DiskReadBytes.Or(0) - faster.DiskReadBytes.Or(0),
		DiskWriteDiff:     slower.DiskWriteBytes.Or(0) - faster.DiskWriteBytes.Or(0),
	}, nil
}
