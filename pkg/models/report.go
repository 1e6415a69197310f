package models

import (
	"time"

	"github.com/google/uuid"
)

// EngineName identifies one of the two benchmarked systems.
type EngineName string

const (
	EngineSciDB     EngineName = "scidb"
	EngineMapReduce EngineName = "mapreduce"
)

// Valid reports whether the name is one of the two known engines.
func (e EngineName) Valid() bool {
	return e == EngineSciDB || e == EngineMapReduce
}

// ComparisonSummary is the derived outcome of one two-engine run before it is
// persisted. All diff fields follow a single documented sign convention:
// other_system minus faster_system, where faster_system is chosen by
// execution time. ExecutionTimeDiff is therefore always >= 0; the remaining
// diffs are signed, since the faster-loading engine may still cost more CPU
// or memory.
type ComparisonSummary struct {
	FasterSystem      EngineName `json:"faster_system"`
	ExecutionTimeDiff float64    `json:"execution_time_diff"`
	CPUDiff           float64    `json:"cpu_diff"`
	MemoryDiff        float64    `json:"memory_diff"`
	DiskReadDiff      float64    `json:"disk_read_diff"`
	DiskWriteDiff     float64    `json:"disk_write_diff"`
}

// ComparisonReport is a persisted ComparisonSummary with identity and
// timestamps. Units: execution time in seconds, cpu in percentage points,
// memory in MB, disk counters in bytes.
type ComparisonReport struct {
	ID                uuid.UUID  `json:"id"`
	FasterSystem      EngineName `json:"faster_system"`
	ExecutionTimeDiff float64    `json:"execution_time_diff"`
	CPUDiff           float64    `json:"cpu_diff"`
	MemoryDiff        float64    `json:"memory_diff"`
	DiskReadDiff      float64    `json:"disk_read_diff"`
	DiskWriteDiff     float64    `json:"disk_write_diff"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// CreateComparisonReportInput is the input for persisting a comparison.
// Pointer fields distinguish "absent" from a genuine zero diff so validation
// can name exactly which fields are missing.
type CreateComparisonReportInput struct {
	FasterSystem      *EngineName `json:"faster_system"`
	ExecutionTimeDiff *float64    `json:"execution_time_diff"`
	CPUDiff           *float64    `json:"cpu_diff"`
	MemoryDiff        *float64    `json:"memory_diff"`
	DiskReadDiff      *float64    `json:"disk_read_diff"`
	DiskWriteDiff     *float64    `json:"disk_write_diff"`
}

// UpdateComparisonReportInput is a partial patch; nil fields are left alone.
type UpdateComparisonReportInput struct {
	FasterSystem      *EngineName `json:"faster_system"`
	ExecutionTimeDiff *float64    `json:"execution_time_diff"`
	CPUDiff           *float64    `json:"cpu_diff"`
	MemoryDiff        *float64    `json:"memory_diff"`
	DiskReadDiff      *float64    `json:"disk_read_diff"`
	DiskWriteDiff     *float64    `json:"disk_write_diff"`
}

// Input converts a summary into a create input, for persisting a comparison
// the backend derived itself.
func (s *ComparisonSummary) Input() *CreateComparisonReportInput {
	faster := s.FasterSystem
	execDiff := s.ExecutionTimeDiff
	cpuDiff := s.CPUDiff
	memDiff := s.MemoryDiff
	readDiff := s.DiskReadDiff
	writeDiff := s.DiskWriteDiff
	return &CreateComparisonReportInput{
		FasterSystem:      &faster,
		ExecutionTimeDiff: &execDiff,
		CPUDiff:           &cpuDiff,
		MemoryDiff:        &memDiff,
		DiskReadDiff:      &readDiff,
		DiskWriteDiff:     &writeDiff,
	}
}
