package metrics

import "encoding/json"

// Sampling identifies how a resource metric was measured. The two engines do
// not measure alike: SciDB reports a point-in-time snapshot of its container,
// MapReduce reports an average over the job lifetime. The two are charted on
// the same axis but are never silently treated as the same quantity.
type Sampling string

const (
	SamplingSnapshot Sampling = "snapshot"
	SamplingAverage  Sampling = "average"
	SamplingUnknown  Sampling = ""
)

// EngineMetrics is one engine's raw report for a single load run. It is
// transient: produced by the external processor, normalized, rendered, and
// discarded unless explicitly persisted as a comparison report. Every numeric
// field is a Value so a missing or malformed field can never fault a consumer.
type EngineMetrics struct {
	ExecutionTimeSeconds Value    `json:"execution_time_seconds"`
	CPUPercent           Value    `json:"cpu_percent"`
	CPUSampling          Sampling `json:"cpu_sampling,omitempty"`
	MemoryUsageMB        Value    `json:"memory_usage_mb"`
	MemorySampling       Sampling `json:"memory_sampling,omitempty"`
	MemoryPercent        Value    `json:"memory_percent"`
	ThroughputRowsPerSec Value    `json:"throughput_rows_per_sec"`
	RowCount             Value    `json:"row_count"`
	ColumnCount          Value    `json:"column_count"`
	FileSizeBytes        Value    `json:"file_size_bytes"`
	AvgRowSizeBytes      Value    `json:"avg_row_size_bytes"`
	DiskReadBytes        Value    `json:"disk_read_bytes"`
	DiskWriteBytes       Value    `json:"disk_write_bytes"`

	FileMD5    string `json:"file_md5,omitempty"`
	StoredFile string `json:"stored_file,omitempty"`

	// Err carries an engine-reported failure ({"error": "..."} block). A
	// failed engine still yields a usable, fully-unavailable report.
	Err string `json:"error,omitempty"`
}

// EnginePair is the raw processor response: either side may be absent.
type EnginePair struct {
	SciDB     *EngineMetrics `json:"scidb"`
	MapReduce *EngineMetrics `json:"mapreduce"`
}

// Failed reports whether the engine block carried an error instead of metrics.
func (m *EngineMetrics) Failed() bool {
	return m != nil && m.Err != ""
}

// UnmarshalJSON decodes an engine report leniently. The engines disagree on
// key spelling for resource metrics (cpu_percent_snapshot vs cpu_percent_avg,
// memory_usage_snapshot_mb vs memory_usage_avg_mb); the variant that is
// present decides the sampling tag. A block that is not a JSON object at all
// decodes to an empty report rather than an error.
func (m *EngineMetrics) UnmarshalJSON(data []byte) error {
	*m = EngineMetrics{}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	m.ExecutionTimeSeconds = Coerce(raw["execution_time_seconds"])
	m.ThroughputRowsPerSec = Coerce(raw["throughput_rows_per_sec"])
	m.RowCount = Coerce(raw["row_count"])
	m.ColumnCount = Coerce(raw["column_count"])
	m.FileSizeBytes = Coerce(raw["file_size_bytes"])
	m.AvgRowSizeBytes = Coerce(raw["avg_row_size_bytes"])
	m.DiskReadBytes = Coerce(raw["disk_read_bytes"])
	m.DiskWriteBytes = Coerce(raw["disk_write_bytes"])

	m.CPUPercent, m.CPUSampling = sampledField(raw,
		"cpu_percent_snapshot", "cpu_percent_avg", "cpu_percent")
	m.MemoryUsageMB, m.MemorySampling = sampledField(raw,
		"memory_usage_snapshot_mb", "memory_usage_avg_mb", "memory_usage_mb")
	m.MemoryPercent, _ = sampledField(raw,
		"memory_percent_snapshot", "memory_percent_avg", "memory_percent")

	if s, ok := raw["file_md5"].(string); ok {
		m.FileMD5 = s
	}
	if s, ok := raw["stored_file"].(string); ok {
		m.StoredFile = s
	}
	if s, ok := raw["error"].(string); ok {
		m.Err = s
	}
	return nil
}

// sampledField resolves a metric reported under one of three key spellings.
// Snapshot wins over average when both are present (an engine reporting both
// is reporting a snapshot plus derived data).
func sampledField(raw map[string]any, snapshotKey, averageKey, plainKey string) (Value, Sampling) {
	if v, ok := raw[snapshotKey]; ok {
		return Coerce(v), SamplingSnapshot
	}
	if v, ok := raw[averageKey]; ok {
		return Coerce(v), SamplingAverage
	}
	if v, ok := raw[plainKey]; ok {
		return Coerce(v), SamplingUnknown
	}
	return None(), SamplingUnknown
}
