package metrics

// Row is one labeled line of the two-engine comparison table. Values have
// already been display-rounded; sampling tags are set on rows where the
// engines measure differently.
type Row struct {
	Key               string   `json:"key"`
	Label             string   `json:"label"`
	Unit              string   `json:"unit"`
	SciDB             Value    `json:"scidb"`
	MapReduce         Value    `json:"mapreduce"`
	SciDBSampling     Sampling `json:"scidb_sampling,omitempty"`
	MapReduceSampling Sampling `json:"mapreduce_sampling,omitempty"`
}

// displayDecimals is the rounding applied to every row value.
const displayDecimals = 2

// rowSpec describes one fixed row of the comparison schema.
type rowSpec struct {
	key     string
	label   string
	unit    string
	value   func(*EngineMetrics) Value
	sampled func(*EngineMetrics) Sampling
}

// rowSchema is the versioned row set. Order and presence are fixed: BuildRows
// emits exactly these rows every call, regardless of which engine fields are
// missing, so a renderer can filter but never re-derive the table shape.
var rowSchema = []rowSpec{
	{key: "execution_time", label: "Execution Time", unit: "s",
		value: func(m *EngineMetrics) Value { return m.ExecutionTimeSeconds }},
	{key: "memory_mb", label: "Memory", unit: "MB",
		value:   func(m *EngineMetrics) Value { return m.MemoryUsageMB },
		sampled: func(m *EngineMetrics) Sampling { return m.MemorySampling }},
	{key: "cpu_percent", label: "CPU", unit: "%",
		value:   func(m *EngineMetrics) Value { return m.CPUPercent },
		sampled: func(m *EngineMetrics) Sampling { return m.CPUSampling }},
	{key: "throughput", label: "Throughput", unit: "rows/s",
		value: func(m *EngineMetrics) Value { return m.ThroughputRowsPerSec }},
	{key: "row_count", label: "Rows Processed", unit: "",
		value: func(m *EngineMetrics) Value { return m.RowCount }},
	{key: "column_count", label: "Columns", unit: "",
		value: func(m *EngineMetrics) Value { return m.ColumnCount }},
	{key: "file_size_kb", label: "File Size", unit: "KB",
		value: func(m *EngineMetrics) Value { return SomeRatio(m.FileSizeBytes, 1024) }},
	{key: "avg_row_size", label: "Avg Row Size", unit: "bytes",
		value: func(m *EngineMetrics) Value { return m.AvgRowSizeBytes }},
	{key: "memory_percent", label: "Memory Usage", unit: "%",
		value:   func(m *EngineMetrics) Value { return m.MemoryPercent },
		sampled: func(m *EngineMetrics) Sampling { return m.MemorySampling }},
}

// SomeRatio scales an available value by a constant divisor, staying
// unavailable when the input is.
func SomeRatio(v Value, divisor float64) Value {
	f, ok := v.Float64()
	if !ok || divisor == 0 {
		return None()
	}
	return Some(f / divisor)
}

// BuildRows normalizes two engine reports into the fixed comparison row set.
// Either report may be nil or partially populated; the affected side comes
// out unavailable, never missing a row.
func BuildRows(scidb, mapreduce *EngineMetrics) []Row {
	rows := make([]Row, 0, len(rowSchema))
	for _, spec := range rowSchema {
		row := Row{Key: spec.key, Label: spec.label, Unit: spec.unit}
		row.SciDB, row.SciDBSampling = rowSide(scidb, spec)
		row.MapReduce, row.MapReduceSampling = rowSide(mapreduce, spec)
		rows = append(rows, row)
	}
	return rows
}

func rowSide(m *EngineMetrics, spec rowSpec) (Value, Sampling) {
	if m == nil {
		return None(), SamplingUnknown
	}
	v := ToDisplayNumber(spec.value(m), displayDecimals)
	if spec.sampled == nil {
		return v, SamplingUnknown
	}
	return v, spec.sampled(m)
}
