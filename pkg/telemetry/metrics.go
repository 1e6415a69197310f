// Package telemetry holds the prometheus instruments for the backend.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UploadsTotal counts accepted dataset uploads by source (api/watcher).
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "benchboard_dataset_uploads_total",
		Help: "Accepted dataset uploads, by ingest source.",
	}, []string{"source"})

	// UploadBytesTotal counts bytes of accepted dataset uploads.
	UploadBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "benchboard_dataset_upload_bytes_total",
		Help: "Total bytes of accepted dataset uploads.",
	})

	// UploadsRejectedTotal counts rejected uploads by reason.
	UploadsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "benchboard_dataset_uploads_rejected_total",
		Help: "Rejected dataset uploads, by reason.",
	}, []string{"reason"})

	// ComparisonsTotal counts completed two-engine comparisons by winner.
	ComparisonsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "benchboard_comparisons_total",
		Help: "Completed two-engine comparisons, by faster system.",
	}, []string{"faster_system"})

	// ProcessorFailuresTotal counts failed calls to the processor service.
	ProcessorFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "benchboard_processor_failures_total",
		Help: "Failed calls to the external processor service.",
	})
)
