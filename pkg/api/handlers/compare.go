package handlers

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/dbm-eval/benchboard/pkg/engines"
	"github.com/dbm-eval/benchboard/pkg/metrics"
	"github.com/dbm-eval/benchboard/pkg/store"
	"github.com/dbm-eval/benchboard/pkg/telemetry"
	"github.com/dbm-eval/benchboard/pkg/view"
)

// CompareHandlers turns raw two-engine reports into the normalized comparison
// the dashboard renders, and drives the upload-and-process flow against the
// external processor service.
type CompareHandlers struct {
	store   store.Store
	uploads *UploadHandlers
	engines *engines.Client
	hub     *Hub
}

// NewCompareHandlers creates the comparison handler. engines may be nil when
// no processor service is configured; upload-and-process then reports 503.
func NewCompareHandlers(s store.Store, uploads *UploadHandlers, client *engines.Client, hub *Hub) *CompareHandlers {
	return &CompareHandlers{store: s, uploads: uploads, engines: client, hub: hub}
}

// compareResponse is the body returned by both comparison endpoints.
type compareResponse struct {
	Engines   *metrics.EnginePair `json:"engines"`
	Dashboard view.Dashboard      `json:"dashboard"`
	ReportID  string              `json:"report_id,omitempty"`
}

// Compare handles POST /api/compare: a raw {scidb, mapreduce} body, for
// engines that report out-of-band. Nothing is persisted.
func (h *CompareHandlers) Compare(c *fiber.Ctx) error {
	var pair metrics.EnginePair
	if err := json.Unmarshal(c.Body(), &pair); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	return c.JSON(compareResponse{
		Engines:   &pair,
		Dashboard: view.BuildDashboard(&pair),
	})
}

// UploadAndProcess handles POST /api/upload-and-process: store the dataset,
// hand it to the processor, normalize both reports, optionally persist the
// derived summary (?persist=true), and broadcast the completed comparison.
func (h *CompareHandlers) UploadAndProcess(c *fiber.Ctx) error {
	if h.engines == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable,
			"processing not configured — set PROCESSOR_URL")
	}

	upload, err := h.uploads.saveDataset(c)
	if err != nil {
		return err
	}

	pair, err := h.engines.Process(c.Context(), upload.StoragePath, upload.Filename)
	if err != nil {
		telemetry.ProcessorFailuresTotal.Inc()
		log.Printf("[compare] processor call failed for %s: %v", upload.ID, err)
		return fiber.NewError(fiber.StatusBadGateway, "processor call failed")
	}

	dashboard := view.BuildDashboard(pair)
	resp := compareResponse{Engines: pair, Dashboard: dashboard}

	if dashboard.Summary != nil {
		telemetry.ComparisonsTotal.WithLabelValues(string(dashboard.Summary.FasterSystem)).Inc()

		if c.QueryBool("persist") {
			report, err := h.store.CreateReport(dashboard.Summary.Input())
			if err != nil {
				return storeError(err, "Failed to persist comparison report")
			}
			resp.ReportID = report.ID.String()
		}
	}

	h.hub.Broadcast(comparisonEvent{
		Type:      "comparison_complete",
		UploadID:  upload.ID.String(),
		Filename:  upload.Filename,
		Dashboard: dashboard,
	})

	log.Printf("[compare] processed %s (winner: %s)", upload.Filename, winnerLabel(dashboard))
	return c.JSON(resp)
}

// comparisonEvent is the websocket payload for a completed run.
type comparisonEvent struct {
	Type      string         `json:"type"`
	UploadID  string         `json:"upload_id"`
	Filename  string         `json:"filename"`
	Dashboard view.Dashboard `json:"dashboard"`
}

func winnerLabel(d view.Dashboard) string {
	if d.Summary == nil {
		return "undecided"
	}
	return string(d.Summary.FasterSystem)
}
