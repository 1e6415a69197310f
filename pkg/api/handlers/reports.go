package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dbm-eval/benchboard/pkg/models"
	"github.com/dbm-eval/benchboard/pkg/store"
)

// ReportHandlers provides CRUD over persisted comparison reports.
type ReportHandlers struct {
	store store.Store
}

// NewReportHandlers creates a new comparison report handler.
func NewReportHandlers(s store.Store) *ReportHandlers {
	return &ReportHandlers{store: s}
}

// CreateReport persists a new comparison report.
func (h *ReportHandlers) CreateReport(c *fiber.Ctx) error {
	var input models.CreateComparisonReportInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	report, err := h.store.CreateReport(&input)
	if err != nil {
		return storeError(err, "Failed to create comparison report")
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// ListReports returns all stored comparison reports, newest first.
func (h *ReportHandlers) ListReports(c *fiber.Ctx) error {
	reports, err := h.store.ListReports()
	if err != nil {
		return storeError(err, "Failed to list comparison reports")
	}
	if reports == nil {
		reports = []models.ComparisonReport{}
	}
	return c.JSON(reports)
}

// GetReport returns a single comparison report.
func (h *ReportHandlers) GetReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid report ID")
	}

	report, err := h.store.GetReport(id)
	if err != nil {
		return storeError(err, "Failed to get comparison report")
	}
	return c.JSON(report)
}

// UpdateReport applies a partial patch to a stored report.
func (h *ReportHandlers) UpdateReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid report ID")
	}

	var patch models.UpdateComparisonReportInput
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	report, err := h.store.UpdateReport(id, &patch)
	if err != nil {
		return storeError(err, "Failed to update comparison report")
	}
	return c.JSON(report)
}

// DeleteReport deletes a stored report. Deleting an absent record is 404.
func (h *ReportHandlers) DeleteReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid report ID")
	}

	if err := h.store.DeleteReport(id); err != nil {
		return storeError(err, "Failed to delete comparison report")
	}
	return c.JSON(fiber.Map{"message": "report deleted"})
}
