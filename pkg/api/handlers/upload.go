package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dbm-eval/benchboard/pkg/models"
	"github.com/dbm-eval/benchboard/pkg/store"
	"github.com/dbm-eval/benchboard/pkg/telemetry"
)

// UploadHandlers accepts dataset files and records them. It does not invoke
// processing; that is the upload-and-process endpoint's job.
type UploadHandlers struct {
	store    store.Store
	dir      string
	maxBytes int64
}

// NewUploadHandlers creates a dataset upload handler storing files in dir,
// rejecting anything larger than maxBytes.
func NewUploadHandlers(s store.Store, dir string, maxBytes int64) *UploadHandlers {
	return &UploadHandlers{store: s, dir: dir, maxBytes: maxBytes}
}

// UploadDataset handles POST /api/dataset/upload.
func (h *UploadHandlers) UploadDataset(c *fiber.Ctx) error {
	upload, err := h.saveDataset(c)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "dataset uploaded",
		"uploadId": upload.ID,
		"filename": upload.Filename,
		"path":     upload.StoragePath,
		"size":     upload.SizeBytes,
	})
}

// ListDatasets returns all recorded dataset uploads.
func (h *UploadHandlers) ListDatasets(c *fiber.Ctx) error {
	uploads, err := h.store.ListDatasetUploads()
	if err != nil {
		return storeError(err, "Failed to list datasets")
	}
	if uploads == nil {
		uploads = []models.DatasetUpload{}
	}
	return c.JSON(uploads)
}

// saveDataset pulls the multipart "dataset" field, enforces the size limit,
// and stores the file under an upload-id-prefixed name. The record is written
// before the bytes so the directory watcher never double-registers the file;
// on a write failure both the record and any partial file are removed.
func (h *UploadHandlers) saveDataset(c *fiber.Ctx) (*models.DatasetUpload, error) {
	fh, err := c.FormFile("dataset")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No dataset file in request")
	}

	if fh.Size > h.maxBytes {
		telemetry.UploadsRejectedTotal.WithLabelValues("too_large").Inc()
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("dataset exceeds the %d byte limit", h.maxBytes))
	}

	id := uuid.New()
	filename := sanitizeFilename(fh.Filename)
	storagePath := filepath.Join(h.dir, fmt.Sprintf("%s_%s", id, filename))

	upload := &models.DatasetUpload{
		ID:          id,
		Filename:    filename,
		StoragePath: storagePath,
		SizeBytes:   fh.Size,
		Source:      models.UploadSourceAPI,
	}
	if err := h.store.CreateDatasetUpload(upload); err != nil {
		return nil, storeError(err, "Failed to record dataset upload")
	}

	if err := h.writeFile(c, fh, storagePath); err != nil {
		// No partial file or orphan record is retained on failure.
		os.Remove(storagePath)
		if derr := h.store.DeleteDatasetUpload(id); derr != nil {
			log.Printf("[upload] failed to clean up record %s: %v", id, derr)
		}
		log.Printf("[upload] failed to store %s: %v", filename, err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to store dataset")
	}

	telemetry.UploadsTotal.WithLabelValues(string(models.UploadSourceAPI)).Inc()
	telemetry.UploadBytesTotal.Add(float64(fh.Size))
	log.Printf("[upload] stored dataset %s (%d bytes) as %s", filename, fh.Size, id)
	return upload, nil
}

func (h *UploadHandlers) writeFile(c *fiber.Ctx, fh *multipart.FileHeader, path string) error {
	if err := os.MkdirAll(h.dir, 0755); err != nil {
		return err
	}
	return c.SaveFile(fh, path)
}

// sanitizeFilename strips any path components a client smuggled into the
// multipart filename.
func sanitizeFilename(name string) string {
	base := filepath.Base(filepath.Clean(name))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "dataset"
	}
	return base
}
