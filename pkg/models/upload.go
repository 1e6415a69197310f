package models

import (
	"time"

	"github.com/google/uuid"
)

// UploadSource records how a dataset entered the system.
type UploadSource string

const (
	// UploadSourceAPI is a file received on the upload endpoint.
	UploadSourceAPI UploadSource = "api"
	// UploadSourceWatcher is a file dropped into the upload directory
	// out-of-band and picked up by the directory watcher.
	UploadSourceWatcher UploadSource = "watcher"
)

// DatasetUpload is the record kept for every accepted dataset file. The ID is
// assigned at ingest and is independent of the storage filename.
type DatasetUpload struct {
	ID          uuid.UUID    `json:"id"`
	Filename    string       `json:"filename"`
	StoragePath string       `json:"path"`
	SizeBytes   int64        `json:"size"`
	Source      UploadSource `json:"source"`
	CreatedAt   time.Time    `json:"created_at"`
}
