package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dbm-eval/benchboard/pkg/models"
)

// ErrNotFound is returned when a referenced record does not exist. Handlers
// map it to 404.
var ErrNotFound = errors.New("record not found")

// ValidationError reports the fields that made an input unusable. Handlers
// map it to 400.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid or missing fields: %s", strings.Join(e.Fields, ", "))
}

// Store is the persistence boundary for the dashboard. Implementations
// guarantee single-record atomicity only; there are no cross-record
// transactions and none are needed.
type Store interface {
	CreateReport(in *models.CreateComparisonReportInput) (*models.ComparisonReport, error)
	GetReport(id uuid.UUID) (*models.ComparisonReport, error)
	ListReports() ([]models.ComparisonReport, error)
	UpdateReport(id uuid.UUID, patch *models.UpdateComparisonReportInput) (*models.ComparisonReport, error)
	DeleteReport(id uuid.UUID) error

	CreateUser(in *models.CreateUserInput) (*models.User, error)
	GetUser(id uuid.UUID) (*models.User, error)
	ListUsers() ([]models.User, error)
	UpdateUser(id uuid.UUID, patch *models.UpdateUserInput) (*models.User, error)
	DeleteUser(id uuid.UUID) error

	CreateDatasetUpload(u *models.DatasetUpload) error
	ListDatasetUploads() ([]models.DatasetUpload, error)
	GetDatasetUploadByPath(path string) (*models.DatasetUpload, error)
	DeleteDatasetUpload(id uuid.UUID) error

	Close() error
}
