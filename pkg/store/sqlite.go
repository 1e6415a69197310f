package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dbm-eval/benchboard/pkg/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS comparison_reports (
	id                  TEXT PRIMARY KEY,
	faster_system       TEXT NOT NULL,
	execution_time_diff REAL NOT NULL,
	cpu_diff            REAL NOT NULL,
	memory_diff         REAL NOT NULL,
	disk_read_diff      REAL NOT NULL,
	disk_write_diff     REAL NOT NULL,
	created_at          TIMESTAMP NOT NULL,
	updated_at          TIMESTAMP
);

CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP
);

CREATE TABLE IF NOT EXISTS dataset_uploads (
	id           TEXT PRIMARY KEY,
	filename     TEXT NOT NULL,
	storage_path TEXT NOT NULL UNIQUE,
	size_bytes   INTEGER NOT NULL,
	source       TEXT NOT NULL,
	created_at   TIMESTAMP NOT NULL
);
`

// SQLiteStore implements Store on a local sqlite database. The handle is
// constructed and closed by the process entry point; nothing here runs at
// import time.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite serializes writers; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.Printf("[store] sqlite database ready at %s", path)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ---------------------------------------------------------------------------
// Comparison reports
// ---------------------------------------------------------------------------

func (s *SQLiteStore) CreateReport(in *models.CreateComparisonReportInput) (*models.ComparisonReport, error) {
	if err := validateCreateReport(in); err != nil {
		return nil, err
	}

	report := &models.ComparisonReport{
		ID:                uuid.New(),
		FasterSystem:      *in.FasterSystem,
		ExecutionTimeDiff: *in.ExecutionTimeDiff,
		CPUDiff:           *in.CPUDiff,
		MemoryDiff:        *in.MemoryDiff,
		DiskReadDiff:      *in.DiskReadDiff,
		DiskWriteDiff:     *in.DiskWriteDiff,
		CreatedAt:         time.Now().UTC(),
	}

	_, err := s.db.Exec(`INSERT INTO comparison_reports
		(id, faster_system, execution_time_diff, cpu_diff, memory_diff, disk_read_diff, disk_write_diff, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID.String(), string(report.FasterSystem), report.ExecutionTimeDiff,
		report.CPUDiff, report.MemoryDiff, report.DiskReadDiff, report.DiskWriteDiff,
		report.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comparison report: %w", err)
	}
	return report, nil
}

func validateCreateReport(in *models.CreateComparisonReportInput) error {
	var missing []string
	if in.FasterSystem == nil || !in.FasterSystem.Valid() {
		missing = append(missing, "faster_system")
	}
	for _, f := range []struct {
		name string
		val  *float64
	}{
		{"execution_time_diff", in.ExecutionTimeDiff},
		{"cpu_diff", in.CPUDiff},
		{"memory_diff", in.MemoryDiff},
		{"disk_read_diff", in.DiskReadDiff},
		{"disk_write_diff", in.DiskWriteDiff},
	} {
		if f.val == nil {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

func (s *SQLiteStore) GetReport(id uuid.UUID) (*models.ComparisonReport, error) {
	row := s.db.QueryRow(`SELECT id, faster_system, execution_time_diff, cpu_diff,
		memory_diff, disk_read_diff, disk_write_diff, created_at, updated_at
		FROM comparison_reports WHERE id = ?`, id.String())
	return scanReport(row)
}

func (s *SQLiteStore) ListReports() ([]models.ComparisonReport, error) {
	rows, err := s.db.Query(`SELECT id, faster_system, execution_time_diff, cpu_diff,
		memory_diff, disk_read_diff, disk_write_diff, created_at, updated_at
		FROM comparison_reports ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list comparison reports: %w", err)
	}
	defer rows.Close()

	var reports []models.ComparisonReport
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *r)
	}
	return reports, rows.Err()
}

func (s *SQLiteStore) UpdateReport(id uuid.UUID, patch *models.UpdateComparisonReportInput) (*models.ComparisonReport, error) {
	report, err := s.GetReport(id)
	if err != nil {
		return nil, err
	}

	if patch.FasterSystem != nil {
		if !patch.FasterSystem.Valid() {
			return nil, &ValidationError{Fields: []string{"faster_system"}}
		}
		report.FasterSystem = *patch.FasterSystem
	}
	if patch.ExecutionTimeDiff != nil {
		report.ExecutionTimeDiff = *patch.ExecutionTimeDiff
	}
	if patch.CPUDiff != nil {
		report.CPUDiff = *patch.CPUDiff
	}
	if patch.MemoryDiff != nil {
		report.MemoryDiff = *patch.MemoryDiff
	}
	if patch.DiskReadDiff != nil {
		report.DiskReadDiff = *patch.DiskReadDiff
	}
	if patch.DiskWriteDiff != nil {
		report.DiskWriteDiff = *patch.DiskWriteDiff
	}

	now := time.Now().UTC()
	report.UpdatedAt = &now

	_, err = s.db.Exec(`UPDATE comparison_reports SET faster_system = ?,
		execution_time_diff = ?, cpu_diff = ?, memory_diff = ?,
		disk_read_diff = ?, disk_write_diff = ?, updated_at = ?
		WHERE id = ?`,
		string(report.FasterSystem), report.ExecutionTimeDiff, report.CPUDiff,
		report.MemoryDiff, report.DiskReadDiff, report.DiskWriteDiff, now, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to update comparison report: %w", err)
	}
	return report, nil
}

func (s *SQLiteStore) DeleteReport(id uuid.UUID) error {
	return s.deleteByID("comparison_reports", id)
}

func scanReport(row interface{ Scan(...any) error }) (*models.ComparisonReport, error) {
	var r models.ComparisonReport
	var idStr, faster string
	var updatedAt sql.NullTime
	err := row.Scan(&idStr, &faster, &r.ExecutionTimeDiff, &r.CPUDiff,
		&r.MemoryDiff, &r.DiskReadDiff, &r.DiskWriteDiff, &r.CreatedAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan comparison report: %w", err)
	}
	r.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt report id %q: %w", idStr, err)
	}
	r.FasterSystem = models.EngineName(faster)
	if updatedAt.Valid {
		t := updatedAt.Time
		r.UpdatedAt = &t
	}
	return &r, nil
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

func (s *SQLiteStore) CreateUser(in *models.CreateUserInput) (*models.User, error) {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Email) == "" || !strings.Contains(in.Email, "@") {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	user := &models.User{
		ID:        uuid.New(),
		Name:      in.Name,
		Email:     in.Email,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(`INSERT INTO users (id, name, email, created_at) VALUES (?, ?, ?, ?)`,
		user.ID.String(), user.Name, user.Email, user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (s *SQLiteStore) GetUser(id uuid.UUID) (*models.User, error) {
	row := s.db.QueryRow(`SELECT id, name, email, created_at, updated_at FROM users WHERE id = ?`, id.String())
	return scanUser(row)
}

func (s *SQLiteStore) ListUsers() ([]models.User, error) {
	rows, err := s.db.Query(`SELECT id, name, email, created_at, updated_at FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (s *SQLiteStore) UpdateUser(id uuid.UUID, patch *models.UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, &ValidationError{Fields: []string{"name"}}
		}
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		if !strings.Contains(*patch.Email, "@") {
			return nil, &ValidationError{Fields: []string{"email"}}
		}
		user.Email = *patch.Email
	}

	now := time.Now().UTC()
	user.UpdatedAt = &now

	_, err = s.db.Exec(`UPDATE users SET name = ?, email = ?, updated_at = ? WHERE id = ?`,
		user.Name, user.Email, now, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *SQLiteStore) DeleteUser(id uuid.UUID) error {
	return s.deleteByID("users", id)
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	var idStr string
	var updatedAt sql.NullTime
	err := row.Scan(&idStr, &u.Name, &u.Email, &u.CreatedAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	u.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt user id %q: %w", idStr, err)
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		u.UpdatedAt = &t
	}
	return &u, nil
}

// ---------------------------------------------------------------------------
// Dataset uploads
// ---------------------------------------------------------------------------

func (s *SQLiteStore) CreateDatasetUpload(u *models.DatasetUpload) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`INSERT INTO dataset_uploads (id, filename, storage_path, size_bytes, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID.String(), u.Filename, u.StoragePath, u.SizeBytes, string(u.Source), u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert dataset upload: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListDatasetUploads() ([]models.DatasetUpload, error) {
	rows, err := s.db.Query(`SELECT id, filename, storage_path, size_bytes, source, created_at
		FROM dataset_uploads ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list dataset uploads: %w", err)
	}
	defer rows.Close()

	var uploads []models.DatasetUpload
	for rows.Next() {
		var u models.DatasetUpload
		var idStr, source string
		if err := rows.Scan(&idStr, &u.Filename, &u.StoragePath, &u.SizeBytes, &source, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dataset upload: %w", err)
		}
		u.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt upload id %q: %w", idStr, err)
		}
		u.Source = models.UploadSource(source)
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}

func (s *SQLiteStore) GetDatasetUploadByPath(path string) (*models.DatasetUpload, error) {
	var u models.DatasetUpload
	var idStr, source string
	err := s.db.QueryRow(`SELECT id, filename, storage_path, size_bytes, source, created_at
		FROM dataset_uploads WHERE storage_path = ?`, path).
		Scan(&idStr, &u.Filename, &u.StoragePath, &u.SizeBytes, &source, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan dataset upload: %w", err)
	}
	u.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt upload id %q: %w", idStr, err)
	}
	u.Source = models.UploadSource(source)
	return &u, nil
}

func (s *SQLiteStore) DeleteDatasetUpload(id uuid.UUID) error {
	return s.deleteByID("dataset_uploads", id)
}

// deleteByID removes a single record, reporting ErrNotFound when the record
// did not exist before the call.
func (s *SQLiteStore) deleteByID(table string, id uuid.UUID) error {
	res, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id.String())
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
