package ingest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbm-eval/benchboard/pkg/models"
	"github.com/dbm-eval/benchboard/pkg/store"
)

func TestWatcherRegistersDroppedFile(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer s.Close()

	w, err := NewWatcher(dir, s)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	path := filepath.Join(dir, "dropped.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n1,2,3\n"), 0644))

	require.Eventually(t, func() bool {
		u, err := s.GetDatasetUploadByPath(path)
		return err == nil && u.Source == models.UploadSourceWatcher
	}, 5*time.Second, 50*time.Millisecond)

	u, err := s.GetDatasetUploadByPath(path)
	require.NoError(t, err)
	assert.Equal(t, "dropped.csv", u.Filename)
	assert.Equal(t, int64(12), u.SizeBytes)
}

func TestWatcherSkipsKnownFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer s.Close()

	// Simulate the upload endpoint: the record exists before the bytes land.
	path := filepath.Join(dir, "api-upload.csv")
	require.NoError(t, s.CreateDatasetUpload(&models.DatasetUpload{
		Filename:    "api-upload.csv",
		StoragePath: path,
		SizeBytes:   4,
		Source:      models.UploadSourceAPI,
	}))

	w, err := NewWatcher(dir, s)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("x,y\n"), 0644))

	// Give the watcher a moment, then confirm the record was not replaced.
	time.Sleep(300 * time.Millisecond)
	u, err := s.GetDatasetUploadByPath(path)
	require.NoError(t, err)
	assert.Equal(t, models.UploadSourceAPI, u.Source)

	uploads, err := s.ListDatasetUploads()
	require.NoError(t, err)
	assert.Len(t, uploads, 1)
}
