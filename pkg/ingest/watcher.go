// Package ingest registers dataset files that appear in the upload directory
// outside the upload endpoint (scp, volume mounts, operators copying files by
// hand), so the dashboard lists them like any other dataset.
package ingest

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/dbm-eval/benchboard/pkg/models"
	"github.com/dbm-eval/benchboard/pkg/store"
	"github.com/dbm-eval/benchboard/pkg/telemetry"
)

// Watcher watches the upload directory and records files it has not seen.
type Watcher struct {
	dir   string
	store store.Store
	fs    *fsnotify.Watcher
	done  chan struct{}
}

// NewWatcher creates a watcher for dir. Start must be called to begin
// watching.
func NewWatcher(dir string, s store.Store) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		dir:   dir,
		store: s,
		fs:    fs,
		done:  make(chan struct{}),
	}, nil
}

// Start begins watching the upload directory in a background goroutine.
func (w *Watcher) Start() error {
	if err := w.fs.Add(w.dir); err != nil {
		return err
	}
	go w.loop()
	log.Printf("[ingest] watching %s for dropped datasets", w.dir)
	return nil
}

// Stop ends the watch. Safe to call once.
func (w *Watcher) Stop() {
	close(w.done)
	w.fs.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) {
				w.register(event.Name)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("[ingest] watch error: %v", err)
		}
	}
}

// register records a file if it is a regular file not already known. Files
// written by the upload endpoint are recorded before the bytes land, so they
// are already present here and skipped.
func (w *Watcher) register(path string) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}

	if _, err := w.store.GetDatasetUploadByPath(path); err == nil {
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("[ingest] lookup failed for %s: %v", path, err)
		return
	}

	upload := &models.DatasetUpload{
		ID:          uuid.New(),
		Filename:    base,
		StoragePath: path,
		SizeBytes:   info.Size(),
		Source:      models.UploadSourceWatcher,
	}
	if err := w.store.CreateDatasetUpload(upload); err != nil {
		log.Printf("[ingest] failed to record %s: %v", path, err)
		return
	}
	telemetry.UploadsTotal.WithLabelValues(string(models.UploadSourceWatcher)).Inc()
	log.Printf("[ingest] registered dropped dataset %s (%d bytes) as %s", base, info.Size(), upload.ID)
}
