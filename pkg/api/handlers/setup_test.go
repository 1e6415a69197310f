package handlers

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/dbm-eval/benchboard/pkg/store"
)

type testEnv struct {
	App     *fiber.App
	Store   *store.SQLiteStore
	TempDir string
	Hub     *Hub
}

// setupTestEnv creates a fresh Fiber app backed by a temporary sqlite store,
// with the same error rendering the real server uses.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tempDir := t.TempDir()

	s, err := store.NewSQLiteStore(filepath.Join(tempDir, "benchboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Close)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	return &testEnv{App: app, Store: s, TempDir: tempDir, Hub: hub}
}

// multipartDataset builds a multipart body with one "dataset" file field.
func multipartDataset(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("dataset", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func jsonRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, target, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return body
}
