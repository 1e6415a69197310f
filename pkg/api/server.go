// Package api wires the HTTP surface of the benchmarking dashboard: CRUD
// over comparison reports and users, dataset ingest, and the two-engine
// comparison endpoints.
package api

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dbm-eval/benchboard/pkg/api/handlers"
	"github.com/dbm-eval/benchboard/pkg/engines"
	"github.com/dbm-eval/benchboard/pkg/ingest"
	"github.com/dbm-eval/benchboard/pkg/store"
)

// Server owns the Fiber app and every long-lived collaborator: the store
// handle, the websocket hub and the upload-directory watcher. Lifecycle is
// explicit — nothing connects at import time.
type Server struct {
	app     *fiber.App
	cfg     Config
	store   store.Store
	hub     *handlers.Hub
	watcher *ingest.Watcher
}

// NewServer builds a fully wired server from config.
func NewServer(cfg Config) (*Server, error) {
	st, err := store.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	hub := handlers.NewHub()
	go hub.Run()

	var client *engines.Client
	if cfg.ProcessorURL != "" {
		client = engines.NewClient(cfg.ProcessorURL, time.Duration(cfg.ProcessorTimeout))
	}

	app := fiber.New(fiber.Config{
		// Headroom over the dataset limit for multipart framing.
		BodyLimit:    int(cfg.MaxUploadBytes) + 10<<20,
		ErrorHandler: errorHandler,
	})
	if cfg.DevMode {
		app.Use(cors.New())
	}

	s := &Server{app: app, cfg: cfg, store: st, hub: hub}
	s.registerRoutes(client)

	if cfg.WatchUploadDir {
		watcher, err := ingest.NewWatcher(cfg.UploadDir, st)
		if err != nil {
			log.Printf("[api] upload watcher unavailable: %v", err)
		} else if err := watcher.Start(); err != nil {
			log.Printf("[api] upload watcher failed to start: %v", err)
		} else {
			s.watcher = watcher
		}
	}

	return s, nil
}

func (s *Server) registerRoutes(client *engines.Client) {
	reports := handlers.NewReportHandlers(s.store)
	users := handlers.NewUserHandlers(s.store)
	uploads := handlers.NewUploadHandlers(s.store, s.cfg.UploadDir, s.cfg.MaxUploadBytes)
	compare := handlers.NewCompareHandlers(s.store, uploads, client, s.hub)

	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api")

	api.Post("/reports", reports.CreateReport)
	api.Get("/reports", reports.ListReports)
	api.Get("/reports/:id", reports.GetReport)
	api.Put("/reports/:id", reports.UpdateReport)
	api.Delete("/reports/:id", reports.DeleteReport)

	api.Post("/users", users.CreateUser)
	api.Get("/users", users.ListUsers)
	api.Get("/users/:id", users.GetUser)
	api.Put("/users/:id", users.UpdateUser)
	api.Delete("/users/:id", users.DeleteUser)

	api.Post("/dataset/upload", uploads.UploadDataset)
	api.Get("/datasets", uploads.ListDatasets)

	api.Post("/compare", compare.Compare)
	api.Post("/upload-and-process", compare.UploadAndProcess)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	api.Get("/ws", s.hub.Handler())
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("[api] listening on :%d", s.cfg.Port)
	return s.app.Listen(fmt.Sprintf(":%d", s.cfg.Port))
}

// Shutdown stops the listener and releases every owned resource.
func (s *Server) Shutdown() error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	s.hub.Close()
	err := s.app.Shutdown()
	if cerr := s.store.Close(); err == nil {
		err = cerr
	}
	return err
}

// errorHandler renders every handler error as {error: message} with the
// matching status code.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
