package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dbm-eval/benchboard/pkg/api"
)

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	devMode := flag.Bool("dev", false, "Run in development mode")
	port := flag.Int("port", 0, "Server port (default: 8080)")
	dbPath := flag.String("db", "", "Database path (default: ./data/benchboard.db)")
	uploadDir := flag.String("uploads", "", "Dataset upload directory (default: ./data/uploads)")
	configPath := flag.String("config", "", "Optional YAML config file")
	flag.Parse()

	// Defaults, then config file, then environment, then flags.
	cfg := api.DefaultConfig()
	if *configPath != "" {
		if err := cfg.ApplyFile(*configPath); err != nil {
			log.Fatalf("Failed to load config file: %v", err)
		}
	}
	cfg.ApplyEnv()

	if *devMode {
		cfg.DevMode = true
	}
	if *port > 0 {
		cfg.Port = *port
	}
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}
	if *uploadDir != "" {
		cfg.UploadDir = *uploadDir
	}

	if cfg.DatabasePath != "" {
		ensureDir(cfg.DatabasePath)
	}

	server, err := api.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down...")
		if err := server.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
		os.Exit(0)
	}()

	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func ensureDir(path string) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		os.MkdirAll(dir, 0755)
	}
}
