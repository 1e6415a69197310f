package api

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that YAML-decodes from strings like "90s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds the server configuration. Values come from defaults, then an
// optional YAML config file, then the environment, then flags — later layers
// win.
type Config struct {
	Port             int      `yaml:"port"`
	DevMode          bool     `yaml:"dev_mode"`
	DatabasePath     string   `yaml:"database_path"`
	UploadDir        string   `yaml:"upload_dir"`
	MaxUploadBytes   int64    `yaml:"max_upload_bytes"`
	ProcessorURL     string   `yaml:"processor_url"`
	ProcessorTimeout Duration `yaml:"processor_timeout"`
	WatchUploadDir   bool     `yaml:"watch_upload_dir"`
}

const (
	defaultPort           = 8080
	defaultDatabasePath   = "./data/benchboard.db"
	defaultUploadDir      = "./data/uploads"
	defaultMaxUploadBytes = 5 << 30 // 5 GiB
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Port:           defaultPort,
		DatabasePath:   defaultDatabasePath,
		UploadDir:      defaultUploadDir,
		MaxUploadBytes: defaultMaxUploadBytes,
		WatchUploadDir: true,
	}
}

// LoadConfigFromEnv loads config from the environment on top of the defaults.
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overlays environment variables onto the config.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		c.UploadDir = v
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.MaxUploadBytes = n
		}
	}
	if v := os.Getenv("PROCESSOR_URL"); v != "" {
		c.ProcessorURL = v
	}
	if v := os.Getenv("PROCESSOR_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.ProcessorTimeout = Duration(d)
		}
	}
	if v := os.Getenv("DEV_MODE"); v == "true" || v == "1" {
		c.DevMode = true
	}
	if v := os.Getenv("WATCH_UPLOAD_DIR"); v == "false" || v == "0" {
		c.WatchUploadDir = false
	}
}

// ApplyFile overlays a YAML config file onto the config. A missing file is
// not an error when the path was not explicitly requested.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}
