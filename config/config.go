package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const appDirName = "videodash"

// Config holds the environment driven configuration for the client.
type Config struct {
	// Remote video service
	APIURL            string        `env:"VIDEODASH_API_URL" envDefault:"http://localhost:5000/api"`
	RequestTimeout    time.Duration `env:"VIDEODASH_REQUEST_TIMEOUT" envDefault:"30s"`
	UploadTimeout     time.Duration `env:"VIDEODASH_UPLOAD_TIMEOUT" envDefault:"10m"`
	RequestsPerSecond float64       `env:"VIDEODASH_REQUESTS_PER_SECOND" envDefault:"0"` // 0 disables client-side limiting
	DeleteConcurrency int           `env:"VIDEODASH_DELETE_CONCURRENCY" envDefault:"0"`  // 0 means one goroutine per selected video

	// Session
	SessionFile string `env:"VIDEODASH_SESSION_FILE"`

	// Logging
	LogLevel string `env:"VIDEODASH_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"VIDEODASH_LOG_FILE"` // "-" logs to stderr

	// Quota hints shown in the dashboard. The server enforces the real limits.
	StorageQuotaBytes   int64 `env:"VIDEODASH_STORAGE_QUOTA_BYTES" envDefault:"52428800"`
	BandwidthQuotaBytes int64 `env:"VIDEODASH_BANDWIDTH_QUOTA_BYTES" envDefault:"104857600"`
}

// Load parses environment variables into Config and fills in path defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("VIDEODASH_API_URL must not be empty")
	}
	if cfg.DeleteConcurrency < 0 {
		cfg.DeleteConcurrency = 0
	}
	if cfg.RequestsPerSecond < 0 {
		cfg.RequestsPerSecond = 0
	}

	if cfg.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		cfg.SessionFile = filepath.Join(dir, appDirName, "session.yaml")
	}

	if cfg.LogFile == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}
		cfg.LogFile = filepath.Join(dir, appDirName, "videodash.log")
	}

	return cfg, nil
}

// LoadEnvFiles loads .env files from the working directory if present.
// Variables already set in the environment win.
func LoadEnvFiles() {
	paths := []string{".env", filepath.Join("..", ".env")}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
