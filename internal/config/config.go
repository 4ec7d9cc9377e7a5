package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dgallion1/lessongest/internal/outline"
)

// Snapshot backends.
const (
	BackendFile      = "file"
	BackendPathstore = "pathstore"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Ingestion
	PDFFallbackPdftotext bool
	OCRLanguages         string

	// Snapshot storage
	SnapshotBackend  string
	SnapshotDir      string
	SnapshotCacheTTL time.Duration
	PathstoreURL     string
	PathstoreAPIKey  string

	// Rendering
	DeckFontPath string

	LogLevel slog.Level

	// Line classifier thresholds
	HeadingColonMaxLen int
	UpperHeadingMaxLen int
	ShortHeadingLen    int
	NumeralLevelCutoff int
}

// LoadEnvFile loads variables from a dotenv file without overriding ones
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func Load() Config {
	d := outline.DefaultHeuristics()
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("LESSONGEST_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
		OCRLanguages:         envOr("OCR_LANGUAGES", "ara+eng"),

		SnapshotBackend:  strings.ToLower(envOr("SNAPSHOT_BACKEND", BackendFile)),
		SnapshotDir:      envOr("SNAPSHOT_DIR", "data/sessions"),
		SnapshotCacheTTL: envDuration("SNAPSHOT_CACHE_TTL", 10*time.Minute),
		PathstoreURL:     envOr("PATHSTORE_URL", "http://localhost:8080"),
		PathstoreAPIKey:  os.Getenv("PATHSTORE_API_KEY"),

		DeckFontPath: os.Getenv("DECK_FONT_PATH"),

		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),

		HeadingColonMaxLen: envInt("HEADING_COLON_MAX_LEN", d.HeadingColonMaxLen),
		UpperHeadingMaxLen: envInt("UPPER_HEADING_MAX_LEN", d.UpperMaxLen),
		ShortHeadingLen:    envInt("SHORT_HEADING_LEN", d.ShortHeadingLen),
		NumeralLevelCutoff: envInt("NUMERAL_LEVEL_CUTOFF", d.NumeralLevelCutoff),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.SnapshotCacheTTL < 0 {
		cfg.SnapshotCacheTTL = 0
	}
	if cfg.HeadingColonMaxLen <= 0 {
		cfg.HeadingColonMaxLen = d.HeadingColonMaxLen
	}
	if cfg.UpperHeadingMaxLen <= 0 {
		cfg.UpperHeadingMaxLen = d.UpperMaxLen
	}
	if cfg.ShortHeadingLen <= 0 {
		cfg.ShortHeadingLen = d.ShortHeadingLen
	}
	if cfg.NumeralLevelCutoff <= 0 {
		cfg.NumeralLevelCutoff = d.NumeralLevelCutoff
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("LESSONGEST_API_KEY is required")
	}
	switch c.SnapshotBackend {
	case BackendFile:
		if c.SnapshotDir == "" {
			return fmt.Errorf("SNAPSHOT_DIR is required for the file backend")
		}
	case BackendPathstore:
		if c.PathstoreAPIKey == "" {
			return fmt.Errorf("PATHSTORE_API_KEY is required for the pathstore backend")
		}
	default:
		return fmt.Errorf("unknown SNAPSHOT_BACKEND %q", c.SnapshotBackend)
	}
	return nil
}

// Heuristics returns the line classifier settings with the configured
// thresholds and the default patterns.
func (c Config) Heuristics() outline.Heuristics {
	h := outline.DefaultHeuristics()
	h.HeadingColonMaxLen = c.HeadingColonMaxLen
	h.UpperMaxLen = c.UpperHeadingMaxLen
	h.ShortHeadingLen = c.ShortHeadingLen
	h.NumeralLevelCutoff = c.NumeralLevelCutoff
	return h
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			return l
		}
	}
	return fallback
}
