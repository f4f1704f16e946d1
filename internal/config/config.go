// Package config loads service configuration from environment variables.
//
// Every knob has a working default so a bare `footsizer` starts locally
// without setup. Pipeline parameters live here only as documented
// defaults; they are passed explicitly into each pipeline invocation.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dougdotcon/footsizer-backend/internal/pipeline"
)

// Config holds the service configuration.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string

	// UploadDir is the directory uploaded images are persisted to.
	UploadDir string

	// CORSOrigins lists the allowed CORS origins. A single "*" allows all
	// origins, the permissive default for development.
	CORSOrigins []string

	// MaxImageBytes caps the decoded upload size.
	MaxImageBytes int64

	// Pipeline carries the measurement parameters passed into each
	// pipeline invocation.
	Pipeline pipeline.Config

	// LogLevel is the minimum level for structured logs.
	LogLevel slog.Level
}

// Load reads configuration from FOOTSIZER_* environment variables,
// falling back to defaults for anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:          getEnvOrDefault("FOOTSIZER_ADDR", ":8080"),
		UploadDir:     getEnvOrDefault("FOOTSIZER_UPLOAD_DIR", "uploads"),
		CORSOrigins:   splitCSV(getEnvOrDefault("FOOTSIZER_CORS_ORIGINS", "*")),
		MaxImageBytes: 10 * 1024 * 1024,
		Pipeline:      pipeline.DefaultConfig(),
		LogLevel:      slog.LevelInfo,
	}

	if v := os.Getenv("FOOTSIZER_MAX_IMAGE_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid FOOTSIZER_MAX_IMAGE_BYTES %q", v)
		}
		cfg.MaxImageBytes = n
	}

	var err error
	if cfg.Pipeline.ThresholdLow, err = getEnvInt("FOOTSIZER_THRESHOLD_LOW", cfg.Pipeline.ThresholdLow); err != nil {
		return nil, err
	}
	if cfg.Pipeline.ThresholdHigh, err = getEnvInt("FOOTSIZER_THRESHOLD_HIGH", cfg.Pipeline.ThresholdHigh); err != nil {
		return nil, err
	}
	if cfg.Pipeline.ThresholdLow < 0 || cfg.Pipeline.ThresholdHigh > 255 ||
		cfg.Pipeline.ThresholdLow > cfg.Pipeline.ThresholdHigh {
		return nil, fmt.Errorf("invalid edge thresholds %d/%d: want 0 <= low <= high <= 255",
			cfg.Pipeline.ThresholdLow, cfg.Pipeline.ThresholdHigh)
	}

	if v := os.Getenv("FOOTSIZER_CONVERSION_FACTOR"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("invalid FOOTSIZER_CONVERSION_FACTOR %q", v)
		}
		cfg.Pipeline.ConversionFactor = f
	}

	switch strings.ToLower(os.Getenv("FOOTSIZER_LOG_LEVEL")) {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	case "", "info":
		// default
	default:
		return nil, fmt.Errorf("invalid FOOTSIZER_LOG_LEVEL %q", os.Getenv("FOOTSIZER_LOG_LEVEL"))
	}

	return cfg, nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
