package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-pagedoc/internal/config"
)

// envPrefix marks pagedoc environment variables.
const envPrefix = "PAGEDOC_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // PAGEDOC_CONFIG: config file name or path
	Style      string        // PAGEDOC_STYLE: CSS style name, path or inline CSS
	Timeout    time.Duration // PAGEDOC_TIMEOUT: page load timeout

	PageSize  string   // PAGEDOC_PAGE_SIZE: preset or WIDTHxHEIGHT
	Margin    *float64 // PAGEDOC_MARGIN: page margin in mm
	Filename  string   // PAGEDOC_FILENAME: export file name
	OutputDir string   // PAGEDOC_OUTPUT_DIR: export directory
	AssetPath string   // PAGEDOC_ASSET_PATH: custom asset directory
	Addr      string   // PAGEDOC_ADDR: preview server address
	Workers   int      // PAGEDOC_WORKERS: parallel workers
}

// knownEnvVars lists valid PAGEDOC_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PAGEDOC_CONFIG":     true,
	"PAGEDOC_STYLE":      true,
	"PAGEDOC_TIMEOUT":    true,
	"PAGEDOC_PAGE_SIZE":  true,
	"PAGEDOC_MARGIN":     true,
	"PAGEDOC_FILENAME":   true,
	"PAGEDOC_OUTPUT_DIR": true,
	"PAGEDOC_ASSET_PATH": true,
	"PAGEDOC_ADDR":       true,
	"PAGEDOC_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numeric or duration values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("PAGEDOC_CONFIG"),
		Style:      os.Getenv("PAGEDOC_STYLE"),
		PageSize:   os.Getenv("PAGEDOC_PAGE_SIZE"),
		Filename:   os.Getenv("PAGEDOC_FILENAME"),
		OutputDir:  os.Getenv("PAGEDOC_OUTPUT_DIR"),
		AssetPath:  os.Getenv("PAGEDOC_ASSET_PATH"),
		Addr:       os.Getenv("PAGEDOC_ADDR"),
	}

	if timeout := os.Getenv("PAGEDOC_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if margin := os.Getenv("PAGEDOC_MARGIN"); margin != "" {
		if m, err := strconv.ParseFloat(margin, 64); err == nil {
			cfg.Margin = &m
		}
	}

	if workers := os.Getenv("PAGEDOC_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes warnings for unrecognized PAGEDOC_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment values over the loaded config.
// Resulting priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by applyFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.Timeout > 0 {
		cfg.Export.Timeout = env.Timeout.String()
	}
	if env.PageSize != "" {
		cfg.Page.Preset = env.PageSize
		cfg.Page.Width, cfg.Page.Height = 0, 0
	}
	if env.Margin != nil {
		cfg.Page.Margin = *env.Margin
	}
	if env.Filename != "" {
		cfg.Export.Filename = env.Filename
	}
	if env.OutputDir != "" {
		cfg.Export.OutputDir = env.OutputDir
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
}
