// Package config loads pagedoc configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-pagedoc"
	"github.com/alnah/go-pagedoc/internal/fileutil"
	"github.com/alnah/go-pagedoc/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory name under the user config directory.
const AppDir = "go-pagedoc"

// Field length limits.
const (
	MaxFilenameLength = 200
	MaxPathLength     = 4096
	MaxPresetLength   = 32
	MaxAddrLength     = 255
)

// DefaultServerAddr is the preview server listen address.
const DefaultServerAddr = ":8080"

// Config holds all configuration for parsing, export and preview.
type Config struct {
	Page   PageConfig   `yaml:"page"`
	Export ExportConfig `yaml:"export"`
	Editor EditorConfig `yaml:"editor"`
	Style  string       `yaml:"style"` // style name, CSS file path or inline CSS
	Assets AssetsConfig `yaml:"assets"`
	Server ServerConfig `yaml:"server"`
}

// PageConfig selects the page size. Preset is a preset name or "WxH" in
// millimeters. Width and Height override Preset when both are set.
type PageConfig struct {
	Preset string  `yaml:"preset"`
	Width  float64 `yaml:"width"`  // mm
	Height float64 `yaml:"height"` // mm
	Margin float64 `yaml:"margin"` // mm
}

// ExportConfig defines export options.
type ExportConfig struct {
	Filename  string `yaml:"filename"`  // without extension
	Timeout   string `yaml:"timeout"`   // Go duration, e.g. "60s"
	OutputDir string `yaml:"outputDir"` // empty = next to the source
}

// EditorConfig is passed through to text-editing hosts.
type EditorConfig struct {
	LineNumbers  bool `yaml:"lineNumbers" json:"lineNumbers"`
	LineWrapping bool `yaml:"lineWrapping" json:"lineWrapping"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets
}

// ServerConfig defines preview server options.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns A4 with the default margin, the default export file
// name and both editor options enabled.
func DefaultConfig() *Config {
	return &Config{
		Page: PageConfig{
			Preset: pagedoc.DefaultPreset,
			Margin: pagedoc.DefaultMargin,
		},
		Export: ExportConfig{Filename: pagedoc.DefaultFilename},
		Editor: EditorConfig{LineNumbers: true, LineWrapping: true},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// PageSize resolves the configured page size.
func (c *Config) PageSize() (pagedoc.PageSize, error) {
	p := c.Page
	if p.Width != 0 || p.Height != 0 {
		size := pagedoc.PageSize{Width: p.Width, Height: p.Height, Margin: p.Margin}
		return size, size.Validate()
	}
	preset := p.Preset
	if preset == "" {
		preset = pagedoc.DefaultPreset
	}
	return pagedoc.ParsePageSize(preset, p.Margin)
}

// TimeoutDuration returns the export timeout, zero when unset.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Export.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Export.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: export.timeout %q: %v", ErrInvalidValue, c.Export.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: export.timeout must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// Validate checks field lengths and values. Called automatically by
// LoadConfig, but available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("page.preset", c.Page.Preset, MaxPresetLength); err != nil {
		return err
	}
	if (c.Page.Width == 0) != (c.Page.Height == 0) {
		return fmt.Errorf("%w: page.width and page.height must be set together", ErrInvalidValue)
	}
	if _, err := c.PageSize(); err != nil {
		return fmt.Errorf("page: %w", err)
	}

	if err := validateFieldLength("export.filename", c.Export.Filename, MaxFilenameLength); err != nil {
		return err
	}
	if fileutil.IsFilePath(c.Export.Filename) {
		return fmt.Errorf("%w: export.filename %q must not contain path separators", ErrInvalidValue, c.Export.Filename)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if err := validateFieldLength("export.outputDir", c.Export.OutputDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name over the
// defaults. If nameOrPath contains a path separator, it's treated as a file
// path. Otherwise, it's searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFileStrict(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists the locations tried for a config name, in order:
// current directory, then the user config directory (.yaml before .yml).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing search path for name.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
