package config

// Notes:
// - LoadConfig: search-path resolution through the user config dir is
//   covered by SearchPaths ordering; resolving against the real home
//   directory is not exercised.
// - Page sizes are validated by the root package; here we only check that
//   config values reach it and errors surface.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-pagedoc"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestDefaultConfig
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Page.Preset != "a4" {
		t.Errorf("Page.Preset = %q, want %q", cfg.Page.Preset, "a4")
	}
	if cfg.Page.Margin != pagedoc.DefaultMargin {
		t.Errorf("Page.Margin = %v, want %v", cfg.Page.Margin, pagedoc.DefaultMargin)
	}
	if cfg.Export.Filename != "document" {
		t.Errorf("Export.Filename = %q, want %q", cfg.Export.Filename, "document")
	}
	if !cfg.Editor.LineNumbers || !cfg.Editor.LineWrapping {
		t.Errorf("Editor = %+v, want both enabled", cfg.Editor)
	}
	if cfg.Server.Addr != DefaultServerAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultServerAddr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestConfig_PageSize
// ---------------------------------------------------------------------------

func TestConfig_PageSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    PageConfig
		want    pagedoc.PageSize
		wantErr error
	}{
		{
			name: "preset",
			page: PageConfig{Preset: "letter", Margin: 10},
			want: pagedoc.PageSize{Width: 215.9, Height: 279.4, Margin: 10},
		},
		{
			name: "empty preset falls back to a4",
			page: PageConfig{Margin: 20},
			want: pagedoc.PageSize{Width: 210, Height: 297, Margin: 20},
		},
		{
			name: "dimension string in preset",
			page: PageConfig{Preset: "100x150mm", Margin: 5},
			want: pagedoc.PageSize{Width: 100, Height: 150, Margin: 5},
		},
		{
			name: "explicit dimensions override preset",
			page: PageConfig{Preset: "a4", Width: 300, Height: 120, Margin: 0},
			want: pagedoc.PageSize{Width: 300, Height: 120, Margin: 0},
		},
		{
			name:    "unknown preset",
			page:    PageConfig{Preset: "tabloid", Margin: 20},
			wantErr: pagedoc.ErrUnknownPreset,
		},
		{
			name:    "margin too large for page",
			page:    PageConfig{Width: 60, Height: 60, Margin: 30},
			wantErr: pagedoc.ErrInvalidMargin,
		},
		{
			name:    "width out of range",
			page:    PageConfig{Width: 10, Height: 100},
			wantErr: pagedoc.ErrInvalidPageSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &Config{Page: tt.page}
			got, err := cfg.PageSize()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("PageSize() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("PageSize() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("PageSize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_TimeoutDuration
// ---------------------------------------------------------------------------

func TestConfig_TimeoutDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		timeout string
		want    time.Duration
		wantErr bool
	}{
		{name: "unset", timeout: "", want: 0},
		{name: "seconds", timeout: "45s", want: 45 * time.Second},
		{name: "minutes", timeout: "2m", want: 2 * time.Minute},
		{name: "not a duration", timeout: "soon", wantErr: true},
		{name: "zero", timeout: "0s", wantErr: true},
		{name: "negative", timeout: "-5s", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &Config{Export: ExportConfig{Timeout: tt.timeout}}
			got, err := cfg.TimeoutDuration()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidValue) {
					t.Fatalf("TimeoutDuration() error = %v, want ErrInvalidValue", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("TimeoutDuration() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("TimeoutDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "filename with separator",
			mutate:  func(c *Config) { c.Export.Filename = "out/report" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "filename too long",
			mutate:  func(c *Config) { c.Export.Filename = strings.Repeat("a", MaxFilenameLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "preset too long",
			mutate:  func(c *Config) { c.Page.Preset = strings.Repeat("a", MaxPresetLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "width without height",
			mutate:  func(c *Config) { c.Page.Width = 100 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "invalid page size",
			mutate:  func(c *Config) { c.Page.Preset = "folio" },
			wantErr: pagedoc.ErrUnknownPreset,
		},
		{
			name:    "invalid timeout",
			mutate:  func(c *Config) { c.Export.Timeout = "forever" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "asset path too long",
			mutate:  func(c *Config) { c.Assets.BasePath = strings.Repeat("a", MaxPathLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "output dir too long",
			mutate:  func(c *Config) { c.Export.OutputDir = strings.Repeat("a", MaxPathLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "addr too long",
			mutate:  func(c *Config) { c.Server.Addr = strings.Repeat("a", MaxAddrLength+1) },
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	if err := validateFieldLength("f", "1234567890", 10); err != nil {
		t.Errorf("value at limit should be valid: %v", err)
	}
	err := validateFieldLength("f", "12345678901", 10)
	if !errors.Is(err, ErrFieldTooLong) {
		t.Fatalf("error = %v, want ErrFieldTooLong", err)
	}
	if !strings.Contains(err.Error(), "11 chars, max 10") {
		t.Errorf("error should report lengths, got %q", err.Error())
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("file overrides only the keys it sets", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `page:
  preset: letter
export:
  timeout: 90s
editor:
  lineNumbers: false
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Page.Preset != "letter" {
			t.Errorf("Page.Preset = %q, want letter", cfg.Page.Preset)
		}
		if cfg.Page.Margin != pagedoc.DefaultMargin {
			t.Errorf("Page.Margin = %v, want default %v", cfg.Page.Margin, pagedoc.DefaultMargin)
		}
		if cfg.Export.Filename != "document" {
			t.Errorf("Export.Filename = %q, want default", cfg.Export.Filename)
		}
		if cfg.Editor.LineNumbers {
			t.Error("Editor.LineNumbers = true, want false")
		}
		if !cfg.Editor.LineWrapping {
			t.Error("Editor.LineWrapping = false, want default true")
		}
		if d, _ := cfg.TimeoutDuration(); d != 90*time.Second {
			t.Errorf("TimeoutDuration() = %v, want 90s", d)
		}
	})

	t.Run("explicit zero margin is kept", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "page:\n  margin: 0\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Page.Margin != 0 {
			t.Errorf("Page.Margin = %v, want 0", cfg.Page.Margin)
		}
	})

	t.Run("custom dimensions", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "page:\n  width: 300\n  height: 120\n  margin: 10\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		size, err := cfg.PageSize()
		if err != nil {
			t.Fatalf("PageSize() error = %v", err)
		}
		if size.Orientation() != pagedoc.OrientationLandscape {
			t.Errorf("expected landscape size, got %s", size)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "style: [unclosed")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "watermark:\n  text: DRAFT\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid values fail validation", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "page:\n  preset: a4\n  margin: 200\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, pagedoc.ErrInvalidMargin) {
			t.Errorf("error = %v, want ErrInvalidMargin", err)
		}
	})

	t.Run("unknown config name returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("pagedoc-config-that-does-not-exist")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestSearchPaths
// ---------------------------------------------------------------------------

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("work")
	if len(paths) < 2 {
		t.Fatalf("expected at least 2 paths, got %v", paths)
	}
	if paths[0] != "work.yaml" || paths[1] != "work.yml" {
		t.Errorf("current directory should be searched first, got %v", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, AppDir) {
			t.Errorf("user path %q should live under %s", p, AppDir)
		}
	}
}
