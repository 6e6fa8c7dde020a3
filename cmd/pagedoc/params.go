package main

import (
	"fmt"

	"github.com/alnah/go-pagedoc"
	"github.com/alnah/go-pagedoc/internal/config"
)

// loadConfig loads the config named by the flag or PAGEDOC_CONFIG, then
// layers environment values on top. Without a name, defaults are used.
func loadConfig(common commonFlags, envCfg *envConfig) (*config.Config, error) {
	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// applyPageFlags merges page flags into cfg. Flags win over config.
func applyPageFlags(f pageFlags, cfg *config.Config) {
	if f.size != "" {
		cfg.Page.Preset = f.size
		cfg.Page.Width, cfg.Page.Height = 0, 0
	}
	if f.width != 0 || f.height != 0 {
		cfg.Page.Width, cfg.Page.Height = f.width, f.height
	}
	if f.marginSet {
		cfg.Page.Margin = f.margin
	}
}

// applyAssetFlags merges asset flags into cfg.
func applyAssetFlags(f assetFlags, cfg *config.Config) {
	if f.style != "" {
		cfg.Style = f.style
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
}

// engineOptions translates cfg into engine options.
func engineOptions(cfg *config.Config) ([]pagedoc.Option, error) {
	var opts []pagedoc.Option

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, pagedoc.WithTimeout(timeout))
	}
	if cfg.Style != "" {
		opts = append(opts, pagedoc.WithStyle(cfg.Style))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, pagedoc.WithAssetPath(cfg.Assets.BasePath))
	}
	return opts, nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > pagedoc.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, pagedoc.MaxPoolSize)
	}
	return nil
}
