package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alnah/go-pagedoc/internal/server"
)

// runServe runs the preview server until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, _, err := parseServeFlags(args, env)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common, loadEnvConfig())
	if err != nil {
		return err
	}
	applyPageFlags(flags.page, cfg)
	applyAssetFlags(flags.assets, cfg)
	if flags.timeout != "" {
		cfg.Export.Timeout = flags.timeout
	}
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	opts, err := engineOptions(cfg)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	switch {
	case flags.common.verbose:
		level = slog.LevelDebug
	case flags.common.quiet:
		level = slog.LevelWarn
	}
	log := slog.New(slog.NewJSONHandler(env.Stderr, &slog.HandlerOptions{Level: level}))

	engine, err := env.NewEngine(opts...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEngineInit, err)
	}
	defer engine.Close()

	return server.New(engine, log, cfg).ListenAndServe(ctx, cfg.Server.Addr)
}
