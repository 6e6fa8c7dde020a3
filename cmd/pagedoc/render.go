package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-pagedoc/internal/fileutil"
)

// runRender writes the paginated HTML document of one markdown file. It
// never starts a browser.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return ErrNoInput
	}
	input := positional[0]
	if !isMarkdown(input) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(input))
	}

	cfg, err := loadConfig(flags.common, loadEnvConfig())
	if err != nil {
		return err
	}
	applyPageFlags(flags.page, cfg)
	applyAssetFlags(flags.assets, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	size, err := cfg.PageSize()
	if err != nil {
		return err
	}
	opts, err := engineOptions(cfg)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	engine, err := env.NewEngine(opts...)
	if err != nil {
		return err
	}
	defer engine.Close()

	doc, err := engine.Parse(ctx, string(content), size)
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err := fmt.Fprint(env.Stdout, doc.HTML)
		return err
	}

	output := flags.output
	if fileutil.DirExists(output) {
		output = filepath.Join(output, fileutil.BaseName(input)+".html")
	}
	if err := os.MkdirAll(filepath.Dir(output), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err)
	}
	// #nosec G306 -- output is meant to be readable
	if err := os.WriteFile(output, []byte(doc.HTML), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s (%d pages, %s)\n", output, doc.PageCount(), size)
	}
	return nil
}
