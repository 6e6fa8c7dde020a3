package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-pagedoc"
	"github.com/alnah/go-pagedoc/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrReadPDF            = errors.New("failed to read PDF file")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrEngineInit         = errors.New("failed to initialize export engine")
	ErrUsage              = errors.New("invalid usage")

	// errReported marks errors already printed per file.
	errReported = errors.New("export failed")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// markdownExtensions are the source extensions picked up from directories.
var markdownExtensions = []string{".md", ".markdown"}

// FileToExport represents a single file to process.
type FileToExport struct {
	InputPath  string
	OutputPath string
}

// ExportFileResult holds the outcome of a single export.
type ExportFileResult struct {
	InputPath  string
	OutputPath string
	Pages      int
	Err        error
	Duration   time.Duration
}

// exportParams groups parameters shared across a batch.
type exportParams struct {
	size     pagedoc.PageSize
	html     bool
	progress func(path string) pagedoc.ProgressFunc
}

// runExport orchestrates the export of one file or a directory tree.
func runExport(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseExportFlags(args, env)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if len(positional) == 0 {
		return ErrNoInput
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common, envCfg)
	if err != nil {
		return err
	}
	applyPageFlags(flags.page, cfg)
	applyAssetFlags(flags.assets, cfg)
	if flags.timeout != "" {
		cfg.Export.Timeout = flags.timeout
	}
	if flags.filename != "" {
		cfg.Export.Filename = flags.filename
	}
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

	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Export.OutputDir
	}
	files, err := discoverFiles(positional[0], outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, positional[0])
	}
	if len(files) == 1 && flags.filename != "" && !strings.HasSuffix(outputDir, pagedoc.PDFExtension) {
		files[0].OutputPath = filepath.Join(filepath.Dir(files[0].OutputPath), cfg.Export.Filename+pagedoc.PDFExtension)
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	poolSize := pagedoc.ResolvePoolSize(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := env.NewPool(poolSize, opts...)
	defer pool.Close()

	params := &exportParams{size: size, html: flags.html}
	if flags.common.verbose && !flags.common.quiet && env.IsTerminal(env.Stderr) {
		params.progress = func(path string) pagedoc.ProgressFunc {
			return terminalProgress(env.Stderr, path)
		}
	}

	results := exportBatch(ctx, pool, files, params)

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%w: %d of %d: %w", errReported, failedCount, len(results), firstError(results))
	}
	return nil
}

// terminalProgress redraws a single status line per file.
func terminalProgress(w io.Writer, path string) pagedoc.ProgressFunc {
	return func(done, total int) {
		fmt.Fprintf(w, "\r%s: page %d/%d", path, done, total)
		if done == total {
			fmt.Fprintln(w)
		}
	}
}

// discoverFiles finds all markdown files to export.
func discoverFiles(inputPath, outputDir string) ([]FileToExport, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !isMarkdown(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToExport{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToExport
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isMarkdown(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToExport{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

func isMarkdown(path string) bool {
	return slices.Contains(markdownExtensions, strings.ToLower(filepath.Ext(path)))
}

// resolveOutputPath determines the PDF output path for a markdown file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	base := fileutil.BaseName(inputPath) + pagedoc.PDFExtension

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}

	if strings.HasSuffix(outputDir, pagedoc.PDFExtension) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base)
		}
	}

	return filepath.Join(outputDir, base)
}

// exportBatch processes files concurrently using the engine pool.
func exportBatch(ctx context.Context, pool Pool, files []FileToExport, params *exportParams) []ExportFileResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ExportFileResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			engine := pool.Acquire()
			if engine == nil {
				initErr := pool.InitError()
				for idx := range jobs {
					results[idx] = ExportFileResult{
						InputPath: files[idx].InputPath,
						Err:       fmt.Errorf("%w: %v", ErrEngineInit, initErr),
					}
				}
				return
			}
			defer pool.Release(engine)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ExportFileResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = exportFile(ctx, engine, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// exportFile parses and exports a single file. The PDF is written by the
// completion callback.
func exportFile(ctx context.Context, engine Exporter, f FileToExport, params *exportParams) ExportFileResult {
	start := time.Now()
	result := ExportFileResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	finish := func(err error) ExportFileResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	doc, err := engine.Parse(ctx, string(content), params.size)
	if err != nil {
		return finish(err)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return finish(fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err))
	}

	if params.html {
		htmlPath := fileutil.ReplaceExt(f.OutputPath, ".html")
		// #nosec G306 -- output is meant to be readable
		if err := os.WriteFile(htmlPath, []byte(doc.HTML), filePermissions); err != nil {
			return finish(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
	}

	opts := pagedoc.ExportOptions{
		Filename:   fileutil.BaseName(f.OutputPath),
		OnComplete: writePDF(f.OutputPath),
	}
	if params.progress != nil {
		opts.OnProgress = params.progress(f.InputPath)
	}

	res, err := engine.Export(ctx, doc, opts)
	if res != nil {
		result.Pages = res.Pages
	}
	if err != nil {
		return finish(err)
	}
	return finish(nil)
}

// writePDF returns a completion callback that writes the PDF to path.
func writePDF(path string) pagedoc.CompleteFunc {
	return func(_ context.Context, pdf []byte, _ string) error {
		// #nosec G306 -- PDFs are meant to be readable
		if err := os.WriteFile(path, pdf, filePermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}
}

// printResults outputs export results and returns the failure count.
func printResults(results []ExportFileResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d pages, %v)\n", r.InputPath, r.OutputPath, r.Pages, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}

func firstError(results []ExportFileResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
