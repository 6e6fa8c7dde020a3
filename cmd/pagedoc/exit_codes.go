package main

import (
	"errors"
	"os"

	"github.com/alnah/go-pagedoc"
	"github.com/alnah/go-pagedoc/internal/config"
)

// Exit codes for the pagedoc CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
	ExitExport  = 5 // Export rejected or produced no pages
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, pagedoc.ErrBrowserConnect) ||
		errors.Is(err, pagedoc.ErrSurfaceUnavailable) ||
		errors.Is(err, pagedoc.ErrPageLoad) ||
		errors.Is(err, ErrEngineInit) {
		return ExitBrowser
	}

	if errors.Is(err, pagedoc.ErrExportInProgress) ||
		errors.Is(err, pagedoc.ErrNoPages) {
		return ExitExport
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrReadPDF) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, pagedoc.ErrInvalidPageSize) ||
		errors.Is(err, pagedoc.ErrInvalidMargin) ||
		errors.Is(err, pagedoc.ErrUnknownPreset) ||
		errors.Is(err, pagedoc.ErrStyleNotFound) ||
		errors.Is(err, pagedoc.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	return ExitGeneral
}
