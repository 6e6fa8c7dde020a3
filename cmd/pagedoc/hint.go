package main

import (
	"errors"

	"github.com/alnah/go-pagedoc"
	"github.com/alnah/go-pagedoc/internal/config"
	"github.com/alnah/go-pagedoc/internal/hints"
)

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, pagedoc.ErrBrowserConnect), errors.Is(err, ErrEngineInit):
		return hints.ForBrowserConnect()
	case errors.Is(err, pagedoc.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, pagedoc.ErrExportInProgress):
		return hints.ForExportBusy()
	case errors.Is(err, pagedoc.ErrNoPages):
		return hints.ForNoPages()
	case errors.Is(err, pagedoc.ErrUnknownPreset),
		errors.Is(err, pagedoc.ErrInvalidPageSize),
		errors.Is(err, pagedoc.ErrInvalidMargin):
		return hints.ForPageSize(pagedoc.PresetNames())
	case errors.Is(err, pagedoc.ErrStyleNotFound):
		return hints.ForStyleNotFound([]string{pagedoc.DefaultStyle})
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths("<name>"))
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
