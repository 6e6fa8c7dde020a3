package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alnah/go-pagedoc"
	"github.com/alnah/go-pagedoc/internal/config"
)

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		hasHint bool
	}{
		{"browser", fmt.Errorf("wrap: %w", pagedoc.ErrBrowserConnect), true},
		{"engine init", ErrEngineInit, true},
		{"timeout", pagedoc.ErrPageLoad, true},
		{"busy", pagedoc.ErrExportInProgress, true},
		{"no pages", pagedoc.ErrNoPages, true},
		{"preset", pagedoc.ErrUnknownPreset, true},
		{"style", pagedoc.ErrStyleNotFound, true},
		{"config", config.ErrConfigNotFound, true},
		{"write", ErrWriteOutput, true},
		{"other", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := hintFor(tt.err); (got != "") != tt.hasHint {
				t.Errorf("hintFor(%v) = %q, want hint %v", tt.err, got, tt.hasHint)
			}
		})
	}
}
