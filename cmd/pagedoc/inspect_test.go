package main

import (
	"encoding/json"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"

	"github.com/alnah/go-pagedoc"
)

// ---------------------------------------------------------------------------
// TestRunInspect
// ---------------------------------------------------------------------------

func TestRunInspect_Human(t *testing.T) {
	t.Parallel()

	path := writeTestPDF(t, t.TempDir(),
		gofpdf.SizeType{Wd: 210, Ht: 297},
		gofpdf.SizeType{Wd: 148, Ht: 210},
	)

	te := newTestEnv(t, nil)
	if err := runInspect([]string{path}, te.Environment); err != nil {
		t.Fatalf("runInspect() error = %v", err)
	}

	out := te.stdout.String()
	for _, want := range []string{"2 page(s)", "210.0 x 297.0 mm", "148.0 x 210.0 mm", "portrait"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunInspect_JSON(t *testing.T) {
	t.Parallel()

	path := writeTestPDF(t, t.TempDir(), gofpdf.SizeType{Wd: 215.9, Ht: 279.4})

	te := newTestEnv(t, nil)
	if err := runInspect([]string{"--json", path}, te.Environment); err != nil {
		t.Fatalf("runInspect() error = %v", err)
	}

	var got inspectResult
	if err := json.Unmarshal(te.stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, te.stdout)
	}
	if got.Pages != 1 || len(got.Sizes) != 1 {
		t.Fatalf("result = %+v, want one page", got)
	}
	if math.Abs(got.Sizes[0].WidthMM-215.9) > 0.1 || math.Abs(got.Sizes[0].HeightMM-279.4) > 0.1 {
		t.Errorf("size = %+v, want letter", got.Sizes[0])
	}
}

func TestRunInspect_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	notPDF := writeFile(t, dir, "fake.pdf", "hello")

	te := newTestEnv(t, nil)
	if err := runInspect(nil, te.Environment); !errors.Is(err, ErrNoInput) {
		t.Errorf("no args: error = %v, want ErrNoInput", err)
	}
	if err := runInspect([]string{filepath.Join(dir, "missing.pdf")}, te.Environment); !errors.Is(err, ErrReadPDF) {
		t.Errorf("missing: error = %v, want ErrReadPDF", err)
	}
	if err := runInspect([]string{notPDF}, te.Environment); !errors.Is(err, pagedoc.ErrPDFRead) {
		t.Errorf("garbage: error = %v, want ErrPDFRead", err)
	}
}

func TestRoundTenth(t *testing.T) {
	t.Parallel()

	tests := map[float64]float64{209.99: 210, 279.44: 279.4, 0: 0, 148.05: 148.1}
	for in, want := range tests {
		if got := roundTenth(in); math.Abs(got-want) > 1e-9 {
			t.Errorf("roundTenth(%v) = %v, want %v", in, got, want)
		}
	}
}
