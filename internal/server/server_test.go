package server

// Notes:
// - Parse runs on a real engine; it never starts a browser. Export is
//   stubbed so no test needs Chrome.
// - Status mapping is checked both directly (StatusFor) and through the
//   export handler.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-pagedoc"
	"github.com/alnah/go-pagedoc/internal/config"
)

type stubEngine struct {
	*pagedoc.Engine

	mu        sync.Mutex
	exportErr error
	exported  *pagedoc.Document
	opts      pagedoc.ExportOptions
}

func (s *stubEngine) Export(_ context.Context, doc *pagedoc.Document, opts pagedoc.ExportOptions) (*pagedoc.ExportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exported, s.opts = doc, opts
	if s.exportErr != nil {
		return nil, s.exportErr
	}
	name := opts.Filename + pagedoc.PDFExtension
	return &pagedoc.ExportResult{PDF: []byte("%PDF-1.3 stub"), Filename: name, Pages: doc.PageCount()}, nil
}

func newTestServer(t *testing.T, exportErr error) (*Server, *stubEngine) {
	t.Helper()
	engine, err := pagedoc.NewEngine()
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(func() { _ = engine.Close() })

	stub := &stubEngine{Engine: engine, exportErr: exportErr}
	return New(stub, nil, config.DefaultConfig()), stub
}

func slogJSON(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, nil))
}

func do(t *testing.T, s *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// ---------------------------------------------------------------------------
// Static endpoints
// ---------------------------------------------------------------------------

func TestHealth(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/health", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"ok"}` {
		t.Errorf("body = %q", got)
	}
}

func TestPresets(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/api/presets", nil)

	var presets []pagedoc.Preset
	if err := json.Unmarshal(rec.Body.Bytes(), &presets); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(presets) != len(pagedoc.PresetNames()) {
		t.Fatalf("got %d presets, want %d", len(presets), len(pagedoc.PresetNames()))
	}
	for _, p := range presets {
		if p.Name == "a4" && (p.PageSize.Width != 210 || p.PageSize.Height != 297) {
			t.Errorf("a4 = %+v", p.PageSize)
		}
	}
}

func TestEditor(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Editor.LineWrapping = false
	engine, err := pagedoc.NewEngine()
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer engine.Close()

	s := New(engine, nil, cfg)
	rec := do(t, s, http.MethodGet, "/api/editor", nil)

	var got config.EditorConfig
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.LineNumbers || got.LineWrapping {
		t.Errorf("editor = %+v, want lineNumbers only", got)
	}
}

// ---------------------------------------------------------------------------
// POST /api/render
// ---------------------------------------------------------------------------

func TestRender_JSON(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/api/render", map[string]any{
		"markdown": "# Report\n---page---\nsecond\fthird",
		"preset":   "letter",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var got renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Pages) != 3 {
		t.Errorf("pages = %d, want 3", len(got.Pages))
	}
	if got.Title != "Report" {
		t.Errorf("title = %q, want Report", got.Title)
	}
	if got.PageSize.Width != 215.9 || got.PageSize.Margin != pagedoc.DefaultMargin {
		t.Errorf("pageSize = %+v", got.PageSize)
	}
	if !strings.Contains(got.CSS, "215.9mm") {
		t.Error("css should carry the letter width in mm")
	}
	if !strings.Contains(got.Document, "<!DOCTYPE html>") {
		t.Error("document should be a complete HTML document")
	}
}

func TestRender_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		format      string
		wantCode    int
		wantType    string
		wantContain string
	}{
		{name: "html", format: FormatHTML, wantCode: http.StatusOK, wantType: "text/html", wantContain: "<!DOCTYPE html>"},
		{name: "frame", format: FormatFrame, wantCode: http.StatusOK, wantType: "text/html", wantContain: `sandbox="allow-scripts"`},
		{name: "unknown", format: "pdf", wantCode: http.StatusBadRequest, wantType: "application/json", wantContain: "unknown format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, _ := newTestServer(t, nil)
			rec := do(t, s, http.MethodPost, "/api/render?format="+tt.format, map[string]any{"markdown": "hello"})

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.wantType) {
				t.Errorf("Content-Type = %q, want %s", ct, tt.wantType)
			}
			if !strings.Contains(rec.Body.String(), tt.wantContain) {
				t.Errorf("body missing %q", tt.wantContain)
			}
		})
	}
}

func TestRender_PageSizeResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      map[string]any
		wantCode  int
		wantWidth float64
		wantMarg  float64
	}{
		{
			name:      "config default",
			body:      map[string]any{"markdown": "x"},
			wantCode:  http.StatusOK,
			wantWidth: 210,
			wantMarg:  pagedoc.DefaultMargin,
		},
		{
			name:      "margin override on default",
			body:      map[string]any{"markdown": "x", "margin": 0},
			wantCode:  http.StatusOK,
			wantWidth: 210,
			wantMarg:  0,
		},
		{
			name:      "explicit page size wins",
			body:      map[string]any{"markdown": "x", "preset": "a3", "pageSize": map[string]float64{"width": 300, "height": 120, "margin": 5}},
			wantCode:  http.StatusOK,
			wantWidth: 300,
			wantMarg:  5,
		},
		{
			name:     "unknown preset",
			body:     map[string]any{"markdown": "x", "preset": "tabloid"},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "page size out of range",
			body:     map[string]any{"markdown": "x", "pageSize": map[string]float64{"width": 10, "height": 120}},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "margin leaves no content",
			body:     map[string]any{"markdown": "x", "preset": "a5", "margin": 80},
			wantCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, _ := newTestServer(t, nil)
			rec := do(t, s, http.MethodPost, "/api/render", tt.body)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body)
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			var got renderResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.PageSize.Width != tt.wantWidth || got.PageSize.Margin != tt.wantMarg {
				t.Errorf("pageSize = %+v, want width %v margin %v", got.PageSize, tt.wantWidth, tt.wantMarg)
			}
		})
	}
}

func TestRender_BadBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "not JSON", body: "# hello"},
		{name: "unknown field", body: `{"markdown":"x","watermark":"DRAFT"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, _ := newTestServer(t, nil)
			rec := do(t, s, http.MethodPost, "/api/render", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestRender_BodyTooLarge(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, nil)
	body := `{"markdown":"` + strings.Repeat("a", MaxBodyBytes+1) + `"}`
	rec := do(t, s, http.MethodPost, "/api/render", body)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// POST /api/export
// ---------------------------------------------------------------------------

func TestExport_Success(t *testing.T) {
	t.Parallel()

	s, stub := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/api/export", map[string]any{
		"markdown": "one\fTwo",
		"filename": "../reports/q3.pdf",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename=q3.pdf` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if rec.Header().Get("X-Page-Count") != "2" {
		t.Errorf("X-Page-Count = %q, want 2", rec.Header().Get("X-Page-Count"))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("body should be the PDF")
	}
	if stub.opts.Filename != "q3" {
		t.Errorf("export filename = %q, want q3", stub.opts.Filename)
	}
}

func TestExport_DefaultFilename(t *testing.T) {
	t.Parallel()

	s, stub := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/api/export", map[string]any{"markdown": "x"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if stub.opts.Filename != pagedoc.DefaultFilename {
		t.Errorf("filename = %q, want %q", stub.opts.Filename, pagedoc.DefaultFilename)
	}
}

func TestExport_ErrorStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "busy", err: pagedoc.ErrExportInProgress, wantCode: http.StatusConflict},
		{name: "no pages", err: pagedoc.ErrNoPages, wantCode: http.StatusUnprocessableEntity},
		{name: "browser", err: fmt.Errorf("%w: %w", pagedoc.ErrSurfaceUnavailable, pagedoc.ErrBrowserConnect), wantCode: http.StatusBadGateway},
		{name: "capture", err: fmt.Errorf("%w: page 1: boom", pagedoc.ErrCapture), wantCode: http.StatusInternalServerError},
		{name: "other", err: errors.New("boom"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, _ := newTestServer(t, tt.err)
			rec := do(t, s, http.MethodPost, "/api/export", map[string]any{"markdown": "x"})

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected error message in body")
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":               "",
		"  ":             "",
		"report":         "report",
		"report.pdf":     "report",
		"a/b/c.pdf":      "c",
		`..\evil.pdf`:    "evil",
		"..":             "",
		"notes.markdown": "notes.markdown",
	}
	for in, want := range tests {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// RequestLogger
// ---------------------------------------------------------------------------

func TestRequestLogger_RecordsStatus(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slogJSON(&buf)

	h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["status"] != float64(http.StatusTeapot) || entry["path"] != "/x" {
		t.Errorf("log entry = %v", entry)
	}
}
