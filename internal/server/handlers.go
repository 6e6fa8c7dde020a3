package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alnah/go-pagedoc"
	"github.com/alnah/go-pagedoc/internal/pipeline"
)

// Render output formats selected with ?format=.
const (
	FormatJSON  = "json"
	FormatHTML  = "html"
	FormatFrame = "frame"
)

// documentRequest is the body of render and export requests. PageSize wins
// over Preset; with neither the configured page size is used.
type documentRequest struct {
	Markdown string            `json:"markdown"`
	Preset   string            `json:"preset,omitempty"`
	Margin   *float64          `json:"margin,omitempty"`
	PageSize *pagedoc.PageSize `json:"pageSize,omitempty"`
	Filename string            `json:"filename,omitempty"`
}

type renderResponse struct {
	Title    string               `json:"title"`
	PageSize pagedoc.PageSize     `json:"pageSize"`
	Pages    []pagedoc.ParsedPage `json:"pages"`
	CSS      string               `json:"css"`
	Document string               `json:"document"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pagedoc.Presets())
}

func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Editor)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatHTML && format != FormatFrame {
		jsonError(w, fmt.Sprintf("unknown format %q (want json, html or frame)", format), http.StatusBadRequest)
		return
	}

	req, size, ok := s.decodeDocumentRequest(w, r)
	if !ok {
		return
	}

	doc, err := s.engine.Parse(r.Context(), req.Markdown, size)
	if err != nil {
		s.fail(w, "render failed", err)
		return
	}

	switch format {
	case FormatHTML:
		writeHTML(w, doc.HTML)
	case FormatFrame:
		writeHTML(w, pipeline.SandboxFrame(doc.HTML))
	default:
		writeJSON(w, http.StatusOK, renderResponse{
			Title:    doc.Title,
			PageSize: doc.PageSize,
			Pages:    doc.Pages,
			CSS:      doc.CSS,
			Document: doc.HTML,
		})
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req, size, ok := s.decodeDocumentRequest(w, r)
	if !ok {
		return
	}

	doc, err := s.engine.Parse(r.Context(), req.Markdown, size)
	if err != nil {
		s.fail(w, "render failed", err)
		return
	}

	filename := sanitizeFilename(req.Filename)
	if filename == "" {
		filename = s.cfg.Export.Filename
	}

	result, err := s.engine.Export(r.Context(), doc, pagedoc.ExportOptions{Filename: filename})
	if err != nil {
		s.fail(w, "export failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.PDF)))
	w.Header().Set("X-Page-Count", strconv.Itoa(result.Pages))
	_, _ = w.Write(result.PDF)
}

// decodeDocumentRequest reads the body and resolves its page size. It writes
// the error response itself and reports false on failure.
func (s *Server) decodeDocumentRequest(w http.ResponseWriter, r *http.Request) (documentRequest, pagedoc.PageSize, bool) {
	var req documentRequest

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("body exceeds %d bytes", MaxBodyBytes), http.StatusRequestEntityTooLarge)
			return req, pagedoc.PageSize{}, false
		}
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return req, pagedoc.PageSize{}, false
	}

	size, err := s.resolvePageSize(req)
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return req, pagedoc.PageSize{}, false
	}
	return req, size, true
}

func (s *Server) resolvePageSize(req documentRequest) (pagedoc.PageSize, error) {
	switch {
	case req.PageSize != nil:
		return *req.PageSize, req.PageSize.Validate()
	case req.Preset != "":
		margin := s.cfg.Page.Margin
		if req.Margin != nil {
			margin = *req.Margin
		}
		return pagedoc.ParsePageSize(req.Preset, margin)
	default:
		size, err := s.cfg.PageSize()
		if err != nil {
			return size, err
		}
		if req.Margin != nil {
			size.Margin = *req.Margin
		}
		return size, size.Validate()
	}
}

// fail logs err and writes the matching status.
func (s *Server) fail(w http.ResponseWriter, msg string, err error) {
	code := StatusFor(err)
	if code >= http.StatusInternalServerError {
		s.log.Error(msg, "error", err, "status", code)
	} else {
		s.log.Warn(msg, "error", err, "status", code)
	}
	jsonError(w, err.Error(), code)
}

// StatusFor maps engine errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, pagedoc.ErrExportInProgress):
		return http.StatusConflict
	case errors.Is(err, pagedoc.ErrNoPages),
		errors.Is(err, pagedoc.ErrInvalidPageSize),
		errors.Is(err, pagedoc.ErrInvalidMargin),
		errors.Is(err, pagedoc.ErrUnknownPreset):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pagedoc.ErrSurfaceUnavailable),
		errors.Is(err, pagedoc.ErrBrowserConnect),
		errors.Is(err, pagedoc.ErrPageLoad):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// sanitizeFilename keeps the base name without the PDF extension.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimSuffix(name, pagedoc.PDFExtension)
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
