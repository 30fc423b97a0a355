package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/portfolio-resume/internal/ingestion"
	"github.com/jonathan/portfolio-resume/internal/logging"
	"github.com/jonathan/portfolio-resume/internal/pipeline"
	"github.com/jonathan/portfolio-resume/internal/rendering"
	"github.com/jonathan/portfolio-resume/internal/schemas"
	"github.com/jonathan/portfolio-resume/internal/types"
	"github.com/jonathan/portfolio-resume/internal/website"
)

// ConvertResponse is the body of /convert-portfolio and the final stream event.
type ConvertResponse struct {
	Success  bool                      `json:"success"`
	RunID    string                    `json:"run_id"`
	Data     *types.EnrichedResumeData `json:"data"`
	Degraded bool                      `json:"degraded"`
	Fallback bool                      `json:"fallback"`
	Reason   pipeline.Reason           `json:"reason,omitempty"`
	Stages   []pipeline.StageReport    `json:"stages"`
}

// ParseResumeResponse is the body of /parse-resume.
type ParseResumeResponse struct {
	Success  bool                      `json:"success"`
	Data     *types.CandidateRecord    `json:"data"`
	Enriched *types.EnrichedResumeData `json:"enriched"`
	Metadata *ingestion.Metadata       `json:"metadata"`
}

// GenerateWebsiteResponse is the body of /generate-website.
type GenerateWebsiteResponse struct {
	Success     bool   `json:"success"`
	WebsiteID   string `json:"website_id"`
	PreviewURL  string `json:"preview_url"`
	DownloadURL string `json:"download_url"`
}

// ModifyComponentResponse is the body of /modify-component.
type ModifyComponentResponse struct {
	Success      bool   `json:"success"`
	ModifiedHTML string `json:"modified_html"`
}

func newConvertResponse(o *pipeline.Outcome) *ConvertResponse {
	return &ConvertResponse{
		Success:  true,
		RunID:    o.RunID,
		Data:     o.Data,
		Degraded: o.Degraded,
		Fallback: o.Fallback,
		Reason:   o.Reason,
		Stages:   o.Stages,
	}
}

// decodeJSON reads a bounded JSON body into v and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{ Validate() error }) error {
	r.Body = http.MaxBytesReader(w, r.Body, DefaultMaxJSONBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return v.Validate()
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
		"component_editor": s.deps.Editor != nil,
		"latex_available":  rendering.NewLaTeXBackend().Available(),
	})
}

// handleSchema returns the CandidateRecord JSON Schema.
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	schema, err := schemas.CandidateSchemaJSON()
	if err != nil {
		s.failure(w, r, "failed to build schema", err)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	_, _ = w.Write([]byte(schema))
}

// handleParseResume extracts a candidate record from an uploaded PDF resume.
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.cfg.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = ingestion.DefaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.failure(w, r, "upload rejected", ingestion.ErrFileTooLarge)
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer func() { _ = file.Close() }()
	if header.Filename == "" {
		s.errorResponse(w, http.StatusBadRequest, "No file selected")
		return
	}

	upload, err := ingestion.SaveUpload(s.cfg.UploadDir, header.Filename, file, maxBytes)
	if err != nil {
		s.failure(w, r, "upload rejected", err)
		return
	}
	defer func() {
		if err := upload.Remove(); err != nil {
			logging.FromContext(r.Context()).Warn("failed to remove upload", "path", upload.Path, "error", err)
		}
	}()

	content, meta, err := ingestion.ExtractUpload(upload, s.cfg.PDF)
	if err != nil {
		s.failure(w, r, "failed to read PDF", err)
		return
	}

	out, err := s.deps.Orchestrator.ParseResumeText(r.Context(), content.Text)
	if err != nil {
		s.failure(w, r, "failed to parse resume", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, &ParseResumeResponse{
		Success:  true,
		Data:     out.Record,
		Enriched: out.Data,
		Metadata: meta,
	})
}

// handleConvertPortfolio converts a portfolio URL. Identical concurrent
// requests share one conversion.
func (s *Server) handleConvertPortfolio(w http.ResponseWriter, r *http.Request) {
	var req types.ConvertPortfolioRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, "invalid request", err)
		return
	}

	log := logging.FromContext(r.Context())
	ctx := logging.ContextWithLogger(context.WithoutCancel(r.Context()), log)

	v, err, shared := s.conversions.Do(req.PortfolioURL, func() (any, error) {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ConvertTimeout)
		defer cancel()
		return s.deps.Orchestrator.ConvertPortfolio(ctx, req.PortfolioURL, pipeline.RunOptions{})
	})
	if err != nil {
		s.failure(w, r, "conversion failed", err)
		return
	}
	outcome := v.(*pipeline.Outcome)
	if shared {
		log.Debug("shared conversion result", "run_id", outcome.RunID)
	}
	s.jsonResponse(w, http.StatusOK, newConvertResponse(outcome))
}

// handleConvertPortfolioStream converts a portfolio URL and streams stage
// progress via SSE.
func (s *Server) handleConvertPortfolioStream(w http.ResponseWriter, r *http.Request) {
	var req types.ConvertPortfolioRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, "invalid request", err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log := logging.FromContext(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.ConvertTimeout)
	defer cancel()

	outcome, err := s.deps.Orchestrator.ConvertPortfolio(ctx, req.PortfolioURL, pipeline.RunOptions{
		OnProgress: func(event pipeline.ProgressEvent) {
			if err := sse.WriteEvent("step", event); err != nil {
				log.Warn("failed to write SSE event", "error", err)
			}
		},
	})
	if err != nil {
		log.Warn("streamed conversion failed", "error", err)
		sse.WriteError(err.Error())
		return
	}
	sse.WriteComplete(newConvertResponse(outcome))
}

// handleGenerateResumePDF renders resume data as a PDF download.
func (s *Server) handleGenerateResumePDF(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateResumePDFRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, "invalid request", err)
		return
	}

	res, err := s.deps.Renderer.Render(r.Context(), req.ResumeData)
	if err != nil {
		s.failure(w, r, "failed to generate PDF", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, pdfFilename(req.ResumeData.Name)))
	w.Header().Set("X-Render-Backend", res.Backend)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PDF)
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// pdfFilename builds "<name>_resume.pdf" from ASCII letters, digits and underscores.
func pdfFilename(name string) string {
	base := strings.Trim(unsafeFilename.ReplaceAllString(strings.TrimSpace(name), "_"), "_")
	if base == "" {
		base = "professional"
	}
	return base + "_resume.pdf"
}

// handleGenerateWebsite builds and stores a website bundle.
func (s *Server) handleGenerateWebsite(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateWebsiteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, "invalid request", err)
		return
	}

	site, err := website.Generate(req.Data, req.Style)
	if err != nil {
		s.failure(w, r, "failed to generate website", err)
		return
	}
	id, err := s.deps.Sites.Save(site)
	if err != nil {
		s.failure(w, r, "failed to save website", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, &GenerateWebsiteResponse{
		Success:     true,
		WebsiteID:   id,
		PreviewURL:  "/preview/" + id,
		DownloadURL: "/download/" + id,
	})
}

// handleModifyComponent rewrites one HTML component.
func (s *Server) handleModifyComponent(w http.ResponseWriter, r *http.Request) {
	var req types.ModifyComponentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, "invalid request", err)
		return
	}
	if s.deps.Editor == nil {
		s.failure(w, r, "cannot modify component", &ErrUnavailable{Feature: "component editing"})
		return
	}

	html, err := s.deps.Editor.Modify(r.Context(), req.ComponentHTML, req.Instructions, req.ComponentType)
	if err != nil {
		s.failure(w, r, "failed to modify component", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, &ModifyComponentResponse{Success: true, ModifiedHTML: html})
}

// handlePreview serves a stored site as a single page.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	page, err := s.deps.Sites.Preview(r.PathValue("id"))
	if err != nil {
		s.failure(w, r, "failed to load preview", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

// handleDownload serves a stored site as a zip archive.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.deps.Sites.WriteZip(r.PathValue("id"), &buf); err != nil {
		s.failure(w, r, "failed to create download", err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="portfolio_website.zip"`)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
