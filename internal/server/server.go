// Package server provides the HTTP API: portfolio conversion, resume
// parsing, PDF rendering and website generation.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/portfolio-resume/internal/ingestion"
	"github.com/jonathan/portfolio-resume/internal/logging"
	"github.com/jonathan/portfolio-resume/internal/pipeline"
	"github.com/jonathan/portfolio-resume/internal/rendering"
	"github.com/jonathan/portfolio-resume/internal/server/middleware"
	"github.com/jonathan/portfolio-resume/internal/server/ratelimit"
	"github.com/jonathan/portfolio-resume/internal/website"
)

// Defaults for Config fields left at zero.
const (
	DefaultPort           = 5000
	DefaultUploadDir      = "uploads"
	DefaultConvertTimeout = 3 * time.Minute
	DefaultMaxJSONBytes   = 4 << 20
	shutdownTimeout       = 30 * time.Second
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	cfg         Config
	deps        Deps
	log         logging.Logger
	rateLimiter *ratelimit.Limiter
	conversions singleflight.Group
}

// Config holds server configuration
type Config struct {
	Port           int
	UploadDir      string
	MaxUploadBytes int64
	PDF            ingestion.PDFOptions
	// ConvertTimeout bounds one portfolio conversion, which may be shared by
	// several identical requests.
	ConvertTimeout time.Duration
	RateLimit      *ratelimit.Config
}

// Deps are the services behind the routes. Editor may be nil when no
// completion provider is configured.
type Deps struct {
	Orchestrator *pipeline.Orchestrator
	Renderer     *rendering.Renderer
	Sites        *website.Store
	Editor       *website.ComponentEditor
	Logger       logging.Logger
}

// New creates a new server instance
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Orchestrator == nil {
		return nil, errors.New("server requires an orchestrator")
	}
	if deps.Sites == nil {
		return nil, errors.New("server requires a website store")
	}
	if deps.Renderer == nil {
		deps.Renderer = rendering.NewRenderer()
	}
	if deps.Logger == nil {
		deps.Logger = logging.FromContext(context.Background())
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = DefaultUploadDir
	}
	if cfg.ConvertTimeout <= 0 {
		cfg.ConvertTimeout = DefaultConvertTimeout
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}

	s := &Server{
		cfg:         cfg,
		deps:        deps,
		log:         deps.Logger,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /schema", s.handleSchema)
	mux.HandleFunc("POST /parse-resume", s.handleParseResume)
	mux.HandleFunc("POST /{$}", s.handleParseResume)
	mux.HandleFunc("POST /convert-portfolio", s.handleConvertPortfolio)
	mux.HandleFunc("POST /convert-portfolio/stream", s.handleConvertPortfolioStream)
	mux.HandleFunc("POST /generate-resume-pdf", s.handleGenerateResumePDF)
	mux.HandleFunc("POST /generate-website", s.handleGenerateWebsite)
	mux.HandleFunc("POST /modify-component", s.handleModifyComponent)
	mux.HandleFunc("GET /preview/{id}", s.handlePreview)
	mux.HandleFunc("GET /download/{id}", s.handleDownload)

	handler := s.withRateLimit(middleware.Logging(middleware.CORS(middleware.Recover(mux))))
	handler = middleware.RequestID(s.log)(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.ConvertTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.rateLimiter.Stop()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	defer s.rateLimiter.Stop()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]any{"success": false, "error": message})
}

// failure logs err and writes it with the status HTTPStatus picks.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := HTTPStatus(err)
	log := logging.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(message, "error", err, "status", status)
	} else {
		log.Warn(message, "error", err, "status", status)
	}
	s.errorResponse(w, status, fmt.Sprintf("%s: %v", message, err))
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr; forwarded headers are not trusted.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"success":   false,
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = secs
		w.Header().Set("Retry-After", fmt.Sprintf("%d", secs))
	}

	logging.FromContext(r.Context()).Warn("rate limit exceeded",
		"client", extractClientID(r), "path", r.URL.Path, "limit", info.Limit)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
