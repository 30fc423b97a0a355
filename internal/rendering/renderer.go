package rendering

import (
	"context"
	"errors"

	"github.com/jonathan/portfolio-resume/internal/logging"
	"github.com/jonathan/portfolio-resume/internal/types"
)

// Backend produces PDF bytes from resume data.
type Backend interface {
	Name() string
	Render(ctx context.Context, data *types.EnrichedResumeData) ([]byte, error)
}

// Renderer tries its backends in order and returns the first success.
type Renderer struct {
	backends []Backend
}

// NewRenderer builds a chain. With no backends it uses DefaultBackends.
func NewRenderer(backends ...Backend) *Renderer {
	if len(backends) == 0 {
		backends = DefaultBackends()
	}
	return &Renderer{backends: backends}
}

// DefaultBackends is LaTeX first, then the built-in formatter.
func DefaultBackends() []Backend {
	return []Backend{NewLaTeXBackend(), NewFormatterBackend()}
}

// Result is a rendered PDF and the backend that produced it.
type Result struct {
	PDF     []byte
	Backend string
}

// Render returns the first backend's output that succeeds. When all fail the
// error joins every backend error.
func (r *Renderer) Render(ctx context.Context, data *types.EnrichedResumeData) (*Result, error) {
	if data == nil {
		return nil, &RenderError{Message: "no resume data"}
	}
	log := logging.FromContext(ctx)

	var errs []error
	for _, b := range r.backends {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pdf, err := b.Render(ctx, data)
		if err == nil {
			log.Debug("resume rendered", "backend", b.Name(), "bytes", len(pdf))
			return &Result{PDF: pdf, Backend: b.Name()}, nil
		}
		log.Warn("render backend failed", "backend", b.Name(), "error", err)
		errs = append(errs, err)
	}
	return nil, &RenderError{Message: "all render backends failed", Cause: errors.Join(errs...)}
}
