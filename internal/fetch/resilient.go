package fetch

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/jonathan/portfolio-resume/internal/logging"
)

// Status describes how a Document was obtained.
type Status string

// Document statuses.
const (
	StatusOK          Status = "ok"
	StatusPlaceholder Status = "degraded-placeholder"
	StatusUnreachable Status = "unreachable"
)

// Document is the immutable outcome of one Resilient.Fetch call.
type Document struct {
	URL        string
	Status     Status
	HTML       string // empty unless Status is ok
	Text       string // visible page text, or the placeholder text
	StatusCode int
	Attempts   int
	Rendered   bool // HTML came from the headless browser
	Err        error
	FetchedAt  time.Time
}

// OK reports whether real page content was fetched.
func (d *Document) OK() bool { return d != nil && d.Status == StatusOK }

// Config configures the resilient fetch policy.
type Config struct {
	Timeout      time.Duration
	RetryTimeout time.Duration
	RetryDelay   time.Duration
	UserAgent    string
	Headers      map[string]string
	// InsecureRetry skips TLS verification on the retry attempt only.
	InsecureRetry bool
	// DisablePlaceholder reports unreachable instead of substituting a placeholder.
	DisablePlaceholder bool
	// Browser enables headless rendering when the static page carries too little text.
	Browser        bool
	BrowserTimeout time.Duration
	MinTextLength  int
}

// DefaultConfig returns the production fetch policy.
func DefaultConfig() Config {
	return Config{
		Timeout:        DefaultTimeout,
		RetryTimeout:   30 * time.Second,
		RetryDelay:     500 * time.Millisecond,
		UserAgent:      DefaultUserAgent,
		Headers:        BrowserHeaders(),
		BrowserTimeout: 30 * time.Second,
		MinTextLength:  MinContentLength,
	}
}

// RenderFunc renders a page in a browser and returns its HTML.
type RenderFunc func(ctx context.Context, url string, timeout time.Duration) (string, error)

// Resilient fetches portfolio pages with one retry and placeholder degradation.
type Resilient struct {
	cfg    Config
	render RenderFunc
}

// NewResilient creates a fetcher. Zero durations in cfg take their defaults.
func NewResilient(cfg Config) *Resilient {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.RetryTimeout <= 0 {
		cfg.RetryTimeout = def.RetryTimeout
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = def.RetryDelay
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Headers == nil {
		cfg.Headers = def.Headers
	}
	if cfg.BrowserTimeout <= 0 {
		cfg.BrowserTimeout = def.BrowserTimeout
	}
	if cfg.MinTextLength <= 0 {
		cfg.MinTextLength = def.MinTextLength
	}
	return &Resilient{cfg: cfg, render: WithBrowser}
}

// WithRenderer replaces the headless browser renderer.
func (f *Resilient) WithRenderer(render RenderFunc) *Resilient {
	cp := *f
	cp.render = render
	return &cp
}

func (f *Resilient) options(attempt int) *Options {
	opts := &Options{
		Timeout:      f.cfg.Timeout,
		UserAgent:    f.cfg.UserAgent,
		Headers:      f.cfg.Headers,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
	if attempt > 0 {
		opts.Timeout = f.cfg.RetryTimeout
		opts.InsecureSkipVerify = f.cfg.InsecureRetry
	}
	return opts
}

// Fetch retrieves url. It never returns nil: failures are reported through
// Document.Status and Document.Err.
func (f *Resilient) Fetch(ctx context.Context, url string) *Document {
	log := logging.FromContext(ctx).With("url", url)

	var (
		attempts int
		result   *Result
		lastErr  error
	)
	backoff := retry.WithMaxRetries(1, retry.NewConstant(f.cfg.RetryDelay))
	_ = retry.Do(ctx, backoff, func(ctx context.Context) error {
		opts := f.options(attempts)
		attempts++
		r, err := URL(ctx, url, opts)
		result, lastErr = r, err
		if err != nil && IsTransport(err) {
			log.Debug("fetch attempt failed", "attempt", attempts, "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
	if lastErr == nil && ctx.Err() != nil {
		lastErr = ctx.Err()
	}

	doc := &Document{URL: url, Attempts: attempts, FetchedAt: time.Now()}
	if result != nil {
		doc.StatusCode = result.StatusCode
	}

	switch {
	case lastErr == nil:
		doc.Status = StatusOK
		doc.HTML = result.HTML
		doc.Text, _ = ExtractText(result.HTML)
		f.maybeRender(ctx, doc)
		log.Debug("fetched portfolio", "status_code", doc.StatusCode, "bytes", len(doc.HTML), "rendered", doc.Rendered)
	case (IsTransport(lastErr) || errors.Is(lastErr, context.DeadlineExceeded)) && !f.cfg.DisablePlaceholder:
		doc.Status = StatusPlaceholder
		doc.Text = Placeholder(url)
		doc.Err = lastErr
		log.Warn("portfolio unreachable, using placeholder document", "attempts", attempts, "error", lastErr)
	default:
		doc.Status = StatusUnreachable
		doc.Err = lastErr
		log.Warn("portfolio unreachable", "attempts", attempts, "error", lastErr)
	}
	return doc
}

func (f *Resilient) maybeRender(ctx context.Context, doc *Document) {
	if !f.cfg.Browser || f.render == nil || len(doc.Text) >= f.cfg.MinTextLength {
		return
	}
	html, err := f.render(ctx, doc.URL, f.cfg.BrowserTimeout)
	if err != nil {
		logging.FromContext(ctx).Warn("browser rendering failed, keeping static HTML", "url", doc.URL, "error", err)
		return
	}
	text, err := ExtractText(html)
	if err != nil || len(text) <= len(doc.Text) {
		return
	}
	doc.HTML = html
	doc.Text = text
	doc.Rendered = true
}
