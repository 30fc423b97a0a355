// Package pipeline orchestrates portfolio conversion: fetch, feature
// extraction, narrative restructuring, schema parsing and enrichment, with a
// table-driven fallback when a stage fails.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/portfolio-resume/internal/enrich"
	"github.com/jonathan/portfolio-resume/internal/extract"
	"github.com/jonathan/portfolio-resume/internal/fetch"
	"github.com/jonathan/portfolio-resume/internal/logging"
	"github.com/jonathan/portfolio-resume/internal/narrative"
	"github.com/jonathan/portfolio-resume/internal/types"
)

// Progress categories.
const (
	CategoryIngestion  = "ingestion"
	CategoryExtraction = "extraction"
	CategoryCompletion = "completion"
	CategoryOutput     = "output"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Fetcher retrieves a portfolio page. It never fails; problems are reported
// through the document status.
type Fetcher interface {
	Fetch(ctx context.Context, url string) *fetch.Document
}

// FeatureExtractor derives features from a fetched document.
type FeatureExtractor interface {
	ExtractDocument(doc *fetch.Document) *extract.Features
}

// Restructurer rewrites a narrative as a resume-style summary.
type Restructurer interface {
	Restructure(ctx context.Context, narrative string) (string, error)
}

// Parser maps free text onto a validated CandidateRecord.
type Parser interface {
	Parse(ctx context.Context, text string) (*types.CandidateRecord, error)
}

// Deps are the collaborators of an Orchestrator.
type Deps struct {
	Fetcher      Fetcher
	Extractor    FeatureExtractor
	Restructurer Restructurer
	Parser       Parser
	Narrative    narrative.Options
}

// Orchestrator runs conversions. It holds no per-run state and is safe for
// concurrent use when its collaborators are.
type Orchestrator struct {
	deps Deps
}

// New creates an Orchestrator. A nil Extractor uses extract.Default.
func New(deps Deps) *Orchestrator {
	if deps.Extractor == nil {
		deps.Extractor = extract.Default()
	}
	if deps.Narrative.ContextChars <= 0 {
		deps.Narrative = narrative.DefaultOptions()
	}
	return &Orchestrator{deps: deps}
}

// RunOptions holds per-run settings.
type RunOptions struct {
	OnProgress ProgressCallback
}

// StageReport records how one stage went.
type StageReport struct {
	Stage    string        `json:"stage"`
	Status   string        `json:"status"`
	Duration time.Duration `json:"duration_ns"`
	Detail   string        `json:"detail,omitempty"`
}

// Stage report statuses.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusFailed   = "failed"
	StatusSkipped  = "skipped"
)

// Outcome is the result of a conversion. Data is always set.
type Outcome struct {
	RunID       string                    `json:"run_id"`
	URL         string                    `json:"url"`
	Data        *types.EnrichedResumeData `json:"data"`
	Record      *types.CandidateRecord    `json:"record,omitempty"`
	Features    *extract.Features         `json:"-"`
	FetchStatus fetch.Status              `json:"fetch_status"`
	Degraded    bool                      `json:"degraded"`
	Fallback    bool                      `json:"fallback"`
	Reason      Reason                    `json:"reason,omitempty"`
	Err         error                     `json:"-"`
	Stages      []StageReport             `json:"stages"`
}

type run struct {
	id      string
	opts    RunOptions
	log     logging.Logger
	outcome *Outcome
}

func (r *run) emit(step, category, message string, content any) {
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			RunID:    r.id,
			Content:  content,
		})
	}
}

func (r *run) report(stage, status string, started time.Time, detail string) {
	r.outcome.Stages = append(r.outcome.Stages, StageReport{
		Stage:    stage,
		Status:   status,
		Duration: time.Since(started),
		Detail:   detail,
	})
}

// ConvertPortfolio turns a portfolio URL into enriched resume data. Stage
// failures never surface as errors: the fallback policy decides the result and
// the reason is recorded on the Outcome. Only a cancelled context, or a
// reason whose action is ActionAbort, returns an error.
func (o *Orchestrator) ConvertPortfolio(ctx context.Context, url string, opts RunOptions) (*Outcome, error) {
	r := &run{
		id:      uuid.NewString(),
		opts:    opts,
		outcome: &Outcome{URL: url},
	}
	r.outcome.RunID = r.id
	r.log = logging.FromContext(ctx).With("run_id", r.id, "url", url)
	ctx = logging.ContextWithLogger(ctx, r.log)

	r.log.Info("starting portfolio conversion")

	// Fetch
	started := time.Now()
	r.emit(StageFetch, CategoryIngestion, "Fetching portfolio", nil)
	doc := o.deps.Fetcher.Fetch(ctx, url)
	r.outcome.FetchStatus = doc.Status
	switch doc.Status {
	case fetch.StatusOK:
		r.report(StageFetch, StatusOK, started, fmt.Sprintf("HTTP %d, %d attempt(s)", doc.StatusCode, doc.Attempts))
	case fetch.StatusPlaceholder:
		r.outcome.Degraded = true
		r.report(StageFetch, StatusDegraded, started, "unreachable, continuing with placeholder text")
		r.log.Warn("portfolio unreachable, using placeholder", "error", doc.Err)
	default:
		r.report(StageFetch, StatusFailed, started, errString(doc.Err))
		return o.fail(ctx, r, &StageError{Stage: StageFetch, Reason: ReasonFetchUnreachable, Err: doc.Err})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Extract
	started = time.Now()
	features := o.deps.Extractor.ExtractDocument(doc)
	r.outcome.Features = features
	r.report(StageExtract, StatusOK, started, fmt.Sprintf("%d skills, %d projects", len(features.Skills), len(features.Projects)))
	r.emit(StageExtract, CategoryExtraction, "Extracted page features", features)

	// Narrative
	started = time.Now()
	nd := narrative.Build(features, doc, o.deps.Narrative)
	r.report(StageNarrative, StatusOK, started, fmt.Sprintf("%d characters", len(nd.Text)))

	// Restructure
	started = time.Now()
	r.emit(StageRestructure, CategoryCompletion, "Restructuring portfolio content", nil)
	restructured, err := o.deps.Restructurer.Restructure(ctx, nd.Text)
	if err != nil {
		r.report(StageRestructure, StatusFailed, started, err.Error())
		return o.fail(ctx, r, &StageError{Stage: StageRestructure, Reason: ReasonCompletionFailed, Err: err})
	}
	r.report(StageRestructure, StatusOK, started, "")

	// Parse
	started = time.Now()
	r.emit(StageParse, CategoryCompletion, "Parsing structured resume data", nil)
	record, err := o.deps.Parser.Parse(ctx, restructured)
	if err != nil {
		r.report(StageParse, StatusFailed, started, err.Error())
		return o.fail(ctx, r, &StageError{Stage: StageParse, Reason: classify(err), Err: err})
	}
	r.report(StageParse, StatusOK, started, "")
	r.outcome.Record = record

	// Enrich
	started = time.Now()
	r.outcome.Data = enrich.Enrich(record)
	r.report(StageEnrich, StatusOK, started, "")
	r.emit(StageEnrich, CategoryOutput, "Resume data ready", r.outcome.Data)

	r.log.Info("portfolio conversion complete",
		"name", r.outcome.Data.Name,
		"projects", len(r.outcome.Data.Projects),
		"degraded", r.outcome.Degraded)
	return r.outcome, nil
}

// fail applies the fallback policy for err.
func (o *Orchestrator) fail(ctx context.Context, r *run, err *StageError) (*Outcome, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	r.outcome.Reason = err.Reason
	r.outcome.Err = err

	switch ActionFor(err.Reason) {
	case ActionFallbackRecord:
		r.log.Warn("stage failed, using fallback record", "stage", err.Stage, "reason", err.Reason, "error", err.Err)
		r.outcome.Data = enrich.FallbackData(r.outcome.URL)
		r.outcome.Fallback = true
		r.outcome.Degraded = true
		r.emit(err.Stage, CategoryOutput, "Using fallback resume data", r.outcome.Data)
		return r.outcome, nil
	default:
		r.log.Error("stage failed", "stage", err.Stage, "reason", err.Reason, "error", err.Err)
		return r.outcome, err
	}
}

// ResumeOutcome is the result of parsing resume text.
type ResumeOutcome struct {
	Record *types.CandidateRecord
	Data   *types.EnrichedResumeData
}

// ParseResumeText maps extracted resume text onto a record and enriches it.
// Unlike ConvertPortfolio, failures are returned as *StageError.
func (o *Orchestrator) ParseResumeText(ctx context.Context, text string) (*ResumeOutcome, error) {
	record, err := o.deps.Parser.Parse(ctx, text)
	if err != nil {
		return nil, &StageError{Stage: StageParse, Reason: classify(err), Err: err}
	}
	return &ResumeOutcome{Record: record, Data: enrich.Enrich(record)}, nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
