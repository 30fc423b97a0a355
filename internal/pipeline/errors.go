package pipeline

import (
	"errors"
	"fmt"

	"github.com/jonathan/portfolio-resume/internal/schemas"
)

// Stage names, in execution order.
const (
	StageFetch       = "fetch"
	StageExtract     = "extract"
	StageNarrative   = "narrative"
	StageRestructure = "restructure"
	StageParse       = "parse"
	StageEnrich      = "enrich"
)

// Reason classifies why a stage failed.
type Reason string

// Failure reasons.
const (
	ReasonNone             Reason = ""
	ReasonFetchUnreachable Reason = "fetch_unreachable"
	ReasonCompletionFailed Reason = "completion_failed"
	ReasonSchemaInvalid    Reason = "schema_invalid"
)

// Action is what the orchestrator does after a stage failure.
type Action string

// Actions.
const (
	ActionFallbackRecord Action = "fallback_record"
	ActionAbort          Action = "abort"
)

// FallbackPolicy maps each failure reason to the action taken for a portfolio
// conversion. Reasons missing from the table abort the run.
var FallbackPolicy = map[Reason]Action{
	ReasonFetchUnreachable: ActionFallbackRecord,
	ReasonCompletionFailed: ActionFallbackRecord,
	ReasonSchemaInvalid:    ActionFallbackRecord,
}

// ActionFor returns the configured action for reason.
func ActionFor(reason Reason) Action {
	if a, ok := FallbackPolicy[reason]; ok {
		return a
	}
	return ActionAbort
}

// StageError reports a failed stage.
type StageError struct {
	Stage  string
	Reason Reason
	Err    error
}

func (e *StageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s stage failed (%s): %v", e.Stage, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s stage failed (%s)", e.Stage, e.Reason)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// classify maps a completion-stage error to its reason. Anything other than a
// schema violation counts as a completion failure.
func classify(err error) Reason {
	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		return ReasonSchemaInvalid
	}
	return ReasonCompletionFailed
}
