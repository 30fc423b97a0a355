// Package llmtest provides an in-memory llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/jonathan/portfolio-resume/internal/llm"
)

// Fake is a scripted llm.Client. Text answers GenerateContent, JSON answers
// GenerateJSON; the matching Err field, when set, is returned instead.
type Fake struct {
	Text    string
	TextErr error
	JSON    string
	JSONErr error

	mu    sync.Mutex
	calls []Call
}

// Call records one request made against the fake.
type Call struct {
	JSON    bool
	Request llm.Request
}

var _ llm.Client = (*Fake)(nil)

// GenerateContent implements llm.Client.
func (f *Fake) GenerateContent(ctx context.Context, req llm.Request) (string, error) {
	f.record(false, req)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.TextErr != nil {
		return "", f.TextErr
	}
	return f.Text, nil
}

// GenerateJSON implements llm.Client.
func (f *Fake) GenerateJSON(ctx context.Context, req llm.Request) (string, error) {
	f.record(true, req)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.JSONErr != nil {
		return "", f.JSONErr
	}
	return llm.CleanJSONBlock(f.JSON), nil
}

// GetModel implements llm.Client.
func (f *Fake) GetModel(llm.ModelTier) string { return "fake" }

// Close implements llm.Client.
func (f *Fake) Close() error { return nil }

// Calls returns a copy of the recorded requests.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *Fake) record(json bool, req llm.Request) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{JSON: json, Request: req})
	f.mu.Unlock()
}
