package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/portfolio-resume/internal/config"
	"github.com/jonathan/portfolio-resume/internal/fetch"
	"github.com/jonathan/portfolio-resume/internal/llm"
	"github.com/jonathan/portfolio-resume/internal/logging"
	"github.com/jonathan/portfolio-resume/internal/narrative"
	"github.com/jonathan/portfolio-resume/internal/pipeline"
	"github.com/jonathan/portfolio-resume/internal/schemas"
	"github.com/jonathan/portfolio-resume/internal/types"
)

// newCompletionClient returns a client for the configured provider, or nil
// when no API key is set.
func newCompletionClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if !cfg.HasCompletion() {
		logging.FromContext(ctx).Warn("no completion API key configured; completion-backed stages will fall back",
			"provider", cfg.Provider)
		return nil, nil
	}
	client, err := llm.NewClient(ctx, cfg.LLM(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}
	return client, nil
}

// newOrchestrator wires the conversion pipeline from cfg. A nil client makes
// every completion-backed stage fail into the fallback record.
func newOrchestrator(cfg *config.Config, client llm.Client) *pipeline.Orchestrator {
	deps := pipeline.Deps{
		Fetcher:   fetch.NewResilient(cfg.Fetch()),
		Parser:    schemas.NewParser(client),
		Narrative: narrative.Options{ContextChars: cfg.ContextChars},
	}
	deps.Restructurer = narrative.NewRestructurer(client)
	return pipeline.New(deps)
}

// readResumeData loads enriched resume data from a JSON file.
func readResumeData(path string) (*types.EnrichedResumeData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume data %s: %w", path, err)
	}
	var data types.EnrichedResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse resume data JSON: %w", err)
	}
	data.Normalize()
	return &data, nil
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	out = append(out, '\n')
	if path == "" {
		_, err = w.Write(out)
		return err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
