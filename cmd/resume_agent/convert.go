package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-resume/internal/observability"
	"github.com/jonathan/portfolio-resume/internal/pipeline"
)

var (
	convertOutput string
	convertRecord bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <portfolio-url>",
	Short: "Convert a portfolio URL into enriched resume data",
	Long: `Fetches a portfolio page, extracts its features, restructures them through the
completion service, validates the result against the CandidateRecord schema and
prints the enriched resume data as JSON.

When a stage fails the fallback record is printed and the reason is logged.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "out", "o", "", "Write JSON to this file instead of stdout")
	convertCmd.Flags().BoolVar(&convertRecord, "record", false, "Print the validated CandidateRecord instead of enriched data")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := newCompletionClient(ctx, appConfig)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	printer := observability.NewPrinter(os.Stderr)
	orchestrator := newOrchestrator(appConfig, client)

	opts := pipeline.RunOptions{}
	if appConfig.Verbose {
		opts.OnProgress = func(e pipeline.ProgressEvent) {
			logger.Info(e.Message, "step", e.Step, "category", e.Category)
		}
	}

	outcome, err := orchestrator.ConvertPortfolio(ctx, args[0], opts)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if appConfig.Verbose {
		printer.PrintFeatures(outcome.Features)
		printer.PrintStages(outcome)
		printer.PrintResumeData(outcome.Data)
	}
	if outcome.Fallback {
		logger.Warn("printed fallback resume data", "reason", outcome.Reason, "error", outcome.Err)
	}

	if convertRecord {
		if outcome.Record == nil {
			return fmt.Errorf("no validated record: %w", outcome.Err)
		}
		return writeJSON(cmd.OutOrStdout(), convertOutput, outcome.Record)
	}
	return writeJSON(cmd.OutOrStdout(), convertOutput, outcome.Data)
}
