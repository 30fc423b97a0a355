package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-resume/internal/ingestion"
	"github.com/jonathan/portfolio-resume/internal/observability"
)

var parseResumeOutput string

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume <file.pdf>",
	Short: "Extract structured data from a resume PDF",
	Long:  "Reads the text of a resume PDF, maps it onto the CandidateRecord schema through the completion service and prints the record with its enriched form.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParseResume,
}

func init() {
	parseResumeCmd.Flags().StringVarP(&parseResumeOutput, "out", "o", "", "Write JSON to this file instead of stdout")
	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]
	if !ingestion.AllowedFile(path) {
		return ingestion.ErrUnsupportedFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read resume %s: %w", path, err)
	}
	content, err := ingestion.ExtractPDFBytes(data, appConfig.PDF())
	if err != nil {
		return err
	}
	logger.Debug("extracted resume text", "pages", content.Pages, "pages_read", content.PagesRead, "chars", len(content.Text))

	client, err := newCompletionClient(ctx, appConfig)
	if err != nil {
		return err
	}
	if client == nil {
		return errors.New("parse-resume needs a completion API key (GEMINI_API_KEY, GROQ_API_KEY or OPENAI_API_KEY)")
	}
	defer func() { _ = client.Close() }()

	out, err := newOrchestrator(appConfig, client).ParseResumeText(ctx, content.Text)
	if err != nil {
		return err
	}

	if appConfig.Verbose {
		observability.NewPrinter(os.Stderr).PrintResumeData(out.Data)
	}

	meta := ingestion.NewMetadata(content.Text, filepath.Base(path))
	meta.Pages = content.Pages
	meta.PagesRead = content.PagesRead
	return writeJSON(cmd.OutOrStdout(), parseResumeOutput, map[string]any{
		"data":     out.Record,
		"enriched": out.Data,
		"metadata": meta,
	})
}
