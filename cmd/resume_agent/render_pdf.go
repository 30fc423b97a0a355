package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-resume/internal/rendering"
)

var renderPDFCmd = &cobra.Command{
	Use:   "render-pdf",
	Short: "Render enriched resume data as a PDF",
	Long: `Renders enriched resume data JSON as a PDF. pdflatex is tried first; when it is
missing or fails, the built-in formatter draws the same sections.`,
	Args: cobra.NoArgs,
	RunE: runRenderPDF,
}

var (
	renderPDFInput     string
	renderPDFOutput    string
	renderPDFTexOutput string
	renderPDFLaTeXOnly bool
)

func init() {
	renderPDFCmd.Flags().StringVarP(&renderPDFInput, "in", "i", "", "Path to enriched resume data JSON (required)")
	renderPDFCmd.Flags().StringVarP(&renderPDFOutput, "out", "o", "", "Path to output PDF file (required)")
	renderPDFCmd.Flags().StringVar(&renderPDFTexOutput, "tex", "", "Also write the LaTeX source to this file")
	renderPDFCmd.Flags().BoolVar(&renderPDFLaTeXOnly, "latex-only", false, "Fail instead of falling back when pdflatex cannot compile")

	_ = renderPDFCmd.MarkFlagRequired("in")
	_ = renderPDFCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(renderPDFCmd)
}

func runRenderPDF(cmd *cobra.Command, _ []string) error {
	data, err := readResumeData(renderPDFInput)
	if err != nil {
		return err
	}

	if renderPDFTexOutput != "" {
		src, err := rendering.RenderLaTeX(data)
		if err != nil {
			return err
		}
		if err := os.WriteFile(renderPDFTexOutput, []byte(src), 0644); err != nil {
			return fmt.Errorf("failed to write LaTeX source: %w", err)
		}
	}

	backends := rendering.DefaultBackends()
	if renderPDFLaTeXOnly {
		backends = []rendering.Backend{rendering.NewLaTeXBackend()}
	}
	res, err := rendering.NewRenderer(backends...).Render(cmd.Context(), data)
	if err != nil {
		return err
	}

	if err := os.WriteFile(renderPDFOutput, res.PDF, 0644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	logger.Info("rendered resume", "backend", res.Backend, "bytes", len(res.PDF), "out", renderPDFOutput)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s with %s backend\n", renderPDFOutput, res.Backend)
	return nil
}
