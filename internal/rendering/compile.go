package rendering

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/jonathan/portfolio-resume/internal/logging"
	"github.com/jonathan/portfolio-resume/internal/types"
)

const (
	// CompilationTimeout is the maximum time to wait for LaTeX compilation
	CompilationTimeout = 30 * time.Second

	// MinPDFBytes is the smallest output accepted as a real document.
	MinPDFBytes = 1000

	texFile = "resume.tex"
	pdfFile = "resume.pdf"
)

// LaTeXBackend renders through the LaTeX template and pdflatex.
type LaTeXBackend struct {
	// Command is the compiler binary; empty means "pdflatex".
	Command string
	Timeout time.Duration
}

// NewLaTeXBackend returns a backend using pdflatex with the default timeout.
func NewLaTeXBackend() *LaTeXBackend {
	return &LaTeXBackend{Command: "pdflatex", Timeout: CompilationTimeout}
}

func (b *LaTeXBackend) Name() string { return "latex" }

// Available reports whether the compiler is on PATH.
func (b *LaTeXBackend) Available() bool {
	_, err := exec.LookPath(b.command())
	return err == nil
}

func (b *LaTeXBackend) command() string {
	if b.Command == "" {
		return "pdflatex"
	}
	return b.Command
}

// Render fills the template and compiles it.
func (b *LaTeXBackend) Render(ctx context.Context, data *types.EnrichedResumeData) ([]byte, error) {
	src, err := RenderLaTeX(data)
	if err != nil {
		return nil, err
	}
	return b.CompileSource(ctx, src)
}

// CompileSource compiles literal LaTeX markup in a scratch directory that is
// removed afterwards.
func (b *LaTeXBackend) CompileSource(ctx context.Context, src string) ([]byte, error) {
	bin, err := exec.LookPath(b.command())
	if err != nil {
		return nil, &CompileError{
			Message: fmt.Sprintf("%s not found in PATH", b.command()),
			Cause:   err,
		}
	}

	workDir, err := os.MkdirTemp("", "latex-compile-*")
	if err != nil {
		return nil, &CompileError{Message: "failed to create working directory", Cause: err}
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	if err := os.WriteFile(filepath.Join(workDir, texFile), []byte(src), 0o600); err != nil {
		return nil, &CompileError{Message: "failed to write LaTeX source", Cause: err}
	}

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = CompilationTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, "-interaction=nonstopmode", "-output-directory", workDir, texFile)
	cmd.Dir = workDir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	runErr := cmd.Run()
	logOutput := out.String()

	pdf, readErr := os.ReadFile(filepath.Join(workDir, pdfFile))
	if readErr != nil {
		cause := runErr
		if ctx.Err() != nil {
			cause = ctx.Err()
		}
		if cause == nil {
			cause = readErr
		}
		return nil, &CompileError{
			Message:   "PDF was not generated",
			LogOutput: logOutput,
			Cause:     cause,
		}
	}
	if len(pdf) < MinPDFBytes {
		return nil, &CompileError{
			Message:   fmt.Sprintf("PDF output too small (%d bytes)", len(pdf)),
			LogOutput: logOutput,
		}
	}
	// pdflatex exits non-zero on recoverable errors while still writing a
	// usable document.
	if runErr != nil {
		logging.FromContext(ctx).Warn("pdflatex reported errors", "error", runErr, "bytes", len(pdf))
	}
	return pdf, nil
}
