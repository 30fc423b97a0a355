// Package main provides the resume_agent CLI: portfolio conversion, resume
// parsing, PDF and website rendering, and the HTTP API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-resume/internal/config"
	"github.com/jonathan/portfolio-resume/internal/logging"
)

var (
	configPath string
	logLevel   string
	logJSON    bool
	verbose    bool

	// appConfig and logger are set by the root pre-run hook.
	appConfig *config.Config
	logger    logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "resume_agent",
	Short: "Portfolio and resume conversion toolkit",
	Long: `resume_agent turns a portfolio URL or a resume PDF into structured candidate data,
and renders that data as a PDF resume or a static portfolio website.

Configuration can be loaded from a JSON or YAML file using --config. Environment
variables (GEMINI_API_KEY, GROQ_API_KEY, OPENAI_API_KEY, PORT, LOG_LEVEL, ...) and
command-line flags override file values.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadAppConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed progress reports")
}

func loadAppConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-json") {
		cfg.LogJSON = logJSON
	}
	if verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg
	logger = logging.New(cfg.Logging())
	cmd.SetContext(logging.ContextWithLogger(cmd.Context(), logger))
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
