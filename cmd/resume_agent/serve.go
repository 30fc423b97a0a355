package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-resume/internal/llm"
	"github.com/jonathan/portfolio-resume/internal/rendering"
	"github.com/jonathan/portfolio-resume/internal/server"
	"github.com/jonathan/portfolio-resume/internal/server/ratelimit"
	"github.com/jonathan/portfolio-resume/internal/website"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes portfolio conversion, resume parsing, PDF rendering and website generation.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := appConfig
	if servePort != 0 {
		cfg.Port = servePort
	}

	client, err := newCompletionClient(ctx, cfg)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	sites, err := website.NewStore(cfg.SitesDir)
	if err != nil {
		return fmt.Errorf("failed to open website store: %w", err)
	}

	deps := server.Deps{
		Orchestrator: newOrchestrator(cfg, client),
		Renderer:     rendering.NewRenderer(),
		Sites:        sites,
		Logger:       logger,
	}
	if client != nil {
		deps.Editor = website.NewComponentEditor(client)
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		UploadDir:      cfg.UploadDir,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		PDF:            cfg.PDF(),
		ConvertTimeout: cfg.ConvertTimeout(),
		RateLimit:      ratelimit.LoadConfig(),
	}, deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("configuration loaded",
		"provider", cfg.Provider,
		"model", cfg.LLM().GetModel(llm.TierStandard),
		"completion", client != nil,
		"sites_dir", cfg.SitesDir)
	return srv.Start(ctx)
}
