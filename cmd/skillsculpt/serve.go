package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/skillsculpt/internal/db"
	"github.com/jonathan/skillsculpt/internal/linkedin"
	"github.com/jonathan/skillsculpt/internal/prompts"
	"github.com/jonathan/skillsculpt/internal/schemas"
	"github.com/jonathan/skillsculpt/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing the AI enhancement endpoints.

Resume storage and password accounts are enabled when DATABASE_URL is set.
The LinkedIn integration is enabled when its OAuth client is configured as well.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gateway, err := newGateway(ctx, cfg.AI)
	if err != nil {
		return err
	}
	defer func() { _ = gateway.Close() }()

	builder, err := prompts.NewBuilder()
	if err != nil {
		return fmt.Errorf("failed to load prompts: %w", err)
	}

	verifier, jwtService, err := newVerifier(cfg.Auth)
	if err != nil {
		return err
	}

	deps := server.Deps{
		Gateway:  gateway,
		Prompts:  builder,
		Verifier: verifier,
		Logger:   logger,
	}

	if cfg.DatabaseURL != "" {
		store, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()

		resumeSchema, err := schemas.NewResumeValidator()
		if err != nil {
			return err
		}
		deps.Database = store
		deps.Resumes = store
		deps.ResumeSchema = resumeSchema

		if jwtService != nil {
			deps.Users = store
			deps.Password = cfg.Auth.Password
			deps.Tokens = jwtService
		}

		if cfg.LinkedIn.Enabled() {
			if cfg.FrontendURL == "" {
				logger.Warn("FRONTEND_URL is not set; LinkedIn callbacks will redirect to a relative path")
			}
			deps.LinkedIn = linkedin.NewClient(cfg.LinkedIn)
			deps.LinkedInTokens = store
		}
	} else {
		logger.Info("DATABASE_URL not set; resume storage, accounts and LinkedIn are disabled")
	}

	srv, err := server.New(server.Options{
		Port:        cfg.Port,
		Streaming:   cfg.AI.Streaming,
		FrontendURL: cfg.FrontendURL,
	}, deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.WithField("provider", cfg.AI.Provider).
		WithField("model", gateway.Model()).
		WithField("auth_mode", cfg.Auth.Mode).
		Info("configuration loaded")

	return srv.Start(ctx)
}
