package main

import (
	"context"
	"fmt"

	"github.com/jonathan/skillsculpt/internal/auth"
	"github.com/jonathan/skillsculpt/internal/config"
	"github.com/jonathan/skillsculpt/internal/llm"
	"github.com/jonathan/skillsculpt/internal/logging"
	"github.com/sirupsen/logrus"
)

// loadConfig resolves the full server configuration and builds the logger it describes.
func loadConfig() (*config.Config, *logrus.Logger, error) {
	return loadWith(config.Load)
}

// loadAIConfig resolves only what the offline commands need.
func loadAIConfig() (*config.Config, *logrus.Logger, error) {
	return loadWith(config.LoadAI)
}

func loadWith(load func(string) (*config.Config, error)) (*config.Config, *logrus.Logger, error) {
	cfg, err := load(configFile)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.LogLevel, logging.Format(cfg.LogFormat))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}

// newGateway creates the model client for the configured provider.
func newGateway(ctx context.Context, cfg config.AIConfig) (llm.Gateway, error) {
	llmConfig := llm.NewConfig(llm.Provider(cfg.Provider), cfg.Model)
	if llmConfig.Provider == llm.ProviderVertex {
		llmConfig = llmConfig.WithLocation(cfg.Project, cfg.Region)
	}

	gateway, err := llm.NewClient(ctx, llmConfig, llm.Credentials{
		GeminiAPIKey: cfg.GeminiAPIKey,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}
	return gateway, nil
}

// newVerifier returns the bearer verifier for the configured auth mode. The
// JWT service is also returned in jwt mode so the password routes can issue tokens.
func newVerifier(cfg config.AuthConfig) (auth.Verifier, *auth.JWTService, error) {
	switch cfg.Mode {
	case config.AuthModeGoogle:
		verifier, err := auth.NewGoogleVerifier(cfg.GoogleAudience)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create google verifier: %w", err)
		}
		return verifier, nil, nil
	case config.AuthModeJWT:
		jwtService := auth.NewJWTService(cfg.JWT)
		return jwtService, jwtService, nil
	default:
		return nil, nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}
