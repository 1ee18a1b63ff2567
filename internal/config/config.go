// Package config loads service configuration from defaults, an optional config
// file and the environment.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// AI providers understood by the gateway.
const (
	ProviderVertex = "vertex"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Identity verification modes.
const (
	AuthModeJWT    = "jwt"
	AuthModeGoogle = "google"
)

// Config is the resolved service configuration.
// Secrets are only ever read from the environment or a config file supplied at runtime.
type Config struct {
	Port      int
	LogLevel  string
	LogFormat string

	AI       AIConfig
	Auth     AuthConfig
	LinkedIn LinkedInConfig

	DatabaseURL string
	FrontendURL string
}

// AIConfig selects and configures the generative model provider.
type AIConfig struct {
	Provider     string
	Model        string // empty means the provider default
	Project      string // Vertex AI project
	Region       string // Vertex AI location
	Streaming    bool   // aggregate streamed chunks instead of a single call
	GeminiAPIKey string
	OpenAIAPIKey string
}

// AuthConfig configures bearer credential verification.
type AuthConfig struct {
	Mode           string
	GoogleAudience string
	JWT            *JWTConfig // nil unless Mode is jwt
	Password       *PasswordConfig
}

// LinkedInConfig holds the OAuth client registration.
type LinkedInConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether the LinkedIn integration is configured.
func (c LinkedInConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RedirectURL != ""
}

// defaults are applied before the config file and environment.
// Every key is registered so AutomaticEnv can resolve it.
var defaults = map[string]any{
	"port":                   "8080",
	"log_level":              "info",
	"log_format":             "text",
	"ai_provider":            ProviderVertex,
	"ai_model":               "",
	"google_cloud_project":   "",
	"ai_region":              "us-central1",
	"ai_streaming":           false,
	"gemini_api_key":         "",
	"openai_api_key":         "",
	"auth_mode":              AuthModeJWT,
	"google_audience":        "",
	"jwt_secret":             "",
	"jwt_expiration_hours":   "24",
	"bcrypt_cost":            "12",
	"password_pepper":        "",
	"database_url":           "",
	"linkedin_client_id":     "",
	"linkedin_client_secret": "",
	"linkedin_redirect_uri":  "",
	"frontend_url":           "",
}

// Load resolves configuration. path may be empty; when set it names a YAML or
// JSON file whose keys match the lower-cased environment variable names.
func Load(path string) (*Config, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	return fromViper(v)
}

// LoadAI resolves only the logging and model settings. It is used by CLI
// commands that call the model directly and never serve requests.
func LoadAI(path string) (*Config, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:  v.GetString("log_level"),
		LogFormat: strings.ToLower(v.GetString("log_format")),
		AI:        aiFromViper(v),
	}
	if err := cfg.AI.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DatabaseURL resolves DATABASE_URL alone.
func DatabaseURL(path string) (string, error) {
	v, err := newViper(path)
	if err != nil {
		return "", err
	}
	return v.GetString("database_url"), nil
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	return v, nil
}

func aiFromViper(v *viper.Viper) AIConfig {
	return AIConfig{
		Provider:     strings.ToLower(v.GetString("ai_provider")),
		Model:        v.GetString("ai_model"),
		Project:      v.GetString("google_cloud_project"),
		Region:       v.GetString("ai_region"),
		Streaming:    v.GetBool("ai_streaming"),
		GeminiAPIKey: v.GetString("gemini_api_key"),
		OpenAIAPIKey: v.GetString("openai_api_key"),
	}
}

func fromViper(v *viper.Viper) (*Config, error) {
	port, err := strconv.Atoi(strings.TrimSpace(v.GetString("port")))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %v", err)
	}

	cfg := &Config{
		Port:      port,
		LogLevel:  v.GetString("log_level"),
		LogFormat: strings.ToLower(v.GetString("log_format")),
		AI:        aiFromViper(v),
		Auth: AuthConfig{
			Mode:           strings.ToLower(v.GetString("auth_mode")),
			GoogleAudience: v.GetString("google_audience"),
		},
		LinkedIn: LinkedInConfig{
			ClientID:     v.GetString("linkedin_client_id"),
			ClientSecret: v.GetString("linkedin_client_secret"),
			RedirectURL:  v.GetString("linkedin_redirect_uri"),
		},
		DatabaseURL: v.GetString("database_url"),
		FrontendURL: strings.TrimSuffix(v.GetString("frontend_url"), "/"),
	}

	if cfg.Auth.Mode == AuthModeJWT {
		jwtCfg, err := newJWTConfig(v.GetString("jwt_secret"), v.GetString("jwt_expiration_hours"))
		if err != nil {
			return nil, err
		}
		cfg.Auth.JWT = jwtCfg

		pwCfg, err := newPasswordConfig(v.GetString("bcrypt_cost"), v.GetString("password_pepper"))
		if err != nil {
			return nil, err
		}
		cfg.Auth.Password = pwCfg
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be between 1 and 65535, got %d", c.Port)
	}

	if err := c.AI.Validate(); err != nil {
		return err
	}

	switch c.Auth.Mode {
	case AuthModeJWT:
		if c.Auth.JWT == nil {
			return fmt.Errorf("config error: JWT settings missing for jwt auth mode")
		}
	case AuthModeGoogle:
		if c.Auth.GoogleAudience == "" {
			return fmt.Errorf("config error: GOOGLE_AUDIENCE is required for google auth mode")
		}
	default:
		return fmt.Errorf("config error: unknown AUTH_MODE %q", c.Auth.Mode)
	}

	li := c.LinkedIn
	if (li.ClientID != "" || li.ClientSecret != "" || li.RedirectURL != "") && !li.Enabled() {
		return fmt.Errorf("config error: LINKEDIN_CLIENT_ID, LINKEDIN_CLIENT_SECRET and LINKEDIN_REDIRECT_URI must be set together")
	}

	return nil
}

// Validate checks the provider has what it needs to authenticate.
func (c AIConfig) Validate() error {
	switch c.Provider {
	case ProviderVertex:
		if c.Project == "" {
			return fmt.Errorf("config error: GOOGLE_CLOUD_PROJECT is required for the vertex provider")
		}
		if c.Region == "" {
			return fmt.Errorf("config error: AI_REGION is required for the vertex provider")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("config error: GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("config error: OPENAI_API_KEY is required for the openai provider")
		}
	default:
		return fmt.Errorf("config error: unknown AI_PROVIDER %q", c.Provider)
	}

	return nil
}
