// Package llm provides the generative-text gateway used by the enhancement
// endpoints, with fixed generation profiles and pluggable providers.
package llm

// Profile names a fixed set of generation parameters.
type Profile string

const (
	// ProfileEnhance is used for resume work-experience rewrites
	ProfileEnhance Profile = "enhance"
	// ProfileLinkedIn is used for LinkedIn profile sections
	ProfileLinkedIn Profile = "linkedin"
	// ProfileSkills is used for skill suggestions
	ProfileSkills Profile = "skills"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderVertex is Gemini served through Vertex AI (project + region, ambient credentials)
	ProviderVertex Provider = "vertex"
	// ProviderGemini is the Gemini developer API (API key)
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI chat completions API
	ProviderOpenAI Provider = "openai"
)

// GenerationParams are the sampling settings sent with every request.
// They are constants of the deployment, never taken from the caller.
type GenerationParams struct {
	MaxOutputTokens int32
	Temperature     float32
	TopP            float32
	TopK            int32 // zero leaves the provider default
}

// Config holds the model configuration for the gateway
type Config struct {
	Provider Provider
	Model    string
	Project  string // Vertex only
	Location string // Vertex only
	Profiles map[Profile]GenerationParams
}

// DefaultProfiles returns the generation parameters for each profile.
func DefaultProfiles() map[Profile]GenerationParams {
	return map[Profile]GenerationParams{
		ProfileEnhance:  {MaxOutputTokens: 1024, Temperature: 0.6, TopP: 0.9},
		ProfileLinkedIn: {MaxOutputTokens: 1024, Temperature: 0.7, TopP: 0.8, TopK: 40},
		ProfileSkills:   {MaxOutputTokens: 512, Temperature: 0.4, TopP: 0.9},
	}
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider Provider) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	default:
		return "gemini-2.5-flash"
	}
}

// NewConfig returns a Config for provider with default profiles. An empty
// model selects the provider default.
func NewConfig(provider Provider, model string) *Config {
	if model == "" {
		model = DefaultModel(provider)
	}
	return &Config{
		Provider: provider,
		Model:    model,
		Profiles: DefaultProfiles(),
	}
}

// Params returns the generation parameters for a profile, falling back to
// ProfileEnhance for unknown profiles.
func (c *Config) Params(profile Profile) GenerationParams {
	if p, ok := c.Profiles[profile]; ok {
		return p
	}
	if p, ok := c.Profiles[ProfileEnhance]; ok {
		return p
	}
	return DefaultProfiles()[ProfileEnhance]
}

// WithLocation returns a copy of the Config targeting a Vertex project and region.
func (c *Config) WithLocation(project, location string) *Config {
	newConfig := *c
	newConfig.Project = project
	newConfig.Location = location
	newConfig.Profiles = make(map[Profile]GenerationParams, len(c.Profiles))
	for k, v := range c.Profiles {
		newConfig.Profiles[k] = v
	}
	return &newConfig
}
