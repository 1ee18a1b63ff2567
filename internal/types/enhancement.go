//nolint:revive // types is a standard Go package name pattern
package types

// EnhanceResumeTextRequest asks for a rewrite of a resume work-experience entry.
type EnhanceResumeTextRequest struct {
	PromptText string `json:"promptText" validate:"required,notblank"`
}

// Validate validates the EnhanceResumeTextRequest.
func (r *EnhanceResumeTextRequest) Validate() error {
	return validate.Struct(r)
}

// EnhanceResumeTextResponse carries the enhanced resume text.
type EnhanceResumeTextResponse struct {
	EnhancedText string `json:"enhancedText"`
}

// EnhancementRequest asks for an improved version of one LinkedIn profile field.
type EnhancementRequest struct {
	Text  string `json:"text" validate:"required,notblank"`
	Field string `json:"field" validate:"required,oneof=headline summary experience education skills"`
}

// Validate validates the EnhancementRequest.
func (r *EnhancementRequest) Validate() error {
	return validate.Struct(r)
}

// EnhancementResponse carries a LinkedIn field suggestion.
type EnhancementResponse struct {
	Suggestion string `json:"suggestion"`
}

// SkillSuggestionRequest carries the resume context used to suggest skills.
// Summary may be empty but must be present; the lists must be present arrays.
type SkillSuggestionRequest struct {
	Summary         *string  `json:"summary" validate:"required"`
	JobTitles       []string `json:"jobTitles" validate:"required"`
	JobDescriptions []string `json:"jobDescriptions" validate:"required"`
	ExistingSkills  []string `json:"existingSkills" validate:"required"`
}

// Validate validates the SkillSuggestionRequest.
func (r *SkillSuggestionRequest) Validate() error {
	return validate.Struct(r)
}

// SummaryText returns the summary, or "" when it was not supplied.
func (r *SkillSuggestionRequest) SummaryText() string {
	if r.Summary == nil {
		return ""
	}
	return *r.Summary
}

// SkillSuggestionResponse lists suggested skills.
type SkillSuggestionResponse struct {
	SuggestedSkills []string `json:"suggestedSkills"`
}

// ErrorResponse is the JSON error payload returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
