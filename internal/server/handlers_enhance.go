package server

import (
	"net/http"

	"github.com/jonathan/skillsculpt/internal/llm"
	"github.com/jonathan/skillsculpt/internal/prompts"
	"github.com/jonathan/skillsculpt/internal/types"
	"github.com/sirupsen/logrus"
)

// enhanceVariant describes one enhancement request shape. Both shapes run
// through the same handler; they differ in how the body is read, which
// generation profile is used and how the result is wrapped.
type enhanceVariant struct {
	name    string
	profile llm.Profile
	decode  func(w http.ResponseWriter, r *http.Request) (prompts.Category, string, error)
	respond func(text string) any
}

// resumeTextVariant rewrites a resume work-experience entry: {promptText} -> {enhancedText}.
var resumeTextVariant = enhanceVariant{
	name:    "resume-text",
	profile: llm.ProfileEnhance,
	decode: func(w http.ResponseWriter, r *http.Request) (prompts.Category, string, error) {
		var req types.EnhanceResumeTextRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return "", "", err
		}
		if err := req.Validate(); err != nil {
			return "", "", validationError(err)
		}
		return prompts.CategoryWorkExperience, req.PromptText, nil
	},
	respond: func(text string) any {
		return types.EnhanceResumeTextResponse{EnhancedText: text}
	},
}

// linkedInVariant improves one LinkedIn profile field: {text, field} -> {suggestion}.
var linkedInVariant = enhanceVariant{
	name:    "linkedin",
	profile: llm.ProfileLinkedIn,
	decode: func(w http.ResponseWriter, r *http.Request) (prompts.Category, string, error) {
		var req types.EnhancementRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return "", "", err
		}
		if err := req.Validate(); err != nil {
			return "", "", validationError(err)
		}
		return prompts.Category(req.Field), req.Text, nil
	},
	respond: func(text string) any {
		return types.EnhancementResponse{Suggestion: text}
	},
}

// enhanceHandler validates the body, builds the prompt, makes one model call
// and relays the trimmed text.
func (s *Server) enhanceHandler(v enhanceVariant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, _ := subject(r)
		log := s.logger.WithFields(logrus.Fields{
			"variant": v.name,
			"subject": sub,
		})

		category, text, err := v.decode(w, r)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, badRequestMessage(err))
			return
		}

		prompt, err := s.prompts.Build(category, text)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, badRequestMessage(err))
			return
		}

		result, err := llm.Call(r.Context(), s.gateway, prompt, v.profile, s.opts.Streaming)
		if err != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"category": category,
				"model":    s.gateway.Model(),
			}).Error("model call failed")
			s.errorResponse(w, http.StatusInternalServerError, modelErrorMessage(err))
			return
		}

		log.WithFields(logrus.Fields{
			"category": category,
			"chars":    len(result),
		}).Debug("enhancement generated")
		s.jsonResponse(w, http.StatusOK, v.respond(result))
	}
}
