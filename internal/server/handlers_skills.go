package server

import (
	"net/http"

	"github.com/jonathan/skillsculpt/internal/llm"
	"github.com/jonathan/skillsculpt/internal/skills"
	"github.com/jonathan/skillsculpt/internal/types"
	"github.com/sirupsen/logrus"
)

// handleSuggestSkills suggests skills that are missing from a resume.
func (s *Server) handleSuggestSkills(w http.ResponseWriter, r *http.Request) {
	sub, _ := subject(r)

	var req types.SkillSuggestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, badRequestMessage(err))
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, badRequestMessage(validationError(err)))
		return
	}

	prompt := s.prompts.BuildSkillSuggestion(req.SummaryText(), req.JobTitles, req.JobDescriptions, req.ExistingSkills)

	text, err := llm.Call(r.Context(), s.gateway, prompt, llm.ProfileSkills, s.opts.Streaming)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"subject": sub,
			"model":   s.gateway.Model(),
		}).Error("skill suggestion model call failed")
		s.errorResponse(w, http.StatusInternalServerError, modelErrorMessage(err))
		return
	}

	suggested := skills.FilterExisting(skills.ParseSuggestions(text), req.ExistingSkills)
	s.jsonResponse(w, http.StatusOK, types.SkillSuggestionResponse{SuggestedSkills: suggested})
}
