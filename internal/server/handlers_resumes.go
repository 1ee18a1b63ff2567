package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/skillsculpt/internal/schemas"
	"github.com/jonathan/skillsculpt/internal/types"
)

// readResumeDocument validates the body against the resume schema and decodes it.
func (s *Server) readResumeDocument(w http.ResponseWriter, r *http.Request) (types.ResumeDocument, error) {
	var raw json.RawMessage
	if err := decodeJSON(w, r, &raw); err != nil {
		return types.ResumeDocument{}, err
	}
	if err := s.resumeSchema.ValidateBytes(raw); err != nil {
		return types.ResumeDocument{}, err
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return types.ResumeDocument{}, &ErrValidation{Field: "body", Message: "is not a resume document"}
	}
	doc.Normalize()
	return doc, nil
}

// parseResumeID reads the {id} path value.
func parseResumeID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrNotFound{Resource: "resume"}
	}
	return id, nil
}

// writeStoreError logs err and writes its mapped status.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":   "Bad Request: resume does not match the expected format.",
			"details": schemaErr.Fields(),
		})
		return
	}

	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.WithError(err).WithField("path", r.URL.Path).Error(msg)
		s.errorResponse(w, status, "Internal Server Error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// handleListResumes lists the caller's resumes
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	owner, _ := subject(r)

	resumes, err := s.resumes.ListResumes(r.Context(), owner)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to list resumes")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": resumes,
		"count":   len(resumes),
	})
}

// handleCreateResume stores a new resume for the caller
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	owner, _ := subject(r)

	doc, err := s.readResumeDocument(w, r)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to read resume")
		return
	}

	resume, err := s.resumes.CreateResume(r.Context(), owner, doc)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to create resume")
		return
	}

	s.jsonResponse(w, http.StatusCreated, resume)
}

// handleGetResume returns one of the caller's resumes
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	owner, _ := subject(r)

	id, err := parseResumeID(r)
	if err != nil {
		s.writeStoreError(w, r, err, "invalid resume id")
		return
	}

	resume, err := s.resumes.GetResume(r.Context(), owner, id)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to get resume")
		return
	}
	if resume == nil {
		s.writeStoreError(w, r, &ErrNotFound{Resource: "resume"}, "")
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

// handleUpdateResume replaces one of the caller's resumes
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	owner, _ := subject(r)

	id, err := parseResumeID(r)
	if err != nil {
		s.writeStoreError(w, r, err, "invalid resume id")
		return
	}

	doc, err := s.readResumeDocument(w, r)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to read resume")
		return
	}

	resume, err := s.resumes.UpdateResume(r.Context(), owner, id, doc)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to update resume")
		return
	}
	if resume == nil {
		s.writeStoreError(w, r, &ErrNotFound{Resource: "resume"}, "")
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

// handleDeleteResume removes one of the caller's resumes
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	owner, _ := subject(r)

	id, err := parseResumeID(r)
	if err != nil {
		s.writeStoreError(w, r, err, "invalid resume id")
		return
	}

	deleted, err := s.resumes.DeleteResume(r.Context(), owner, id)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to delete resume")
		return
	}
	if !deleted {
		s.writeStoreError(w, r, &ErrNotFound{Resource: "resume"}, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
