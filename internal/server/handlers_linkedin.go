package server

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/jonathan/skillsculpt/internal/db"
	"github.com/jonathan/skillsculpt/internal/linkedin"
	"github.com/jonathan/skillsculpt/internal/types"
	"github.com/sirupsen/logrus"
)

const (
	linkedInStateCookie = "linkedin_oauth_state"
	linkedInStateMaxAge = 600 // seconds
	linkedInDashboard   = "/dashboard/linkedin"
)

// handleLinkedInAuthorize starts the OAuth flow: it pins a fresh state in a
// short-lived cookie and redirects the browser to LinkedIn.
func (s *Server) handleLinkedInAuthorize(w http.ResponseWriter, r *http.Request) {
	state := linkedin.NewState()
	http.SetCookie(w, &http.Cookie{
		Name:     linkedInStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   linkedInStateMaxAge,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, s.linkedIn.AuthCodeURL(state), http.StatusFound)
}

// handleLinkedInCallback completes the OAuth flow. The token is parked under
// the state until an authenticated client claims it via associate.
func (s *Server) handleLinkedInCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	log := s.logger.WithField("handler", "linkedin_callback")

	// The state cookie is single-use.
	http.SetCookie(w, &http.Cookie{Name: linkedInStateCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	if errCode := q.Get("error"); errCode != "" {
		desc := q.Get("error_description")
		if desc == "" {
			desc = "LinkedIn authentication failed"
		}
		log.WithField("error", errCode).Warn("linkedin returned an error")
		s.redirectToDashboard(w, r, "linkedin_error", desc)
		return
	}

	code, state := q.Get("code"), q.Get("state")
	if code == "" || state == "" {
		s.redirectToDashboard(w, r, "linkedin_error", "Missing required parameters")
		return
	}

	cookie, err := r.Cookie(linkedInStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != state {
		log.Warn("linkedin state mismatch")
		s.redirectToDashboard(w, r, "linkedin_error", "Invalid state parameter")
		return
	}

	tok, err := s.linkedIn.Exchange(r.Context(), code)
	if err != nil {
		log.WithError(err).Error("linkedin code exchange failed")
		s.redirectToDashboard(w, r, "linkedin_error", "Failed to exchange code for token")
		return
	}

	info, err := s.linkedIn.FetchUserInfo(r.Context(), tok.AccessToken)
	if err != nil {
		log.WithError(err).Error("linkedin userinfo fetch failed")
		s.redirectToDashboard(w, r, "linkedin_error", "Failed to fetch user info")
		return
	}

	pending := &db.LinkedInToken{
		AccessToken:    tok.AccessToken,
		ExpiresAt:      s.linkedIn.ExpiresAt(tok),
		LinkedInUserID: info.Sub,
		LinkedInName:   info.Name,
		LinkedInEmail:  info.Email,
	}
	if err := s.linkedInTokens.SavePendingLinkedInToken(r.Context(), state, pending); err != nil {
		log.WithError(err).Error("failed to store pending linkedin token")
		s.redirectToDashboard(w, r, "linkedin_error", "Internal server error")
		return
	}

	s.redirectToDashboard(w, r, "linkedin_state", state)
}

// handleLinkedInAssociate attaches a pending LinkedIn token to the caller.
func (s *Server) handleLinkedInAssociate(w http.ResponseWriter, r *http.Request) {
	owner, _ := subject(r)
	log := s.logger.WithFields(logrus.Fields{"handler": "linkedin_associate", "subject": owner})

	var req types.LinkedInAssociateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Bad Request - Missing state parameter")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Bad Request - Missing state parameter")
		return
	}

	pending, err := s.linkedInTokens.GetPendingLinkedInToken(r.Context(), req.State)
	if err != nil {
		log.WithError(err).Error("failed to load pending linkedin token")
		s.errorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if pending == nil {
		s.errorResponse(w, http.StatusNotFound, "Not Found - Temporary token not found or expired")
		return
	}
	if pending.AccessToken == "" {
		s.errorResponse(w, http.StatusBadRequest, "Bad Request - Invalid temporary token data")
		return
	}
	if pending.Expired(s.now()) {
		if err := s.linkedInTokens.DeletePendingLinkedInToken(r.Context(), req.State); err != nil {
			log.WithError(err).Warn("failed to delete expired pending linkedin token")
		}
		s.errorResponse(w, http.StatusGone, "Gone - Temporary token expired")
		return
	}

	if err := s.linkedInTokens.AssociateLinkedInToken(r.Context(), req.State, owner); err != nil {
		log.WithError(err).Error("failed to associate linkedin token")
		s.errorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	log.WithField("linkedin_user", pending.LinkedInUserID).Info("linkedin account connected")
	s.jsonResponse(w, http.StatusOK, types.SuccessResponse{Success: true})
}

// handleLinkedInProfile returns the caller's basic LinkedIn profile.
func (s *Server) handleLinkedInProfile(w http.ResponseWriter, r *http.Request) {
	owner, _ := subject(r)
	log := s.logger.WithFields(logrus.Fields{"handler": "linkedin_profile", "subject": owner})

	token, err := s.linkedInTokens.GetLinkedInToken(r.Context(), owner)
	if err != nil {
		log.WithError(err).Error("failed to load linkedin token")
		s.errorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if token == nil {
		s.errorResponse(w, http.StatusNotFound, "LinkedIn token not found - Please connect your LinkedIn account")
		return
	}
	if token.AccessToken == "" {
		s.errorResponse(w, http.StatusUnauthorized, "LinkedIn token data invalid - Please reconnect your LinkedIn account")
		return
	}
	if token.Expired(s.now()) {
		s.errorResponse(w, http.StatusUnauthorized, "LinkedIn token expired - Please reconnect your LinkedIn account")
		return
	}

	info, err := s.linkedIn.FetchUserInfo(r.Context(), token.AccessToken)
	if err != nil {
		status := http.StatusBadGateway
		var apiErr *linkedin.APIError
		if errors.As(err, &apiErr) {
			status = apiErr.Status
		}
		log.WithError(err).Error("linkedin profile fetch failed")
		s.errorResponse(w, status, "Failed to fetch LinkedIn profile")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.LinkedInProfile{
		Name:       info.Name,
		Email:      info.Email,
		PictureURL: info.Picture,
		LinkedInID: info.Sub,
		Locale:     string(info.Locale),
	})
}

// redirectToDashboard sends the browser to the frontend's LinkedIn page with one query parameter.
func (s *Server) redirectToDashboard(w http.ResponseWriter, r *http.Request, key, value string) {
	target := strings.TrimSuffix(s.opts.FrontendURL, "/") + linkedInDashboard + "?" + url.Values{key: {value}}.Encode()
	http.Redirect(w, r, target, http.StatusFound)
}
