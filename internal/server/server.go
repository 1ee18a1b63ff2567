// Package server provides the HTTP API for SkillSculpt.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/skillsculpt/internal/auth"
	"github.com/jonathan/skillsculpt/internal/config"
	"github.com/jonathan/skillsculpt/internal/llm"
	"github.com/jonathan/skillsculpt/internal/prompts"
	"github.com/jonathan/skillsculpt/internal/schemas"
	"github.com/jonathan/skillsculpt/internal/server/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// Options holds server settings resolved from configuration.
type Options struct {
	Port            int
	Streaming       bool   // aggregate streamed model output instead of a single call
	FrontendURL     string // base URL for LinkedIn callback redirects
	ShutdownTimeout time.Duration
}

// Deps are the collaborators the server is built from. Gateway, Prompts,
// Verifier and Logger are required; the store-backed route groups are only
// registered when their dependencies are present.
type Deps struct {
	Gateway  llm.Gateway
	Prompts  *prompts.Builder
	Verifier auth.Verifier
	Logger   *logrus.Logger

	// Database is pinged by the health check when set.
	Database Pinger

	// Resume CRUD
	Resumes      ResumeStore
	ResumeSchema *schemas.Validator

	// Password sign-up and sign-in
	Users    UserStore
	Password *config.PasswordConfig
	Tokens   *auth.JWTService

	// LinkedIn integration
	LinkedIn       LinkedInClient
	LinkedInTokens LinkedInStore
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	opts       Options
	logger     *logrus.Logger

	gateway  llm.Gateway
	prompts  *prompts.Builder
	verifier auth.Verifier
	database Pinger

	resumes      ResumeStore
	resumeSchema *schemas.Validator

	authHandler *AuthHandler

	linkedIn       LinkedInClient
	linkedInTokens LinkedInStore

	now func() time.Time
}

// New creates a new server instance
func New(opts Options, deps Deps) (*Server, error) {
	switch {
	case deps.Gateway == nil:
		return nil, errors.New("server: gateway is required")
	case deps.Prompts == nil:
		return nil, errors.New("server: prompt builder is required")
	case deps.Verifier == nil:
		return nil, errors.New("server: verifier is required")
	case deps.Logger == nil:
		return nil, errors.New("server: logger is required")
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 30 * time.Second
	}

	s := &Server{
		opts:           opts,
		logger:         deps.Logger,
		gateway:        deps.Gateway,
		prompts:        deps.Prompts,
		verifier:       deps.Verifier,
		database:       deps.Database,
		resumes:        deps.Resumes,
		resumeSchema:   deps.ResumeSchema,
		linkedIn:       deps.LinkedIn,
		linkedInTokens: deps.LinkedInTokens,
		now:            time.Now,
	}

	if deps.Resumes != nil && deps.ResumeSchema == nil {
		return nil, errors.New("server: resume store requires a resume schema")
	}
	if deps.Users != nil && deps.Password != nil && deps.Tokens != nil {
		s.authHandler = NewAuthHandler(NewUserService(deps.Users, deps.Password), deps.Tokens, deps.Logger)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // model calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.withLogging(s.withCORS(s.routes()))
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.AuthMiddleware(s.verifier, s.logger)
	protected := func(h http.HandlerFunc) http.Handler { return requireAuth(h) }

	mux.HandleFunc("GET /health", s.handleHealth)

	// AI enhancement
	mux.Handle("POST /api/enhance-resume-text", protected(s.enhanceHandler(resumeTextVariant)))
	mux.Handle("POST /api/ai/enhance-linkedin", protected(s.enhanceHandler(linkedInVariant)))
	mux.Handle("POST /api/suggest-resume-skills", protected(s.handleSuggestSkills))

	if s.resumes != nil {
		mux.Handle("GET /resumes", protected(s.handleListResumes))
		mux.Handle("POST /resumes", protected(s.handleCreateResume))
		mux.Handle("GET /resumes/{id}", protected(s.handleGetResume))
		mux.Handle("PUT /resumes/{id}", protected(s.handleUpdateResume))
		mux.Handle("DELETE /resumes/{id}", protected(s.handleDeleteResume))
	}

	if s.authHandler != nil {
		mux.HandleFunc("POST /auth/register", s.authHandler.Register)
		mux.HandleFunc("POST /auth/login", s.authHandler.Login)
		mux.Handle("PUT /auth/password", protected(s.authHandler.UpdatePassword))
	}

	if s.linkedIn != nil && s.linkedInTokens != nil {
		mux.HandleFunc("GET /api/auth/linkedin", s.handleLinkedInAuthorize)
		mux.HandleFunc("GET /api/auth/linkedin/callback", s.handleLinkedInCallback)
		mux.Handle("POST /api/linkedin/associate", protected(s.handleLinkedInAssociate))
		mux.Handle("GET /api/linkedin/profile/basic", protected(s.handleLinkedInProfile))
	}

	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.WithField("addr", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers and answers preflight requests
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request completed")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{
		"status": "ok",
		"model":  s.gateway.Model(),
	}
	status := http.StatusOK

	if s.database != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		body["database"] = "ok"
		if err := s.database.Ping(ctx); err != nil {
			s.logger.WithError(err).Warn("database health check failed")
			body["status"] = "degraded"
			body["database"] = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}

	s.jsonResponse(w, status, body)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data, s.logger)
}

func writeJSON(w http.ResponseWriter, status int, data any, logger logrus.FieldLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.WithError(err).Error("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a bounded request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON body"}
	}
	return nil
}

// subject returns the verified subject placed on the context by the auth middleware.
func subject(r *http.Request) (string, bool) {
	identity, ok := middleware.IdentityFrom(r.Context())
	return identity.Subject, ok
}
