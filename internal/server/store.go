package server

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/skillsculpt/internal/db"
	"github.com/jonathan/skillsculpt/internal/linkedin"
	"github.com/jonathan/skillsculpt/internal/types"
	"golang.org/x/oauth2"
)

// ResumeStore persists resumes scoped to their owner. Lookups of another
// owner's resume behave as if it did not exist (nil, nil).
type ResumeStore interface {
	CreateResume(ctx context.Context, ownerID string, doc types.ResumeDocument) (*types.Resume, error)
	GetResume(ctx context.Context, ownerID string, id uuid.UUID) (*types.Resume, error)
	ListResumes(ctx context.Context, ownerID string) ([]types.Resume, error)
	UpdateResume(ctx context.Context, ownerID string, id uuid.UUID, doc types.ResumeDocument) (*types.Resume, error)
	DeleteResume(ctx context.Context, ownerID string, id uuid.UUID) (bool, error)
}

// UserStore persists password-authenticated users.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// LinkedInStore persists LinkedIn tokens, pending ones keyed by OAuth state.
type LinkedInStore interface {
	SavePendingLinkedInToken(ctx context.Context, state string, t *db.LinkedInToken) error
	GetPendingLinkedInToken(ctx context.Context, state string) (*db.LinkedInToken, error)
	DeletePendingLinkedInToken(ctx context.Context, state string) error
	AssociateLinkedInToken(ctx context.Context, state, ownerID string) error
	GetLinkedInToken(ctx context.Context, ownerID string) (*db.LinkedInToken, error)
}

// LinkedInClient performs the OAuth exchange and profile lookup.
type LinkedInClient interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	ExpiresAt(tok *oauth2.Token) time.Time
	FetchUserInfo(ctx context.Context, accessToken string) (*linkedin.UserInfo, error)
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	_ Pinger         = (*db.DB)(nil)
	_ ResumeStore    = (*db.DB)(nil)
	_ UserStore      = (*db.DB)(nil)
	_ LinkedInStore  = (*db.DB)(nil)
	_ LinkedInClient = (*linkedin.Client)(nil)
)
