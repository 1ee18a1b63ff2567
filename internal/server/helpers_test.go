package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/skillsculpt/internal/auth"
	"github.com/jonathan/skillsculpt/internal/db"
	"github.com/jonathan/skillsculpt/internal/linkedin"
	"github.com/jonathan/skillsculpt/internal/llm"
	"github.com/jonathan/skillsculpt/internal/prompts"
	"github.com/jonathan/skillsculpt/internal/schemas"
	"github.com/jonathan/skillsculpt/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const (
	tokenUser1 = "token-user-1"
	tokenUser2 = "token-user-2"
)

// fakeGateway returns a canned response and records each call.
type fakeGateway struct {
	mu       sync.Mutex
	text     string
	err      error
	prompts  []string
	profiles []llm.Profile
	streamed []bool
}

func (g *fakeGateway) record(prompt string, profile llm.Profile, stream bool) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	g.profiles = append(g.profiles, profile)
	g.streamed = append(g.streamed, stream)
	if g.err != nil {
		return "", g.err
	}
	text := strings.TrimSpace(g.text)
	if text == "" {
		return "", &llm.EmptyResponseError{Model: g.Model()}
	}
	return text, nil
}

func (g *fakeGateway) Generate(_ context.Context, prompt string, profile llm.Profile) (string, error) {
	return g.record(prompt, profile, false)
}

func (g *fakeGateway) GenerateStream(_ context.Context, prompt string, profile llm.Profile) (string, error) {
	return g.record(prompt, profile, true)
}

func (g *fakeGateway) Model() string { return "fake-model" }
func (g *fakeGateway) Close() error  { return nil }

func (g *fakeGateway) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

// fakeVerifier maps fixed tokens to subjects.
type fakeVerifier struct{}

func (fakeVerifier) Verify(_ context.Context, token string) (auth.Identity, error) {
	switch token {
	case tokenUser1:
		return auth.Identity{Subject: "user-1"}, nil
	case tokenUser2:
		return auth.Identity{Subject: "user-2"}, nil
	}
	return auth.Identity{}, &auth.AuthenticationError{Reason: "unknown token"}
}

// memResumes is an in-memory ResumeStore.
type memResumes struct {
	mu      sync.Mutex
	resumes map[uuid.UUID]types.Resume
	err     error
}

func newMemResumes() *memResumes {
	return &memResumes{resumes: map[uuid.UUID]types.Resume{}}
}

func (m *memResumes) CreateResume(_ context.Context, ownerID string, doc types.ResumeDocument) (*types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	now := time.Now().UTC()
	r := types.Resume{ID: uuid.New(), OwnerID: ownerID, ResumeDocument: doc, CreatedAt: now, UpdatedAt: now}
	m.resumes[r.ID] = r
	return &r, nil
}

func (m *memResumes) GetResume(_ context.Context, ownerID string, id uuid.UUID) (*types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.resumes[id]
	if !ok || r.OwnerID != ownerID {
		return nil, nil
	}
	return &r, nil
}

func (m *memResumes) ListResumes(_ context.Context, ownerID string) ([]types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []types.Resume{}
	for _, r := range m.resumes {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *memResumes) UpdateResume(_ context.Context, ownerID string, id uuid.UUID, doc types.ResumeDocument) (*types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.resumes[id]
	if !ok || r.OwnerID != ownerID {
		return nil, nil
	}
	r.ResumeDocument = doc
	r.UpdatedAt = time.Now().UTC()
	m.resumes[id] = r
	return &r, nil
}

func (m *memResumes) DeleteResume(_ context.Context, ownerID string, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	r, ok := m.resumes[id]
	if !ok || r.OwnerID != ownerID {
		return false, nil
	}
	delete(m.resumes, id)
	return true, nil
}

// memUsers is an in-memory UserStore.
type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*db.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[uuid.UUID]*db.User{}}
}

func (m *memUsers) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	u := &db.User{ID: uuid.New(), Name: name, Email: email, PasswordHash: passwordHash, PasswordSet: passwordHash != "", CreatedAt: now, UpdatedAt: now}
	m.users[u.ID] = u
	return u.ID, nil
}

func (m *memUsers) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := m.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (m *memUsers) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return &ErrUserNotFound{UserID: id}
	}
	u.PasswordHash = passwordHash
	u.PasswordSet = true
	return nil
}

// memLinkedIn is an in-memory LinkedInStore.
type memLinkedIn struct {
	mu      sync.Mutex
	pending map[string]db.LinkedInToken
	tokens  map[string]db.LinkedInToken
}

func newMemLinkedIn() *memLinkedIn {
	return &memLinkedIn{pending: map[string]db.LinkedInToken{}, tokens: map[string]db.LinkedInToken{}}
}

func (m *memLinkedIn) SavePendingLinkedInToken(_ context.Context, state string, t *db.LinkedInToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[state] = *t
	return nil
}

func (m *memLinkedIn) GetPendingLinkedInToken(_ context.Context, state string) (*db.LinkedInToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.pending[state]; ok {
		return &t, nil
	}
	return nil, nil
}

func (m *memLinkedIn) DeletePendingLinkedInToken(_ context.Context, state string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, state)
	return nil
}

func (m *memLinkedIn) AssociateLinkedInToken(_ context.Context, state, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.pending[state]
	if !ok {
		return io.ErrUnexpectedEOF
	}
	m.tokens[ownerID] = t
	delete(m.pending, state)
	return nil
}

func (m *memLinkedIn) GetLinkedInToken(_ context.Context, ownerID string) (*db.LinkedInToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tokens[ownerID]; ok {
		return &t, nil
	}
	return nil, nil
}

// fakeLinkedIn is a LinkedInClient with canned responses.
type fakeLinkedIn struct {
	exchangeErr error
	userInfo    *linkedin.UserInfo
	userInfoErr error
	expiresAt   time.Time
	codes       []string
}

func (f *fakeLinkedIn) AuthCodeURL(state string) string {
	return "https://www.linkedin.com/oauth/v2/authorization?state=" + state
}

func (f *fakeLinkedIn) Exchange(_ context.Context, code string) (*oauth2.Token, error) {
	f.codes = append(f.codes, code)
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return &oauth2.Token{AccessToken: "li-access-" + code}, nil
}

func (f *fakeLinkedIn) ExpiresAt(*oauth2.Token) time.Time { return f.expiresAt }

func (f *fakeLinkedIn) FetchUserInfo(_ context.Context, _ string) (*linkedin.UserInfo, error) {
	if f.userInfoErr != nil {
		return nil, f.userInfoErr
	}
	return f.userInfo, nil
}

// testEnv bundles a server with its fakes.
type testEnv struct {
	server   *Server
	handler  http.Handler
	gateway  *fakeGateway
	resumes  *memResumes
	linkedIn *fakeLinkedIn
	tokens   *memLinkedIn
	hook     *test.Hook
}

func newTestEnv(t *testing.T, opts Options, configure ...func(*Deps)) *testEnv {
	t.Helper()

	builder, err := prompts.NewBuilder()
	require.NoError(t, err)
	resumeSchema, err := schemas.NewResumeValidator()
	require.NoError(t, err)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	env := &testEnv{
		gateway: &fakeGateway{text: "  Delivered weekly reports that cut review time by 30%.  "},
		resumes: newMemResumes(),
		linkedIn: &fakeLinkedIn{
			userInfo:  &linkedin.UserInfo{Sub: "li-123", Name: "Ada Lovelace", Email: "ada@example.com", Picture: "https://media.licdn.com/ada.jpg", Locale: "en_US"},
			expiresAt: time.Now().Add(time.Hour),
		},
		tokens: newMemLinkedIn(),
		hook:   hook,
	}

	deps := Deps{
		Gateway:        env.gateway,
		Prompts:        builder,
		Verifier:       fakeVerifier{},
		Logger:         logger,
		Resumes:        env.resumes,
		ResumeSchema:   resumeSchema,
		LinkedIn:       env.linkedIn,
		LinkedInTokens: env.tokens,
	}
	for _, fn := range configure {
		fn(&deps)
	}

	s, err := New(opts, deps)
	require.NoError(t, err)
	env.server = s
	env.handler = s.Handler()
	return env
}

// do sends a request through the full middleware chain.
func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[map[string]any](t, w)["error"].(string)
}

func newJSONRequest(t *testing.T, path, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(e *testEnv, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}
