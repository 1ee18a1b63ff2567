package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/jonathan/skillsculpt/internal/db"
	"github.com/jonathan/skillsculpt/internal/linkedin"
	"github.com/jonathan/skillsculpt/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFrontend = "https://app.example.com"

func callback(env *testEnv, query url.Values, cookieState string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/linkedin/callback?"+query.Encode(), nil)
	if cookieState != "" {
		req.AddCookie(&http.Cookie{Name: linkedInStateCookie, Value: cookieState})
	}
	return serve(env, req)
}

func redirectParams(t *testing.T, w *httptest.ResponseRecorder) url.Values {
	t.Helper()
	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "app.example.com", loc.Host)
	assert.Equal(t, "/dashboard/linkedin", loc.Path)
	return loc.Query()
}

func TestLinkedInAuthorize_SetsStateCookie(t *testing.T) {
	env := newTestEnv(t, Options{FrontendURL: testFrontend})

	w := env.do(http.MethodGet, "/api/auth/linkedin", "", nil)

	require.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	state := cookies[0]
	assert.Equal(t, linkedInStateCookie, state.Name)
	assert.NotEmpty(t, state.Value)
	assert.True(t, state.HttpOnly)
	assert.Equal(t, linkedInStateMaxAge, state.MaxAge)
	assert.Equal(t, "https://www.linkedin.com/oauth/v2/authorization?state="+state.Value, w.Header().Get("Location"))
}

func TestLinkedInCallback_ProviderError(t *testing.T) {
	env := newTestEnv(t, Options{FrontendURL: testFrontend})

	w := callback(env, url.Values{"error": {"user_cancelled_login"}, "error_description": {"The user cancelled"}}, "")

	params := redirectParams(t, w)
	assert.Equal(t, "The user cancelled", params.Get("linkedin_error"))
	assert.Empty(t, env.linkedIn.codes)
}

func TestLinkedInCallback_MissingParameters(t *testing.T) {
	env := newTestEnv(t, Options{FrontendURL: testFrontend})

	w := callback(env, url.Values{"code": {"abc"}}, "s1")

	assert.Equal(t, "Missing required parameters", redirectParams(t, w).Get("linkedin_error"))
}

func TestLinkedInCallback_StateMismatch(t *testing.T) {
	for name, cookie := range map[string]string{"no cookie": "", "different cookie": "other"} {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t, Options{FrontendURL: testFrontend})

			w := callback(env, url.Values{"code": {"abc"}, "state": {"s1"}}, cookie)

			assert.Equal(t, "Invalid state parameter", redirectParams(t, w).Get("linkedin_error"))
			assert.Empty(t, env.linkedIn.codes)
			assert.Empty(t, env.tokens.pending)
		})
	}
}

func TestLinkedInCallback_ExchangeFailure(t *testing.T) {
	env := newTestEnv(t, Options{FrontendURL: testFrontend})
	env.linkedIn.exchangeErr = errors.New("invalid_grant")

	w := callback(env, url.Values{"code": {"abc"}, "state": {"s1"}}, "s1")

	assert.Equal(t, "Failed to exchange code for token", redirectParams(t, w).Get("linkedin_error"))
	assert.Empty(t, env.tokens.pending)
}

func TestLinkedInCallback_StoresPendingToken(t *testing.T) {
	env := newTestEnv(t, Options{FrontendURL: testFrontend + "/"})

	w := callback(env, url.Values{"code": {"abc"}, "state": {"s1"}}, "s1")

	params := redirectParams(t, w)
	assert.Equal(t, "s1", params.Get("linkedin_state"))
	assert.Empty(t, params.Get("linkedin_error"))

	require.Contains(t, env.tokens.pending, "s1")
	pending := env.tokens.pending["s1"]
	assert.Equal(t, "li-access-abc", pending.AccessToken)
	assert.Equal(t, "li-123", pending.LinkedInUserID)
	assert.Equal(t, "Ada Lovelace", pending.LinkedInName)
	assert.Equal(t, []string{"abc"}, env.linkedIn.codes)

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == linkedInStateCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "state cookie should be cleared")
}

func TestLinkedInAssociate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		pending map[string]db.LinkedInToken
		body    any
		status  int
	}{
		{"missing state", nil, map[string]string{}, http.StatusBadRequest},
		{"blank state", nil, map[string]string{"state": " "}, http.StatusBadRequest},
		{"unknown state", nil, map[string]string{"state": "s1"}, http.StatusNotFound},
		{
			"empty access token",
			map[string]db.LinkedInToken{"s1": {ExpiresAt: now.Add(time.Hour)}},
			map[string]string{"state": "s1"},
			http.StatusBadRequest,
		},
		{
			"expired",
			map[string]db.LinkedInToken{"s1": {AccessToken: "tok", ExpiresAt: now.Add(-time.Minute)}},
			map[string]string{"state": "s1"},
			http.StatusGone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, Options{})
			env.server.now = func() time.Time { return now }
			for state, tok := range tt.pending {
				env.tokens.pending[state] = tok
			}

			w := env.do(http.MethodPost, "/api/linkedin/associate", tokenUser1, tt.body)

			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Empty(t, env.tokens.tokens)
			if tt.status == http.StatusGone {
				assert.NotContains(t, env.tokens.pending, "s1", "expired pending token is removed")
			}
		})
	}
}

func TestLinkedInAssociate_Success(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.tokens.pending["s1"] = db.LinkedInToken{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour), LinkedInUserID: "li-123"}

	w := env.do(http.MethodPost, "/api/linkedin/associate", tokenUser1, map[string]string{"state": "s1"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decodeBody[types.SuccessResponse](t, w).Success)
	assert.Equal(t, "tok", env.tokens.tokens["user-1"].AccessToken)
	assert.Empty(t, env.tokens.pending)
}

func TestLinkedInAssociate_RequiresAuth(t *testing.T) {
	env := newTestEnv(t, Options{})

	w := env.do(http.MethodPost, "/api/linkedin/associate", "", map[string]string{"state": "s1"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLinkedInProfile(t *testing.T) {
	valid := db.LinkedInToken{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}

	tests := []struct {
		name    string
		token   *db.LinkedInToken
		infoErr error
		status  int
	}{
		{"not connected", nil, nil, http.StatusNotFound},
		{"empty token", &db.LinkedInToken{ExpiresAt: time.Now().Add(time.Hour)}, nil, http.StatusUnauthorized},
		{"expired", &db.LinkedInToken{AccessToken: "tok", ExpiresAt: time.Now().Add(-time.Hour)}, nil, http.StatusUnauthorized},
		{"upstream rejects", &valid, &linkedin.APIError{Status: http.StatusUnauthorized, Body: "revoked"}, http.StatusUnauthorized},
		{"transport failure", &valid, errors.New("dial tcp: timeout"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, Options{})
			if tt.token != nil {
				env.tokens.tokens["user-1"] = *tt.token
			}
			env.linkedIn.userInfoErr = tt.infoErr

			w := env.do(http.MethodGet, "/api/linkedin/profile/basic", tokenUser1, nil)

			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.NotEmpty(t, errorMessage(t, w))
		})
	}
}

func TestLinkedInProfile_Success(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.tokens.tokens["user-1"] = db.LinkedInToken{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}

	w := env.do(http.MethodGet, "/api/linkedin/profile/basic", tokenUser1, nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, types.LinkedInProfile{
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		PictureURL: "https://media.licdn.com/ada.jpg",
		LinkedInID: "li-123",
		Locale:     "en_US",
	}, decodeBody[types.LinkedInProfile](t, w))
}

func TestLinkedInProfile_OtherSubjectNotConnected(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.tokens.tokens["user-1"] = db.LinkedInToken{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}

	w := env.do(http.MethodGet, "/api/linkedin/profile/basic", tokenUser2, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
