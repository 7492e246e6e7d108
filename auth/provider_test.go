package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/jrsteele09/nearme-publisher/auth"
	"github.com/jrsteele09/nearme-publisher/internal/config"
	"github.com/jrsteele09/nearme-publisher/internal/errors"
	"github.com/jrsteele09/nearme-publisher/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testClientID     = "client-1"
	testClientSecret = "secret-1"
	testCode         = "code-1"
	testAccessToken  = "access-1"
)

func newProviderServer(t *testing.T, profileStatus int, profileBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		if r.PostForm.Get("code") != testCode {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		assert.Equal(t, testClientID, r.PostForm.Get("client_id"))
		assert.Equal(t, testClientSecret, r.PostForm.Get("client_secret"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"` + testAccessToken + `","token_type":"Bearer"}`))
	})
	mux.HandleFunc("GET /www/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+testAccessToken, r.Header.Get("Authorization"))
		w.WriteHeader(profileStatus)
		_, _ = w.Write([]byte(profileBody))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newProvider(srv *httptest.Server) *auth.Provider {
	return auth.NewProvider(config.OAuth{
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
		AuthorizeURL: srv.URL + "/oauth/authorize",
		TokenURL:     srv.URL + "/oauth/access_token",
		ProfileURL:   srv.URL + "/www/user",
	}, auth.WithHTTPClient(srv.Client()))
}

func TestProvider_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := newProviderServer(t, http.StatusOK, `{"user":{"uid":"u1","username":"owlfan","email":"owl@example.com","name":"Owl Fan","billing":{}}}`)
		p := newProvider(srv)

		s, err := p.Login(context.Background(), testCode)
		require.NoError(t, err)
		require.Equal(t, sessions.Session{
			AccessToken: testAccessToken,
			Profile:     sessions.Profile{UID: "u1", Username: "owlfan", Email: "owl@example.com", Name: "Owl Fan"},
		}, s)
	})

	t.Run("missing code", func(t *testing.T) {
		srv := newProviderServer(t, http.StatusOK, `{}`)
		_, err := newProvider(srv).Login(context.Background(), "")
		require.ErrorIs(t, err, errors.ErrMissingCode)
	})

	t.Run("rejected code", func(t *testing.T) {
		srv := newProviderServer(t, http.StatusOK, `{}`)
		_, err := newProvider(srv).Login(context.Background(), "wrong")
		require.Error(t, err)
		require.Contains(t, err.Error(), "code exchange failed")
	})

	t.Run("profile without user", func(t *testing.T) {
		srv := newProviderServer(t, http.StatusOK, `{"other":1}`)
		_, err := newProvider(srv).Login(context.Background(), testCode)
		require.ErrorIs(t, err, errors.ErrProfileMissing)
	})

	t.Run("profile error status", func(t *testing.T) {
		srv := newProviderServer(t, http.StatusUnauthorized, `{"error":"forbidden"}`)
		_, err := newProvider(srv).Login(context.Background(), testCode)
		require.Error(t, err)
		require.Contains(t, err.Error(), "status 401")
	})
}

func TestProvider_AuthCodeURL(t *testing.T) {
	srv := newProviderServer(t, http.StatusOK, `{}`)
	u, err := url.Parse(newProvider(srv).AuthCodeURL("state-123"))
	require.NoError(t, err)
	require.Equal(t, "/oauth/authorize", u.Path)
	require.Equal(t, testClientID, u.Query().Get("client_id"))
	require.Equal(t, "state-123", u.Query().Get("state"))
}

func TestState(t *testing.T) {
	a, err := auth.NewState()
	require.NoError(t, err)
	b, err := auth.NewState()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
	require.Len(t, a, 43)

	require.True(t, auth.ValidState(a, a))
	require.False(t, auth.ValidState(a, b))
	require.False(t, auth.ValidState("", ""))
}
