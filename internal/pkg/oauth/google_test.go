package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestServer(t *testing.T, userinfo string, userinfoStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(userinfoStatus)
		_, _ = w.Write([]byte(userinfo))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(srv *httptest.Server) *GoogleProvider {
	return NewProvider(&oauth2.Config{
		ClientID:     "cid",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/api/callback",
		Scopes:       []string{"openid", "email"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  srv.URL + "/auth",
			TokenURL: srv.URL + "/token",
		},
	}, srv.URL+"/userinfo")
}

func TestAuthCodeURL(t *testing.T) {
	srv := newTestServer(t, `{}`, http.StatusOK)
	p := newTestProvider(srv)

	u, err := url.Parse(p.AuthCodeURL("state-jwt"))
	require.NoError(t, err)
	assert.Equal(t, "state-jwt", u.Query().Get("state"))
	assert.Equal(t, "cid", u.Query().Get("client_id"))
	assert.Equal(t, "code", u.Query().Get("response_type"))
}

func TestExchange(t *testing.T) {
	srv := newTestServer(t, `{"sub":"g-1","email":"a@b.c","given_name":"Ann","family_name":"Lee","picture":"http://p"}`, http.StatusOK)
	p := newTestProvider(srv)

	identity, err := p.Exchange(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "g-1", identity.Subject)
	assert.Equal(t, "a@b.c", identity.Email)
	assert.Equal(t, "Ann", identity.GivenName)
	assert.Equal(t, "Lee", identity.FamilyName)
	assert.Equal(t, "http://p", identity.Picture)
}

func TestExchangeFailures(t *testing.T) {
	srv := newTestServer(t, `{"email":"a@b.c"}`, http.StatusOK)
	p := newTestProvider(srv)

	_, err := p.Exchange(context.Background(), "bad")
	assert.Error(t, err)

	_, err = p.Exchange(context.Background(), "good")
	assert.ErrorContains(t, err, "subject")

	srv500 := newTestServer(t, `{}`, http.StatusInternalServerError)
	_, err = newTestProvider(srv500).Exchange(context.Background(), "good")
	assert.ErrorContains(t, err, "status 500")
}
