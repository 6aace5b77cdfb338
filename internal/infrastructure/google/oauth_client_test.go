package google

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/link2arslan/google-feed/internal/domain"

	"github.com/rs/zerolog"
)

func TestConsentURL(t *testing.T) {
	c := NewOAuthClient("client-id", "secret", "https://app.example.com/api/google/callback", zerolog.Nop())

	raw := c.ConsentURL("state-token")
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse consent url: %v", err)
	}

	q := parsed.Query()
	checks := map[string]string{
		"client_id":     "client-id",
		"redirect_uri":  "https://app.example.com/api/google/callback",
		"response_type": "code",
		"scope":         ContentScope,
		"access_type":   "offline",
		"prompt":        "consent",
		"state":         "state-token",
	}
	for key, want := range checks {
		if got := q.Get(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestExchangeSendsCodeGrant(t *testing.T) {
	var gotForm url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotForm = r.PostForm
		w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_in":3599}`))
	}))
	defer srv.Close()

	c := NewOAuthClient("client-id", "secret", "https://app.example.com/cb", zerolog.Nop())
	c.tokenURL = srv.URL

	token, err := c.Exchange(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}

	if gotForm.Get("grant_type") != "authorization_code" || gotForm.Get("code") != "auth-code" {
		t.Errorf("form = %v", gotForm)
	}
	if gotForm.Get("client_secret") != "secret" {
		t.Errorf("client_secret missing from form")
	}
	if token.AccessToken != "at" || token.RefreshToken != "rt" || token.ExpiresIn != 3599 {
		t.Errorf("token = %+v", token)
	}
}

func TestRefreshSendsRefreshGrant(t *testing.T) {
	var gotForm url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotForm = r.PostForm
		w.Write([]byte(`{"access_token":"fresh","expires_in":3600}`))
	}))
	defer srv.Close()

	c := NewOAuthClient("client-id", "secret", "https://app.example.com/cb", zerolog.Nop())
	c.tokenURL = srv.URL

	token, err := c.Refresh(context.Background(), "stored-refresh")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if gotForm.Get("grant_type") != "refresh_token" || gotForm.Get("refresh_token") != "stored-refresh" {
		t.Errorf("form = %v", gotForm)
	}
	if token.RefreshToken != "" {
		t.Errorf("refresh grant should not return a refresh token, got %q", token.RefreshToken)
	}
}

func TestTokenEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	c := NewOAuthClient("client-id", "secret", "https://app.example.com/cb", zerolog.Nop())
	c.tokenURL = srv.URL

	_, err := c.Exchange(context.Background(), "bad-code")
	var gatewayErr *domain.GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("err = %v, want *domain.GatewayError", err)
	}
	if gatewayErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", gatewayErr.StatusCode)
	}
}

func TestTokenResponseMissingAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewOAuthClient("client-id", "secret", "https://app.example.com/cb", zerolog.Nop())
	c.tokenURL = srv.URL

	_, err := c.Exchange(context.Background(), "code")
	var gatewayErr *domain.GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("err = %v, want *domain.GatewayError", err)
	}
}
