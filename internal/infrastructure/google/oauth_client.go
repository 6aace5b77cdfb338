package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/link2arslan/google-feed/internal/domain"
	"github.com/link2arslan/google-feed/internal/infrastructure/metrics"
	"github.com/link2arslan/google-feed/internal/ports"

	"github.com/rs/zerolog"
)

// ContentScope grants access to Merchant Center product data.
const ContentScope = "https://www.googleapis.com/auth/content"

const (
	defaultAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	defaultTokenURL = "https://oauth2.googleapis.com/token"
)

// OAuthClient implements ports.GoogleOAuthClient against Google's OAuth2
// endpoints with plain form POSTs.
type OAuthClient struct {
	clientID     string
	clientSecret string
	redirectURI  string
	authURL      string
	tokenURL     string
	httpClient   *http.Client
	logger       zerolog.Logger
}

// NewOAuthClient creates a client for the configured Google OAuth app.
func NewOAuthClient(clientID, clientSecret, redirectURI string, logger zerolog.Logger) *OAuthClient {
	return &OAuthClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		authURL:      defaultAuthURL,
		tokenURL:     defaultTokenURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

var _ ports.GoogleOAuthClient = (*OAuthClient)(nil)

// ConsentURL builds the authorization URL. Offline access plus forced consent
// guarantees a refresh token on the first grant.
func (c *OAuthClient) ConsentURL(state string) string {
	values := url.Values{}
	values.Set("client_id", c.clientID)
	values.Set("redirect_uri", c.redirectURI)
	values.Set("response_type", "code")
	values.Set("scope", ContentScope)
	values.Set("access_type", "offline")
	values.Set("prompt", "consent")
	values.Set("state", state)

	return c.authURL + "?" + values.Encode()
}

// Exchange trades an authorization code for a token set.
func (c *OAuthClient) Exchange(ctx context.Context, code string) (*domain.GoogleToken, error) {
	values := url.Values{}
	values.Set("client_id", c.clientID)
	values.Set("client_secret", c.clientSecret)
	values.Set("code", code)
	values.Set("redirect_uri", c.redirectURI)
	values.Set("grant_type", "authorization_code")

	return c.fetchToken(ctx, "token_exchange", values)
}

// Refresh mints a fresh access token from a stored refresh token. Google
// does not return a new refresh token on this grant.
func (c *OAuthClient) Refresh(ctx context.Context, refreshToken string) (*domain.GoogleToken, error) {
	values := url.Values{}
	values.Set("client_id", c.clientID)
	values.Set("client_secret", c.clientSecret)
	values.Set("refresh_token", refreshToken)
	values.Set("grant_type", "refresh_token")

	return c.fetchToken(ctx, "token_refresh", values)
}

func (c *OAuthClient) fetchToken(ctx context.Context, operation string, values url.Values) (*domain.GoogleToken, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ObserveUpstream(metrics.UpstreamGoogle, operation, start, err)
	if err != nil {
		return nil, &domain.GatewayError{Upstream: "google", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.GatewayError{Upstream: "google", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("Google token endpoint returned an error")
		return nil, &domain.GatewayError{
			Upstream:   "google",
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var token struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, &domain.GatewayError{Upstream: "google", Err: fmt.Errorf("failed to decode token response: %w", err)}
	}
	if token.AccessToken == "" {
		return nil, &domain.GatewayError{Upstream: "google", Err: fmt.Errorf("token response missing access_token")}
	}

	return &domain.GoogleToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresIn:    token.ExpiresIn,
	}, nil
}
