package application

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/link2arslan/google-feed/internal/domain"
	"github.com/link2arslan/google-feed/internal/ports"

	"github.com/rs/zerolog"
)

// GoogleOAuthService drives the Merchant Center connection flow: building
// the consent URL and completing the callback. The only persistent effect of
// the whole flow is one merge-update of the shop record at the very end.
type GoogleOAuthService struct {
	oauth     ports.GoogleOAuthClient
	merchants ports.MerchantClient
	shops     ports.ShopRepository
	appSlug   string
	logger    zerolog.Logger
	now       func() time.Time
}

// NewGoogleOAuthService creates a new OAuth flow service. appSlug is the
// embedded app's handle used to build the post-connect redirect.
func NewGoogleOAuthService(
	oauth ports.GoogleOAuthClient,
	merchants ports.MerchantClient,
	shops ports.ShopRepository,
	appSlug string,
	logger zerolog.Logger,
) *GoogleOAuthService {
	return &GoogleOAuthService{
		oauth:     oauth,
		merchants: merchants,
		shops:     shops,
		appSlug:   appSlug,
		logger:    logger,
		now:       time.Now,
	}
}

// Connect returns the Google consent URL for a shop. The shop domain rides
// along in the state parameter; nothing is written to the store.
func (s *GoogleOAuthService) Connect(ctx context.Context, shopDomain string) (string, error) {
	return s.oauth.ConsentURL(encodeState(shopDomain)), nil
}

// CallbackInput carries the query parameters Google appends to the redirect.
type CallbackInput struct {
	Code          string
	State         string
	ProviderError string
}

// CallbackResult is the successful outcome of the callback transition.
type CallbackResult struct {
	MerchantID  string
	RedirectURL string
}

// Callback completes the OAuth handshake: exchanges the code, resolves the
// merchant account, and persists the credential set for the shop named in the
// state. Any failure leaves the shop record untouched.
func (s *GoogleOAuthService) Callback(ctx context.Context, input CallbackInput) (*CallbackResult, error) {
	if input.ProviderError != "" {
		return nil, &domain.OAuthError{Reason: domain.OAuthProviderError, Message: input.ProviderError}
	}

	shopDomain, err := decodeState(input.State)
	if err != nil {
		return nil, err
	}

	token, err := s.oauth.Exchange(ctx, input.Code)
	if err != nil {
		return nil, &domain.OAuthError{Reason: domain.OAuthExchangeFailed, Message: "authorization code exchange failed", Err: err}
	}

	accounts, err := s.merchants.ListAccounts(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, &domain.OAuthError{Reason: domain.OAuthNoMerchantAccount, Message: "no Google Merchant Center account found for this user"}
	}

	// The listing is not ordered by anything meaningful; the first account in
	// API order is the linked one.
	merchantID := strings.TrimPrefix(accounts[0].Name, "accounts/")

	expiry := s.now().Add(time.Duration(token.ExpiresIn) * time.Second)
	connected := true
	update := &domain.ShopUpdate{
		GoogleMerchantID:  &merchantID,
		GoogleAccessToken: &token.AccessToken,
		GoogleTokenExpiry: &expiry,
		GoogleConnected:   &connected,
	}
	// Google returns a refresh token only on the first consent. Leaving the
	// field nil keeps the stored one.
	if token.RefreshToken != "" {
		update.GoogleRefreshToken = &token.RefreshToken
	}

	if err := s.shops.UpdateShop(ctx, shopDomain, update); err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			s.logger.Warn().Str("shop", shopDomain).Msg("OAuth callback for unknown shop, tokens not stored")
		} else {
			return nil, err
		}
	}

	s.logger.Info().
		Str("shop", shopDomain).
		Str("merchantId", merchantID).
		Msg("Google Merchant Center connected")

	redirectURL := fmt.Sprintf("https://%s/admin/apps/%s?merchantId=%s",
		shopDomain, s.appSlug, url.QueryEscape(merchantID))

	return &CallbackResult{MerchantID: merchantID, RedirectURL: redirectURL}, nil
}
