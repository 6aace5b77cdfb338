package ports

import (
	"context"

	"github.com/link2arslan/google-feed/internal/domain"
)

// GoogleOAuthClient drives the OAuth2 endpoints of accounts.google.com.
type GoogleOAuthClient interface {
	// ConsentURL builds the authorization URL for the content scope with
	// offline access and forced consent, carrying the given state through
	// the redirect.
	ConsentURL(state string) string

	// Exchange trades an authorization code for a token set.
	Exchange(ctx context.Context, code string) (*domain.GoogleToken, error)

	// Refresh mints a fresh access token from a stored refresh token.
	Refresh(ctx context.Context, refreshToken string) (*domain.GoogleToken, error)
}

// MerchantClient calls the Google Merchant API with a bearer token.
type MerchantClient interface {
	// ListAccounts returns the Merchant Center accounts visible to the
	// credential, in API order.
	ListAccounts(ctx context.Context, accessToken string) ([]domain.MerchantAccount, error)

	// InsertProductInput submits one offer under the merchant's default data
	// source.
	InsertProductInput(ctx context.Context, accessToken, merchantID string, input *domain.MerchantProductInput) error
}
