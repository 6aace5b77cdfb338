package shopify

import (
	"fmt"
	"net/http"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

// RequestVerifier checks the HMAC signature Shopify appends to embedded-app
// requests, using the app's API secret.
type RequestVerifier struct {
	app    goshopify.App
	logger zerolog.Logger
}

// NewRequestVerifier creates a verifier for the given app credentials.
func NewRequestVerifier(apiKey, apiSecret string, logger zerolog.Logger) *RequestVerifier {
	return &RequestVerifier{
		app: goshopify.App{
			ApiKey:    apiKey,
			ApiSecret: apiSecret,
		},
		logger: logger,
	}
}

// Verify validates the hmac query parameter when present. Requests without a
// signature (direct API calls from the embedded frontend, which authenticate
// at the session level) pass through.
func (v *RequestVerifier) Verify(r *http.Request) error {
	if r.URL.Query().Get("hmac") == "" {
		return nil
	}

	ok, err := v.app.VerifyAuthorizationURL(r.URL)
	if err != nil {
		return fmt.Errorf("failed to verify request signature: %w", err)
	}
	if !ok {
		return fmt.Errorf("invalid request signature")
	}
	return nil
}
