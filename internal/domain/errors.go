package domain

import (
	"errors"
	"fmt"
)

// ErrShopNotFound is returned when no record exists for a shop domain.
// Callers treat it as a 404, never as a retryable condition.
var ErrShopNotFound = errors.New("shop not found")

// ErrNotConnected is returned when a Google-side operation is requested for a
// shop that has no refresh token on file.
var ErrNotConnected = errors.New("google merchant center not connected")

// ErrProductNotFound is returned when a product id does not resolve on the
// Shopify side.
var ErrProductNotFound = errors.New("product not found")

// GatewayError is an HTTP or network failure from an upstream API. The status
// and body are kept for logging; handlers surface only a generic message.
type GatewayError struct {
	Upstream   string // "shopify" or "google"
	StatusCode int
	Body       string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s gateway: %v", e.Upstream, e.Err)
	}
	return fmt.Sprintf("%s gateway: status %d: %s", e.Upstream, e.StatusCode, e.Body)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// OAuthReason classifies failures of the Google OAuth flow.
type OAuthReason string

const (
	OAuthProviderError     OAuthReason = "provider_error"
	OAuthInvalidState      OAuthReason = "invalid_state"
	OAuthExchangeFailed    OAuthReason = "exchange_failed"
	OAuthNoMerchantAccount OAuthReason = "no_merchant_account"
)

// OAuthError is a structured failure of the consent/callback flow. It never
// carries raw credentials.
type OAuthError struct {
	Reason  OAuthReason
	Message string
	Err     error
}

func (e *OAuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("oauth %s: %s", e.Reason, e.Message)
	}
	return fmt.Sprintf("oauth %s", e.Reason)
}

func (e *OAuthError) Unwrap() error { return e.Err }

// UserError is Shopify's business-rule validation failure, returned inside a
// successful GraphQL payload.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// ValidationError carries upstream userErrors through to the caller verbatim.
type ValidationError struct {
	Errors []UserError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e.Errors[0].Message)
}

// SchemaMismatchError is returned when an upstream response does not decode
// into the expected shape for an operation.
type SchemaMismatchError struct {
	Operation string
	Err       error
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("unexpected response shape for %s: %v", e.Operation, e.Err)
}

func (e *SchemaMismatchError) Unwrap() error { return e.Err }
