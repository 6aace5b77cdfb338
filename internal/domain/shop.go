package domain

import "time"

// Shop is the per-store tenant record. One record exists per connected shop
// domain; it is created at install time and its Google fields are written by
// the Merchant Center OAuth callback.
type Shop struct {
	Domain             string    `json:"domain"`
	ShopifyToken       string    `json:"-"`
	GoogleMerchantID   string    `json:"google_merchant_id"`
	GoogleAccessToken  string    `json:"-"`
	GoogleRefreshToken string    `json:"-"`
	GoogleTokenExpiry  time.Time `json:"google_token_expires_at"`
	GoogleConnected    bool      `json:"google_connected"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ShopUpdate is a partial update of a shop record. Nil fields are left
// untouched in the store. GoogleRefreshToken in particular must stay nil when
// the provider omitted it: Google only returns a refresh token on the first
// consent, and a later token exchange must not blank the stored one.
type ShopUpdate struct {
	ShopifyToken       *string
	GoogleMerchantID   *string
	GoogleAccessToken  *string
	GoogleRefreshToken *string
	GoogleTokenExpiry  *time.Time
	GoogleConnected    *bool
}

// GoogleToken is a token set returned by Google's OAuth token endpoint.
// RefreshToken is empty on every exchange after the first consent.
type GoogleToken struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// MerchantAccount is one entry of the Merchant Center accounts listing.
// Name is the resource name, "accounts/{id}".
type MerchantAccount struct {
	Name        string
	AccountName string
}

// MerchantProductInput is the offer-level record submitted to the Merchant
// Center feed, one per product variant.
type MerchantProductInput struct {
	OfferID         string
	ContentLanguage string
	FeedLabel       string
	Title           string
	Description     string
	Link            string
	ImageLink       string
	Brand           string
	Condition       string
	Availability    string
	PriceMicros     int64
	Currency        string
}
