package application

import (
	"encoding/base64"
	"encoding/json"

	"github.com/link2arslan/google-feed/internal/domain"
)

// oauthState is carried through the Google consent redirect so the callback
// can resume the initiating shop's context. It is encoded, not signed; the
// callback trusts it only to name a shop, never to carry credentials.
type oauthState struct {
	Shop string `json:"shop"`
}

func encodeState(shopDomain string) string {
	raw, _ := json.Marshal(oauthState{Shop: shopDomain})
	return base64.URLEncoding.EncodeToString(raw)
}

func decodeState(state string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(state)
	if err != nil {
		return "", &domain.OAuthError{Reason: domain.OAuthInvalidState, Message: "state is not valid base64", Err: err}
	}

	var decoded oauthState
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", &domain.OAuthError{Reason: domain.OAuthInvalidState, Message: "state is not valid JSON", Err: err}
	}
	if decoded.Shop == "" {
		return "", &domain.OAuthError{Reason: domain.OAuthInvalidState, Message: "shop domain missing from state"}
	}

	return decoded.Shop, nil
}
