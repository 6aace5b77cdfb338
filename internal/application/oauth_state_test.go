package application

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/link2arslan/google-feed/internal/domain"
)

func TestStateRoundTrip(t *testing.T) {
	shop := "foo.myshopify.com"

	decoded, err := decodeState(encodeState(shop))
	if err != nil {
		t.Fatalf("decodeState: %v", err)
	}
	if decoded != shop {
		t.Errorf("decoded shop = %q, want %q", decoded, shop)
	}
}

func TestDecodeStateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		state string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"base64 but not json", base64.URLEncoding.EncodeToString([]byte("not json"))},
		{"json without shop", base64.URLEncoding.EncodeToString([]byte(`{"other":"x"}`))},
		{"empty shop", base64.URLEncoding.EncodeToString([]byte(`{"shop":""}`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeState(tt.state)
			if err == nil {
				t.Fatal("expected an error")
			}
			var oauthErr *domain.OAuthError
			if !errors.As(err, &oauthErr) {
				t.Fatalf("error type = %T, want *domain.OAuthError", err)
			}
			if oauthErr.Reason != domain.OAuthInvalidState {
				t.Errorf("reason = %q, want %q", oauthErr.Reason, domain.OAuthInvalidState)
			}
		})
	}
}
