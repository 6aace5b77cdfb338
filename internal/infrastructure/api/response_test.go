package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/link2arslan/google-feed/internal/domain"

	"github.com/rs/zerolog"
)

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "unknown shop",
			err:        domain.ErrShopNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "Shop not found",
		},
		{
			name:       "wrapped unknown shop",
			err:        fmt.Errorf("loading credentials: %w", domain.ErrShopNotFound),
			wantStatus: http.StatusNotFound,
			wantError:  "Shop not found",
		},
		{
			name:       "unknown product",
			err:        domain.ErrProductNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "Product not found",
		},
		{
			name:       "not connected",
			err:        domain.ErrNotConnected,
			wantStatus: http.StatusBadRequest,
			wantError:  "Google Merchant Center is not connected",
		},
		{
			name:       "gateway failure hides detail",
			err:        &domain.GatewayError{Upstream: "shopify", StatusCode: 502, Body: "secret upstream detail"},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Upstream request failed",
		},
		{
			name:       "provider oauth error",
			err:        &domain.OAuthError{Reason: domain.OAuthProviderError, Message: "access_denied"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid state",
			err:        &domain.OAuthError{Reason: domain.OAuthInvalidState},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "exchange failure",
			err:        &domain.OAuthError{Reason: domain.OAuthExchangeFailed},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "unclassified",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, zerolog.Nop(), tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if tt.wantError != "" && body["error"] != tt.wantError {
				t.Errorf("error = %v, want %q", body["error"], tt.wantError)
			}
			if tt.name == "gateway failure hides detail" && rec.Body.String() == "" {
				t.Error("expected a body")
			}
		})
	}
}

func TestWriteErrorValidationPassthrough(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, zerolog.Nop(), &domain.ValidationError{Errors: []domain.UserError{
		{Field: []string{"price"}, Message: "Price must be positive"},
	}})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var body struct {
		Success bool               `json:"success"`
		Errors  []domain.UserError `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success {
		t.Error("success should be false")
	}
	if len(body.Errors) != 1 || body.Errors[0].Message != "Price must be positive" {
		t.Errorf("errors = %+v, want the upstream list verbatim", body.Errors)
	}
}
