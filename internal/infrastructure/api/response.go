package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/link2arslan/google-feed/internal/domain"

	"github.com/rs/zerolog"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the error taxonomy onto HTTP statuses. Upstream detail is
// logged in full; callers only ever see the sanitized message.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var (
		valErr     *domain.ValidationError
		oauthErr   *domain.OAuthError
		gatewayErr *domain.GatewayError
	)

	switch {
	case errors.Is(err, domain.ErrShopNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Shop not found"})

	case errors.Is(err, domain.ErrProductNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Product not found"})

	case errors.Is(err, domain.ErrNotConnected):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Google Merchant Center is not connected"})

	case errors.As(err, &valErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"errors":  valErr.Errors,
		})

	case errors.As(err, &oauthErr):
		status := http.StatusInternalServerError
		if oauthErr.Reason == domain.OAuthProviderError || oauthErr.Reason == domain.OAuthInvalidState {
			status = http.StatusUnauthorized
		}
		logger.Error().Err(err).Str("reason", string(oauthErr.Reason)).Msg("OAuth flow failed")
		writeJSON(w, status, map[string]string{"error": oauthErr.Error()})

	case errors.As(err, &gatewayErr):
		logger.Error().
			Err(err).
			Str("upstream", gatewayErr.Upstream).
			Int("status", gatewayErr.StatusCode).
			Str("body", gatewayErr.Body).
			Msg("upstream request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Upstream request failed"})

	default:
		logger.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": message})
}
