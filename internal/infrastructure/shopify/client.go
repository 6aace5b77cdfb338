package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/link2arslan/google-feed/internal/domain"
	"github.com/link2arslan/google-feed/internal/infrastructure/metrics"
	"github.com/link2arslan/google-feed/internal/ports"

	"github.com/rs/zerolog"
)

// APIVersion is the pinned Admin GraphQL API version. Every call goes to this
// version; bumping it is a deliberate, repo-wide change.
const APIVersion = "2025-04"

type client struct {
	shops      ports.ShopRepository
	apiVersion string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a Shopify GraphQL gateway. The per-shop access token is
// resolved through the shop repository on every call.
func NewClient(shops ports.ShopRepository, logger zerolog.Logger) ports.ShopifyGateway {
	return &client{
		shops:      shops,
		apiVersion: APIVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Execute sends the GraphQL document with variables and returns the raw
// decoded body. The document is not inspected or validated here; GraphQL
// errors stay inside the result so callers can pair them with partial data.
func (c *client) Execute(ctx context.Context, shopDomain, document string, variables map[string]any) (*domain.GraphQLResult, error) {
	shop, err := c.shops.GetShop(ctx, shopDomain)
	if err != nil {
		return nil, err
	}

	// Tolerate stored domains with a scheme or trailing slash.
	host := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(shopDomain, "https://"), "http://"), "/")
	url := fmt.Sprintf("https://%s/admin/api/%s/graphql.json", host, c.apiVersion)

	body, err := json.Marshal(graphQLRequest{Query: document, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", shop.ShopifyToken)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ObserveUpstream(metrics.UpstreamShopify, "graphql", start, err)
	if err != nil {
		return nil, &domain.GatewayError{Upstream: "shopify", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.GatewayError{Upstream: "shopify", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().
			Str("shop", shopDomain).
			Int("status", resp.StatusCode).
			Str("body", string(respBody)).
			Msg("Shopify GraphQL call failed")
		return nil, &domain.GatewayError{
			Upstream:   "shopify",
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	var result domain.GraphQLResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &domain.GatewayError{Upstream: "shopify", Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if len(result.Errors) > 0 {
		c.logger.Warn().
			Str("shop", shopDomain).
			Int("error_count", len(result.Errors)).
			Str("first_error", result.Errors[0].Message).
			Msg("Shopify GraphQL returned errors")
	}

	return &result, nil
}
