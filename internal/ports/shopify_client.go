package ports

import (
	"context"

	"github.com/link2arslan/google-feed/internal/domain"
)

// ShopifyGateway executes a GraphQL document against a shop's Admin API. The
// document is an opaque pass-through; the gateway resolves the shop's access
// token, pins the API version, and returns the decoded body. GraphQL-level
// errors come back inside the result, never as a Go error; transport failures
// surface as *domain.GatewayError and an unknown shop as
// domain.ErrShopNotFound.
type ShopifyGateway interface {
	Execute(ctx context.Context, shopDomain, document string, variables map[string]any) (*domain.GraphQLResult, error)
}
