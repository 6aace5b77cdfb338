package ports

import (
	"context"

	"github.com/link2arslan/google-feed/internal/domain"
)

// ShopRepository defines the interface for the per-shop credential record.
type ShopRepository interface {
	// GetShop returns the record for a shop domain, or domain.ErrShopNotFound.
	GetShop(ctx context.Context, shopDomain string) (*domain.Shop, error)

	// SaveShop inserts or replaces the full record for a shop domain.
	SaveShop(ctx context.Context, shop *domain.Shop) error

	// UpdateShop applies a partial update to an existing record. Nil fields
	// of the update are left untouched; the write is atomic per shop.
	UpdateShop(ctx context.Context, shopDomain string, update *domain.ShopUpdate) error
}
