package application

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/link2arslan/google-feed/internal/domain"
	"github.com/link2arslan/google-feed/internal/infrastructure/google"
	"github.com/link2arslan/google-feed/internal/infrastructure/shopify"
	"github.com/link2arslan/google-feed/internal/ports"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// syncConcurrency bounds in-flight Merchant API submissions per batch.
const syncConcurrency = 4

const maxDescriptionLength = 5000

// MerchantSyncService pushes product variants to Google Merchant Center as
// product inputs, one offer per variant.
type MerchantSyncService struct {
	shops    ports.ShopRepository
	gateway  ports.ShopifyGateway
	oauth    ports.GoogleOAuthClient
	merchant ports.MerchantClient
	logger   zerolog.Logger
}

// NewMerchantSyncService creates a new sync service.
func NewMerchantSyncService(
	shops ports.ShopRepository,
	gateway ports.ShopifyGateway,
	oauth ports.GoogleOAuthClient,
	merchant ports.MerchantClient,
	logger zerolog.Logger,
) *MerchantSyncService {
	return &MerchantSyncService{
		shops:    shops,
		gateway:  gateway,
		oauth:    oauth,
		merchant: merchant,
		logger:   logger,
	}
}

// SyncResult aggregates a batch submission. Errors is always non-nil so the
// JSON contract serializes an empty array rather than null.
type SyncResult struct {
	Synced int      `json:"synced"`
	Errors []string `json:"errors"`
}

// SyncVariants fetches the given products from Shopify and submits every
// variant to the shop's linked Merchant Center account. Variants fail
// independently; one rejection never aborts the rest of the batch.
func (s *MerchantSyncService) SyncVariants(ctx context.Context, shopDomain string, productIDs []string) (*SyncResult, error) {
	shop, err := s.shops.GetShop(ctx, shopDomain)
	if err != nil {
		return nil, err
	}
	if shop.GoogleRefreshToken == "" {
		return nil, domain.ErrNotConnected
	}

	// The stored access token is treated as expired; one refresh covers the
	// whole batch.
	token, err := s.oauth.Refresh(ctx, shop.GoogleRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh google token: %w", err)
	}

	gids := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		gids = append(gids, domain.ToGID(domain.ResourceProduct, id))
	}

	result, err := s.gateway.Execute(ctx, shopDomain, shopify.Document(shopify.OpProductsByIDs), map[string]any{
		"ids": gids,
	})
	if err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("product fetch failed: %s", result.Errors[0].Message)
	}

	var data shopify.ProductsByIDsData
	if err := result.DecodeInto(shopify.OpProductsByIDs, &data); err != nil {
		return nil, err
	}

	var (
		mu       sync.Mutex
		synced   int
		syncErrs = []string{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(syncConcurrency)

	for _, node := range data.Nodes {
		if node == nil {
			continue
		}
		for _, variant := range node.Variants.Nodes {
			g.Go(func() error {
				variantID := domain.FromGID(variant.ID)

				input, err := s.buildProductInput(shopDomain, node, variant)
				if err == nil {
					err = s.merchant.InsertProductInput(gctx, token.AccessToken, shop.GoogleMerchantID, input)
				}

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					syncErrs = append(syncErrs, fmt.Sprintf("variant %s: %s", variantID, err.Error()))
					return nil
				}
				synced++
				return nil
			})
		}
	}
	g.Wait()

	s.logger.Info().
		Str("shop", shopDomain).
		Int("synced", synced).
		Int("failed", len(syncErrs)).
		Msg("variant sync finished")

	return &SyncResult{Synced: synced, Errors: syncErrs}, nil
}

func (s *MerchantSyncService) buildProductInput(shopDomain string, product *shopify.ProductBulkNode, variant shopify.VariantNode) (*domain.MerchantProductInput, error) {
	micros, err := google.Micros(variant.Price)
	if err != nil {
		return nil, err
	}

	brand := product.Vendor
	if brand == "" {
		brand = "Generic"
	}

	imageLink := ""
	if len(product.Images.Nodes) > 0 {
		imageLink = product.Images.Nodes[0].URL
	}

	return &domain.MerchantProductInput{
		OfferID:         domain.FromGID(variant.ID),
		ContentLanguage: "en",
		FeedLabel:       "US",
		Title:           product.Title,
		Description:     truncate(stripHTML(product.DescriptionHTML), maxDescriptionLength),
		Link:            fmt.Sprintf("https://%s/products/%s", shopDomain, product.Handle),
		ImageLink:       imageLink,
		Brand:           brand,
		Condition:       "new",
		Availability:    "in stock",
		PriceMicros:     micros,
		Currency:        "USD",
	}, nil
}

// stripHTML removes markup by dropping everything between '<' and the next
// '>'. Merchant Center rejects HTML in descriptions; lossy stripping of a
// malformed fragment is acceptable there.
func stripHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
