package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/link2arslan/google-feed/internal/domain"
	"github.com/link2arslan/google-feed/internal/infrastructure/shopify"
	"github.com/link2arslan/google-feed/internal/ports"

	"github.com/rs/zerolog"
)

// ProductService serves the catalog surface of the admin UI. Product data is
// never stored; every call goes to the shop's Admin API and reshapes the
// response into the short-id JSON contract.
type ProductService struct {
	shops     ports.ShopRepository
	gateway   ports.ShopifyGateway
	uploadDir string
	appURL    string
	logger    zerolog.Logger
}

// NewProductService creates a new catalog service. uploadDir is where media
// uploads are staged; appURL is the public base URL under which they are
// served back to Shopify.
func NewProductService(
	shops ports.ShopRepository,
	gateway ports.ShopifyGateway,
	uploadDir, appURL string,
	logger zerolog.Logger,
) *ProductService {
	return &ProductService{
		shops:     shops,
		gateway:   gateway,
		uploadDir: uploadDir,
		appURL:    strings.TrimRight(appURL, "/"),
		logger:    logger,
	}
}

// HomeSummary is the dashboard snapshot: active catalog size plus Merchant
// Center connection state.
type HomeSummary struct {
	ProductCount int    `json:"productCount"`
	MerchantID   string `json:"merchantId"`
	GMCConnected bool   `json:"gmcConnected"`
}

// Home returns the dashboard summary for a shop.
func (s *ProductService) Home(ctx context.Context, shopDomain string) (*HomeSummary, error) {
	shop, err := s.shops.GetShop(ctx, shopDomain)
	if err != nil {
		return nil, err
	}

	var data shopify.ProductsCountData
	if err := s.execute(ctx, shopDomain, shopify.OpActiveProductsCount, nil, &data); err != nil {
		return nil, err
	}

	return &HomeSummary{
		ProductCount: data.ProductsCount.Count,
		MerchantID:   shop.GoogleMerchantID,
		GMCConnected: shop.GoogleConnected,
	}, nil
}

// ListProducts returns the first page of the catalog as listing rows.
func (s *ProductService) ListProducts(ctx context.Context, shopDomain string) ([]domain.ProductSummary, error) {
	var data shopify.ProductsData
	if err := s.execute(ctx, shopDomain, shopify.OpProducts, nil, &data); err != nil {
		return nil, err
	}

	products := make([]domain.ProductSummary, 0, len(data.Products.Edges))
	for _, edge := range data.Products.Edges {
		summary := domain.ProductSummary{
			ID:    domain.FromGID(edge.Node.ID),
			Title: edge.Node.Title,
		}
		if edge.Node.FeaturedImage != nil {
			summary.ImageURL = edge.Node.FeaturedImage.URL
		}
		products = append(products, summary)
	}
	return products, nil
}

// GetProduct returns one product with its media and variants, or
// domain.ErrProductNotFound when the id does not resolve.
func (s *ProductService) GetProduct(ctx context.Context, shopDomain, productID string) (*domain.Product, error) {
	var data shopify.ProductDetailsData
	err := s.execute(ctx, shopDomain, shopify.OpProductDetails, map[string]any{
		"id": domain.ToGID(domain.ResourceProduct, productID),
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, domain.ErrProductNotFound
	}

	p := data.Product
	product := &domain.Product{
		ID:          domain.FromGID(p.ID),
		Title:       p.Title,
		Description: p.DescriptionHTML,
		Status:      strings.ToLower(p.Status),
		Vendor:      p.Vendor,
		Media:       make([]domain.Media, 0, len(p.Media.Nodes)),
		Variants:    make([]domain.Variant, 0, len(p.Variants.Nodes)),
	}

	// Only image media carries a URL the edit page can render.
	for _, m := range p.Media.Nodes {
		if m.MediaContentType != "IMAGE" || m.Image == nil {
			continue
		}
		product.Media = append(product.Media, domain.Media{
			ID:  m.ID,
			URL: m.Image.URL,
			Alt: m.Alt,
		})
	}

	for _, v := range p.Variants.Nodes {
		product.Variants = append(product.Variants, variantToDomain(v))
	}

	return product, nil
}

// BulkProducts returns full product objects for a set of short ids.
// Unresolvable ids are dropped from the result rather than failing the call.
func (s *ProductService) BulkProducts(ctx context.Context, shopDomain string, productIDs []string) ([]domain.Product, error) {
	gids := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		gids = append(gids, domain.ToGID(domain.ResourceProduct, id))
	}

	var data shopify.ProductsByIDsData
	if err := s.execute(ctx, shopDomain, shopify.OpProductsByIDs, map[string]any{"ids": gids}, &data); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(data.Nodes))
	for _, node := range data.Nodes {
		if node == nil {
			continue
		}
		product := domain.Product{
			ID:          domain.FromGID(node.ID),
			Title:       node.Title,
			Description: node.DescriptionHTML,
			Status:      strings.ToLower(node.Status),
			Vendor:      node.Vendor,
			ProductType: node.ProductType,
			Handle:      node.Handle,
			Media:       make([]domain.Media, 0, len(node.Images.Nodes)),
			Variants:    make([]domain.Variant, 0, len(node.Variants.Nodes)),
		}
		for _, img := range node.Images.Nodes {
			product.Media = append(product.Media, domain.Media{URL: img.URL, Alt: img.AltText})
		}
		for _, v := range node.Variants.Nodes {
			product.Variants = append(product.Variants, variantToDomain(v))
		}
		products = append(products, product)
	}
	return products, nil
}

// BulkUpdateItem is one product's worth of edits in a bulk save.
type BulkUpdateItem struct {
	ID          string              `json:"id"`
	Status      string              `json:"status"`
	Vendor      string              `json:"vendor"`
	ProductType string              `json:"productType"`
	Variants    []BulkVariantUpdate `json:"variants"`
}

// BulkVariantUpdate is a per-variant price edit inside a bulk save.
type BulkVariantUpdate struct {
	ID    string         `json:"id"`
	Price FlexibleString `json:"price"`
}

// BulkUpdateResult reports one product's outcome. Response carries the raw
// mutation payload so the UI can show per-field userErrors.
type BulkUpdateResult struct {
	ProductID string                `json:"product_id"`
	Response  json.RawMessage       `json:"response"`
	Errors    []domain.GraphQLError `json:"errors"`
}

// BulkUpdate applies product-level and price edits to each item in turn. One
// item's failure never aborts the rest; every item gets a result row.
func (s *ProductService) BulkUpdate(ctx context.Context, shopDomain string, items []BulkUpdateItem) ([]BulkUpdateResult, error) {
	results := make([]BulkUpdateResult, 0, len(items))

	for _, item := range items {
		productGID := domain.ToGID(domain.ResourceProduct, item.ID)

		productInput := map[string]any{"id": productGID}
		if item.Status != "" {
			productInput["status"] = strings.ToUpper(item.Status)
		}
		if item.Vendor != "" {
			productInput["vendor"] = item.Vendor
		}
		if item.ProductType != "" {
			productInput["productType"] = item.ProductType
		}

		variantInput := make([]map[string]any, 0, len(item.Variants))
		for _, v := range item.Variants {
			variantInput = append(variantInput, map[string]any{
				"id":    domain.ToGID(domain.ResourceProductVariant, v.ID),
				"price": string(v.Price),
			})
		}

		result, err := s.gateway.Execute(ctx, shopDomain, shopify.Document(shopify.OpUpdateProductAndPrices), map[string]any{
			"productId":    productGID,
			"productInput": productInput,
			"variantInput": variantInput,
		})
		if err != nil {
			s.logger.Error().Err(err).Str("shop", shopDomain).Str("productId", item.ID).Msg("bulk update item failed")
			results = append(results, BulkUpdateResult{
				ProductID: item.ID,
				Errors:    []domain.GraphQLError{{Message: err.Error()}},
			})
			continue
		}

		errs := result.Errors
		if errs == nil {
			errs = []domain.GraphQLError{}
		}
		results = append(results, BulkUpdateResult{
			ProductID: item.ID,
			Response:  result.Data,
			Errors:    errs,
		})
	}

	return results, nil
}

// UpdateProductInput carries a single product's field edits.
type UpdateProductInput struct {
	ProductID   string
	Title       string
	Description string
	Status      string
	Vendor      string
}

// UpdateProduct applies field edits to one product. Upstream userErrors come
// back as a *domain.ValidationError.
func (s *ProductService) UpdateProduct(ctx context.Context, shopDomain string, input UpdateProductInput) error {
	productInput := map[string]any{
		"id": domain.ToGID(domain.ResourceProduct, input.ProductID),
	}
	if input.Title != "" {
		productInput["title"] = input.Title
	}
	if input.Description != "" {
		productInput["descriptionHtml"] = input.Description
	}
	if input.Status != "" {
		productInput["status"] = strings.ToUpper(input.Status)
	}
	if input.Vendor != "" {
		productInput["vendor"] = input.Vendor
	}

	var data shopify.ProductUpdateData
	err := s.execute(ctx, shopDomain, shopify.OpUpdateProduct, map[string]any{"input": productInput}, &data)
	if err != nil {
		return err
	}
	if len(data.ProductUpdate.UserErrors) > 0 {
		return &domain.ValidationError{Errors: data.ProductUpdate.UserErrors}
	}
	return nil
}

// DeleteMedia removes one media item from a product. A short media id is
// treated as a product image id.
func (s *ProductService) DeleteMedia(ctx context.Context, shopDomain, productID, mediaID string) error {
	var data shopify.DeleteProductMediaData
	err := s.execute(ctx, shopDomain, shopify.OpDeleteProductMedia, map[string]any{
		"productId": domain.ToGID(domain.ResourceProduct, productID),
		"mediaIds":  []string{domain.ToGID(domain.ResourceProductImage, mediaID)},
	}, &data)
	if err != nil {
		return err
	}
	if len(data.ProductDeleteMedia.UserErrors) > 0 {
		return &domain.ValidationError{Errors: data.ProductDeleteMedia.UserErrors}
	}
	return nil
}

// UploadMedia stages an uploaded file under the public uploads dir, attaches
// it to the product from its public URL, and optionally links it to a
// variant. The variant link is best effort: the media already exists by then.
func (s *ProductService) UploadMedia(ctx context.Context, shopDomain, productID, variantID, filename string, file io.Reader) (*domain.Media, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	stored := fmt.Sprintf("%d_%s", time.Now().Unix(), strings.ReplaceAll(filepath.Base(filename), " ", "_"))
	path := filepath.Join(s.uploadDir, stored)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		return nil, fmt.Errorf("failed to write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("failed to write upload file: %w", err)
	}

	publicURL := s.appURL + "/uploads/" + stored

	var data shopify.CreateProductMediaData
	err = s.execute(ctx, shopDomain, shopify.OpCreateProductMedia, map[string]any{
		"productId": domain.ToGID(domain.ResourceProduct, productID),
		"media": []map[string]any{{
			"originalSource":   publicURL,
			"alt":              filename,
			"mediaContentType": "IMAGE",
		}},
	}, &data)
	if err != nil {
		return nil, err
	}
	if len(data.ProductCreateMedia.MediaUserErrors) > 0 {
		return nil, &domain.ValidationError{Errors: data.ProductCreateMedia.MediaUserErrors}
	}
	if len(data.ProductCreateMedia.Media) == 0 {
		return nil, fmt.Errorf("media creation returned no media")
	}

	created := data.ProductCreateMedia.Media[0]
	media := &domain.Media{ID: created.ID, URL: publicURL, Alt: created.Alt}
	if created.Image != nil && created.Image.URL != "" {
		media.URL = created.Image.URL
	}

	if variantID != "" {
		if err := s.linkVariantMedia(ctx, shopDomain, productID, variantID, created.ID); err != nil {
			s.logger.Warn().Err(err).
				Str("shop", shopDomain).
				Str("variantId", variantID).
				Msg("uploaded media could not be linked to variant")
		}
	}

	return media, nil
}

func (s *ProductService) linkVariantMedia(ctx context.Context, shopDomain, productID, variantID, mediaID string) error {
	var data shopify.VariantsBulkUpdateData
	err := s.execute(ctx, shopDomain, shopify.OpUpdateProductVariants, map[string]any{
		"productId": domain.ToGID(domain.ResourceProduct, productID),
		"variants": []map[string]any{{
			"id":      domain.ToGID(domain.ResourceProductVariant, variantID),
			"mediaId": mediaID,
		}},
	}, &data)
	if err != nil {
		return err
	}
	if errs := data.ProductVariantsBulkUpdate.UserErrors; len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// VariantUpdateInput carries one variant's field edits. Numeric fields accept
// JSON strings or numbers.
type VariantUpdateInput struct {
	ID              string         `json:"id"`
	Price           FlexibleString `json:"price"`
	CompareAtPrice  FlexibleString `json:"compareAtPrice"`
	SKU             string         `json:"sku"`
	Barcode         string         `json:"barcode"`
	InventoryPolicy string         `json:"inventoryPolicy"`
}

// VariantsUpdateOutcome reports a variant bulk update: the updated variants
// plus both error channels of the mutation.
type VariantsUpdateOutcome struct {
	Variants   []domain.Variant      `json:"variants"`
	UserErrors []domain.UserError    `json:"userErrors"`
	Errors     []domain.GraphQLError `json:"errors"`
}

// UpdateVariants applies field edits to a product's variants in one
// mutation. Empty optional fields are omitted from the input; sku travels
// inside the inventory item.
func (s *ProductService) UpdateVariants(ctx context.Context, shopDomain, productID string, variants []VariantUpdateInput) (*VariantsUpdateOutcome, error) {
	inputs := make([]map[string]any, 0, len(variants))
	for _, v := range variants {
		input := map[string]any{
			"id": domain.ToGID(domain.ResourceProductVariant, v.ID),
		}
		if v.Price != "" {
			input["price"] = string(v.Price)
		}
		if v.CompareAtPrice != "" {
			input["compareAtPrice"] = string(v.CompareAtPrice)
		}
		if v.Barcode != "" {
			input["barcode"] = v.Barcode
		}
		if v.InventoryPolicy != "" {
			input["inventoryPolicy"] = strings.ToUpper(v.InventoryPolicy)
		}
		if v.SKU != "" {
			input["inventoryItem"] = map[string]any{"sku": v.SKU}
		}
		inputs = append(inputs, input)
	}

	result, err := s.gateway.Execute(ctx, shopDomain, shopify.Document(shopify.OpUpdateProductVariants), map[string]any{
		"productId": domain.ToGID(domain.ResourceProduct, productID),
		"variants":  inputs,
	})
	if err != nil {
		return nil, err
	}

	outcome := &VariantsUpdateOutcome{
		Variants:   []domain.Variant{},
		UserErrors: []domain.UserError{},
		Errors:     result.Errors,
	}
	if outcome.Errors == nil {
		outcome.Errors = []domain.GraphQLError{}
	}
	if len(result.Errors) > 0 {
		return outcome, nil
	}

	var data shopify.VariantsBulkUpdateData
	if err := result.DecodeInto(shopify.OpUpdateProductVariants, &data); err != nil {
		return nil, err
	}
	for _, v := range data.ProductVariantsBulkUpdate.ProductVariants {
		outcome.Variants = append(outcome.Variants, domain.Variant{
			ID:    domain.FromGID(v.ID),
			Price: v.Price,
		})
	}
	if data.ProductVariantsBulkUpdate.UserErrors != nil {
		outcome.UserErrors = data.ProductVariantsBulkUpdate.UserErrors
	}
	return outcome, nil
}

// RemoveVariantMedia detaches a variant's linked media by writing a null
// media id.
func (s *ProductService) RemoveVariantMedia(ctx context.Context, shopDomain, productID, variantID string) error {
	var data shopify.VariantsBulkUpdateData
	err := s.execute(ctx, shopDomain, shopify.OpUpdateProductVariants, map[string]any{
		"productId": domain.ToGID(domain.ResourceProduct, productID),
		"variants": []map[string]any{{
			"id":      domain.ToGID(domain.ResourceProductVariant, variantID),
			"mediaId": nil,
		}},
	}, &data)
	if err != nil {
		return err
	}
	if errs := data.ProductVariantsBulkUpdate.UserErrors; len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// execute runs a registered operation and decodes its payload. Top-level
// GraphQL errors fail the call outright; userErrors inside the payload are
// the caller's to judge.
func (s *ProductService) execute(ctx context.Context, shopDomain, operation string, variables map[string]any, out any) error {
	result, err := s.gateway.Execute(ctx, shopDomain, shopify.Document(operation), variables)
	if err != nil {
		return err
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("%s failed: %s", operation, result.Errors[0].Message)
	}
	return result.DecodeInto(operation, out)
}

func variantToDomain(v shopify.VariantNode) domain.Variant {
	variant := domain.Variant{
		ID:              domain.FromGID(v.ID),
		Title:           v.Title,
		Price:           v.Price,
		CompareAtPrice:  v.CompareAtPrice,
		SKU:             v.SKU,
		Barcode:         v.Barcode,
		InventoryPolicy: v.InventoryPolicy,
	}
	if v.Image != nil {
		variant.ImageURL = v.Image.URL
		variant.ImageID = v.Image.ID
	}
	if v.InventoryItem != nil && v.InventoryItem.Measurement.Weight != nil {
		variant.Weight = &domain.Weight{
			Value: v.InventoryItem.Measurement.Weight.Value,
			Unit:  v.InventoryItem.Measurement.Weight.Unit,
		}
	}
	return variant
}
