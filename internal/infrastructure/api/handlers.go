package api

import (
	"encoding/json"
	"net/http"

	"github.com/link2arslan/google-feed/internal/application"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler exposes the embedded-app REST surface over the application
// services.
type Handler struct {
	products *application.ProductService
	oauth    *application.GoogleOAuthService
	sync     *application.MerchantSyncService
	logger   zerolog.Logger
}

// NewHandler creates the REST handler set.
func NewHandler(
	products *application.ProductService,
	oauth *application.GoogleOAuthService,
	sync *application.MerchantSyncService,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		products: products,
		oauth:    oauth,
		sync:     sync,
		logger:   logger,
	}
}

// RegisterRoutes mounts the API routes on a router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/home", h.Home)
	r.Get("/products", h.Products)
	r.Get("/product", h.Product)
	r.Get("/products/bulk", h.BulkProducts)
	r.Post("/products/bulk-update", h.BulkUpdate)
	r.Post("/product/update", h.UpdateProduct)
	r.Post("/product/media/delete", h.DeleteMedia)
	r.Post("/product/media/upload", h.UploadMedia)
	r.Post("/variants/update", h.UpdateVariants)
	r.Post("/variant/media/remove", h.RemoveVariantMedia)
	r.Post("/products/sync", h.SyncProducts)
	r.Get("/google/connect", h.GoogleConnect)
	r.Get("/google/callback", h.GoogleCallback)
}

func shopParam(r *http.Request) string {
	return r.URL.Query().Get("shop")
}

// Home returns the dashboard summary.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	shop := shopParam(r)
	if shop == "" {
		writeBadRequest(w, "shop parameter is required")
		return
	}

	summary, err := h.products.Home(r.Context(), shop)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Products returns the catalog listing rows.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	shop := shopParam(r)
	if shop == "" {
		writeBadRequest(w, "shop parameter is required")
		return
	}

	products, err := h.products.ListProducts(r.Context(), shop)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

// Product returns one product with media and variants.
func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	shop := shopParam(r)
	productID := r.URL.Query().Get("productId")
	if shop == "" || productID == "" {
		writeBadRequest(w, "shop and productId parameters are required")
		return
	}

	product, err := h.products.GetProduct(r.Context(), shop, productID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// BulkProducts returns full product objects for a comma-separated id list.
func (h *Handler) BulkProducts(w http.ResponseWriter, r *http.Request) {
	shop := shopParam(r)
	ids := splitIDs(r.URL.Query().Get("ids"))
	if shop == "" || len(ids) == 0 {
		writeBadRequest(w, "shop and ids parameters are required")
		return
	}

	products, err := h.products.BulkProducts(r.Context(), shop, ids)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// BulkUpdate applies product and price edits to a set of products.
func (h *Handler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Shop     string                       `json:"shop"`
		Products []application.BulkUpdateItem `json:"products"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if body.Shop == "" || len(body.Products) == 0 {
		writeBadRequest(w, "shop and products are required")
		return
	}

	results, err := h.products.BulkUpdate(r.Context(), body.Shop, body.Products)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	success := true
	for _, result := range results {
		if len(result.Errors) > 0 {
			success = false
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": success, "results": results})
}

// UpdateProduct applies field edits to one product.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Shop        string `json:"shop"`
		ProductID   string `json:"productId"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
		Vendor      string `json:"vendor"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if body.Shop == "" || body.ProductID == "" {
		writeBadRequest(w, "shop and productId are required")
		return
	}

	err := h.products.UpdateProduct(r.Context(), body.Shop, application.UpdateProductInput{
		ProductID:   body.ProductID,
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		Vendor:      body.Vendor,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// DeleteMedia removes one media item from a product.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Shop      string `json:"shop"`
		ProductID string `json:"productId"`
		MediaID   string `json:"mediaId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if body.Shop == "" || body.ProductID == "" || body.MediaID == "" {
		writeBadRequest(w, "shop, productId and mediaId are required")
		return
	}

	if err := h.products.DeleteMedia(r.Context(), body.Shop, body.ProductID, body.MediaID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// uploadMemoryLimit caps how much of a multipart upload is buffered in
// memory before spilling to disk.
const uploadMemoryLimit = 16 << 20

// UploadMedia attaches an uploaded image to a product and optionally links
// it to a variant.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		writeBadRequest(w, "invalid multipart form")
		return
	}

	shop := r.FormValue("shop")
	productID := r.FormValue("productId")
	variantID := r.FormValue("variantId")
	if shop == "" || productID == "" {
		writeBadRequest(w, "shop and productId are required")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeBadRequest(w, "image file is required")
		return
	}
	defer file.Close()

	media, err := h.products.UploadMedia(r.Context(), shop, productID, variantID, header.Filename, file)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "media": media})
}

// UpdateVariants applies field edits to a product's variants.
func (h *Handler) UpdateVariants(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Shop      string                           `json:"shop"`
		ProductID string                           `json:"productId"`
		Variants  []application.VariantUpdateInput `json:"variants"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if body.Shop == "" || body.ProductID == "" || len(body.Variants) == 0 {
		writeBadRequest(w, "shop, productId and variants are required")
		return
	}

	outcome, err := h.products.UpdateVariants(r.Context(), body.Shop, body.ProductID, body.Variants)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	success := len(outcome.UserErrors) == 0 && len(outcome.Errors) == 0
	writeJSON(w, http.StatusOK, map[string]any{"success": success, "results": outcome})
}

// RemoveVariantMedia detaches a variant's linked media.
func (h *Handler) RemoveVariantMedia(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Shop      string `json:"shop"`
		ProductID string `json:"productId"`
		VariantID string `json:"variantId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if body.Shop == "" || body.ProductID == "" || body.VariantID == "" {
		writeBadRequest(w, "shop, productId and variantId are required")
		return
	}

	if err := h.products.RemoveVariantMedia(r.Context(), body.Shop, body.ProductID, body.VariantID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// SyncProducts pushes the given products' variants to Merchant Center.
func (h *Handler) SyncProducts(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Shop       string     `json:"shop"`
		ProductIDs StringList `json:"product_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if body.Shop == "" || len(body.ProductIDs) == 0 {
		writeBadRequest(w, "shop and product_ids are required")
		return
	}

	result, err := h.sync.SyncVariants(r.Context(), body.Shop, body.ProductIDs)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": len(result.Errors) == 0,
		"synced":  result.Synced,
		"errors":  result.Errors,
	})
}

// GoogleConnect returns the Merchant Center consent URL for a shop.
func (h *Handler) GoogleConnect(w http.ResponseWriter, r *http.Request) {
	shop := shopParam(r)
	if shop == "" {
		writeBadRequest(w, "shop parameter is required")
		return
	}

	url, err := h.oauth.Connect(r.Context(), shop)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// GoogleCallback completes the OAuth handshake and redirects back into the
// embedded app.
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result, err := h.oauth.Callback(r.Context(), application.CallbackInput{
		Code:          query.Get("code"),
		State:         query.Get("state"),
		ProviderError: query.Get("error"),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	http.Redirect(w, r, result.RedirectURL, http.StatusFound)
}
