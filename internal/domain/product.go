package domain

// ProductStatus mirrors Shopify's product status enum, lowercased for the
// JSON contract.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusArchived ProductStatus = "archived"
)

// Product is the catalog representation surfaced to the admin UI. It is never
// persisted; every request fetches it fresh from Shopify. IDs are short form
// except media IDs, which stay full GIDs because deletion requires them.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Vendor      string    `json:"vendor"`
	ProductType string    `json:"productType"`
	Handle      string    `json:"handle,omitempty"`
	Media       []Media   `json:"media"`
	Variants    []Variant `json:"variants"`
}

// Variant is one sellable option of a product.
type Variant struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Price           string  `json:"price"`
	CompareAtPrice  string  `json:"compareAtPrice"`
	SKU             string  `json:"sku"`
	Barcode         string  `json:"barcode"`
	InventoryPolicy string  `json:"inventoryPolicy"`
	ImageURL        string  `json:"imageUrl,omitempty"`
	ImageID         string  `json:"imageId,omitempty"`
	Weight          *Weight `json:"weight,omitempty"`
}

// Media is one image attached to a product. ID is the full media GID.
type Media struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Weight carries the variant's inventory item measurement.
type Weight struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// ProductSummary is the lightweight listing row.
type ProductSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
}
