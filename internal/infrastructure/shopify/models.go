package shopify

import "github.com/link2arslan/google-feed/internal/domain"

// Typed payloads for the documents in queries.go. Responses are decoded into
// these at the gateway boundary instead of being traversed dynamically; a
// shape mismatch fails fast as a SchemaMismatchError.

// ProductsCountData is the payload of getActiveProductsCount.
type ProductsCountData struct {
	ProductsCount struct {
		Count int `json:"count"`
	} `json:"productsCount"`
}

// ImageNode is a product or variant image.
type ImageNode struct {
	ID      string `json:"id,omitempty"`
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

// ProductsData is the payload of getProducts.
type ProductsData struct {
	Products struct {
		Edges []struct {
			Node struct {
				ID            string     `json:"id"`
				Title         string     `json:"title"`
				FeaturedImage *ImageNode `json:"featuredImage"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"products"`
}

// MediaNode is one entry of a product's media connection. Image is only set
// for IMAGE media.
type MediaNode struct {
	ID               string     `json:"id"`
	Alt              string     `json:"alt"`
	MediaContentType string     `json:"mediaContentType"`
	Image            *ImageNode `json:"image"`
}

// WeightNode is the inventory item weight measurement.
type WeightNode struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// InventoryItemNode carries the measurement block of a variant.
type InventoryItemNode struct {
	Measurement struct {
		Weight *WeightNode `json:"weight"`
	} `json:"measurement"`
}

// VariantNode is one entry of a product's variants connection.
type VariantNode struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Price           string             `json:"price"`
	CompareAtPrice  string             `json:"compareAtPrice"`
	SKU             string             `json:"sku"`
	Barcode         string             `json:"barcode"`
	InventoryPolicy string             `json:"inventoryPolicy"`
	Image           *ImageNode         `json:"image"`
	InventoryItem   *InventoryItemNode `json:"inventoryItem"`
}

// ProductDetailsData is the payload of getProductDetails.
type ProductDetailsData struct {
	Product *struct {
		ID              string `json:"id"`
		Title           string `json:"title"`
		DescriptionHTML string `json:"descriptionHtml"`
		Status          string `json:"status"`
		Vendor          string `json:"vendor"`
		Media           struct {
			Nodes []MediaNode `json:"nodes"`
		} `json:"media"`
		Variants struct {
			Nodes []VariantNode `json:"nodes"`
		} `json:"variants"`
	} `json:"product"`
}

// ProductBulkNode is one node of getProductsByIds. A null node means the id
// did not resolve to a product.
type ProductBulkNode struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Handle          string `json:"handle"`
	DescriptionHTML string `json:"descriptionHtml"`
	Status          string `json:"status"`
	Vendor          string `json:"vendor"`
	ProductType     string `json:"productType"`
	Images          struct {
		Nodes []ImageNode `json:"nodes"`
	} `json:"images"`
	Variants struct {
		Nodes []VariantNode `json:"nodes"`
	} `json:"variants"`
}

// ProductsByIDsData is the payload of getProductsByIds.
type ProductsByIDsData struct {
	Nodes []*ProductBulkNode `json:"nodes"`
}

// ProductUpdateData is the payload of updateProduct.
type ProductUpdateData struct {
	ProductUpdate struct {
		Product *struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"product"`
		UserErrors []domain.UserError `json:"userErrors"`
	} `json:"productUpdate"`
}

// DeleteProductMediaData is the payload of deleteProductMedia.
type DeleteProductMediaData struct {
	ProductDeleteMedia struct {
		DeletedMediaIDs []string           `json:"deletedMediaIds"`
		UserErrors      []domain.UserError `json:"userErrors"`
	} `json:"productDeleteMedia"`
}

// CreateProductMediaData is the payload of createProductMedia.
type CreateProductMediaData struct {
	ProductCreateMedia struct {
		Media []struct {
			ID    string     `json:"id"`
			Alt   string     `json:"alt"`
			Image *ImageNode `json:"image"`
		} `json:"media"`
		MediaUserErrors []domain.UserError `json:"mediaUserErrors"`
	} `json:"productCreateMedia"`
}

// VariantsBulkUpdateData is the payload of updateProductVariants, and the
// second half of updateProductAndPrices.
type VariantsBulkUpdateData struct {
	ProductVariantsBulkUpdate struct {
		ProductVariants []struct {
			ID    string `json:"id"`
			Price string `json:"price"`
		} `json:"productVariants"`
		UserErrors []domain.UserError `json:"userErrors"`
	} `json:"productVariantsBulkUpdate"`
}
