package shopify

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Operation names, used as registry keys. Each maps to one compiled GraphQL
// document below; handlers and services never carry raw query text.
const (
	OpActiveProductsCount     = "getActiveProductsCount"
	OpProducts                = "getProducts"
	OpProductDetails          = "getProductDetails"
	OpProductsByIDs           = "getProductsByIds"
	OpUpdateProductAndPrices  = "updateProductAndPrices"
	OpUpdateProduct           = "updateProduct"
	OpDeleteProductMedia      = "deleteProductMedia"
	OpCreateProductMedia      = "createProductMedia"
	OpUpdateProductVariants   = "updateProductVariants"
)

const activeProductsCountQuery = `
query getActiveProductsCount {
  productsCount(query: "status:active") {
    count
  }
}
`

const productsQuery = `
query getProducts {
  products(first: 50) {
    edges {
      node {
        id
        title
        featuredImage {
          url
        }
      }
    }
  }
}
`

const productDetailsQuery = `
query getProductDetails($id: ID!) {
  product(id: $id) {
    id
    title
    descriptionHtml
    status
    vendor
    media(first: 50) {
      nodes {
        id
        alt
        mediaContentType
        ... on MediaImage {
          image {
            url
          }
        }
      }
    }
    variants(first: 100) {
      nodes {
        id
        title
        price
        compareAtPrice
        sku
        barcode
        inventoryPolicy
        image {
          id
          url
        }
        inventoryItem {
          measurement {
            weight {
              value
              unit
            }
          }
        }
      }
    }
  }
}
`

const productsByIDsQuery = `
query getProductsByIds($ids: [ID!]!) {
  nodes(ids: $ids) {
    ... on Product {
      id
      title
      handle
      descriptionHtml
      status
      vendor
      productType
      images(first: 20) {
        nodes {
          url
          altText
        }
      }
      variants(first: 100) {
        nodes {
          id
          title
          price
          compareAtPrice
          sku
          barcode
          inventoryPolicy
          inventoryItem {
            measurement {
              weight {
                value
                unit
              }
            }
          }
        }
      }
    }
  }
}
`

const updateProductAndPricesMutation = `
mutation updateProductAndPrices($productId: ID!, $productInput: ProductInput!, $variantInput: [ProductVariantsBulkInput!]!) {
  productUpdate(input: $productInput) {
    product {
      id
    }
    userErrors {
      field
      message
    }
  }
  productVariantsBulkUpdate(productId: $productId, variants: $variantInput) {
    productVariants {
      id
      price
    }
    userErrors {
      field
      message
    }
  }
}
`

const updateProductMutation = `
mutation updateProduct($input: ProductInput!) {
  productUpdate(input: $input) {
    product {
      id
      title
    }
    userErrors {
      field
      message
    }
  }
}
`

const deleteProductMediaMutation = `
mutation deleteProductMedia($productId: ID!, $mediaIds: [ID!]!) {
  productDeleteMedia(productId: $productId, mediaIds: $mediaIds) {
    deletedMediaIds
    userErrors {
      field
      message
    }
  }
}
`

const createProductMediaMutation = `
mutation createProductMedia($productId: ID!, $media: [CreateMediaInput!]!) {
  productCreateMedia(productId: $productId, media: $media) {
    media {
      id
      alt
      ... on MediaImage {
        image {
          url
        }
      }
    }
    mediaUserErrors {
      field
      message
    }
  }
}
`

const updateProductVariantsMutation = `
mutation updateProductVariants($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkUpdate(productId: $productId, variants: $variants) {
    productVariants {
      id
      price
    }
    userErrors {
      field
      message
    }
  }
}
`

var documents = map[string]string{
	OpActiveProductsCount:    activeProductsCountQuery,
	OpProducts:               productsQuery,
	OpProductDetails:         productDetailsQuery,
	OpProductsByIDs:          productsByIDsQuery,
	OpUpdateProductAndPrices: updateProductAndPricesMutation,
	OpUpdateProduct:          updateProductMutation,
	OpDeleteProductMedia:     deleteProductMediaMutation,
	OpCreateProductMedia:     createProductMediaMutation,
	OpUpdateProductVariants:  updateProductVariantsMutation,
}

// init parses every registered document so a malformed query is caught at
// startup rather than on first use, and so the registry key always matches
// the operation name inside the document.
func init() {
	for name, doc := range documents {
		parsed, err := parser.ParseQuery(&ast.Source{Name: name, Input: doc})
		if err != nil {
			panic(fmt.Sprintf("invalid GraphQL document %s: %v", name, err))
		}
		if len(parsed.Operations) == 0 || parsed.Operations[0].Name != name {
			panic(fmt.Sprintf("document %s does not define an operation named %s", name, name))
		}
	}
}

// Document returns the GraphQL document for an operation name. Unknown names
// panic: the registry is fixed at compile time and a miss is a programming
// error, not a runtime condition.
func Document(operation string) string {
	doc, ok := documents[operation]
	if !ok {
		panic(fmt.Sprintf("unknown GraphQL operation %q", operation))
	}
	return doc
}
