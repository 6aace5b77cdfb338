package domain

import "strings"

// Shopify resource types used when building global IDs.
const (
	ResourceProduct        = "Product"
	ResourceProductVariant = "ProductVariant"
	ResourceProductImage   = "ProductImage"
)

const gidPrefix = "gid://"

// ToGID converts a short numeric identifier to Shopify's fully qualified
// "gid://shopify/{type}/{id}" form. IDs that already carry the gid:// prefix
// are returned unchanged, so the conversion is idempotent.
func ToGID(resourceType, id string) string {
	if strings.HasPrefix(id, gidPrefix) {
		return id
	}
	return gidPrefix + "shopify/" + resourceType + "/" + id
}

// FromGID returns the short identifier: the substring after the final slash.
// Inputs without a slash are returned unchanged.
func FromGID(gid string) string {
	if i := strings.LastIndex(gid, "/"); i >= 0 {
		return gid[i+1:]
	}
	return gid
}
