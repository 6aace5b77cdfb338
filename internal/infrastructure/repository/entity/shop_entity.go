package entity

import (
	"time"

	"github.com/link2arslan/google-feed/internal/domain"
)

// MongoShopDoc represents a shop record in MongoDB.
type MongoShopDoc struct {
	Domain             string    `bson:"domain"`
	ShopifyToken       string    `bson:"shopifyToken"`
	GoogleMerchantID   string    `bson:"googleMerchantId,omitempty"`
	GoogleAccessToken  string    `bson:"googleAccessToken,omitempty"`
	GoogleRefreshToken string    `bson:"googleRefreshToken,omitempty"`
	GoogleTokenExpiry  time.Time `bson:"googleTokenExpiresAt,omitempty"`
	GoogleConnected    bool      `bson:"googleConnected"`
	CreatedAt          time.Time `bson:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity.
func (d *MongoShopDoc) ToDomain() *domain.Shop {
	return &domain.Shop{
		Domain:             d.Domain,
		ShopifyToken:       d.ShopifyToken,
		GoogleMerchantID:   d.GoogleMerchantID,
		GoogleAccessToken:  d.GoogleAccessToken,
		GoogleRefreshToken: d.GoogleRefreshToken,
		GoogleTokenExpiry:  d.GoogleTokenExpiry,
		GoogleConnected:    d.GoogleConnected,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

// MongoShopDocFromDomain converts a domain entity to a MongoDB document.
func MongoShopDocFromDomain(shop *domain.Shop) *MongoShopDoc {
	return &MongoShopDoc{
		Domain:             shop.Domain,
		ShopifyToken:       shop.ShopifyToken,
		GoogleMerchantID:   shop.GoogleMerchantID,
		GoogleAccessToken:  shop.GoogleAccessToken,
		GoogleRefreshToken: shop.GoogleRefreshToken,
		GoogleTokenExpiry:  shop.GoogleTokenExpiry,
		GoogleConnected:    shop.GoogleConnected,
		CreatedAt:          shop.CreatedAt,
		UpdatedAt:          shop.UpdatedAt,
	}
}
