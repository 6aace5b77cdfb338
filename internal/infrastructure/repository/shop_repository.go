package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/link2arslan/google-feed/internal/domain"
	"github.com/link2arslan/google-feed/internal/infrastructure/repository/entity"
	"github.com/link2arslan/google-feed/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoShopRepository implements ShopRepository using MongoDB. Each shop is
// one document in the shops collection, keyed by domain.
type MongoShopRepository struct {
	collection *mongo.Collection
}

// NewMongoShopRepository creates a new MongoDB repository.
func NewMongoShopRepository(db *mongo.Database) ports.ShopRepository {
	return &MongoShopRepository{
		collection: db.Collection("shops"),
	}
}

// GetShop retrieves a shop by domain.
func (r *MongoShopRepository) GetShop(ctx context.Context, shopDomain string) (*domain.Shop, error) {
	var doc entity.MongoShopDoc
	filter := bson.M{"domain": shopDomain}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrShopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}

	return doc.ToDomain(), nil
}

// SaveShop saves or replaces a shop record.
func (r *MongoShopRepository) SaveShop(ctx context.Context, shop *domain.Shop) error {
	doc := entity.MongoShopDocFromDomain(shop)
	doc.UpdatedAt = time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"domain": shop.Domain}
	update := bson.M{"$set": doc}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save shop: %w", err)
	}

	return nil
}

// UpdateShop applies a partial update. Only non-nil fields enter the $set, so
// a token exchange that omitted the refresh token leaves the stored one
// intact. The single UpdateOne keeps the write atomic per shop: either every
// provided field lands or none do.
func (r *MongoShopRepository) UpdateShop(ctx context.Context, shopDomain string, update *domain.ShopUpdate) error {
	set := bson.M{"updatedAt": time.Now()}
	if update.ShopifyToken != nil {
		set["shopifyToken"] = *update.ShopifyToken
	}
	if update.GoogleMerchantID != nil {
		set["googleMerchantId"] = *update.GoogleMerchantID
	}
	if update.GoogleAccessToken != nil {
		set["googleAccessToken"] = *update.GoogleAccessToken
	}
	if update.GoogleRefreshToken != nil {
		set["googleRefreshToken"] = *update.GoogleRefreshToken
	}
	if update.GoogleTokenExpiry != nil {
		set["googleTokenExpiresAt"] = *update.GoogleTokenExpiry
	}
	if update.GoogleConnected != nil {
		set["googleConnected"] = *update.GoogleConnected
	}

	filter := bson.M{"domain": shopDomain}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update shop: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrShopNotFound
	}

	return nil
}
