package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/link2arslan/google-feed/internal/domain"
	"github.com/link2arslan/google-feed/internal/infrastructure/repository"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// add-shop registers a store's Admin API token so the service can act on its
// behalf. Run once per shop after the app install grants a token.
func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	godotenv.Load()

	shopDomain := flag.String("shop", "", "shop domain, e.g. my-store.myshopify.com")
	token := flag.String("token", "", "Shopify Admin API access token")
	flag.Parse()

	if *shopDomain == "" || *token == "" {
		logger.Fatal().Msg("both -shop and -token are required")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	database := os.Getenv("MONGODB_DATABASE")
	if database == "" {
		database = "google_feed"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	shops := repository.NewMongoShopRepository(client.Database(database))
	err = shops.SaveShop(ctx, &domain.Shop{
		Domain:       *shopDomain,
		ShopifyToken: *token,
	})
	if err != nil {
		logger.Fatal().Err(err).Str("shop", *shopDomain).Msg("Failed to save shop")
	}

	logger.Info().Str("shop", *shopDomain).Msg("shop registered")
}
