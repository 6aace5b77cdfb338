package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/link2arslan/google-feed/internal/application"
	apiinfra "github.com/link2arslan/google-feed/internal/infrastructure/api"
	googleinfra "github.com/link2arslan/google-feed/internal/infrastructure/google"
	"github.com/link2arslan/google-feed/internal/infrastructure/repository"
	shopifyinfra "github.com/link2arslan/google-feed/internal/infrastructure/shopify"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type config struct {
	mongoURI      string
	mongoDatabase string
	appURL        string
	port          string
	uploadDir     string

	shopifyAPIKey    string
	shopifyAPISecret string
	shopifyAppSlug   string

	googleClientID     string
	googleClientSecret string
	googleRedirectURI  string
}

func loadConfig() config {
	getenv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	return config{
		mongoURI:      getenv("MONGODB_URI", "mongodb://localhost:27017"),
		mongoDatabase: getenv("MONGODB_DATABASE", "google_feed"),
		appURL:        getenv("APP_URL", "http://localhost:8080"),
		port:          getenv("PORT", "8080"),
		uploadDir:     getenv("UPLOAD_DIR", "./uploads"),

		shopifyAPIKey:    os.Getenv("SHOPIFY_API_KEY"),
		shopifyAPISecret: os.Getenv("SHOPIFY_API_SECRET"),
		shopifyAppSlug:   getenv("SHOPIFY_APP_SLUG", "google-feeds-app-2"),

		googleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		googleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		googleRedirectURI:  os.Getenv("GOOGLE_REDIRECT_URI"),
	}
}

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	cfg := loadConfig()
	if cfg.googleClientID == "" || cfg.googleClientSecret == "" || cfg.googleRedirectURI == "" {
		logger.Fatal().Msg("GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GOOGLE_REDIRECT_URI are required")
	}

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.mongoDatabase)

	// Initialize infrastructure
	shopRepo := repository.NewMongoShopRepository(db)
	shopifyGateway := shopifyinfra.NewClient(shopRepo, logger)
	requestVerifier := shopifyinfra.NewRequestVerifier(cfg.shopifyAPIKey, cfg.shopifyAPISecret, logger)
	oauthClient := googleinfra.NewOAuthClient(cfg.googleClientID, cfg.googleClientSecret, cfg.googleRedirectURI, logger)
	merchantClient := googleinfra.NewMerchantClient(logger)

	// Initialize application services
	productService := application.NewProductService(shopRepo, shopifyGateway, cfg.uploadDir, cfg.appURL, logger)
	oauthService := application.NewGoogleOAuthService(oauthClient, merchantClient, shopRepo, cfg.shopifyAppSlug, logger)
	syncService := application.NewMerchantSyncService(shopRepo, shopifyGateway, oauthClient, merchantClient, logger)

	handler := apiinfra.NewHandler(productService, oauthService, syncService, logger)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Health check - must be public for monitoring
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	// Uploaded media, served publicly so Shopify can fetch originals
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.uploadDir))))

	// Embedded app API
	r.Route("/api", func(r chi.Router) {
		r.Use(apiinfra.VerifyShopifyRequest(requestVerifier, logger))
		handler.RegisterRoutes(r)
	})

	logger.Info().Str("port", cfg.port).Msg("Starting API server")
	logger.Info().Msg("Swagger documentation available at http://localhost:" + cfg.port + "/swagger/index.html")
	if err := http.ListenAndServe(":"+cfg.port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
