package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pawmart/storefront-backend/internal/cart"
	"github.com/pawmart/storefront-backend/internal/checkout"
	"github.com/pawmart/storefront-backend/internal/config"
	"github.com/pawmart/storefront-backend/internal/genai"
	"github.com/pawmart/storefront-backend/internal/handlers"
	"github.com/pawmart/storefront-backend/internal/middleware"
	"github.com/pawmart/storefront-backend/internal/payment"
	"github.com/pawmart/storefront-backend/internal/repository"
	"github.com/pawmart/storefront-backend/internal/service"
	"github.com/pawmart/storefront-backend/internal/viewers"
	"github.com/pawmart/storefront-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting pet storefront api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	// Optional collaborators. Cart and checkout never depend on these
	// being reachable, so failures downgrade the feature instead of
	// aborting startup.
	redisClient := connectRedis(cfg.Redis, log)
	profileRepo := connectProfiles(cfg.Mongo, log)

	// Initialize repositories
	productRepo := repository.NewInMemoryProductRepository()

	// Initialize services
	productService := service.NewProductService(productRepo)
	cartStore := cart.NewStore(log)
	gateway := payment.NewHTTPGateway(cfg.Payment, log)
	checkoutService := checkout.NewService(cartStore, gateway, log)
	genaiClient := genai.New(cfg.GenAI.Endpoint, cfg.GenAI.APIKey, cfg.GenAI.Model, log)
	viewerCounter := viewers.NewCounter(redisClient, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	productHandler := handlers.NewProductHandler(productService, viewerCounter, log)
	cartHandler := handlers.NewCartHandler(cartStore, productService, log)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, log)
	profileHandler := handlers.NewProfileHandler(profileRepo, log)
	assistantHandler := handlers.NewAssistantHandler(genaiClient, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-User-ID", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Product catalog (public)
		r.Get("/product", productHandler.ListProducts)
		r.Get("/product/{productId}", productHandler.GetProduct)
		r.Get("/product/{productId}/viewers", productHandler.GetViewers)
		r.Post("/product/{productId}/viewers/enter", productHandler.EnterViewers)
		r.Post("/product/{productId}/viewers/leave", productHandler.LeaveViewers)

		// Assistant (public, best-effort)
		r.Post("/assist", assistantHandler.Assist)

		// Authenticated storefront routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Auth))

			// Cart
			r.Get("/cart", cartHandler.GetCart)
			r.Get("/cart/summary", cartHandler.GetSummary)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items/{productId}", cartHandler.UpdateItem)
			r.Delete("/cart/items/{productId}", cartHandler.RemoveItem)
			r.Delete("/cart", cartHandler.ClearCart)
			r.Post("/cart/items/{productId}/wishlist", cartHandler.MoveToWishlist)

			// Wishlist
			r.Get("/wishlist", cartHandler.GetWishlist)
			r.Post("/wishlist/{productId}/cart", cartHandler.MoveToCart)

			// Checkout
			r.Post("/checkout", checkoutHandler.Submit)

			// Profile
			r.Get("/profile/{userId}", profileHandler.GetProfile)
			r.Put("/profile/{userId}", profileHandler.UpdateProfile)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn("failed to close redis client", "error", err)
		}
	}

	log.Info("server stopped gracefully")
}

// connectRedis dials the live-viewers backend. Returns nil (counters
// disabled) when Redis is not configured or unreachable.
func connectRedis(cfg config.RedisConfig, log *slog.Logger) *redis.Client {
	if cfg.Addr == "" {
		log.Info("redis not configured, live viewer counters disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, live viewer counters disabled", "error", err)
		return nil
	}

	log.Info("connected to redis", "addr", cfg.Addr)
	return client
}

// connectProfiles connects the user-profile document store. Returns nil
// (profile persistence disabled) when Mongo is not configured or
// unreachable.
func connectProfiles(cfg config.MongoConfig, log *slog.Logger) repository.ProfileRepository {
	if cfg.URI == "" {
		log.Info("mongo not configured, profile persistence disabled")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := repository.ConnectMongoDB(ctx, cfg.URI, cfg.Database)
	if err != nil {
		log.Warn("mongo unreachable, profile persistence disabled", "error", err)
		return nil
	}

	log.Info("connected to mongodb", "database", cfg.Database)
	return repository.NewMongoProfileRepository(db)
}
