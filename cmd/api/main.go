package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/cache"
	h "github.com/MuzzammilWits/HoodGoods-sub000/internal/http"
	"github.com/MuzzammilWits/HoodGoods-sub000/internal/publisher"
	"github.com/MuzzammilWits/HoodGoods-sub000/internal/repository"
	"github.com/MuzzammilWits/HoodGoods-sub000/internal/service"
)

type Config struct {
	HTTPPort           string
	RedisAddr          string
	KafkaBrokers       string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:       getEnv("KAFKA_BROKERS", "localhost:9092"),
		RequestTimeout:     30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 1 << 20, // 1MB
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log.Println("marketplace api starting...")
	var wg sync.WaitGroup

	cfg := loadConfig()

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "marketplace")
	migrationsPath := getEnv("MIGRATIONS_PATH", "./migrations")

	port, err := strconv.Atoi(dbPort)
	if err != nil {
		log.Fatalf("Invalid DB_PORT: %v", err)
	}

	creds := &repository.Credentials{
		Host:              dbHost,
		Port:              port,
		User:              dbUser,
		Password:          dbPass,
		DBName:            dbName,
		MigrationsDirPath: migrationsPath,
	}

	repo, err := repository.NewRepository(creds)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(creds); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	cartCache := cache.NewRedisCache(redisClient)

	cartSvc := service.NewCartService(repo, cartCache)
	orderSvc := service.NewOrderService(repo, cartSvc)
	sellerSvc := service.NewSellerService(repo)
	productSvc := service.NewProductService(repo)

	// Outbox poller publishes order-placed events after their transaction
	// committed.
	poller := publisher.NewOutboxPoller(repo, cfg.KafkaBrokers)
	pollerCtx, pollerCancel := context.WithCancel(context.Background())
	wg.Add(1)
	go func() {
		defer wg.Done()
		poller.Run(pollerCtx)
	}()

	checkoutHandler := h.NewCheckoutHandler(cartSvc, orderSvc)
	ordersHandler := h.NewOrdersHandler(orderSvc)
	cartHandler := h.NewCartHandler(cartSvc)
	productHandler := h.NewProductHandler(productSvc)
	sellerHandler := h.NewSellerHandler(sellerSvc)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.MockAuthMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/checkout", checkoutHandler.Checkout)

		r.Get("/orders", ordersHandler.ListOrders)
		r.Get("/orders/{order_id}", ordersHandler.GetOrder)

		r.Get("/cart", cartHandler.GetCart)
		r.Delete("/cart", cartHandler.ClearCart)
		r.Post("/cart/items", cartHandler.AddItem)
		r.Put("/cart/items/{product_id}", cartHandler.UpdateQuantity)
		r.Delete("/cart/items/{product_id}", cartHandler.RemoveItem)

		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{product_id}", productHandler.GetProduct)

		r.Get("/seller/orders", sellerHandler.ListOrders)
		r.Patch("/seller/orders/{seller_order_id}/status", sellerHandler.UpdateStatus)
	})

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: http.MaxBytesHandler(r, cfg.MaxRequestBodySize),
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down marketplace api...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}

	pollerCancel()
	poller.Close()

	doneChan := make(chan struct{})
	go func() {
		wg.Wait()
		close(doneChan)
	}()

	select {
	case <-doneChan:
		log.Println("Outbox poller stopped cleanly")
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout reached, exiting")
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Redis close error: %v", err)
	}
}
