package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rvasant/kinara/internal"
	"github.com/rvasant/kinara/internal/cart"
	"github.com/rvasant/kinara/internal/gateway"
	"github.com/rvasant/kinara/internal/handler/storefront"
	"github.com/rvasant/kinara/internal/handler/webhook"
	"github.com/rvasant/kinara/internal/middleware"
	"github.com/rvasant/kinara/internal/notify"
	"github.com/rvasant/kinara/internal/repository"
	"github.com/rvasant/kinara/internal/router"
	"github.com/rvasant/kinara/internal/routes"
	"github.com/rvasant/kinara/internal/service"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize repository
	repo := repository.New(pool)

	// Cart snapshot slot
	var snapshots cart.SnapshotStore
	switch cfg.Cart.Provider {
	case "postgres":
		snapshots = cart.NewPostgresStore(pool, cfg.Cart.SlotKey)
	default:
		snapshots, err = cart.NewFileStore(cfg.Cart.SnapshotPath)
		if err != nil {
			return fmt.Errorf("failed to initialize cart snapshot store: %w", err)
		}
	}
	engine := cart.NewEngine(ctx, snapshots, logger)
	logger.Info("Cart engine initialized", "store", cfg.Cart.Provider)

	// Initialize Razorpay payment provider
	gatewayCfg := gateway.RazorpayConfig{
		KeyID:     cfg.Razorpay.KeyID,
		KeySecret: cfg.Razorpay.KeySecret,
	}
	provider, err := gateway.NewRazorpayProvider(gatewayCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize razorpay provider: %w", err)
	}
	logger.Info("Razorpay provider initialized", "test_mode", gatewayCfg.IsTestMode())

	// Best-effort notification sinks
	var sinks notify.Multi
	if cfg.Notify.AmqpURL != "" {
		publisher, err := notify.NewAMQPPublisher(cfg.Notify.AmqpURL, cfg.Notify.Queue)
		if err != nil {
			return fmt.Errorf("failed to initialize amqp publisher: %w", err)
		}
		defer publisher.Close()
		sinks = append(sinks, publisher)
		logger.Info("AMQP notification sink initialized", "queue", cfg.Notify.Queue)
	}
	if cfg.Notify.SMTP.Host != "" && cfg.AdminEmail != "" {
		sinks = append(sinks, notify.NewEmailNotifier(notify.SMTPConfig{
			Host:     cfg.Notify.SMTP.Host,
			Port:     int(cfg.Notify.SMTP.Port),
			Username: cfg.Notify.SMTP.Username,
			Password: cfg.Notify.SMTP.Password,
			From:     cfg.Notify.SMTP.From,
			AdminTo:  cfg.AdminEmail,
		}, logger))
		logger.Info("Email notification sink initialized", "to", cfg.AdminEmail)
	}
	var notifier notify.Notifier
	if len(sinks) > 0 {
		notifier = sinks
	}

	// Initialize services
	checkoutService := service.NewCheckoutService(
		repo,
		provider,
		notifier,
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		logger,
	)
	orderService := service.NewOrderService(repo, logger)

	// Build route dependencies
	storefrontDeps := routes.StorefrontDeps{
		CartHandler:     storefront.NewCartHandler(engine),
		CheckoutHandler: storefront.NewCheckoutHandler(checkoutService, engine),
		OrderHandler:    storefront.NewOrderHandler(orderService),
	}
	webhookDeps := routes.WebhookDeps{
		RazorpayHandler: webhook.NewRazorpayHandler(cfg.Razorpay.KeySecret, logger),
	}

	// Initialize Prometheus metrics
	metrics := middleware.NewMetrics("kinara")

	// Create router and register routes
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		middleware.MaxBodySize(),
		middleware.WithRequestLogger(logger),
		router.Logger(logger),
	)

	// Metrics endpoint (protect via firewall in production)
	r.Handle("GET", "/metrics", metrics.Handler())

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Storefront API is called from the browser; webhooks are server-to-server
	// and stay off the CORS surface.
	api := r.Group(router.CORS(cfg.AllowedOrigins))
	routes.RegisterStorefrontRoutes(api, storefrontDeps)
	routes.RegisterWebhookRoutes(r, webhookDeps)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
