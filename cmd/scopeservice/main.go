package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"scope-service/internal/auth"
	"scope-service/internal/config"
	httpserver "scope-service/internal/http"
	"scope-service/internal/infra/cache"
	"scope-service/internal/repository/postgres"
	"scope-service/internal/service"
)

func main() {
	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	log.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	store := cache.NewMemoryStore()

	purgeTicker := time.NewTicker(cfg.Cache.TTL)
	defer purgeTicker.Stop()
	go func() {
		for range purgeTicker.C {
			store.Purge()
		}
	}()

	projectRepo := postgres.NewProjectRepository(db)
	clientRepo := postgres.NewClientRepository(db)
	scopeItemRepo := postgres.NewScopeItemRepository(db)
	requestRepo := postgres.NewRequestRepository(db)
	changeOrderRepo := postgres.NewChangeOrderRepository(db)
	shareLinkRepo := postgres.NewShareLinkRepository(db)
	dashboardRepo := postgres.NewDashboardRepository(db)
	walletRepo := postgres.NewWalletRepository(db)
	paymentLinkRepo := postgres.NewPaymentLinkRepository(db)
	userRepo := postgres.NewUserRepository(db)

	projectService := service.NewProjectService(db, projectRepo, clientRepo, scopeItemRepo, requestRepo, changeOrderRepo, store, cfg.Cache.TTL, logger)
	scopeItemService := service.NewScopeItemService(projectRepo, clientRepo, scopeItemRepo, store, logger)
	requestService := service.NewRequestService(projectRepo, requestRepo, store, logger)
	changeOrderService := service.NewChangeOrderService(db, projectRepo, clientRepo, requestRepo, changeOrderRepo, store, logger)
	shareLinkService := service.NewShareLinkService(projectRepo, clientRepo, scopeItemRepo, requestRepo, changeOrderRepo, shareLinkRepo, store, cfg.Cache.TTL, logger)
	dashboardService := service.NewDashboardService(dashboardRepo, store, cfg.Cache.TTL, logger)
	walletService := service.NewWalletService(db, walletRepo)
	paymentLinkService := service.NewPaymentLinkService(walletRepo, paymentLinkRepo)
	userService := service.NewUserService(userRepo)

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTExpiry)

	server := httpserver.NewServer(&httpserver.ServerDependencies{
		Config:          cfg,
		AuthMiddleware:  auth.NewMiddleware(jwtService),
		WebhookVerifier: auth.NewWebhookVerifier(cfg.Auth.WebhookSecret),
		Projects:        projectService,
		ScopeItems:      scopeItemService,
		Requests:        requestService,
		ChangeOrders:    changeOrderService,
		ShareLinks:      shareLinkService,
		Dashboard:       dashboardService,
		Wallets:         walletService,
		PaymentLinks:    paymentLinkService,
		Users:           userService,
	})

	go func() {
		log.Printf("Starting scope service on port %s", cfg.Server.Port)
		if err := server.Start(":" + cfg.Server.Port); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
}
