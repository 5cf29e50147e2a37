package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/sourcinglabs/supplier-finder/api/internal/auth"
	"github.com/sourcinglabs/supplier-finder/api/internal/config"
	"github.com/sourcinglabs/supplier-finder/api/internal/database"
	"github.com/sourcinglabs/supplier-finder/api/internal/handler"
	middlewarepkg "github.com/sourcinglabs/supplier-finder/api/internal/middleware"
	"github.com/sourcinglabs/supplier-finder/api/internal/repository"
	"github.com/sourcinglabs/supplier-finder/api/internal/router"
	"github.com/sourcinglabs/supplier-finder/api/internal/service"
	"github.com/sourcinglabs/supplier-finder/api/internal/service/scrape"
	"github.com/sourcinglabs/supplier-finder/api/internal/service/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	resultsRepo := repository.NewPGXSupplierResultsRepository(pool)
	conversationsRepo := repository.NewPGXConversationsRepository(pool)

	gateway := search.NewSerperClient(&http.Client{Timeout: 15 * time.Second}, cfg.SerperAPIKey, cfg.SerperBaseURL)
	fetcher := scrape.NewFetcher(scrape.NewChromeStrategy(), scrape.NewStaticStrategy(nil))

	authService := service.NewAuthService(usersRepo, jwtManager)
	supplierService := service.NewSupplierService(resultsRepo, conversationsRepo, usersRepo, gateway, fetcher)
	conversationService := service.NewConversationService(conversationsRepo)

	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Suppliers:     handler.NewSupplierHandler(supplierService, service.NewSupplierValidator()),
		Conversations: handler.NewConversationHandler(conversationService),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, usersRepo, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
