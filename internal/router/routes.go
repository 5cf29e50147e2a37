package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sourcinglabs/supplier-finder/api/internal/auth"
	"github.com/sourcinglabs/supplier-finder/api/internal/config"
	"github.com/sourcinglabs/supplier-finder/api/internal/handler"
	middlewarepkg "github.com/sourcinglabs/supplier-finder/api/internal/middleware"
	"github.com/sourcinglabs/supplier-finder/api/internal/repository"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth          *handler.AuthHandler
	Suppliers     *handler.SupplierHandler
	Conversations *handler.ConversationHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, users repository.UsersRepository, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	secured.POST("/find-supplier", handlers.Suppliers.Find,
		middlewarepkg.SubscriptionQuota(users),
		middlewarepkg.SearchRateLimiter(cfg.RateLimitSearch))
	secured.GET("/supplier-history", handlers.Suppliers.History)
	secured.POST("/save-supplier", handlers.Suppliers.Save)

	secured.GET("/conversations", handlers.Conversations.List)
	secured.POST("/conversations", handlers.Conversations.Create)
	secured.GET("/conversations/:id", handlers.Conversations.Get)
}
