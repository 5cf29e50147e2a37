package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sourcinglabs/supplier-finder/api/internal/repository"
)

// SubscriptionQuota rejects search requests once the user has exhausted
// their plan allowance. Usage itself is incremented by the search
// service after a fresh scrape completes.
func SubscriptionQuota(users repository.UsersRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawID, _ := c.Get(ContextKeyUserID).(string)
			userID, err := uuid.Parse(rawID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token subject"})
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unknown user"})
				}
				log.Printf("quota check failed user_id=%s err=%v", userID, err)
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "unable to verify subscription"})
			}

			if user.UsageCount >= user.SubscriptionLimit {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error":   "Usage limit exceeded",
					"message": "Please upgrade your subscription to continue using the service",
				})
			}

			return next(c)
		}
	}
}
