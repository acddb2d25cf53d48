// Package middleware provides the HTTP middleware for the actor's API
// surface. Authentication identifies the caller; authorization against a
// wallet is always decided by the membership registry, not here.
package middleware

import (
	"strings"

	"chama/internal/config"
	"chama/internal/models"
	"chama/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Auth validates the bearer token and stores the claims on the request
// context.
func Auth() fiber.Handler {
	secret := []byte(config.GetEnv("JWT_SECRET", "chama-dev-secret"))
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return utils.Unauthorized(c, "missing bearer token")
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.ParseWithClaims(tokenString, &models.UserClaims{}, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			return utils.Unauthorized(c, "invalid token")
		}
		claims, ok := token.Claims.(*models.UserClaims)
		if !ok {
			return utils.Unauthorized(c, "invalid claims")
		}

		c.Locals("claims", claims)
		c.Locals("userID", claims.UserID)
		return c.Next()
	}
}

// CallerID returns the authenticated user id, or the supplied fallback when
// the request carries one explicitly.
func CallerID(c *fiber.Ctx, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if id, ok := c.Locals("userID").(string); ok {
		return id
	}
	return ""
}
