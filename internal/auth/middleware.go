package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/incident-report-service/pkg/util"
)

// AdminMiddleware gates destructive admin routes behind a static shared
// bearer token.
type AdminMiddleware struct {
	token string
}

// NewAdminMiddleware constructs middleware for the configured token.
func NewAdminMiddleware(token string) *AdminMiddleware {
	return &AdminMiddleware{token: token}
}

// Handle enforces the bearer token on protected routes.
func (m *AdminMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(m.token)) != 1 {
		return apperrors.NewUnauthorized("invalid token")
	}

	return c.Next()
}
