package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tatibku/backend/internal/auth"
	"github.com/tatibku/backend/internal/domain"
	"github.com/tatibku/backend/internal/dto"
	"gorm.io/gorm"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	db         *gorm.DB
}

func NewAuthMiddleware(jwtService *auth.JWTService, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService, db: db}
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}

// Required validates the bearer token and stores userID, userRole, and
// jti in the request locals.
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse("UNAUTHORIZED", "Token tidak ada"))
		}

		claims, err := m.jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse("TOKEN_EXPIRED", "Token sudah expired"))
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse("INVALID_TOKEN", "Token tidak valid"))
		}

		var count int64
		m.db.Model(&domain.TokenBlacklist{}).Where("jti = ?", claims.JTI).Count(&count)
		if count > 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse("TOKEN_REVOKED", "Token telah di-revoke"))
		}

		userID, err := uuid.Parse(claims.Sub)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse("INVALID_TOKEN", "Token tidak valid"))
		}

		c.Locals("userID", userID)
		c.Locals("userRole", claims.Role)
		c.Locals("jti", claims.JTI)
		return c.Next()
	}
}

// AdminOnly must run after Required().
func (m *AuthMiddleware) AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("userRole").(string)
		if role != string(domain.RoleAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse("FORBIDDEN", "Hanya admin yang dapat mengakses resource ini"))
		}
		return c.Next()
	}
}
