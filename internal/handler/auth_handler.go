package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tatibku/backend/internal/auth"
	"github.com/tatibku/backend/internal/domain"
	"github.com/tatibku/backend/internal/dto"
	"github.com/tatibku/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	userRepo *repository.UserRepository
	authRepo *repository.AuthRepository
	jwt      *auth.JWTService
}

func NewAuthHandler(userRepo *repository.UserRepository, authRepo *repository.AuthRepository, jwt *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		authRepo: authRepo,
		jwt:      jwt,
	}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Request body tidak valid",
		))
	}

	user, err := h.userRepo.FindByUsername(req.Username)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"INVALID_CREDENTIALS", "Username atau password salah",
		))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"INVALID_CREDENTIALS", "Username atau password salah",
		))
	}

	if !user.IsActive {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse(
			"ACCOUNT_DISABLED", "Akun Anda telah dinonaktifkan. Hubungi admin.",
		))
	}

	accessToken, _, err := h.jwt.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Gagal membuat token",
		))
	}

	refreshToken, tokenHash, expiresAt := h.jwt.GenerateRefreshToken()
	rt := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		FamilyID:  uuid.New(),
		ExpiresAt: expiresAt,
	}
	if err := h.authRepo.CreateRefreshToken(rt); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Gagal menyimpan token",
		))
	}

	now := time.Now()
	user.LastLoginAt = &now
	h.userRepo.Update(user)

	h.setRefreshCookie(c, refreshToken, expiresAt)

	return c.JSON(dto.SuccessResponse(dto.LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(h.jwt.GetAccessExpiry().Seconds()),
		TokenType:   "Bearer",
		User:        toUserDTO(user),
	}, "Login berhasil"))
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"UNAUTHORIZED", "Refresh token tidak ada",
		))
	}

	stored, err := h.authRepo.FindRefreshTokenByHash(auth.HashToken(refreshToken))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"INVALID_TOKEN", "Refresh token tidak valid",
		))
	}

	// Reuse of a rotated token burns the whole family
	if stored.RevokedAt != nil {
		h.authRepo.RevokeTokenFamily(stored.FamilyID)
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"TOKEN_REUSED", "Refresh token sudah dipakai",
		))
	}

	if time.Now().After(stored.ExpiresAt) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"TOKEN_EXPIRED", "Refresh token sudah expired",
		))
	}

	user, err := h.userRepo.FindByID(stored.UserID)
	if err != nil || !user.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"UNAUTHORIZED", "Akun tidak ditemukan atau nonaktif",
		))
	}

	accessToken, _, err := h.jwt.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Gagal membuat token",
		))
	}

	// Rotate: revoke the used token, issue a new one in the same family
	h.authRepo.RevokeRefreshToken(stored.ID)
	newToken, newHash, expiresAt := h.jwt.GenerateRefreshToken()
	rt := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: newHash,
		FamilyID:  stored.FamilyID,
		ExpiresAt: expiresAt,
	}
	if err := h.authRepo.CreateRefreshToken(rt); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Gagal menyimpan token",
		))
	}

	h.setRefreshCookie(c, newToken, expiresAt)

	return c.JSON(dto.SuccessResponse(dto.LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(h.jwt.GetAccessExpiry().Seconds()),
		TokenType:   "Bearer",
		User:        toUserDTO(user),
	}, ""))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if refreshToken := c.Cookies("refresh_token"); refreshToken != "" {
		if stored, err := h.authRepo.FindRefreshTokenByHash(auth.HashToken(refreshToken)); err == nil {
			h.authRepo.RevokeTokenFamily(stored.FamilyID)
		}
	}

	if jti, ok := c.Locals("jti").(string); ok && jti != "" {
		h.authRepo.BlacklistJTI(jti, time.Now().Add(h.jwt.GetAccessExpiry()))
	}

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/v1/auth",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.JSON(dto.SuccessResponse(nil, "Logout berhasil"))
}

// LogoutAll revokes every refresh token the user holds, on all devices.
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"UNAUTHORIZED", "User tidak terautentikasi",
		))
	}

	count, err := h.authRepo.RevokeAllUserTokens(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Gagal logout dari semua perangkat",
		))
	}

	if jti, ok := c.Locals("jti").(string); ok && jti != "" {
		h.authRepo.BlacklistJTI(jti, time.Now().Add(h.jwt.GetAccessExpiry()))
	}

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/v1/auth",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.JSON(dto.SuccessResponse(dto.LogoutAllResponse{
		SessionsTerminated: int(count),
	}, "Berhasil logout dari semua perangkat"))
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uuid.UUID)
	user, err := h.userRepo.FindByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse(
			"NOT_FOUND", "User tidak ditemukan",
		))
	}
	return c.JSON(dto.SuccessResponse(toUserDTO(user), ""))
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func toUserDTO(user *domain.User) dto.UserDTO {
	return dto.UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		Nama:        user.Nama,
		Role:        string(user.Role),
		GuruID:      user.GuruID,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
