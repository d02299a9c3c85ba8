package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/tatibku/backend/internal/domain"
	"gorm.io/gorm"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) CreateRefreshToken(token *domain.RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *AuthRepository) FindRefreshTokenByHash(hash string) (*domain.RefreshToken, error) {
	var token domain.RefreshToken
	err := r.db.Where("token_hash = ?", hash).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *AuthRepository) RevokeRefreshToken(id uuid.UUID) error {
	return r.db.Model(&domain.RefreshToken{}).
		Where("id = ?", id).
		Update("revoked_at", time.Now()).Error
}

func (r *AuthRepository) RevokeTokenFamily(familyID uuid.UUID) error {
	return r.db.Model(&domain.RefreshToken{}).
		Where("family_id = ? AND revoked_at IS NULL", familyID).
		Update("revoked_at", time.Now()).Error
}

func (r *AuthRepository) RevokeAllUserTokens(userID uuid.UUID) (int64, error) {
	result := r.db.Model(&domain.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now())
	return result.RowsAffected, result.Error
}

func (r *AuthRepository) BlacklistJTI(jti string, expiresAt time.Time) error {
	return r.db.Create(&domain.TokenBlacklist{JTI: jti, ExpiresAt: expiresAt}).Error
}

func (r *AuthRepository) DeleteExpiredTokens() (int64, error) {
	now := time.Now()
	result := r.db.Where("expires_at < ?", now).Delete(&domain.RefreshToken{})
	if result.Error != nil {
		return 0, result.Error
	}
	cleaned := result.RowsAffected
	result = r.db.Where("expires_at < ?", now).Delete(&domain.TokenBlacklist{})
	return cleaned + result.RowsAffected, result.Error
}
