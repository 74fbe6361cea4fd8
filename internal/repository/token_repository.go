package repository

import (
	"github.com/yonagi/game-library-api/internal/models"
	"gorm.io/gorm"
)

// GormTokenRepository is a GORM implementation of TokenRepository
type GormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &GormTokenRepository{db: db}
}

// Create stores a newly issued token
func (r *GormTokenRepository) Create(token *models.Token) error {
	return r.db.Create(token).Error
}

// FindByToken finds a token row by its value
func (r *GormTokenRepository) FindByToken(value string) (*models.Token, error) {
	var token models.Token
	if err := r.db.Where("token = ?", value).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// DeleteByToken removes a token row, revoking the credential
func (r *GormTokenRepository) DeleteByToken(value string) error {
	return r.db.Where("token = ?", value).Delete(&models.Token{}).Error
}
