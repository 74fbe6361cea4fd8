package repository

import (
	"github.com/yonagi/game-library-api/internal/models"
	"gorm.io/gorm"
)

// ratingOrder ranks ratings for listing: best first, NULL last. String
// enums have no useful collation order, so the ranking is a CASE
// expression.
const ratingOrder = `CASE copies.rating
	WHEN 'LOVED' THEN 0
	WHEN 'LIKED' THEN 1
	WHEN 'MIXED' THEN 2
	WHEN 'DISLIKED' THEN 3
	WHEN 'UNRATED' THEN 4
	ELSE 5 END`

// GormCopyRepository is a GORM implementation of CopyRepository
type GormCopyRepository struct {
	db *gorm.DB
}

// NewCopyRepository creates a new CopyRepository
func NewCopyRepository(db *gorm.DB) CopyRepository {
	return &GormCopyRepository{db: db}
}

// Create creates a new copy
func (r *GormCopyRepository) Create(copy *models.Copy) error {
	if err := r.db.Create(copy).Error; err != nil {
		return err
	}
	// Reload with relations for the response view.
	return r.db.Preload("Owner").Preload("Game").Preload("Game.Steam").
		First(copy, copy.ID).Error
}

// FindByID finds a copy by ID with owner and game preloaded
func (r *GormCopyRepository) FindByID(id uint64) (*models.Copy, error) {
	var copy models.Copy
	if err := r.db.Preload("Owner").Preload("Game").Preload("Game.Steam").
		First(&copy, id).Error; err != nil {
		return nil, err
	}
	return &copy, nil
}

// ListByOwner returns the owner's copies, best rated first, NULLs last.
func (r *GormCopyRepository) ListByOwner(ownerID uint64) ([]models.Copy, error) {
	var copies []models.Copy
	err := r.db.
		Preload("Owner").Preload("Game").Preload("Game.Steam").
		Where("copies.owner_id = ?", ownerID).
		Order(ratingOrder).
		Order("copies.id ASC").
		Find(&copies).Error
	if err != nil {
		return nil, err
	}
	return copies, nil
}

// Update persists changes to a copy
func (r *GormCopyRepository) Update(copy *models.Copy) error {
	// Save skips nil pointer fields, so clearing progress/rating needs an
	// explicit column update.
	return r.db.Model(copy).
		Select("progress", "rating").
		Updates(map[string]interface{}{
			"progress": copy.Progress,
			"rating":   copy.Rating,
		}).Error
}

// Delete permanently removes a copy
func (r *GormCopyRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Copy{}, id).Error
}
