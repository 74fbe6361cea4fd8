package repository

import (
	"errors"
	"strings"

	"github.com/yonagi/game-library-api/internal/models"
	"gorm.io/gorm"
)

// GormGameRepository is a GORM implementation of GameRepository
type GormGameRepository struct {
	db *gorm.DB
}

// NewGameRepository creates a new GameRepository
func NewGameRepository(db *gorm.DB) GameRepository {
	return &GormGameRepository{db: db}
}

// FindByID finds a game by ID
func (r *GormGameRepository) FindByID(id uint64) (*models.Game, error) {
	var game models.Game
	if err := r.db.Preload("Steam").First(&game, id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// FindOrCreate looks up a game by case-insensitive (name, platform) and
// creates it when missing, all inside one transaction.
func (r *GormGameRepository) FindOrCreate(name, platform string) (*models.Game, bool, error) {
	var game models.Game
	var created bool

	err := r.db.Transaction(func(tx *gorm.DB) error {
		found, err := findGameFold(tx, name, platform)
		if err == nil {
			game = *found
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		game = models.Game{Name: name, Platform: platform}
		if err := tx.Create(&game).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &game, created, nil
}

// findGameFold is the shared case-insensitive (name, platform) lookup.
func findGameFold(tx *gorm.DB, name, platform string) (*models.Game, error) {
	var game models.Game
	err := tx.
		Where("LOWER(name) = ? AND LOWER(platform) = ?",
			strings.ToLower(name), strings.ToLower(platform)).
		First(&game).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}
