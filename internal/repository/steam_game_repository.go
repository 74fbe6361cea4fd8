package repository

import (
	"errors"
	"fmt"

	"github.com/yonagi/game-library-api/internal/constants"
	"github.com/yonagi/game-library-api/internal/models"
	"gorm.io/gorm"
)

// GormSteamGameRepository is a GORM implementation of SteamGameRepository
type GormSteamGameRepository struct {
	db *gorm.DB
}

// NewSteamGameRepository creates a new SteamGameRepository
func NewSteamGameRepository(db *gorm.DB) SteamGameRepository {
	return &GormSteamGameRepository{db: db}
}

// FindByAppID finds a Steam game link by catalog app ID
func (r *GormSteamGameRepository) FindByAppID(appID uint64) (*models.SteamGame, error) {
	var sg models.SteamGame
	if err := r.db.Preload("Game").Where("app_id = ?", appID).First(&sg).Error; err != nil {
		return nil, err
	}
	return &sg, nil
}

// ReconcileOwnedGames merges an owned-games list into the schema for one
// owner. Everything runs in a single transaction; any failure rolls the
// whole import back.
func (r *GormSteamGameRepository) ReconcileOwnedGames(ownerID uint64, entries []ImportEntry) (int, error) {
	created := 0

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			steamGame, err := resolveSteamGame(tx, entry)
			if err != nil {
				return fmt.Errorf("failed to resolve app %d: %w", entry.AppID, err)
			}

			// Idempotence guard: never a second copy of a game the owner
			// already has.
			var owned int64
			if err := tx.Model(&models.Copy{}).
				Where("owner_id = ? AND game_id = ?", ownerID, steamGame.GameID).
				Count(&owned).Error; err != nil {
				return fmt.Errorf("failed to check existing copy for app %d: %w", entry.AppID, err)
			}
			if owned > 0 {
				continue
			}

			copy := models.Copy{
				OwnerID: ownerID,
				GameID:  steamGame.GameID,
			}
			// Zero playtime means untouched; flag it. Played games keep
			// NULL progress until the owner sets one.
			if entry.Playtime == 0 {
				progress := models.ProgressNotStarted
				copy.Progress = &progress
			}

			if err := tx.Create(&copy).Error; err != nil {
				return fmt.Errorf("failed to create copy for app %d: %w", entry.AppID, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return created, nil
}

// resolveSteamGame returns the SteamGame for an entry, creating the Game
// and SteamGame rows on first sighting.
func resolveSteamGame(tx *gorm.DB, entry ImportEntry) (*models.SteamGame, error) {
	var steamGame models.SteamGame
	err := tx.Where("app_id = ?", entry.AppID).First(&steamGame).Error
	if err == nil {
		return &steamGame, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	game, err := findGameFold(tx, entry.Name, constants.SteamPlatform)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		game = &models.Game{Name: entry.Name, Platform: constants.SteamPlatform}
		if err := tx.Create(game).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrConflict
			}
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	steamGame = models.SteamGame{
		AppID:   entry.AppID,
		AppName: entry.Name,
		GameID:  game.ID,
	}
	if err := tx.Create(&steamGame).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &steamGame, nil
}
