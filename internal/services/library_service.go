package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yonagi/game-library-api/internal/constants"
	"github.com/yonagi/game-library-api/internal/models"
	"github.com/yonagi/game-library-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrGameNotFound    = errors.New("no such game")
	ErrGameExists      = errors.New("game already exists")
	ErrCopyNotFound    = errors.New("no such copy")
	ErrNotOwner        = errors.New("copy belongs to another user")
	ErrInvalidProgress = errors.New("invalid progress")
	ErrInvalidRating   = errors.New("invalid rating")
	ErrConflict        = errors.New("conflicting concurrent write")
)

// LibraryService provides business logic for games and copies.
type LibraryService struct {
	gameRepo repository.GameRepository
	copyRepo repository.CopyRepository

	// allowClear enables the "null" sentinel on progress/rating updates.
	allowClear bool
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(gameRepo repository.GameRepository, copyRepo repository.CopyRepository, allowClear bool) *LibraryService {
	return &LibraryService{
		gameRepo:   gameRepo,
		copyRepo:   copyRepo,
		allowClear: allowClear,
	}
}

// AddGame creates a game unless a case-insensitive (name, platform) match
// exists. On ErrGameExists the existing game is returned alongside the
// error so callers can reference it.
func (s *LibraryService) AddGame(name, platform string) (*models.Game, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(platform) == "" {
		return nil, fmt.Errorf("name and platform are required")
	}

	game, created, err := s.gameRepo.FindOrCreate(name, platform)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to add game: %w", err)
	}
	if !created {
		return game, ErrGameExists
	}
	return game, nil
}

// AddCopy creates a copy of the game for the user, with progress and
// rating unset.
func (s *LibraryService) AddCopy(userID, gameID uint64) (*models.Copy, error) {
	if _, err := s.gameRepo.FindByID(gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to find game: %w", err)
	}

	copy := &models.Copy{
		OwnerID: userID,
		GameID:  gameID,
	}
	if err := s.copyRepo.Create(copy); err != nil {
		return nil, fmt.Errorf("failed to create copy: %w", err)
	}
	return copy, nil
}

// SetProgress updates a copy's progress. Only the owner may update, and
// the value must be a recognized progress name (or the clear sentinel when
// clearing is enabled).
func (s *LibraryService) SetProgress(userID, copyID uint64, value string) (*models.Copy, error) {
	copy, err := s.ownedCopy(userID, copyID)
	if err != nil {
		return nil, err
	}

	if s.allowClear && value == constants.ClearValueSentinel {
		copy.Progress = nil
	} else {
		progress := models.GameProgress(value)
		if !progress.Valid() {
			return nil, ErrInvalidProgress
		}
		copy.Progress = &progress
	}

	if err := s.copyRepo.Update(copy); err != nil {
		return nil, fmt.Errorf("failed to update copy: %w", err)
	}
	return copy, nil
}

// SetRating updates a copy's rating, symmetric with SetProgress.
func (s *LibraryService) SetRating(userID, copyID uint64, value string) (*models.Copy, error) {
	copy, err := s.ownedCopy(userID, copyID)
	if err != nil {
		return nil, err
	}

	if s.allowClear && value == constants.ClearValueSentinel {
		copy.Rating = nil
	} else {
		rating := models.GameRating(value)
		if !rating.Valid() {
			return nil, ErrInvalidRating
		}
		copy.Rating = &rating
	}

	if err := s.copyRepo.Update(copy); err != nil {
		return nil, fmt.Errorf("failed to update copy: %w", err)
	}
	return copy, nil
}

// ListCopies returns a user's copies ordered by rating descending with
// unrated copies last.
func (s *LibraryService) ListCopies(ownerID uint64) ([]models.Copy, error) {
	copies, err := s.copyRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list copies: %w", err)
	}
	return copies, nil
}

// DeleteCopy permanently removes an owned copy and returns its last-known
// state.
func (s *LibraryService) DeleteCopy(userID, copyID uint64) (*models.Copy, error) {
	copy, err := s.ownedCopy(userID, copyID)
	if err != nil {
		return nil, err
	}

	if err := s.copyRepo.Delete(copy.ID); err != nil {
		return nil, fmt.Errorf("failed to delete copy: %w", err)
	}
	return copy, nil
}

// ownedCopy loads a copy and enforces ownership. Existence is checked
// before ownership so the two failures stay distinct.
func (s *LibraryService) ownedCopy(userID, copyID uint64) (*models.Copy, error) {
	copy, err := s.copyRepo.FindByID(copyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCopyNotFound
		}
		return nil, fmt.Errorf("failed to find copy: %w", err)
	}
	if copy.OwnerID != userID {
		return nil, ErrNotOwner
	}
	return copy, nil
}
