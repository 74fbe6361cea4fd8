package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yonagi/game-library-api/internal/repository"
)

// ErrImportFailed wraps any failure of the owned-games import. The import
// is all-or-nothing; callers never see partial state.
var ErrImportFailed = errors.New("import failed")

// ImportService reconciles a user's Steam library into games, steam
// games, and copies.
type ImportService struct {
	catalog       SteamCatalog
	steamGameRepo repository.SteamGameRepository
}

// NewImportService creates a new ImportService.
func NewImportService(catalog SteamCatalog, steamGameRepo repository.SteamGameRepository) *ImportService {
	return &ImportService{
		catalog:       catalog,
		steamGameRepo: steamGameRepo,
	}
}

// ImportOwnedGames fetches the user's owned games and merges them into the
// library. The fetch completes before the write transaction opens, so a
// slow or failing catalog never holds database locks. Returns the number
// of copies created; repeat imports create nothing.
func (s *ImportService) ImportOwnedGames(ctx context.Context, userID uint64, steamID string) (int, error) {
	games, err := s.catalog.OwnedGames(ctx, steamID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrImportFailed, err)
	}

	entries := make([]repository.ImportEntry, len(games))
	for i, game := range games {
		entries[i] = repository.ImportEntry{
			AppID:    game.AppID,
			Name:     game.Name,
			Playtime: game.PlaytimeForever,
		}
	}

	created, err := s.steamGameRepo.ReconcileOwnedGames(userID, entries)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrImportFailed, err)
	}
	return created, nil
}
