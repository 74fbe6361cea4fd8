package repository

import (
	"errors"

	"github.com/yonagi/game-library-api/internal/models"
)

// ErrConflict is returned when a concurrent writer won the race for a
// unique row between a repository's in-transaction check and its insert.
var ErrConflict = errors.New("repository: conflicting concurrent write")

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user; the username duplicate check runs in the
	// same transaction as the insert.
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by exact username
	FindByUsername(username string) (*models.User, error)
}

// GameRepository defines the interface for game data access
type GameRepository interface {
	// FindByID finds a game by ID
	FindByID(id uint64) (*models.Game, error)

	// FindOrCreate returns the game matching (name, platform)
	// case-insensitively, creating it when absent. The lookup and insert
	// share one transaction. The second return value reports whether a row
	// was created.
	FindOrCreate(name, platform string) (*models.Game, bool, error)
}

// CopyRepository defines the interface for copy data access
type CopyRepository interface {
	// Create creates a new copy
	Create(copy *models.Copy) error

	// FindByID finds a copy by ID with owner and game preloaded
	FindByID(id uint64) (*models.Copy, error)

	// ListByOwner returns the owner's copies ordered by rating descending
	// with unrated (NULL) copies last.
	ListByOwner(ownerID uint64) ([]models.Copy, error)

	// Update persists changes to a copy
	Update(copy *models.Copy) error

	// Delete permanently removes a copy
	Delete(id uint64) error
}

// ImportEntry is one owned-games record handed to the reconciler.
type ImportEntry struct {
	AppID    uint64
	Name     string
	Playtime int64
}

// SteamGameRepository defines the interface for Steam catalog data access
type SteamGameRepository interface {
	// FindByAppID finds a Steam game link by catalog app ID
	FindByAppID(appID uint64) (*models.SteamGame, error)

	// ReconcileOwnedGames merges an owned-games list into games, steam
	// games, and copies for the given owner inside a single transaction.
	// Games the owner already has a copy of are skipped. Returns the number
	// of copies created.
	ReconcileOwnedGames(ownerID uint64, entries []ImportEntry) (int, error)
}

// TokenRepository defines the interface for bearer token data access
type TokenRepository interface {
	// Create stores a newly issued token
	Create(token *models.Token) error

	// FindByToken finds a token row by its value
	FindByToken(value string) (*models.Token, error)

	// DeleteByToken removes a token row, revoking the credential
	DeleteByToken(value string) error
}
