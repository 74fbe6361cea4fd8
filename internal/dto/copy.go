package dto

import "github.com/yonagi/game-library-api/internal/models"

// CopyDTO represents a copy in API responses, with nested owner and game
// views. Progress and rating serialize as null until set.
type CopyDTO struct {
	ID       uint64               `json:"id"`
	Owner    UserDTO              `json:"owner"`
	Game     GameDTO              `json:"game"`
	Progress *models.GameProgress `json:"progress"`
	Rating   *models.GameRating   `json:"rating"`
}

// ToCopyDTO converts a Copy model to CopyDTO. Owner and Game must be
// preloaded.
func ToCopyDTO(copy models.Copy) CopyDTO {
	return CopyDTO{
		ID:       copy.ID,
		Owner:    ToUserDTO(copy.Owner),
		Game:     ToGameDTO(copy.Game),
		Progress: copy.Progress,
		Rating:   copy.Rating,
	}
}

// ToCopyDTOs converts a slice of copies, preserving order.
func ToCopyDTOs(copies []models.Copy) []CopyDTO {
	dtos := make([]CopyDTO, len(copies))
	for i, copy := range copies {
		dtos[i] = ToCopyDTO(copy)
	}
	return dtos
}
