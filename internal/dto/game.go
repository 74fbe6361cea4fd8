package dto

import "github.com/yonagi/game-library-api/internal/models"

// GameDTO represents a game in API responses
type GameDTO struct {
	ID       uint64        `json:"id"`
	Name     string        `json:"name"`
	Platform string        `json:"platform"`
	Steam    *SteamGameDTO `json:"steam,omitempty"`
}

// SteamGameDTO is the Steam catalog block nested in a game view
type SteamGameDTO struct {
	AppID   uint64 `json:"app_id"`
	AppName string `json:"app_name"`
}

// ToGameDTO converts a Game model to GameDTO
func ToGameDTO(game models.Game) GameDTO {
	d := GameDTO{
		ID:       game.ID,
		Name:     game.Name,
		Platform: game.Platform,
	}
	if game.Steam != nil {
		d.Steam = &SteamGameDTO{
			AppID:   game.Steam.AppID,
			AppName: game.Steam.AppName,
		}
	}
	return d
}
