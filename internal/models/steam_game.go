package models

import "time"

// SteamGame links a Game row to its Steam catalog entry. One catalog entry
// maps to exactly one Game.
type SteamGame struct {
	AppID     uint64    `gorm:"primarykey;autoIncrement:false" json:"app_id"`
	AppName   string    `gorm:"type:varchar(255);not null" json:"app_name"`
	GameID    uint64    `gorm:"not null;uniqueIndex" json:"game_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Game Game `gorm:"foreignKey:GameID" json:"game,omitempty"`
}
