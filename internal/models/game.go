package models

import "time"

type Game struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_games_name_platform" json:"name"`
	Platform  string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_games_name_platform" json:"platform"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Steam  *SteamGame `gorm:"foreignKey:GameID" json:"steam,omitempty"`
	Copies []Copy     `gorm:"foreignKey:GameID" json:"-"`
}
