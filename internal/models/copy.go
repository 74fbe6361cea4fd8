package models

import "time"

type GameProgress string

const (
	ProgressNotStarted GameProgress = "NOT_STARTED"
	ProgressUnfinished GameProgress = "UNFINISHED"
	ProgressBeaten     GameProgress = "BEATEN"
	ProgressCompleted  GameProgress = "COMPLETED"
	ProgressMastered   GameProgress = "MASTERED"
	ProgressNoProgress GameProgress = "NO_PROGRESS"
)

// Valid reports whether p is a recognized progress value.
func (p GameProgress) Valid() bool {
	switch p {
	case ProgressNotStarted, ProgressUnfinished, ProgressBeaten,
		ProgressCompleted, ProgressMastered, ProgressNoProgress:
		return true
	}
	return false
}

type GameRating string

const (
	RatingUnrated  GameRating = "UNRATED"
	RatingDisliked GameRating = "DISLIKED"
	RatingMixed    GameRating = "MIXED"
	RatingLiked    GameRating = "LIKED"
	RatingLoved    GameRating = "LOVED"
)

// Valid reports whether r is a recognized rating value.
func (r GameRating) Valid() bool {
	switch r {
	case RatingUnrated, RatingDisliked, RatingMixed, RatingLiked, RatingLoved:
		return true
	}
	return false
}

// Copy is a user's ownership record for a game. Progress and rating are
// NULL until the owner sets them.
type Copy struct {
	ID        uint64        `gorm:"primarykey" json:"id"`
	OwnerID   uint64        `gorm:"not null;index" json:"owner_id"`
	GameID    uint64        `gorm:"not null;index" json:"game_id"`
	Progress  *GameProgress `gorm:"type:varchar(20)" json:"progress"`
	Rating    *GameRating   `gorm:"type:varchar(20)" json:"rating"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Game  Game `gorm:"foreignKey:GameID" json:"game,omitempty"`
}
