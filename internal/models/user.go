package models

import "time"

type User struct {
	ID           uint64 `gorm:"primarykey" json:"id"`
	Username     string `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	// Admin is a bootstrap-only flag; no endpoint mutates it.
	Admin     bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Copies []Copy  `gorm:"foreignKey:OwnerID" json:"-"`
	Tokens []Token `gorm:"foreignKey:UserID" json:"-"`
}
