package dto

import "github.com/yonagi/game-library-api/internal/models"

// UserDTO represents a user in API responses. The password hash never
// leaves the models package.
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}
