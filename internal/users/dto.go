package users

import (
	"time"

	"github.com/videoteka/videoteka-backend/pkg/db/models"
)

// CreateUserDTO carries the fields needed to insert a new account row.
// The password arrives already hashed; plaintext never crosses this boundary.
type CreateUserDTO struct {
	Username     string
	Email        string
	PasswordHash string
}

// ToModel maps the DTO onto a persistence model.
func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		IsActive:     true,
	}
}

// UserDTO is the public projection of a user record. The credential digest is
// deliberately absent.
type UserDTO struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"is_active"`
	AvatarBase64 *string   `json:"avatar_base64"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToDTO projects a model into the API-safe shape.
func ToDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:           u.ID.String(),
		Username:     u.Username,
		Email:        u.Email,
		IsActive:     u.IsActive,
		AvatarBase64: u.AvatarBase64,
		CreatedAt:    u.CreatedAt,
	}
}
