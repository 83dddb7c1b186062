package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserResponse holds the public user fields. The password hash has no field here.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfileResponse struct {
	User UserResponse `json:"user"`
}
