package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a dashboard account record.
type User struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// CreateUserInput is the input for creating a user.
type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserInput is a partial patch; nil fields are left alone.
type UpdateUserInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
