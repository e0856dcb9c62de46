package model

import (
	"time"
)

const (
	RoleAdmin       = "admin"
	RoleContributor = "contributor"
)

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Role           string    `json:"role"`
	Bio            string    `json:"bio"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"date_joined"`
	UpdatedAt      time.Time `json:"updated_at"`
}
