// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// User represents a registered account in the system.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"fullName"`
	Bio          string     `json:"bio"`
	FitnessLevel Difficulty `json:"fitnessLevel"`
	HeightCM     float64    `json:"heightCm"`
	WeightKG     float64    `json:"weightKg"`
	IsActive     bool       `json:"isActive"`
	IsAdmin      bool       `json:"isAdmin"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// UserRepository defines the port for user persistence operations.
// Find methods return (nil, nil) when no row matches.
type UserRepository interface {
	Insert(ctx context.Context, u *User) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, skip, limit int) ([]User, error)
	Update(ctx context.Context, u *User) error
	// Delete removes the user and, by cascade, every workout session,
	// exercise log, body measurement and fitness goal the user owns.
	Delete(ctx context.Context, id int64) (bool, error)
}
