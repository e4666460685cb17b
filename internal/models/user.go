package models

import "time"

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// User carries the account plus the fitness profile the analysis prompt
// draws context from. Profile fields are all optional at signup.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Name         string
	Role         UserRole
	Status       UserStatus
	Age          *int
	Sex          *string
	HeightCm     *float64
	WeightKg     *float64
	Goal         *string
	FitnessLevel *string
	Equipment    *string
	DaysPerWeek  *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Session struct {
	ID               string
	UserID           string
	DeviceID         string
	DeviceName       string
	RefreshTokenHash []byte
	IPAddress        string
	UserAgent        string
	CreatedAt        time.Time
	LastSeenAt       time.Time
	ExpiresAt        time.Time
}
