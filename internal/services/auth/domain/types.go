// Package domain holds auth types and the ports other modules consume
package domain

import "time"

// User is the account owner as the rest of the app sees it
type User struct {
	ID                string    `json:"id" example:"5b0c1e9e-4f7a-4d1c-9a51-0d8a3f1e2b10"`
	PlatformID        string    `json:"x_user_id" example:"2244994945"`
	Username          string    `json:"x_username" example:"owner"`
	MonitoringEnabled bool      `json:"monitoring_enabled" example:"true"`
	CreatedAt         time.Time `json:"created_at"`
}

// Credential is a usable user context access token
type Credential struct {
	UserID         string
	PlatformUserID string
	AccessToken    string
	ExpiresAt      time.Time
}

// Claims are what a session token asserts
type Claims struct {
	UserID         string
	PlatformUserID string
	IssuedAt       time.Time
	ExpiresAt      time.Time
}

// LogoutResult is returned by the logout route
type LogoutResult struct {
	Success bool `json:"success" example:"true"`
}
