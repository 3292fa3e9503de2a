// Package domain holds monitoring request and response shapes
package domain

import rdomain "replyguard/internal/services/replies/domain"

// Status reports whether webhook replies are acted on
type Status struct {
	Enabled bool `json:"enabled" example:"true"`
}

// ToggleInput switches monitoring on or off
type ToggleInput struct {
	Enabled *bool `json:"enabled" validate:"required" example:"true"`
}

// ScanResult is what an on demand scan reports
type ScanResult = rdomain.ScanResult
