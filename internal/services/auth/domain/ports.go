package domain

import "context"

// CredentialPort hands out a valid platform credential for a user
// an expired token is refreshed first, one refresh per user at a time
type CredentialPort interface {
	ValidCredential(ctx context.Context, userID string) (Credential, error)
}

// UsersPort reads users and flips their monitoring flag
type UsersPort interface {
	ByID(ctx context.Context, userID string) (User, error)
	ByPlatformID(ctx context.Context, platformUserID string) (User, error)
	SetMonitoring(ctx context.Context, userID string, enabled bool) error
}

// TokensPort verifies session tokens
type TokensPort interface {
	Verify(token string) (Claims, error)
}

// Ports is what the auth module exposes to other modules
type Ports struct {
	Credentials CredentialPort
	Users       UsersPort
	Tokens      TokensPort
}
