package module

import (
	"replyguard/internal/modkit/httpkit"
	"replyguard/internal/services/auth/domain"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// SessionPort turns verified session tokens into the request user and account
// other modules guard their routes with httpkit.Auth(SessionPort(...))
func SessionPort(t domain.TokensPort) *httpkit.Port {
	return httpkit.NewPortFunc(func(token string) (string, string, error) {
		c, err := t.Verify(token)
		if err != nil {
			return "", "", err
		}
		return c.UserID, c.PlatformUserID, nil
	})
}
