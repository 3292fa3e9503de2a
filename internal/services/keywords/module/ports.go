package module

import (
	"context"

	kwsvc "replyguard/internal/services/keywords/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptSource struct{ svc kwsvc.Service }

// ForUser returns the user's keywords in matching order
func (a adaptSource) ForUser(ctx context.Context, userID string) ([]string, error) {
	return a.svc.ForUser(ctx, userID)
}
