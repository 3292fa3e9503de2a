// Package service implements the monitoring switch and the on demand scan
package service

import (
	"context"

	"replyguard/internal/platform/logger"
	authdomain "replyguard/internal/services/auth/domain"
	"replyguard/internal/services/monitoring/domain"
	rdomain "replyguard/internal/services/replies/domain"
)

// Service defines the monitoring service contract
type Service interface {
	Status(ctx context.Context, userID string) (domain.Status, error)
	Toggle(ctx context.Context, userID string, enabled bool) (domain.Status, error)
	Scan(ctx context.Context, userID string) (domain.ScanResult, error)
}

// Svc implements Service over the auth users port and the replies scanner
type Svc struct {
	users   authdomain.UsersPort
	scanner rdomain.ScannerPort
}

// New constructs a monitoring service
func New(users authdomain.UsersPort, scanner rdomain.ScannerPort) *Svc {
	if users == nil || scanner == nil {
		panic("monitoring.Service requires users and scanner ports")
	}
	return &Svc{users: users, scanner: scanner}
}

// Status reads the user's flag
func (s *Svc) Status(ctx context.Context, userID string) (domain.Status, error) {
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		return domain.Status{}, err
	}
	return domain.Status{Enabled: u.MonitoringEnabled}, nil
}

// Toggle stores the flag and echoes it
func (s *Svc) Toggle(ctx context.Context, userID string, enabled bool) (domain.Status, error) {
	if err := s.users.SetMonitoring(ctx, userID, enabled); err != nil {
		return domain.Status{}, err
	}
	logger.C(ctx).Info().Str("user_id", userID).Bool("enabled", enabled).Msg("monitoring toggled")
	return domain.Status{Enabled: enabled}, nil
}

// Scan runs a historical scan
func (s *Svc) Scan(ctx context.Context, userID string) (domain.ScanResult, error) {
	return s.scanner.Scan(ctx, userID)
}
