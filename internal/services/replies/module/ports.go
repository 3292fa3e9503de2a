package module

import rdomain "replyguard/internal/services/replies/domain"

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Processor exposes the reply processor to the webhook module
func (m *Module) Processor() rdomain.ProcessorPort { return m.ports.Processor }

// Scanner exposes the historical scan to the monitoring module
func (m *Module) Scanner() rdomain.ScannerPort { return m.ports.Scanner }
