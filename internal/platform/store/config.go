package store

import "time"

// Config selects and configures the backends Open connects
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures the postgres pool
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// zero means 20 attempts, each ping bounded by 3s
	ConnectRetries int
	PingTimeout    time.Duration
}

// CHConfig configures the clickhouse client
type CHConfig struct {
	Enabled bool
	URL     string

	// reported to the server as client info
	ClientName string
	ClientTag  string
}
