// Package version reports build information stamped at link time
package version

// ServiceName identifies the api in logs, meta routes and clickhouse client info
const ServiceName = "replyguard-api"

// BuildInfo holds version information about the service build
type BuildInfo struct {
	Service string `json:"service" example:"replyguard-api"`
	Version string `json:"version" example:"v0.3.1"`
	Commit  string `json:"commit" example:"4f2a9c1"`
	Date    string `json:"date" example:"2026-10-01"`
}

// Info returns the build information
// go build -ldflags "-X replyguard/internal/core/version.version=v0.3.1 -X replyguard/internal/core/version.commit=4f2a9c1"
func Info() BuildInfo {
	return BuildInfo{
		Service: ServiceName,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
