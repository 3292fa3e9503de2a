//go:build integration_pg

// Package pgtest starts a throwaway postgres for repo integration tests
package pgtest

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"replyguard/internal/platform/store"
	"replyguard/internal/platform/store/schema"
)

// Start starts a disposable postgres, applies the schema and returns the sql seam
// the container is removed when the test ends
func Start(t *testing.T) store.TxRunner {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "postgres",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}

	s, err := store.Open(ctx, store.Config{PG: store.PGConfig{
		Enabled:  true,
		URL:      fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port()),
		MaxConns: 4,
	}}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	if err := schema.Apply(ctx, s.PG); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return s.PG
}

// SeedUser inserts a user row and returns its id
func SeedUser(t *testing.T, q store.RowQuerier, platformID string) string {
	t.Helper()
	var id string
	err := q.QueryRow(context.Background(), `
insert into users (x_user_id, x_username, access_token)
values ($1, $2, 'tok')
returning id::text`, platformID, "user"+platformID).Scan(&id)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}
