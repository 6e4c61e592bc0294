package testutil

import (
	"context"
	"io/fs"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	pkgpostgres "github.com/watermelon/decision-engine/pkg/postgres"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	Container *postgres.PostgresContainer
	DSN       string
	Pool      *pgxpool.Pool
}

// NewPostgresContainer starts a PostgreSQL container and registers its
// termination with t.Cleanup.
func NewPostgresContainer(ctx context.Context, t *testing.T) *PostgresContainer {
	t.Helper()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("decisions"),
		postgres.WithUsername("engine"),
		postgres.WithPassword("engine"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	pc := &PostgresContainer{Container: pgContainer}
	t.Cleanup(func() { pc.cleanup(t) })

	pc.DSN, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	pc.Pool, err = pkgpostgres.NewPoolFromDSN(ctx, pc.DSN, 4, 0)
	if err != nil {
		t.Fatalf("failed to create pgxpool: %v", err)
	}

	return pc
}

// Migrate applies the migrations under dir in fsys.
func (pc *PostgresContainer) Migrate(t *testing.T, fsys fs.FS, dir string) {
	t.Helper()

	if err := pkgpostgres.RunMigrations(pc.DSN, fsys, dir); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
}

func (pc *PostgresContainer) cleanup(t *testing.T) {
	t.Helper()

	if pc.Pool != nil {
		pc.Pool.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := pc.Container.Terminate(ctx); err != nil {
		t.Logf("warning: failed to terminate postgres container: %v", err)
	}
}
