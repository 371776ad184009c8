//go:build integration

// Package repotest starts a migrated Postgres in a container for integration tests.
package repotest

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dukerupert/verdant/internal"
	"github.com/dukerupert/verdant/internal/repository"
)

// NewStore starts Postgres, applies migrations and returns a Store on a pool.
// The container is terminated when the test ends.
func NewStore(t *testing.T) (*repository.PoolStore, *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("verdant_test"),
		postgres.WithUsername("verdant"),
		postgres.WithPassword("verdant"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, internal.RunMigrations(ctx, db, slog.New(slog.NewTextHandler(io.Discard, nil))))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return repository.NewStore(pool), pool
}

// Seed holds rows created by SeedCatalog.
type Seed struct {
	User     repository.User
	Category repository.Category
	Plants   []repository.Plant
}

// SeedUser inserts a user with a unique email.
func SeedUser(t *testing.T, q repository.Querier, email string) repository.User {
	t.Helper()
	user, err := q.CreateUser(context.Background(), repository.CreateUserParams{
		Email:     email,
		FirstName: "Test",
		LastName:  "Gardener",
	})
	require.NoError(t, err)
	return user
}

// SeedPlant inserts a plant in category with the given price and stock.
func SeedPlant(t *testing.T, q repository.Querier, categoryID uuid.UUID, name, price string, stock int32) repository.Plant {
	t.Helper()
	plant, err := q.CreatePlant(context.Background(), repository.CreatePlantParams{
		CategoryID: categoryID,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		StockQty:   stock,
	})
	require.NoError(t, err)
	return plant
}

// SeedCatalog creates one user, one category and a plant per stock entry.
func SeedCatalog(t *testing.T, q repository.Querier, stocks ...int32) Seed {
	t.Helper()
	category, err := q.CreateCategory(context.Background(), "Indoor")
	require.NoError(t, err)

	seed := Seed{
		User:     SeedUser(t, q, "gardener@example.com"),
		Category: category,
	}
	for i, stock := range stocks {
		seed.Plants = append(seed.Plants, SeedPlant(t, q, category.ID, plantNames[i%len(plantNames)], "100.00", stock))
	}
	return seed
}

var plantNames = []string{"Monstera", "Pothos", "Calathea", "Snake Plant", "Fern"}
