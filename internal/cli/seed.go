package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dukerupert/verdant/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users, categories and plants from a YAML fixture",
	Long: `Seed reads a catalog fixture and inserts it in a single transaction.

Example fixture:

  users:
    - email: ada@example.com
      firstName: Ada
      lastName: Lovelace
  categories:
    - name: Succulents
      plants:
        - name: Echeveria
          price: "12.50"
          stock: 40`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringP("file", "f", "catalog.yaml", "Path to the fixture file")
}

// Catalog is the fixture layout accepted by seed.
type Catalog struct {
	Users      []SeedUser     `yaml:"users"`
	Categories []SeedCategory `yaml:"categories"`
}

type SeedUser struct {
	Email     string `yaml:"email"`
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
}

type SeedCategory struct {
	Name   string      `yaml:"name"`
	Plants []SeedPlant `yaml:"plants"`
}

type SeedPlant struct {
	Name             string `yaml:"name"`
	Price            string `yaml:"price"`
	Description      string `yaml:"description"`
	CareInstructions string `yaml:"careInstructions"`
	ImageURL         string `yaml:"imageUrl"`
	Stock            int32  `yaml:"stock"`
}

// SeedResult counts the rows written by a seed run.
type SeedResult struct {
	Users      int
	Categories int
	Plants     int
}

func runSeed(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()

	catalog, err := ParseCatalog(f)
	if err != nil {
		return err
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := pgxpool.New(cmd.Context(), cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	var result SeedResult
	err = repository.NewStore(pool).ExecTx(cmd.Context(), func(q repository.Querier) error {
		result, err = SeedCatalog(cmd.Context(), q, catalog, logger)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d categories, %d plants\n",
		result.Users, result.Categories, result.Plants)
	return nil
}

// ParseCatalog decodes and checks a fixture. Unknown keys are rejected.
func ParseCatalog(r io.Reader) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Catalog{}, fmt.Errorf("failed to parse fixture: %w", err)
	}

	var errs []error
	for i, u := range c.Users {
		if u.Email == "" {
			errs = append(errs, fmt.Errorf("users[%d]: email is required", i))
		}
	}
	for i, cat := range c.Categories {
		if cat.Name == "" {
			errs = append(errs, fmt.Errorf("categories[%d]: name is required", i))
		}
		for j, p := range cat.Plants {
			if p.Name == "" {
				errs = append(errs, fmt.Errorf("categories[%d].plants[%d]: name is required", i, j))
			}
			price, err := decimal.NewFromString(p.Price)
			if err != nil || price.IsNegative() {
				errs = append(errs, fmt.Errorf("categories[%d].plants[%d]: price %q is not a valid amount", i, j, p.Price))
			}
			if p.Stock < 0 {
				errs = append(errs, fmt.Errorf("categories[%d].plants[%d]: stock must not be negative", i, j))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// SeedCatalog writes a parsed fixture through q.
func SeedCatalog(ctx context.Context, q repository.Querier, c Catalog, logger *slog.Logger) (SeedResult, error) {
	var res SeedResult

	for _, u := range c.Users {
		user, err := q.CreateUser(ctx, repository.CreateUserParams{
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		})
		if err != nil {
			return res, fmt.Errorf("failed to create user %s: %w", u.Email, err)
		}
		logger.Debug("seeded user", "user_id", user.ID, "email", user.Email)
		res.Users++
	}

	for _, cat := range c.Categories {
		category, err := q.CreateCategory(ctx, cat.Name)
		if err != nil {
			return res, fmt.Errorf("failed to create category %s: %w", cat.Name, err)
		}
		res.Categories++

		for _, p := range cat.Plants {
			plant, err := q.CreatePlant(ctx, repository.CreatePlantParams{
				CategoryID:       category.ID,
				Name:             p.Name,
				Price:            decimal.RequireFromString(p.Price),
				Description:      p.Description,
				CareInstructions: p.CareInstructions,
				ImageURL:         p.ImageURL,
				StockQty:         p.Stock,
			})
			if err != nil {
				return res, fmt.Errorf("failed to create plant %s: %w", p.Name, err)
			}
			logger.Debug("seeded plant", "plant_id", plant.ID, "category", category.Name)
			res.Plants++
		}
	}

	return res, nil
}
