// Package seed loads the planets, characters and vehicles catalog from YAML.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"holocron/internal/database"
	"holocron/internal/logger"
	"holocron/internal/models"
	"holocron/internal/repository"
)

// Catalog is the document read by LoadCatalog.
type Catalog struct {
	Planets    []models.Planet    `yaml:"planets"`
	Characters []models.Character `yaml:"characters"`
	Vehicles   []models.Vehicle   `yaml:"vehicles"`
}

// Result counts the rows written per table.
type Result struct {
	Planets    int
	Characters int
	Vehicles   int
}

// LoadCatalog decodes r, rejecting unknown fields and rows without a unique name.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := checkNames("planets", c.Planets, func(p models.Planet) string { return p.Name }); err != nil {
		return nil, err
	}
	if err := checkNames("characters", c.Characters, func(ch models.Character) string { return ch.Name }); err != nil {
		return nil, err
	}
	if err := checkNames("vehicles", c.Vehicles, func(v models.Vehicle) string { return v.Name }); err != nil {
		return nil, err
	}
	return &c, nil
}

func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

func checkNames[T any](section string, rows []T, name func(T) string) error {
	seen := make(map[string]struct{}, len(rows))
	for i, row := range rows {
		n := strings.TrimSpace(name(row))
		if n == "" {
			return fmt.Errorf("%s[%d]: name is required", section, i)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("%s[%d]: duplicate name %q", section, i, n)
		}
		seen[n] = struct{}{}
	}
	return nil
}

// Seeder writes a catalog through the catalog repositories.
type Seeder struct {
	tx         *database.TxManager
	planets    *repository.CatalogRepository[models.Planet]
	characters *repository.CatalogRepository[models.Character]
	vehicles   *repository.CatalogRepository[models.Vehicle]
}

func NewSeeder(
	tx *database.TxManager,
	planets *repository.CatalogRepository[models.Planet],
	characters *repository.CatalogRepository[models.Character],
	vehicles *repository.CatalogRepository[models.Vehicle],
) *Seeder {
	return &Seeder{tx: tx, planets: planets, characters: characters, vehicles: vehicles}
}

// Seed upserts every row by name in one transaction.
func (s *Seeder) Seed(ctx context.Context, c *Catalog) (Result, error) {
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.planets.Upsert(ctx, c.Planets); err != nil {
			return fmt.Errorf("planets: %w", err)
		}
		if err := s.characters.Upsert(ctx, c.Characters); err != nil {
			return fmt.Errorf("characters: %w", err)
		}
		if err := s.vehicles.Upsert(ctx, c.Vehicles); err != nil {
			return fmt.Errorf("vehicles: %w", err)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	res := Result{Planets: len(c.Planets), Characters: len(c.Characters), Vehicles: len(c.Vehicles)}

	log := logger.WithComponent("seed")
	planets, err := s.planets.Count(ctx)
	if err != nil {
		return res, err
	}
	characters, err := s.characters.Count(ctx)
	if err != nil {
		return res, err
	}
	vehicles, err := s.vehicles.Count(ctx)
	if err != nil {
		return res, err
	}
	log.Info("catalog seeded",
		"planets", res.Planets,
		"characters", res.Characters,
		"vehicles", res.Vehicles,
		"total_planets", planets,
		"total_characters", characters,
		"total_vehicles", vehicles)
	return res, nil
}
