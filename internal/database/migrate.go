package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"holocron/internal/logger"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// Migrator applies the versioned SQL scripts for one dialect.
type Migrator struct {
	provider *goose.Provider
	dialect  goose.Dialect
}

func gooseDialect(driver string) (goose.Dialect, string, error) {
	switch driver {
	case "mysql":
		return goose.DialectMySQL, "migrations/mysql", nil
	case "postgres":
		return goose.DialectPostgres, "migrations/postgres", nil
	case "sqlite":
		return goose.DialectSQLite3, "migrations/sqlite3", nil
	}
	return "", "", fmt.Errorf("no migrations for driver %q", driver)
}

func NewMigrator(db *gorm.DB, driver string) (*Migrator, error) {
	dialect, dir, err := gooseDialect(driver)
	if err != nil {
		return nil, err
	}
	scripts, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	provider, err := goose.NewProvider(dialect, sqlDB, scripts)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}
	return &Migrator{provider: provider, dialect: dialect}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	log := logger.WithComponent("migration.goose")

	from, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	results, err := m.provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied", "version", r.Source.Version, "path", r.Source.Path, "duration", r.Duration)
	}
	to, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}
	log.Info("migration completed", "dialect", m.dialect, "from_version", from, "to_version", to)
	return nil
}

// Down rolls back the given number of applied migrations.
func (m *Migrator) Down(ctx context.Context, steps int) error {
	log := logger.WithComponent("migration.goose")
	for i := 0; i < steps; i++ {
		r, err := m.provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("failed to run down migration: %w", err)
		}
		log.Info("migration rolled back", "version", r.Source.Version, "path", r.Source.Path)
	}
	return nil
}

// MigrationStatus is one script and whether it has been applied.
type MigrationStatus struct {
	Version int64
	Path    string
	Applied bool
}

func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	list, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	out := make([]MigrationStatus, 0, len(list))
	for _, s := range list {
		out = append(out, MigrationStatus{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}

func (m *Migrator) Version(ctx context.Context) (int64, error) {
	return m.provider.GetDBVersion(ctx)
}

// Migrate applies the schema with the configured strategy: "auto" uses gorm
// AutoMigrate, "goose" applies the versioned scripts.
func Migrate(ctx context.Context, db *gorm.DB, driver, strategy string) error {
	switch strategy {
	case "auto":
		return AutoMigrate(db.WithContext(ctx))
	case "goose":
		m, err := NewMigrator(db, driver)
		if err != nil {
			return err
		}
		return m.Up(ctx)
	}
	return fmt.Errorf("unsupported migration strategy %q", strategy)
}
