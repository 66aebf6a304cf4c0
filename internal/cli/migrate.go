package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"holocron/internal/database"
)

var migrateSteps int

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back and inspect the versioned SQL migrations for the configured driver.`,
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runMigrateDown,
	}
	down.Flags().IntVarP(&migrateSteps, "steps", "n", 1, "Number of migrations to rollback")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Run all pending migrations",
			RunE:  runMigrateUp,
		},
		down,
		&cobra.Command{
			Use:   "status",
			Short: "Show migration status",
			RunE:  runMigrateStatus,
		},
	)
	return cmd
}

func openMigrator() (*database.Migrator, func(), error) {
	cfg, _, db, err := bootstrap()
	if err != nil {
		return nil, nil, err
	}
	m, err := database.NewMigrator(db, cfg.Database.Driver)
	if err != nil {
		_ = database.Close(db)
		return nil, nil, err
	}
	return m, func() { _ = database.Close(db) }, nil
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	m, done, err := openMigrator()
	if err != nil {
		return err
	}
	defer done()
	return m.Up(cmd.Context())
}

func runMigrateDown(cmd *cobra.Command, _ []string) error {
	if migrateSteps < 1 {
		return fmt.Errorf("steps must be at least 1")
	}
	m, done, err := openMigrator()
	if err != nil {
		return err
	}
	defer done()
	return m.Down(cmd.Context(), migrateSteps)
}

func runMigrateStatus(cmd *cobra.Command, _ []string) error {
	m, done, err := openMigrator()
	if err != nil {
		return err
	}
	defer done()

	list, err := m.Status(cmd.Context())
	if err != nil {
		return err
	}
	version, err := m.Version(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "current version: %d\n", version)
	for _, s := range list {
		state := "pending"
		if s.Applied {
			state = "applied"
		}
		fmt.Fprintf(out, "%05d  %-8s %s\n", s.Version, state, s.Path)
	}
	return nil
}
