package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"holocron/internal/database"
	"holocron/internal/repository"
	"holocron/internal/seed"
)

var seedFile string

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load planets, characters and vehicles from a YAML file",
		RunE:  runSeed,
	}
	cmd.Flags().StringVarP(&seedFile, "file", "f", "", "Catalog YAML file (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runSeed(cmd *cobra.Command, _ []string) error {
	catalog, err := seed.LoadCatalogFile(seedFile)
	if err != nil {
		return err
	}

	cfg, _, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer database.Close(db)

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(cmd.Context(), db, cfg.Database.Driver, cfg.Database.Migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	seeder := seed.NewSeeder(
		database.NewTxManager(db),
		repository.NewPlanetRepository(db),
		repository.NewCharacterRepository(db),
		repository.NewVehicleRepository(db),
	)
	res, err := seeder.Seed(cmd.Context(), catalog)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d planets, %d characters, %d vehicles\n", res.Planets, res.Characters, res.Vehicles)
	return nil
}
