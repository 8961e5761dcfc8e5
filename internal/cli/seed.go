package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	stagerepo "agency_portal_backend/internal/stages/repository"
	stageservice "agency_portal_backend/internal/stages/service"
)

// SeedCatalogCmd creates missing stage names from a YAML file or the defaults.
func SeedCatalogCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed-catalog",
		Short: "Create missing stages in the catalog",
		Long: `Create every stage listed in the seed file that is not yet in the catalog.
Existing names are left alone, so the command can be run repeatedly.

Examples:
  stagectl seed-catalog                      # built-in default stages
  stagectl seed-catalog --file stages.yaml   # stages: [Docs, Visa Filed]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if file == "" {
				file = e.cfg.GetCatalogSeedFile()
			}
			names := stageservice.DefaultSeed
			if file != "" {
				if names, err = stageservice.LoadSeedFile(file); err != nil {
					return err
				}
			}

			pool, err := e.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			// Seeding through the cache drops the API's cached catalog.
			catalog, closeCache := stagerepo.WithCache(cmd.Context(), e.cfg, e.log, stagerepo.New(pool))
			defer closeCache()

			svc := stageservice.New(catalog, e.bus, e.log)
			return runSeed(cmd.Context(), svc, names, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML seed file (defaults to CATALOG_SEED_FILE)")
	return cmd
}

type seeder interface {
	SeedDefaults(ctx context.Context, names []string) (int, error)
}

func runSeed(ctx context.Context, svc seeder, names []string, out io.Writer) error {
	created, err := svc.SeedDefaults(ctx, names)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d of %d stages created\n", created, len(names))
	return nil
}
