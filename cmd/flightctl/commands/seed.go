package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dharmasatrya/flightfinder/internal/store"
)

func SeedCmd() *cobra.Command {
	var (
		file  string
		reset bool
	)

	cmd := &cobra.Command{
		Use:     "seed",
		Short:   "Load flights from a YAML file into the local store",
		Example: `  flightctl seed --file testdata/flights.yaml --reset`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log := setup(cmd)
			defer log.Sync()

			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			records, err := store.LoadFixtures(f)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			client, err := store.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
			if err != nil {
				return fmt.Errorf("connect mongo: %w", err)
			}
			defer client.Disconnect(context.Background())

			flights := store.NewMongoFlightStore(client.Database(cfg.MongoDB))
			if err := flights.EnsureIndexes(ctx); err != nil {
				return fmt.Errorf("ensure indexes: %w", err)
			}

			if reset {
				deleted, err := flights.DeleteAll(ctx)
				if err != nil {
					return fmt.Errorf("reset flights: %w", err)
				}
				log.Info("Removed existing flights", "count", deleted)
			}

			inserted, err := flights.InsertMany(ctx, records)
			if err != nil {
				return fmt.Errorf("insert flights: %w", err)
			}
			log.Info("Seeded flights", "count", inserted, "database", cfg.MongoDB)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML fixture file (required)")
	cmd.Flags().BoolVar(&reset, "reset", false, "Delete all stored flights first")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
