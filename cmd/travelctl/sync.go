package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-planner/backend/internal/app"
)

// syncDryRun is set by the --dry-run flag.
var syncDryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull destinations and trips from the remote catalogue",
	Long: `Fetches the remote catalogue at SYNC_BASE_URL and upserts every record
into the configured store. Records the store rejects are counted as skipped.
Without DATABASE_URL the records would land in a throwaway in-memory store,
so the command refuses unless --dry-run is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.SyncBaseURL == "" {
			return errors.New("sync: SYNC_BASE_URL is not set")
		}
		if cfg.InMemory() && !syncDryRun {
			return errors.New("sync: DATABASE_URL is not set; pass --dry-run to sync into a throwaway in-memory store")
		}
		ctx := cmd.Context()

		store, closeStore, err := app.OpenStore(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("sync: %w", err)
		}
		defer closeStore()

		res, err := app.NewSyncer(cfg, store, logger).Run(ctx)
		if err != nil {
			return fmt.Errorf("sync: %w", err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "allow syncing into the in-memory store, discarding the result")
}
