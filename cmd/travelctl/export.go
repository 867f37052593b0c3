package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-planner/backend/internal/app"
	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// exportFormat is set by the --format flag.
var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write one summary row per trip to stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportFormat != "csv" && exportFormat != "json" {
			return fmt.Errorf("export: format must be csv or json, got %q", exportFormat)
		}
		ctx := cmd.Context()

		store, closeStore, err := app.OpenStore(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		defer closeStore()

		rows, err := store.TripSummaries(ctx)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}

		out := cmd.OutOrStdout()
		if exportFormat == "csv" {
			return domain.WriteSummariesCSV(out, rows)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv or json")
}
