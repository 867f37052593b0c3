// Package main provides travelctl, the operator CLI for the Travel Planner
// backend. It shares configuration and storage wiring with the API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-planner/backend/internal/app"
	"github.com/pkordes/travel-planner/backend/internal/config"
)

var (
	// envFile is set by the --env-file flag.
	envFile string

	// cfg and logger are initialized by PersistentPreRunE.
	cfg    config.Config
	logger *slog.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "travelctl",
	Short: "travelctl manages a Travel Planner deployment",
	Long: `travelctl applies database migrations, pulls the remote destination
and trip catalogue, and exports trip summaries. It reads the same environment
variables as the API server.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(exportCmd)
}

// loadConfig reads configuration and sets up the logger for every command.
func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.LoadFrom(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c
	// stdout carries command output.
	logger = app.NewLogger(cfg, os.Stderr)
	slog.SetDefault(logger)
	return nil
}
