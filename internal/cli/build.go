package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ficsit-ops/stationboard/internal/builder"
)

var forceFlag bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run one snapshot build",
	Long: `Build finds the newest save file in the store, extracts its logistics
snapshot and persists it. A snapshot already built from the newest save
is left untouched unless --force is given.

Examples:
  # Build if a newer save exists
  stationboard build

  # Rebuild no matter what
  stationboard build --force`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Rebuild even when the snapshot is current")
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	coordinator, err := newCoordinator(cfg, store)
	if err != nil {
		return err
	}

	result, err := coordinator.RunBuild(ctx, forceFlag)
	if err != nil {
		return fmt.Errorf("build %s failed: %w", result.RunID, err)
	}

	switch result.Status {
	case builder.StatusSkipped:
		fmt.Printf("Skipped (%s): %s\n", result.RunID, result.Detail)
	default:
		fmt.Printf("Built snapshot (%s): %d stations\n", result.RunID, result.Stations)
	}
	return nil
}
