package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ficsit-ops/stationboard/internal/blob"
	"github.com/ficsit-ops/stationboard/internal/builder"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which save the snapshot was built from",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
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

	data, err := coordinator.BuildInfoJSON(ctx)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			fmt.Println("No snapshot built yet")
			return nil
		}
		return fmt.Errorf("failed to read build info: %w", err)
	}

	if statusJSON {
		fmt.Println(string(data))
		return nil
	}

	var info builder.BuildInfo
	if err := json.Unmarshal(data, &info); err != nil {
		// Legacy records are a bare file name.
		fmt.Printf("Built from: %s\n", string(data))
		return nil
	}
	fmt.Printf("Built from: %s\n", info.FileName)
	fmt.Printf("Save date:  %s\n", info.FileDate)
	fmt.Printf("Parsed at:  %s\n", info.ParsedDate)
	return nil
}
