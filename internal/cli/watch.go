package cli

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/ficsit-ops/stationboard/internal/config"
	"github.com/ficsit-ops/stationboard/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the save directory and build on change",
	Long: `Watch monitors the filesystem store's save directory and runs a build
after each burst of save writes settles. Only available with the fs
storage backend; S3 deployments trigger builds through the HTTP API.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Storage.Backend != config.BackendFS {
		return fmt.Errorf("watch requires the fs storage backend, got %q", cfg.Storage.Backend)
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	coordinator, err := newCoordinator(cfg, store)
	if err != nil {
		return err
	}

	pattern, err := glob.Compile(cfg.Build.SavePattern)
	if err != nil {
		return fmt.Errorf("invalid save pattern %q: %w", cfg.Build.SavePattern, err)
	}

	saveDir := filepath.Join(cfg.Storage.Root, filepath.FromSlash(strings.TrimSuffix(cfg.Build.SavePrefix, "/")))
	w, err := watcher.NewSaveWatcher(saveDir, pattern, cfg.Watch.Debounce)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", saveDir, err)
	}
	defer w.Stop()

	err = w.Start(ctx, func(files []string) {
		log.Printf("Save files changed (%s), rebuilding...\n", strings.Join(files, ", "))
		result, err := coordinator.RunBuild(ctx, false)
		if err != nil {
			log.Printf("Warning: build %s failed: %v\n", result.RunID, err)
			return
		}
		log.Printf("Build %s: %s\n", result.RunID, result.Status)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Watching %s for save changes (Ctrl+C to stop)\n", saveDir)
	<-ctx.Done()
	return nil
}
