package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ficsit-ops/stationboard/internal/server"
)

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the snapshot API over HTTP",
	Long: `Serve exposes the persisted snapshot:

  GET  /api/saveDetails  the stations/transporters snapshot
  GET  /api/buildInfo    which save the snapshot was built from
  POST /api/build        trigger a build (?force=true to rebuild)
  GET  /api/health       liveness probe

Reads are cached briefly so dashboard polling stays cheap.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
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

	addr := cfg.Server.Addr
	if addrFlag != "" {
		addr = addrFlag
	}

	srv, err := server.New(addr, coordinator, server.WithCacheTTL(cfg.Server.CacheTTL))
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
