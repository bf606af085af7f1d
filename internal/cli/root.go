// Package cli wires the stationboard commands: one-shot builds, the HTTP
// API server, and the save directory watcher.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configDir string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stationboard",
	Short: "Stationboard - factory save logistics snapshots",
	Long: `Stationboard extracts stations, transporters and cargo flows from
factory save files and serves the resulting snapshot over HTTP.

Save files are read from a blob store (a local directory or an S3
bucket), rebuilt only when a newer save appears, and the persisted
snapshot feeds the status dashboard.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory containing stationboard.yml (default is the working directory)")
}
