package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	quantflow "github.com/meaigood001/panda-quantflow"
	"github.com/meaigood001/panda-quantflow/internal/loader"
	"github.com/meaigood001/panda-quantflow/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "quantflow",
	Short: "QuantFlow is a node catalog service for visual workflow editors",
	Long: `QuantFlow discovers workflow nodes from compiled-in builtins and
plugin manifests on disk, projects their schemas, and serves the
resulting catalog over HTTP, MCP, or the terminal.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringSlice("plugins", []string{"./plugins"}, "Directories to scan for plugin manifests")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// newApp assembles the pipeline from the persistent flags and runs the
// startup load.
func newApp(cmd *cobra.Command, opts ...quantflow.Option) (*quantflow.App, *loader.Report) {
	roots, _ := cmd.Flags().GetStringSlice("plugins")
	debug, _ := cmd.Flags().GetBool("debug")

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := logging.New(level)
	slog.SetDefault(logger)

	opts = append(opts, quantflow.WithLogger(logger))
	return quantflow.New(cmd.Context(), roots, opts...)
}
