package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/philipparndt/envelope/internal/app"
	"github.com/philipparndt/envelope/pkg/config"
	"github.com/philipparndt/envelope/pkg/envelope"
	"github.com/philipparndt/envelope/version"
	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
	width      int32
	height     int32
)

var rootCmd = &cobra.Command{
	Use:   "envelope-raylib [route-file]",
	Short: "View and measure a route envelope with raylib",
	Long: `Open a window on the envelope of a route file. The envelope is regenerated
whenever the file changes. Click two or more vertices to measure the distance
between them.`,
	Version:       version.GetFullVersion(),
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "Config file (default $HOME/"+config.FileName+")")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.Flags().Int32Var(&width, "window-width", 1400, "Initial window width")
	rootCmd.Flags().Int32Var(&height, "window-height", 900, "Initial window height")
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	envelope.SetLogger(logger)

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	return app.Run(args[0], app.Options{
		Base:       cfg.Options(),
		Background: cfg.BackgroundColor(),
		Width:      width,
		Height:     height,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
