package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/philipparndt/envelope/pkg/config"
	"github.com/philipparndt/envelope/pkg/envelope"
	"github.com/philipparndt/envelope/version"
	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "envelope",
	Short: "Generate 3D envelope meshes along routes",
	Long: `envelope turns a route, a polyline of 3D points, into a volumetric mesh:
a flat top band, slanted side walls and a translucent floor, with an on-ramp
at the route's tail. Routes are read from YAML or JSON files and the result
can be exported as STL, inspected or rendered to PNG.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $HOME/"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
}

func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	envelope.SetLogger(logger)

	loaded, err := config.Load(configFile)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
