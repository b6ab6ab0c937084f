package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/philipparndt/goloop/internal/config"
	"github.com/philipparndt/goloop/internal/logging"
	"github.com/philipparndt/goloop/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	debug      bool
	quiet      bool

	cfg    = config.Default()
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "goloop",
	Short: "Loop subdivision for triangle meshes",
	Long: `goloop refines triangle meshes with Loop subdivision.
It reads and writes STL (ASCII and binary) and OBJ files, renders OpenSCAD
sources through the openscad binary, smooths the
surface, and recomputes angle-weighted vertex normals.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (YAML or TOML, default "+config.DefaultPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress")
	rootCmd.PersistentFlags().BoolVar(&debug, "vv", false, "Log debug details")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
}

// setup loads the configuration and installs the logger
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath, false)
	} else {
		cfg, err = config.Load(config.DefaultPath, true)
	}
	if err != nil {
		return err
	}

	fallback, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger = logging.Setup(os.Stderr, logging.LevelFromFlags(debug, verbose, quiet, fallback))
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
