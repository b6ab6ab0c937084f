package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/philipparndt/goloop/pkg/meshio"
	"github.com/philipparndt/goloop/pkg/openscad"
	"github.com/philipparndt/goloop/pkg/watcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Subdivide a mesh again whenever it changes",
	Long: `Run subdivide once, then watch the input file and rerun it after every change until interrupted.
For OpenSCAD sources every used or included file is watched as well.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addPipelineFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	p, err := pipelineFromFlags(cmd)
	if err != nil {
		return err
	}

	input := args[0]
	output := outputPath(input, subOutput, p.iterations)
	if sameFile(input, output) {
		return fmt.Errorf("output %s would overwrite the watched input", output)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := p.process(ctx, input, output); err != nil {
		// keep watching, the next save may fix the input
		logger.Error("subdivide failed", "error", err)
	}

	fw, err := watcher.NewFileWatcher(time.Duration(cfg.Debounce), logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	files, err := watchedFiles(input)
	if err != nil {
		return err
	}

	err = fw.Watch(files, func(path string) {
		logger.Debug("change detected", "file", path)
		if err := p.process(ctx, input, output); err != nil {
			logger.Error("subdivide failed", "error", err)
			return
		}
		fmt.Printf("Updated %s\n", output)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Watching %d file(s) for %s, press Ctrl+C to stop\n", len(files), input)
	fw.Run(ctx)
	return nil
}

// watchedFiles returns the input plus, for OpenSCAD sources, its dependencies
func watchedFiles(input string) ([]string, error) {
	if !meshio.IsSCAD(input) {
		return []string{input}, nil
	}
	deps, err := openscad.NewRenderer(filepath.Dir(input)).Dependencies(filepath.Base(input))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve OpenSCAD dependencies: %w", err)
	}
	return deps, nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
