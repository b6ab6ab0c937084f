package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/goloop/pkg/loop"
	"github.com/philipparndt/goloop/pkg/mesh"
	"github.com/philipparndt/goloop/pkg/meshio"
	"github.com/philipparndt/goloop/pkg/stl"
	"github.com/philipparndt/goloop/pkg/transform"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	subOutput     string
	subIterations int
	subFormat     string
	subFit        float64
	subRotate     string
	subWeld       float64
	subJobs       int
)

// pipeline describes what happens to every input file
type pipeline struct {
	iterations int
	io         meshio.Options
	fit        float64
	rotate     *[3]float64
	jobs       int
}

var subdivideCmd = &cobra.Command{
	Use:   "subdivide [file]...",
	Short: "Apply Loop subdivision to STL, OBJ or OpenSCAD files",
	Long: `Refine each input mesh with one or more Loop subdivision steps and save the result.
With a single input, --output names the result. Otherwise every result is written
next to its input as <name>.loop<n><ext>. Several inputs are processed in parallel.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSubdivide,
}

func init() {
	rootCmd.AddCommand(subdivideCmd)
	addPipelineFlags(subdivideCmd)
	subdivideCmd.Flags().IntVarP(&subJobs, "jobs", "j", 0, "Number of files processed at once (default from config)")
}

// addPipelineFlags registers the flags shared by subdivide and watch
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&subOutput, "output", "o", "", "Output file (single input only)")
	cmd.Flags().IntVarP(&subIterations, "iterations", "n", 1, "Number of subdivision steps")
	cmd.Flags().StringVarP(&subFormat, "format", "f", "binary", "STL output encoding: binary or ascii")
	cmd.Flags().Float64Var(&subFit, "fit", 0, "Center the mesh and scale its largest dimension to this size before subdividing")
	cmd.Flags().StringVar(&subRotate, "rotate", "", "Rotate by x,y,z degrees before subdividing")
	cmd.Flags().Float64Var(&subWeld, "weld", 0, "Merge STL corners closer than this distance")
}

// pipelineFromFlags merges the config with the flags given on the command line
func pipelineFromFlags(cmd *cobra.Command) (*pipeline, error) {
	p := &pipeline{
		iterations: cfg.Iterations,
		io:         meshio.Options{WeldTolerance: cfg.WeldTolerance},
		fit:        subFit,
		jobs:       cfg.Jobs,
	}

	flags := cmd.Flags()
	if flags.Changed("iterations") {
		p.iterations = subIterations
	}
	if flags.Changed("weld") {
		p.io.WeldTolerance = subWeld
	}
	if flags.Changed("jobs") {
		p.jobs = subJobs
	}

	format := cfg.Format
	if flags.Changed("format") {
		format = subFormat
	}
	stlFormat, err := stl.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	p.io.STLFormat = stlFormat

	if subRotate != "" {
		x, y, z, err := transform.ParseRotation(subRotate)
		if err != nil {
			return nil, err
		}
		p.rotate = &[3]float64{x, y, z}
	}

	if p.iterations < 0 {
		return nil, fmt.Errorf("iterations must not be negative, got %d", p.iterations)
	}
	if p.jobs < 1 {
		p.jobs = 1
	}
	return p, nil
}

func runSubdivide(cmd *cobra.Command, args []string) error {
	p, err := pipelineFromFlags(cmd)
	if err != nil {
		return err
	}
	if subOutput != "" && len(args) > 1 {
		return fmt.Errorf("--output can only be used with a single input file")
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(p.jobs)

	for _, input := range args {
		input := input // per-iteration copy; go.mod targets go1.21 loop semantics
		output := outputPath(input, subOutput, p.iterations)
		g.Go(func() error {
			return p.process(ctx, input, output)
		})
	}

	return g.Wait()
}

// outputPath returns the explicit output or <name>.loop<n><ext> next to
// input. Rendered OpenSCAD sources are saved as STL.
func outputPath(input, output string, iterations int) string {
	if output != "" {
		return output
	}
	ext := filepath.Ext(input)
	outExt := ext
	if meshio.IsSCAD(input) {
		outExt = ".stl"
	}
	return fmt.Sprintf("%s.loop%d%s", strings.TrimSuffix(input, ext), iterations, outExt)
}

// process loads input, refines it and saves it to output
func (p *pipeline) process(ctx context.Context, input, output string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !meshio.Supported(output) {
		return fmt.Errorf("%s: unsupported output type %q", output, filepath.Ext(output))
	}

	start := time.Now()
	loaded, err := meshio.Load(input, p.io)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if loaded.Dropped > 0 {
		logger.Warn("dropped degenerate triangles", "file", input, "count", loaded.Dropped)
	}

	m := p.prepare(loaded.Mesh)
	if !mesh.BuildAdjacency(m.Faces).IsManifold() {
		logger.Warn("mesh has edges shared by more than two faces, results there are approximate", "file", input)
	}

	logger.Info("loaded", "file", input, "vertices", m.VertexCount(), "faces", m.FaceCount())

	for i := 0; i < p.iterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		stepStart := time.Now()
		m, err = loop.Subdivide(m)
		if err != nil {
			return fmt.Errorf("%s: step %d: %w", input, i+1, err)
		}
		logger.Debug("subdivided",
			"file", input,
			"step", i+1,
			"vertices", m.VertexCount(),
			"faces", m.FaceCount(),
			"duration", time.Since(stepStart))
	}

	if err := meshio.Save(output, m, p.io); err != nil {
		return fmt.Errorf("%s: %w", output, err)
	}

	logger.Info("saved",
		"file", output,
		"vertices", m.VertexCount(),
		"faces", m.FaceCount(),
		"duration", time.Since(start))
	return nil
}

// prepare applies the optional rotation and fit
func (p *pipeline) prepare(m *mesh.Mesh) *mesh.Mesh {
	if p.rotate != nil {
		m = transform.Apply(m, transform.RotationMatrix(p.rotate[0], p.rotate[1], p.rotate[2]))
	}
	if p.fit > 0 {
		m = transform.Fit(m, p.fit)
	}
	return m
}
