package openscad

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// Binary is the OpenSCAD executable looked up in PATH
var Binary = "openscad"

// Matches: use <file.scad>, include <file.scad>, use <./file.scad>, etc.
var dependencyRegex = regexp.MustCompile(`^\s*(?:use|include)\s*<([^>]+)>`)

// Renderer turns OpenSCAD sources into STL meshes
type Renderer struct {
	workDir string
}

// NewRenderer creates a renderer resolving relative paths against workDir
func NewRenderer(workDir string) *Renderer {
	return &Renderer{
		workDir: workDir,
	}
}

// Available reports whether the OpenSCAD executable can be found
func Available() bool {
	_, err := exec.LookPath(Binary)
	return err == nil
}

// RenderToTemp renders scadFile into a temporary STL file. The caller
// removes the file with the returned cleanup function.
func (r *Renderer) RenderToTemp(scadFile string) (string, func(), error) {
	temp, err := os.CreateTemp("", "goloop-*.stl")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	temp.Close()

	cleanup := func() { os.Remove(temp.Name()) }
	if err := r.RenderToSTL(scadFile, temp.Name()); err != nil {
		cleanup()
		return "", nil, err
	}
	return temp.Name(), cleanup, nil
}

// RenderToSTL renders an OpenSCAD file to outputFile
func (r *Renderer) RenderToSTL(scadFile, outputFile string) error {
	if !Available() {
		return fmt.Errorf("%s not found in PATH. Please install OpenSCAD from https://openscad.org/", Binary)
	}

	cmd := exec.Command(Binary, "-o", outputFile, r.resolve(scadFile))
	cmd.Dir = r.workDir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(output.String())
		if msg == "" {
			return fmt.Errorf("failed to render %s: %w", scadFile, err)
		}
		return fmt.Errorf("failed to render %s: %w\n%s", scadFile, err, msg)
	}
	return nil
}

// Dependencies returns scadFile and every file it uses or includes,
// transitively, as absolute paths in discovery order
func (r *Renderer) Dependencies(scadFile string) ([]string, error) {
	var deps []string
	visited := make(map[string]bool)

	pending := []string{r.resolve(scadFile)}
	for len(pending) > 0 {
		file := pending[0]
		pending = pending[1:]
		if visited[file] {
			continue
		}
		visited[file] = true
		deps = append(deps, file)

		direct, err := r.directDependencies(file)
		if err != nil {
			return nil, err
		}
		pending = append(pending, direct...)
	}
	return deps, nil
}

// directDependencies lists the use/include targets of one file
func (r *Renderer) directDependencies(scadFile string) ([]string, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", scadFile, err)
	}
	defer file.Close()

	var deps []string
	dir := filepath.Dir(scadFile)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if m := dependencyRegex.FindStringSubmatch(line); m != nil {
			deps = append(deps, r.resolveFrom(m[1], dir))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", scadFile, err)
	}
	return deps, nil
}

// resolve makes path absolute relative to the work directory
func (r *Renderer) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(r.workDir, path)
}

// resolveFrom looks for a dependency next to the including file first,
// then in the work directory
func (r *Renderer) resolveFrom(dep, dir string) string {
	local := filepath.Join(dir, dep)
	if strings.HasPrefix(dep, "./") || strings.HasPrefix(dep, "../") {
		return local
	}
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return r.resolve(dep)
}
