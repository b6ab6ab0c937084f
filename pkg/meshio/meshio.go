// Package meshio loads and saves indexed meshes, picking the file format
// from the extension.
package meshio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/goloop/pkg/mesh"
	"github.com/philipparndt/goloop/pkg/obj"
	"github.com/philipparndt/goloop/pkg/openscad"
	"github.com/philipparndt/goloop/pkg/stl"
)

// Options control loading and saving
type Options struct {
	// WeldTolerance is the grid size used to merge STL corners, 0 for exact
	WeldTolerance float64
	// STLFormat is the encoding used when saving .stl files
	STLFormat stl.Format
}

// Loaded is a mesh read from disk
type Loaded struct {
	Mesh *mesh.Mesh
	// Dropped counts triangles removed because they collapsed to an edge
	// or a point
	Dropped int
}

// Readable reports whether Load accepts path. OpenSCAD sources are
// rendered to STL first.
func Readable(path string) bool {
	return Supported(path) || IsSCAD(path)
}

// IsSCAD reports whether path is an OpenSCAD source
func IsSCAD(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".scad")
}

// Supported reports whether the extension of path is a known mesh format
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl", ".obj":
		return true
	}
	return false
}

// Load reads an STL, OBJ or OpenSCAD file
func Load(path string, opts Options) (*Loaded, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".scad":
		return loadSCAD(path, opts)

	case ".stl":
		model, err := stl.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STL file: %w", err)
		}
		m, dropped := model.ToMesh(opts.WeldTolerance)
		if m.Name == "" {
			m.Name = baseName(path)
		}
		return &Loaded{Mesh: m, Dropped: dropped}, nil

	case ".obj":
		m, err := obj.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse OBJ file: %w", err)
		}
		m, dropped := dropDegenerate(m)
		return &Loaded{Mesh: m, Dropped: dropped}, nil

	default:
		return nil, fmt.Errorf("unsupported file type: %s (expected .stl or .obj)", ext)
	}
}

// loadSCAD renders path with OpenSCAD and loads the resulting STL
func loadSCAD(path string, opts Options) (*Loaded, error) {
	stlFile, cleanup, err := openscad.NewRenderer(filepath.Dir(path)).RenderToTemp(filepath.Base(path))
	if err != nil {
		return nil, err
	}
	defer cleanup()

	loaded, err := Load(stlFile, opts)
	if err != nil {
		return nil, err
	}
	loaded.Mesh.Name = baseName(path)
	return loaded, nil
}

// Save writes m to path
func Save(path string, m *mesh.Mesh, opts Options) error {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".stl":
		return stl.Write(path, stl.FromMesh(m), opts.STLFormat)
	case ".obj":
		return obj.Write(path, m)
	default:
		return fmt.Errorf("unsupported file type: %s (expected .stl or .obj)", ext)
	}
}

// dropDegenerate removes faces that repeat a vertex and any vertex left
// without a face
func dropDegenerate(m *mesh.Mesh) (*mesh.Mesh, int) {
	faces := make([]mesh.Face, 0, len(m.Faces))
	for _, f := range m.Faces {
		if f.V1 == f.V2 || f.V2 == f.V3 || f.V3 == f.V1 {
			continue
		}
		faces = append(faces, f)
	}

	dropped := len(m.Faces) - len(faces)
	used := mesh.Valence(len(m.Vertices), faces)
	for _, count := range used {
		if count == 0 {
			m.Faces = faces
			return m.Compact(), dropped
		}
	}

	m.Faces = faces
	return m, dropped
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
