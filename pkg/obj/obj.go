// Package obj reads and writes triangle meshes in the Wavefront OBJ format.
// Only geometry is handled: texture coordinates, materials and groups are
// skipped on read and never written.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/philipparndt/goloop/pkg/geometry"
	"github.com/philipparndt/goloop/pkg/mesh"
)

// Parse reads an OBJ file into an indexed mesh
func Parse(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	m, err := Read(file)
	if err != nil {
		return nil, err
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return m, nil
}

// Read parses OBJ data. Polygons with more than three corners are split
// into a triangle fan around their first corner.
func Read(r io.Reader) (*mesh.Mesh, error) {
	scanner := bufio.NewScanner(r)
	m := &mesh.Mesh{}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "o":
			if len(fields) > 1 && m.Name == "" {
				m.Name = strings.Join(fields[1:], " ")
			}

		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var c [3]float64
			for i := range c {
				value, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid coordinate: %w", lineNo, err)
				}
				c[i] = value
			}
			m.Vertices = append(m.Vertices, geometry.NewVector3(c[0], c[1], c[2]))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 corners", lineNo)
			}
			corners := make([]int, 0, len(fields)-1)
			for _, token := range fields[1:] {
				index, err := parseIndex(token, len(m.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				corners = append(corners, index)
			}
			for i := 1; i+1 < len(corners); i++ {
				m.Faces = append(m.Faces, mesh.NewFace(corners[0], corners[i], corners[i+1]))
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}

	return m, nil
}

// parseIndex converts a face corner ("i", "i/t", "i//n" or "i/t/n") to a
// zero based vertex index. Negative indices count back from the last
// vertex read so far.
func parseIndex(token string, vertexCount int) (int, error) {
	position, _, _ := strings.Cut(token, "/")
	i, err := strconv.Atoi(position)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q: %w", token, err)
	}

	switch {
	case i > 0 && i <= vertexCount:
		return i - 1, nil
	case i < 0 && -i <= vertexCount:
		return vertexCount + i, nil
	default:
		return 0, fmt.Errorf("face index %d out of range (%d vertices)", i, vertexCount)
	}
}

// Write saves the mesh to filename
func Write(filename string, m *mesh.Mesh) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Encode(file, m); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Encode writes the mesh as OBJ. Vertex normals are written when the mesh
// has one per vertex, and each face corner then refers to the normal with
// the same index as its vertex.
func Encode(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# goloop")
	if m.Name != "" {
		fmt.Fprintf(bw, "o %s\n", m.Name)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
	}

	normals := m.HasNormals()
	if normals {
		for _, n := range m.Normals {
			fmt.Fprintf(bw, "vn %s %s %s\n", formatFloat(n.X), formatFloat(n.Y), formatFloat(n.Z))
		}
	}

	for _, f := range m.Faces {
		if normals {
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", f.V1+1, f.V1+1, f.V2+1, f.V2+1, f.V3+1, f.V3+1)
		} else {
			fmt.Fprintf(bw, "f %d %d %d\n", f.V1+1, f.V2+1, f.V3+1)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing OBJ: %w", err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
