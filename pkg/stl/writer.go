package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/philipparndt/goloop/pkg/geometry"
)

const (
	binaryHeaderSize = 80
	binaryRecordSize = 50
)

// Format selects the STL encoding used when writing
type Format int

const (
	// Binary is the compact 50 bytes per triangle encoding
	Binary Format = iota
	// ASCII is the human readable "solid ... endsolid" encoding
	ASCII
)

// ParseFormat converts "binary" or "ascii" to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "binary":
		return Binary, nil
	case "ascii":
		return ASCII, nil
	default:
		return Binary, fmt.Errorf("unknown STL format %q (expected ascii or binary)", s)
	}
}

// String returns the format name
func (f Format) String() string {
	if f == ASCII {
		return "ascii"
	}
	return "binary"
}

// Write saves the model to filename in the given format
func Write(filename string, model *Model, format Format) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if format == ASCII {
		err = WriteASCII(file, model)
	} else {
		err = WriteBinary(file, model)
	}
	if err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteASCII writes the model as an ASCII STL
func WriteASCII(w io.Writer, model *Model) error {
	bw := bufio.NewWriter(w)
	name := strings.TrimSpace(model.Name)

	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range model.Triangles {
		n := facetNormal(t)
		fmt.Fprintf(bw, "  facet normal %s\n", formatASCII(n))
		fmt.Fprintln(bw, "    outer loop")
		for _, v := range []geometry.Vector3{t.V1, t.V2, t.V3} {
			fmt.Fprintf(bw, "      vertex %s\n", formatASCII(v))
		}
		fmt.Fprintln(bw, "    endloop")
		fmt.Fprintln(bw, "  endfacet")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing ASCII STL: %w", err)
	}
	return nil
}

// WriteBinary writes the model as a binary STL
func WriteBinary(w io.Writer, model *Model) error {
	if uint64(len(model.Triangles)) > math.MaxUint32 {
		return fmt.Errorf("too many triangles for binary STL: %d", len(model.Triangles))
	}

	bw := bufio.NewWriter(w)

	// Binary files must not start with "solid", readers take that for ASCII
	header := make([]byte, binaryHeaderSize)
	name := model.Name
	if strings.HasPrefix(name, "solid") {
		name = "goloop " + name
	}
	copy(header, name)
	if _, err := bw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if err := binary.Write(bw, binary.LittleEndian, uint32(len(model.Triangles))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for i, t := range model.Triangles {
		rec := binaryRecord{
			Normal:   toFloat32(facetNormal(t)),
			Vertices: [3][3]float32{toFloat32(t.V1), toFloat32(t.V2), toFloat32(t.V3)},
		}
		if err := binary.Write(bw, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing binary STL: %w", err)
	}
	return nil
}

// facetNormal prefers the stored normal and falls back to the winding order
func facetNormal(t geometry.Triangle) geometry.Vector3 {
	if t.Normal.IsZero() {
		return t.CalculateNormal()
	}
	return t.Normal
}

func toFloat32(v geometry.Vector3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func formatASCII(v geometry.Vector3) string {
	return fmt.Sprintf("%e %e %e", v.X, v.Y, v.Z)
}
