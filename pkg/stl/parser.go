package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/goloop/pkg/geometry"
)

// Parse reads an STL file and returns a Model
// It automatically detects whether the file is ASCII or binary format
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// Read parses STL data from a seekable reader, detecting the format.
// Binary files may also start with "solid", so the size announced by a
// binary header wins when it matches the data length.
func Read(file io.ReadSeeker) (*Model, error) {
	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to determine file size: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to reset file pointer: %w", err)
	}

	// Read enough to see the binary triangle count
	header := make([]byte, binaryHeaderSize+4)
	n, err := io.ReadFull(file, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}

	// Reset file pointer
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to reset file pointer: %w", err)
	}

	if n == len(header) {
		count := binary.LittleEndian.Uint32(header[binaryHeaderSize:])
		if int64(binaryHeaderSize+4)+int64(count)*binaryRecordSize == size {
			return parseBinary(file)
		}
	}

	// Check if it's ASCII format (starts with "solid")
	if n >= 5 && strings.HasPrefix(string(header[:5]), "solid") {
		return parseASCII(file)
	}

	return parseBinary(file)
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("")

	var currentNormal geometry.Vector3
	var vertices []geometry.Vector3

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())

		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			// a malformed normal is recomputed on write
			currentNormal = geometry.Vector3{}
			if len(fields) >= 5 && fields[1] == "normal" {
				if n, err := parseVector(fields[2:5]); err == nil {
					currentNormal = n
				}
			}

		case "vertex":
			if len(fields) >= 4 {
				vertex, err := parseVector(fields[1:4])
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid vertex: %w", lineNo, err)
				}
				vertices = append(vertices, vertex)
			}

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices, expected 3", lineNo, len(vertices))
			}
			model.AddTriangle(geometry.NewTriangle(currentNormal, vertices[0], vertices[1], vertices[2]))
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return model, nil
}

// binaryRecord is one triangle of a binary STL, 50 bytes on disk
type binaryRecord struct {
	Normal    [3]float32
	Vertices  [3][3]float32
	Attribute uint16
}

func toVector(c [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(c[0]), float64(c[1]), float64(c[2]))
}

// parseBinary parses a binary STL file
func parseBinary(reader io.Reader) (*Model, error) {
	r := bufio.NewReader(reader)
	model := NewModel("")

	header := make([]byte, binaryHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	model.Name = strings.TrimSpace(string(bytes.TrimRight(header, "\x00")))

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	var rec binaryRecord
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d of %d: %w", i+1, count, err)
		}
		model.AddTriangle(geometry.NewTriangle(
			toVector(rec.Normal),
			toVector(rec.Vertices[0]),
			toVector(rec.Vertices[1]),
			toVector(rec.Vertices[2]),
		))
	}

	return model, nil
}

// parseVector parses three coordinates
func parseVector(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, err
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}
