package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/msmohankumar/massview/pkg/geometry"
)

var (
	// ErrEmptyModel is returned when a file parses but contains no facets
	ErrEmptyModel = errors.New("model contains no triangles")
	// ErrUnsupportedFormat is returned for declared formats without an
	// implemented loader (STEP, Parasolid, NX Part)
	ErrUnsupportedFormat = errors.New("unsupported model format")
)

// Extensions accepted per declared file type. Only the mesh formats have a
// working load path; the CAD formats are declared for upload but fail with
// ErrUnsupportedFormat until a kernel is available.
var declaredExtensions = map[string]bool{
	"stl":  true,
	"step": false,
	"stp":  false,
	"x_t":  false,
	"x_b":  false,
	"prt":  false,
}

// Parse reads a model file from disk, choosing the loader by extension
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return Load(file, ext, name)
}

// Load reads a model from r with a declared extension. STL files are
// detected as ASCII or binary automatically.
func Load(r io.Reader, ext, name string) (*Model, error) {
	ext = strings.ToLower(ext)
	if ext == "stp" {
		ext = "step"
	}

	supported, declared := declaredExtensions[ext]
	if !declared {
		return nil, fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
	if !supported {
		return nil, fmt.Errorf("%w: no loader for %s files", ErrUnsupportedFormat, ext)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read model data: %w", err)
	}

	var model *Model
	if len(data) >= 5 && string(data[:5]) == "solid" {
		model, err = parseASCII(bytes.NewReader(data))
	} else {
		model, err = parseBinary(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}

	if model.TriangleCount() == 0 {
		return nil, ErrEmptyModel
	}
	if model.Name == "" {
		model.Name = name
	}
	return model, nil
}

// builder accumulates facets and dedups shared corner vertices so the
// resulting model is indexed
type builder struct {
	model   *Model
	indexOf map[geometry.Vector3]int
}

func newBuilder() *builder {
	return &builder{
		model:   NewModel(""),
		indexOf: make(map[geometry.Vector3]int),
	}
}

func (b *builder) vertex(v geometry.Vector3) int {
	if idx, ok := b.indexOf[v]; ok {
		return idx
	}
	idx := len(b.model.Vertices)
	b.model.Vertices = append(b.model.Vertices, v)
	b.indexOf[v] = idx
	return idx
}

func (b *builder) facet(v1, v2, v3 geometry.Vector3) {
	b.model.Faces = append(b.model.Faces, [3]int{b.vertex(v1), b.vertex(v2), b.vertex(v3)})
}

// parseASCII parses an ASCII STL stream
func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	b := newBuilder()

	var vertices []geometry.Vector3

	for scanner.Scan() {
		fields := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				b.model.Name = strings.Join(fields[1:], " ")
			}

		case "vertex":
			if len(fields) >= 4 {
				x, _ := strconv.ParseFloat(fields[1], 64)
				y, _ := strconv.ParseFloat(fields[2], 64)
				z, _ := strconv.ParseFloat(fields[3], 64)
				vertices = append(vertices, geometry.NewVector3(x, y, z))
			}

		case "endfacet":
			if len(vertices) == 3 {
				b.facet(vertices[0], vertices[1], vertices[2])
			}
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return b.model, nil
}

// parseBinary parses a binary STL stream
func parseBinary(reader io.Reader) (*Model, error) {
	b := newBuilder()

	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	b.model.Name = string(bytes.TrimRight(header, "\x00 "))

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	for i := uint32(0); i < triangleCount; i++ {
		// normal, three vertices, attribute byte count
		var facet struct {
			Normal     [3]float32
			V1, V2, V3 [3]float32
			Attr       uint16
		}
		if err := binary.Read(reader, binary.LittleEndian, &facet); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}

		b.facet(toVector3(facet.V1), toVector3(facet.V2), toVector3(facet.V3))
	}

	return b.model, nil
}

func toVector3(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}
