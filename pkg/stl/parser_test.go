package stl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

// asciiSTL renders a model as an ASCII STL document
func asciiSTL(m *Model) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "solid %s\n", m.Name)
	for i := range m.Faces {
		tri := m.Triangle(i)
		n := tri.Normal()
		fmt.Fprintf(&sb, "facet normal %g %g %g\n", n.X, n.Y, n.Z)
		sb.WriteString("outer loop\n")
		for _, v := range []struct{ X, Y, Z float64 }{
			{tri.V1.X, tri.V1.Y, tri.V1.Z},
			{tri.V2.X, tri.V2.Y, tri.V2.Z},
			{tri.V3.X, tri.V3.Y, tri.V3.Z},
		} {
			fmt.Fprintf(&sb, "vertex %g %g %g\n", v.X, v.Y, v.Z)
		}
		sb.WriteString("endloop\nendfacet\n")
	}
	fmt.Fprintf(&sb, "endsolid %s\n", m.Name)
	return sb.String()
}

// binarySTL renders a model as a binary STL document
func binarySTL(m *Model) []byte {
	var buf bytes.Buffer
	header := make([]byte, 80)
	copy(header, m.Name)
	buf.Write(header)
	binary.Write(&buf, binary.LittleEndian, uint32(m.TriangleCount()))

	for i := range m.Faces {
		tri := m.Triangle(i)
		n := tri.Normal()
		for _, v := range [][3]float64{
			{n.X, n.Y, n.Z},
			{tri.V1.X, tri.V1.Y, tri.V1.Z},
			{tri.V2.X, tri.V2.Y, tri.V2.Z},
			{tri.V3.X, tri.V3.Y, tri.V3.Z},
		} {
			binary.Write(&buf, binary.LittleEndian, [3]float32{float32(v[0]), float32(v[1]), float32(v[2])})
		}
		binary.Write(&buf, binary.LittleEndian, uint16(0))
	}
	return buf.Bytes()
}

func TestLoadASCIIDedupsVertices(t *testing.T) {
	doc := asciiSTL(cubeModel(10))

	model, err := Load(strings.NewReader(doc), "stl", "cube")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if model.VertexCount() != 8 {
		t.Errorf("VertexCount failed: expected 8 deduped vertices, got %d", model.VertexCount())
	}
	if model.TriangleCount() != 12 {
		t.Errorf("TriangleCount failed: expected 12, got %d", model.TriangleCount())
	}
	if model.Name != "cube" {
		t.Errorf("Name failed: expected cube, got %q", model.Name)
	}

	for fi, f := range model.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= model.VertexCount() {
				t.Fatalf("Face %d references out-of-range vertex %d", fi, idx)
			}
		}
	}
}

func TestLoadBinary(t *testing.T) {
	doc := binarySTL(cubeModel(10))

	model, err := Load(bytes.NewReader(doc), "stl", "cube")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if model.VertexCount() != 8 {
		t.Errorf("VertexCount failed: expected 8, got %d", model.VertexCount())
	}
	if model.TriangleCount() != 12 {
		t.Errorf("TriangleCount failed: expected 12, got %d", model.TriangleCount())
	}

	volume := model.Volume()
	if math.Abs(volume-1000.0) > 1e-6 {
		t.Errorf("Volume after binary round failed: expected 1000, got %v", volume)
	}
}

func TestLoadASCIIBinaryAgree(t *testing.T) {
	cube := cubeModel(10)

	fromASCII, err := Load(strings.NewReader(asciiSTL(cube)), "stl", "cube")
	if err != nil {
		t.Fatalf("ASCII load failed: %v", err)
	}
	fromBinary, err := Load(bytes.NewReader(binarySTL(cube)), "stl", "cube")
	if err != nil {
		t.Fatalf("Binary load failed: %v", err)
	}

	if math.Abs(fromASCII.SurfaceArea()-fromBinary.SurfaceArea()) > 1e-6 {
		t.Errorf("Surface areas disagree: ascii %v, binary %v", fromASCII.SurfaceArea(), fromBinary.SurfaceArea())
	}
	if math.Abs(fromASCII.Volume()-fromBinary.Volume()) > 1e-6 {
		t.Errorf("Volumes disagree: ascii %v, binary %v", fromASCII.Volume(), fromBinary.Volume())
	}
}

func TestLoadDeclaredButUnimplementedFormats(t *testing.T) {
	for _, ext := range []string{"step", "stp", "x_t", "x_b", "prt"} {
		_, err := Load(strings.NewReader("not a mesh"), ext, "part")
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Load(%q) failed: expected ErrUnsupportedFormat, got %v", ext, err)
		}
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	_, err := Load(strings.NewReader("whatever"), "obj", "thing")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load(obj) failed: expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadEmptyModel(t *testing.T) {
	doc := "solid empty\nendsolid empty\n"

	_, err := Load(strings.NewReader(doc), "stl", "empty")
	if !errors.Is(err, ErrEmptyModel) {
		t.Errorf("Load of empty solid failed: expected ErrEmptyModel, got %v", err)
	}
}

func TestLoadTruncatedBinary(t *testing.T) {
	doc := binarySTL(cubeModel(10))

	_, err := Load(bytes.NewReader(doc[:100]), "stl", "cube")
	if err == nil {
		t.Error("Load of truncated binary should fail")
	}
}
