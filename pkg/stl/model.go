package stl

import (
	"math"

	"github.com/msmohankumar/massview/pkg/geometry"
)

// Model is an indexed triangle mesh. Vertices shared between facets are
// stored once; every face references three vertex indices, each of which
// is guaranteed in range by construction (see the parser).
type Model struct {
	Name     string
	Vertices []geometry.Vector3
	Faces    [][3]int
}

// NewModel creates a new empty model
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// VertexCount returns the number of distinct vertices in the model
func (m *Model) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangular faces in the model
func (m *Model) TriangleCount() int {
	return len(m.Faces)
}

// Triangle returns the triangle for face i
func (m *Model) Triangle(i int) geometry.Triangle {
	f := m.Faces[i]
	return geometry.NewTriangle(m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]])
}

// BoundingBox calculates the axis-aligned bounding box of the model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, v := range m.Vertices {
		bbox.Extend(v)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for i := range m.Faces {
		totalArea += m.Triangle(i).Area()
	}
	return totalArea
}

// Volume calculates the enclosed volume of the model by summing the signed
// volumes of the tetrahedra spanned by each face and the origin. The result
// is only meaningful for closed meshes; the sign of the winding is folded
// away so consistently inverted normals still yield a positive volume.
func (m *Model) Volume() float64 {
	signed := 0.0
	for _, f := range m.Faces {
		v1 := m.Vertices[f[0]]
		v2 := m.Vertices[f[1]]
		v3 := m.Vertices[f[2]]
		signed += v1.Dot(v2.Cross(v3)) / 6.0
	}
	return math.Abs(signed)
}

// Centroid returns the area-weighted centroid of the model surface
func (m *Model) Centroid() geometry.Vector3 {
	var weighted geometry.Vector3
	totalArea := 0.0
	for i := range m.Faces {
		tri := m.Triangle(i)
		area := tri.Area()
		weighted = weighted.Add(tri.Center().Mul(area))
		totalArea += area
	}
	if totalArea == 0 {
		return geometry.Vector3{}
	}
	return weighted.Mul(1.0 / totalArea)
}

// VertexDefects returns the angular defect at every vertex: 2π minus the
// sum of the interior angles of the incident faces. Flat regions are near
// zero, convex corners positive, saddles negative. Used as a cheap
// curvature stand-in for color mapping.
func (m *Model) VertexDefects() []float64 {
	defects := make([]float64, len(m.Vertices))
	for i := range defects {
		defects[i] = 2 * math.Pi
	}
	for i, f := range m.Faces {
		tri := m.Triangle(i)
		for corner := 0; corner < 3; corner++ {
			defects[f[corner]] -= tri.AngleAt(corner)
		}
	}
	return defects
}
