package geometry

import "math"

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(v1, v2, v3 Vector3) Triangle {
	return Triangle{V1: v1, V2: v2, V3: v3}
}

// Normal computes the unit normal vector of the triangle
func (t Triangle) Normal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Length() / 2.0
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}

// AngleAt returns the interior angle at the given corner (0, 1 or 2) in radians.
func (t Triangle) AngleAt(corner int) float64 {
	var at, b, c Vector3
	switch corner {
	case 0:
		at, b, c = t.V1, t.V2, t.V3
	case 1:
		at, b, c = t.V2, t.V3, t.V1
	default:
		at, b, c = t.V3, t.V1, t.V2
	}

	e1 := b.Sub(at).Normalize()
	e2 := c.Sub(at).Normalize()

	// Clamp against rounding before acos
	d := e1.Dot(e2)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d)
}
