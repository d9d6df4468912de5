package analysis

import (
	"errors"
	"fmt"

	"github.com/msmohankumar/massview/pkg/material"
	"github.com/msmohankumar/massview/pkg/stl"
)

// ErrInfillOutOfRange is returned when the infill fraction is outside [0,1].
// Callers are expected to clamp UI input before calling; this layer rejects.
var ErrInfillOutOfRange = errors.New("infill fraction out of range [0,1]")

// Model files carry millimeter coordinates; measurements are reported in
// centimeters. The conversions are fixed.
const (
	mmPerCM  = 10.0
	mm2PerCM = 100.0
	mm3PerCM = 1000.0
)

// ModelMetrics contains the unit-converted measurements of a model
type ModelMetrics struct {
	FileSizeKB  float64 `json:"fileSizeKB"`
	Triangles   int     `json:"triangles"`
	WidthCM     float64 `json:"widthCM"`
	DepthCM     float64 `json:"depthCM"`
	HeightCM    float64 `json:"heightCM"`
	SurfaceCM2  float64 `json:"surfaceCM2"`
	VolumeCM3   float64 `json:"volumeCM3"`
	VertexCount int     `json:"vertexCount"`
}

// MassEstimate is one row of the per-material mass table
type MassEstimate struct {
	ID           int     `json:"id"`
	Material     string  `json:"material"`
	Density      float64 `json:"density"`
	MassAtInfill float64 `json:"massAtInfill"`
	MassAtFull   float64 `json:"massAtFull"`
}

// ComputeMetrics derives the display measurements for a model.
// fileSizeBytes is reported as KB alongside the geometric properties.
func ComputeMetrics(model *stl.Model, fileSizeBytes int64) ModelMetrics {
	size := model.BoundingBox().Size()
	return ModelMetrics{
		FileSizeKB:  float64(fileSizeBytes) / 1024.0,
		Triangles:   model.TriangleCount(),
		WidthCM:     size.X / mmPerCM,
		DepthCM:     size.Y / mmPerCM,
		HeightCM:    size.Z / mmPerCM,
		SurfaceCM2:  model.SurfaceArea() / mm2PerCM,
		VolumeCM3:   model.Volume() / mm3PerCM,
		VertexCount: model.VertexCount(),
	}
}

// MassTable produces one MassEstimate per catalog entry, in catalog order,
// with 1-based IDs. Mass at full is volume × density; infill is applied as
// a flat multiplier on top, which treats the volume as fully solid. A real
// lattice infill weighs differently, but the flat multiplier is the
// documented behavior.
func MassTable(volumeCM3, infill float64, catalog []material.Material) ([]MassEstimate, error) {
	if infill < 0 || infill > 1 {
		return nil, fmt.Errorf("%w: %g", ErrInfillOutOfRange, infill)
	}

	rows := make([]MassEstimate, 0, len(catalog))
	for i, mat := range catalog {
		massFull := volumeCM3 * mat.Density
		rows = append(rows, MassEstimate{
			ID:           i + 1,
			Material:     mat.Name,
			Density:      mat.Density,
			MassAtInfill: massFull * infill,
			MassAtFull:   massFull,
		})
	}
	return rows, nil
}
