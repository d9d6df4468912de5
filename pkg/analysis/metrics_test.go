package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/msmohankumar/massview/pkg/geometry"
	"github.com/msmohankumar/massview/pkg/material"
	"github.com/msmohankumar/massview/pkg/stl"
)

// cubeModel builds an axis-aligned cube [0,edge]³ in mm
func cubeModel(edge float64) *stl.Model {
	e := edge
	m := stl.NewModel("cube")
	m.Vertices = []geometry.Vector3{
		{X: 0, Y: 0, Z: 0}, {X: e, Y: 0, Z: 0}, {X: e, Y: e, Z: 0}, {X: 0, Y: e, Z: 0},
		{X: 0, Y: 0, Z: e}, {X: e, Y: 0, Z: e}, {X: e, Y: e, Z: e}, {X: 0, Y: e, Z: e},
	}
	m.Faces = [][3]int{
		{0, 2, 1}, {0, 3, 2},
		{4, 5, 6}, {4, 6, 7},
		{0, 1, 5}, {0, 5, 4},
		{2, 3, 7}, {2, 7, 6},
		{0, 4, 7}, {0, 7, 3},
		{1, 2, 6}, {1, 6, 5},
	}
	return m
}

func TestComputeMetricsCube(t *testing.T) {
	metrics := ComputeMetrics(cubeModel(10), 2048)

	if math.Abs(metrics.FileSizeKB-2.0) > 1e-10 {
		t.Errorf("FileSizeKB failed: expected 2.0, got %v", metrics.FileSizeKB)
	}
	if metrics.Triangles != 12 {
		t.Errorf("Triangles failed: expected 12, got %d", metrics.Triangles)
	}
	for name, got := range map[string]float64{
		"width":  metrics.WidthCM,
		"depth":  metrics.DepthCM,
		"height": metrics.HeightCM,
	} {
		if math.Abs(got-1.0) > 1e-10 {
			t.Errorf("%s failed: expected 1.0 cm, got %v", name, got)
		}
	}
	if math.Abs(metrics.SurfaceCM2-6.0) > 1e-10 {
		t.Errorf("SurfaceCM2 failed: expected 6.0, got %v", metrics.SurfaceCM2)
	}
	if math.Abs(metrics.VolumeCM3-1.0) > 1e-10 {
		t.Errorf("VolumeCM3 failed: expected 1.0, got %v", metrics.VolumeCM3)
	}
}

func TestUnitConversionsInvertible(t *testing.T) {
	metrics := ComputeMetrics(cubeModel(10), 0)

	if math.Abs(metrics.WidthCM*mmPerCM-10.0) > 1e-10 {
		t.Errorf("Length conversion not invertible: got %v mm", metrics.WidthCM*mmPerCM)
	}
	if math.Abs(metrics.SurfaceCM2*mm2PerCM-600.0) > 1e-9 {
		t.Errorf("Area conversion not invertible: got %v mm²", metrics.SurfaceCM2*mm2PerCM)
	}
	if math.Abs(metrics.VolumeCM3*mm3PerCM-1000.0) > 1e-9 {
		t.Errorf("Volume conversion not invertible: got %v mm³", metrics.VolumeCM3*mm3PerCM)
	}
}

func TestMassTablePLACube(t *testing.T) {
	// 10 mm cube = 1 cm³; PLA density 1.250 g/cm³
	rows, err := MassTable(1.0, 1.0, material.Catalog())
	if err != nil {
		t.Fatalf("MassTable failed: %v", err)
	}

	if rows[0].Material != "PLA" {
		t.Fatalf("First row failed: expected PLA, got %s", rows[0].Material)
	}
	if math.Abs(rows[0].MassAtFull-1.250) > 1e-10 {
		t.Errorf("PLA mass at 100%% failed: expected 1.250, got %v", rows[0].MassAtFull)
	}

	rows, err = MassTable(1.0, 0.5, material.Catalog())
	if err != nil {
		t.Fatalf("MassTable failed: %v", err)
	}
	if math.Abs(rows[0].MassAtInfill-0.625) > 1e-10 {
		t.Errorf("PLA mass at 50%% failed: expected 0.625, got %v", rows[0].MassAtInfill)
	}
}

func TestMassTableShape(t *testing.T) {
	catalog := material.Catalog()
	rows, err := MassTable(3.7, 0.35, catalog)
	if err != nil {
		t.Fatalf("MassTable failed: %v", err)
	}

	if len(rows) != 20 {
		t.Fatalf("Row count failed: expected 20, got %d", len(rows))
	}
	for i, row := range rows {
		if row.ID != i+1 {
			t.Errorf("Row %d ID failed: expected %d, got %d", i, i+1, row.ID)
		}
		if row.Material != catalog[i].Name {
			t.Errorf("Row %d order failed: expected %s, got %s", i, catalog[i].Name, row.Material)
		}
	}
}

func TestMassTableLinearity(t *testing.T) {
	catalog := material.Catalog()
	volume := 12.5

	for _, infill := range []float64{0, 0.25, 0.5, 1} {
		rows, err := MassTable(volume, infill, catalog)
		if err != nil {
			t.Fatalf("MassTable(infill=%v) failed: %v", infill, err)
		}
		for _, row := range rows {
			expectedFull := volume * row.Density
			if math.Abs(row.MassAtFull-expectedFull) > 1e-9 {
				t.Errorf("%s mass at full failed: expected %v, got %v", row.Material, expectedFull, row.MassAtFull)
			}
			if math.Abs(row.MassAtInfill-expectedFull*infill) > 1e-9 {
				t.Errorf("%s mass at infill %v failed: expected %v, got %v",
					row.Material, infill, expectedFull*infill, row.MassAtInfill)
			}
		}
	}
}

func TestMassTableZeroVolume(t *testing.T) {
	rows, err := MassTable(0, 1.0, material.Catalog())
	if err != nil {
		t.Fatalf("MassTable failed: %v", err)
	}
	for _, row := range rows {
		if row.MassAtFull != 0 || row.MassAtInfill != 0 {
			t.Errorf("%s mass at zero volume should be 0, got %v / %v", row.Material, row.MassAtInfill, row.MassAtFull)
		}
	}
}

func TestMassTableRejectsInfillOutOfRange(t *testing.T) {
	for _, infill := range []float64{-0.1, 1.01, 2} {
		_, err := MassTable(1.0, infill, material.Catalog())
		if !errors.Is(err, ErrInfillOutOfRange) {
			t.Errorf("MassTable(infill=%v) failed: expected ErrInfillOutOfRange, got %v", infill, err)
		}
	}
}
