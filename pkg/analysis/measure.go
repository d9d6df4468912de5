package analysis

import (
	"errors"
	"fmt"

	"github.com/msmohankumar/massview/pkg/geometry"
	"github.com/msmohankumar/massview/pkg/stl"
)

// ErrVertexOutOfRange is returned when a measurement vertex index does not
// exist in the model
var ErrVertexOutOfRange = errors.New("vertex index out of range")

// MeasurementLine is a manual point-to-point measurement between two model
// vertices. Coordinates stay in model units (mm); the distance is in cm.
type MeasurementLine struct {
	A          geometry.Vector3 `json:"a"`
	B          geometry.Vector3 `json:"b"`
	DistanceCM float64          `json:"distanceCM"`
}

// MeasureBetweenVertices measures the straight-line distance between two
// vertices of the model. Equal indices are allowed and measure zero.
func MeasureBetweenVertices(model *stl.Model, i, j int) (MeasurementLine, error) {
	count := model.VertexCount()
	for _, idx := range []int{i, j} {
		if idx < 0 || idx >= count {
			return MeasurementLine{}, fmt.Errorf("%w: %d (model has %d vertices)", ErrVertexOutOfRange, idx, count)
		}
	}

	a := model.Vertices[i]
	b := model.Vertices[j]
	return MeasurementLine{
		A:          a,
		B:          b,
		DistanceCM: a.Distance(b) / mmPerCM,
	}, nil
}
