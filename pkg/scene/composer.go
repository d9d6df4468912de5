// Package scene assembles renderable scene descriptions for the browser
// viewer. The trace structs mirror the plotly mesh3d/scatter3d attribute
// names so the page can hand them to the plotting library unchanged.
package scene

import (
	"errors"
	"fmt"

	"github.com/msmohankumar/massview/pkg/analysis"
	"github.com/msmohankumar/massview/pkg/stl"
)

// ErrInvalidScene is returned when composing a scene from an empty or
// degenerate model
var ErrInvalidScene = errors.New("cannot compose scene from empty model")

// ColorMode selects the per-vertex scalar used to color the surface.
// Purely cosmetic; none of the modes claims physical meaning.
type ColorMode string

const (
	// ColorByHeight colors by the vertical (Z) coordinate
	ColorByHeight ColorMode = "z"
	// ColorByCurvature colors by per-vertex angular defect
	ColorByCurvature ColorMode = "curvature"
	// ColorByCentroidDistance colors by distance to the surface centroid
	ColorByCentroidDistance ColorMode = "distance"
)

// ParseColorMode maps a wire value to a ColorMode, falling back to height
// coloring for anything unrecognized
func ParseColorMode(s string) ColorMode {
	switch ColorMode(s) {
	case ColorByCurvature:
		return ColorByCurvature
	case ColorByCentroidDistance:
		return ColorByCentroidDistance
	default:
		return ColorByHeight
	}
}

// MeshTrace is the colored surface of the model
type MeshTrace struct {
	Type        string    `json:"type"`
	X           []float64 `json:"x"`
	Y           []float64 `json:"y"`
	Z           []float64 `json:"z"`
	I           []int     `json:"i"`
	J           []int     `json:"j"`
	K           []int     `json:"k"`
	Intensity   []float64 `json:"intensity"`
	Colorscale  string    `json:"colorscale"`
	Opacity     float64   `json:"opacity"`
	FlatShading bool      `json:"flatshading"`
}

// LineTrace is a two-point measurement line with a distance label at its
// first endpoint
type LineTrace struct {
	Type         string    `json:"type"`
	Mode         string    `json:"mode"`
	X            []float64 `json:"x"`
	Y            []float64 `json:"y"`
	Z            []float64 `json:"z"`
	Text         []string  `json:"text"`
	TextPosition string    `json:"textposition"`
	Name         string    `json:"name"`
}

// Annotation is the material/mass caption shown over the scene
type Annotation struct {
	Material string `json:"material"`
	MassText string `json:"massText"`
}

// Scene is one complete renderable view: surface, measurement overlays and
// caption. Scenes are rebuilt from scratch on every interaction, never
// mutated in place.
type Scene struct {
	Mesh       MeshTrace   `json:"mesh"`
	Lines      []LineTrace `json:"lines"`
	Annotation Annotation  `json:"annotation"`
}

// Compose builds a scene for a model. lines may be nil for no overlays;
// every call gets its own freshly built slice in the result.
func Compose(model *stl.Model, mode ColorMode, materialName string, massGrams float64, lines []analysis.MeasurementLine) (*Scene, error) {
	if model == nil || model.TriangleCount() == 0 || model.VertexCount() == 0 {
		return nil, ErrInvalidScene
	}

	mesh := MeshTrace{
		Type:        "mesh3d",
		X:           make([]float64, model.VertexCount()),
		Y:           make([]float64, model.VertexCount()),
		Z:           make([]float64, model.VertexCount()),
		I:           make([]int, model.TriangleCount()),
		J:           make([]int, model.TriangleCount()),
		K:           make([]int, model.TriangleCount()),
		Intensity:   intensityField(model, mode),
		Colorscale:  "Jet",
		Opacity:     1.0,
		FlatShading: true,
	}
	for i, v := range model.Vertices {
		mesh.X[i] = v.X
		mesh.Y[i] = v.Y
		mesh.Z[i] = v.Z
	}
	for i, f := range model.Faces {
		mesh.I[i] = f[0]
		mesh.J[i] = f[1]
		mesh.K[i] = f[2]
	}

	traces := make([]LineTrace, 0, len(lines))
	for _, line := range lines {
		label := fmt.Sprintf("%.2f cm", line.DistanceCM)
		traces = append(traces, LineTrace{
			Type:         "scatter3d",
			Mode:         "lines+markers+text",
			X:            []float64{line.A.X, line.B.X},
			Y:            []float64{line.A.Y, line.B.Y},
			Z:            []float64{line.A.Z, line.B.Z},
			Text:         []string{label, ""},
			TextPosition: "top center",
			Name:         "Distance: " + label,
		})
	}

	return &Scene{
		Mesh:  mesh,
		Lines: traces,
		Annotation: Annotation{
			Material: materialName,
			MassText: fmt.Sprintf("%.2f g", massGrams),
		},
	}, nil
}

func intensityField(model *stl.Model, mode ColorMode) []float64 {
	switch mode {
	case ColorByCurvature:
		return model.VertexDefects()

	case ColorByCentroidDistance:
		center := model.Centroid()
		field := make([]float64, model.VertexCount())
		for i, v := range model.Vertices {
			field[i] = v.Distance(center)
		}
		return field

	default:
		field := make([]float64, model.VertexCount())
		for i, v := range model.Vertices {
			field[i] = v.Z
		}
		return field
	}
}
