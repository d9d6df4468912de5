package app

import (
	"github.com/msmohankumar/massview/pkg/analysis"
	"github.com/msmohankumar/massview/pkg/scene"
	"github.com/msmohankumar/massview/pkg/stl"
)

// Session is the server-side state for one loaded model file. The model
// and its metrics are computed once at load time; everything else is
// recomputed from scratch on each interaction.
type Session struct {
	Name      string
	Model     *stl.Model
	SizeBytes int64
	Metrics   analysis.ModelMetrics

	// Path is set for models served from local disk (watch mode) and
	// empty for uploads
	Path string
}

// Interaction is one UI state change for one file: slider, selection or
// measurement index edit. The server answers every interaction with a
// fully recomputed Payload.
type Interaction struct {
	File          string `json:"file"`
	InfillPercent int    `json:"infillPercent"`
	Material      string `json:"material"`
	ColorBy       string `json:"colorBy"`
	V1            int    `json:"v1"`
	V2            int    `json:"v2"`
}

// Payload is everything the page needs to render one file panel
type Payload struct {
	File        string                  `json:"file"`
	VertexCount int                     `json:"vertexCount"`
	Metrics     analysis.ModelMetrics   `json:"metrics"`
	MassRows    []analysis.MassEstimate `json:"massRows"`
	DistanceCM  float64                 `json:"distanceCM"`
	Scene       *scene.Scene            `json:"scene,omitempty"`
	Error       string                  `json:"error,omitempty"`
}

// defaultInteraction is the state a freshly loaded file starts in: full
// infill, first catalog material, height coloring, measuring between the
// first two vertices
func (s *Server) defaultInteraction(sess *Session, infillPercent int) Interaction {
	v2 := 1
	if sess.Model.VertexCount() < 2 {
		v2 = 0
	}
	return Interaction{
		File:          sess.Name,
		InfillPercent: infillPercent,
		Material:      s.catalog[0].Name,
		ColorBy:       string(scene.ColorByHeight),
		V1:            0,
		V2:            v2,
	}
}

// compute runs the full recomputation for one interaction. Errors are
// carried in the payload so the page can show them in place; nothing is
// retried or swallowed.
func (s *Server) compute(sess *Session, in Interaction) Payload {
	p := Payload{
		File:        sess.Name,
		VertexCount: sess.Model.VertexCount(),
		Metrics:     sess.Metrics,
	}

	infill := float64(in.InfillPercent) / 100.0
	rows, err := analysis.MassTable(sess.Metrics.VolumeCM3, infill, s.catalog)
	if err != nil {
		p.Error = err.Error()
		return p
	}
	p.MassRows = rows

	// The annotation shows the selected material's mass at 100% infill
	materialName := rows[0].Material
	massFull := rows[0].MassAtFull
	for _, row := range rows {
		if row.Material == in.Material {
			materialName = row.Material
			massFull = row.MassAtFull
			break
		}
	}

	line, err := analysis.MeasureBetweenVertices(sess.Model, in.V1, in.V2)
	if err != nil {
		p.Error = err.Error()
		return p
	}
	p.DistanceCM = line.DistanceCM

	sc, err := scene.Compose(sess.Model, scene.ParseColorMode(in.ColorBy), materialName, massFull,
		[]analysis.MeasurementLine{line})
	if err != nil {
		p.Error = err.Error()
		return p
	}
	p.Scene = sc

	return p
}
