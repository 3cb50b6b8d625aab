package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/collide/internal/sim"
)

type BodyData struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
	R  float64 `json:"r"`
	M  float64 `json:"m"`
}

type ExportData struct {
	Preset   string             `json:"preset"`
	Strategy string             `json:"strategy"`
	Gravity  bool               `json:"gravity"`
	Dt       float64            `json:"dt"`
	Steps    int                `json:"steps"`
	Frames   []sim.FrameRecord  `json:"frames"`
	Final    []BodyData         `json:"final"`
	Metrics  map[string]float64 `json:"metrics"`
}

func newExportData(meta RunMetadata, result *sim.Result) ExportData {
	data := ExportData{
		Preset:   meta.Preset,
		Strategy: meta.Strategy,
		Gravity:  meta.Gravity,
		Dt:       meta.Dt,
		Steps:    result.StepsTaken,
		Frames:   result.Frames,
		Final:    make([]BodyData, len(result.Final)),
		Metrics:  result.Metrics,
	}
	for i, b := range result.Final {
		data.Final[i] = BodyData{X: b.Pos.X, Y: b.Pos.Y, VX: b.Vel.X, VY: b.Vel.Y, R: b.R, M: b.M}
	}
	return data
}

func ExportJSON(path string, meta RunMetadata, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, result)
}

// WriteJSON encodes the run to w; pass os.Stdout to print it.
func WriteJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(meta, result))
}

// WriteMetadata encodes a run's metadata to w.
func WriteMetadata(w io.Writer, meta *RunMetadata) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
