package storage

import (
	"encoding/json"
	"io"
)

type runExport struct {
	RunMetadata
	Distances []float64 `json:"distances,omitempty"`
}

// ExportJSON writes a run's metadata, optionally with its per-step
// distances, as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, distances []float64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runExport{RunMetadata: *meta, Distances: distances})
}
