package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/colorfield/internal/anim"
	"github.com/san-kum/colorfield/internal/engine"
	"github.com/san-kum/colorfield/internal/render"
)

// Store keeps one directory per run under a base data directory.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Engine       string             `json:"engine"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         int64              `json:"seed"`
	Width        int                `json:"width"`
	Height       int                `json:"height"`
	Neighborhood string             `json:"neighborhood"`
	Steps        int                `json:"steps"`
	Jumps        int                `json:"jumps"`
	Snapshots    int                `json:"snapshots"`
	Elapsed      float64            `json:"elapsed_seconds"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes the run artifacts: metadata.json, placements.csv,
// image.png and, when the run recorded snapshots, anim.png. It returns
// the run id.
func (s *Store) Save(engineName string, cfg engine.Config, res *engine.Result, metricVals map[string]float64, elapsed time.Duration) (string, error) {
	// Nanosecond resolution keeps back-to-back runs of the same engine
	// from landing in the same directory.
	runID := fmt.Sprintf("%s_%d", engineName, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Engine:       engineName,
		Timestamp:    time.Now(),
		Seed:         cfg.Seed,
		Width:        cfg.Width,
		Height:       cfg.Height,
		Neighborhood: cfg.Neighborhood.String(),
		Steps:        res.Steps,
		Jumps:        res.Jumps,
		Snapshots:    len(res.Snapshots),
		Elapsed:      elapsed.Seconds(),
		Metrics:      metricVals,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.savePlacements(runDir, res); err != nil {
		return "", err
	}

	if err := render.SavePNG(render.Image(res.Grid), filepath.Join(runDir, "image.png")); err != nil {
		return "", err
	}

	if len(res.Snapshots) > 0 {
		if err := anim.Save(filepath.Join(runDir, "anim.png"), res.Snapshots, 1, anim.DefaultDelay); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) savePlacements(runDir string, res *engine.Result) error {
	f, err := os.Create(filepath.Join(runDir, "placements.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"step", "row", "col", "r", "g", "b", "dist"}); err != nil {
		return err
	}

	for _, p := range res.Placements {
		row, col := res.Grid.Coords(p.Cell)
		rec := []string{
			strconv.Itoa(p.Step),
			strconv.Itoa(row),
			strconv.Itoa(col),
			strconv.Itoa(int(p.Color.R)),
			strconv.Itoa(int(p.Color.G)),
			strconv.Itoa(int(p.Color.B)),
			strconv.FormatFloat(p.Dist, 'f', 6, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadDistances reads the per-step selection distances back from
// placements.csv, in step order.
func (s *Store) LoadDistances(runID string) ([]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "placements.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []float64{}, nil
	}

	dists := make([]float64, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 7 {
			continue
		}
		d, err := strconv.ParseFloat(rec[6], 64)
		if err != nil {
			continue
		}
		dists = append(dists, d)
	}
	return dists, nil
}
