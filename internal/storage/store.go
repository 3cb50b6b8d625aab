package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/collide/internal/arena"
	"github.com/san-kum/collide/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	bodiesFile   = "bodies.csv"
)

var ErrMalformedRow = errors.New("storage: malformed csv row")

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
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Frames    int                `json:"frames"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Strategy  string             `json:"strategy"`
	Gravity   bool               `json:"gravity"`
	Edge      string             `json:"edge"`
	Bodies    int                `json:"bodies"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewMetadata fills the run settings from cfg; ID, Timestamp and Metrics
// are set by Save.
func NewMetadata(preset string, seed int64, frames int, cfg arena.Config) RunMetadata {
	return RunMetadata{
		Preset:   preset,
		Seed:     seed,
		Dt:       cfg.Dt,
		Frames:   frames,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Strategy: cfg.Strategy.String(),
		Gravity:  cfg.Gravity,
		Edge:     cfg.Edge.String(),
	}
}

func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}
	runID, runDir, err := s.claimDir(fmt.Sprintf("%s_%d_s%d", meta.Preset, now.Unix(), meta.Seed))
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Bodies = len(result.Final)
	meta.Metrics = result.Metrics

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), result.Frames); err != nil {
		return "", err
	}
	if err := writeBodies(filepath.Join(runDir, bodiesFile), result.Final); err != nil {
		return "", err
	}

	return runID, nil
}

// claimDir creates a fresh run directory named base, or base_2, base_3, ...
// when runs with the same preset and seed land in the same second.
func (s *Store) claimDir(base string) (string, string, error) {
	for n := 1; ; n++ {
		id := base
		if n > 1 {
			id = fmt.Sprintf("%s_%d", base, n)
		}
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFrames(path string, frames []sim.FrameRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"frame", "time", "kinetic", "px", "py", "collisions", "edge_hits", "bodies"}); err != nil {
		return err
	}
	for _, fr := range frames {
		row := []string{
			strconv.Itoa(fr.Frame),
			formatFloat(fr.Time),
			formatFloat(fr.Kinetic),
			formatFloat(fr.Px),
			formatFloat(fr.Py),
			strconv.Itoa(fr.Collisions),
			strconv.Itoa(fr.EdgeHits),
			strconv.Itoa(fr.Bodies),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeBodies(path string, bodies []arena.Body) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"x", "y", "vx", "vy", "ax", "ay", "r", "m"}); err != nil {
		return err
	}
	for _, b := range bodies {
		row := []string{
			formatFloat(b.Pos.X), formatFloat(b.Pos.Y),
			formatFloat(b.Vel.X), formatFloat(b.Vel.Y),
			formatFloat(b.Acc.X), formatFloat(b.Acc.Y),
			formatFloat(b.R), formatFloat(b.M),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]sim.FrameRecord, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}

	frames := make([]sim.FrameRecord, 0, len(records))
	for i, rec := range records {
		if len(rec) != 8 {
			return nil, fmt.Errorf("%w: %s line %d", ErrMalformedRow, framesFile, i+2)
		}
		ints, err := parseInts(rec[0], rec[5], rec[6], rec[7])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
		}
		floats, err := parseFloats(rec[1:5])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
		}
		frames = append(frames, sim.FrameRecord{
			Frame:      ints[0],
			Time:       floats[0],
			Kinetic:    floats[1],
			Px:         floats[2],
			Py:         floats[3],
			Collisions: ints[1],
			EdgeHits:   ints[2],
			Bodies:     ints[3],
		})
	}
	return frames, nil
}

func (s *Store) LoadBodies(runID string) ([]arena.Body, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, bodiesFile))
	if err != nil {
		return nil, err
	}

	bodies := make([]arena.Body, 0, len(records))
	for i, rec := range records {
		if len(rec) != 8 {
			return nil, fmt.Errorf("%w: %s line %d", ErrMalformedRow, bodiesFile, i+2)
		}
		v, err := parseFloats(rec)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", bodiesFile, i+2, err)
		}
		bodies = append(bodies, arena.Body{
			Pos: r2.Vec{X: v[0], Y: v[1]},
			Vel: r2.Vec{X: v[2], Y: v[3]},
			Acc: r2.Vec{X: v[4], Y: v[5]},
			R:   v[6],
			M:   v[7],
		})
	}
	return bodies, nil
}

// readCSV returns every record after the header.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseInts(fields ...string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
