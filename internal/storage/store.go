package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/wlldxn/orbitlab/internal/sim"
)

// Store persists completed runs, one directory per run: metadata.json with
// the run parameters and final metrics, bodies.csv with the sampled body
// states.
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
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	G         float64            `json:"g"`
	Ticks     int                `json:"ticks"`
	Bodies    int                `json:"bodies"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Row is one body at one retained tick.
type Row struct {
	Tick      int
	ID        int
	X, Y      float64
	VX, VY    float64
	Ecc       float64
	SemiMajor float64
	SemiMinor float64
}

var csvHeader = []string{"tick", "id", "x", "y", "vx", "vy", "ecc", "semi_major", "semi_minor"}

// Save writes a run directory and returns its ID.
func (s *Store) Save(scenario string, seed int64, g float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		Seed:      seed,
		G:         g,
		Ticks:     result.TicksRun,
		Bodies:    result.FinalLen,
		Metrics:   result.Metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, "bodies.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}

	for _, sample := range result.Samples {
		for _, b := range sample.Bodies {
			row := []string{
				strconv.Itoa(sample.Tick),
				strconv.Itoa(int(b.ID)),
				formatFloat(b.Pos.X),
				formatFloat(b.Pos.Y),
				formatFloat(b.Vel.X),
				formatFloat(b.Vel.Y),
				formatFloat(b.Ecc),
				formatFloat(b.SemiMajor),
				formatFloat(b.SemiMinor),
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}

	return runID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
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

// LoadRows reads back the sampled body states of a run.
func (s *Store) LoadRows(runID string) ([]Row, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "bodies.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Row{}, nil
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(csvHeader) {
			continue
		}
		tick, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		id, err := strconv.Atoi(record[1])
		if err != nil {
			continue
		}

		vals := make([]float64, 7)
		ok := true
		for i := range vals {
			v, err := strconv.ParseFloat(record[i+2], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}

		rows = append(rows, Row{
			Tick: tick, ID: id,
			X: vals[0], Y: vals[1],
			VX: vals[2], VY: vals[3],
			Ecc: vals[4], SemiMajor: vals[5], SemiMinor: vals[6],
		})
	}

	return rows, nil
}
