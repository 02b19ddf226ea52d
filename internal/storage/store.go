package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/sortviz/internal/controller"
	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/metrics"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Dir() string { return s.baseDir }

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunRecord describes a saved run. The sorted array itself is not kept; the
// seed and shape reproduce the input.
type RunRecord struct {
	ID        string             `json:"id"`
	Algorithm engine.Algorithm   `json:"algorithm"`
	Timestamp time.Time          `json:"timestamp"`
	Size      int                `json:"size"`
	Shape     string             `json:"shape"`
	Seed      int64              `json:"seed"`
	Speed     int                `json:"speed"`
	Stats     engine.Stats       `json:"stats"`
	Steps     int                `json:"steps"`
	ElapsedMS float64            `json:"elapsed_ms"`
	Completed bool               `json:"completed"`
	Error     string             `json:"error,omitempty"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// NewRecord fills a record from a controller result.
func NewRecord(res controller.Result, shape string, seed int64, speed int) RunRecord {
	rec := RunRecord{
		Algorithm: res.Algorithm,
		Size:      res.Size,
		Shape:     shape,
		Seed:      seed,
		Speed:     speed,
		Stats:     res.Stats,
		Steps:     res.Steps,
		ElapsedMS: float64(res.Elapsed.Microseconds()) / 1000,
		Completed: res.Completed,
	}
	if res.Err != nil {
		rec.Error = res.Err.Error()
	}
	return rec
}

// Save writes the record and its counter trace into a new run directory and
// returns the run id.
func (s *Store) Save(rec RunRecord, trace []metrics.Sample) (string, error) {
	now := time.Now()
	if rec.Timestamp.IsZero() {
		rec.Timestamp = now
	}
	rec.ID = fmt.Sprintf("%s_%d", rec.Algorithm, now.UnixNano())
	runDir := filepath.Join(s.baseDir, rec.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), rec); err != nil {
		return "", err
	}
	if err := writeTrace(filepath.Join(runDir, traceFile), trace); err != nil {
		return "", err
	}
	return rec.ID, nil
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

func writeTrace(path string, trace []metrics.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"sample", "comparisons", "swaps", "accesses"}); err != nil {
		return err
	}
	for _, s := range trace {
		row := []string{
			strconv.FormatInt(s.Index, 10),
			strconv.FormatInt(s.Comparisons, 10),
			strconv.FormatInt(s.Swaps, 10),
			strconv.FormatInt(s.Accesses, 10),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns saved runs, newest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunRecord, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunRecord{}, nil
		}
		return nil, err
	}

	runs := make([]RunRecord, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rec, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *rec)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var rec RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", runID, err)
	}
	return &rec, nil
}

// Latest returns the most recent run.
func (s *Store) Latest() (*RunRecord, error) {
	runs, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return &runs[0], nil
}

func (s *Store) LoadTrace(runID string) ([]metrics.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
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
		return []metrics.Sample{}, nil
	}

	samples := make([]metrics.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		var vals [4]int64
		ok := true
		for j := range vals {
			v, err := strconv.ParseInt(record[j], 10, 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		samples = append(samples, metrics.Sample{
			Index: vals[0],
			Stats: engine.Stats{Comparisons: vals[1], Swaps: vals[2], Accesses: vals[3]},
		})
	}
	return samples, nil
}
