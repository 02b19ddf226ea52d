package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/sortviz/internal/metrics"
)

type ExportData struct {
	Run   RunRecord        `json:"run"`
	Trace []metrics.Sample `json:"trace"`
}

// ExportJSON writes a run and its trace as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	rec, err := s.Load(runID)
	if err != nil {
		return err
	}
	trace, err := s.LoadTrace(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: *rec, Trace: trace})
}

// ExportCSV writes the trace with the run's algorithm on every row.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	rec, err := s.Load(runID)
	if err != nil {
		return err
	}
	trace, err := s.LoadTrace(runID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"algorithm", "sample", "comparisons", "swaps", "accesses"}); err != nil {
		return err
	}
	algo := rec.Algorithm.String()
	for _, t := range trace {
		row := []string{
			algo,
			strconv.FormatInt(t.Index, 10),
			strconv.FormatInt(t.Comparisons, 10),
			strconv.FormatInt(t.Swaps, 10),
			strconv.FormatInt(t.Accesses, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
