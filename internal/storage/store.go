package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/whatif/internal/datatable"
	"github.com/san-kum/whatif/internal/experiment"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type TableMeta struct {
	Name    string   `json:"name"`
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
	Rows    int      `json:"rows"`
	File    string   `json:"file"`
}

type SeekRecord struct {
	Name          string  `json:"name"`
	Output        string  `json:"output"`
	Target        float64 `json:"target"`
	Input         string  `json:"input"`
	Lower         float64 `json:"lower"`
	Upper         float64 `json:"upper"`
	MaxIterations int     `json:"max_iterations"`
	Tolerance     float64 `json:"tolerance"`
	Value         float64 `json:"value"`
	Residual      float64 `json:"residual"`
	Iterations    int     `json:"iterations"`
	Converged     bool    `json:"converged"`
}

type RunMetadata struct {
	ID        string       `json:"id"`
	Model     string       `json:"model"`
	Timestamp time.Time    `json:"timestamp"`
	Params    Values       `json:"params"`
	Outputs   Values       `json:"outputs"`
	Tables    []TableMeta  `json:"tables"`
	GoalSeeks []SeekRecord `json:"goal_seeks"`
}

// Table returns the metadata of the named table.
func (m *RunMetadata) Table(name string) (*TableMeta, error) {
	for i := range m.Tables {
		if m.Tables[i].Name == name {
			return &m.Tables[i], nil
		}
	}
	return nil, fmt.Errorf("run %s has no table %q", m.ID, name)
}

func newRunID(model string) string {
	return fmt.Sprintf("%s_%s", model, uuid.Must(uuid.NewV7()).String())
}

// Save writes metadata.json and one CSV per table under a new run directory.
func (s *Store) Save(report *experiment.Report) (string, error) {
	runID := newRunID(report.Model)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeRun(runDir, runID, report); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir, runID string, report *experiment.Report) error {
	meta := RunMetadata{
		ID:        runID,
		Model:     report.Model,
		Timestamp: time.Now(),
		Params:    Values(report.Params),
		Outputs:   report.Outputs,
		Tables:    make([]TableMeta, 0, len(report.Tables)),
		GoalSeeks: make([]SeekRecord, 0, len(report.GoalSeeks)),
	}

	for _, nt := range report.Tables {
		file := nt.Name + ".csv"
		if err := writeTable(filepath.Join(runDir, file), nt.Table); err != nil {
			return err
		}
		meta.Tables = append(meta.Tables, TableMeta{
			Name:    nt.Name,
			Inputs:  nt.Table.Inputs,
			Outputs: nt.Table.Outputs,
			Rows:    nt.Table.Len(),
			File:    file,
		})
	}

	for _, gs := range report.GoalSeeks {
		meta.GoalSeeks = append(meta.GoalSeeks, SeekRecord{
			Name:          gs.Name,
			Output:        gs.Spec.Output,
			Target:        gs.Spec.Target,
			Input:         gs.Spec.Input,
			Lower:         gs.Spec.Lower,
			Upper:         gs.Spec.Upper,
			MaxIterations: gs.Spec.MaxIterations,
			Tolerance:     gs.Spec.Tolerance,
			Value:         gs.Result.Value,
			Residual:      gs.Result.Residual,
			Iterations:    gs.Result.Iterations,
			Converged:     gs.Result.Converged,
		})
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(runDir, "metadata.json"), append(data, '\n'), 0644)
}

func writeTable(path string, t *datatable.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := datatable.WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTable(runID, name string) (*datatable.Table, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	tm, err := meta.Table(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, tm.File))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return datatable.ReadCSV(f, len(tm.Inputs))
}

// LoadTables returns every table of a run in saved order.
func (s *Store) LoadTables(runID string) ([]experiment.NamedTable, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	tables := make([]experiment.NamedTable, 0, len(meta.Tables))
	for _, tm := range meta.Tables {
		t, err := s.LoadTable(runID, tm.Name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, experiment.NamedTable{Name: tm.Name, Table: t})
	}
	return tables, nil
}
