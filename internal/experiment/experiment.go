package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/whatif/internal/config"
	"github.com/san-kum/whatif/internal/datatable"
	"github.com/san-kum/whatif/internal/goalseek"
	"github.com/san-kum/whatif/internal/registry"
	"github.com/san-kum/whatif/internal/whatif"
)

// NamedTable is a data table result with the analysis name it came from.
type NamedTable struct {
	Name  string
	Table *datatable.Table
}

type SeekOutcome struct {
	Name   string
	Spec   goalseek.Spec
	Result goalseek.Result
}

// Report collects the results of every analysis in a config.
type Report struct {
	Model     string
	Params    whatif.Params
	Outputs   map[string]float64
	Tables    []NamedTable
	GoalSeeks []SeekOutcome
	Elapsed   time.Duration
}

type Experiment struct {
	cfg      *config.Config
	registry *registry.Registry
	logger   *slog.Logger
	instance *whatif.Instance
}

func New(cfg *config.Config, reg *registry.Registry, logger *slog.Logger) *Experiment {
	if logger == nil {
		logger = slog.Default()
	}
	return &Experiment{cfg: cfg, registry: reg, logger: logger}
}

// Setup builds the model instance with the configured parameter overrides.
func (e *Experiment) Setup() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	m, err := e.registry.GetModel(e.cfg.Model)
	if err != nil {
		return err
	}
	inst, err := m.New(whatif.Params(e.cfg.Params))
	if err != nil {
		return fmt.Errorf("params: %w", err)
	}
	e.instance = inst
	return nil
}

// Instance returns the configured model instance for interactive use.
func (e *Experiment) Instance() *whatif.Instance {
	return e.instance
}

// Run executes the data tables then the goal seeks. The first failure stops
// the run.
func (e *Experiment) Run(ctx context.Context) (*Report, error) {
	if e.instance == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	start := time.Now()

	m := e.instance.Model()
	outputs, err := e.instance.Outputs(m.OutputNames())
	if err != nil {
		return nil, err
	}
	report := &Report{
		Model:   m.Name(),
		Params:  e.instance.Params(),
		Outputs: make(map[string]float64, len(outputs)),
	}
	for i, name := range m.OutputNames() {
		report.Outputs[name] = outputs[i]
	}

	for _, dt := range e.cfg.DataTables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		inputs, err := dt.GetInputs()
		if err != nil {
			return nil, fmt.Errorf("data table %q: %w", dt.Name, err)
		}
		tbl, err := datatable.RunParallel(ctx, e.instance, inputs, dt.Outputs, dt.Workers)
		if err != nil {
			return nil, fmt.Errorf("data table %q: %w", dt.Name, err)
		}
		e.logger.Debug("data table done", "name", dt.Name, "rows", tbl.Len(), "columns", len(tbl.Columns()))
		report.Tables = append(report.Tables, NamedTable{Name: dt.Name, Table: tbl})
	}

	for _, gs := range e.cfg.GoalSeeks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		spec := gs.Spec()
		res, err := goalseek.Solve(e.instance, spec)
		if err != nil {
			return nil, fmt.Errorf("goal seek %q: %w", gs.Name, err)
		}
		e.logger.Debug("goal seek done", "name", gs.Name, "value", res.Value, "iterations", res.Iterations)
		report.GoalSeeks = append(report.GoalSeeks, SeekOutcome{Name: gs.Name, Spec: spec, Result: res})
	}

	report.Elapsed = time.Since(start)
	e.logger.Info("analyses complete",
		"model", report.Model,
		"tables", len(report.Tables),
		"goal_seeks", len(report.GoalSeeks),
		"elapsed", report.Elapsed)
	return report, nil
}
