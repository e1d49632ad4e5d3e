package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/whatif/internal/datatable"
	"github.com/san-kum/whatif/internal/goalseek"
)

const (
	DefaultModel         = "single_product_spf"
	DefaultMaxIterations = 1000
)

type Config struct {
	Model      string             `yaml:"model"`
	Params     map[string]float64 `yaml:"params,omitempty"`
	DataTables []DataTableConfig  `yaml:"data_tables,omitempty"`
	GoalSeeks  []GoalSeekConfig   `yaml:"goal_seeks,omitempty"`
}

type DataTableConfig struct {
	Name    string        `yaml:"name"`
	Inputs  []InputConfig `yaml:"inputs"`
	Outputs []string      `yaml:"outputs"`
	Workers int           `yaml:"workers,omitempty"`
}

// InputConfig lists the values of one swept input, either explicitly or as a
// range.
type InputConfig struct {
	Param  string       `yaml:"param"`
	Values []float64    `yaml:"values,omitempty"`
	Range  *RangeConfig `yaml:"range,omitempty"`
}

// RangeConfig is arange(start, stop, step) or, when Num is set,
// linspace(start, stop, num).
type RangeConfig struct {
	Start float64 `yaml:"start"`
	Stop  float64 `yaml:"stop"`
	Step  float64 `yaml:"step,omitempty"`
	Num   int     `yaml:"num,omitempty"`
}

type GoalSeekConfig struct {
	Name          string  `yaml:"name"`
	Output        string  `yaml:"output"`
	Target        float64 `yaml:"target"`
	By            string  `yaml:"by"`
	Lower         float64 `yaml:"lower"`
	Upper         float64 `yaml:"upper"`
	MaxIterations int     `yaml:"max_iterations,omitempty"`
	Tolerance     float64 `yaml:"tolerance,omitempty"`
}

// DefaultConfig is the classic break-even study: a price sweep and the
// demand at which profit is zero.
func DefaultConfig() *Config {
	return &Config{
		Model: DefaultModel,
		DataTables: []DataTableConfig{
			{
				Name: "selling_price",
				Inputs: []InputConfig{
					{Param: "selling_price", Range: &RangeConfig{Start: 80, Stop: 141, Step: 10}},
				},
				Outputs: []string{"profit", "demand"},
			},
		},
		GoalSeeks: []GoalSeekConfig{
			{
				Name:          "break_even_demand",
				Output:        "profit",
				Target:        0,
				By:            "demand",
				Lower:         0,
				Upper:         1000,
				MaxIterations: DefaultMaxIterations,
			},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{Model: DefaultModel}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the shape of the file. Names are checked against the model
// when the analyses run.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("config: model is required")
	}
	seen := make(map[string]bool)
	for i, dt := range c.DataTables {
		if dt.Name == "" {
			return fmt.Errorf("config: data_tables[%d]: name is required", i)
		}
		if seen[dt.Name] {
			return fmt.Errorf("config: duplicate analysis name %q", dt.Name)
		}
		seen[dt.Name] = true
		if len(dt.Inputs) == 0 {
			return fmt.Errorf("config: data table %q: no inputs", dt.Name)
		}
		if len(dt.Outputs) == 0 {
			return fmt.Errorf("config: data table %q: no outputs", dt.Name)
		}
		if dt.Workers < 0 {
			return fmt.Errorf("config: data table %q: negative workers", dt.Name)
		}
		for _, in := range dt.Inputs {
			if _, err := in.Resolve(); err != nil {
				return fmt.Errorf("config: data table %q: %w", dt.Name, err)
			}
		}
	}
	for i, gs := range c.GoalSeeks {
		if gs.Name == "" {
			return fmt.Errorf("config: goal_seeks[%d]: name is required", i)
		}
		if seen[gs.Name] {
			return fmt.Errorf("config: duplicate analysis name %q", gs.Name)
		}
		seen[gs.Name] = true
		if gs.Output == "" || gs.By == "" {
			return fmt.Errorf("config: goal seek %q: output and by are required", gs.Name)
		}
		if gs.Lower > gs.Upper {
			return fmt.Errorf("config: goal seek %q: lower %g above upper %g", gs.Name, gs.Lower, gs.Upper)
		}
	}
	return nil
}

// Resolve expands the input into its value sequence.
func (ic InputConfig) Resolve() ([]float64, error) {
	if ic.Param == "" {
		return nil, fmt.Errorf("input without param")
	}
	switch {
	case ic.Range != nil && len(ic.Values) > 0:
		return nil, fmt.Errorf("input %q: values and range are exclusive", ic.Param)
	case ic.Range != nil && ic.Range.Num > 0:
		return datatable.Linspace(ic.Range.Start, ic.Range.Stop, ic.Range.Num)
	case ic.Range != nil:
		vals, err := datatable.Arange(ic.Range.Start, ic.Range.Stop, ic.Range.Step)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", ic.Param, err)
		}
		return vals, nil
	default:
		return append([]float64{}, ic.Values...), nil
	}
}

func (dt DataTableConfig) GetInputs() ([]datatable.Input, error) {
	inputs := make([]datatable.Input, len(dt.Inputs))
	for i, in := range dt.Inputs {
		vals, err := in.Resolve()
		if err != nil {
			return nil, err
		}
		inputs[i] = datatable.Input{Name: in.Param, Values: vals}
	}
	return inputs, nil
}

func (gs GoalSeekConfig) Spec() goalseek.Spec {
	return goalseek.Spec{
		Output:        gs.Output,
		Target:        gs.Target,
		Input:         gs.By,
		Lower:         gs.Lower,
		Upper:         gs.Upper,
		MaxIterations: gs.MaxIterations,
		Tolerance:     gs.Tolerance,
	}
}
