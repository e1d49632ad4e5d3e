package datatable

import (
	"fmt"

	"github.com/san-kum/whatif/internal/whatif"
)

// Run evaluates outputs for every combination of the input values.
func Run(s whatif.Scenario, inputs []Input, outputs []string) (*Table, error) {
	n, err := validate(s, inputs, outputs)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Inputs:  make([]string, len(inputs)),
		Outputs: append([]string{}, outputs...),
		Rows:    make([]Row, 0, n),
	}
	for i, in := range inputs {
		t.Inputs[i] = in.Name
	}

	base := s.Snapshot()
	if err := sweep(s, inputs, outputs, 0, base, make([]float64, 0, len(inputs)), t); err != nil {
		return nil, err
	}
	return t, nil
}

func sweep(s whatif.Scenario, inputs []Input, outputs []string, depth int, current whatif.Params, assigned []float64, t *Table) error {
	if depth == len(inputs) {
		row := Row{
			Inputs:  append([]float64{}, assigned...),
			Outputs: make([]float64, len(outputs)),
		}
		for j, name := range outputs {
			v, err := s.EvalWith(current, name)
			if err != nil {
				return err
			}
			row.Outputs[j] = v
		}
		t.Rows = append(t.Rows, row)
		return nil
	}

	in := inputs[depth]
	for _, val := range in.Values {
		next := current.Clone()
		next[in.Name] = val
		if err := sweep(s, inputs, outputs, depth+1, next, append(assigned, val), t); err != nil {
			return err
		}
	}
	return nil
}

// validate checks the request and returns the number of rows it produces.
func validate(s whatif.Scenario, inputs []Input, outputs []string) (int, error) {
	if len(inputs) == 0 {
		return 0, &whatif.ConfigurationError{Field: "inputs", Reason: "missing"}
	}
	if len(outputs) == 0 {
		return 0, &whatif.ConfigurationError{Field: "outputs", Reason: "missing"}
	}
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		if !s.IsInput(in.Name) {
			return 0, whatif.UnknownField(in.Name)
		}
		if seen[in.Name] {
			return 0, &whatif.ConfigurationError{Field: in.Name, Reason: "duplicate input"}
		}
		seen[in.Name] = true
	}
	for _, name := range outputs {
		if !s.IsOutput(name) {
			return 0, whatif.UnknownField(name)
		}
	}
	return rowCount(inputs)
}

// rowCount is the product of the value counts, refused above MaxRows.
func rowCount(inputs []Input) (int, error) {
	n := 1
	for _, in := range inputs {
		k := len(in.Values)
		if k == 0 {
			return 0, nil
		}
		if n > MaxRows/k {
			return 0, &whatif.ConfigurationError{Field: in.Name, Reason: fmt.Sprintf("more than %d rows sweeping", MaxRows)}
		}
		n *= k
	}
	return n, nil
}
