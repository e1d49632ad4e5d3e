package datatable

import (
	"fmt"

	"github.com/san-kum/whatif/internal/whatif"
)

// Input is one swept parameter and its candidate values.
type Input struct {
	Name   string
	Values []float64
}

// Row holds one input assignment and the outputs computed for it.
type Row struct {
	Inputs  []float64
	Outputs []float64
}

type Table struct {
	Inputs  []string
	Outputs []string
	Rows    []Row
}

// Column is a named column of a table.
type Column struct {
	Name   string
	Values []float64
}

// Columns returns the input names followed by the output names.
func (t *Table) Columns() []string {
	cols := make([]string, 0, len(t.Inputs)+len(t.Outputs))
	cols = append(cols, t.Inputs...)
	return append(cols, t.Outputs...)
}

func (t *Table) Len() int { return len(t.Rows) }

// Record returns row i flattened in column order.
func (t *Table) Record(i int) []float64 {
	r := t.Rows[i]
	rec := make([]float64, 0, len(r.Inputs)+len(r.Outputs))
	rec = append(rec, r.Inputs...)
	return append(rec, r.Outputs...)
}

// Assignment returns the swept inputs of row i by name.
func (t *Table) Assignment(i int) whatif.Params {
	p := make(whatif.Params, len(t.Inputs))
	for j, name := range t.Inputs {
		p[name] = t.Rows[i].Inputs[j]
	}
	return p
}

func (t *Table) Column(name string) ([]float64, error) {
	for j, in := range t.Inputs {
		if in == name {
			vals := make([]float64, len(t.Rows))
			for i, r := range t.Rows {
				vals[i] = r.Inputs[j]
			}
			return vals, nil
		}
	}
	for j, out := range t.Outputs {
		if out == name {
			vals := make([]float64, len(t.Rows))
			for i, r := range t.Rows {
				vals[i] = r.Outputs[j]
			}
			return vals, nil
		}
	}
	return nil, whatif.UnknownField(name)
}

// ToColumns converts the table to named columns in column order.
func (t *Table) ToColumns() []Column {
	names := t.Columns()
	cols := make([]Column, len(names))
	for j, name := range names {
		cols[j] = Column{Name: name, Values: make([]float64, len(t.Rows))}
	}
	for i := range t.Rows {
		for j, v := range t.Record(i) {
			cols[j].Values[i] = v
		}
	}
	return cols
}

// FromColumns rebuilds a table. cols must list the inputs then the outputs in
// the given order, all with the same length.
func FromColumns(inputs, outputs []string, cols []Column) (*Table, error) {
	if len(cols) != len(inputs)+len(outputs) {
		return nil, fmt.Errorf("datatable: expected %d columns, got %d", len(inputs)+len(outputs), len(cols))
	}
	names := append(append([]string{}, inputs...), outputs...)
	n := 0
	if len(cols) > 0 {
		n = len(cols[0].Values)
	}
	for j, c := range cols {
		if c.Name != names[j] {
			return nil, fmt.Errorf("datatable: column %d is %q, expected %q", j, c.Name, names[j])
		}
		if len(c.Values) != n {
			return nil, fmt.Errorf("datatable: column %q has %d values, expected %d", c.Name, len(c.Values), n)
		}
	}

	t := &Table{
		Inputs:  append([]string{}, inputs...),
		Outputs: append([]string{}, outputs...),
		Rows:    make([]Row, n),
	}
	for i := 0; i < n; i++ {
		row := Row{
			Inputs:  make([]float64, len(inputs)),
			Outputs: make([]float64, len(outputs)),
		}
		for j := range inputs {
			row.Inputs[j] = cols[j].Values[i]
		}
		for j := range outputs {
			row.Outputs[j] = cols[len(inputs)+j].Values[i]
		}
		t.Rows[i] = row
	}
	return t, nil
}
