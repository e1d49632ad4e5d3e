package whatif

import "sort"

// Params maps an input name to its value.
type Params map[string]float64

func (p Params) Clone() Params {
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// Names returns the keys in sorted order.
func (p Params) Names() []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Values is the read access a formula has while it is evaluated.
type Values interface {
	Get(name string) float64
}

// Formula computes one output from the current values.
type Formula func(v Values) float64

// Scenario is what the analysis engines need from a model instance.
type Scenario interface {
	Snapshot() Params
	IsInput(name string) bool
	IsOutput(name string) bool
	EvalWith(p Params, output string) (float64, error)
}
