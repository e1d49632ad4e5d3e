package whatif

import (
	"fmt"
	"math"
)

type field struct {
	name string
	doc  string
}

// Model declares parameters with defaults and output formulas over them.
type Model struct {
	name     string
	params   []field
	defaults Params
	outputs  []field
	formulas map[string]Formula
}

func NewModel(name string) *Model {
	return &Model{
		name:     name,
		defaults: make(Params),
		formulas: make(map[string]Formula),
	}
}

// Param declares a parameter. Redeclaring a name panics.
func (m *Model) Param(name string, def float64, doc string) *Model {
	m.mustBeNew(name)
	m.params = append(m.params, field{name: name, doc: doc})
	m.defaults[name] = def
	return m
}

// Output declares a formula. Redeclaring a name panics.
func (m *Model) Output(name string, f Formula, doc string) *Model {
	m.mustBeNew(name)
	m.outputs = append(m.outputs, field{name: name, doc: doc})
	m.formulas[name] = f
	return m
}

func (m *Model) mustBeNew(name string) {
	if m.IsInput(name) {
		panic(fmt.Sprintf("whatif: %s declared twice in model %s", name, m.name))
	}
}

func (m *Model) Name() string { return m.name }

func (m *Model) ParamNames() []string {
	names := make([]string, len(m.params))
	for i, f := range m.params {
		names[i] = f.name
	}
	return names
}

func (m *Model) OutputNames() []string {
	names := make([]string, len(m.outputs))
	for i, f := range m.outputs {
		names[i] = f.name
	}
	return names
}

// Doc returns the description of a parameter or output.
func (m *Model) Doc(name string) string {
	for _, f := range m.params {
		if f.name == name {
			return f.doc
		}
	}
	for _, f := range m.outputs {
		if f.name == name {
			return f.doc
		}
	}
	return ""
}

func (m *Model) Defaults() Params { return m.defaults.Clone() }

func (m *Model) IsParam(name string) bool {
	_, ok := m.defaults[name]
	return ok
}

func (m *Model) IsOutput(name string) bool {
	_, ok := m.formulas[name]
	return ok
}

// IsInput reports whether name can be assigned: a parameter or a pinnable output.
func (m *Model) IsInput(name string) bool {
	return m.IsParam(name) || m.IsOutput(name)
}

// Validate rejects names the model does not declare and NaN or infinite
// values.
func (m *Model) Validate(p Params) error {
	for _, name := range p.Names() {
		if err := m.check(name, p[name]); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) check(name string, v float64) error {
	if !m.IsInput(name) {
		return UnknownField(name)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ConfigurationError{Field: name, Reason: "non-finite value for"}
	}
	return nil
}

// Eval computes one output from p. Parameters missing from p fall back to
// their defaults. p is never modified.
func (m *Model) Eval(p Params, output string) (float64, error) {
	if !m.IsOutput(output) {
		return 0, UnknownField(output)
	}
	e := &env{model: m, params: p, active: make(map[string]bool)}
	v := e.Get(output)
	if e.err != nil {
		return 0, e.err
	}
	return v, nil
}

// EvalAll computes several outputs from the same params.
func (m *Model) EvalAll(p Params, outputs []string) ([]float64, error) {
	values := make([]float64, len(outputs))
	for i, name := range outputs {
		v, err := m.Eval(p, name)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// New binds the model to its defaults merged with overrides.
func (m *Model) New(overrides Params) (*Instance, error) {
	if err := m.Validate(overrides); err != nil {
		return nil, err
	}
	p := m.Defaults()
	for k, v := range overrides {
		p[k] = v
	}
	return &Instance{model: m, params: p}, nil
}

// env resolves names during one evaluation and records the first failure.
type env struct {
	model  *Model
	params Params
	active map[string]bool
	err    error
}

func (e *env) Get(name string) float64 {
	if e.err != nil {
		return math.NaN()
	}
	if v, ok := e.params[name]; ok {
		return v
	}
	if v, ok := e.model.defaults[name]; ok {
		return v
	}
	f, ok := e.model.formulas[name]
	if !ok {
		e.err = UnknownField(name)
		return math.NaN()
	}
	if e.active[name] {
		e.err = fmt.Errorf("%w: %s", ErrCycle, name)
		return math.NaN()
	}
	e.active[name] = true
	v := f(e)
	delete(e.active, name)
	return v
}
