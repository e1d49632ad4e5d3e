package whatif

// Instance is a model with current parameter values.
type Instance struct {
	model  *Model
	params Params
}

func (i *Instance) Model() *Model { return i.model }

func (i *Instance) Get(name string) (float64, error) {
	if v, ok := i.params[name]; ok {
		return v, nil
	}
	if i.model.IsOutput(name) {
		return i.Output(name)
	}
	return 0, UnknownField(name)
}

func (i *Instance) Set(name string, value float64) error {
	if err := i.model.check(name, value); err != nil {
		return err
	}
	i.params[name] = value
	return nil
}

// Unpin removes an assigned output so it is computed again.
func (i *Instance) Unpin(name string) {
	if i.model.IsOutput(name) {
		delete(i.params, name)
	}
}

func (i *Instance) IsPinned(name string) bool {
	if !i.model.IsOutput(name) {
		return false
	}
	_, ok := i.params[name]
	return ok
}

// Reset restores every parameter to its default and unpins all outputs.
func (i *Instance) Reset() {
	i.params = i.model.Defaults()
}

func (i *Instance) Params() Params { return i.params.Clone() }

func (i *Instance) Output(name string) (float64, error) {
	return i.model.Eval(i.params, name)
}

func (i *Instance) Outputs(names []string) ([]float64, error) {
	return i.model.EvalAll(i.params, names)
}

func (i *Instance) Snapshot() Params { return i.params.Clone() }

func (i *Instance) IsInput(name string) bool { return i.model.IsInput(name) }

func (i *Instance) IsOutput(name string) bool { return i.model.IsOutput(name) }

func (i *Instance) EvalWith(p Params, output string) (float64, error) {
	return i.model.Eval(p, output)
}

var _ Scenario = (*Instance)(nil)
