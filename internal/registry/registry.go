package registry

import (
	"fmt"
	"sort"

	"github.com/san-kum/whatif/internal/models"
	"github.com/san-kum/whatif/internal/whatif"
)

type Registry struct {
	models  map[string]func() *whatif.Model
	outputs map[string][]string
}

func New() *Registry {
	r := &Registry{
		models:  make(map[string]func() *whatif.Model),
		outputs: make(map[string][]string),
	}

	r.Register("single_product_spf", models.NewSingleProductSPF, []string{"profit", "demand"})
	r.Register("breakeven", models.NewBreakEven, []string{"profit", "break_even_units"})

	return r
}

// Register adds a model constructor and the outputs shown when none are requested.
func (r *Registry) Register(name string, fn func() *whatif.Model, defaultOutputs []string) {
	r.models[name] = fn
	r.outputs[name] = defaultOutputs
}

func (r *Registry) GetModel(name string) (*whatif.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s (available: %v)", name, r.ListModels())
	}
	return fn(), nil
}

func (r *Registry) DefaultOutputs(name string) []string {
	return append([]string{}, r.outputs[name]...)
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
