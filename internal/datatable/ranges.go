package datatable

import (
	"fmt"
	"math"

	"github.com/san-kum/whatif/internal/whatif"
)

// MaxRows bounds the length of a generated range and the size of a table.
const MaxRows = 1_000_000

func tooLarge(field string) error {
	return &whatif.ConfigurationError{Field: field, Reason: fmt.Sprintf("more than %d values in", MaxRows)}
}

// Arange returns start, start+step, ... up to but excluding stop.
func Arange(start, stop, step float64) ([]float64, error) {
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("datatable: invalid step %g", step)
	}
	count := math.Ceil((stop - start) / step)
	if math.IsNaN(count) {
		return nil, fmt.Errorf("datatable: invalid range %g to %g", start, stop)
	}
	if count > MaxRows {
		return nil, tooLarge("range")
	}
	n := int(count)
	if n <= 0 {
		return []float64{}, nil
	}
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = start + float64(i)*step
	}
	return vals, nil
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("datatable: invalid count %d", n)
	}
	if n > MaxRows {
		return nil, tooLarge("range")
	}
	vals := make([]float64, n)
	if n == 1 {
		vals[0] = start
		return vals, nil
	}
	step := (stop - start) / float64(n-1)
	for i := range vals {
		vals[i] = start + float64(i)*step
	}
	if n > 1 {
		vals[n-1] = stop
	}
	return vals, nil
}
