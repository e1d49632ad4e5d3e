package datatable

import (
	"context"
	"sync"

	"github.com/san-kum/whatif/internal/whatif"
)

// RunParallel is Run with rows evaluated by up to workers goroutines. Rows
// keep the order Run would produce. The scenario must not be written while
// it runs.
func RunParallel(ctx context.Context, s whatif.Scenario, inputs []Input, outputs []string, workers int) (*Table, error) {
	n, err := validate(s, inputs, outputs)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Inputs:  make([]string, len(inputs)),
		Outputs: append([]string{}, outputs...),
		Rows:    make([]Row, n),
	}
	for i, in := range inputs {
		t.Inputs[i] = in.Name
	}

	base := s.Snapshot()
	errs := make([]error, n)
	parallelFor(n, workers, func(start, end int) {
		for r := start; r < end; r++ {
			if err := ctx.Err(); err != nil {
				errs[r] = err
				return
			}
			t.Rows[r], errs[r] = evalRow(s, base, inputs, outputs, r)
			if errs[r] != nil {
				return
			}
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

// evalRow decodes row index r as a mixed-radix number, last input fastest.
func evalRow(s whatif.Scenario, base whatif.Params, inputs []Input, outputs []string, r int) (Row, error) {
	p := base.Clone()
	row := Row{
		Inputs:  make([]float64, len(inputs)),
		Outputs: make([]float64, len(outputs)),
	}
	for i := len(inputs) - 1; i >= 0; i-- {
		vals := inputs[i].Values
		v := vals[r%len(vals)]
		r /= len(vals)
		row.Inputs[i] = v
		p[inputs[i].Name] = v
	}
	for j, name := range outputs {
		v, err := s.EvalWith(p, name)
		if err != nil {
			return Row{}, err
		}
		row.Outputs[j] = v
	}
	return row, nil
}

// parallelFor splits [0, n) into one contiguous chunk per worker.
func parallelFor(n, workers int, fn func(start, end int)) {
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
