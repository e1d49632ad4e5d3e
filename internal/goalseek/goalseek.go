package goalseek

import (
	"math"

	"github.com/san-kum/whatif/internal/whatif"
)

const (
	DefaultMaxIterations = 100
	DefaultTolerance     = 1e-6
)

// Spec describes one goal seek. Zero MaxIterations or Tolerance select the
// defaults.
type Spec struct {
	Output        string
	Target        float64
	Input         string
	Lower         float64
	Upper         float64
	MaxIterations int
	Tolerance     float64
}

type Result struct {
	Value      float64
	Residual   float64
	Iterations int
	Converged  bool
}

func (s Spec) withDefaults() Spec {
	if s.MaxIterations == 0 {
		s.MaxIterations = DefaultMaxIterations
	}
	if s.Tolerance == 0 {
		s.Tolerance = DefaultTolerance
	}
	return s
}

func (s Spec) validate(sc whatif.Scenario) error {
	if !sc.IsOutput(s.Output) {
		return whatif.UnknownField(s.Output)
	}
	if !sc.IsInput(s.Input) {
		return whatif.UnknownField(s.Input)
	}
	if s.Input == s.Output {
		return &whatif.ConfigurationError{Field: s.Input, Reason: "input is the sought output"}
	}
	if math.IsNaN(s.Lower) || math.IsNaN(s.Upper) || s.Lower > s.Upper {
		return &whatif.ConfigurationError{Field: "lower", Reason: "lower bound above upper bound"}
	}
	if s.MaxIterations < 0 {
		return &whatif.ConfigurationError{Field: "max_iterations", Reason: "negative"}
	}
	if s.Tolerance < 0 || math.IsNaN(s.Tolerance) {
		return &whatif.ConfigurationError{Field: "tolerance", Reason: "negative"}
	}
	return nil
}

// Solve searches [Lower, Upper] for the input value at which Output equals
// Target within Tolerance. The scenario is only read.
func Solve(sc whatif.Scenario, spec Spec) (Result, error) {
	spec = spec.withDefaults()
	if err := spec.validate(sc); err != nil {
		return Result{}, err
	}

	base := sc.Snapshot()
	f := func(x float64) (float64, error) {
		p := base.Clone()
		p[spec.Input] = x
		v, err := sc.EvalWith(p, spec.Output)
		if err != nil {
			return 0, err
		}
		r := v - spec.Target
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return 0, whatif.ErrNonFinite
		}
		return r, nil
	}

	a, b := spec.Lower, spec.Upper
	fa, err := f(a)
	if err != nil {
		return Result{}, err
	}
	if math.Abs(fa) <= spec.Tolerance {
		return Result{Value: a, Residual: fa, Converged: true}, nil
	}
	fb, err := f(b)
	if err != nil {
		return Result{}, err
	}
	if math.Abs(fb) <= spec.Tolerance {
		return Result{Value: b, Residual: fb, Converged: true}, nil
	}
	if (fa < 0) == (fb < 0) {
		return Result{}, &whatif.NoBracketError{
			Output: spec.Output,
			Input:  spec.Input,
			Lower:  a,
			Upper:  b,
			FLower: fa,
			FUpper: fb,
		}
	}

	best, bestRes := a, fa
	if math.Abs(fb) < math.Abs(fa) {
		best, bestRes = b, fb
	}

	for i := 1; i <= spec.MaxIterations; i++ {
		m := a + (b-a)/2
		fm, err := f(m)
		if err != nil {
			return Result{}, err
		}
		if math.Abs(fm) <= spec.Tolerance {
			return Result{Value: m, Residual: fm, Iterations: i, Converged: true}, nil
		}
		if math.Abs(fm) < math.Abs(bestRes) {
			best, bestRes = m, fm
		}

		if (fa < 0) != (fm < 0) {
			b = m
		} else {
			a, fa = m, fm
		}
	}

	return Result{}, &whatif.ConvergenceError{
		Best:       best,
		Residual:   bestRes,
		Iterations: spec.MaxIterations,
	}
}
