package whatif

import (
	"errors"
	"fmt"
)

// Domain errors for model evaluation and analysis.
var (
	// ErrConfiguration indicates an unknown field or an invalid analysis request.
	ErrConfiguration = errors.New("whatif: configuration error")

	// ErrNoBracket indicates the goal seek bounds do not enclose a sign change.
	ErrNoBracket = errors.New("whatif: root not bracketed")

	// ErrNotConverged indicates the goal seek iteration budget ran out.
	ErrNotConverged = errors.New("whatif: goal seek did not converge")

	// ErrCycle indicates output formulas that depend on each other.
	ErrCycle = errors.New("whatif: formula cycle")

	// ErrNonFinite indicates a formula produced NaN or Inf.
	ErrNonFinite = errors.New("whatif: non-finite value")
)

// ConfigurationError reports a rejected field name or analysis argument.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "unknown field"
	}
	return fmt.Sprintf("whatif: %s %q", reason, e.Field)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// UnknownField returns a ConfigurationError for a name the model does not declare.
func UnknownField(name string) error {
	return &ConfigurationError{Field: name, Reason: "unknown field"}
}

// NoBracketError carries the residuals found at both bounds.
type NoBracketError struct {
	Output string
	Input  string
	Lower  float64
	Upper  float64
	FLower float64
	FUpper float64
}

func (e *NoBracketError) Error() string {
	return fmt.Sprintf("whatif: no sign change for %s over %s in [%g, %g] (f=%g, %g)",
		e.Output, e.Input, e.Lower, e.Upper, e.FLower, e.FUpper)
}

func (e *NoBracketError) Unwrap() error {
	return ErrNoBracket
}

// ConvergenceError carries the best point found before the budget ran out.
type ConvergenceError struct {
	Best       float64
	Residual   float64
	Iterations int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("whatif: goal seek did not converge after %d iterations (best %g, residual %g)",
		e.Iterations, e.Best, e.Residual)
}

func (e *ConvergenceError) Unwrap() error {
	return ErrNotConverged
}
