// Package whatif provides the model primitives used by the sensitivity
// analysis engines.
//
// The package defines:
//
//   - [Params]: named input values
//   - [Model]: declared parameters and output formulas
//   - [Instance]: a model bound to current parameter values
//   - [Scenario]: the read-only view consumed by the data table and goal seek engines
//
// # Example
//
//	m := models.NewSingleProductSPF()
//	inst, _ := m.New(whatif.Params{"selling_price": 120})
//	profit, _ := inst.Output("profit")
//
// # Pinned outputs
//
// Any declared output may also be assigned a value. Formulas reading a pinned
// output receive the assigned value instead of recomputing it, which lets a
// goal seek search over an intermediate quantity such as demand.
//
// # Thread Safety
//
// Model values are immutable once built and safe to share. Instance values are
// NOT thread-safe; engines only read a snapshot and work on copies.
package whatif
