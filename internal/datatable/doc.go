// Package datatable sweeps model inputs and records the resulting outputs.
//
// A one-way table sweeps a single input:
//
//	prices, _ := datatable.Arange(80, 141, 10)
//	tbl, err := datatable.Run(inst, []datatable.Input{{Name: "selling_price", Values: prices}},
//	    []string{"profit", "demand"})
//
// Several inputs produce an n-way table whose rows are the cartesian product
// of the value sequences, first input outermost. Values keep the given order
// and are neither sorted nor deduplicated.
//
// Run never writes to the scenario: every row is evaluated on a copy of the
// scenario's parameter snapshot.
package datatable
