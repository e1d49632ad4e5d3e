package config

import "sort"

var Presets = map[string]map[string]*Config{
	"single_product_spf": {
		"notebook": DefaultConfig(),
		"price_grid": {
			Model: "single_product_spf",
			DataTables: []DataTableConfig{
				{
					Name: "price_by_cost",
					Inputs: []InputConfig{
						{Param: "selling_price", Range: &RangeConfig{Start: 80, Stop: 141, Step: 10}},
						{Param: "var_cost", Values: []float64{85, 100, 115}},
					},
					Outputs: []string{"profit", "demand"},
					Workers: 4,
				},
			},
		},
		"premium": {
			Model:  "single_product_spf",
			Params: map[string]float64{"selling_price": 140},
			GoalSeeks: []GoalSeekConfig{
				{Name: "break_even_demand", Output: "profit", By: "demand", Lower: 0, Upper: 1000, MaxIterations: DefaultMaxIterations},
				{Name: "break_even_fixed_cost", Output: "profit", By: "fixed_cost", Lower: 0, Upper: 100000, MaxIterations: DefaultMaxIterations},
			},
		},
	},
	"breakeven": {
		"volume": {
			Model: "breakeven",
			DataTables: []DataTableConfig{
				{
					Name:    "demand",
					Inputs:  []InputConfig{{Param: "demand", Range: &RangeConfig{Start: 0, Stop: 1000, Num: 11}}},
					Outputs: []string{"total_revenue", "total_cost", "profit"},
				},
			},
			GoalSeeks: []GoalSeekConfig{
				{Name: "break_even_units", Output: "profit", By: "demand", Lower: 0, Upper: 1000, MaxIterations: DefaultMaxIterations},
			},
		},
		"pricing": {
			Model:  "breakeven",
			Params: map[string]float64{"demand": 250},
			GoalSeeks: []GoalSeekConfig{
				{Name: "break_even_price", Output: "profit", By: "selling_price", Lower: 100, Upper: 200, MaxIterations: DefaultMaxIterations},
			},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
