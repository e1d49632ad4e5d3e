package models

import "github.com/san-kum/whatif/internal/whatif"

const DefaultDemand = 500.0

// NewBreakEven is the linear cost-volume-profit model: demand is an input
// rather than a function of price.
func NewBreakEven() *whatif.Model {
	return whatif.NewModel("breakeven").
		Param("fixed_cost", DefaultFixedCost, "fixed cost per period").
		Param("var_cost", DefaultVarCost, "variable cost per unit").
		Param("selling_price", DefaultSellingPrice, "selling price per unit").
		Param("demand", DefaultDemand, "units sold per period").
		Output("unit_margin", func(v whatif.Values) float64 {
			return v.Get("selling_price") - v.Get("var_cost")
		}, "contribution margin per unit").
		Output("total_var_cost", totalVarCost, "demand times variable cost per unit").
		Output("total_revenue", totalRevenue, "demand times selling price").
		Output("total_cost", totalCost, "fixed cost plus total variable cost").
		Output("profit", profit, "total revenue minus total cost").
		Output("break_even_units", func(v whatif.Values) float64 {
			return v.Get("fixed_cost") / v.Get("unit_margin")
		}, "demand at which profit is zero")
}
