package models

import "github.com/san-kum/whatif/internal/whatif"

const (
	DefaultFixedCost    = 5000.0
	DefaultVarCost      = 100.0
	DefaultSellingPrice = 115.0
	DefaultSPFConstant  = 4900.0
	DefaultSPFLinear    = -35.0
	DefaultSPFQuadratic = 0.06
)

// NewSingleProductSPF relates the monthly profit of a single product to its
// costs and selling price. Demand follows a quadratic selling price function
// fitted to historical data: D = q*S^2 + l*S + c.
func NewSingleProductSPF() *whatif.Model {
	return whatif.NewModel("single_product_spf").
		Param("fixed_cost", DefaultFixedCost, "fixed cost of manufacturing the product each month").
		Param("var_cost", DefaultVarCost, "variable cost per unit").
		Param("selling_price", DefaultSellingPrice, "selling price per unit").
		Param("spf_constant", DefaultSPFConstant, "constant term of the selling price function").
		Param("spf_linear", DefaultSPFLinear, "linear coefficient of the selling price function").
		Param("spf_quadratic", DefaultSPFQuadratic, "quadratic coefficient of the selling price function").
		Output("demand", spfDemand, "units demanded at the selling price").
		Output("total_var_cost", totalVarCost, "demand times variable cost per unit").
		Output("total_revenue", totalRevenue, "demand times selling price").
		Output("total_cost", totalCost, "fixed cost plus total variable cost").
		Output("profit", profit, "total revenue minus total cost")
}

func spfDemand(v whatif.Values) float64 {
	s := v.Get("selling_price")
	return v.Get("spf_quadratic")*s*s + v.Get("spf_linear")*s + v.Get("spf_constant")
}

func totalVarCost(v whatif.Values) float64 {
	return v.Get("demand") * v.Get("var_cost")
}

func totalRevenue(v whatif.Values) float64 {
	return v.Get("demand") * v.Get("selling_price")
}

func totalCost(v whatif.Values) float64 {
	return v.Get("fixed_cost") + v.Get("total_var_cost")
}

func profit(v whatif.Values) float64 {
	return v.Get("total_revenue") - v.Get("total_cost")
}
