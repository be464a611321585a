// ABOUTME: Quotation engine converting material cost and print time into an itemized price
// ABOUTME: Pure function of its inputs with no hidden state

package models

// RateCard holds the rate configuration for quotation.
type RateCard struct {
	MachineRatePerHour     float64 `json:"machine_rate_per_hour"`
	ElectricityRatePerHour float64 `json:"electricity_rate_per_hour"`
	LabourRatePerHour      float64 `json:"labour_rate_per_hour"`
	ProfitMarginFraction   float64 `json:"profit_margin_fraction"`
	TaxFraction            float64 `json:"tax_fraction"`
}

// QuoteBreakdown is the itemized price breakdown for a batch.
type QuoteBreakdown struct {
	MaterialCost    float64 `json:"material_cost"`
	MachineCost     float64 `json:"machine_cost"`
	ElectricityCost float64 `json:"electricity_cost"`
	LabourCost      float64 `json:"labour_cost"`
	BaseCost        float64 `json:"base_cost"`
	Profit          float64 `json:"profit"`
	Subtotal        float64 `json:"subtotal"`
	Tax             float64 `json:"tax"`
	FinalPrice      float64 `json:"final_price"`
}

// Quote computes an itemized price breakdown from material cost, print
// time, and a rate card:
//
//	base     = material + hours*(machine + electricity + labour)
//	profit   = base * margin
//	subtotal = base + profit
//	tax      = subtotal * taxFraction
//	final    = subtotal + tax
//
// Negative rates or time produce mathematically consistent but physically
// meaningless output; non-negativity is a caller precondition.
func Quote(materialCost, printTimeHours float64, rates RateCard) QuoteBreakdown {
	machineCost := printTimeHours * rates.MachineRatePerHour
	electricityCost := printTimeHours * rates.ElectricityRatePerHour
	labourCost := printTimeHours * rates.LabourRatePerHour

	baseCost := materialCost + machineCost + electricityCost + labourCost
	profit := baseCost * rates.ProfitMarginFraction
	subtotal := baseCost + profit
	tax := subtotal * rates.TaxFraction

	return QuoteBreakdown{
		MaterialCost:    materialCost,
		MachineCost:     machineCost,
		ElectricityCost: electricityCost,
		LabourCost:      labourCost,
		BaseCost:        baseCost,
		Profit:          profit,
		Subtotal:        subtotal,
		Tax:             tax,
		FinalPrice:      subtotal + tax,
	}
}
