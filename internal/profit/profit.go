// Package profit computes the net profit of a single sale under a VAT and
// flat income-tax regime. All amounts are VAT-inclusive on input.
package profit

import (
	"errors"
	"fmt"
	"math"
)

// Inputs holds the per-sale figures entered by the user. Amounts include VAT;
// rates are percentages (20 means 20%).
type Inputs struct {
	SalesPrice     float64
	CostOfGoods    float64
	ShippingCost   float64
	MarketingCost  float64
	CommissionRate float64
	VATRate        float64
	IncomeTaxRate  float64
	DiscountRate   float64
}

// DefaultInputs returns the figures the calculator opens with.
func DefaultInputs() Inputs {
	return Inputs{
		SalesPrice:     500,
		CostOfGoods:    200,
		ShippingCost:   40,
		MarketingCost:  50,
		CommissionRate: 20,
		VATRate:        20,
		IncomeTaxRate:  20,
		DiscountRate:   0,
	}
}

// Expenses contains the VAT-exclusive expense lines that form the tax base.
type Expenses struct {
	CostOfGoods float64
	Shipping    float64
	Marketing   float64
	Commission  float64
	Total       float64
}

// VAT contains the output/input VAT split and the resulting settlement.
// At most one of Payable and CarryForward is non-zero.
type VAT struct {
	Output          float64
	InputGoods      float64
	InputShipping   float64
	InputMarketing  float64
	InputCommission float64
	TotalInput      float64
	Balance         float64
	Payable         float64
	CarryForward    float64
}

// Result groups the full calculation output.
type Result struct {
	EffectiveSalesPrice float64
	GrossIncome         float64
	SalesPriceExVat     float64
	CommissionGross     float64
	Expenses            Expenses
	VAT                 VAT
	GrossProfit         float64
	IncomeTax           float64
	NetProfit           float64
	ProfitMargin        float64
}

// Calculate runs the discount, VAT stripping, commission, VAT settlement,
// tax base, income tax and margin stages in that order.
//
// A VATRate of -100 is outside the domain: the VAT divisor becomes zero and
// the affected fields are ±Inf or NaN.
func Calculate(in Inputs) Result {
	effective := in.SalesPrice * (1 - in.DiscountRate/100)

	divisor := 1 + in.VATRate/100
	exVat := func(amount float64) float64 { return amount / divisor }

	salesExVat := exVat(effective)
	goodsExVat := exVat(in.CostOfGoods)
	shippingExVat := exVat(in.ShippingCost)
	marketingExVat := exVat(in.MarketingCost)

	// Commission is charged on the VAT-inclusive price and invoiced with VAT.
	commissionGross := effective * (in.CommissionRate / 100)
	commissionExVat := exVat(commissionGross)

	vat := VAT{
		Output:          effective - salesExVat,
		InputGoods:      in.CostOfGoods - goodsExVat,
		InputShipping:   in.ShippingCost - shippingExVat,
		InputMarketing:  in.MarketingCost - marketingExVat,
		InputCommission: commissionGross - commissionExVat,
	}
	vat.TotalInput = vat.InputGoods + vat.InputShipping + vat.InputMarketing + vat.InputCommission
	vat.Balance = vat.Output - vat.TotalInput
	switch {
	case vat.Balance > 0:
		vat.Payable = vat.Balance
	case vat.Balance < 0:
		vat.CarryForward = math.Abs(vat.Balance)
	}

	expenses := Expenses{
		CostOfGoods: goodsExVat,
		Shipping:    shippingExVat,
		Marketing:   marketingExVat,
		Commission:  commissionExVat,
	}
	expenses.Total = expenses.CostOfGoods + expenses.Shipping + expenses.Marketing + expenses.Commission

	grossProfit := salesExVat - expenses.Total

	incomeTax := 0.0
	if grossProfit > 0 {
		incomeTax = grossProfit * (in.IncomeTaxRate / 100)
	}
	netProfit := grossProfit - incomeTax

	margin := 0.0
	if effective > 0 {
		margin = netProfit / effective * 100
	}

	return Result{
		EffectiveSalesPrice: effective,
		GrossIncome:         effective,
		SalesPriceExVat:     salesExVat,
		CommissionGross:     commissionGross,
		Expenses:            expenses,
		VAT:                 vat,
		GrossProfit:         grossProfit,
		IncomeTax:           incomeTax,
		NetProfit:           netProfit,
		ProfitMargin:        margin,
	}
}

// IsLoss reports whether the sale loses money after tax.
func (r Result) IsLoss() bool {
	return r.NetProfit < 0
}

// Validate checks the inputs against the calculator's domain. Calculate does
// not call it; transports use it to reject bad requests before computing.
func (in Inputs) Validate() error {
	var errs []error
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"salesPrice", in.SalesPrice},
		{"costOfGoods", in.CostOfGoods},
		{"shippingCost", in.ShippingCost},
		{"marketingCost", in.MarketingCost},
		{"commissionRate", in.CommissionRate},
		{"vatRate", in.VATRate},
		{"incomeTaxRate", in.IncomeTaxRate},
		{"discountRate", in.DiscountRate},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			errs = append(errs, fmt.Errorf("%s must be a finite number", f.name))
			continue
		}
		if f.value < 0 {
			errs = append(errs, fmt.Errorf("%s must be greater than or equal to 0", f.name))
		}
	}
	return errors.Join(errs...)
}
