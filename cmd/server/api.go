package main

import (
	"github.com/Simplici0/netkar/internal/profit"
	"github.com/Simplici0/netkar/internal/report"
)

type calculateRequest struct {
	SalesPrice     float64 `json:"salesPrice"`
	CostOfGoods    float64 `json:"costOfGoods"`
	ShippingCost   float64 `json:"shippingCost"`
	MarketingCost  float64 `json:"marketingCost"`
	CommissionRate float64 `json:"commissionRate"`
	VATRate        float64 `json:"vatRate"`
	IncomeTaxRate  float64 `json:"incomeTaxRate"`
	DiscountRate   float64 `json:"discountRate"`
	MarketplaceID  int64   `json:"marketplaceId,omitempty"`
	VATCategoryID  int64   `json:"vatCategoryId,omitempty"`
}

// newCalculateRequest prefills a request so omitted JSON fields keep in's values.
func newCalculateRequest(in profit.Inputs) calculateRequest {
	return calculateRequest{
		SalesPrice:     in.SalesPrice,
		CostOfGoods:    in.CostOfGoods,
		ShippingCost:   in.ShippingCost,
		MarketingCost:  in.MarketingCost,
		CommissionRate: in.CommissionRate,
		VATRate:        in.VATRate,
		IncomeTaxRate:  in.IncomeTaxRate,
		DiscountRate:   in.DiscountRate,
	}
}

func (r calculateRequest) inputs() profit.Inputs {
	return profit.Inputs{
		SalesPrice:     r.SalesPrice,
		CostOfGoods:    r.CostOfGoods,
		ShippingCost:   r.ShippingCost,
		MarketingCost:  r.MarketingCost,
		CommissionRate: r.CommissionRate,
		VATRate:        r.VATRate,
		IncomeTaxRate:  r.IncomeTaxRate,
		DiscountRate:   r.DiscountRate,
	}
}

type distributionSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Share float64 `json:"share"`
	Color string  `json:"color"`
}

type calculateResponse struct {
	Inputs calculateRequest `json:"inputs"`

	EffectiveSalesPrice float64 `json:"effectiveSalesPrice"`
	GrossIncome         float64 `json:"grossIncome"`
	SalesPriceExVat     float64 `json:"salesPriceExVat"`
	CommissionGross     float64 `json:"commissionGross"`

	CostOfGoodsExVat   float64 `json:"costOfGoodsExVat"`
	ShippingExVat      float64 `json:"shippingExVat"`
	MarketingExVat     float64 `json:"marketingExVat"`
	CommissionExVat    float64 `json:"commissionExVat"`
	TotalExpensesExVat float64 `json:"totalExpensesExVat"`

	OutputVat       float64 `json:"outputVat"`
	TotalInputVat   float64 `json:"totalInputVat"`
	VatPayable      float64 `json:"vatPayable"`
	VatCarryForward float64 `json:"vatCarryForward"`

	GrossProfit  float64 `json:"grossProfit"`
	IncomeTax    float64 `json:"incomeTax"`
	NetProfit    float64 `json:"netProfit"`
	ProfitMargin float64 `json:"profitMargin"`
	IsLoss       bool    `json:"isLoss"`

	Distribution []distributionSlice `json:"distribution"`
	Formatted    map[string]string   `json:"formatted"`
}

func (s *server) newCalculateResponse(in profit.Inputs) calculateResponse {
	r := profit.Calculate(in)

	slices := report.Distribution(r)
	distribution := make([]distributionSlice, 0, len(slices))
	for _, sl := range slices {
		distribution = append(distribution, distributionSlice{Name: sl.Name, Value: sl.Value, Share: sl.Share, Color: sl.Color})
	}

	return calculateResponse{
		Inputs:              newCalculateRequest(in),
		EffectiveSalesPrice: r.EffectiveSalesPrice,
		GrossIncome:         r.GrossIncome,
		SalesPriceExVat:     r.SalesPriceExVat,
		CommissionGross:     r.CommissionGross,
		CostOfGoodsExVat:    r.Expenses.CostOfGoods,
		ShippingExVat:       r.Expenses.Shipping,
		MarketingExVat:      r.Expenses.Marketing,
		CommissionExVat:     r.Expenses.Commission,
		TotalExpensesExVat:  r.Expenses.Total,
		OutputVat:           r.VAT.Output,
		TotalInputVat:       r.VAT.TotalInput,
		VatPayable:          r.VAT.Payable,
		VatCarryForward:     r.VAT.CarryForward,
		GrossProfit:         r.GrossProfit,
		IncomeTax:           r.IncomeTax,
		NetProfit:           r.NetProfit,
		ProfitMargin:        r.ProfitMargin,
		IsLoss:              r.IsLoss(),
		Distribution:        distribution,
		Formatted: map[string]string{
			"effectiveSalesPrice": s.format.Currency(r.EffectiveSalesPrice),
			"vatPayable":          s.format.Currency(r.VAT.Payable),
			"vatCarryForward":     s.format.Currency(r.VAT.CarryForward),
			"grossProfit":         s.format.Currency(r.GrossProfit),
			"incomeTax":           s.format.Currency(r.IncomeTax),
			"netProfit":           s.format.Currency(r.NetProfit),
			"totalOutflow":        s.format.Currency(report.TotalOutflow(r)),
			"profitMargin":        s.format.Percent(r.ProfitMargin),
		},
	}
}
