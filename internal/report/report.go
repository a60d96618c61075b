// Package report shapes a profit.Result into the figures the UI shows:
// headline cards, detail rows and the cost distribution chart.
package report

import (
	"github.com/Simplici0/netkar/internal/format"
	"github.com/Simplici0/netkar/internal/profit"
)

// Card is one headline figure.
type Card struct {
	Title    string
	Value    string
	SubValue string
	Negative bool
}

// Row is one line of the detailed analysis.
type Row struct {
	Label string
	Value string
}

// Slice is one segment of the distribution chart. Share is its percentage of
// the chart total.
type Slice struct {
	Name  string
	Value float64
	Color string
	Share float64
}

// Report is the display model for one calculation.
type Report struct {
	Inputs       profit.Inputs
	Result       profit.Result
	IsLoss       bool
	NetProfit    Card
	Turnover     Card
	Summary      []Card
	Details      []Row
	Distribution []Slice
}

// Build assembles a Report for in and its result.
func Build(in profit.Inputs, r profit.Result, f format.Formatter) Report {
	priceLabel := "Liste Fiyatı"
	if in.DiscountRate > 0 {
		priceLabel = "İndirimli Fiyat"
	}

	return Report{
		Inputs: in,
		Result: r,
		IsLoss: r.IsLoss(),
		NetProfit: Card{
			Title:    "NET KÂR",
			Value:    f.Currency(r.NetProfit),
			SubValue: "Marj: " + f.Percent(r.ProfitMargin),
			Negative: r.IsLoss(),
		},
		Turnover: Card{
			Title:    "TOPLAM CİRO",
			Value:    f.Currency(r.EffectiveSalesPrice),
			SubValue: priceLabel,
		},
		Summary: []Card{
			{Title: "Ödenecek KDV", Value: f.Currency(r.VAT.Payable)},
			{Title: "Gelir Vergisi", Value: f.Currency(r.IncomeTax)},
			{Title: "Toplam Komisyon", Value: f.Currency(r.CommissionGross)},
			{Title: "Toplam Gider", Value: f.Currency(TotalOutflow(r))},
		},
		Details: []Row{
			{Label: "Ürün Maliyeti (Net)", Value: f.Currency(r.Expenses.CostOfGoods)},
			{Label: "Kargo + Reklam (Net)", Value: f.Currency(r.Expenses.Shipping + r.Expenses.Marketing)},
			{Label: "Pazaryeri Komisyonu (Net)", Value: f.Currency(r.Expenses.Commission)},
			{Label: "Devreden KDV", Value: f.Currency(r.VAT.CarryForward)},
			{Label: "Vergi Matrahı", Value: f.Currency(r.GrossProfit)},
		},
		Distribution: Distribution(r),
	}
}

// TotalOutflow is everything that leaves the seller's pocket for the sale:
// net expenses, the VAT they paid on them, VAT payable and income tax.
func TotalOutflow(r profit.Result) float64 {
	return r.Expenses.Total + r.VAT.Payable + r.IncomeTax + r.VAT.TotalInput
}

// Distribution splits the result into chart segments. Segments with a zero or
// negative value are omitted; net profit is clamped at zero.
func Distribution(r profit.Result) []Slice {
	candidates := []Slice{
		{Name: "Ürün Maliyeti", Value: r.Expenses.CostOfGoods, Color: "#94a3b8"},
		{Name: "Kargo + Reklam", Value: r.Expenses.Shipping + r.Expenses.Marketing, Color: "#60a5fa"},
		{Name: "Komisyon", Value: r.Expenses.Commission, Color: "#fb923c"},
		{Name: "Vergiler (KDV+GV)", Value: r.IncomeTax + r.VAT.Payable, Color: "#f87171"},
		{Name: "Net Kâr", Value: max(r.NetProfit, 0), Color: "#34d399"},
	}

	var total float64
	slices := make([]Slice, 0, len(candidates))
	for _, s := range candidates {
		if s.Value > 0 {
			slices = append(slices, s)
			total += s.Value
		}
	}
	for i := range slices {
		slices[i].Share = slices[i].Value / total * 100
	}
	return slices
}
