package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Simplici0/netkar/internal/preset"
	"github.com/Simplici0/netkar/internal/profit"
	"github.com/Simplici0/netkar/internal/report"
)

type inputField struct {
	name  string
	label string
	ptr   func(*profit.Inputs) *float64
}

var inputFields = []inputField{
	{"salesPrice", "Satış Fiyatı", func(in *profit.Inputs) *float64 { return &in.SalesPrice }},
	{"costOfGoods", "Ürün Maliyeti", func(in *profit.Inputs) *float64 { return &in.CostOfGoods }},
	{"shippingCost", "Kargo Gideri", func(in *profit.Inputs) *float64 { return &in.ShippingCost }},
	{"marketingCost", "Pazarlama/Reklam", func(in *profit.Inputs) *float64 { return &in.MarketingCost }},
	{"commissionRate", "Pazaryeri Komisyonu", func(in *profit.Inputs) *float64 { return &in.CommissionRate }},
	{"vatRate", "KDV Oranı", func(in *profit.Inputs) *float64 { return &in.VATRate }},
	{"incomeTaxRate", "Gelir Vergisi Oranı", func(in *profit.Inputs) *float64 { return &in.IncomeTaxRate }},
	{"discountRate", "İndirim", func(in *profit.Inputs) *float64 { return &in.DiscountRate }},
}

type calculatorViewData struct {
	ErrorMessage  string
	Form          map[string]string
	Marketplaces  []preset.Marketplace
	VATCategories []preset.VATCategory
	Report        *report.Report
}

// presetSelection holds optional catalog ids; zero means "not selected".
type presetSelection struct {
	MarketplaceID int64
	VATCategoryID int64
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	in := profit.DefaultInputs()
	rep := report.Build(in, profit.Calculate(in), s.format)

	s.renderCalculator(w, r, http.StatusOK, calculatorViewData{
		Form:   formValues(in, presetSelection{}),
		Report: &rep,
	})
}

func (s *server) handleCalculateForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	// Form entry is lenient: unparseable numbers count as 0.
	in, _ := parseInputValues(r.PostForm, false)

	sel, err := parsePresetSelection(r.PostForm)
	if err != nil {
		s.renderCalculator(w, r, http.StatusBadRequest, calculatorViewData{
			ErrorMessage: "Geçersiz seçim: " + err.Error(),
			Form:         formValues(in, presetSelection{}),
		})
		return
	}

	if err := s.applyPresets(r.Context(), &in, sel); err != nil {
		status := http.StatusInternalServerError
		msg := "Hazır ayar yüklenemedi."
		if errors.Is(err, preset.ErrNotFound) {
			status = http.StatusBadRequest
			msg = "Seçilen hazır ayar bulunamadı."
		} else {
			s.log.Error("apply presets", zap.Error(err))
		}
		s.renderCalculator(w, r, status, calculatorViewData{ErrorMessage: msg, Form: formValues(in, sel)})
		return
	}

	if err := in.Validate(); err != nil {
		s.renderCalculator(w, r, http.StatusUnprocessableEntity, calculatorViewData{
			ErrorMessage: "Geçersiz giriş: " + strings.ReplaceAll(err.Error(), "\n", "; "),
			Form:         formValues(in, sel),
		})
		return
	}

	rep := report.Build(in, profit.Calculate(in), s.format)
	s.renderCalculator(w, r, http.StatusOK, calculatorViewData{
		Form:   formValues(in, sel),
		Report: &rep,
	})
}

func (s *server) renderCalculator(w http.ResponseWriter, r *http.Request, status int, data calculatorViewData) {
	marketplaces, err := s.presets.Marketplaces(r.Context())
	if err != nil {
		s.log.Warn("list marketplaces for form", zap.Error(err))
	}
	categories, err := s.presets.VATCategories(r.Context())
	if err != nil {
		s.log.Warn("list vat categories for form", zap.Error(err))
	}
	data.Marketplaces = marketplaces
	data.VATCategories = categories

	s.renderTemplate(w, status, "calculator.html", data)
}

func (s *server) handleCalculateText(w http.ResponseWriter, r *http.Request) {
	in, sel, ok := s.strictInputsFromQuery(w, r)
	if !ok {
		return
	}

	result := profit.Calculate(in)
	rep := report.Build(in, result, s.format)

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s (%s)\n", rep.NetProfit.Title, rep.NetProfit.Value, rep.NetProfit.SubValue)
	fmt.Fprintf(&b, "%s: %s (%s)\n", rep.Turnover.Title, rep.Turnover.Value, rep.Turnover.SubValue)
	for _, c := range rep.Summary {
		fmt.Fprintf(&b, "%s: %s\n", c.Title, c.Value)
	}
	b.WriteString("\nDetaylı Analiz:\n")
	for _, row := range rep.Details {
		fmt.Fprintf(&b, "- %s: %s\n", row.Label, row.Value)
	}
	b.WriteString("\nMaliyet Dağılımı:\n")
	for _, slice := range rep.Distribution {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", slice.Name, s.format.Currency(slice.Value), s.format.Percent(slice.Share))
	}
	b.WriteString("\nGirdiler:\n")
	for _, f := range inputFields {
		fmt.Fprintf(&b, "- %s: %s\n", f.label, strconv.FormatFloat(*f.ptr(&in), 'f', -1, 64))
	}
	if sel.MarketplaceID != 0 || sel.VATCategoryID != 0 {
		fmt.Fprintf(&b, "- Hazır ayar: pazaryeri=%d kdv=%d\n", sel.MarketplaceID, sel.VATCategoryID)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(b.String()))
}

func (s *server) handleAPICalculateQuery(w http.ResponseWriter, r *http.Request) {
	in, _, ok := s.strictInputsFromQuery(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.newCalculateResponse(in))
}

func (s *server) handleAPICalculateJSON(w http.ResponseWriter, r *http.Request) {
	req := newCalculateRequest(profit.DefaultInputs())

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid json body: "+err.Error())
		return
	}

	in := req.inputs()
	sel := presetSelection{MarketplaceID: req.MarketplaceID, VATCategoryID: req.VATCategoryID}
	if !s.applyPresetsJSON(r.Context(), w, &in, sel) {
		return
	}
	if err := in.Validate(); err != nil {
		s.writeJSONError(w, http.StatusUnprocessableEntity, strings.ReplaceAll(err.Error(), "\n", "; "))
		return
	}

	s.writeJSON(w, http.StatusOK, s.newCalculateResponse(in))
}

// strictInputsFromQuery parses, applies presets and validates query inputs,
// writing a JSON error and returning false on failure.
func (s *server) strictInputsFromQuery(w http.ResponseWriter, r *http.Request) (profit.Inputs, presetSelection, bool) {
	query := r.URL.Query()

	in, err := parseInputValues(query, true)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return in, presetSelection{}, false
	}
	sel, err := parsePresetSelection(query)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return in, sel, false
	}
	if !s.applyPresetsJSON(r.Context(), w, &in, sel) {
		return in, sel, false
	}
	if err := in.Validate(); err != nil {
		s.writeJSONError(w, http.StatusUnprocessableEntity, strings.ReplaceAll(err.Error(), "\n", "; "))
		return in, sel, false
	}
	return in, sel, true
}

func (s *server) applyPresetsJSON(ctx context.Context, w http.ResponseWriter, in *profit.Inputs, sel presetSelection) bool {
	err := s.applyPresets(ctx, in, sel)
	switch {
	case err == nil:
		return true
	case errors.Is(err, preset.ErrNotFound):
		s.writeJSONError(w, http.StatusNotFound, err.Error())
	default:
		s.log.Error("apply presets", zap.Error(err))
		s.writeJSONError(w, http.StatusInternalServerError, "failed to load presets")
	}
	return false
}

// applyPresets overrides the commission and VAT rates with the selected
// catalog entries.
func (s *server) applyPresets(ctx context.Context, in *profit.Inputs, sel presetSelection) error {
	if sel.MarketplaceID != 0 {
		m, err := s.presets.Marketplace(ctx, sel.MarketplaceID)
		if err != nil {
			return err
		}
		in.CommissionRate = m.CommissionRate
	}
	if sel.VATCategoryID != 0 {
		c, err := s.presets.VATCategory(ctx, sel.VATCategoryID)
		if err != nil {
			return err
		}
		in.VATRate = c.Rate
	}
	return nil
}

// parseInputValues overlays submitted values on the default inputs. Missing
// fields keep their defaults. A decimal comma is accepted. In strict mode an
// unparseable value is an error; otherwise it is read as 0.
func parseInputValues(values url.Values, strict bool) (profit.Inputs, error) {
	in := profit.DefaultInputs()
	for _, f := range inputFields {
		raw, ok := values[f.name]
		if !ok || len(raw) == 0 {
			continue
		}

		value, err := parseNumber(raw[0])
		if err != nil {
			if strict {
				return in, fmt.Errorf("%s must be numeric", f.name)
			}
			value = 0
		}
		*f.ptr(&in) = value
	}
	return in, nil
}

func parseNumber(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if strings.Count(raw, ",") == 1 && !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}
	return strconv.ParseFloat(raw, 64)
}

func parsePresetSelection(values url.Values) (presetSelection, error) {
	var sel presetSelection
	var err error
	if sel.MarketplaceID, err = parseOptionalID(values.Get("marketplace"), "marketplace"); err != nil {
		return sel, err
	}
	if sel.VATCategoryID, err = parseOptionalID(values.Get("vatCategory"), "vatCategory"); err != nil {
		return sel, err
	}
	return sel, nil
}

func parseOptionalID(raw, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive id", field)
	}
	return id, nil
}

func formValues(in profit.Inputs, sel presetSelection) map[string]string {
	values := make(map[string]string, len(inputFields)+2)
	for _, f := range inputFields {
		values[f.name] = strconv.FormatFloat(*f.ptr(&in), 'f', -1, 64)
	}
	if sel.MarketplaceID != 0 {
		values["marketplace"] = strconv.FormatInt(sel.MarketplaceID, 10)
	}
	if sel.VATCategoryID != 0 {
		values["vatCategory"] = strconv.FormatInt(sel.VATCategoryID, 10)
	}
	return values
}
