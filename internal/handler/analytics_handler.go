package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/nanostack/backend/internal/model"
	"github.com/nanostack/backend/internal/service"
)

// analyticsResponse is the chart payload. Every array pair is aligned by index.
type analyticsResponse struct {
	Months        []string      `json:"months"`
	Revenue       []json.Number `json:"revenue"`
	Expenses      []json.Number `json:"expenses"`
	Profit        []json.Number `json:"profit"`
	StatusLabels  []string      `json:"status_labels"`
	StatusCounts  []int         `json:"status_counts"`
	PaymentLabels []string      `json:"payment_labels"`
	PaymentCounts []int         `json:"payment_counts"`
}

// AnalyticsHandler handles GET /admin/api/analytics/data.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates an AnalyticsHandler.
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Data handles GET /admin/api/analytics/data.
func (h *AnalyticsHandler) Data(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	summary, err := h.analyticsService.Summary(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "analytics_failed")
		return
	}
	writeJSON(w, http.StatusOK, buildAnalyticsResponse(summary))
}

func buildAnalyticsResponse(s model.FinancialSummary) analyticsResponse {
	resp := analyticsResponse{
		Months:        make([]string, 0, len(s.Monthly)),
		Revenue:       make([]json.Number, 0, len(s.Monthly)),
		Expenses:      make([]json.Number, 0, len(s.Monthly)),
		Profit:        make([]json.Number, 0, len(s.Monthly)),
		StatusLabels:  make([]string, 0, len(s.ByStatus)),
		StatusCounts:  make([]int, 0, len(s.ByStatus)),
		PaymentLabels: make([]string, 0, len(s.ByPaymentMethod)),
		PaymentCounts: make([]int, 0, len(s.ByPaymentMethod)),
	}
	for _, b := range s.Monthly {
		resp.Months = append(resp.Months, b.Label())
		resp.Revenue = append(resp.Revenue, money(b.Revenue))
		resp.Expenses = append(resp.Expenses, money(b.Expenses))
		resp.Profit = append(resp.Profit, money(b.Profit))
	}
	for _, c := range s.ByStatus {
		resp.StatusLabels = append(resp.StatusLabels, c.Label)
		resp.StatusCounts = append(resp.StatusCounts, c.Count)
	}
	for _, c := range s.ByPaymentMethod {
		resp.PaymentLabels = append(resp.PaymentLabels, c.Label)
		resp.PaymentCounts = append(resp.PaymentCounts, c.Count)
	}
	return resp
}

// money renders an amount as a bare JSON number with two decimals, without
// passing through float64.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
