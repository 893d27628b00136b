package handler

import (
	"net/http"

	"github.com/nanostack/backend/internal/model"
	"github.com/nanostack/backend/internal/service"
)

type dashboardResponse struct {
	Counts         model.DashboardCounts   `json:"counts"`
	RecentMessages []*model.ContactMessage `json:"recent_messages"`
	Totals         model.FinancialTotals   `json:"totals"`
}

// DashboardHandler handles GET /admin/api/dashboard.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get returns entity counts, the latest messages and the ledger totals.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	d, err := h.dashboardService.Get(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "dashboard_failed")
		return
	}

	recent := d.RecentMessages
	if recent == nil {
		recent = []*model.ContactMessage{}
	}
	writeJSON(w, http.StatusOK, dashboardResponse{
		Counts:         d.Counts,
		RecentMessages: recent,
		Totals:         d.Totals,
	})
}
