package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nanostack/backend/internal/model"
	"github.com/nanostack/backend/internal/service"
)

const dateLayout = "2006-01-02"

// ClientProjectHandler handles the /admin/api/client-projects endpoints.
type ClientProjectHandler struct {
	projectService service.ClientProjectService
}

// NewClientProjectHandler creates a ClientProjectHandler.
func NewClientProjectHandler(projectService service.ClientProjectService) *ClientProjectHandler {
	return &ClientProjectHandler{projectService: projectService}
}

// clientProjectRequest is the create/update body. Amounts accept JSON numbers
// or decimal strings; dates are YYYY-MM-DD or empty.
type clientProjectRequest struct {
	ClientID      string           `json:"client_id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Status        string           `json:"status"`
	TotalBill     *decimal.Decimal `json:"total_bill"`
	AmountPaid    *decimal.Decimal `json:"amount_paid"`
	Expenses      *decimal.Decimal `json:"expenses"`
	StartDate     string           `json:"start_date"`
	EndDate       string           `json:"end_date"`
	DeliveredDate string           `json:"delivered_date"`
	PaymentMethod string           `json:"payment_method"`
}

func (req clientProjectRequest) toModel() (*model.ClientProject, error) {
	p := &model.ClientProject{
		ClientID:      req.ClientID,
		Title:         req.Title,
		Description:   req.Description,
		Status:        req.Status,
		TotalBill:     amountOrZero(req.TotalBill),
		AmountPaid:    amountOrZero(req.AmountPaid),
		Expenses:      amountOrZero(req.Expenses),
		PaymentMethod: req.PaymentMethod,
	}
	var err error
	if p.StartDate, err = parseDate("start_date", req.StartDate); err != nil {
		return nil, err
	}
	if p.EndDate, err = parseDate("end_date", req.EndDate); err != nil {
		return nil, err
	}
	if p.DeliveredDate, err = parseDate("delivered_date", req.DeliveredDate); err != nil {
		return nil, err
	}
	return p, nil
}

func amountOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func parseDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", service.ErrInvalidClientProject, field)
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// clientProjectResponse adds the derived balance and profit to a project.
type clientProjectResponse struct {
	ID            string          `json:"id"`
	ClientID      string          `json:"client_id"`
	ClientName    string          `json:"client_name,omitempty"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	TotalBill     decimal.Decimal `json:"total_bill"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Expenses      decimal.Decimal `json:"expenses"`
	BalanceDue    decimal.Decimal `json:"balance_due"`
	Profit        decimal.Decimal `json:"profit"`
	IsProfitable  bool            `json:"is_profitable"`
	StartDate     string          `json:"start_date,omitempty"`
	EndDate       string          `json:"end_date,omitempty"`
	DeliveredDate string          `json:"delivered_date,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func toClientProjectResponse(p *model.ClientProject) clientProjectResponse {
	return clientProjectResponse{
		ID:            p.ID,
		ClientID:      p.ClientID,
		ClientName:    p.ClientName,
		Title:         p.Title,
		Description:   p.Description,
		Status:        p.Status,
		TotalBill:     p.TotalBill,
		AmountPaid:    p.AmountPaid,
		Expenses:      p.Expenses,
		BalanceDue:    p.BalanceDue(),
		Profit:        p.Profit(),
		IsProfitable:  p.IsProfitable(),
		StartDate:     formatDate(p.StartDate),
		EndDate:       formatDate(p.EndDate),
		DeliveredDate: formatDate(p.DeliveredDate),
		PaymentMethod: p.PaymentMethod,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toClientProjectResponses(projects []*model.ClientProject) []clientProjectResponse {
	out := make([]clientProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toClientProjectResponse(p))
	}
	return out
}

// List handles GET /admin/api/client-projects.
// Supports query params: status, client_id.
func (h *ClientProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	opts := model.ClientProjectListOptions{
		ClientID: r.URL.Query().Get("client_id"),
		Status:   r.URL.Query().Get("status"),
	}
	if opts.Status != "" && !model.IsValidProjectStatus(opts.Status) {
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}

	projects, err := h.projectService.List(r.Context(), opts)
	if err != nil {
		writeStoreError(w, r, err, "list_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": toClientProjectResponses(projects)})
}

// Get handles GET /admin/api/client-projects/{id}.
func (h *ClientProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	p, err := h.projectService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, r, err, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, toClientProjectResponse(p))
}

// Create handles POST /admin/api/client-projects.
func (h *ClientProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	p, ok := h.decode(w, r)
	if !ok {
		return
	}
	if err := h.projectService.Create(r.Context(), p); err != nil {
		h.writeProjectError(w, r, err, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, toClientProjectResponse(p))
}

// Update handles PUT /admin/api/client-projects/{id}.
func (h *ClientProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	p, ok := h.decode(w, r)
	if !ok {
		return
	}
	p.ID = r.PathValue("id")
	if err := h.projectService.Update(r.Context(), p); err != nil {
		h.writeProjectError(w, r, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, toClientProjectResponse(p))
}

// Delete handles DELETE /admin/api/client-projects/{id}.
func (h *ClientProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	if err := h.projectService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, r, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClientProjectHandler) decode(w http.ResponseWriter, r *http.Request) (*model.ClientProject, bool) {
	var req clientProjectRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAdminBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return nil, false
	}
	p, err := req.toModel()
	if err != nil {
		writeValidationError(w, "invalid_client_project", err)
		return nil, false
	}
	return p, true
}

func (h *ClientProjectHandler) writeProjectError(w http.ResponseWriter, r *http.Request, err error, code string) {
	if errors.Is(err, service.ErrInvalidClientProject) {
		writeValidationError(w, "invalid_client_project", err)
		return
	}
	writeStoreError(w, r, err, code)
}
