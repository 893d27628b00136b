package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/nanostack/backend/internal/model"
	"github.com/nanostack/backend/internal/service"
)

const maxAdminBodyBytes = 1 << 20

// ClientHandler handles the /admin/api/clients endpoints.
type ClientHandler struct {
	clientService  service.ClientService
	projectService service.ClientProjectService
}

// NewClientHandler creates a ClientHandler. projectService is used to embed a
// client's projects in the detail view.
func NewClientHandler(clientService service.ClientService, projectService service.ClientProjectService) *ClientHandler {
	return &ClientHandler{clientService: clientService, projectService: projectService}
}

type clientRequest struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func (req clientRequest) toModel() *model.Client {
	return &model.Client{
		Name:    req.Name,
		Company: req.Company,
		Email:   strings.TrimSpace(req.Email),
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}
}

type clientDetailResponse struct {
	*model.Client
	Projects []clientProjectResponse `json:"projects"`
}

// List handles GET /admin/api/clients.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	clients, err := h.clientService.List(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "list_failed")
		return
	}
	if clients == nil {
		clients = []*model.Client{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"clients": clients})
}

// Get handles GET /admin/api/clients/{id}.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id := r.PathValue("id")
	c, err := h.clientService.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, "get_failed")
		return
	}
	projects, err := h.projectService.List(r.Context(), model.ClientProjectListOptions{ClientID: id})
	if err != nil {
		writeStoreError(w, r, err, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, clientDetailResponse{Client: c, Projects: toClientProjectResponses(projects)})
}

// Create handles POST /admin/api/clients.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var req clientRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAdminBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	c := req.toModel()
	if err := h.clientService.Create(r.Context(), c); err != nil {
		h.writeClientError(w, r, err, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// Update handles PUT /admin/api/clients/{id}.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var req clientRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAdminBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	c := req.toModel()
	c.ID = r.PathValue("id")
	if err := h.clientService.Update(r.Context(), c); err != nil {
		h.writeClientError(w, r, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Delete handles DELETE /admin/api/clients/{id}. The client's projects go with it.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	if err := h.clientService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, r, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClientHandler) writeClientError(w http.ResponseWriter, r *http.Request, err error, code string) {
	if errors.Is(err, service.ErrInvalidClient) {
		writeValidationError(w, "invalid_client", err)
		return
	}
	writeStoreError(w, r, err, code)
}

// writeValidationError writes a 400 with the validation message as detail.
func writeValidationError(w http.ResponseWriter, code string, err error) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": code, "detail": err.Error()})
}
