package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/nanostack/backend/internal/logging"
	"github.com/nanostack/backend/internal/model"
	"github.com/nanostack/backend/internal/service"
)

const (
	maxContactBodyBytes = 64 << 10
	contactSuccessText  = "Your message has been sent successfully!"
)

var errInvalidBody = errors.New("invalid body")

// ContactHandler handles contact form submission and the admin message views.
type ContactHandler struct {
	contactService service.ContactService
	honeypotField  string
	redirectURL    string
}

// NewContactHandler creates a ContactHandler. honeypotField is the name of the
// hidden trap field; redirectURL is where browser form posts are sent back to.
func NewContactHandler(contactService service.ContactService, honeypotField, redirectURL string) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		honeypotField:  honeypotField,
		redirectURL:    redirectURL,
	}
}

// parseSubmission reads the contact fields from a JSON or form-encoded body,
// depending on Content-Type. The field set is the same for both.
func (h *ContactHandler) parseSubmission(w http.ResponseWriter, r *http.Request) (model.ContactSubmission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var fields map[string]any
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			return model.ContactSubmission{}, fmt.Errorf("%w: %v", errInvalidBody, err)
		}
		get := func(key string) string { return jsonString(fields[key]) }
		return h.submission(get), nil
	}

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxContactBodyBytes); err != nil {
			return model.ContactSubmission{}, fmt.Errorf("%w: %v", errInvalidBody, err)
		}
	} else if err := r.ParseForm(); err != nil {
		return model.ContactSubmission{}, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return h.submission(r.PostForm.Get), nil
}

func (h *ContactHandler) submission(get func(string) string) model.ContactSubmission {
	return model.ContactSubmission{
		Name:     get("name"),
		Email:    get("email"),
		Phone:    get("phone"),
		Subject:  get("subject"),
		Message:  get("message"),
		Honeypot: get(h.honeypotField),
	}
}

// jsonString flattens a decoded JSON value. Non-string values are kept in
// textual form so that, for example, a numeric honeypot still counts as filled.
func jsonString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

func contactInput(r *http.Request, sub model.ContactSubmission) service.ContactInput {
	return service.ContactInput{
		Submission:   sub,
		ForwardedFor: r.Header.Get("X-Forwarded-For"),
		RemoteAddr:   r.RemoteAddr,
	}
}

// SubmitForm handles POST /contact from the browser form. It always answers
// with a 303 redirect back to the contact page.
func (h *ContactHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	sub, err := h.parseSubmission(w, r)
	if err != nil {
		h.redirect(w, r, "error", "invalid_form")
		return
	}

	res, err := h.contactService.Ingest(r.Context(), contactInput(r, sub))
	if err != nil {
		logging.FromContext(r.Context()).Error("contact submit failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	switch res.Outcome {
	case service.OutcomeMissingFields:
		h.redirect(w, r, "error", "missing_fields")
	case service.OutcomeFieldTooLong:
		h.redirect(w, r, "error", "field_too_long")
	default:
		h.redirect(w, r, "sent", "1")
	}
}

func (h *ContactHandler) redirect(w http.ResponseWriter, r *http.Request, key, value string) {
	target, err := url.Parse(h.redirectURL)
	if err != nil {
		target = &url.URL{Path: "/contact"}
	}
	q := target.Query()
	q.Set(key, value)
	target.RawQuery = q.Encode()
	http.Redirect(w, r, target.String(), http.StatusSeeOther)
}

type submitResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type fieldErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

// SubmitAPI handles POST /api/contact.
// name, email, subject and message are required; phone is optional.
func (h *ContactHandler) SubmitAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
		return
	}

	sub, err := h.parseSubmission(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	res, err := h.contactService.Ingest(r.Context(), contactInput(r, sub))
	if err != nil {
		logging.FromContext(r.Context()).Error("contact submit failed", "error", err)
		writeError(w, http.StatusInternalServerError, "submit_failed")
		return
	}

	switch res.Outcome {
	case service.OutcomeMissingFields:
		writeJSON(w, http.StatusBadRequest, fieldErrorResponse{Error: "missing_fields", Fields: res.Missing})
	case service.OutcomeFieldTooLong:
		writeJSON(w, http.StatusBadRequest, fieldErrorResponse{Error: "field_too_long", Fields: res.TooLong})
	case service.OutcomeRejectedSilently:
		// Indistinguishable from a stored message, including a plausible id.
		writeJSON(w, http.StatusCreated, submitResponse{Message: contactSuccessText, ID: uuid.NewString()})
	default:
		writeJSON(w, http.StatusCreated, submitResponse{Message: contactSuccessText, ID: res.ID})
	}
}

// adminListResponse is the JSON response for GET /admin/api/messages.
type adminListResponse struct {
	Messages []*model.ContactMessage `json:"messages"`
	Total    int                     `json:"total"`
}

// AdminList handles GET /admin/api/messages (admin only), newest first.
// Supports query params: limit, offset.
func (h *ContactHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	opts := model.ContactListOptions{Limit: 20}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			opts.Limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			opts.Offset = n
		}
	}

	messages, err := h.contactService.List(r.Context(), opts)
	if err != nil {
		writeStoreError(w, r, err, "list_failed")
		return
	}
	total, err := h.contactService.Count(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "list_failed")
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.ContactMessage{}
	}
	writeJSON(w, http.StatusOK, adminListResponse{Messages: messages, Total: total})
}

// AdminGet handles GET /admin/api/messages/{id}.
func (h *ContactHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	msg, err := h.contactService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, r, err, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// AdminDelete handles DELETE /admin/api/messages/{id}.
func (h *ContactHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	if err := h.contactService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, r, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
