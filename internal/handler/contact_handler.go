package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/parduccinward/tukuy-cms/internal/model"
	"github.com/parduccinward/tukuy-cms/internal/service"
	"github.com/parduccinward/tukuy-cms/internal/validation"
)

const maxBodyBytes = 64 << 10

const (
	msgRateLimited = "Has enviado muchos mensajes. Intenta nuevamente en unos minutos"
	msgInvalid     = "Datos inválidos en el formulario"
	msgServer      = "Error del servidor"
)

// ContactHandler handles contact form submission.
type ContactHandler struct {
	contactService    service.ContactService
	trustedProxyCount int
}

// NewContactHandler creates a ContactHandler. trustedProxyCount is the number
// of reverse proxies that append to X-Forwarded-For in front of the server.
func NewContactHandler(contactService service.ContactService, trustedProxyCount int) *ContactHandler {
	return &ContactHandler{contactService: contactService, trustedProxyCount: trustedProxyCount}
}

// submitResponse is the JSON body of every POST /api/contact response.
type submitResponse struct {
	OK     bool               `json:"ok"`
	Error  string             `json:"error,omitempty"`
	Fields []model.FieldError `json:"fields,omitempty"`
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decode := func() (model.ContactRequest, error) {
		var req model.ContactRequest
		err := json.NewDecoder(body).Decode(&req)
		return req, err
	}

	err := h.contactService.Submit(r.Context(), ClientIdentifier(r, h.trustedProxyCount), decode)
	switch service.OutcomeOf(err) {
	case model.OutcomeAccepted:
		writeJSON(w, http.StatusOK, submitResponse{OK: true})
	case model.OutcomeRateLimited:
		retry := 1
		var rl *service.RateLimitedError
		if errors.As(err, &rl) && rl.RetryAfterSeconds > 0 {
			retry = rl.RetryAfterSeconds
		}
		w.Header().Set("Retry-After", strconv.Itoa(retry))
		writeJSON(w, http.StatusTooManyRequests, submitResponse{Error: msgRateLimited})
	case model.OutcomeInvalid:
		var verrs *validation.Errors
		resp := submitResponse{Error: msgInvalid}
		if errors.As(err, &verrs) {
			resp.Fields = verrs.Fields
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case model.OutcomeSpamRejected:
		// Indistinguishable from a failed validation, minus the field list.
		writeJSON(w, http.StatusBadRequest, submitResponse{Error: msgInvalid})
	default:
		writeJSON(w, http.StatusInternalServerError, submitResponse{Error: msgServer})
	}
}
