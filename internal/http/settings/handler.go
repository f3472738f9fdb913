package settings

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fleetledger/internal/http/respond"
	"github.com/MrJamesThe3rd/fleetledger/internal/settings"
)

// passwordMask replaces a stored SMTP password in responses. Writing it
// back leaves the stored password untouched.
const passwordMask = "********"

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.put)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	values, err := h.svc.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if values[settings.KeySMTPPass] != "" {
		values[settings.KeySMTPPass] = passwordMask
	}

	respond.JSON(w, http.StatusOK, values)
}

func (h *Handler) put(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for key := range values {
		if !settings.IsKnown(key) {
			http.Error(w, fmt.Sprintf("unknown setting %q", key), http.StatusBadRequest)
			return
		}
	}

	if values[settings.KeySMTPPass] == passwordMask {
		delete(values, settings.KeySMTPPass)
	}

	if err := h.svc.SetAll(r.Context(), values); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.get(w, r)
}
