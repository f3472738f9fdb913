package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fleetledger/internal/fleet"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/respond"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

type Handler struct {
	svc     *ledger.Service
	catalog *fleet.Service
}

func NewHandler(svc *ledger.Service, catalog *fleet.Service) *Handler {
	return &Handler{svc: svc, catalog: catalog}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

// amountValue accepts either a JSON string or a JSON number and keeps its
// literal text so no precision is lost before decimal parsing.
type amountValue string

func (v *amountValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*v = amountValue(s)

		return nil
	}

	if len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')) {
		*v = amountValue(data)
		return nil
	}

	// null, booleans and anything else read as blank.
	*v = ""

	return nil
}

type createRecordRequest struct {
	Month     string                 `json:"month"`
	VehicleID int64                  `json:"vehicle_id" validate:"required,gt=0"`
	MemberID  *int64                 `json:"member_id" validate:"omitempty,gt=0"`
	Amounts   map[string]amountValue `json:"amounts"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := respond.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Create(r.Context(), ledger.CreateParams{
		Month:     req.Month,
		VehicleID: req.VehicleID,
		MemberID:  req.MemberID,
		Amounts: ledger.ParseAmounts(func(field string) string {
			return string(req.Amounts[field])
		}),
	})
	if err != nil {
		if errors.Is(err, ledger.ErrUnknownVehicle) || errors.Is(err, ledger.ErrUnknownMember) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	dir, err := h.catalog.Directory(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(rec, dir))
}

// list returns the newest records first.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := ledger.ParseFilter(q.Get("vehicle_id"), q.Get("month"), q.Get("start_month"), q.Get("end_month"))
	filter.Newest = true

	records, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dir, err := h.catalog.Directory(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(records, dir))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	dir, err := h.catalog.Directory(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(rec, dir))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
