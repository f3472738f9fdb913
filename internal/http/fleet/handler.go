package fleet

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fleetledger/internal/fleet"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/respond"
)

type Handler struct {
	svc *fleet.Service
}

func NewHandler(svc *fleet.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/vehicles", h.listVehicles)
	r.Post("/vehicles", h.createVehicle)
	r.Delete("/vehicles/{id}", h.deleteVehicle)

	r.Get("/members", h.listMembers)
	r.Post("/members", h.createMember)
	r.Delete("/members/{id}", h.deleteMember)

	r.Post("/seed", h.seed)
}

type vehicleResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type memberResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"member_type"`
}

func toVehicleResponse(v *fleet.Vehicle) vehicleResponse {
	return vehicleResponse{ID: v.ID, Name: v.Name}
}

func toMemberResponse(m *fleet.Member) memberResponse {
	return memberResponse{ID: m.ID, Name: m.Name, Type: m.Type}
}

type createVehicleRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *Handler) createVehicle(w http.ResponseWriter, r *http.Request) {
	var req createVehicleRequest
	if err := respond.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := h.svc.CreateVehicle(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, fleet.ErrBlankName) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	respond.JSON(w, http.StatusCreated, toVehicleResponse(v))
}

func (h *Handler) listVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.svc.ListVehicles(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]vehicleResponse, len(vehicles))
	for i, v := range vehicles {
		resp[i] = toVehicleResponse(v)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) deleteVehicle(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.svc.DeleteVehicle)
}

type createMemberRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"member_type"`
}

func (h *Handler) createMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := respond.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.svc.CreateMember(r.Context(), req.Name, req.Type)
	if err != nil {
		if errors.Is(err, fleet.ErrBlankName) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	respond.JSON(w, http.StatusCreated, toMemberResponse(m))
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.ListMembers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]memberResponse, len(members))
	for i, m := range members {
		resp[i] = toMemberResponse(m)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) deleteMember(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.svc.DeleteMember)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, del func(ctx context.Context, id int64) error) {
	id, ok := respond.PathID(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := del(r.Context(), id); err != nil {
		if errors.Is(err, fleet.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) seed(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Seed(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
