package export

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fleetledger/internal/export"
	"github.com/MrJamesThe3rd/fleetledger/internal/fleet"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/respond"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledgercsv"
	"github.com/MrJamesThe3rd/fleetledger/internal/report"
)

// Handler delivers records as CSV and PDF downloads.
type Handler struct {
	records *ledger.Service
	catalog *fleet.Service
	now     func() time.Time
}

func NewHandler(records *ledger.Service, catalog *fleet.Service) *Handler {
	return &Handler{records: records, catalog: catalog, now: time.Now}
}

// Routes mounts the PDF reports.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/fleet.pdf", h.fleetReport)
	r.Get("/vehicles/{id}.pdf", h.vehicleReport)
	r.Get("/monthly/{month}.pdf", h.monthlyReport)
}

// CSV exports the records matching the query filters, oldest first.
func (h *Handler) CSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ledger.ParseFilter(q.Get("vehicle_id"), q.Get("month"), q.Get("start_month"), q.Get("end_month"))

	records, dir, ok := h.load(w, r, filter)
	if !ok {
		return
	}

	data, err := ledgercsv.ExportBytes(records, dir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respond.File(w, ledgercsv.Filename(h.now()), ledgercsv.ContentType, data)
}

func (h *Handler) fleetReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ledger.ParseFilter(q.Get("vehicle_id"), "", q.Get("start_month"), q.Get("end_month"))

	records, dir, ok := h.load(w, r, filter)
	if !ok {
		return
	}

	h.pdf(w, report.AllVehicles(records, dir), report.Filename(h.now()))
}

func (h *Handler) vehicleReport(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "invalid vehicle id", http.StatusBadRequest)
		return
	}

	vehicle, err := h.catalog.GetVehicle(r.Context(), id)
	if err != nil {
		if errors.Is(err, fleet.ErrNotFound) {
			http.Error(w, "vehicle not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	q := r.URL.Query()
	filter := ledger.ParseFilter("", "", q.Get("start_month"), q.Get("end_month"))
	filter.VehicleID = &vehicle.ID

	records, dir, ok := h.load(w, r, filter)
	if !ok {
		return
	}

	filename := report.VehicleFilename(export.SafeName(vehicle.Name), h.now())
	h.pdf(w, report.SingleVehicle(vehicle, records, dir), filename)
}

func (h *Handler) monthlyReport(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")

	records, dir, ok := h.load(w, r, ledger.Filter{ExactMonth: month})
	if !ok {
		return
	}

	vehicles, err := h.catalog.ListVehicles(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.pdf(w, report.CombinedMonthly(month, vehicles, records, dir), report.MonthlyFilename(export.SafeName(month)))
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request, filter ledger.Filter) ([]*ledger.Record, *fleet.Directory, bool) {
	records, err := h.records.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, nil, false
	}

	dir, err := h.catalog.Directory(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, nil, false
	}

	return records, dir, true
}

func (h *Handler) pdf(w http.ResponseWriter, doc *report.Document, filename string) {
	data, err := report.Render(doc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respond.File(w, filename, report.ContentType, data)
}
