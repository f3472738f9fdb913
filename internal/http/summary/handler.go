package summary

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleetledger/internal/http/respond"
	"github.com/MrJamesThe3rd/fleetledger/internal/monthly"
	"github.com/MrJamesThe3rd/fleetledger/internal/summary"
)

type Handler struct {
	composer *summary.Composer
	job      *monthly.Job
}

func NewHandler(composer *summary.Composer, job *monthly.Job) *Handler {
	return &Handler{composer: composer, job: job}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.get)
	r.Post("/summary/send", h.send)
	r.Get("/charts", h.charts)
}

type vehicleTotalsResponse struct {
	VehicleID int64           `json:"vehicle_id"`
	Name      string          `json:"name"`
	Records   int             `json:"records"`
	Credit    decimal.Decimal `json:"credit"`
	Deduction decimal.Decimal `json:"deduction"`
	Profit    decimal.Decimal `json:"profit"`
}

type summaryResponse struct {
	Month      string                  `json:"month"`
	Credit     decimal.Decimal         `json:"credit"`
	Deduction  decimal.Decimal         `json:"deduction"`
	Profit     decimal.Decimal         `json:"profit"`
	PerVehicle []vehicleTotalsResponse `json:"per_vehicle"`
	Body       string                  `json:"body"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.composer.Compose(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := summaryResponse{
		Month:      s.Month,
		Credit:     s.Credit,
		Deduction:  s.Deduction,
		Profit:     s.Profit,
		PerVehicle: make([]vehicleTotalsResponse, len(s.PerVehicle)),
		Body:       s.Body,
	}

	for i, t := range s.PerVehicle {
		resp.PerVehicle[i] = vehicleTotalsResponse(t)
	}

	respond.JSON(w, http.StatusOK, resp)
}

// send runs the monthly job on demand. Delivery failures are reported in
// the body with a 200; only the outcome of the request itself sets the status.
func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.job.Run(r.Context(), r.URL.Query().Get("month")))
}

type breakdownResponse struct {
	VehicleID            int64           `json:"vehicle_id"`
	Name                 string          `json:"name"`
	Records              int             `json:"records"`
	CompanyCredit        decimal.Decimal `json:"company_credit"`
	TDS1Percent          decimal.Decimal `json:"tds_1_percent"`
	Maintenance          decimal.Decimal `json:"maintenance"`
	DriverSalary         decimal.Decimal `json:"driver_salary"`
	VehicleMaintenance   decimal.Decimal `json:"vehicle_maintenance"`
	CNGGas               decimal.Decimal `json:"cng_gas"`
	Petrol               decimal.Decimal `json:"petrol"`
	SupervisorCommission decimal.Decimal `json:"supervisor_commission"`
	TotalDeduction       decimal.Decimal `json:"total_deduction"`
	TotalProfitAfterTax  decimal.Decimal `json:"total_profit_after_tax"`
}

func (h *Handler) charts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.composer.Breakdown(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]breakdownResponse, len(rows))
	for i, b := range rows {
		resp[i] = breakdownResponse{
			VehicleID:            b.VehicleID,
			Name:                 b.Name,
			Records:              b.Records,
			CompanyCredit:        b.CompanyCredit,
			TDS1Percent:          b.TDS1Percent,
			Maintenance:          b.Maintenance,
			DriverSalary:         b.DriverSalary,
			VehicleMaintenance:   b.VehicleMaintenance,
			CNGGas:               b.CNGGas,
			Petrol:               b.Petrol,
			SupervisorCommission: b.SupervisorCommission,
			TotalDeduction:       b.TotalDeduction,
			TotalProfitAfterTax:  b.TotalProfit,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}
