package records

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

type recordResponse struct {
	ID                   int64           `json:"id"`
	Month                string          `json:"month"`
	VehicleID            int64           `json:"vehicle_id"`
	Vehicle              string          `json:"vehicle"`
	MemberID             *int64          `json:"member_id,omitempty"`
	Member               string          `json:"member,omitempty"`
	SingleWayKm          decimal.Decimal `json:"single_way_km"`
	DoubleWayKm          decimal.Decimal `json:"double_way_km"`
	SingleTotalCost      decimal.Decimal `json:"single_total_cost"`
	DoubleTotalCost      decimal.Decimal `json:"double_total_cost"`
	TDS1Percent          decimal.Decimal `json:"tds_1_percent"`
	Maintenance          decimal.Decimal `json:"maintenance"`
	DriverSalary         decimal.Decimal `json:"driver_salary"`
	VehicleMaintenance   decimal.Decimal `json:"vehicle_maintenance"`
	CNGGas               decimal.Decimal `json:"cng_gas"`
	Petrol               decimal.Decimal `json:"petrol"`
	SupervisorCommission decimal.Decimal `json:"supervisor_commission"`
	CompanyCredit        decimal.Decimal `json:"company_credit"`
	TotalDeduction       decimal.Decimal `json:"total_deduction"`
	TotalProfitAfterTax  decimal.Decimal `json:"total_profit_after_tax"`
	CreatedAt            time.Time       `json:"created_at"`
}

// Names resolves record references for display; *fleet.Directory satisfies it.
type Names interface {
	VehicleName(id int64) string
	MemberName(id *int64) string
}

func toResponse(r *ledger.Record, names Names) recordResponse {
	a := r.Amounts

	return recordResponse{
		ID:                   r.ID,
		Month:                r.Month,
		VehicleID:            r.VehicleID,
		Vehicle:              names.VehicleName(r.VehicleID),
		MemberID:             r.MemberID,
		Member:               names.MemberName(r.MemberID),
		SingleWayKm:          a.SingleWayKm,
		DoubleWayKm:          a.DoubleWayKm,
		SingleTotalCost:      a.SingleTotalCost,
		DoubleTotalCost:      a.DoubleTotalCost,
		TDS1Percent:          a.TDS1Percent,
		Maintenance:          a.Maintenance,
		DriverSalary:         a.DriverSalary,
		VehicleMaintenance:   a.VehicleMaintenance,
		CNGGas:               a.CNGGas,
		Petrol:               a.Petrol,
		SupervisorCommission: a.SupervisorCommission,
		CompanyCredit:        a.CompanyCredit,
		TotalDeduction:       r.TotalDeduction,
		TotalProfitAfterTax:  r.TotalProfitAfterTax,
		CreatedAt:            r.CreatedAt,
	}
}

func toResponseList(records []*ledger.Record, names Names) []recordResponse {
	resp := make([]recordResponse, len(records))
	for i, r := range records {
		resp[i] = toResponse(r, names)
	}

	return resp
}
