package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrUnknownVehicle = errors.New("unknown vehicle")
	ErrUnknownMember  = errors.New("unknown member")
)

// Input field names, shared by forms, JSON payloads and CSV columns.
const (
	FieldSingleWayKm          = "single_way_km"
	FieldDoubleWayKm          = "double_way_km"
	FieldSingleTotalCost      = "single_total_cost"
	FieldDoubleTotalCost      = "double_total_cost"
	FieldTDS1Percent          = "tds_1_percent"
	FieldMaintenance          = "maintenance"
	FieldDriverSalary         = "driver_salary"
	FieldVehicleMaintenance   = "vehicle_maintenance"
	FieldCNGGas               = "cng_gas"
	FieldPetrol               = "petrol"
	FieldSupervisorCommission = "supervisor_commission"
	FieldCompanyCredit        = "company_credit"
)

// AmountFields lists the raw amount inputs in storage and CSV order.
var AmountFields = []string{
	FieldSingleWayKm,
	FieldDoubleWayKm,
	FieldSingleTotalCost,
	FieldDoubleTotalCost,
	FieldTDS1Percent,
	FieldMaintenance,
	FieldDriverSalary,
	FieldVehicleMaintenance,
	FieldCNGGas,
	FieldPetrol,
	FieldSupervisorCommission,
	FieldCompanyCredit,
}

// Amounts holds the raw figures entered for a record.
type Amounts struct {
	SingleWayKm          decimal.Decimal
	DoubleWayKm          decimal.Decimal
	SingleTotalCost      decimal.Decimal
	DoubleTotalCost      decimal.Decimal
	TDS1Percent          decimal.Decimal
	Maintenance          decimal.Decimal
	DriverSalary         decimal.Decimal
	VehicleMaintenance   decimal.Decimal
	CNGGas               decimal.Decimal
	Petrol               decimal.Decimal
	SupervisorCommission decimal.Decimal
	CompanyCredit        decimal.Decimal
}

// fields returns pointers to the amounts in AmountFields order.
func (a *Amounts) fields() []*decimal.Decimal {
	return []*decimal.Decimal{
		&a.SingleWayKm,
		&a.DoubleWayKm,
		&a.SingleTotalCost,
		&a.DoubleTotalCost,
		&a.TDS1Percent,
		&a.Maintenance,
		&a.DriverSalary,
		&a.VehicleMaintenance,
		&a.CNGGas,
		&a.Petrol,
		&a.SupervisorCommission,
		&a.CompanyCredit,
	}
}

// Values returns the amounts in AmountFields order.
func (a Amounts) Values() []decimal.Decimal {
	ptrs := a.fields()

	out := make([]decimal.Decimal, len(ptrs))
	for i, p := range ptrs {
		out[i] = *p
	}

	return out
}

// Deduction is the sum of every cost component charged against the credit.
func (a Amounts) Deduction() decimal.Decimal {
	return decimal.Sum(
		a.TDS1Percent,
		a.Maintenance,
		a.DriverSalary,
		a.VehicleMaintenance,
		a.CNGGas,
		a.Petrol,
		a.SupervisorCommission,
	)
}

// ParseAmounts reads every amount field through get. Blank or unparsable
// values become zero.
func ParseAmounts(get func(field string) string) Amounts {
	var a Amounts

	ptrs := a.fields()
	for i, name := range AmountFields {
		*ptrs[i] = parseAmount(get(name))
	}

	return a
}

const maxAmountExponent = 18

func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}

	// Summing aligns exponents, so a huge one would expand to that many digits.
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero
	}

	return d
}

// Record is one month of expenses for a vehicle, optionally tied to a member.
type Record struct {
	ID        int64
	Month     string
	VehicleID int64
	MemberID  *int64

	Amounts

	TotalDeduction      decimal.Decimal
	TotalProfitAfterTax decimal.Decimal
	CreatedAt           time.Time
}

// Derive recomputes the total deduction and the profit after tax.
func (r *Record) Derive() {
	r.TotalDeduction = r.Amounts.Deduction()
	r.TotalProfitAfterTax = r.CompanyCredit.Sub(r.TotalDeduction)
}
