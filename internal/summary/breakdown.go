package summary

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

// VehicleBreakdown holds all-time sums of every cost component of a
// vehicle, rounded to two decimals.
type VehicleBreakdown struct {
	VehicleID            int64
	Name                 string
	Records              int
	CompanyCredit        decimal.Decimal
	TDS1Percent          decimal.Decimal
	Maintenance          decimal.Decimal
	DriverSalary         decimal.Decimal
	VehicleMaintenance   decimal.Decimal
	CNGGas               decimal.Decimal
	Petrol               decimal.Decimal
	SupervisorCommission decimal.Decimal
	TotalDeduction       decimal.Decimal
	TotalProfit          decimal.Decimal
}

func (b *VehicleBreakdown) add(r *ledger.Record) {
	b.Records++
	b.CompanyCredit = b.CompanyCredit.Add(r.CompanyCredit)
	b.TDS1Percent = b.TDS1Percent.Add(r.TDS1Percent)
	b.Maintenance = b.Maintenance.Add(r.Maintenance)
	b.DriverSalary = b.DriverSalary.Add(r.DriverSalary)
	b.VehicleMaintenance = b.VehicleMaintenance.Add(r.VehicleMaintenance)
	b.CNGGas = b.CNGGas.Add(r.CNGGas)
	b.Petrol = b.Petrol.Add(r.Petrol)
	b.SupervisorCommission = b.SupervisorCommission.Add(r.SupervisorCommission)
	b.TotalDeduction = b.TotalDeduction.Add(r.TotalDeduction)
	b.TotalProfit = b.TotalProfit.Add(r.TotalProfitAfterTax)
}

func (b *VehicleBreakdown) round() {
	for _, d := range []*decimal.Decimal{
		&b.CompanyCredit, &b.TDS1Percent, &b.Maintenance, &b.DriverSalary,
		&b.VehicleMaintenance, &b.CNGGas, &b.Petrol, &b.SupervisorCommission,
		&b.TotalDeduction, &b.TotalProfit,
	} {
		*d = d.Round(2)
	}
}

// Breakdown returns one entry per vehicle in catalog order, including
// vehicles without records.
func (c *Composer) Breakdown(ctx context.Context) ([]VehicleBreakdown, error) {
	vehicles, err := c.vehicles.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}

	records, err := c.records.List(ctx, ledger.Filter{})
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	index := make(map[int64]int, len(vehicles))
	out := make([]VehicleBreakdown, len(vehicles))

	for i, v := range vehicles {
		index[v.ID] = i
		out[i] = VehicleBreakdown{VehicleID: v.ID, Name: v.Name}
	}

	for _, r := range records {
		i, ok := index[r.VehicleID]
		if !ok {
			continue
		}

		out[i].add(r)
	}

	for i := range out {
		out[i].round()
	}

	return out, nil
}
