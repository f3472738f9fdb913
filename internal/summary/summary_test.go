package summary_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleetledger/internal/fleet"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
	"github.com/MrJamesThe3rd/fleetledger/internal/summary"
)

type fakeVehicles struct {
	vehicles []*fleet.Vehicle
	err      error
}

func (f *fakeVehicles) ListVehicles(context.Context) ([]*fleet.Vehicle, error) {
	return f.vehicles, f.err
}

// fakeRecords applies only the ExactMonth predicate.
type fakeRecords struct {
	records []*ledger.Record
	filters []ledger.Filter
}

func (f *fakeRecords) List(_ context.Context, filter ledger.Filter) ([]*ledger.Record, error) {
	f.filters = append(f.filters, filter)

	var out []*ledger.Record

	for _, r := range f.records {
		if filter.ExactMonth != "" && r.Month != filter.ExactMonth {
			continue
		}

		out = append(out, r)
	}

	return out, nil
}

func rec(month string, vehicleID int64, credit, petrol string) *ledger.Record {
	r := &ledger.Record{
		Month:     month,
		VehicleID: vehicleID,
		Amounts: ledger.Amounts{
			CompanyCredit: decimal.RequireFromString(credit),
			Petrol:        decimal.RequireFromString(petrol),
		},
	}
	r.Derive()

	return r
}

var vehicles = []*fleet.Vehicle{
	{ID: 2, Name: "Car B"},
	{ID: 1, Name: "Car A"},
	{ID: 3, Name: "Car C"},
}

func TestPreviousMonth(t *testing.T) {
	tests := []struct {
		now  time.Time
		want string
	}{
		{now: time.Date(2024, 6, 1, 0, 5, 0, 0, time.UTC), want: "2024-05"},
		{now: time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC), want: "2023-12"},
		{now: time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC), want: "2024-02"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, summary.PreviousMonth(tt.now))
		})
	}
}

func TestComposer_Compose(t *testing.T) {
	records := &fakeRecords{records: []*ledger.Record{
		rec("2024-05", 1, "1000", "100"),
		rec("2024-05", 2, "500.5", "0.25"),
		rec("2024-05", 1, "200", "50"),
		rec("2024-04", 3, "999", "1"),
	}}

	c := summary.NewComposer(&fakeVehicles{vehicles: vehicles}, records)

	got, err := c.Compose(context.Background(), "2024-05")
	require.NoError(t, err)

	want := "Fleet Monthly Summary for 2024-05\n" +
		"\n" +
		"Total Company Credit: 1700.50\n" +
		"Total Deductions: 150.25\n" +
		"Total Profit After Tax: 1550.25\n" +
		"\n" +
		"Per vehicle:\n" +
		"- Car B: records=1, credit=500.50, deduction=0.25, profit=500.25\n" +
		"- Car A: records=2, credit=1200.00, deduction=150.00, profit=1050.00"

	assert.Equal(t, want, got.Body)
	assert.Equal(t, "2024-05", got.Month)
	require.Len(t, got.PerVehicle, 2)
	assert.Equal(t, "Car B", got.PerVehicle[0].Name)
	assert.Equal(t, []ledger.Filter{{ExactMonth: "2024-05"}}, records.filters)
}

func TestComposer_NoRecords(t *testing.T) {
	c := summary.NewComposer(&fakeVehicles{vehicles: vehicles}, &fakeRecords{})

	got, err := c.Compose(context.Background(), "2030-01")
	require.NoError(t, err)

	assert.Equal(t, "Fleet Monthly Summary for 2030-01\n\n"+
		"Total Company Credit: 0.00\n"+
		"Total Deductions: 0.00\n"+
		"Total Profit After Tax: 0.00\n\n"+
		"Per vehicle:\n"+
		"No records for the specified month.", got.Body)
	assert.Empty(t, got.PerVehicle)
}

func TestComposer_DefaultMonth(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	// 2024-01-31 20:00 UTC is already February in IST.
	now := func() time.Time { return time.Date(2024, 1, 31, 20, 0, 0, 0, time.UTC) }

	tests := []struct {
		name string
		loc  *time.Location
		want string
	}{
		{name: "UTC", loc: time.UTC, want: "2023-12"},
		{name: "ReferenceZone", loc: kolkata, want: "2024-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := summary.NewComposer(&fakeVehicles{}, &fakeRecords{},
				summary.WithClock(now), summary.WithLocation(tt.loc))

			got, err := c.Compose(context.Background(), "  ")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Month)
		})
	}
}

func TestComposer_VehicleError(t *testing.T) {
	c := summary.NewComposer(&fakeVehicles{err: errors.New("db down")}, &fakeRecords{})

	_, err := c.Compose(context.Background(), "2024-05")
	assert.Error(t, err)
}

func TestComposer_Breakdown(t *testing.T) {
	records := &fakeRecords{records: []*ledger.Record{
		rec("2024-05", 1, "100.004", "10"),
		rec("2024-04", 1, "50", "5.555"),
		rec("2024-04", 2, "10", "0"),
	}}

	c := summary.NewComposer(&fakeVehicles{vehicles: vehicles}, records)

	got, err := c.Breakdown(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Car B", got[0].Name)
	assert.Equal(t, 1, got[0].Records)

	carA := got[1]
	assert.Equal(t, 2, carA.Records)
	assert.Equal(t, "150", carA.CompanyCredit.String())
	assert.Equal(t, "15.56", carA.Petrol.String())
	assert.Equal(t, "15.56", carA.TotalDeduction.String())
	assert.Equal(t, "134.45", carA.TotalProfit.String())

	assert.Equal(t, 0, got[2].Records)
	assert.True(t, got[2].TotalProfit.IsZero())
	assert.Equal(t, []ledger.Filter{{}}, records.filters)
}
