package report_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleetledger/internal/fleet"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
	"github.com/MrJamesThe3rd/fleetledger/internal/report"
)

var (
	carA = &fleet.Vehicle{ID: 1, Name: "Car A"}
	carB = &fleet.Vehicle{ID: 2, Name: "Car B"}
	carC = &fleet.Vehicle{ID: 3, Name: "Car C"}

	names = fleet.NewDirectory(
		[]*fleet.Vehicle{carA, carB, carC},
		[]*fleet.Member{{ID: 1, Name: "Driver1"}},
	)
)

func record(id int64, month string, vehicleID int64, credit string) *ledger.Record {
	r := &ledger.Record{
		ID:        id,
		Month:     month,
		VehicleID: vehicleID,
		Amounts: ledger.Amounts{
			CompanyCredit: decimal.RequireFromString(credit),
			Petrol:        decimal.RequireFromString("0.125"),
		},
	}
	r.Derive()

	return r
}

func many(n int) []*ledger.Record {
	out := make([]*ledger.Record, n)
	for i := range out {
		out[i] = record(int64(i+1), "2024-05", carA.ID, "1")
	}

	return out
}

func TestAllVehicles(t *testing.T) {
	memberID := int64(1)

	r2 := record(2, "2024-05", carB.ID, "100")
	r1 := record(1, "2024-04", carA.ID, "50.5")
	r1.MemberID = &memberID

	doc := report.AllVehicles([]*ledger.Record{r2, r1}, names)

	require.Len(t, doc.Pages, 1)
	assert.Equal(t, "Fleet Expense Report", doc.Title)
	assert.Equal(t, []report.Line{
		{Y: 40, Text: "Fleet Expense Report", Style: report.Style{Bold: true, Size: 14}},
		{Y: 60, Text: "ID | Month | Vehicle | Member | Credit | Profit", Style: report.Style{Size: 9}},
		{Y: 72, Text: "1 | 2024-04 | Car A | Driver1 | 50.50 | 50.38", Style: report.Style{Size: 9}},
		{Y: 84, Text: "2 | 2024-05 | Car B |  | 100.00 | 99.88", Style: report.Style{Size: 9}},
	}, doc.Pages[0].Lines)
}

func TestAllVehicles_Pagination(t *testing.T) {
	t.Run("ExactlyFullPage", func(t *testing.T) {
		doc := report.AllVehicles(many(57), names)

		require.Len(t, doc.Pages, 1, "a break after the last row adds no blank page")
		assert.Len(t, doc.Pages[0].Lines, 59)
		assert.Equal(t, 744.0, doc.Pages[0].Lines[58].Y)
	})

	t.Run("Overflow", func(t *testing.T) {
		doc := report.AllVehicles(many(57+60+1), names)

		require.Len(t, doc.Pages, 3)
		assert.Len(t, doc.Pages[1].Lines, 60)
		assert.Equal(t, 40.0, doc.Pages[1].Lines[0].Y)
		assert.Equal(t, 748.0, doc.Pages[1].Lines[59].Y)

		require.Len(t, doc.Pages[2].Lines, 1)
		assert.Equal(t, "118 | 2024-05 | Car A |  | 1.00 | 0.88", doc.Pages[2].Lines[0].Text)
	})
}

func TestSingleVehicle(t *testing.T) {
	doc := report.SingleVehicle(carB, []*ledger.Record{record(9, "2024-05", carB.ID, "3")}, names)

	require.Len(t, doc.Pages, 1)
	assert.Equal(t, "Fleet Expense Report - Car B", doc.Title)

	lines := doc.Pages[0].Lines
	require.Len(t, lines, 3)
	assert.Equal(t, "ID | Month | Member | Credit | Profit", lines[1].Text)
	assert.Equal(t, "9 | 2024-05 |  | 3.00 | 2.88", lines[2].Text)
}

func TestCombinedMonthly(t *testing.T) {
	records := []*ledger.Record{
		record(1, "2024-05", carA.ID, "10"),
		record(2, "2024-05", carB.ID, "20"),
		record(3, "2024-04", carC.ID, "30"),
		record(4, "2024-05", carA.ID, "40"),
	}

	// Catalog order decides group order.
	doc := report.CombinedMonthly("2024-05", []*fleet.Vehicle{carB, carA, carC}, records, names)

	require.Len(t, doc.Pages, 1)
	assert.Equal(t, []report.Line{
		{Y: 40, Text: "Fleet Combined Expense Report - 2024-05", Style: report.Style{Bold: true, Size: 16}},
		{Y: 64, Text: "Vehicle: Car B (records: 1)", Style: report.Style{Bold: true, Size: 12}},
		{Y: 78, Text: "ID | Month | Member | Credit | Profit", Style: report.Style{Size: 9}},
		{Y: 90, Text: "2 | 2024-05 |  | 20.00 | 19.88", Style: report.Style{Size: 9}},
		{Y: 112, Text: "Vehicle: Car A (records: 2)", Style: report.Style{Bold: true, Size: 12}},
		{Y: 126, Text: "ID | Month | Member | Credit | Profit", Style: report.Style{Size: 9}},
		{Y: 138, Text: "1 | 2024-05 |  | 10.00 | 9.88", Style: report.Style{Size: 9}},
		{Y: 150, Text: "4 | 2024-05 |  | 40.00 | 39.88", Style: report.Style{Size: 9}},
	}, doc.Pages[0].Lines)
}

func TestCombinedMonthly_Pagination(t *testing.T) {
	doc := report.CombinedMonthly("2024-05", []*fleet.Vehicle{carA}, many(55), names)

	require.Len(t, doc.Pages, 2)
	// Title, group header, column header and 54 rows fit above the 60pt limit.
	assert.Len(t, doc.Pages[0].Lines, 57)
	require.Len(t, doc.Pages[1].Lines, 1)
	assert.Equal(t, 40.0, doc.Pages[1].Lines[0].Y)
}

func TestCombinedMonthly_Empty(t *testing.T) {
	doc := report.CombinedMonthly("2030-01", []*fleet.Vehicle{carA}, nil, names)

	require.Len(t, doc.Pages, 1)
	assert.Len(t, doc.Pages[0].Lines, 1)
}
