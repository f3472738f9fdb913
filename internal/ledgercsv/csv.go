// Package ledgercsv converts expense records to and from the fleet CSV
// interchange format.
package ledgercsv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

const ContentType = "text/csv"

const (
	ColumnID                  = "id"
	ColumnMonth               = "month"
	ColumnVehicle             = "vehicle"
	ColumnMember              = "member"
	ColumnTotalDeduction      = "total_deduction"
	ColumnTotalProfitAfterTax = "total_profit_after_tax"
)

// Columns is the fixed header of every exported file.
var Columns = append(
	append([]string{ColumnID, ColumnMonth, ColumnVehicle, ColumnMember}, ledger.AmountFields...),
	ColumnTotalDeduction,
	ColumnTotalProfitAfterTax,
)

// Names resolves the ids stored on a record; *fleet.Directory satisfies it.
type Names interface {
	VehicleName(id int64) string
	MemberName(id *int64) string
}

// Export writes the header and one row per record, in the given order.
func Export(w io.Writer, records []*ledger.Record, names Names) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := make([]string, len(Columns))

	for _, r := range records {
		row = row[:0]
		row = append(row,
			strconv.FormatInt(r.ID, 10),
			r.Month,
			names.VehicleName(r.VehicleID),
			names.MemberName(r.MemberID),
		)

		for _, v := range r.Amounts.Values() {
			row = append(row, v.String())
		}

		row = append(row, r.TotalDeduction.String(), r.TotalProfitAfterTax.String())

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record %d: %w", r.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

func ExportBytes(records []*ledger.Record, names Names) ([]byte, error) {
	var buf bytes.Buffer
	if err := Export(&buf, records, names); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Filename names an ad-hoc export taken at now.
func Filename(now time.Time) string {
	return "fleet_records_" + now.UTC().Format("20060102_150405") + ".csv"
}

// MonthlyFilename names the archive written by the monthly summary job.
func MonthlyFilename(month string) string {
	return "fleet_records_" + month + ".csv"
}
