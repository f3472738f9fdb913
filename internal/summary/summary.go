package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleetledger/internal/fleet"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

const monthLayout = "2006-01"

type VehicleLister interface {
	ListVehicles(ctx context.Context) ([]*fleet.Vehicle, error)
}

type RecordLister interface {
	List(ctx context.Context, filter ledger.Filter) ([]*ledger.Record, error)
}

// VehicleTotals sums one vehicle's records for a month.
type VehicleTotals struct {
	VehicleID int64
	Name      string
	Records   int
	Credit    decimal.Decimal
	Deduction decimal.Decimal
	Profit    decimal.Decimal
}

type Summary struct {
	Month      string
	Credit     decimal.Decimal
	Deduction  decimal.Decimal
	Profit     decimal.Decimal
	PerVehicle []VehicleTotals
	Body       string
}

// Composer builds the monthly summary from the catalog and the ledger.
type Composer struct {
	vehicles VehicleLister
	records  RecordLister
	now      func() time.Time
	loc      *time.Location
}

type Option func(*Composer)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) { c.now = now }
}

// WithLocation sets the timezone that decides which month is "previous".
func WithLocation(loc *time.Location) Option {
	return func(c *Composer) { c.loc = loc }
}

func NewComposer(vehicles VehicleLister, records RecordLister, opts ...Option) *Composer {
	c := &Composer{
		vehicles: vehicles,
		records:  records,
		now:      time.Now,
		loc:      time.UTC,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// PreviousMonth returns the calendar month before now, as YYYY-MM.
func PreviousMonth(now time.Time) string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, -1, 0).Format(monthLayout)
}

// DefaultMonth is the month a summary covers when none is requested.
func (c *Composer) DefaultMonth() string {
	return PreviousMonth(c.now().In(c.loc))
}

// Compose totals the records whose month equals month exactly, per vehicle
// in catalog order. A blank month means the previous calendar month.
func (c *Composer) Compose(ctx context.Context, month string) (*Summary, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		month = c.DefaultMonth()
	}

	vehicles, err := c.vehicles.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}

	records, err := c.records.List(ctx, ledger.Filter{ExactMonth: month})
	if err != nil {
		return nil, fmt.Errorf("listing records for %s: %w", month, err)
	}

	byVehicle := make(map[int64][]*ledger.Record)
	for _, r := range records {
		byVehicle[r.VehicleID] = append(byVehicle[r.VehicleID], r)
	}

	s := &Summary{Month: month}

	for _, v := range vehicles {
		recs := byVehicle[v.ID]
		if len(recs) == 0 {
			continue
		}

		t := VehicleTotals{VehicleID: v.ID, Name: v.Name, Records: len(recs)}
		for _, r := range recs {
			t.Credit = t.Credit.Add(r.CompanyCredit)
			t.Deduction = t.Deduction.Add(r.TotalDeduction)
			t.Profit = t.Profit.Add(r.TotalProfitAfterTax)
		}

		s.Credit = s.Credit.Add(t.Credit)
		s.Deduction = s.Deduction.Add(t.Deduction)
		s.Profit = s.Profit.Add(t.Profit)
		s.PerVehicle = append(s.PerVehicle, t)
	}

	s.Body = body(s)

	return s, nil
}

func body(s *Summary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Fleet Monthly Summary for %s\n\n", s.Month)
	fmt.Fprintf(&sb, "Total Company Credit: %s\n", s.Credit.StringFixed(2))
	fmt.Fprintf(&sb, "Total Deductions: %s\n", s.Deduction.StringFixed(2))
	fmt.Fprintf(&sb, "Total Profit After Tax: %s\n\n", s.Profit.StringFixed(2))
	sb.WriteString("Per vehicle:")

	for _, t := range s.PerVehicle {
		fmt.Fprintf(&sb, "\n- %s: records=%d, credit=%s, deduction=%s, profit=%s",
			t.Name, t.Records, t.Credit.StringFixed(2), t.Deduction.StringFixed(2), t.Profit.StringFixed(2))
	}

	if len(s.PerVehicle) == 0 {
		sb.WriteString("\nNo records for the specified month.")
	}

	return sb.String()
}
