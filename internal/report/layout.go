// Package report lays out and renders the fleet PDF reports.
package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/MrJamesThe3rd/fleetledger/internal/fleet"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

// Letter page geometry in points, measured from the top-left corner.
const (
	PageWidth  = 612.0
	PageHeight = 792.0
	Margin     = 40.0

	rowStep          = 12.0
	listingBottom    = 40.0
	groupedBottom    = 60.0
	groupGap         = 10.0
	groupHeaderStep  = 14.0
	titleStep        = 20.0
	groupedTitleStep = 24.0
)

type Style struct {
	Bold bool
	Size float64
}

var (
	titleStyle        = Style{Bold: true, Size: 14}
	groupedTitleStyle = Style{Bold: true, Size: 16}
	groupStyle        = Style{Bold: true, Size: 12}
	bodyStyle         = Style{Size: 9}
)

// Line is one text baseline at Y points from the top of its page.
type Line struct {
	Y     float64
	Text  string
	Style Style
}

type Page struct {
	Lines []Line
}

type Document struct {
	Title string
	Pages []Page
}

// Names resolves the ids stored on a record; *fleet.Directory satisfies it.
type Names interface {
	VehicleName(id int64) string
	MemberName(id *int64) string
}

// cursor places lines top to bottom and starts a new page once a row
// lands past the bottom limit. Pages are only materialized when something
// is drawn on them, so a break after the last row adds no blank page.
type cursor struct {
	doc    *Document
	y      float64
	bottom float64
	open   bool
}

func newCursor(title string, bottom float64) *cursor {
	return &cursor{doc: &Document{Title: title}, y: Margin, bottom: bottom}
}

func (c *cursor) draw(text string, style Style) {
	if !c.open {
		c.doc.Pages = append(c.doc.Pages, Page{})
		c.open = true
	}

	page := &c.doc.Pages[len(c.doc.Pages)-1]
	page.Lines = append(page.Lines, Line{Y: c.y, Text: text, Style: style})
}

func (c *cursor) advance(dy float64) {
	c.y += dy
}

func (c *cursor) breakIfFull() {
	if c.y <= PageHeight-c.bottom {
		return
	}

	c.open = false
	c.y = Margin
}

func money(r *ledger.Record) (string, string) {
	return r.CompanyCredit.StringFixed(2), r.TotalProfitAfterTax.StringFixed(2)
}

func byID(records []*ledger.Record) []*ledger.Record {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b *ledger.Record) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return sorted
}

func joinCells(cells ...string) string {
	return strings.Join(cells, " | ")
}

// AllVehicles lays out every record, ordered by id, with a vehicle column.
func AllVehicles(records []*ledger.Record, names Names) *Document {
	c := newCursor("Fleet Expense Report", listingBottom)

	c.draw(c.doc.Title, titleStyle)
	c.advance(titleStep)
	c.draw(joinCells("ID", "Month", "Vehicle", "Member", "Credit", "Profit"), bodyStyle)
	c.advance(rowStep)

	for _, r := range byID(records) {
		credit, profit := money(r)
		c.draw(joinCells(fmt.Sprint(r.ID), r.Month, names.VehicleName(r.VehicleID), names.MemberName(r.MemberID), credit, profit), bodyStyle)
		c.advance(rowStep)
		c.breakIfFull()
	}

	return c.doc
}

// SingleVehicle lays out the records of one vehicle, ordered by id.
func SingleVehicle(vehicle *fleet.Vehicle, records []*ledger.Record, names Names) *Document {
	c := newCursor("Fleet Expense Report - "+vehicle.Name, listingBottom)

	c.draw(c.doc.Title, titleStyle)
	c.advance(titleStep)
	c.draw(joinCells("ID", "Month", "Member", "Credit", "Profit"), bodyStyle)
	c.advance(rowStep)

	for _, r := range byID(records) {
		credit, profit := money(r)
		c.draw(joinCells(fmt.Sprint(r.ID), r.Month, names.MemberName(r.MemberID), credit, profit), bodyStyle)
		c.advance(rowStep)
		c.breakIfFull()
	}

	return c.doc
}

// CombinedMonthly groups the records of month by vehicle, in catalog order.
// Vehicles without records for the month are left out.
func CombinedMonthly(month string, vehicles []*fleet.Vehicle, records []*ledger.Record, names Names) *Document {
	c := newCursor("Fleet Combined Expense Report - "+month, groupedBottom)

	c.draw(c.doc.Title, groupedTitleStyle)
	c.advance(groupedTitleStep)

	groups := make(map[int64][]*ledger.Record)

	for _, r := range byID(records) {
		if r.Month != month {
			continue
		}

		groups[r.VehicleID] = append(groups[r.VehicleID], r)
	}

	for _, v := range vehicles {
		recs := groups[v.ID]
		if len(recs) == 0 {
			continue
		}

		c.draw(fmt.Sprintf("Vehicle: %s (records: %d)", v.Name, len(recs)), groupStyle)
		c.advance(groupHeaderStep)
		c.draw(joinCells("ID", "Month", "Member", "Credit", "Profit"), bodyStyle)
		c.advance(rowStep)

		for _, r := range recs {
			credit, profit := money(r)
			c.draw(joinCells(fmt.Sprint(r.ID), r.Month, names.MemberName(r.MemberID), credit, profit), bodyStyle)
			c.advance(rowStep)
			c.breakIfFull()
		}

		c.advance(groupGap)
		c.breakIfFull()
	}

	return c.doc
}
