package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleetledger/internal/report"
)

func TestRender(t *testing.T) {
	doc := report.AllVehicles(many(120), names)

	out, err := report.Render(doc)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, len(doc.Pages), bytes.Count(out, []byte("/Type /Page\n")))
}

func TestRender_NonLatin(t *testing.T) {
	doc := &report.Document{
		Title: "Fleet Expense Report - Café",
		Pages: []report.Page{{Lines: []report.Line{{Y: 40, Text: "José", Style: report.Style{Size: 9}}}}},
	}

	_, err := report.Render(doc)
	assert.NoError(t, err)
}

func TestFilenames(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 30, 0, 0, time.FixedZone("X", 3600))

	assert.Equal(t, "fleet_report_20240601_113000.pdf", report.Filename(now))
	assert.Equal(t, "fleet_report_Car A_20240601_113000.pdf", report.VehicleFilename("Car A", now))
	assert.Equal(t, "fleet_report_2024-05.pdf", report.MonthlyFilename("2024-05"))
}
