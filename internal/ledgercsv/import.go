package ledgercsv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	enc "github.com/MrJamesThe3rd/fleetledger/internal/encoding"
	"github.com/MrJamesThe3rd/fleetledger/internal/fleet"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

//go:generate mockgen -source=import.go -destination=import_mock.go -package=ledgercsv
type Catalog interface {
	FindOrCreateVehicle(ctx context.Context, name string) (*fleet.Vehicle, error)
	FindOrCreateMember(ctx context.Context, name string) (*fleet.Member, error)
}

type Recorder interface {
	Create(ctx context.Context, params ledger.CreateParams) (*ledger.Record, error)
}

// RowError describes a data row that could not be imported. Line is the
// 1-based line in the input file.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type Result struct {
	Created int        `json:"created"`
	Skipped int        `json:"skipped"`
	Failed  int        `json:"failed"`
	Errors  []RowError `json:"errors,omitempty"`
}

// Importer reconciles CSV rows against the catalog and records them.
type Importer struct {
	catalog Catalog
	records Recorder
}

func NewImporter(catalog Catalog, records Recorder) *Importer {
	return &Importer{catalog: catalog, records: records}
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

func (c colIndex) get(row []string, name string) string {
	idx, ok := c[name]
	if !ok {
		return ""
	}

	return cellValue(row, idx)
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// Import reads rows until EOF. Each row is committed on its own: a row
// without a vehicle is skipped, a row that fails is counted in Failed and
// the batch continues. Derived totals and the id column are ignored.
func (im *Importer) Import(ctx context.Context, r io.Reader) (Result, error) {
	var res Result

	utf8r, charset, err := enc.Detect(r)
	if err != nil {
		return res, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return res, nil
		}

		return res, fmt.Errorf("read header: %w", err)
	}

	cols := make(colIndex, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := cols[name]; name != "" && !dup {
			cols[name] = i
		}
	}

	slog.InfoContext(ctx, "importing records csv", "charset", charset, "columns", len(cols))

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var perr *csv.ParseError
		if errors.As(err, &perr) {
			res.fail(perr.StartLine, perr.Err.Error())
			continue
		}

		if err != nil {
			return res, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)

		created, err := im.importRow(ctx, cols, row)
		if err != nil {
			slog.WarnContext(ctx, "failed to import csv row", "line", line, "error", err)
			res.fail(line, err.Error())

			continue
		}

		if !created {
			res.Skipped++
			continue
		}

		res.Created++
	}

	return res, nil
}

func (res *Result) fail(line int, reason string) {
	res.Failed++
	res.Errors = append(res.Errors, RowError{Line: line, Reason: reason})
}

func (im *Importer) importRow(ctx context.Context, cols colIndex, row []string) (bool, error) {
	vehicleName := cols.get(row, ColumnVehicle)
	if vehicleName == "" {
		return false, nil
	}

	vehicle, err := im.catalog.FindOrCreateVehicle(ctx, vehicleName)
	if err != nil {
		return false, fmt.Errorf("resolving vehicle: %w", err)
	}

	params := ledger.CreateParams{
		Month:     cols.get(row, ColumnMonth),
		VehicleID: vehicle.ID,
		Amounts:   ledger.ParseAmounts(func(field string) string { return cols.get(row, field) }),
	}

	member, err := im.catalog.FindOrCreateMember(ctx, cols.get(row, ColumnMember))
	if err != nil {
		return false, fmt.Errorf("resolving member: %w", err)
	}

	if member != nil {
		params.MemberID = &member.ID
	}

	if _, err := im.records.Create(ctx, params); err != nil {
		return false, fmt.Errorf("creating record: %w", err)
	}

	return true, nil
}
