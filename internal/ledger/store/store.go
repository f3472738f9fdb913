package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectRecordColumns = `
	id, month, vehicle_id, member_id,
	single_way_km, double_way_km, single_total_cost, double_total_cost,
	tds_1_percent, maintenance, driver_salary, vehicle_maintenance,
	cng_gas, petrol, supervisor_commission, company_credit,
	total_deduction, total_profit_after_tax, created_at
`

// scanRecord expects the column order of selectRecordColumns.
func scanRecord(s scanner) (*ledger.Record, error) {
	var r ledger.Record

	var memberID sql.NullInt64

	a := &r.Amounts

	if err := s.Scan(
		&r.ID, &r.Month, &r.VehicleID, &memberID,
		&a.SingleWayKm, &a.DoubleWayKm, &a.SingleTotalCost, &a.DoubleTotalCost,
		&a.TDS1Percent, &a.Maintenance, &a.DriverSalary, &a.VehicleMaintenance,
		&a.CNGGas, &a.Petrol, &a.SupervisorCommission, &a.CompanyCredit,
		&r.TotalDeduction, &r.TotalProfitAfterTax, &r.CreatedAt,
	); err != nil {
		return nil, err
	}

	if memberID.Valid {
		id := memberID.Int64
		r.MemberID = &id
	}

	return &r, nil
}

func (s *Store) CreateRecord(ctx context.Context, r *ledger.Record) error {
	query := `
		INSERT INTO expense_records (
			month, vehicle_id, member_id,
			single_way_km, double_way_km, single_total_cost, double_total_cost,
			tds_1_percent, maintenance, driver_salary, vehicle_maintenance,
			cng_gas, petrol, supervisor_commission, company_credit,
			total_deduction, total_profit_after_tax, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id
	`

	createdAt := time.Now().UTC()
	a := r.Amounts

	err := s.db.QueryRowContext(ctx, query,
		r.Month, r.VehicleID, r.MemberID,
		a.SingleWayKm, a.DoubleWayKm, a.SingleTotalCost, a.DoubleTotalCost,
		a.TDS1Percent, a.Maintenance, a.DriverSalary, a.VehicleMaintenance,
		a.CNGGas, a.Petrol, a.SupervisorCommission, a.CompanyCredit,
		r.TotalDeduction, r.TotalProfitAfterTax, createdAt,
	).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("creating record: %w", err)
	}

	r.CreatedAt = createdAt

	return nil
}

func (s *Store) GetRecord(ctx context.Context, id int64) (*ledger.Record, error) {
	query := `SELECT ` + selectRecordColumns + ` FROM expense_records WHERE id = $1`

	r, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting record: %w", err)
	}

	return r, nil
}

func (s *Store) ListRecords(ctx context.Context, filter ledger.Filter) ([]*ledger.Record, error) {
	query := `SELECT ` + selectRecordColumns + ` FROM expense_records WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.VehicleID != nil {
		query += fmt.Sprintf(" AND vehicle_id = $%d", argIdx)

		args = append(args, *filter.VehicleID)
		argIdx++
	}

	if filter.Month != "" {
		query += fmt.Sprintf(` AND LOWER(month) LIKE $%d ESCAPE '\'`, argIdx)

		args = append(args, "%"+escapeLike(strings.ToLower(filter.Month))+"%")
		argIdx++
	}

	if filter.ExactMonth != "" {
		query += fmt.Sprintf(" AND month = $%d", argIdx)

		args = append(args, filter.ExactMonth)
		argIdx++
	}

	if filter.StartMonth != "" {
		query += fmt.Sprintf(" AND month >= $%d", argIdx)

		args = append(args, filter.StartMonth)
		argIdx++
	}

	if filter.EndMonth != "" {
		query += fmt.Sprintf(" AND month <= $%d", argIdx)

		args = append(args, filter.EndMonth)
	}

	if filter.Newest {
		query += " ORDER BY id DESC"
	} else {
		query += " ORDER BY id ASC"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var records []*ledger.Record

	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return records, nil
}

func (s *Store) DeleteRecord(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expense_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
