package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/fleetledger/internal/fleet"
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

func scanVehicle(s scanner) (*fleet.Vehicle, error) {
	var v fleet.Vehicle
	if err := s.Scan(&v.ID, &v.Name); err != nil {
		return nil, err
	}

	return &v, nil
}

func scanMember(s scanner) (*fleet.Member, error) {
	var m fleet.Member
	if err := s.Scan(&m.ID, &m.Name, &m.Type); err != nil {
		return nil, err
	}

	return &m, nil
}

func (s *Store) CreateVehicle(ctx context.Context, v *fleet.Vehicle) error {
	query := `INSERT INTO vehicles (name) VALUES ($1) RETURNING id`

	if err := s.db.QueryRowContext(ctx, query, v.Name).Scan(&v.ID); err != nil {
		return fmt.Errorf("creating vehicle: %w", err)
	}

	return nil
}

func (s *Store) GetVehicle(ctx context.Context, id int64) (*fleet.Vehicle, error) {
	query := `SELECT id, name FROM vehicles WHERE id = $1`

	v, err := scanVehicle(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fleet.ErrNotFound
		}

		return nil, fmt.Errorf("getting vehicle: %w", err)
	}

	return v, nil
}

// FindVehicleByName returns the oldest vehicle with exactly this name.
func (s *Store) FindVehicleByName(ctx context.Context, name string) (*fleet.Vehicle, error) {
	query := `SELECT id, name FROM vehicles WHERE name = $1 ORDER BY id ASC LIMIT 1`

	v, err := scanVehicle(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fleet.ErrNotFound
		}

		return nil, fmt.Errorf("finding vehicle: %w", err)
	}

	return v, nil
}

func (s *Store) ListVehicles(ctx context.Context) ([]*fleet.Vehicle, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM vehicles ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*fleet.Vehicle

	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning vehicle: %w", err)
		}

		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vehicles: %w", err)
	}

	return vehicles, nil
}

func (s *Store) DeleteVehicle(ctx context.Context, id int64) error {
	return s.deleteWithRecords(ctx, "vehicles", "vehicle_id", id)
}

func (s *Store) CreateMember(ctx context.Context, m *fleet.Member) error {
	query := `INSERT INTO members (name, member_type) VALUES ($1, $2) RETURNING id`

	if err := s.db.QueryRowContext(ctx, query, m.Name, m.Type).Scan(&m.ID); err != nil {
		return fmt.Errorf("creating member: %w", err)
	}

	return nil
}

func (s *Store) GetMember(ctx context.Context, id int64) (*fleet.Member, error) {
	query := `SELECT id, name, member_type FROM members WHERE id = $1`

	m, err := scanMember(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fleet.ErrNotFound
		}

		return nil, fmt.Errorf("getting member: %w", err)
	}

	return m, nil
}

func (s *Store) FindMemberByName(ctx context.Context, name string) (*fleet.Member, error) {
	query := `SELECT id, name, member_type FROM members WHERE name = $1 ORDER BY id ASC LIMIT 1`

	m, err := scanMember(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fleet.ErrNotFound
		}

		return nil, fmt.Errorf("finding member: %w", err)
	}

	return m, nil
}

func (s *Store) ListMembers(ctx context.Context) ([]*fleet.Member, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, member_type FROM members ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []*fleet.Member

	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}

		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating members: %w", err)
	}

	return members, nil
}

func (s *Store) DeleteMember(ctx context.Context, id int64) error {
	return s.deleteWithRecords(ctx, "members", "member_id", id)
}

// deleteWithRecords removes the dependent expense records and then the
// entity itself in one transaction. Table and column names are constants
// supplied by this package.
func (s *Store) deleteWithRecords(ctx context.Context, table, fkColumn string, id int64) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	recordsQuery := `DELETE FROM expense_records WHERE ` + fkColumn + ` = $1`
	if _, err := dbTx.ExecContext(ctx, recordsQuery, id); err != nil {
		return fmt.Errorf("deleting records of %s %d: %w", table, id, err)
	}

	res, err := dbTx.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return fleet.ErrNotFound
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
