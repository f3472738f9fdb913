package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleetledger/internal/database/dbtest"
	"github.com/MrJamesThe3rd/fleetledger/internal/fleet"
	"github.com/MrJamesThe3rd/fleetledger/internal/fleet/store"
)

func insertRecord(t *testing.T, db *sql.DB, vehicleID int64, memberID *int64) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO expense_records (month, vehicle_id, member_id, created_at) VALUES ($1, $2, $3, $4)`,
		"2024-05", vehicleID, memberID, time.Now().UTC(),
	)
	require.NoError(t, err)
}

func countRecords(t *testing.T, db *sql.DB) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM expense_records`).Scan(&n))

	return n
}

func TestStore_Vehicles(t *testing.T) {
	ctx := context.Background()
	s := store.New(dbtest.New(t))

	a := &fleet.Vehicle{Name: "Car A"}
	require.NoError(t, s.CreateVehicle(ctx, a))
	assert.NotZero(t, a.ID)

	dup := &fleet.Vehicle{Name: "Car A"}
	require.NoError(t, s.CreateVehicle(ctx, dup))

	b := &fleet.Vehicle{Name: "Car B"}
	require.NoError(t, s.CreateVehicle(ctx, b))

	got, err := s.FindVehicleByName(ctx, "Car A")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID, "oldest match wins")

	_, err = s.FindVehicleByName(ctx, "car a")
	assert.ErrorIs(t, err, fleet.ErrNotFound, "match is case-sensitive")

	list, err := s.ListVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{a.ID, dup.ID, b.ID}, []int64{list[0].ID, list[1].ID, list[2].ID})

	_, err = s.GetVehicle(ctx, 999)
	assert.ErrorIs(t, err, fleet.ErrNotFound)
}

func TestStore_DeleteVehicleCascades(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	s := store.New(db)

	a := &fleet.Vehicle{Name: "Car A"}
	b := &fleet.Vehicle{Name: "Car B"}
	require.NoError(t, s.CreateVehicle(ctx, a))
	require.NoError(t, s.CreateVehicle(ctx, b))

	insertRecord(t, db, a.ID, nil)
	insertRecord(t, db, a.ID, nil)
	insertRecord(t, db, b.ID, nil)

	require.NoError(t, s.DeleteVehicle(ctx, a.ID))

	assert.Equal(t, 1, countRecords(t, db))

	_, err := s.GetVehicle(ctx, a.ID)
	assert.ErrorIs(t, err, fleet.ErrNotFound)

	assert.ErrorIs(t, s.DeleteVehicle(ctx, a.ID), fleet.ErrNotFound)
	assert.Equal(t, 1, countRecords(t, db), "failed delete leaves records untouched")
}

func TestStore_Members(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	s := store.New(db)

	v := &fleet.Vehicle{Name: "Car A"}
	require.NoError(t, s.CreateVehicle(ctx, v))

	driver := &fleet.Member{Name: "Driver1", Type: "Driver"}
	owner := &fleet.Member{Name: "Owner", Type: fleet.DefaultMemberType}
	require.NoError(t, s.CreateMember(ctx, driver))
	require.NoError(t, s.CreateMember(ctx, owner))

	got, err := s.FindMemberByName(ctx, "Driver1")
	require.NoError(t, err)
	assert.Equal(t, "Driver", got.Type)

	insertRecord(t, db, v.ID, &driver.ID)
	insertRecord(t, db, v.ID, &owner.ID)
	insertRecord(t, db, v.ID, nil)

	require.NoError(t, s.DeleteMember(ctx, driver.ID))
	assert.Equal(t, 2, countRecords(t, db))

	list, err := s.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Owner", list[0].Name)

	_, err = s.GetMember(ctx, driver.ID)
	assert.ErrorIs(t, err, fleet.ErrNotFound)
}
