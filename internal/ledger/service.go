package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/fleetledger/internal/fleet"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateRecord(ctx context.Context, r *Record) error
	GetRecord(ctx context.Context, id int64) (*Record, error)
	ListRecords(ctx context.Context, filter Filter) ([]*Record, error)
	DeleteRecord(ctx context.Context, id int64) error
}

// Catalog validates the vehicle and member a record refers to.
type Catalog interface {
	GetVehicle(ctx context.Context, id int64) (*fleet.Vehicle, error)
	GetMember(ctx context.Context, id int64) (*fleet.Member, error)
}

type Service struct {
	repo    Repository
	catalog Catalog
}

func NewService(repo Repository, catalog Catalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

type CreateParams struct {
	Month     string
	VehicleID int64
	MemberID  *int64
	Amounts   Amounts
}

// Create validates the references, derives the totals and persists the record.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Record, error) {
	if params.VehicleID == 0 {
		return nil, ErrUnknownVehicle
	}

	if _, err := s.catalog.GetVehicle(ctx, params.VehicleID); err != nil {
		if errors.Is(err, fleet.ErrNotFound) {
			return nil, fmt.Errorf("vehicle %d: %w", params.VehicleID, ErrUnknownVehicle)
		}

		return nil, fmt.Errorf("checking vehicle: %w", err)
	}

	if params.MemberID != nil {
		if _, err := s.catalog.GetMember(ctx, *params.MemberID); err != nil {
			if errors.Is(err, fleet.ErrNotFound) {
				return nil, fmt.Errorf("member %d: %w", *params.MemberID, ErrUnknownMember)
			}

			return nil, fmt.Errorf("checking member: %w", err)
		}
	}

	rec := &Record{
		Month:     strings.TrimSpace(params.Month),
		VehicleID: params.VehicleID,
		MemberID:  params.MemberID,
		Amounts:   params.Amounts,
	}
	rec.Derive()

	if err := s.repo.CreateRecord(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Record, error) {
	return s.repo.ListRecords(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (*Record, error) {
	return s.repo.GetRecord(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteRecord(ctx, id)
}
