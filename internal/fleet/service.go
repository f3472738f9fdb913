package fleet

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=fleet
type Repository interface {
	CreateVehicle(ctx context.Context, v *Vehicle) error
	GetVehicle(ctx context.Context, id int64) (*Vehicle, error)
	FindVehicleByName(ctx context.Context, name string) (*Vehicle, error)
	ListVehicles(ctx context.Context) ([]*Vehicle, error)
	DeleteVehicle(ctx context.Context, id int64) error

	CreateMember(ctx context.Context, m *Member) error
	GetMember(ctx context.Context, id int64) (*Member, error)
	FindMemberByName(ctx context.Context, name string) (*Member, error)
	ListMembers(ctx context.Context) ([]*Member, error)
	DeleteMember(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateVehicle(ctx context.Context, name string) (*Vehicle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}

	v := &Vehicle{Name: name}
	if err := s.repo.CreateVehicle(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

// CreateMember adds a member; an empty memberType becomes DefaultMemberType.
func (s *Service) CreateMember(ctx context.Context, name, memberType string) (*Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}

	memberType = strings.TrimSpace(memberType)
	if memberType == "" {
		memberType = DefaultMemberType
	}

	m := &Member{Name: name, Type: memberType}
	if err := s.repo.CreateMember(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// FindOrCreateVehicle returns the first vehicle whose name matches exactly,
// creating it when none exists. Lookups are not serialized: two concurrent
// callers may both miss and create duplicates.
func (s *Service) FindOrCreateVehicle(ctx context.Context, name string) (*Vehicle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}

	v, err := s.repo.FindVehicleByName(ctx, name)
	if err == nil {
		return v, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("finding vehicle %q: %w", name, err)
	}

	return s.CreateVehicle(ctx, name)
}

// FindOrCreateMember behaves like FindOrCreateVehicle, except that a blank
// name means "no member" and yields (nil, nil).
func (s *Service) FindOrCreateMember(ctx context.Context, name string) (*Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	m, err := s.repo.FindMemberByName(ctx, name)
	if err == nil {
		return m, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("finding member %q: %w", name, err)
	}

	return s.CreateMember(ctx, name, DefaultMemberType)
}

func (s *Service) GetVehicle(ctx context.Context, id int64) (*Vehicle, error) {
	return s.repo.GetVehicle(ctx, id)
}

func (s *Service) GetMember(ctx context.Context, id int64) (*Member, error) {
	return s.repo.GetMember(ctx, id)
}

func (s *Service) ListVehicles(ctx context.Context) ([]*Vehicle, error) {
	return s.repo.ListVehicles(ctx)
}

func (s *Service) ListMembers(ctx context.Context) ([]*Member, error) {
	return s.repo.ListMembers(ctx)
}

// DeleteVehicle removes the vehicle together with all of its records.
func (s *Service) DeleteVehicle(ctx context.Context, id int64) error {
	return s.repo.DeleteVehicle(ctx, id)
}

// DeleteMember removes the member together with all of its records.
func (s *Service) DeleteMember(ctx context.Context, id int64) error {
	return s.repo.DeleteMember(ctx, id)
}

// Directory loads the whole catalog for id to name resolution.
func (s *Service) Directory(ctx context.Context) (*Directory, error) {
	vehicles, err := s.repo.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}

	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}

	return NewDirectory(vehicles, members), nil
}

var (
	seedVehicles = []string{"Car A", "Car B", "Car C"}
	seedMembers  = []string{"Owner", "Driver1", "Driver2", "Supervisor"}
)

// Seed inserts sample vehicles and members into whichever of the two
// tables is still empty.
func (s *Service) Seed(ctx context.Context) error {
	vehicles, err := s.repo.ListVehicles(ctx)
	if err != nil {
		return fmt.Errorf("listing vehicles: %w", err)
	}

	if len(vehicles) == 0 {
		for _, name := range seedVehicles {
			if _, err := s.CreateVehicle(ctx, name); err != nil {
				return fmt.Errorf("seeding vehicle %q: %w", name, err)
			}
		}
	}

	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		return fmt.Errorf("listing members: %w", err)
	}

	if len(members) > 0 {
		return nil
	}

	for _, name := range seedMembers {
		memberType := DefaultMemberType
		if strings.Contains(name, "Driver") {
			memberType = "Driver"
		}

		if _, err := s.CreateMember(ctx, name, memberType); err != nil {
			return fmt.Errorf("seeding member %q: %w", name, err)
		}
	}

	return nil
}
