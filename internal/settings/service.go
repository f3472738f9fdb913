package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownKey = errors.New("unknown setting key")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=settings
type Repository interface {
	// GetSetting reports ok=false when the key was never written.
	GetSetting(ctx context.Context, key string) (value string, ok bool, err error)
	SetSetting(ctx context.Context, key, value string) error
}

// Service resolves settings from the store, then the environment, then
// DefaultValues.
type Service struct {
	repo    Repository
	sources []Source
}

func NewService(repo Repository) *Service {
	s := &Service{repo: repo}
	s.sources = []Source{storeSource{repo: repo}, EnvSource{}, DefaultValues}

	return s
}

// Get returns the effective value of key.
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	return Resolve(ctx, key, s.sources...)
}

// Set persists value under key, creating the row on first write.
func (s *Service) Set(ctx context.Context, key, value string) error {
	if !IsKnown(key) {
		return fmt.Errorf("%q: %w", key, ErrUnknownKey)
	}

	return s.repo.SetSetting(ctx, key, strings.TrimSpace(value))
}

// SetAll writes every known key present in values.
func (s *Service) SetAll(ctx context.Context, values map[string]string) error {
	for _, key := range Keys {
		v, ok := values[key]
		if !ok {
			continue
		}

		if err := s.Set(ctx, key, v); err != nil {
			return err
		}
	}

	return nil
}

// Snapshot returns the effective value of every key in Keys.
func (s *Service) Snapshot(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(Keys))

	for _, key := range Keys {
		v, err := s.Get(ctx, key)
		if err != nil {
			return nil, err
		}

		out[key] = v
	}

	return out, nil
}

type storeSource struct {
	repo Repository
}

func (s storeSource) Lookup(ctx context.Context, key string) (string, bool, error) {
	return s.repo.GetSetting(ctx, key)
}
