package settings

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Mail delivery keys stored in the settings table.
const (
	KeySMTPHost  = "SMTP_HOST"
	KeySMTPPort  = "SMTP_PORT"
	KeySMTPUser  = "SMTP_USER"
	KeySMTPPass  = "SMTP_PASS"
	KeyEmailFrom = "EMAIL_FROM"
	KeyEmailTo   = "EMAIL_TO"
)

// Keys lists every setting exposed for editing, in display order.
var Keys = []string{
	KeySMTPHost,
	KeySMTPPort,
	KeySMTPUser,
	KeySMTPPass,
	KeyEmailFrom,
	KeyEmailTo,
}

// IsKnown reports whether key is one of Keys.
func IsKnown(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}

	return false
}

// Source is one layer of setting values.
type Source interface {
	Lookup(ctx context.Context, key string) (string, bool, error)
}

// Resolve returns the first non-blank value for key across sources, in
// order. Blank values count as absent. An empty result with a nil error
// means no source knows the key.
func Resolve(ctx context.Context, key string, sources ...Source) (string, error) {
	for _, src := range sources {
		v, ok, err := src.Lookup(ctx, key)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", key, err)
		}

		if ok && strings.TrimSpace(v) != "" {
			return v, nil
		}
	}

	return "", nil
}

// EnvSource reads the process environment.
type EnvSource struct{}

func (EnvSource) Lookup(_ context.Context, key string) (string, bool, error) {
	v, ok := os.LookupEnv(key)
	return v, ok, nil
}

// Defaults is a fixed fallback layer.
type Defaults map[string]string

func (d Defaults) Lookup(_ context.Context, key string) (string, bool, error) {
	v, ok := d[key]
	return v, ok, nil
}

// DefaultValues are used when neither the store nor the environment set a key.
var DefaultValues = Defaults{
	KeySMTPPort: "587",
}
