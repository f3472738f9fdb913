package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Archive writes generated files into a single output directory.
type Archive struct {
	dir string
}

// NewArchive creates an Archive rooted at dir. The directory is created on
// first write.
func NewArchive(dir string) *Archive {
	return &Archive{dir: dir}
}

// Dir returns the output directory.
func (a *Archive) Dir() string {
	return a.dir
}

// Save writes data to a file named after name inside the archive directory,
// replacing any previous file, and returns its path.
func (a *Archive) Save(name string, data []byte) (string, error) {
	filename := SafeName(name)
	if filename == "" || strings.Trim(filename, ".") == "" {
		return "", fmt.Errorf("invalid archive filename %q", name)
	}

	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(a.dir, filename)

	tmp, err := os.CreateTemp(a.dir, "."+filename+".*")
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("syncing file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("moving file into place: %w", err)
	}

	return path, nil
}

// SafeName maps every character outside [A-Za-z0-9._-] to an underscore so
// free-form names (vehicle names, months) can be used in filenames.
func SafeName(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}

		return '_'
	}, s)
}
