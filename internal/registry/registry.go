// Package registry persists the ordered list of table locations that
// "rfm sync" reconciles when invoked with no explicit locations on the
// command line. Order matters: it is the tie-breaker the manager falls
// back to when two replicas are marked equally recent.
package registry

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hepsw/rfm/internal/rfmerr"
	"gopkg.in/yaml.v3"
)

type document struct {
	Locations []string `yaml:"locations"`
}

// Load reads an ordered list of table locations from path.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &rfmerr.IOError{Op: "read", Path: path, Err: err}
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &rfmerr.FormatError{Path: path, Reason: err.Error()}
	}

	return doc.Locations, nil
}

// Save writes locations to path as an atomic whole-file replacement,
// preserving the given order.
func Save(path string, locations []string) error {
	data, err := yaml.Marshal(&document{Locations: locations})
	if err != nil {
		return &rfmerr.IOError{Op: "encode", Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &rfmerr.IOError{Op: "mkdir", Path: dir, Err: err}
	}

	tmpPath := filepath.Join(dir, ".registry-"+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return &rfmerr.IOError{Op: "write", Path: tmpPath, Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &rfmerr.IOError{Op: "rename", Path: path, Err: err}
	}

	return nil
}
