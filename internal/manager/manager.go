// Package manager implements the synchronization engine: it registers
// table locations, resolves the replica reachable on this host, and
// reconciles every registered table so all replicas of a name converge on
// the one with the newest, verified content.
package manager

import (
	"context"
	"fmt"
	"os"

	"github.com/hepsw/rfm/internal/protocol"
	"github.com/hepsw/rfm/internal/rfmerr"
	"github.com/hepsw/rfm/internal/table"
)

const defaultWorkers = 4

// Manager is a stateless coordinator: it only remembers the ordered list of
// registered table locations and re-reads each table from scratch on every
// operation.
type Manager struct {
	locations []string
	workers   int
}

// Option configures a Manager at construction time.
type Option func(*Manager)

// WithWorkers overrides the default bounded parallelism (4) used for
// gathering tables, transferring files, and writing tables back.
func WithWorkers(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.workers = n
		}
	}
}

// New builds an empty Manager.
func New(opts ...Option) *Manager {
	m := &Manager{workers: defaultWorkers}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register appends a table location, refusing duplicates.
func (m *Manager) Register(location string) error {
	for _, l := range m.locations {
		if l == location {
			return fmt.Errorf("%w: %q", rfmerr.ErrDuplicateLocation, location)
		}
	}
	m.locations = append(m.locations, location)
	return nil
}

// Locations returns the registered table locations, in registration order.
func (m *Manager) Locations() []string {
	out := make([]string, len(m.locations))
	copy(out, m.locations)
	return out
}

// AvailableTable returns the table read from the first registered location
// that resolves on this host, along with that location.
func (m *Manager) AvailableTable() (*table.Table, string, error) {
	for _, loc := range m.locations {
		localPath, ok := protocol.AvailableLocalPath(loc)
		if !ok {
			continue
		}
		tbl, err := table.Read(localPath)
		if err != nil {
			return nil, "", err
		}
		return tbl, loc, nil
	}
	return nil, "", rfmerr.ErrNoLocalReplica
}

// Failure records a single (name, destination) copy that could not be
// completed during Update; the destination table is left untouched for
// that name.
type Failure struct {
	Name        string
	Destination string
	Err         error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s -> %s: %v", f.Name, f.Destination, f.Err)
}

// Report summarizes the outcome of a single Update call.
type Report struct {
	Scheduled int
	Succeeded int
	Failures  []Failure
}

// HasFailures reports whether any scheduled copy failed.
func (r *Report) HasFailures() bool { return len(r.Failures) > 0 }

func cleanupTempDir(dir string) {
	if dir != "" {
		os.RemoveAll(dir)
	}
}

// Update reconciles every registered table: it gathers a local working copy
// of each, computes the authoritative replica for every name shared by two
// or more tables, dispatches the necessary copies in parallel, and writes
// back every table whose in-memory state changed. Per-entry copy failures
// are collected in the report rather than returned as an error; the report
// is also returned alongside an error when at least one copy was scheduled
// and none of them succeeded, or when writing back a table fails. A failure
// to gather the tables is returned with a nil report.
func (m *Manager) Update(ctx context.Context) (*Report, error) {
	loaded, tmpDir, err := m.gather(ctx)
	defer cleanupTempDir(tmpDir)
	if err != nil {
		return nil, err
	}

	jobs := planReconciliation(loaded)

	report := &Report{Scheduled: len(jobs)}
	if len(jobs) == 0 {
		return report, nil
	}

	if err := m.transfer(ctx, jobs, loaded, report); err != nil {
		return report, err
	}

	if err := m.writeBack(ctx, loaded); err != nil {
		return report, err
	}

	if report.Scheduled > 0 && report.Succeeded == 0 {
		return report, fmt.Errorf("rfm: update failed: no scheduled transfer succeeded")
	}

	return report, nil
}
