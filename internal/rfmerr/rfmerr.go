// Package rfmerr defines the error taxonomy raised across the table and
// synchronization layers. Kinds are distinguished by type or sentinel value,
// never by parsing error strings.
package rfmerr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for conditions that carry no extra context.
var (
	// ErrNonLocalPath is raised when an operation required a path resolvable
	// on the current host but the given path is not reachable here.
	ErrNonLocalPath = errors.New("rfm: path is not resolvable on this host")

	// ErrNoLocalReplica is raised by Manager.AvailableTable when none of the
	// registered locations resolve on the current host.
	ErrNoLocalReplica = errors.New("rfm: no registered table is reachable on this host")

	// ErrDuplicateLocation is raised when the same table location is
	// registered with a manager twice.
	ErrDuplicateLocation = errors.New("rfm: table location already registered")
)

// DuplicateNameError is raised by strict table mutators when an entry name
// already exists.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("rfm: entry %q already exists in table", e.Name)
}

// TransferError wraps the failure of an external copy tool (cp/scp/xrdcp) or
// of an internal byte copy.
type TransferError struct {
	Source string
	Target string
	Err    error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("rfm: copy %q -> %q: %v", e.Source, e.Target, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// IOError wraps a failure reading, writing or hashing a local file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("rfm: %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FormatError is raised when a table file is malformed or a path does not
// match any known protocol grammar.
type FormatError struct {
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("rfm: malformed table %q: %s", e.Path, e.Reason)
}

// WorkerError aggregates one or more task failures collected by a
// jobqueue.Handler once every worker has drained its queue.
type WorkerError struct {
	Failures []error
}

func (e *WorkerError) Error() string {
	if len(e.Failures) == 1 {
		return fmt.Sprintf("rfm: worker failed: %v", e.Failures[0])
	}
	msgs := make([]string, len(e.Failures))
	for i, err := range e.Failures {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("rfm: %d workers failed: %s", len(e.Failures), strings.Join(msgs, "; "))
}

// Unwrap allows errors.Is/errors.As to reach into the aggregated failures.
func (e *WorkerError) Unwrap() []error { return e.Failures }
