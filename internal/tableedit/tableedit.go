// Package tableedit wraps any table-mutating operation with a scoped
// "fetch / edit locally / push back" protocol: when a table's location is
// remote, a local working copy is materialized before the mutator runs and
// uploaded back afterward; temporary state is released on every exit path.
package tableedit

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/hepsw/rfm/internal/protocol"
	"github.com/hepsw/rfm/internal/rfmerr"
)

// MutateFunc receives the local filesystem path of the table's working
// copy and applies whatever change is required.
type MutateFunc func(localPath string) error

// Edit runs fn against location, transparently staging a local working
// copy when location is remote and pushing the result back on success.
func Edit(ctx context.Context, location string, fn MutateFunc) error {
	return edit(ctx, location, fn, true)
}

// Create runs fn against location the same way Edit does, except it never
// attempts to fetch an initial copy: fn is expected to create the table
// from scratch, which is then uploaded if location is remote.
func Create(ctx context.Context, location string, fn MutateFunc) error {
	return edit(ctx, location, fn, false)
}

func edit(ctx context.Context, location string, fn MutateFunc, fetchFirst bool) error {
	if localPath, ok := protocol.AvailableLocalPath(location); ok {
		lock := flock.New(lockPathFor(localPath))
		if err := lock.Lock(); err != nil {
			return &rfmerr.IOError{Op: "lock", Path: localPath, Err: err}
		}
		defer lock.Unlock()

		return fn(localPath)
	}

	tmpDir, err := os.MkdirTemp("", "rfm-edit-*")
	if err != nil {
		return &rfmerr.IOError{Op: "mkdir", Path: tmpDir, Err: err}
	}
	defer os.RemoveAll(tmpDir)

	workPath := filepath.Join(tmpDir, uuid.NewString()+".rfmtable")

	if fetchFirst {
		if err := protocol.Copy(ctx, location, workPath); err != nil {
			return err
		}
	}

	if err := fn(workPath); err != nil {
		return err
	}

	return protocol.Copy(ctx, workPath, location)
}

// ReadOnly materializes location for reading without pushing any change
// back, used by inspection operations such as display.
func ReadOnly(ctx context.Context, location string, fn func(localPath string) error) error {
	if localPath, ok := protocol.AvailableLocalPath(location); ok {
		return fn(localPath)
	}

	tmpDir, err := os.MkdirTemp("", "rfm-read-*")
	if err != nil {
		return &rfmerr.IOError{Op: "mkdir", Path: tmpDir, Err: err}
	}
	defer os.RemoveAll(tmpDir)

	workPath := filepath.Join(tmpDir, uuid.NewString()+".rfmtable")
	if err := protocol.Copy(ctx, location, workPath); err != nil {
		return err
	}

	return fn(workPath)
}

func lockPathFor(localPath string) string {
	return localPath + ".lock"
}
