package manager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"github.com/hepsw/rfm/internal/jobqueue"
	"github.com/hepsw/rfm/internal/protocol"
	"github.com/hepsw/rfm/internal/rfmerr"
	"github.com/hepsw/rfm/internal/table"
	"golang.org/x/sync/errgroup"
)

// loadedTable is the in-memory working state of one registered table for
// the duration of a single Update call.
type loadedTable struct {
	location  string
	table     *table.Table
	localPath string
	staged    bool // localPath is a temporary copy that must be pushed back
	changed   bool
}

// gather materializes a local working copy of every registered table and
// refreshes the marks of every entry reachable from this host. It returns
// the staging directory so the caller can release it once done.
func (m *Manager) gather(ctx context.Context) ([]*loadedTable, string, error) {
	if len(m.locations) == 0 {
		return nil, "", nil
	}

	tmpDir, err := os.MkdirTemp("", "rfm-gather-*")
	if err != nil {
		return nil, "", &rfmerr.IOError{Op: "mkdir", Path: tmpDir, Err: err}
	}

	loaded := make([]*loadedTable, len(m.locations))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)

	for i, location := range m.locations {
		i, location := i, location
		g.Go(func() error {
			lt, err := gatherOne(gctx, location, tmpDir, i)
			if err != nil {
				return err
			}
			loaded[i] = lt
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, tmpDir, err
	}

	return loaded, tmpDir, nil
}

func gatherOne(ctx context.Context, location, tmpDir string, index int) (*loadedTable, error) {
	localPath, staged := location, false

	if resolved, ok := protocol.AvailableLocalPath(location); ok {
		localPath = resolved
	} else {
		localPath = filepath.Join(tmpDir, fmt.Sprintf("%d-%s.rfmtable", index, uuid.NewString()))
		if err := protocol.Copy(ctx, location, localPath); err != nil {
			return nil, err
		}
		staged = true
	}

	tbl, err := table.Read(localPath)
	if err != nil {
		return nil, err
	}

	before := tbl.Entries()
	refreshed, err := tbl.Updated()
	if err != nil {
		return nil, err
	}

	changed := !reflect.DeepEqual(before, refreshed.Entries())

	return &loadedTable{location: location, table: refreshed, localPath: localPath, staged: staged, changed: changed}, nil
}

// copyOutcome pairs a completed job with the job itself, since the worker
// pool result channel loses the association otherwise.
type copyOutcome struct {
	job copyJob
}

// transfer dispatches every planned copy through a bounded worker pool,
// recording successes against their destination table and failures in
// report. A per-job failure never aborts the other jobs.
func (m *Manager) transfer(ctx context.Context, jobs []copyJob, loaded []*loadedTable, report *Report) error {
	results := make(chan jobqueue.Result[copyOutcome], len(jobs))
	handler := jobqueue.NewHandler(m.workers, results)

	for _, job := range jobs {
		job := job
		handler.Submit(func(ctx context.Context) (copyOutcome, error) {
			if err := protocol.Copy(ctx, job.sourcePath, job.destPath); err != nil {
				return copyOutcome{job: job}, err
			}
			return copyOutcome{job: job}, nil
		})
	}

	var mu sync.Mutex
	done := make(chan struct{})
	go func() {
		defer close(done)
		for res := range results {
			mu.Lock()
			if res.Err != nil {
				report.Failures = append(report.Failures, Failure{
					Name:        res.Value.job.name,
					Destination: res.Value.job.destPath,
					Err:         res.Err,
				})
			} else {
				report.Succeeded++
				res.Value.job.destTable.table.Add(table.NewFromFields(res.Value.job.name, res.Value.job.destPath, res.Value.job.sourceMarks))
				res.Value.job.destTable.changed = true
			}
			mu.Unlock()
		}
	}()

	procErr := handler.Process(ctx)
	close(results)
	<-done

	var workerErr *rfmerr.WorkerError
	if procErr != nil && !errors.As(procErr, &workerErr) {
		return procErr
	}
	return nil
}

// writeBack persists every table whose in-memory state changed, atomically
// rewriting the local working copy and, for staged (originally remote)
// tables, pushing the result back to its registered location.
func (m *Manager) writeBack(ctx context.Context, loaded []*loadedTable) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)

	for _, lt := range loaded {
		if !lt.changed {
			continue
		}
		lt := lt
		g.Go(func() error {
			return writeBackOne(gctx, lt)
		})
	}

	return g.Wait()
}

func writeBackOne(ctx context.Context, lt *loadedTable) error {
	if err := lt.table.Write(lt.localPath); err != nil {
		return err
	}
	if lt.staged {
		return protocol.Copy(ctx, lt.localPath, lt.location)
	}
	return nil
}
