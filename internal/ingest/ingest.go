// Package ingest bulk-registers files from a local directory tree into a
// table, the implementation behind the CLI's add-from-dir and add-massive
// commands. Discovered files are hashed largest-first so long-running
// hashes are dispatched to the worker pool before it drains on a tail of
// small files.
package ingest

import (
	"context"
	"os"
	"path/filepath"

	"github.com/hepsw/rfm/internal/jobqueue"
	"github.com/hepsw/rfm/internal/protocol"
	"github.com/hepsw/rfm/internal/queue"
	"github.com/hepsw/rfm/internal/table"
)

// Candidate is a file discovered under a root directory, not yet hashed.
type Candidate struct {
	Name string // slash-separated path relative to the scanned root
	Path string // absolute filesystem path
	Size int64
}

// Discover walks root and returns one candidate per regular file found.
func Discover(root string) ([]Candidate, error) {
	var candidates []Candidate

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		candidates = append(candidates, Candidate{
			Name: filepath.ToSlash(rel),
			Path: path,
			Size: info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return orderBySizeDescending(candidates), nil
}

// orderBySizeDescending returns candidates ordered largest-file-first,
// using the shared priority queue so the hashing worker pool below is
// fed its longest jobs first.
func orderBySizeDescending(candidates []Candidate) []Candidate {
	pq := queue.NewPriorityQueue[Candidate]()
	for _, c := range candidates {
		// Smaller priority values dequeue first; negate size so the
		// largest file sorts to the front.
		pq.Enqueue(c, -int(c.Size))
	}
	return pq.DequeueAll()
}

// HashResult pairs a discovered candidate with its computed table entry, or
// the error that prevented one.
type HashResult struct {
	Candidate Candidate
	Info      table.Info
	Err       error
}

// HashAll computes a table.Info for every candidate concurrently, bounded
// by workers. Candidates are dispatched in the order given (largest-first
// after Discover); the returned results are in completion order.
// remote, if non-empty, protocol-qualifies each candidate's path (via
// protocol.Compose) before the table.Info is built from it, so the entry
// advertises where a peer should reach the file rather than the bare local
// path Discover walked. Marks are computed from the composed path: it gets
// real marks only when it resolves on this host (an SSH remote naming this
// host), and sentinel marks otherwise (any XRootD remote).
func HashAll(ctx context.Context, candidates []Candidate, workers int, remote string) []HashResult {
	results := make(chan jobqueue.Result[HashResult], len(candidates))
	handler := jobqueue.NewHandler(workers, results)

	for _, c := range candidates {
		c := c
		handler.Submit(func(ctx context.Context) (HashResult, error) {
			path, err := protocol.Compose(c.Path, remote, false)
			if err != nil {
				return HashResult{Candidate: c, Err: err}, err
			}
			info, err := table.NewFromNameAndPath(c.Name, path)
			return HashResult{Candidate: c, Info: info, Err: err}, err
		})
	}

	// Errors are carried per-result rather than aborting the batch, so a
	// single unreadable file doesn't discard everything else discovered.
	_ = handler.Process(ctx)
	close(results)

	out := make([]HashResult, 0, len(candidates))
	for res := range results {
		out = append(out, res.Value)
	}
	return out
}
