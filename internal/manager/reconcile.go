package manager

import (
	"sort"

	"github.com/hepsw/rfm/internal/table"
)

// copyJob is one file transfer required to bring a destination replica up
// to date with the chosen authoritative replica.
type copyJob struct {
	name        string
	sourcePath  string
	sourceMarks table.Marks
	destTable   *loadedTable
	destPath    string
}

// planReconciliation computes every copy required across the union of names
// declared by any loaded table, in deterministic (sorted-by-name) order.
func planReconciliation(loaded []*loadedTable) []copyJob {
	names := map[string]struct{}{}
	for _, lt := range loaded {
		for _, n := range lt.table.Names() {
			names[n] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(names))
	for n := range names {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)

	var jobs []copyJob
	for _, name := range sorted {
		jobs = append(jobs, planName(name, loaded)...)
	}
	return jobs
}

type candidate struct {
	lt   *loadedTable
	info table.Info
	ok   bool
}

// planName picks the authoritative replica for name and schedules a copy to
// every other replica that declares the name but does not already carry
// matching content. The authoritative replica is the one with the newest
// timestamp among non-bare entries; when two candidates share the newest
// timestamp, the one registered earlier with the manager wins, because
// later candidates must be strictly newer to displace it.
func planName(name string, loaded []*loadedTable) []copyJob {
	candidates := make([]candidate, len(loaded))
	for i, lt := range loaded {
		info, ok := lt.table.Get(name)
		candidates[i] = candidate{lt: lt, info: info, ok: ok}
	}

	var authoritative *candidate
	for i := range candidates {
		c := &candidates[i]
		if !c.ok || c.info.IsBare() {
			continue
		}
		if authoritative == nil || c.info.Marks.Timestamp > authoritative.info.Marks.Timestamp {
			authoritative = c
		}
	}

	if authoritative == nil {
		return nil
	}

	var jobs []copyJob
	for i := range candidates {
		c := &candidates[i]
		if c == authoritative || !c.ok {
			continue
		}
		if !c.info.IsBare() && c.info.Marks.Fingerprint == authoritative.info.Marks.Fingerprint {
			continue // content already matches, regardless of recorded timestamp
		}
		jobs = append(jobs, copyJob{
			name:        name,
			sourcePath:  authoritative.info.Path,
			sourceMarks: authoritative.info.Marks,
			destTable:   c.lt,
			destPath:    c.info.Path,
		})
	}
	return jobs
}
