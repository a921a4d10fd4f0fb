package table

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/google/uuid"
	"github.com/hepsw/rfm/internal/rfmerr"
	"gopkg.in/yaml.v3"
)

// Table is an ordered-by-name mapping of logical file names to their
// per-host FileInfo, plus a free-form description. Storage order on disk
// carries no meaning; readers always sort by name.
type Table struct {
	Description string
	entries     map[string]Info
}

// New creates an empty table with the given description.
func New(description string) *Table {
	return &Table{Description: description, entries: map[string]Info{}}
}

// FromFiles builds a table from a sequence of entries.
func FromFiles(files []Info, description string) *Table {
	t := New(description)
	for _, f := range files {
		t.Add(f)
	}
	return t
}

// Add inserts or replaces an entry by its name.
func (t *Table) Add(info Info) {
	if t.entries == nil {
		t.entries = map[string]Info{}
	}
	t.entries[info.Name] = info
}

// AddStrict inserts an entry, refusing to replace an existing name.
func (t *Table) AddStrict(info Info) error {
	if _, exists := t.entries[info.Name]; exists {
		return &rfmerr.DuplicateNameError{Name: info.Name}
	}
	t.Add(info)
	return nil
}

// Get looks up an entry by exact name.
func (t *Table) Get(name string) (Info, bool) {
	info, ok := t.entries[name]
	return info, ok
}

// Remove deletes every entry whose name equals or matches pattern as a
// regular expression, returning the number of entries removed.
func (t *Table) Remove(pattern string) (int, error) {
	re, err := regexp.Compile("^" + pattern + "$")
	if err != nil {
		return 0, fmt.Errorf("rfm: invalid removal pattern %q: %w", pattern, err)
	}

	removed := 0
	for name := range t.entries {
		if re.MatchString(name) {
			delete(t.entries, name)
			removed++
		}
	}
	return removed, nil
}

// Names returns every entry name, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns every entry, sorted by name.
func (t *Table) Entries() []Info {
	names := t.Names()
	out := make([]Info, len(names))
	for i, name := range names {
		out[i] = t.entries[name]
	}
	return out
}

// Len returns the number of entries in the table.
func (t *Table) Len() int { return len(t.entries) }

// Updated returns a new table whose entries are each refreshed against the
// local filesystem. The receiver is left unmodified.
func (t *Table) Updated() (*Table, error) {
	out := New(t.Description)
	for _, info := range t.Entries() {
		refreshed, err := info.Refresh()
		if err != nil {
			return nil, err
		}
		out.Add(refreshed)
	}
	return out, nil
}

// Read loads a table from a local file. Callers holding a remote table
// location must materialize a local working copy first (see the tableedit
// package).
func Read(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &rfmerr.IOError{Op: "read", Path: path, Err: err}
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &rfmerr.FormatError{Path: path, Reason: err.Error()}
	}

	t := New(doc.Description)
	seen := map[string]struct{}{}
	for _, rec := range doc.Files {
		if _, dup := seen[rec.Name]; dup {
			return nil, &rfmerr.FormatError{Path: path, Reason: fmt.Sprintf("duplicate entry name %q", rec.Name)}
		}
		seen[rec.Name] = struct{}{}

		info, err := infoFromRecord(rec)
		if err != nil {
			return nil, &rfmerr.FormatError{Path: path, Reason: err.Error()}
		}
		t.Add(info)
	}

	return t, nil
}

// Write serializes the table to path as a whole-file replacement: it writes
// to a sibling temporary file and atomically renames it over path, so any
// concurrent reader observes either the old or the new content, never a
// torn write.
func (t *Table) Write(path string) error {
	doc := document{Description: t.Description}
	for _, info := range t.Entries() {
		doc.Files = append(doc.Files, recordFromInfo(info))
	}

	data, err := yaml.Marshal(&doc)
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

	tmpPath := filepath.Join(dir, ".table-"+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return &rfmerr.IOError{Op: "write", Path: tmpPath, Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &rfmerr.IOError{Op: "rename", Path: path, Err: err}
	}

	return nil
}
