package table

import (
	"os"
	"unicode"

	"github.com/hepsw/rfm/internal/hashutil"
	"github.com/hepsw/rfm/internal/protocol"
	"github.com/hepsw/rfm/internal/rfmerr"
)

// Info is one row of a table: a logical name, the protocol-qualified path
// where it should live on some host, and the marks last observed there.
// Info is treated as immutable; every mutation yields a replacement value.
type Info struct {
	Name string
	Path string
	Marks Marks
}

// ValidName reports whether name is a legal, non-empty entry name with no
// whitespace.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// NewFromNameAndPath builds an Info for path, stamping real marks when path
// is available on this host and the sentinel marks otherwise. This never
// fails on unavailability; it only fails if the file is available but
// cannot be hashed.
func NewFromNameAndPath(name, path string) (Info, error) {
	localPath, ok := protocol.AvailableLocalPath(path)
	if !ok {
		return Info{Name: name, Path: path, Marks: SentinelMarks()}, nil
	}

	marks, err := marksFromLocalPath(localPath)
	if err != nil {
		return Info{}, err
	}

	return Info{Name: name, Path: path, Marks: marks}, nil
}

// NewBare builds an Info with the sentinel marks regardless of whether path
// happens to be locally available.
func NewBare(name, path string) Info {
	return Info{Name: name, Path: path, Marks: SentinelMarks()}
}

// NewFromFields hydrates an Info directly from persisted values, with no
// filesystem access.
func NewFromFields(name, path string, marks Marks) Info {
	return Info{Name: name, Path: path, Marks: marks}
}

// IsBare reports whether this entry carries the sentinel marks.
func (i Info) IsBare() bool { return i.Marks.IsSentinel() }

// LocalPath returns the filesystem-level path this entry points to, with
// any protocol prefix stripped.
func (i Info) LocalPath() string { return protocol.LocalPath(i.Path) }

// Refresh recomputes marks against the local file reachable from Path. If
// no local path is reachable, the original Info is returned unchanged.
func (i Info) Refresh() (Info, error) {
	localPath, ok := protocol.AvailableLocalPath(i.Path)
	if !ok {
		return i, nil
	}

	marks, err := marksFromLocalPath(localPath)
	if err != nil {
		return Info{}, err
	}

	if marks == i.Marks {
		return i, nil
	}

	return Info{Name: i.Name, Path: i.Path, Marks: marks}, nil
}

func marksFromLocalPath(localPath string) (Marks, error) {
	fid, err := hashutil.HashFile(localPath)
	if err != nil {
		return Marks{}, err
	}

	fi, err := os.Stat(localPath)
	if err != nil {
		return Marks{}, &rfmerr.IOError{Op: "stat", Path: localPath, Err: err}
	}

	return Marks{Timestamp: statTimestamp(fi), Fingerprint: fid}, nil
}
