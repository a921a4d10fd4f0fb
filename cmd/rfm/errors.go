package main

import (
	"errors"
	"os"

	"github.com/hepsw/rfm/internal/rfmerr"
)

// isMissingFile reports whether err ultimately wraps an os.ErrNotExist,
// used to tell "the registry has never been written" apart from a real
// read failure.
func isMissingFile(err error) bool {
	var ioErr *rfmerr.IOError
	if errors.As(err, &ioErr) {
		return os.IsNotExist(ioErr.Err)
	}
	return os.IsNotExist(err)
}
