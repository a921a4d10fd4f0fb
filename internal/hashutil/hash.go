// Package hashutil computes the stable file fingerprint used by tables to
// detect content changes across replicas.
package hashutil

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"

	"github.com/hepsw/rfm/internal/rfmerr"
)

// bufferSize matches the chunk size used to hash large files without
// exhausting memory.
const bufferSize = 10 * 1024 * 1024

// DigestWidth is the fixed hex width of a non-sentinel fingerprint. Kept
// distinct from "none" so sentinel and real fingerprints never collide.
const DigestWidth = sha1.Size * 2

// HashFile returns a stable lowercase hex fingerprint for the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &rfmerr.IOError{Op: "hash", Path: path, Err: err}
	}
	defer f.Close()

	h := sha1.New()
	buf := make([]byte, bufferSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", &rfmerr.IOError{Op: "hash", Path: path, Err: err}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
