package protocol

import (
	"path/filepath"
	"regexp"
)

var (
	sshRemotePattern    = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9._-]+$`)
	xrootdRemotePattern = regexp.MustCompile(`^root://`)
)

func joinLocal(remote, barePath string) string {
	return filepath.Join(remote, barePath)
}
