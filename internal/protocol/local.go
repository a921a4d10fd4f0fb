package protocol

import (
	"os"
	"strings"

	"github.com/hepsw/rfm/internal/rfmerr"
)

// hostnameFunc is overridden in tests to simulate a specific host identity.
var hostnameFunc = os.Hostname

// statFunc is overridden in tests to simulate local file availability
// without touching the real filesystem.
var statFunc = os.Stat

// AvailableLocalPath returns the filesystem path to use to reach raw from
// the current host, and whether one was found. A local path resolves when
// the file is readable locally. An SSH path resolves only when its host
// component matches this host's own name. An XRootD path never resolves as
// locally addressable.
func AvailableLocalPath(raw string) (string, bool) {
	p := Classify(raw)

	switch p.Kind {
	case Local:
		if _, err := statFunc(raw); err != nil {
			return "", false
		}
		return raw, true

	case SSH:
		userHost, path, err := SplitSSH(raw)
		if err != nil {
			return "", false
		}
		host, err := hostnameFunc()
		if err != nil {
			return "", false
		}
		if !strings.EqualFold(sshHost(userHost), host) {
			return "", false
		}
		return path, true

	default: // XRootD is never locally addressable.
		return "", false
	}
}

// LocalPath strips any protocol prefix from raw, returning the bare
// filesystem-level path it points to.
func LocalPath(raw string) string {
	switch Classify(raw).Kind {
	case SSH:
		_, path, err := SplitSSH(raw)
		if err != nil {
			return raw
		}
		return path
	case XRootD:
		_, path, err := SplitXRootD(raw)
		if err != nil {
			return raw
		}
		return path
	default:
		return raw
	}
}

// Compose builds a protocol-qualified path from a bare filesystem path and
// an optional remote prefix. A trailing "/" on remote is stripped. An SSH
// remote ("user@host") is joined with ":". An XRootD remote ("root://host")
// is joined with the extra "/" the XRootD grammar requires after the host,
// so the result round-trips through SplitXRootD (e.g.
// "root://host" + "/data/foo.dat" -> "root://host//data/foo.dat"). A local
// remote is joined as a plain filesystem path. When remote is empty and
// bare is not itself a request for a bare entry, the path must already
// resolve on this host, or ErrNonLocalPath is returned.
func Compose(barePath, remote string, allowNonLocal bool) (string, error) {
	if remote == "" {
		if allowNonLocal {
			return barePath, nil
		}
		if _, ok := AvailableLocalPath(barePath); !ok {
			return "", rfmerr.ErrNonLocalPath
		}
		return barePath, nil
	}

	remote = strings.TrimSuffix(remote, "/")

	switch {
	case xrootdRemotePattern.MatchString(remote):
		return remote + "//" + strings.TrimPrefix(barePath, "/"), nil
	case sshRemotePattern.MatchString(remote):
		return remote + ":" + "/" + strings.TrimPrefix(barePath, "/"), nil
	default:
		return joinLocal(remote, barePath), nil
	}
}
