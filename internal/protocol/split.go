package protocol

import (
	"fmt"
	"strings"
)

// SplitSSH separates an SSH path "user@host:/abs/path" into its
// "user@host" and "/abs/path" components.
func SplitSSH(raw string) (userHost, path string, err error) {
	if !IsSSH(raw) {
		return "", "", fmt.Errorf("rfm: %q is not an ssh path", raw)
	}
	userHost, path, ok := strings.Cut(raw, ":")
	if !ok {
		return "", "", fmt.Errorf("rfm: %q is not an ssh path", raw)
	}
	return userHost, path, nil
}

// SplitXRootD separates an XRootD path "root://host//abs/path" into its
// host and "/abs/path" components. The XRootD grammar requires the extra
// slash after the host.
func SplitXRootD(raw string) (host, path string, err error) {
	if !IsXRootD(raw) {
		return "", "", fmt.Errorf("rfm: %q is not an xrootd path", raw)
	}
	rest := strings.TrimPrefix(raw, "root://")
	idx := strings.Index(rest, "/")
	if idx < 0 {
		return "", "", fmt.Errorf("rfm: %q is missing a path component", raw)
	}
	return rest[:idx], rest[idx+1:], nil
}

// SplitRemote separates any remote path into its server component and the
// path on that server, regardless of protocol.
func SplitRemote(raw string) (server, path string, err error) {
	switch Classify(raw).Kind {
	case SSH:
		return SplitSSH(raw)
	case XRootD:
		return SplitXRootD(raw)
	default:
		return "", "", fmt.Errorf("rfm: %q is not a remote path", raw)
	}
}

// sshHost extracts the bare host name from an SSH "user@host" component.
func sshHost(userHost string) string {
	_, host, ok := strings.Cut(userHost, "@")
	if !ok {
		return userHost
	}
	return host
}
