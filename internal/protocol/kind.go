// Package protocol classifies protocol-qualified paths (local, SSH,
// XRootD), normalizes them, and dispatches file copies to the right
// transfer tool for a given (source, destination) pair.
package protocol

import "regexp"

// Kind identifies the transport a protocol-qualified path resolves through.
type Kind string

const (
	Local  Kind = "local"
	SSH    Kind = "ssh"
	XRootD Kind = "xrootd"
)

var (
	sshPattern    = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9._-]+:`)
	xrootdPattern = regexp.MustCompile(`^root://`)
)

// Path is a classified, protocol-qualified path string.
type Path struct {
	Raw  string
	Kind Kind
}

// Classify determines the protocol used by raw. Exactly one of IsLocal,
// IsSSH, IsXRootD holds for the returned Path.
func Classify(raw string) Path {
	switch {
	case sshPattern.MatchString(raw):
		return Path{Raw: raw, Kind: SSH}
	case xrootdPattern.MatchString(raw):
		return Path{Raw: raw, Kind: XRootD}
	default:
		return Path{Raw: raw, Kind: Local}
	}
}

func (p Path) IsLocal() bool  { return p.Kind == Local }
func (p Path) IsSSH() bool    { return p.Kind == SSH }
func (p Path) IsXRootD() bool { return p.Kind == XRootD }
func (p Path) IsRemote() bool { return p.Kind == SSH || p.Kind == XRootD }

func IsLocal(raw string) bool  { return Classify(raw).IsLocal() }
func IsSSH(raw string) bool    { return Classify(raw).IsSSH() }
func IsXRootD(raw string) bool { return Classify(raw).IsXRootD() }
func IsRemote(raw string) bool { return Classify(raw).IsRemote() }
