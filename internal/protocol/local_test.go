package protocol

import (
	"errors"
	"os"
	"testing"

	"github.com/hepsw/rfm/internal/rfmerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHostname(t *testing.T, name string) {
	t.Helper()
	orig := hostnameFunc
	hostnameFunc = func() (string, error) { return name, nil }
	t.Cleanup(func() { hostnameFunc = orig })
}

func withStat(t *testing.T, fn func(string) (os.FileInfo, error)) {
	t.Helper()
	orig := statFunc
	statFunc = fn
	t.Cleanup(func() { statFunc = orig })
}

func TestAvailableLocalPathLocal(t *testing.T) {
	withStat(t, func(string) (os.FileInfo, error) { return nil, nil })
	path, ok := AvailableLocalPath("/data/foo.dat")
	assert.True(t, ok)
	assert.Equal(t, "/data/foo.dat", path)
}

func TestAvailableLocalPathLocalMissing(t *testing.T) {
	withStat(t, func(string) (os.FileInfo, error) { return nil, errors.New("not found") })
	_, ok := AvailableLocalPath("/data/missing.dat")
	assert.False(t, ok)
}

func TestAvailableLocalPathSSHMatchingHost(t *testing.T) {
	withHostname(t, "worker-01")
	path, ok := AvailableLocalPath("alice@worker-01:/data/foo.dat")
	assert.True(t, ok)
	assert.Equal(t, "/data/foo.dat", path)
}

func TestAvailableLocalPathSSHDifferentHost(t *testing.T) {
	withHostname(t, "worker-01")
	_, ok := AvailableLocalPath("alice@worker-02:/data/foo.dat")
	assert.False(t, ok)
}

func TestAvailableLocalPathXRootDNeverLocal(t *testing.T) {
	_, ok := AvailableLocalPath("root://eos.example.com//data/foo.dat")
	assert.False(t, ok)
}

func TestLocalPathStripsProtocol(t *testing.T) {
	assert.Equal(t, "/data/foo.dat", LocalPath("/data/foo.dat"))
	assert.Equal(t, "/data/foo.dat", LocalPath("alice@host:/data/foo.dat"))
	assert.Equal(t, "/data/foo.dat", LocalPath("root://host//data/foo.dat"))
}

func TestComposeLocalRequiresAvailability(t *testing.T) {
	withStat(t, func(string) (os.FileInfo, error) { return nil, errors.New("not found") })

	_, err := Compose("/data/foo.dat", "", false)
	require.ErrorIs(t, err, rfmerr.ErrNonLocalPath)

	path, err := Compose("/data/foo.dat", "", true)
	require.NoError(t, err)
	assert.Equal(t, "/data/foo.dat", path)
}

func TestComposeWithRemotePrefixes(t *testing.T) {
	xrootd, err := Compose("/data/foo.dat", "root://eos.example.com/", false)
	require.NoError(t, err)
	assert.Equal(t, "root://eos.example.com//data/foo.dat", xrootd)

	ssh, err := Compose("/data/foo.dat", "alice@worker-01", false)
	require.NoError(t, err)
	assert.Equal(t, "alice@worker-01:/data/foo.dat", ssh)
}

func TestComposeXRootDRoundTripsThroughSplit(t *testing.T) {
	composed, err := Compose("/data/foo.dat", "root://eos.example.com", false)
	require.NoError(t, err)

	host, path, err := SplitXRootD(composed)
	require.NoError(t, err)
	assert.Equal(t, "eos.example.com", host)
	assert.Equal(t, "/data/foo.dat", path)
}
