package hashutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashFileIsStableAndContentSensitive(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	first, err := HashFile(path)
	require.NoError(t, err)
	assert.Len(t, first, DigestWidth)

	second, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, os.WriteFile(path, []byte("hello world!"), 0o644))
	third, err := HashFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestHashFileMissingReturnsError(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}
