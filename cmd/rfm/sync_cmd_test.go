package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hepsw/rfm/internal/registry"
	"github.com/hepsw/rfm/internal/table"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSyncFixture(t *testing.T, root string, newContent, oldContent string) (tableAPath, tableBPath string) {
	t.Helper()

	fileA := filepath.Join(root, "hostA", "foo.dat")
	fileB := filepath.Join(root, "hostB", "foo.dat")
	require.NoError(t, os.MkdirAll(filepath.Dir(fileA), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Dir(fileB), 0o755))

	now := time.Now()
	require.NoError(t, os.WriteFile(fileB, []byte(oldContent), 0o644))
	require.NoError(t, os.Chtimes(fileB, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.WriteFile(fileA, []byte(newContent), 0o644))
	require.NoError(t, os.Chtimes(fileA, now, now))

	infoA, err := table.NewFromNameAndPath("foo", fileA)
	require.NoError(t, err)
	infoB, err := table.NewFromNameAndPath("foo", fileB)
	require.NoError(t, err)

	tableAPath = filepath.Join(root, "hostA", "table.yaml")
	tableBPath = filepath.Join(root, "hostB", "table.yaml")
	require.NoError(t, table.FromFiles([]table.Info{infoA}, "").Write(tableAPath))
	require.NoError(t, table.FromFiles([]table.Info{infoB}, "").Write(tableBPath))
	return tableAPath, tableBPath
}

func TestSyncCommandPropagatesNewestReplica(t *testing.T) {
	viper.Reset()
	root := t.TempDir()
	tableAPath, tableBPath := writeSyncFixture(t, root, "fresh", "stale")

	parent := newParentCmd()
	parent.AddCommand(newSyncCmd())
	require.NoError(t, parent.PersistentFlags().Set("config", filepath.Join(t.TempDir(), "missing.json")))

	var out bytes.Buffer
	parent.SetOut(&out)
	require.NoError(t, execute(t, parent, "sync", tableAPath, tableBPath))

	rewritten, err := table.Read(tableBPath)
	require.NoError(t, err)
	entry, ok := rewritten.Get("foo")
	require.True(t, ok)
	assert.False(t, entry.IsBare())
}

func TestSyncCommandUsesRegistryWhenNoArgsGiven(t *testing.T) {
	viper.Reset()
	root := t.TempDir()
	tableAPath, tableBPath := writeSyncFixture(t, root, "fresh2", "stale2")

	registryPath := filepath.Join(root, "registry.yaml")
	require.NoError(t, registry.Save(registryPath, []string{tableAPath, tableBPath}))

	parent := newParentCmd()
	parent.AddCommand(newSyncCmd())
	require.NoError(t, parent.PersistentFlags().Set("config", filepath.Join(t.TempDir(), "missing.json")))
	require.NoError(t, parent.PersistentFlags().Set("registry", registryPath))

	require.NoError(t, execute(t, parent, "sync"))

	rewritten, err := table.Read(tableBPath)
	require.NoError(t, err)
	entry, _ := rewritten.Get("foo")
	assert.False(t, entry.IsBare())
}

func TestRegisterAppendsLocationAndRejectsDuplicates(t *testing.T) {
	viper.Reset()
	root := t.TempDir()
	registryPath := filepath.Join(root, "registry.yaml")

	parent := newParentCmd()
	parent.AddCommand(newRegisterCmd())
	require.NoError(t, parent.PersistentFlags().Set("config", filepath.Join(t.TempDir(), "missing.json")))
	require.NoError(t, parent.PersistentFlags().Set("registry", registryPath))

	require.NoError(t, execute(t, parent, "register", "/data/a/table.yaml"))
	require.NoError(t, execute(t, parent, "register", "/data/b/table.yaml"))

	locations, err := registry.Load(registryPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/a/table.yaml", "/data/b/table.yaml"}, locations)

	assert.Error(t, execute(t, parent, "register", "/data/a/table.yaml"))
}
