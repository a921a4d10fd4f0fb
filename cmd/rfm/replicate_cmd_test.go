package main

import (
	"path/filepath"
	"testing"

	"github.com/hepsw/rfm/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplicateRecreatesStructureUnderNewRoot(t *testing.T) {
	root := t.TempDir()
	refRoot := filepath.Join(root, "ref")
	targetRoot := filepath.Join(root, "target")

	refTable := table.New("reference")
	refTable.Add(table.NewBare("a", filepath.Join(refRoot, "a.dat")))
	refTable.Add(table.NewBare("sub/b", filepath.Join(refRoot, "sub", "b.dat")))
	refTablePath := filepath.Join(root, "ref-table.yaml")
	require.NoError(t, refTable.Write(refTablePath))

	newTablePath := filepath.Join(root, "new-table.yaml")
	require.NoError(t, table.New("").Write(newTablePath))

	parent := newParentCmd()
	parent.AddCommand(newReplicateCmd())

	require.NoError(t, execute(t, parent, "replicate", newTablePath, refTablePath, refRoot, targetRoot))

	tbl, err := table.Read(newTablePath)
	require.NoError(t, err)

	entry, ok := tbl.Get("a")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(targetRoot, "a.dat"), entry.Path)
	assert.True(t, entry.IsBare())

	entry, ok = tbl.Get("sub/b")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(targetRoot, "sub", "b.dat"), entry.Path)
}

func TestReplicateAcceptsRemoteTargetRoot(t *testing.T) {
	root := t.TempDir()
	refRoot := filepath.Join(root, "ref")
	targetRoot := "root://eos.example.com//data/target"

	refTable := table.New("reference")
	refTable.Add(table.NewBare("a", filepath.Join(refRoot, "a.dat")))
	refTablePath := filepath.Join(root, "ref-table.yaml")
	require.NoError(t, refTable.Write(refTablePath))

	newTablePath := filepath.Join(root, "new-table.yaml")
	require.NoError(t, table.New("").Write(newTablePath))

	parent := newParentCmd()
	parent.AddCommand(newReplicateCmd())

	require.NoError(t, execute(t, parent, "replicate", newTablePath, refTablePath, refRoot, targetRoot))

	tbl, err := table.Read(newTablePath)
	require.NoError(t, err)

	entry, ok := tbl.Get("a")
	require.True(t, ok)
	assert.Equal(t, "root://eos.example.com//data/target/a.dat", entry.Path)
	assert.True(t, entry.IsBare())
}

func TestReplicateCollisionModes(t *testing.T) {
	root := t.TempDir()
	refRoot := filepath.Join(root, "ref")

	refTable := table.New("")
	refTable.Add(table.NewBare("a", filepath.Join(refRoot, "a.dat")))
	refTablePath := filepath.Join(root, "ref-table.yaml")
	require.NoError(t, refTable.Write(refTablePath))

	existing := table.New("")
	existing.Add(table.NewBare("a", "/already/here.dat"))
	existingPath := filepath.Join(root, "existing.yaml")
	require.NoError(t, existing.Write(existingPath))

	parent := newParentCmd()
	parent.AddCommand(newReplicateCmd())

	err := execute(t, parent, "replicate", existingPath, refTablePath, refRoot, root)
	assert.Error(t, err, "default collision handling must fail on a name that already exists")

	require.NoError(t, execute(t, parent, "replicate", existingPath, refTablePath, refRoot, root, "--collisions", "omit"))
	tbl, err := table.Read(existingPath)
	require.NoError(t, err)
	entry, _ := tbl.Get("a")
	assert.Equal(t, "/already/here.dat", entry.Path, "omit must leave the existing entry untouched")

	require.NoError(t, execute(t, parent, "replicate", existingPath, refTablePath, refRoot, root, "--collisions", "replace"))
	tbl, err = table.Read(existingPath)
	require.NoError(t, err)
	entry, _ = tbl.Get("a")
	assert.Equal(t, filepath.Join(root, "a.dat"), entry.Path, "replace must overwrite the existing entry")
}
