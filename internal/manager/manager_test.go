package manager

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hepsw/rfm/internal/rfmerr"
	"github.com/hepsw/rfm/internal/table"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestManagerUpdatePropagatesNewestReplica(t *testing.T) {
	root := t.TempDir()

	newFile := filepath.Join(root, "hostA", "data", "foo.dat")
	oldFile := filepath.Join(root, "hostB", "data", "foo.dat")

	now := time.Now()
	writeFile(t, oldFile, "stale content", now.Add(-time.Hour))
	writeFile(t, newFile, "fresh content", now)

	infoA, err := table.NewFromNameAndPath("foo", newFile)
	require.NoError(t, err)
	infoB, err := table.NewFromNameAndPath("foo", oldFile)
	require.NoError(t, err)

	tableA := table.FromFiles([]table.Info{infoA}, "hostA table")
	tableB := table.FromFiles([]table.Info{infoB}, "hostB table")

	tableAPath := filepath.Join(root, "hostA", "table.yaml")
	tableBPath := filepath.Join(root, "hostB", "table.yaml")
	require.NoError(t, tableA.Write(tableAPath))
	require.NoError(t, tableB.Write(tableBPath))

	mgr := New(WithWorkers(2))
	require.NoError(t, mgr.Register(tableAPath))
	require.NoError(t, mgr.Register(tableBPath))

	report, err := mgr.Update(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Scheduled)
	require.Equal(t, 1, report.Succeeded)
	require.Empty(t, report.Failures)

	updatedContent, err := os.ReadFile(oldFile)
	require.NoError(t, err)
	require.Equal(t, "fresh content", string(updatedContent))

	rewritten, err := table.Read(tableBPath)
	require.NoError(t, err)
	entry, ok := rewritten.Get("foo")
	require.True(t, ok)
	require.Equal(t, infoA.Marks.Fingerprint, entry.Marks.Fingerprint)
}

func TestManagerUpdateNoOpWhenAlreadyInSync(t *testing.T) {
	root := t.TempDir()

	fileA := filepath.Join(root, "hostA", "foo.dat")
	fileB := filepath.Join(root, "hostB", "foo.dat")
	now := time.Now()
	writeFile(t, fileA, "same", now)
	writeFile(t, fileB, "same", now.Add(-time.Minute))

	infoA, err := table.NewFromNameAndPath("foo", fileA)
	require.NoError(t, err)
	infoB, err := table.NewFromNameAndPath("foo", fileB)
	require.NoError(t, err)

	tableAPath := filepath.Join(root, "hostA", "table.yaml")
	tableBPath := filepath.Join(root, "hostB", "table.yaml")
	require.NoError(t, table.FromFiles([]table.Info{infoA}, "").Write(tableAPath))
	require.NoError(t, table.FromFiles([]table.Info{infoB}, "").Write(tableBPath))

	mgr := New()
	require.NoError(t, mgr.Register(tableAPath))
	require.NoError(t, mgr.Register(tableBPath))

	report, err := mgr.Update(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, report.Scheduled)
	require.False(t, report.HasFailures())
}

func TestManagerRegisterRejectsDuplicateLocation(t *testing.T) {
	mgr := New()
	require.NoError(t, mgr.Register("/some/table.yaml"))
	err := mgr.Register("/some/table.yaml")
	require.ErrorIs(t, err, rfmerr.ErrDuplicateLocation)
}

func TestManagerAvailableTableReturnsErrNoLocalReplicaWhenNoneResolve(t *testing.T) {
	mgr := New()
	require.NoError(t, mgr.Register("user@some-other-host:/remote/table.yaml"))

	_, _, err := mgr.AvailableTable()
	require.ErrorIs(t, err, rfmerr.ErrNoLocalReplica)
}

func TestManagerAvailableTableReadsFirstResolvableLocation(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "table.yaml")
	require.NoError(t, table.New("desc").Write(path))

	mgr := New()
	require.NoError(t, mgr.Register(path))

	tbl, loc, err := mgr.AvailableTable()
	require.NoError(t, err)
	require.Equal(t, path, loc)
	require.Equal(t, "desc", tbl.Description)
}
