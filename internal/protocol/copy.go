package protocol

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hepsw/rfm/internal/rfmerr"
	"github.com/hepsw/rfm/internal/utils"
)

// pairKind resolves which transfer tool to use for a (src, dst) pair.
// different is true when src and dst use incompatible remote protocols
// (SSH on one end, XRootD on the other), which requires local staging.
func pairKind(src, dst Path) (kind Kind, different bool) {
	if (src.Kind == SSH && dst.Kind == XRootD) || (src.Kind == XRootD && dst.Kind == SSH) {
		return "", true
	}
	if src.Kind == SSH || dst.Kind == SSH {
		return SSH, false
	}
	if src.Kind == XRootD || dst.Kind == XRootD {
		return XRootD, false
	}
	return Local, false
}

// Copy replicates the file at src to dst, dispatching to the copy tool
// appropriate for the pair's protocols. When src and dst sit on
// incompatible remote protocols, the transfer is staged through a local
// temporary file that is always released, even on error.
func Copy(ctx context.Context, src, dst string) error {
	sp, dp := Classify(src), Classify(dst)

	kind, different := pairKind(sp, dp)
	if different {
		return copyStaged(ctx, src, dst)
	}

	if err := makeDirectories(ctx, dst); err != nil {
		return err
	}

	switch kind {
	case Local:
		return copyLocal(src, dst)
	case SSH:
		return runCopyTool(ctx, src, dst, "scp", "-q", src, dst)
	case XRootD:
		return runCopyTool(ctx, src, dst, "xrdcp", "-f", "-s", src, dst)
	default:
		return copyLocal(src, dst)
	}
}

func copyStaged(ctx context.Context, src, dst string) error {
	tmpDir, err := os.MkdirTemp("", "rfm-stage-*")
	if err != nil {
		return &rfmerr.IOError{Op: "stage", Path: tmpDir, Err: err}
	}
	defer os.RemoveAll(tmpDir)

	tmp := filepath.Join(tmpDir, uuid.NewString()+"-"+filepath.Base(LocalPath(src)))

	if err := Copy(ctx, src, tmp); err != nil {
		return err
	}
	return Copy(ctx, tmp, dst)
}

func copyLocal(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return &rfmerr.IOError{Op: "mkdir", Path: filepath.Dir(dst), Err: err}
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return &rfmerr.TransferError{Source: src, Target: dst, Err: err}
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return &rfmerr.TransferError{Source: src, Target: dst, Err: err}
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return &rfmerr.TransferError{Source: src, Target: dst, Err: err}
	}
	return nil
}

// toolLogWriter forwards a copy tool's captured stderr lines to the
// structured logger via a LogInterceptor, tagging them with the tool name.
type toolLogWriter struct {
	tool string
}

func (w toolLogWriter) Write(p []byte) (int, error) {
	slog.Debug("copy tool output", "tool", w.tool, "output", string(p))
	return len(p), nil
}

// runCopyTool invokes an external copy tool, turning a non-zero exit status
// into a TransferError. Stderr is captured for that error message and, at
// the same time, tagged with sequence numbers and timestamps and routed
// into the structured log stream, mirroring the subprocess dispatch used by
// the original ssh/xrootd tooling this package replaces.
func runCopyTool(ctx context.Context, src, dst, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	interceptor := utils.NewLogInterceptor(toolLogWriter{tool: name})
	cmd.Stderr = io.MultiWriter(&stderr, interceptor)

	runErr := cmd.Run()
	interceptor.Close()

	if runErr != nil {
		return &rfmerr.TransferError{Source: src, Target: dst, Err: wrapExitErr(runErr, stderr.String())}
	}
	return nil
}

// makeDirectories ensures the parent directory of dst exists before a copy
// tool is invoked, since none of cp/scp/xrdcp create intermediate
// directories on their own.
func makeDirectories(ctx context.Context, dst string) error {
	p := Classify(dst)

	switch p.Kind {
	case Local:
		dir := filepath.Dir(dst)
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &rfmerr.IOError{Op: "mkdir", Path: dir, Err: err}
		}
		return nil

	case SSH:
		userHost, path, err := SplitSSH(dst)
		if err != nil {
			return err
		}
		dir := filepath.Dir(path)
		cmd := exec.CommandContext(ctx, "ssh", userHost, "mkdir", "-p", dir)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			return &rfmerr.IOError{Op: "mkdir", Path: dst, Err: wrapExitErr(err, stderr.String())}
		}
		return nil

	case XRootD:
		host, path, err := SplitXRootD(dst)
		if err != nil {
			return err
		}
		dir := filepath.Dir(path)
		cmd := exec.CommandContext(ctx, "xrd", host, "mkdir", dir)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			return &rfmerr.IOError{Op: "mkdir", Path: dst, Err: wrapExitErr(err, stderr.String())}
		}
		return nil
	}

	return nil
}

func wrapExitErr(err error, stderr string) error {
	if stderr == "" {
		return err
	}
	return &exitWithStderr{err: err, stderr: stderr}
}

type exitWithStderr struct {
	err    error
	stderr string
}

func (e *exitWithStderr) Error() string { return e.err.Error() + ": " + e.stderr }
func (e *exitWithStderr) Unwrap() error { return e.err }
