package utils

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	// maxBufferSize is the maximum size of a single line that will be buffered
	maxBufferSize = 1024 * 1024 // 1MB
)

// LogInterceptor is an io.Writer that tags each line written to it with a
// sequence number and timestamp before forwarding it to a target writer.
// cmd/rfm/main.go wraps the on-disk log file with one, and
// internal/protocol/copy.go wraps one around a copy tool's captured
// stderr, so scp/xrdcp output is tagged the same way as everything else
// rfm logs.
type LogInterceptor struct {
	target          io.Writer
	sequenceNumber  *atomic.Uint64
	interceptBuf    *bytes.Buffer
	interceptReader *bufio.Reader
}

// NewLogInterceptor returns a LogInterceptor forwarding tagged lines to target.
func NewLogInterceptor(target io.Writer) *LogInterceptor {
	buf := &bytes.Buffer{}
	reader := bufio.NewReaderSize(buf, maxBufferSize)
	return &LogInterceptor{
		target:          target,
		sequenceNumber:  &atomic.Uint64{},
		interceptBuf:    buf,
		interceptReader: reader,
	}
}

// writeFormattedLine writes a line with sequence number and timestamp to the target writer.
// Returns the total number of bytes written and any error encountered.
func (i *LogInterceptor) writeFormattedLine(line []byte) (int, error) {
	lineNum := i.sequenceNumber.Add(1)
	totalWritten := 0

	// Write the line number
	lineNumStr := slog.Uint64("line", lineNum).String() + " "
	n, err := io.WriteString(i.target, lineNumStr)
	totalWritten += n
	if err != nil {
		return totalWritten, err
	}

	// Write the timestamp
	timeStr := slog.String("time", time.Now().Format(time.RFC3339)).String() + " "
	n, err = io.WriteString(i.target, timeStr)
	totalWritten += n
	if err != nil {
		return totalWritten, err
	}

	// Write the line, restoring the terminator the line scanner strips
	n, err = i.target.Write(append(line, '\n'))
	totalWritten += n
	return totalWritten, err
}

// Write implements io.Writer. It buffers the input and processes complete lines,
// adding sequence numbers and timestamps to each line; a trailing partial line
// stays buffered until a later Write completes it or Close flushes it.
// Returns len(p) on success, or the number of bytes written to the target
// writer and the error encountered.
func (i *LogInterceptor) Write(p []byte) (n int, err error) {
	// Write to buffer
	_, err = i.interceptBuf.Write(p)
	if err != nil {
		return 0, err
	}

	end := bytes.LastIndexByte(i.interceptBuf.Bytes(), '\n')
	if end < 0 {
		return len(p), nil
	}

	totalWritten := 0
	// Process any complete lines in the buffer
	scanner := bufio.NewScanner(bytes.NewReader(i.interceptBuf.Next(end + 1)))
	scanner.Split(bufio.ScanLines) // This handles both \n and \r\n
	scanner.Buffer(make([]byte, 0, 4096), maxBufferSize)
	for scanner.Scan() {
		line := scanner.Text()
		n, err = i.writeFormattedLine([]byte(line))
		totalWritten += n
		if err != nil {
			return totalWritten, err
		}
	}

	return len(p), nil
}

// Close flushes any remaining buffered data to the target writer.
// Returns any error encountered during the flush operation.
func (i *LogInterceptor) Close() error {
	// Read any remaining data
	remaining, err := io.ReadAll(i.interceptReader)
	if err != nil {
		return err
	}
	if len(remaining) > 0 {
		_, err = i.writeFormattedLine(remaining)
	}
	return err
}
