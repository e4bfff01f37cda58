// Package log provides an opt-in debug log. Messages written before a file
// is configured are buffered, so early startup activity still lands in the
// file once the settings have been read.
package log

import (
	"bytes"
	"log"
	"os"
	"sync"
)

// debugWriter is the io.Writer behind the package logger. Until SetFile is
// called it buffers; after SetFile("") it discards.
type debugWriter struct {
	mu      sync.Mutex
	file    *os.File
	pending bytes.Buffer
	discard bool
}

var (
	writer = &debugWriter{}
	logger = log.New(writer, "", log.LstdFlags|log.Lmicroseconds)
)

func (w *debugWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.discard {
		return len(p), nil
	}
	if w.file == nil {
		return w.pending.Write(p)
	}
	n, err := w.file.Write(p)
	// Flush immediately so a crash right after the write still leaves the
	// message on disk.
	_ = w.file.Sync()
	return n, err
}

// SetFile directs debug output to path, replaying anything buffered so far.
// An empty path disables logging and drops the buffer.
func SetFile(path string) error {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	if writer.file != nil {
		_ = writer.file.Close()
		writer.file = nil
	}

	if path == "" {
		writer.discard = true
		writer.pending.Reset()
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		writer.discard = true
		writer.pending.Reset()
		return err
	}

	writer.file = f
	writer.discard = false

	if writer.pending.Len() > 0 {
		_, _ = f.Write(writer.pending.Bytes())
		_ = f.Sync()
		writer.pending.Reset()
	}
	return nil
}

// Printf writes a formatted debug message.
func Printf(format string, args ...any) {
	logger.Printf(format, args...)
}

// Println writes a debug message.
func Println(v ...any) {
	logger.Println(v...)
}

// Close closes the debug log file if open.
func Close() error {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	if writer.file == nil {
		return nil
	}
	err := writer.file.Close()
	writer.file = nil
	return err
}
