// journal.go: Invocation journal for Janus
//
// The journal keeps a tamper-evident history of bound invocations: which
// tool ran, with which arguments, and what the binder reported.
//
// Features:
// - Buffered writes with background flushing
// - SHA-256 checksum per entry
// - JSONL or SQLite storage selected by file extension
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/agilira/go-errors"
	"github.com/agilira/go-timecache"
	"github.com/google/uuid"
)

// JournalEntry is one recorded invocation.
type JournalEntry struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Tool        string    `json:"tool"`
	Args        []string  `json:"args"`
	Errors      int       `json:"errors"`
	Warnings    int       `json:"warnings"`
	Diagnostics []string  `json:"diagnostics,omitempty"`
	Checksum    string    `json:"checksum"` // For tamper detection
}

// Verify reports whether the entry still matches its checksum.
func (e JournalEntry) Verify() bool {
	return e.Checksum != "" && e.Checksum == entryChecksum(e)
}

// JournalConfig configures a Journal.
type JournalConfig struct {
	// OutputFile selects the backend: ".jsonl" for JSON lines, ".db",
	// ".sqlite" or ".sqlite3" for SQLite.
	OutputFile    string        `json:"output_file"`
	BufferSize    int           `json:"buffer_size"`
	FlushInterval time.Duration `json:"flush_interval"`
}

// DefaultJournalConfig returns the default configuration for path.
func DefaultJournalConfig(path string) JournalConfig {
	return JournalConfig{
		OutputFile:    path,
		BufferSize:    100,
		FlushInterval: 5 * time.Second,
	}
}

// Journal records invocations. It is safe for concurrent use, and a nil
// *Journal accepts every call as a no-op.
type Journal struct {
	config      JournalConfig
	backend     journalBackend
	buffer      []JournalEntry
	mu          sync.Mutex
	closed      bool
	flushTicker *time.Ticker
	stopCh      chan struct{}
}

// NewJournal opens the backend selected by config.OutputFile and starts the
// background flusher when FlushInterval is positive.
func NewJournal(config JournalConfig) (*Journal, error) {
	if config.OutputFile == "" {
		return nil, errors.New(ErrCodeInvalidJournalConfig, "journal output file is required")
	}
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultJournalConfig("").BufferSize
	}

	backend, err := createJournalBackend(config)
	if err != nil {
		return nil, err
	}

	j := &Journal{
		config:  config,
		backend: backend,
		buffer:  make([]JournalEntry, 0, config.BufferSize),
		stopCh:  make(chan struct{}),
	}
	if config.FlushInterval > 0 {
		j.flushTicker = time.NewTicker(config.FlushInterval)
		go j.flushLoop()
	}
	return j, nil
}

// Record buffers one invocation. Records after Close are dropped.
func (j *Journal) Record(tool string, argv []string, diags Diagnostics) {
	if j == nil {
		return
	}

	entry := JournalEntry{
		ID:          uuid.NewString(),
		Timestamp:   timecache.CachedTime(),
		Tool:        tool,
		Args:        append([]string(nil), argv...),
		Errors:      len(diags.Errors()),
		Warnings:    len(diags.Warnings()),
		Diagnostics: Format(diags),
	}
	entry.Checksum = entryChecksum(entry)

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return
	}
	j.buffer = append(j.buffer, entry)
	if len(j.buffer) >= j.config.BufferSize {
		_ = j.flushLocked() // retried on the next flush
	}
}

// Flush writes every buffered entry to the backend.
func (j *Journal) Flush() error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	return j.flushLocked()
}

// Query returns up to limit of the most recent entries, oldest first.
// limit <= 0 returns every entry. Buffered entries are flushed first.
func (j *Journal) Query(limit int) ([]JournalEntry, error) {
	if j == nil {
		return nil, nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil, ErrJournalClosed
	}
	if err := j.flushLocked(); err != nil {
		return nil, err
	}
	return j.backend.Query(limit)
}

// Close flushes pending entries and releases the backend. It is safe to
// call more than once.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return nil
	}
	j.closed = true
	close(j.stopCh)
	if j.flushTicker != nil {
		j.flushTicker.Stop()
	}
	flushErr := j.flushLocked()
	j.mu.Unlock()

	closeErr := j.backend.Close()
	if flushErr != nil {
		return errors.Wrap(flushErr, ErrCodeJournalError, "failed to flush journal during close")
	}
	if closeErr != nil {
		return errors.Wrap(closeErr, ErrCodeJournalError, "failed to close journal backend")
	}
	return nil
}

func (j *Journal) flushLoop() {
	for {
		select {
		case <-j.flushTicker.C:
			_ = j.Flush() // retried on the next tick
		case <-j.stopCh:
			return
		}
	}
}

// flushLocked writes the buffer (caller must hold mu).
func (j *Journal) flushLocked() error {
	if len(j.buffer) == 0 {
		return nil
	}
	if err := j.backend.Write(j.buffer); err != nil {
		return errors.Wrap(err, ErrCodeJournalError, "failed to write journal entries")
	}
	j.buffer = j.buffer[:0]
	return nil
}

func entryChecksum(e JournalEntry) string {
	data := fmt.Sprintf("%s:%s:%s:%q:%d:%d:%q",
		e.ID, e.Timestamp.UTC().Format(time.RFC3339Nano), e.Tool,
		strings.Join(e.Args, "\x00"), e.Errors, e.Warnings,
		strings.Join(e.Diagnostics, "\n"))
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
