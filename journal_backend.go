// journal_backend.go: Storage backends for the invocation journal
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/agilira/go-errors"
	_ "github.com/mattn/go-sqlite3" // SQLite driver registration
)

// journalBackend abstracts where journal entries are stored.
type journalBackend interface {
	// Write persists a batch of entries.
	Write(entries []JournalEntry) error
	// Query returns up to limit of the most recent entries, oldest first.
	Query(limit int) ([]JournalEntry, error)
	// Close releases all resources. The backend must not be used afterwards.
	Close() error
}

// createJournalBackend picks the backend from the output file extension.
func createJournalBackend(config JournalConfig) (journalBackend, error) {
	switch strings.ToLower(filepath.Ext(config.OutputFile)) {
	case ".jsonl":
		return newJSONLBackend(config.OutputFile)
	case ".db", ".sqlite", ".sqlite3":
		return newSQLiteBackend(config.OutputFile)
	default:
		return nil, errors.New(ErrCodeInvalidJournalConfig,
			fmt.Sprintf("unsupported journal file %s: use .jsonl or .db", config.OutputFile))
	}
}

// sqliteJournalBackend stores entries in a SQLite database in WAL mode.
type sqliteJournalBackend struct {
	db         *sql.DB
	insertStmt *sql.Stmt
	mu         sync.Mutex
	closed     bool
}

const journalSchemaSQL = `
CREATE TABLE IF NOT EXISTS journal_entries (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT NOT NULL UNIQUE,
	timestamp   TEXT NOT NULL,
	tool        TEXT NOT NULL,
	args        TEXT NOT NULL,
	errors      INTEGER NOT NULL,
	warnings    INTEGER NOT NULL,
	diagnostics TEXT NOT NULL,
	checksum    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_journal_tool ON journal_entries(tool);`

func newSQLiteBackend(path string) (*sqliteJournalBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, errors.Wrap(err, ErrCodeJournalError, "failed to create journal directory")
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path))
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeJournalError, "failed to open journal database")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, ErrCodeJournalError, "failed to ping journal database")
	}
	if _, err := db.Exec(journalSchemaSQL); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, ErrCodeJournalError, "failed to initialise journal schema")
	}

	stmt, err := db.Prepare(`
	INSERT INTO journal_entries (id, timestamp, tool, args, errors, warnings, diagnostics, checksum)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, ErrCodeJournalError, "failed to prepare journal insert")
	}

	return &sqliteJournalBackend{db: db, insertStmt: stmt}, nil
}

func (s *sqliteJournalBackend) Write(entries []JournalEntry) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrJournalClosed
	}
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt := tx.Stmt(s.insertStmt)
	defer func() { _ = stmt.Close() }()

	for _, e := range entries {
		args, err := json.Marshal(e.Args)
		if err != nil {
			return err
		}
		diags, err := json.Marshal(e.Diagnostics)
		if err != nil {
			return err
		}
		if _, err = stmt.Exec(e.ID, e.Timestamp.UTC().Format(time.RFC3339Nano), e.Tool,
			string(args), e.Errors, e.Warnings, string(diags), e.Checksum); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *sqliteJournalBackend) Query(limit int) ([]JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrJournalClosed
	}
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.Query(`
	SELECT id, timestamp, tool, args, errors, warnings, diagnostics, checksum
	FROM journal_entries ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeJournalError, "failed to query journal")
	}
	defer func() { _ = rows.Close() }()

	var entries []JournalEntry
	for rows.Next() {
		var (
			e           JournalEntry
			ts          string
			args, diags string
		)
		if err := rows.Scan(&e.ID, &ts, &e.Tool, &args, &e.Errors, &e.Warnings, &diags, &e.Checksum); err != nil {
			return nil, errors.Wrap(err, ErrCodeJournalError, "failed to read journal row")
		}
		if e.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, errors.Wrap(err, ErrCodeJournalError, "invalid journal timestamp")
		}
		if err := json.Unmarshal([]byte(args), &e.Args); err != nil {
			return nil, errors.Wrap(err, ErrCodeJournalError, "invalid journal arguments")
		}
		if err := json.Unmarshal([]byte(diags), &e.Diagnostics); err != nil {
			return nil, errors.Wrap(err, ErrCodeJournalError, "invalid journal diagnostics")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, ErrCodeJournalError, "failed to iterate journal")
	}
	slices.Reverse(entries)
	return entries, nil
}

func (s *sqliteJournalBackend) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []string
	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		errs = append(errs, err.Error())
	}
	if err := s.insertStmt.Close(); err != nil {
		errs = append(errs, err.Error())
	}
	if err := s.db.Close(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return errors.New(ErrCodeJournalError, "errors closing SQLite journal: "+strings.Join(errs, "; "))
	}
	return nil
}

// jsonlJournalBackend appends one JSON object per line.
type jsonlJournalBackend struct {
	path   string
	file   *os.File
	mu     sync.Mutex
	closed bool
}

func newJSONLBackend(path string) (*jsonlJournalBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, errors.Wrap(err, ErrCodeJournalError, "failed to create journal directory")
	}
	// #nosec G304 - journal path is configured by the operator
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeJournalError, "failed to open journal file")
	}
	return &jsonlJournalBackend{path: path, file: file}, nil
}

func (j *jsonlJournalBackend) Write(entries []JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrJournalClosed
	}

	var sb strings.Builder
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return err
		}
		sb.Write(data)
		sb.WriteByte('\n')
	}
	if _, err := j.file.WriteString(sb.String()); err != nil {
		return err
	}
	return j.file.Sync()
}

func (j *jsonlJournalBackend) Query(limit int) ([]JournalEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil, ErrJournalClosed
	}

	// #nosec G304 - same path the backend writes to
	f, err := os.Open(j.path)
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeJournalError, "failed to open journal for reading")
	}
	defer func() { _ = f.Close() }()

	var entries []JournalEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e JournalEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, errors.Wrap(err, ErrCodeJournalError, fmt.Sprintf("invalid journal line %d", line))
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, ErrCodeJournalError, "failed to read journal")
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

func (j *jsonlJournalBackend) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.file.Close()
}
