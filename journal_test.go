// journal_test.go: Tests for the invocation journal and its backends
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var journalBackends = []string{"journal.jsonl", "journal.db"}

func newTestJournal(t *testing.T, file string, bufferSize int) (*Journal, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), file)
	j, err := NewJournal(JournalConfig{OutputFile: path, BufferSize: bufferSize})
	if err != nil {
		t.Fatalf("NewJournal(%s): %v", file, err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j, path
}

func TestJournal_RecordAndQuery(t *testing.T) {
	s := testSchema(t)
	for _, file := range journalBackends {
		t.Run(file, func(t *testing.T) {
			j, _ := newTestJournal(t, file, 10)

			argvs := [][]string{
				{"-o", "a.kexe", "main.kt"},
				{"-bogus", "-enable_assertions"},
				{"-g"},
			}
			for _, argv := range argvs {
				_, diags := Parse(s, argv)
				j.Record(s.Name(), argv, diags)
			}

			entries, err := j.Query(0)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(entries) != 3 {
				t.Fatalf("got %d entries, want 3", len(entries))
			}
			for i, e := range entries {
				if diff := cmp.Diff(argvs[i], e.Args); diff != "" {
					t.Errorf("entry %d args mismatch (-want +got):\n%s", i, diff)
				}
				if e.Tool != "konanc" || e.ID == "" || e.Timestamp.IsZero() {
					t.Errorf("entry %d incomplete: %+v", i, e)
				}
				if !e.Verify() {
					t.Errorf("entry %d fails verification after storage", i)
				}
			}
			if entries[1].Errors != 1 || entries[1].Warnings != 1 || len(entries[1].Diagnostics) != 2 {
				t.Errorf("diagnostic counts not recorded: %+v", entries[1])
			}

			last, err := j.Query(2)
			if err != nil {
				t.Fatalf("Query(2): %v", err)
			}
			if len(last) != 2 || last[0].ID != entries[1].ID || last[1].ID != entries[2].ID {
				t.Errorf("Query(2) should return the two most recent, oldest first")
			}
		})
	}
}

func TestJournal_PersistsAcrossReopen(t *testing.T) {
	for _, file := range journalBackends {
		t.Run(file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), file)
			j, err := NewJournal(DefaultJournalConfig(path))
			if err != nil {
				t.Fatalf("NewJournal: %v", err)
			}
			j.Record("konanc", []string{"-g"}, nil)
			if err := j.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			reopened, err := NewJournal(DefaultJournalConfig(path))
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer func() { _ = reopened.Close() }()
			entries, err := reopened.Query(0)
			if err != nil || len(entries) != 1 || !entries[0].Verify() {
				t.Fatalf("entries after reopen: %v, %v", entries, err)
			}
		})
	}
}

func TestJournal_BufferFlushesWhenFull(t *testing.T) {
	j, path := newTestJournal(t, "journal.jsonl", 2)
	j.Record("a", nil, nil)
	j.Record("b", nil, nil)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Errorf("full buffer should be written, found %d lines", n)
	}
}

func TestJournal_PeriodicFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	j, err := NewJournal(JournalConfig{OutputFile: path, BufferSize: 100, FlushInterval: 10 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = j.Close() }()
	j.Record("konanc", []string{"-g"}, nil)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if data, _ := os.ReadFile(path); len(data) > 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("entry was not flushed by the background ticker")
}

func TestJournal_TamperDetection(t *testing.T) {
	j, _ := newTestJournal(t, "journal.jsonl", 10)
	j.Record("konanc", []string{"-o", "a.kexe"}, nil)
	entries, err := j.Query(0)
	if err != nil || len(entries) != 1 {
		t.Fatalf("Query: %v %v", entries, err)
	}

	e := entries[0]
	e.Args[1] = "b.kexe"
	if e.Verify() {
		t.Error("modified args should fail verification")
	}
	e = entries[0]
	e.Checksum = ""
	if e.Verify() {
		t.Error("missing checksum should fail verification")
	}
}

func TestJournal_Closed(t *testing.T) {
	j, _ := newTestJournal(t, "journal.db", 10)
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Errorf("second Close should be a no-op: %v", err)
	}
	j.Record("konanc", nil, nil)
	if err := j.Flush(); err != nil {
		t.Errorf("Flush after Close: %v", err)
	}
	if _, err := j.Query(0); err != ErrJournalClosed {
		t.Errorf("Query after Close = %v, want ErrJournalClosed", err)
	}
}

func TestJournal_Nil(t *testing.T) {
	var j *Journal
	j.Record("konanc", nil, nil)
	if err := j.Flush(); err != nil {
		t.Error(err)
	}
	if entries, err := j.Query(1); entries != nil || err != nil {
		t.Error("nil journal Query should be empty")
	}
	if err := j.Close(); err != nil {
		t.Error(err)
	}
}

func TestJournal_InvalidConfig(t *testing.T) {
	_, err := NewJournal(JournalConfig{})
	assertCode(t, err, ErrCodeInvalidJournalConfig)

	_, err = NewJournal(DefaultJournalConfig(filepath.Join(t.TempDir(), "journal.txt")))
	assertCode(t, err, ErrCodeInvalidJournalConfig)
}

func TestJournal_ConcurrentRecord(t *testing.T) {
	j, _ := newTestJournal(t, "journal.db", 7)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for range 25 {
				j.Record("konanc", []string{"-g"}, nil)
			}
		}(i)
	}
	wg.Wait()

	entries, err := j.Query(0)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 200 {
		t.Errorf("got %d entries, want 200", len(entries))
	}
}
