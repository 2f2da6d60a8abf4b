// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"plain", "-o  a.kexe\tx.kt", []string{"-o", "a.kexe", "x.kt"}},
		{"double_quotes", `-linker-options "-lz -lm"`, []string{"-linker-options", "-lz -lm"}},
		{"single_quotes", `-copt '-D"X"'`, []string{"-copt", `-D"X"`}},
		{"escape", `a\ b c`, []string{"a b", "c"}},
		{"empty_quoted", `-pkg ""`, []string{"-pkg", ""}},
		{"blank", " \t\n", nil},
		{"quoted_operators", `-linker-options '-Wl,-rpath,$ORIGIN' "a|b" x\>y`, []string{"-linker-options", "-Wl,-rpath,$ORIGIN", "a|b", "x>y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitArgs(tt.in)
			if err != nil {
				t.Fatalf("SplitArgs(%q): %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitArgs(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestSplitArgs_Errors(t *testing.T) {
	for _, in := range []string{`"open`, `'open`, `trailing\`, "-o a.kexe > log", "x.kt | tee", "a; b", "(sub)"} {
		if _, err := SplitArgs(in); err == nil {
			t.Errorf("SplitArgs(%q) should fail", in)
		}
	}
}

func TestReadArgsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "args.txt")
	content := "# compiler flags\n-linker-options\n-lz -lm\r\n\nx.kt\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := ReadArgsFile(path)
	if err != nil {
		t.Fatalf("ReadArgsFile: %v", err)
	}
	want := []string{"-linker-options", "-lz -lm", "x.kt"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadArgsFile mismatch (-want +got):\n%s", diff)
	}

	if _, err := ReadArgsFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestTerminalWidth_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	if got := TerminalWidth(f, 77); got != 77 {
		t.Errorf("TerminalWidth(file) = %d, want 77", got)
	}
	if got := TerminalWidth(nil, 42); got != 42 {
		t.Errorf("TerminalWidth(nil) = %d, want 42", got)
	}
}
