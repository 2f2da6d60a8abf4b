// Utility functions for the Janus CLI
//
// This file provides helpers to obtain the argument vector under test and
// to size rendered output for the current terminal.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-shellwords"
	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 100

// SplitArgs splits s into arguments the way a POSIX shell splits words,
// honouring single and double quotes and backslash escapes outside single
// quotes. Unterminated quotes and shell operators such as '|' or '>' are
// an error: the vector is bound as written, never piped or redirected.
func SplitArgs(s string) ([]string, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("failed to split arguments: %w", err)
	}
	if parser.Position >= 0 {
		return nil, fmt.Errorf("unquoted shell operator at character %d", parser.Position)
	}
	if len(args) == 0 {
		return nil, nil
	}
	return args, nil
}

// ReadArgsFile reads one argument per line. Blank lines and lines starting
// with '#' are skipped; other lines are taken verbatim, so arguments may
// contain spaces.
func ReadArgsFile(path string) ([]string, error) {
	// #nosec G304 - path is supplied by the CLI user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read arguments file: %w", err)
	}
	var args []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args = append(args, line)
	}
	return args, nil
}

// TerminalWidth returns the width of f when it is a terminal, otherwise
// fallback.
func TerminalWidth(f *os.File, fallback int) int {
	if f == nil {
		return fallback
	}
	fd := int(f.Fd()) // #nosec G115 - file descriptors fit in int
	if !term.IsTerminal(fd) {
		return fallback
	}
	cols, _, err := term.GetSize(fd)
	if err != nil || cols <= 0 {
		return fallback
	}
	return cols
}
