// Utility functions for the Janus CLI
//
// This file provides schema resolution, argument vector loading and the
// coloured diagnostic printer shared by the command handlers.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agilira/go-errors"
	"github.com/agilira/janus"
	internalcli "github.com/agilira/janus/internal/cli"
	"github.com/agilira/janus/toolargs"
	"github.com/fatih/color"
)

// JournalEnv names the variable holding the default journal file.
const JournalEnv = "JANUS_JOURNAL"

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	okColor      = color.New(color.FgGreen)
)

// resolveSchema returns the schema named by ref. A ref with a schema file
// extension is loaded from disk, extending the built-in schema baseName
// when one is given; anything else is a built-in tool name.
func resolveSchema(ref, baseName string) (*janus.Schema, error) {
	if ref == "" {
		return nil, errors.New(janus.ErrCodeUnknownSchema, "schema is required (file or built-in name)")
	}

	if janus.DetectSchemaFormat(ref) == janus.FormatUnknown {
		if baseName != "" {
			return nil, errors.New(janus.ErrCodeUnknownSchema, "--base only applies to schema files")
		}
		return toolargs.Lookup(ref)
	}

	var base *janus.Schema
	if baseName != "" {
		var err error
		if base, err = toolargs.Lookup(baseName); err != nil {
			return nil, err
		}
	}
	return janus.LoadSchemaFile(ref, base)
}

// loadArgv returns the vector given by --args-file, or by --argv when no
// file is named.
func loadArgv(argvFlag, argsFile string) ([]string, error) {
	if argsFile != "" {
		args, err := internalcli.ReadArgsFile(argsFile)
		if err != nil {
			return nil, errors.Wrap(err, janus.ErrCodeInvalidArguments, "failed to load argument vector")
		}
		return args, nil
	}
	args, err := internalcli.SplitArgs(argvFlag)
	if err != nil {
		return nil, errors.Wrap(err, janus.ErrCodeInvalidArguments, "failed to split --argv")
	}
	return args, nil
}

// openJournal opens the journal named by path, or by $JANUS_JOURNAL. It
// returns nil when neither names one.
func openJournal(path string) (*janus.Journal, error) {
	if path == "" {
		path = os.Getenv(JournalEnv)
	}
	if path == "" {
		return nil, nil
	}
	cfg := janus.DefaultJournalConfig(path)
	cfg.FlushInterval = 0 // short-lived process, flushed on Close
	return janus.NewJournal(cfg)
}

// printDiagnostics writes one line per diagnostic with a coloured severity.
func printDiagnostics(w io.Writer, diags janus.Diagnostics) {
	for i, line := range janus.Format(diags) {
		c := errorColor
		if diags[i].Severity == janus.SeverityWarning {
			c = warningColor
		}
		prefix, rest, _ := strings.Cut(line, ":")
		fmt.Fprintf(w, "%s:%s\n", c.Sprint(prefix), rest)
	}
}

// usageWidth picks the wrap width: an explicit value, then the manager's,
// then the terminal's.
func (m *Manager) usageWidth(explicit int) int {
	switch {
	case explicit > 0:
		return explicit
	case m.width > 0:
		return m.width
	}
	if f, ok := m.out.(*os.File); ok {
		return internalcli.TerminalWidth(f, internalcli.DefaultWidth)
	}
	return internalcli.DefaultWidth
}

// describeValue formats a bound value for display.
func describeValue(v interface{}) string {
	switch val := v.(type) {
	case []string:
		return "[" + strings.Join(val, ", ") + "]"
	case string:
		return fmt.Sprintf("%q", val)
	default:
		return fmt.Sprint(val)
	}
}
