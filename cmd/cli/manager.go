// Package cli provides the command-line interface of Janus.
//
// The CLI is built on the Orpheus framework and exposes the binding engine
// to shell users: argument vectors can be checked against a schema, usage
// text rendered, typed compiler records printed, schemas exported to files
// and journals inspected.
//
// Schemas are named either by a file (JSON, YAML, TOML, HCL) or by one of
// the built-in tool names of the toolargs package.
//
// Architecture:
// - Manager: command setup and routing
// - Handlers: one per command, thin wrappers over the janus package
// - Utils: schema resolution and output helpers
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"io"
	"os"

	"github.com/agilira/janus"
	"github.com/agilira/orpheus/pkg/orpheus"
)

// Version of the janus command.
const Version = "1.0.0"

// Manager wires the janus commands into an Orpheus application.
//
// Orpheus commands keep their parsed flag values, so every Run builds a
// fresh application and one Manager can serve any number of invocations.
type Manager struct {
	journal *janus.Journal // Optional, records every checked vector
	out     io.Writer
	width   int // 0 means detect from the terminal
}

// NewManager creates a CLI manager writing to standard output.
func NewManager() *Manager {
	return &Manager{out: os.Stdout}
}

// WithJournal records every vector checked by the CLI into j.
func (m *Manager) WithJournal(j *janus.Journal) *Manager {
	m.journal = j
	return m
}

// WithOutput redirects command output to w.
func (m *Manager) WithOutput(w io.Writer) *Manager {
	if w != nil {
		m.out = w
	}
	return m
}

// WithWidth fixes the wrap width of rendered usage text.
func (m *Manager) WithWidth(width int) *Manager {
	m.width = width
	return m
}

// Run executes the CLI application with the provided arguments.
func (m *Manager) Run(args []string) error {
	return m.newApp().Run(args)
}

// newApp builds the Orpheus application with every command registered.
func (m *Manager) newApp() *orpheus.App {
	app := orpheus.New("janus").
		SetDescription("Declarative command-line argument binding").
		SetVersion(Version)

	m.setupBindCommands(app)
	m.setupUtilityCommands(app)

	return app
}

// setupBindCommands configures the commands that bind argument vectors.
func (m *Manager) setupBindCommands(app *orpheus.App) {
	// check <schema> [--argv "..."] [--args-file f] [--env-prefix P]
	checkCmd := orpheus.NewCommand("check", "Bind an argument vector and report diagnostics").
		AddFlag("argv", "a", "", "Argument vector, split like a shell command line").
		AddFlag("args-file", "f", "", "File with one argument per line").
		AddFlag("base", "b", "", "Built-in schema extended by a schema file").
		AddFlag("env-prefix", "e", "", "Fill unset options from PREFIX_* variables").
		AddFlag("journal", "j", "", "Journal file (.jsonl or .db)").
		AddBoolFlag("quiet", "q", false, "Print diagnostics only").
		SetHandler(m.handleCheck)
	app.AddCommand(checkCmd)

	// usage <schema> [--internal] [--width n]
	usageCmd := orpheus.NewCommand("usage", "Render the usage text of a schema").
		AddFlag("base", "b", "", "Built-in schema extended by a schema file").
		AddBoolFlag("internal", "i", false, "Include advanced options").
		AddIntFlag("width", "w", 0, "Wrap width, 0 to detect").
		SetHandler(m.handleUsage)
	app.AddCommand(usageCmd)

	// decode <tool> [--argv "..."] [--args-file f]
	decodeCmd := orpheus.NewCommand("decode", "Bind a vector into the typed record of a built-in tool").
		AddFlag("argv", "a", "", "Argument vector, split like a shell command line").
		AddFlag("args-file", "f", "", "File with one argument per line").
		SetHandler(m.handleDecode)
	app.AddCommand(decodeCmd)
}

// setupUtilityCommands configures schema listing, journal inspection and
// shell completion.
func (m *Manager) setupUtilityCommands(app *orpheus.App) {
	schemasCmd := orpheus.NewCommand("schemas", "List the built-in schemas").
		SetHandler(m.handleSchemas)
	app.AddCommand(schemasCmd)

	// export <schema> <file> [--flatten]
	exportCmd := orpheus.NewCommand("export", "Write a schema to a JSON, YAML, TOML or HCL file").
		AddFlag("base", "b", "", "Built-in schema extended by a schema file").
		AddBoolFlag("flatten", "F", false, "Include the options of the base schema").
		SetHandler(m.handleExport)
	app.AddCommand(exportCmd)

	journalCmd := orpheus.NewCommand("journal", "Journal inspection")

	showCmd := journalCmd.Subcommand("show", "Show recorded entries", m.handleJournalShow)
	showCmd.AddIntFlag("limit", "l", 20, "Maximum entries, 0 for all")

	verifyCmd := journalCmd.Subcommand("verify", "Verify entry checksums", m.handleJournalVerify)
	verifyCmd.AddIntFlag("limit", "l", 0, "Maximum entries, 0 for all")

	app.AddCommand(journalCmd)

	completionCmd := orpheus.NewCommand("completion", "Generate shell completion scripts for a schema").
		SetHandler(m.handleCompletion)
	app.AddCommand(completionCmd)
}
