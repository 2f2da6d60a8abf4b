// Command handlers for the Janus CLI
//
// This file contains the handler of every command registered by the
// Manager. Handlers resolve their inputs, call into the janus package and
// print the outcome; they never bind arguments themselves.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"
	"strings"

	"github.com/agilira/go-errors"
	"github.com/agilira/janus"
	"github.com/agilira/janus/toolargs"
	"github.com/agilira/orpheus/pkg/orpheus"
	"go.yaml.in/yaml/v3"
)

// handleCheck binds an argument vector against a schema and reports the
// diagnostics and the bound values.
func (m *Manager) handleCheck(ctx *orpheus.Context) (err error) {
	schema, err := resolveSchema(ctx.GetArg(0), ctx.GetFlagString("base"))
	if err != nil {
		return err
	}
	argv, err := loadArgv(ctx.GetFlagString("argv"), ctx.GetFlagString("args-file"))
	if err != nil {
		return err
	}

	journal := m.journal
	if journal == nil {
		if journal, err = openJournal(ctx.GetFlagString("journal")); err != nil {
			return errors.Wrap(err, janus.ErrCodeJournalError, "failed to open journal")
		}
		defer func() {
			if closeErr := journal.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
	}

	var opts []janus.BindOption
	if prefix := ctx.GetFlagString("env-prefix"); prefix != "" {
		opts = append(opts, janus.WithEnv(prefix, nil))
	}

	cfg, diags := janus.Parse(schema, argv, opts...)
	journal.Record(schema.Name(), argv, diags)

	return m.report(cfg, diags, ctx.GetFlagBool("quiet"))
}

// report prints the outcome of one binding run.
func (m *Manager) report(cfg *janus.ParsedConfig, diags janus.Diagnostics, quiet bool) error {
	printDiagnostics(m.out, diags)

	if !quiet {
		m.printConfig(cfg, "  ")
		if help := helpRequest(cfg); help != nil {
			fmt.Fprint(m.out, janus.RenderWidth(help.Schema(), false, m.usageWidth(0)))
		}
	}

	if errs := diags.Errors(); len(errs) > 0 {
		return errors.New(janus.ErrCodeInvalidArguments,
			fmt.Sprintf("argument vector has %d error(s)", len(errs)))
	}
	if !quiet {
		fmt.Fprintln(m.out, okColor.Sprint("ok"))
	}
	return nil
}

// printConfig prints the bound values of cfg and, indented, of its
// subcommand.
func (m *Manager) printConfig(cfg *janus.ParsedConfig, indent string) {
	for _, name := range cfg.Names() {
		v, _ := cfg.Value(name)
		fmt.Fprintf(m.out, "%s%s = %s (%s)\n", indent, name, describeValue(v), cfg.Origin(name))
	}
	for _, a := range cfg.Schema().Arguments() {
		if values := cfg.Arguments(a.Name); len(values) > 0 {
			fmt.Fprintf(m.out, "%s%s = %s (%s)\n", indent, a.Name, describeValue(values), cfg.ArgumentOrigin(a.Name))
		}
	}
	if pos := cfg.Positionals(); len(pos) > 0 {
		fmt.Fprintf(m.out, "%sarguments: %s\n", indent, describeValue(pos))
	}
	if name, sub := cfg.Subcommand(); sub != nil {
		fmt.Fprintf(m.out, "%scommand: %s\n", indent, name)
		m.printConfig(sub, indent+"  ")
	}
}

// helpRequest returns the innermost config that asked for help, or nil.
func helpRequest(cfg *janus.ParsedConfig) *janus.ParsedConfig {
	var help *janus.ParsedConfig
	for cfg != nil {
		if cfg.HelpRequested() {
			help = cfg
		}
		_, cfg = cfg.Subcommand()
	}
	return help
}

// handleUsage renders the usage text of a schema.
func (m *Manager) handleUsage(ctx *orpheus.Context) error {
	schema, err := resolveSchema(ctx.GetArg(0), ctx.GetFlagString("base"))
	if err != nil {
		return err
	}
	width := m.usageWidth(ctx.GetFlagInt("width"))
	fmt.Fprint(m.out, janus.RenderWidth(schema, ctx.GetFlagBool("internal"), width))
	return nil
}

// handleDecode binds a vector against a built-in tool and prints its typed
// record as YAML.
func (m *Manager) handleDecode(ctx *orpheus.Context) error {
	tool := strings.ToLower(ctx.GetArg(0))
	schema, err := toolargs.Lookup(tool)
	if err != nil {
		return err
	}
	argv, err := loadArgv(ctx.GetFlagString("argv"), ctx.GetFlagString("args-file"))
	if err != nil {
		return err
	}

	cfg, diags := janus.Parse(schema, argv)
	printDiagnostics(m.out, diags.Warnings())
	if err := diags.Err(); err != nil {
		return err
	}

	record, err := decodeRecord(tool, cfg)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(record)
	if err != nil {
		return errors.Wrap(err, janus.ErrCodeInvalidBinding, "failed to encode record")
	}
	_, err = m.out.Write(data)
	return err
}

func decodeRecord(tool string, cfg *janus.ParsedConfig) (interface{}, error) {
	switch tool {
	case "native", "konanc":
		return toolargs.DecodeNative(cfg)
	case "cinterop":
		return toolargs.DecodeCInterop(cfg)
	case "jsinterop":
		return toolargs.DecodeJSInterop(cfg)
	case "benchmark":
		return toolargs.DecodeBenchmark(cfg)
	default:
		return nil, errors.New(janus.ErrCodeUnknownSchema,
			fmt.Sprintf("no typed record for %q, expected native, konanc, cinterop, jsinterop or benchmark", tool))
	}
}

// handleSchemas lists the built-in schemas.
func (m *Manager) handleSchemas(ctx *orpheus.Context) error {
	for _, name := range toolargs.Names() {
		schema, err := toolargs.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(m.out, "%-10s %-10s %3d options\n", name, schema.Name(), schema.Len())
	}
	return nil
}

// handleExport writes a schema to the file named by the second argument.
func (m *Manager) handleExport(ctx *orpheus.Context) error {
	schema, err := resolveSchema(ctx.GetArg(0), ctx.GetFlagString("base"))
	if err != nil {
		return err
	}
	path := ctx.GetArg(1)
	if path == "" {
		return errors.New(janus.ErrCodeSchemaFile, "output file is required")
	}

	flatten := ctx.GetFlagBool("flatten")
	if err := janus.WriteSchemaFile(schema, path, flatten); err != nil {
		return err
	}

	written := schema.Len()
	if base := schema.Base(); base != nil && !flatten {
		written -= base.Len()
	}
	fmt.Fprintf(m.out, "%s wrote %d options to %s\n", okColor.Sprint("ok:"), written, path)
	return nil
}

// openJournalArg opens the journal named by the first argument or by the
// environment, failing when neither names one.
func openJournalArg(ctx *orpheus.Context) (*janus.Journal, error) {
	j, err := openJournal(ctx.GetArg(0))
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, errors.New(janus.ErrCodeInvalidJournalConfig,
			"journal file is required (argument or $"+JournalEnv+")")
	}
	return j, nil
}

// handleJournalShow prints the most recent journal entries.
func (m *Manager) handleJournalShow(ctx *orpheus.Context) error {
	j, err := openJournalArg(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = j.Close() }()

	entries, err := j.Query(ctx.GetFlagInt("limit"))
	if err != nil {
		return err
	}
	for _, e := range entries {
		status := okColor.Sprint("ok")
		if e.Errors > 0 {
			status = errorColor.Sprintf("%d error(s)", e.Errors)
		} else if e.Warnings > 0 {
			status = warningColor.Sprintf("%d warning(s)", e.Warnings)
		}
		fmt.Fprintf(m.out, "%s  %-10s %s  [%s]\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Tool, strings.Join(e.Args, " "), status)
		for _, d := range e.Diagnostics {
			fmt.Fprintf(m.out, "    %s\n", d)
		}
	}
	return nil
}

// handleJournalVerify checks the checksum of every entry.
func (m *Manager) handleJournalVerify(ctx *orpheus.Context) error {
	j, err := openJournalArg(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = j.Close() }()

	entries, err := j.Query(ctx.GetFlagInt("limit"))
	if err != nil {
		return err
	}
	var tampered []string
	for _, e := range entries {
		if !e.Verify() {
			tampered = append(tampered, e.ID)
		}
	}
	if len(tampered) > 0 {
		for _, id := range tampered {
			fmt.Fprintf(m.out, "%s %s\n", errorColor.Sprint("tampered:"), id)
		}
		return errors.New(janus.ErrCodeJournalError,
			fmt.Sprintf("%d of %d entries failed verification", len(tampered), len(entries)))
	}
	fmt.Fprintf(m.out, "%s %d entries verified\n", okColor.Sprint("ok:"), len(entries))
	return nil
}

// handleCompletion generates a completion script offering the public
// options and the subcommands of a schema.
func (m *Manager) handleCompletion(ctx *orpheus.Context) error {
	shell := ctx.GetArg(0)
	schema, err := resolveSchema(ctx.GetArg(1), "")
	if err != nil {
		return err
	}
	tool := schema.Name()
	if tool == "" {
		tool = "command"
	}

	var public []janus.OptionSpec
	var words []string
	for _, o := range schema.Options() {
		if o.Visibility != janus.Public {
			continue
		}
		public = append(public, o)
		words = append(words, o.Name)
		if o.Short != "" {
			words = append(words, o.Short)
		}
	}
	subs := schema.Subcommands()
	for _, sub := range subs {
		words = append(words, sub.Name())
	}
	fn := "_" + strings.NewReplacer("-", "_", ".", "_").Replace(tool) + "_completion"

	switch shell {
	case "bash":
		fmt.Fprintf(m.out, "# Bash completion for %s\n", tool)
		fmt.Fprintf(m.out, "%s() {\n", fn)
		fmt.Fprintf(m.out, "  COMPREPLY=($(compgen -W '%s' -- \"${COMP_WORDS[COMP_CWORD]}\"))\n", strings.Join(words, " "))
		fmt.Fprintf(m.out, "}\n")
		fmt.Fprintf(m.out, "complete -o default -F %s %s\n", fn, tool)
	case "zsh":
		fmt.Fprintf(m.out, "#compdef %s\n", tool)
		fmt.Fprintf(m.out, "# Zsh completion for %s\n", tool)
		fmt.Fprintf(m.out, "%s() {\n", fn)
		fmt.Fprintf(m.out, "  compadd -- %s\n", strings.Join(words, " "))
		fmt.Fprintf(m.out, "}\n")
		fmt.Fprintf(m.out, "compdef %s %s\n", fn, tool)
	case "fish":
		fmt.Fprintf(m.out, "# Fish completion for %s\n", tool)
		for _, o := range public {
			line := fmt.Sprintf("complete -c %s %s", tool, fishOption(o.Name))
			if o.Short != "" {
				line += " " + fishOption(o.Short)
			}
			if o.TakesValue() {
				line += " -r"
			}
			if o.Help != "" {
				line += fmt.Sprintf(" -d %q", o.Help)
			}
			fmt.Fprintln(m.out, line)
		}
		for _, sub := range subs {
			fmt.Fprintf(m.out, "complete -c %s -f -n __fish_use_subcommand -a %s -d %q\n", tool, sub.Name(), sub.Description())
		}
	default:
		return errors.New(janus.ErrCodeInvalidArguments, fmt.Sprintf("unsupported shell: %s", shell))
	}
	return nil
}

// fishOption maps a spelling to fish's long (-l) or old-style (-o) form.
func fishOption(spelling string) string {
	if name, ok := strings.CutPrefix(spelling, "--"); ok {
		return "-l " + name
	}
	return "-o " + strings.TrimPrefix(spelling, "-")
}
