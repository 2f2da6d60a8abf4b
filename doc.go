// Package janus provides declarative command-line argument binding for
// tools with large, evolving option vocabularies.
//
// Options are declared once as data, in an OptionSpec slice or a schema
// file, and Janus turns an argument vector into a typed configuration plus
// an ordered list of diagnostics. Parsing never aborts on the first
// problem: every unknown option, missing value and invalid choice is
// reported in a single run, so a tool can show all of them at once.
//
// # Architecture Overview
//
// Janus consists of five cooperating parts:
//  1. **Schema Registry**: Build validates declarations and indexes every
//     spelling (canonical name, short alias, deprecated names). Schemas
//     extend a base schema, the way a family of compilers shares options.
//  2. **Tokenizer**: Tokenize classifies each argv element as a flag, a
//     positional or the "--" terminator, lazily, as an iter.Seq.
//  3. **Binder**: Bind walks the tokens against a schema and accumulates
//     values into a ParsedConfig, applying defaults and required checks.
//  4. **Diagnostics**: Format projects diagnostics into display lines.
//  5. **Help Renderer**: Render produces aligned usage text, hiding
//     internal options unless asked.
//
// # Quick Start
//
//	schema, err := janus.Build(nil, []janus.OptionSpec{
//		{Name: "-output", Short: "-o", Kind: janus.KindScalar,
//			ValueDescription: "<name>", Help: "Output name"},
//		{Name: "-library", Short: "-l", Kind: janus.KindList, Delimiter: ','},
//		{Name: "-g", Kind: janus.KindFlag, Help: "Emit debug information"},
//	}, janus.WithName("konanc"))
//	if err != nil {
//		return err
//	}
//
//	cfg, diags := janus.Parse(schema, os.Args[1:])
//	for _, line := range janus.Format(diags) {
//		fmt.Fprintln(os.Stderr, line)
//	}
//	if diags.HasErrors() {
//		os.Exit(1)
//	}
//	if cfg.HelpRequested() {
//		fmt.Print(janus.Render(schema, false))
//		return nil
//	}
//
// # Typed Records
//
// ConfigBinder copies a ParsedConfig into struct fields with a fluent API;
// conversion problems are collected and returned by Apply:
//
//	var args struct {
//		Output    string
//		Libraries []string
//		Debug     bool
//	}
//	err := janus.BindFromParsed(cfg).
//		BindString(&args.Output, "-output").
//		BindStrings(&args.Libraries, "-library").
//		BindBool(&args.Debug, "-g").
//		Apply()
//
// The toolargs subpackage ships complete schemas and typed records for the
// native compiler and the interop stub generators.
//
// # Value Precedence
//
// Every bound value carries its Origin. Command-line values override
// environment values, which override declared defaults:
//
//	cfg, diags := janus.Parse(schema, argv, janus.WithEnv("KONAN", nil))
//
// fills options left unset on the command line from KONAN_OUTPUT,
// KONAN_LIBRARY and so on, before required options are checked.
//
// # Schema Files
//
// LoadSchemaFile reads declarations from JSON, YAML, TOML or HCL, picking
// the decoder from the file extension. Unknown keys are rejected.
//
// # Journal and Batch Binding
//
// A Journal records each bound invocation with a SHA-256 checksum to a
// JSON-lines file or a SQLite database. BindAll binds many vectors against
// one schema concurrently. ExportFlashFlags mirrors a bound configuration
// into a flash-flags FlagSet for programs built on that library.
//
// # Thread Safety
//
// A Schema is immutable after Build and may be shared by any number of
// goroutines. A ParsedConfig belongs to the goroutine that produced it.
// Journal methods are safe for concurrent use.
//
// Repository: https://github.com/agilira/janus
package janus
