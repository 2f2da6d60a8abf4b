// binder.go: Binds a token stream against a schema
//
// The binder never stops at the first problem: every diagnostic of one
// invocation is collected so that the caller can report them together.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"unicode"
)

// BindOption customises a single Bind call.
type BindOption func(*bindSettings)

type bindSettings struct {
	envPrefix string
	envLookup func(string) (string, bool)
}

// WithEnv enables the environment fallback: options not supplied in argv
// are read through lookup before defaults and required checks are applied.
// See ApplyEnv for the variable naming rules. A nil lookup reads the
// process environment.
func WithEnv(prefix string, lookup func(string) (string, bool)) BindOption {
	if lookup == nil {
		lookup = LookupOS
	}
	return func(s *bindSettings) {
		s.envPrefix = prefix
		s.envLookup = lookup
	}
}

// binder holds the state of one Bind run over one schema level.
type binder struct {
	schema     *Schema
	settings   bindSettings
	cfg        *ParsedConfig
	diags      collector
	seen       map[string]bool // scalar options already bound from argv
	warned     map[string]bool // options whose deprecation warning was reported
	queue      argumentQueue
	terminated bool
}

// Parse tokenizes argv and binds it against schema.
func Parse(schema *Schema, argv []string, opts ...BindOption) (*ParsedConfig, Diagnostics) {
	return Bind(schema, Tokenize(argv), opts...)
}

// Bind matches tokens against schema and returns the bound configuration
// with every diagnostic found.
//
// Duplicate policy per kind: flags are idempotent, scalars are
// last-write-wins unless declared Once, lists accumulate in argv order.
// Diagnostics of a selected subcommand follow those of its parent.
func Bind(schema *Schema, tokens iter.Seq[RawToken], opts ...BindOption) (*ParsedConfig, Diagnostics) {
	if schema == nil {
		schema = emptySchema
	}
	var settings bindSettings
	for _, opt := range opts {
		opt(&settings)
	}

	next, stop := iter.Pull(tokens)
	defer stop()

	b := newBinder(schema, settings)
	b.run(next)
	return b.cfg, b.diags.diags
}

func newBinder(schema *Schema, settings bindSettings) *binder {
	return &binder{
		schema:   schema,
		settings: settings,
		cfg:      newParsedConfig(schema),
		seen:     make(map[string]bool),
		warned:   make(map[string]bool),
		queue:    argumentQueue{args: schema.arguments},
	}
}

// run binds tokens until the stream ends or a subcommand takes over the
// rest of it.
func (b *binder) run(next func() (RawToken, bool)) {
	var child *binder
walk:
	for {
		tok, ok := next()
		if !ok {
			break
		}
		switch tok.Kind {
		case TokenPositional:
			if sub, ok := b.subcommand(tok); ok {
				child = newBinder(sub, b.settings)
				child.run(next)
				b.cfg.command, b.cfg.sub = tok.Text, child.cfg
				break walk
			}
			b.bindPositional(tok)
		case TokenTerminator:
			// Nothing to bind; the tokenizer already marks what follows as positional.
			b.terminated = true
		case TokenFlag:
			b.bindFlag(tok, next)
		}
	}

	if b.settings.envLookup != nil {
		b.diags.diags = append(b.diags.diags, applyEnv(b.cfg, b.settings.envPrefix, b.settings.envLookup)...)
	}
	b.finish()
	b.finishArguments()
	if child != nil {
		b.diags.diags = append(b.diags.diags, child.diags.diags...)
	}
}

// subcommand resolves a positional element to a subcommand schema. After
// the terminator every element is a plain positional.
func (b *binder) subcommand(tok RawToken) (*Schema, bool) {
	if b.terminated {
		return nil, false
	}
	return b.schema.Subcommand(tok.Text)
}

func (b *binder) bindPositional(tok RawToken) {
	b.cfg.positionals = append(b.cfg.positionals, tok.Text)
	if len(b.schema.arguments) == 0 {
		return
	}
	a := b.queue.pop()
	if a == nil {
		b.diags.report(TooManyArguments, tok,
			fmt.Sprintf("too many arguments, could not process argument %s", tok.Text))
		return
	}
	if !a.allowed(tok.Text) {
		b.diags.report(InvalidValue, tok, fmt.Sprintf("invalid value %q for argument %s, expected one of %s",
			tok.Text, a.Name, strings.Join(a.Choices, "|")))
		return
	}
	b.cfg.appendArgument(a, []string{tok.Text}, OriginArgs)
}

var emptySchema = &Schema{index: map[string]int{}}

func (b *binder) bindFlag(tok RawToken, next func() (RawToken, bool)) {
	o, deprecated := b.schema.resolve(tok.Flag)
	if o == nil {
		if !tok.HasValue && b.schema.isHelp(tok.Flag) {
			b.cfg.help = true
			return
		}
		// The following element is left alone: consuming it for an unknown
		// option would misalign everything after it.
		b.diags.report(UnknownFlag, tok, fmt.Sprintf("unknown option %s", tok.Flag))
		return
	}

	if deprecated {
		b.diags.report(DeprecatedFlag, tok,
			fmt.Sprintf("option %s is deprecated, use %s instead", tok.Flag, o.Name))
	}
	if o.DeprecatedWarning != "" && !b.warned[o.Name] {
		b.warned[o.Name] = true
		b.diags.report(DeprecatedFlag, tok, o.DeprecatedWarning)
	}

	if o.Kind == KindFlag {
		value := true
		if tok.HasValue {
			parsed, err := strconv.ParseBool(tok.Value)
			if err != nil {
				b.diags.report(InvalidValue, tok,
					fmt.Sprintf("invalid boolean value %q for %s", tok.Value, o.Name))
				return
			}
			value = parsed
		}
		b.cfg.setFlag(o, value, OriginArgs)
		return
	}

	raw, ok := b.takeValue(tok, next)
	if !ok {
		b.diags.report(MissingValue, tok, fmt.Sprintf("no value for %s", describe(o)))
		return
	}

	switch o.Kind {
	case KindScalar:
		b.bindScalar(o, tok, raw)
	case KindList:
		b.bindList(o, tok, raw)
	}
}

// takeValue returns the inline value or consumes the next element, whatever
// its shape, so that values such as "-5" or "-Wl,-z" can be passed.
func (b *binder) takeValue(tok RawToken, next func() (RawToken, bool)) (string, bool) {
	if tok.HasValue {
		return tok.Value, true
	}
	following, ok := next()
	if !ok || following.Kind == TokenTerminator {
		return "", false
	}
	return following.Text, true
}

func (b *binder) bindScalar(o *OptionSpec, tok RawToken, raw string) {
	if !o.allowed(raw) {
		b.diags.report(InvalidValue, tok, invalidChoice(o, raw))
		return
	}
	if o.Once && b.seen[o.Name] {
		b.diags.report(DuplicateFlag, tok, fmt.Sprintf("option %s may only be specified once", o.Name))
		return
	}
	b.seen[o.Name] = true
	b.cfg.setScalar(o, raw, OriginArgs)
}

func (b *binder) bindList(o *OptionSpec, tok RawToken, raw string) {
	parts := []string{raw}
	if o.Delimiter != 0 {
		var dropped bool
		parts, dropped = splitList(raw, o.Delimiter)
		if dropped {
			b.diags.report(BadDelimiterUsage, tok,
				fmt.Sprintf("empty element in %q for %s (delimiter %q)", raw, o.Name, o.Delimiter))
		}
	}

	kept := parts[:0]
	for _, p := range parts {
		if !o.allowed(p) {
			b.diags.report(InvalidValue, tok, invalidChoice(o, p))
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) > 0 {
		b.cfg.appendList(o, kept, OriginArgs)
	}
}

// finish applies defaults and reports required options left unset.
func (b *binder) finish() {
	for i := range b.schema.options {
		o := &b.schema.options[i]
		if _, set := b.cfg.values[o.Name]; set {
			continue
		}
		if o.Kind == KindScalar && o.Default != "" {
			b.cfg.setScalar(o, o.Default, OriginDefault)
			continue
		}
		if o.Required && !b.cfg.help {
			b.diags.diags = append(b.diags.diags, Diagnostic{
				Kind:     MissingRequired,
				Severity: SeverityError,
				Token:    o.Name,
				Index:    -1,
				Message:  fmt.Sprintf("value for %s should always be provided", describe(o)),
			})
		}
	}
}

// finishArguments applies argument defaults. Missing arguments are not
// reported on a help request or when a subcommand took over the positionals.
func (b *binder) finishArguments() {
	for i := range b.schema.arguments {
		a := &b.schema.arguments[i]
		got := len(b.cfg.Arguments(a.Name))
		if got == 0 && len(a.Default) > 0 {
			b.cfg.appendArgument(a, a.Default, OriginDefault)
			continue
		}
		if b.cfg.help || b.cfg.sub != nil {
			continue
		}
		var message string
		switch n := a.count(); {
		case got == 0 && a.required():
			message = fmt.Sprintf("value for argument %s should always be provided", a.Name)
		case got > 0 && n > 1 && got < n:
			message = fmt.Sprintf("argument %s takes %d values, got %d", a.Name, n, got)
		default:
			continue
		}
		b.diags.diags = append(b.diags.diags, Diagnostic{
			Kind:     MissingArgument,
			Severity: SeverityError,
			Token:    a.Name,
			Index:    -1,
			Message:  message,
		})
	}
}

// splitList splits raw on delim. Empty elements are dropped and reported
// through dropped; whitespace delimiters collapse runs instead, the way a
// shell word list behaves, and only a value with no element at all is
// reported.
func splitList(raw string, delim rune) (parts []string, dropped bool) {
	if unicode.IsSpace(delim) {
		parts = strings.FieldsFunc(raw, func(r rune) bool { return r == delim })
		return parts, len(parts) == 0
	}
	for _, p := range strings.Split(raw, string(delim)) {
		if p == "" {
			dropped = true
			continue
		}
		parts = append(parts, p)
	}
	return parts, dropped
}

func describe(o *OptionSpec) string {
	if o.ValueDescription != "" {
		return fmt.Sprintf("option %s %s", o.Name, o.ValueDescription)
	}
	return "option " + o.Name
}

func invalidChoice(o *OptionSpec, value string) string {
	return fmt.Sprintf("invalid value %q for %s, expected one of %s",
		value, o.Name, strings.Join(o.Choices, "|"))
}
