// schema.go: Schema registry for Janus
//
// A Schema is the immutable, merged set of options of one tool. It is built
// once at startup, optionally on top of a base schema shared by a family of
// tools, and is then read concurrently by any number of binders.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"fmt"

	"github.com/agilira/go-errors"
)

// Help spellings recognised by the binder when a schema does not declare them.
var helpSpellings = []string{"-h", "-help", "--help"}

// Schema is an ordered, immutable set of options, optionally with declared
// positional arguments and subcommands.
type Schema struct {
	name        string
	description string
	base        *Schema
	options     []OptionSpec
	index       map[string]int // spelling -> position in options

	arguments    []ArgumentSpec
	argIndex     map[string]int
	commands     []*Schema
	commandIndex map[string]int
}

// SchemaOption customises Build.
type SchemaOption func(*Schema)

// WithName sets the tool name shown in the usage line.
func WithName(name string) SchemaOption {
	return func(s *Schema) { s.name = name }
}

// WithDescription sets the text printed under the usage line.
func WithDescription(description string) SchemaOption {
	return func(s *Schema) { s.description = description }
}

// Build merges decls on top of base (which may be nil) and returns a new Schema.
//
// Each declaration is validated in isolation first; then every canonical
// name, alias and deprecated spelling must be unique across the merged
// schema. Violations are construction errors: ErrCodeInvalidSpec or
// ErrCodeDuplicateDeclaration naming the offending identifier. Arguments and
// subcommands declared through WithArguments and WithSubcommands are
// appended to those of base under the same rules.
func Build(base *Schema, decls []OptionSpec, opts ...SchemaOption) (*Schema, error) {
	s := &Schema{base: base}
	capacity := len(decls)
	if base != nil {
		s.name = base.name
		s.description = base.description
		capacity += len(base.options)
	}
	for _, opt := range opts {
		opt(s)
	}
	declaredArgs, declaredCommands := s.arguments, s.commands
	if err := s.mergeArguments(declaredArgs); err != nil {
		return nil, err
	}
	if err := s.mergeCommands(declaredCommands); err != nil {
		return nil, err
	}

	s.options = make([]OptionSpec, 0, capacity)
	s.index = make(map[string]int, capacity*2)

	if base != nil {
		for _, o := range base.options {
			// Base options were validated when the base was built.
			s.add(o.clone())
		}
	}

	for i := range decls {
		decl := decls[i].clone()
		if err := validateSpec(&decl); err != nil {
			return nil, errors.Wrap(err, ErrCodeInvalidSpec,
				fmt.Sprintf("invalid declaration #%d (%s)", i+1, displayName(decl.Name)))
		}
		for _, name := range decl.spellings() {
			if pos, exists := s.index[name]; exists {
				return nil, errors.New(ErrCodeDuplicateDeclaration,
					fmt.Sprintf("duplicate declaration of %s: already declared by %s%s",
						name, s.options[pos].Name, s.origin(pos)))
			}
		}
		s.add(decl)
	}

	return s, nil
}

// MustBuild is like Build but panics on error. Intended for package-level
// schema declarations whose correctness is covered by tests.
func MustBuild(base *Schema, decls []OptionSpec, opts ...SchemaOption) *Schema {
	s, err := Build(base, decls, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) add(o OptionSpec) {
	pos := len(s.options)
	s.options = append(s.options, o)
	for _, name := range o.spellings() {
		s.index[name] = pos
	}
}

// origin describes where the option at pos was declared, for error messages.
func (s *Schema) origin(pos int) string {
	if s.base != nil && pos < len(s.base.options) {
		if s.base.name != "" {
			return fmt.Sprintf(" in base schema %q", s.base.name)
		}
		return " in base schema"
	}
	return ""
}

// Name returns the tool name.
func (s *Schema) Name() string { return s.name }

// Description returns the tool description.
func (s *Schema) Description() string { return s.description }

// Base returns the schema this one extends, or nil.
func (s *Schema) Base() *Schema { return s.base }

// Len returns the number of declared options.
func (s *Schema) Len() int { return len(s.options) }

// Options returns a copy of the declared options in declaration order,
// base options first.
func (s *Schema) Options() []OptionSpec {
	out := make([]OptionSpec, len(s.options))
	for i, o := range s.options {
		out[i] = o.clone()
	}
	return out
}

// Lookup resolves any spelling (canonical name, alias or deprecated
// spelling) to its option. deprecated is true when the spelling used is one
// of the option's Deprecated names.
func (s *Schema) Lookup(spelling string) (spec OptionSpec, deprecated bool, ok bool) {
	o, deprecated := s.resolve(spelling)
	if o == nil {
		return OptionSpec{}, false, false
	}
	return o.clone(), deprecated, true
}

// Canonical returns the canonical name for any spelling.
func (s *Schema) Canonical(spelling string) (string, bool) {
	o, _ := s.resolve(spelling)
	if o == nil {
		return "", false
	}
	return o.Name, true
}

// resolve returns a pointer into the immutable option table. Callers must
// not modify the result.
func (s *Schema) resolve(spelling string) (*OptionSpec, bool) {
	pos, ok := s.index[spelling]
	if !ok {
		return nil, false
	}
	o := &s.options[pos]
	if spelling == o.Name || spelling == o.Short {
		return o, false
	}
	return o, true
}

// isHelp reports whether spelling is one of the help spellings the schema
// leaves to the binder.
func (s *Schema) isHelp(spelling string) bool {
	if _, declared := s.index[spelling]; declared {
		return false
	}
	for _, h := range helpSpellings {
		if spelling == h {
			return true
		}
	}
	return false
}

func displayName(name string) string {
	if name == "" {
		return "<unnamed>"
	}
	return name
}
