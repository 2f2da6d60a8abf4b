// arguments.go: Declared positional arguments and subcommands
//
// Positional elements bind to the declared arguments in declaration order,
// each argument taking its Count of values before the next one starts. A
// schema without declared arguments keeps every positional as an untyped
// remainder.
//
// A subcommand is a schema of its own, selected by a positional element
// equal to its name: everything after that element is bound against the
// subcommand schema.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/agilira/go-errors"
)

// Unlimited is the Count of an argument that collects every remaining
// positional element. Only the last argument may be Unlimited.
const Unlimited = -1

// ArgumentSpec declares one positional argument.
type ArgumentSpec struct {
	Name string
	// Count is the number of values the argument takes. Zero means one.
	Count int
	// Optional arguments may be left out. Arguments are required otherwise,
	// unless they have a Default.
	Optional bool
	Default  []string
	Choices  []string
	Help     string
}

// WithArguments declares positional arguments after those of the base schema.
func WithArguments(args ...ArgumentSpec) SchemaOption {
	return func(s *Schema) {
		for _, a := range args {
			s.arguments = append(s.arguments, a.clone())
		}
	}
}

// WithSubcommands registers subcommand schemas, each selected by its name.
func WithSubcommands(subs ...*Schema) SchemaOption {
	return func(s *Schema) { s.commands = append(s.commands, subs...) }
}

func (a *ArgumentSpec) count() int {
	if a.Count == 0 {
		return 1
	}
	return a.Count
}

func (a *ArgumentSpec) required() bool {
	return !a.Optional && len(a.Default) == 0
}

func (a *ArgumentSpec) allowed(value string) bool {
	if len(a.Choices) == 0 {
		return true
	}
	for _, c := range a.Choices {
		if c == value {
			return true
		}
	}
	return false
}

func (a ArgumentSpec) clone() ArgumentSpec {
	a.Default = append([]string(nil), a.Default...)
	a.Choices = append([]string(nil), a.Choices...)
	return a
}

// placeholder is the usage form: "input", "[output]" or "files...".
func (a *ArgumentSpec) placeholder() string {
	p := a.Name
	switch n := a.count(); {
	case n == Unlimited:
		p += "..."
	case n > 1:
		p += fmt.Sprintf("{%d}", n)
	}
	if !a.required() {
		p = "[" + p + "]"
	}
	return p
}

// mergeArguments appends declared after the base arguments and checks the
// merged list.
func (s *Schema) mergeArguments(declared []ArgumentSpec) error {
	var args []ArgumentSpec
	if s.base != nil {
		for _, a := range s.base.arguments {
			args = append(args, a.clone())
		}
	}
	for i := range declared {
		if err := validateArgument(&declared[i]); err != nil {
			return errors.Wrap(err, ErrCodeInvalidSpec,
				fmt.Sprintf("invalid argument #%d (%s)", i+1, displayName(declared[i].Name)))
		}
	}
	args = append(args, declared...)

	s.argIndex = make(map[string]int, len(args))
	for i := range args {
		a := &args[i]
		if _, exists := s.argIndex[a.Name]; exists {
			return errors.New(ErrCodeDuplicateDeclaration,
				fmt.Sprintf("duplicate declaration of argument %s", a.Name))
		}
		s.argIndex[a.Name] = i
		if a.count() == Unlimited && i != len(args)-1 {
			return errors.New(ErrCodeInvalidSpec,
				fmt.Sprintf("argument %s takes any number of values and must be the last argument", a.Name))
		}
		if i > 0 && a.required() && !args[i-1].required() {
			return errors.New(ErrCodeInvalidSpec,
				fmt.Sprintf("argument %s is required but follows %s, which may be left out", a.Name, args[i-1].Name))
		}
	}
	s.arguments = args
	return nil
}

// mergeCommands registers declared after the base subcommands.
func (s *Schema) mergeCommands(declared []*Schema) error {
	var commands []*Schema
	if s.base != nil {
		commands = append(commands, s.base.commands...)
	}
	commands = append(commands, declared...)

	s.commandIndex = make(map[string]int, len(commands))
	for i, sub := range commands {
		if sub == nil {
			return errors.Wrap(ErrNilSchema, ErrCodeInvalidSpec, fmt.Sprintf("subcommand #%d", i+1))
		}
		if err := validateCommandName(sub.name); err != nil {
			return err
		}
		if _, exists := s.commandIndex[sub.name]; exists {
			return errors.New(ErrCodeDuplicateDeclaration,
				fmt.Sprintf("duplicate declaration of subcommand %s", sub.name))
		}
		s.commandIndex[sub.name] = i
	}
	s.commands = commands
	return nil
}

func validateArgument(a *ArgumentSpec) error {
	if a.Name == "" {
		return errors.New(ErrCodeInvalidSpec, "argument name cannot be empty")
	}
	if strings.HasPrefix(a.Name, "-") || strings.IndexFunc(a.Name, unicode.IsSpace) >= 0 {
		return errors.New(ErrCodeInvalidSpec,
			fmt.Sprintf("argument name %q cannot start with '-' or contain whitespace", a.Name))
	}
	if a.Count < Unlimited {
		return errors.New(ErrCodeInvalidSpec, fmt.Sprintf("argument %s has invalid count %d", a.Name, a.Count))
	}
	if n := a.count(); len(a.Default) > 0 && n != Unlimited && len(a.Default) != n {
		return errors.New(ErrCodeInvalidSpec,
			fmt.Sprintf("argument %s takes %d value(s) but declares %d default(s)", a.Name, n, len(a.Default)))
	}
	for _, d := range a.Default {
		if !a.allowed(d) {
			return errors.New(ErrCodeInvalidSpec,
				fmt.Sprintf("default %q of argument %s is not one of %s", d, a.Name, strings.Join(a.Choices, "|")))
		}
	}
	return nil
}

func validateCommandName(name string) error {
	if name == "" || strings.HasPrefix(name, "-") || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return errors.New(ErrCodeInvalidSpec,
			fmt.Sprintf("subcommand name %q must be a non-empty word not starting with '-'", name))
	}
	return nil
}

// Arguments returns a copy of the declared arguments in binding order,
// base arguments first.
func (s *Schema) Arguments() []ArgumentSpec {
	out := make([]ArgumentSpec, len(s.arguments))
	for i, a := range s.arguments {
		out[i] = a.clone()
	}
	return out
}

// Subcommands returns the registered subcommand schemas in declaration order.
func (s *Schema) Subcommands() []*Schema {
	return append([]*Schema(nil), s.commands...)
}

// Subcommand returns the subcommand schema registered under name.
func (s *Schema) Subcommand(name string) (*Schema, bool) {
	i, ok := s.commandIndex[name]
	if !ok {
		return nil, false
	}
	return s.commands[i], true
}

// argumentQueue hands out the argument each positional element binds to.
type argumentQueue struct {
	args []ArgumentSpec
	pos  int
	used int // values taken by args[pos]
}

// pop returns the next argument to fill, or nil when every argument is full.
func (q *argumentQueue) pop() *ArgumentSpec {
	if q.pos >= len(q.args) {
		return nil
	}
	a := &q.args[q.pos]
	if n := a.count(); n != Unlimited {
		q.used++
		if q.used == n {
			q.pos++
			q.used = 0
		}
	}
	return a
}
