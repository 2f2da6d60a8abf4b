// diagnostics.go: Binding diagnostics and their display form
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"strings"

	"github.com/agilira/go-errors"
)

// DiagnosticKind identifies a binding problem.
type DiagnosticKind uint8

const (
	UnknownFlag DiagnosticKind = iota
	MissingValue
	DuplicateFlag
	BadDelimiterUsage
	InvalidValue
	MissingRequired
	DeprecatedFlag
	TooManyArguments
	MissingArgument
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnknownFlag:
		return "UnknownFlag"
	case MissingValue:
		return "MissingValue"
	case DuplicateFlag:
		return "DuplicateFlag"
	case BadDelimiterUsage:
		return "BadDelimiterUsage"
	case InvalidValue:
		return "InvalidValue"
	case MissingRequired:
		return "MissingRequired"
	case DeprecatedFlag:
		return "DeprecatedFlag"
	case TooManyArguments:
		return "TooManyArguments"
	case MissingArgument:
		return "MissingArgument"
	default:
		return "Unknown"
	}
}

// Severity decides whether a diagnostic must stop the caller.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one problem found while binding an argument vector.
type Diagnostic struct {
	Kind     DiagnosticKind
	Severity Severity
	// Token is the offending argv element, or the option or argument name
	// for problems detected after the walk (MissingRequired, MissingArgument).
	Token string
	// Index is the argv position of Token, -1 when not tied to an element.
	Index   int
	Message string
}

// Diagnostics is the ordered list produced by one binder run.
type Diagnostics []Diagnostic

// HasErrors reports whether any diagnostic has error severity.
func (d Diagnostics) HasErrors() bool {
	for _, diag := range d {
		if diag.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns the error-severity diagnostics.
func (d Diagnostics) Errors() Diagnostics {
	return d.filter(SeverityError)
}

// Warnings returns the warning-severity diagnostics.
func (d Diagnostics) Warnings() Diagnostics {
	return d.filter(SeverityWarning)
}

// OfKind returns the diagnostics of the given kind.
func (d Diagnostics) OfKind(kind DiagnosticKind) Diagnostics {
	var out Diagnostics
	for _, diag := range d {
		if diag.Kind == kind {
			out = append(out, diag)
		}
	}
	return out
}

func (d Diagnostics) filter(sev Severity) Diagnostics {
	var out Diagnostics
	for _, diag := range d {
		if diag.Severity == sev {
			out = append(out, diag)
		}
	}
	return out
}

// Err folds every error diagnostic into a single error, or returns nil when
// there is none. Warnings are never part of the error.
func (d Diagnostics) Err() error {
	errs := d.Errors()
	if len(errs) == 0 {
		return nil
	}
	return errors.New(ErrCodeInvalidArguments, strings.Join(Format(errs), "\n"))
}

// Format projects diagnostics into display lines, one per diagnostic, in
// order. An empty input yields no lines.
func Format(diags []Diagnostic) []string {
	if len(diags) == 0 {
		return nil
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = d.Severity.String() + ": " + d.Message
	}
	return lines
}

// collector accumulates diagnostics during one binder run.
type collector struct {
	diags Diagnostics
}

func (c *collector) report(kind DiagnosticKind, tok RawToken, message string) {
	sev := SeverityError
	if kind == DeprecatedFlag {
		sev = SeverityWarning
	}
	c.diags = append(c.diags, Diagnostic{
		Kind:     kind,
		Severity: sev,
		Token:    tok.Text,
		Index:    tok.Index,
		Message:  message,
	})
}
