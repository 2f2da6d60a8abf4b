// janus.go: Core types and error codes for Janus
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"strings"

	"github.com/agilira/go-errors"
)

// Error codes for Janus operations
const (
	ErrCodeInvalidSpec           = "JANUS_INVALID_SPEC"
	ErrCodeDuplicateDeclaration  = "JANUS_DUPLICATE_DECLARATION"
	ErrCodeInvalidArguments      = "JANUS_INVALID_ARGUMENTS"
	ErrCodeInvalidBinding        = "JANUS_INVALID_BINDING"
	ErrCodeSchemaFile            = "JANUS_SCHEMA_FILE"
	ErrCodeJournalError          = "JANUS_JOURNAL_ERROR"
	ErrCodeUnknownSchema         = "JANUS_UNKNOWN_SCHEMA"
	ErrCodeInvalidJournalConfig  = "JANUS_INVALID_JOURNAL_CONFIG"
	ErrCodeUnsupportedSchemaFile = "JANUS_UNSUPPORTED_SCHEMA_FILE"
)

// Sentinel errors
var (
	ErrNilSchema         = errors.New(ErrCodeInvalidSpec, "schema cannot be nil")
	ErrEmptyName         = errors.New(ErrCodeInvalidSpec, "option name cannot be empty")
	ErrNilParsedConfig   = errors.New(ErrCodeInvalidBinding, "parsed config cannot be nil")
	ErrJournalClosed     = errors.New(ErrCodeJournalError, "journal is closed")
	ErrUnsupportedFormat = errors.New(ErrCodeUnsupportedSchemaFile, "unsupported schema file format")
)

// ValueKind describes how an option consumes values.
type ValueKind uint8

const (
	// KindFlag is a boolean presence switch.
	KindFlag ValueKind = iota
	// KindScalar takes exactly one string value.
	KindScalar
	// KindList collects an ordered sequence of strings, either by repetition
	// or by splitting a single value on a delimiter.
	KindList
)

func (k ValueKind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// ParseValueKind parses the textual form used in schema files.
func ParseValueKind(s string) (ValueKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flag", "bool", "boolean":
		return KindFlag, true
	case "scalar", "string", "":
		return KindScalar, true
	case "list", "multiple", "strings":
		return KindList, true
	default:
		return KindFlag, false
	}
}

// Visibility partitions options for help rendering only. It never affects parsing.
type Visibility uint8

const (
	Public Visibility = iota
	Internal
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// ParseVisibility parses the textual form used in schema files.
func ParseVisibility(s string) (Visibility, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public", "":
		return Public, true
	case "internal", "developer", "advanced":
		return Internal, true
	default:
		return Public, false
	}
}

// OptionSpec declares one command-line option.
//
// Name and Short are written in their dash-prefixed form ("-output", "-o",
// "--verbose"). The zero Delimiter means "no delimiter".
type OptionSpec struct {
	Name             string
	Short            string
	Kind             ValueKind
	Delimiter        rune
	Visibility       Visibility
	ValueDescription string
	Help             string

	// Deprecated lists older spellings that still resolve to this option
	// but produce a warning.
	Deprecated []string
	// DeprecatedWarning marks the whole option as deprecated.
	DeprecatedWarning string

	Default  string
	Choices  []string
	Required bool
	// Once makes a repeated scalar an error instead of last-write-wins.
	Once bool
	Env  string
}

// spellings returns every name this option answers to, canonical first.
func (o *OptionSpec) spellings() []string {
	names := make([]string, 0, 2+len(o.Deprecated))
	names = append(names, o.Name)
	if o.Short != "" {
		names = append(names, o.Short)
	}
	return append(names, o.Deprecated...)
}

// TakesValue reports whether the option consumes a value token.
func (o *OptionSpec) TakesValue() bool {
	return o.Kind != KindFlag
}

// allowed reports whether value is permitted by the option's choices.
func (o *OptionSpec) allowed(value string) bool {
	if len(o.Choices) == 0 {
		return true
	}
	for _, c := range o.Choices {
		if c == value {
			return true
		}
	}
	return false
}

func (o OptionSpec) clone() OptionSpec {
	o.Deprecated = append([]string(nil), o.Deprecated...)
	o.Choices = append([]string(nil), o.Choices...)
	return o
}
