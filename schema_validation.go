// schema_validation.go: Per-declaration validation rules
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

// validateSpec checks one declaration in isolation. Cross-declaration
// uniqueness is checked by Build.
func validateSpec(o *OptionSpec) error {
	if o.Name == "" {
		return ErrEmptyName
	}
	if err := validateSpelling(o.Name, "name"); err != nil {
		return err
	}
	if o.Short != "" {
		if err := validateSpelling(o.Short, "short alias"); err != nil {
			return err
		}
		if o.Short == o.Name {
			return errors.New(ErrCodeInvalidSpec,
				fmt.Sprintf("short alias %s must differ from the canonical name", o.Short))
		}
	}

	seen := map[string]bool{o.Name: true, o.Short: o.Short != ""}
	for _, d := range o.Deprecated {
		if err := validateSpelling(d, "deprecated name"); err != nil {
			return err
		}
		if seen[d] {
			return errors.New(ErrCodeInvalidSpec,
				fmt.Sprintf("deprecated name %s repeats another spelling of %s", d, o.Name))
		}
		seen[d] = true
	}

	switch o.Kind {
	case KindFlag, KindScalar, KindList:
	default:
		return errors.New(ErrCodeInvalidSpec, fmt.Sprintf("unknown value kind %d", o.Kind))
	}
	switch o.Visibility {
	case Public, Internal:
	default:
		return errors.New(ErrCodeInvalidSpec, fmt.Sprintf("unknown visibility %d", o.Visibility))
	}

	if o.Delimiter != 0 && o.Kind != KindList {
		return errors.New(ErrCodeInvalidSpec,
			fmt.Sprintf("delimiter %q is only meaningful for list options, %s is a %s", o.Delimiter, o.Name, o.Kind))
	}
	if o.Default != "" && o.Kind != KindScalar {
		return errors.New(ErrCodeInvalidSpec,
			fmt.Sprintf("default value is only supported for scalar options, %s is a %s", o.Name, o.Kind))
	}
	if o.Once && o.Kind != KindScalar {
		return errors.New(ErrCodeInvalidSpec,
			fmt.Sprintf("once is only meaningful for scalar options, %s is a %s", o.Name, o.Kind))
	}
	if o.Kind == KindFlag && (o.Required || len(o.Choices) > 0) {
		return errors.New(ErrCodeInvalidSpec,
			fmt.Sprintf("flag %s cannot be required or restricted to choices", o.Name))
	}
	if o.Default != "" && !o.allowed(o.Default) {
		return errors.New(ErrCodeInvalidSpec,
			fmt.Sprintf("default %q of %s is not one of %s", o.Default, o.Name, strings.Join(o.Choices, "|")))
	}
	for _, c := range o.Choices {
		if c == "" {
			return errors.New(ErrCodeInvalidSpec, fmt.Sprintf("empty choice declared for %s", o.Name))
		}
	}
	return nil
}

// validateSpelling enforces the leading-dash form of every spelling.
func validateSpelling(name, what string) error {
	if !strings.HasPrefix(name, "-") || strings.TrimLeft(name, "-") == "" {
		return errors.New(ErrCodeInvalidSpec,
			fmt.Sprintf("%s %q must start with '-' and contain a name", what, name))
	}
	if len(name)-len(strings.TrimLeft(name, "-")) > 2 {
		return errors.New(ErrCodeInvalidSpec,
			fmt.Sprintf("%s %q has more than two leading dashes", what, name))
	}
	if strings.ContainsRune(name, '=') {
		return errors.New(ErrCodeInvalidSpec, fmt.Sprintf("%s %q cannot contain '='", what, name))
	}
	for _, r := range name {
		if unicode.IsSpace(r) {
			return errors.New(ErrCodeInvalidSpec, fmt.Sprintf("%s %q cannot contain whitespace", what, name))
		}
	}
	return nil
}
