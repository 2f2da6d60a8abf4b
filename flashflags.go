// flashflags.go: Export of bound options to a flash-flags FlagSet
//
// Hosts that already read their settings through flash-flags getters can
// keep doing so: the exported FlagSet carries the bound values as defaults.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"strings"

	flashflags "github.com/agilira/flash-flags"
)

// ExportFlashFlags builds a FlagSet with one flag per declared option,
// named without leading dashes ("-output" becomes "output"). Each flag's
// default is the bound value, or the zero value when the option is unset.
// When two options reduce to the same name the first declared one wins.
func ExportFlashFlags(cfg *ParsedConfig) *flashflags.FlagSet {
	if cfg == nil {
		return nil
	}

	name := cfg.schema.Name()
	if name == "" {
		name = "janus"
	}
	fs := flashflags.New(name)
	if cfg.schema.Description() != "" {
		fs.SetDescription(cfg.schema.Description())
	}

	defined := make(map[string]bool, len(cfg.schema.options))
	for i := range cfg.schema.options {
		o := &cfg.schema.options[i]
		flagName := FlashFlagName(o.Name)
		if defined[flagName] {
			continue
		}
		defined[flagName] = true

		switch o.Kind {
		case KindFlag:
			fs.Bool(flagName, cfg.Bool(o.Name), o.Help)
		case KindScalar:
			fs.String(flagName, cfg.StringOr(o.Name, ""), o.Help)
		case KindList:
			fs.StringSlice(flagName, cfg.List(o.Name), o.Help)
		}
	}
	return fs
}

// FlashFlagName is the flash-flags name used for an option spelling.
func FlashFlagName(spelling string) string {
	return strings.TrimLeft(spelling, "-")
}
