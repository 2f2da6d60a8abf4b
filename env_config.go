// env_config.go: Environment variable fallback for parsed options
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"fmt"
	"os"
	"strings"
)

// LookupOS is the lookup function backed by the process environment.
var LookupOS = os.LookupEnv

// EnvName returns the variable consulted for o: its explicit Env when set,
// otherwise prefix + "_" + the upper-snake form of the canonical name
// ("-language-version" with prefix "KOTLIN" reads KOTLIN_LANGUAGE_VERSION).
// Without a prefix only explicit names are used, so that options never pick
// up unrelated variables such as VERBOSE or PATH.
func EnvName(prefix string, o OptionSpec) string {
	if o.Env != "" {
		return o.Env
	}
	if prefix == "" {
		return ""
	}
	return strings.TrimSuffix(prefix, "_") + "_" + upperSnake(o.Name)
}

func upperSnake(name string) string {
	name = strings.TrimLeft(name, "-")
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(name))
}

// ApplyEnv fills options that argv left unset, or set only from a default,
// from environment variables read through lookup. Flags accept
// true/false, 1/0, yes/no, on/off and enabled/disabled; lists split on
// their delimiter, or ',' when they have none.
//
// Malformed values are reported as InvalidValue diagnostics and leave the
// option untouched. Use WithEnv to have Bind apply the fallback before
// required options are checked.
func ApplyEnv(cfg *ParsedConfig, prefix string, lookup func(string) (string, bool)) Diagnostics {
	if cfg == nil {
		return nil
	}
	if lookup == nil {
		lookup = LookupOS
	}
	return applyEnv(cfg, prefix, lookup)
}

func applyEnv(cfg *ParsedConfig, prefix string, lookup func(string) (string, bool)) Diagnostics {
	var diags Diagnostics
	invalid := func(variable, value string, o *OptionSpec, reason string) {
		diags = append(diags, Diagnostic{
			Kind:     InvalidValue,
			Severity: SeverityError,
			Token:    variable,
			Index:    -1,
			Message:  fmt.Sprintf("invalid value %q in $%s for %s: %s", value, variable, o.Name, reason),
		})
	}

	for i := range cfg.schema.options {
		o := &cfg.schema.options[i]
		if cfg.Origin(o.Name) > OriginDefault {
			continue
		}
		variable := EnvName(prefix, *o)
		if variable == "" {
			continue
		}
		raw, ok := lookup(variable)
		if !ok {
			continue
		}

		switch o.Kind {
		case KindFlag:
			b, ok := parseBool(raw)
			if !ok {
				invalid(variable, raw, o, "expected a boolean")
				continue
			}
			cfg.setFlag(o, b, OriginEnv)
		case KindScalar:
			if !o.allowed(raw) {
				invalid(variable, raw, o, "expected one of "+strings.Join(o.Choices, "|"))
				continue
			}
			cfg.setScalar(o, raw, OriginEnv)
		case KindList:
			delim := o.Delimiter
			if delim == 0 {
				delim = ','
			}
			parts, _ := splitList(raw, delim)
			kept := parts[:0]
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p == "" {
					continue
				}
				if !o.allowed(p) {
					invalid(variable, p, o, "expected one of "+strings.Join(o.Choices, "|"))
					continue
				}
				kept = append(kept, p)
			}
			if len(kept) > 0 {
				cfg.appendList(o, kept, OriginEnv)
			}
		}
	}
	return diags
}

// parseBool parses boolean values from environment variables.
// Supports: true/false, 1/0, yes/no, on/off, enabled/disabled
func parseBool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on", "enabled":
		return true, true
	case "false", "0", "no", "off", "disabled":
		return false, true
	default:
		return false, false
	}
}
