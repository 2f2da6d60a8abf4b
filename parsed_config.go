// parsed_config.go: The bound result of one argument vector
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

// Origin records which source supplied an option's value. Later constants
// take precedence over earlier ones.
type Origin uint8

const (
	OriginUnset Origin = iota
	OriginDefault
	OriginEnv
	OriginArgs
)

func (o Origin) String() string {
	switch o {
	case OriginUnset:
		return "unset"
	case OriginDefault:
		return "default"
	case OriginEnv:
		return "env"
	case OriginArgs:
		return "args"
	default:
		return "unknown"
	}
}

// boundValue holds one option's value; which field is meaningful depends on kind.
type boundValue struct {
	kind   ValueKind
	flag   bool
	scalar string
	list   []string
	origin Origin
}

// ParsedConfig maps canonical option names to typed values and keeps the
// positional arguments in order. Values of declared arguments are kept by
// argument name, and a selected subcommand has a ParsedConfig of its own.
//
// A ParsedConfig is owned by the caller that received it from the binder and
// must not be shared between goroutines without external synchronisation.
type ParsedConfig struct {
	schema      *Schema
	values      map[string]*boundValue
	positionals []string
	help        bool

	args    map[string]*boundValue // declared argument name -> values
	command string
	sub     *ParsedConfig
}

func newParsedConfig(schema *Schema) *ParsedConfig {
	return &ParsedConfig{
		schema: schema,
		values: make(map[string]*boundValue, schema.Len()),
		args:   make(map[string]*boundValue, len(schema.arguments)),
	}
}

// Schema returns the schema the config was bound against.
func (pc *ParsedConfig) Schema() *Schema { return pc.schema }

// HelpRequested reports whether an undeclared -h, -help or --help was seen.
func (pc *ParsedConfig) HelpRequested() bool { return pc.help }

// Positionals returns a copy of the positional arguments in argv order,
// whether or not they bound to a declared argument. Elements from the
// subcommand name onwards belong to the subcommand's config.
func (pc *ParsedConfig) Positionals() []string {
	return append([]string(nil), pc.positionals...)
}

// Subcommand returns the name and bound config of the selected subcommand,
// or "" and nil when none was selected.
func (pc *ParsedConfig) Subcommand() (string, *ParsedConfig) {
	return pc.command, pc.sub
}

// Argument returns the first value of a declared argument.
func (pc *ParsedConfig) Argument(name string) (string, bool) {
	v := pc.args[name]
	if v == nil || len(v.list) == 0 {
		return "", false
	}
	return v.list[0], true
}

// Arguments returns a copy of the values of a declared argument in argv
// order, or its defaults when it was not supplied.
func (pc *ParsedConfig) Arguments(name string) []string {
	v := pc.args[name]
	if v == nil {
		return nil
	}
	return append([]string(nil), v.list...)
}

// ArgumentOrigin reports where the values of a declared argument came from.
func (pc *ParsedConfig) ArgumentOrigin(name string) Origin {
	if v := pc.args[name]; v != nil {
		return v.origin
	}
	return OriginUnset
}

// bound resolves an option spelling or a declared argument name. declared
// is false when the schema knows neither.
func (pc *ParsedConfig) bound(name string) (v *boundValue, declared bool) {
	if canonical, ok := pc.schema.Canonical(name); ok {
		return pc.values[canonical], true
	}
	if i, ok := pc.schema.argIndex[name]; ok {
		arg := pc.args[name]
		if arg != nil && pc.schema.arguments[i].count() == 1 {
			// Single-value arguments read like scalar options.
			return &boundValue{kind: KindScalar, scalar: arg.list[0], origin: arg.origin}, true
		}
		return arg, true
	}
	return nil, false
}

// lookup resolves any spelling to the bound value of its option.
func (pc *ParsedConfig) lookup(name string) *boundValue {
	canonical, ok := pc.schema.Canonical(name)
	if !ok {
		return nil
	}
	return pc.values[canonical]
}

// IsSet reports whether the option has a value from any source.
func (pc *ParsedConfig) IsSet(name string) bool {
	return pc.Origin(name) != OriginUnset
}

// Origin reports where the option's value came from.
func (pc *ParsedConfig) Origin(name string) Origin {
	if v := pc.lookup(name); v != nil {
		return v.origin
	}
	return OriginUnset
}

// Bool returns the value of a flag option; false when unset or not a flag.
func (pc *ParsedConfig) Bool(name string) bool {
	v := pc.lookup(name)
	return v != nil && v.kind == KindFlag && v.flag
}

// String returns the value of a scalar option.
func (pc *ParsedConfig) String(name string) (string, bool) {
	v := pc.lookup(name)
	if v == nil || v.kind != KindScalar {
		return "", false
	}
	return v.scalar, true
}

// StringOr returns the scalar value or fallback when unset.
func (pc *ParsedConfig) StringOr(name, fallback string) string {
	if s, ok := pc.String(name); ok {
		return s
	}
	return fallback
}

// List returns a copy of a list option's values in argv order.
func (pc *ParsedConfig) List(name string) []string {
	v := pc.lookup(name)
	if v == nil || v.kind != KindList {
		return nil
	}
	return append([]string(nil), v.list...)
}

// Value returns the typed value (bool, string or []string) of an option.
func (pc *ParsedConfig) Value(name string) (interface{}, bool) {
	v := pc.lookup(name)
	if v == nil {
		return nil, false
	}
	switch v.kind {
	case KindFlag:
		return v.flag, true
	case KindScalar:
		return v.scalar, true
	default:
		return append([]string(nil), v.list...), true
	}
}

// Names returns the canonical names of every option holding a value, in
// schema declaration order.
func (pc *ParsedConfig) Names() []string {
	var names []string
	for _, o := range pc.schema.options {
		if _, ok := pc.values[o.Name]; ok {
			names = append(names, o.Name)
		}
	}
	return names
}

// Setters used by the binder and the environment loader.

func (pc *ParsedConfig) setFlag(o *OptionSpec, b bool, origin Origin) {
	pc.values[o.Name] = &boundValue{kind: KindFlag, flag: b, origin: origin}
}

func (pc *ParsedConfig) setScalar(o *OptionSpec, s string, origin Origin) {
	pc.values[o.Name] = &boundValue{kind: KindScalar, scalar: s, origin: origin}
}

func (pc *ParsedConfig) appendArgument(a *ArgumentSpec, values []string, origin Origin) {
	v, ok := pc.args[a.Name]
	if !ok {
		v = &boundValue{kind: KindList, origin: origin}
		pc.args[a.Name] = v
	}
	v.list = append(v.list, values...)
}

func (pc *ParsedConfig) appendList(o *OptionSpec, values []string, origin Origin) {
	v, ok := pc.values[o.Name]
	if !ok || v.origin < origin {
		v = &boundValue{kind: KindList, origin: origin}
		pc.values[o.Name] = v
	}
	v.list = append(v.list, values...)
}
