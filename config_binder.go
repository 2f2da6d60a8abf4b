// config_binder.go: Typed binding of parsed options into Go variables
//
// The binder follows the "bind pattern": Bind* calls only record intents,
// Apply resolves and converts every value before writing any target, so a
// failing binding leaves all targets untouched.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"fmt"
	"strconv"
	"time"
	"unsafe"

	"github.com/Masterminds/semver/v3"
	"github.com/agilira/go-errors"
)

// bindKind selects the conversion applied to a binding.
type bindKind uint8

const (
	bindString bindKind = iota
	bindStrings
	bindInt
	bindInt64
	bindBool
	bindFloat64
	bindDuration
	bindVersion
)

// binding is one recorded intent.
//
// target is an unsafe.Pointer discriminated by kind: only the Bind* methods
// create bindings, each from a correctly typed pointer, so the public API
// stays type-safe without reflection.
type binding struct {
	target unsafe.Pointer
	option string
	kind   bindKind
}

// ConfigBinder copies option values of a ParsedConfig into Go variables.
// Targets of unset options keep their current value, so callers set
// defaults by initialising the variables before Apply.
//
// Bind* methods also accept the name of a declared argument: an argument
// taking one value binds like a scalar option, any other like a list.
type ConfigBinder struct {
	bindings []binding
	cfg      *ParsedConfig
	err      error
}

// BindFromParsed starts a binder over cfg.
func BindFromParsed(cfg *ParsedConfig) *ConfigBinder {
	cb := &ConfigBinder{
		bindings: make([]binding, 0, 16),
		cfg:      cfg,
	}
	if cfg == nil {
		cb.err = ErrNilParsedConfig
	}
	return cb
}

func (cb *ConfigBinder) add(target unsafe.Pointer, option string, kind bindKind) *ConfigBinder {
	if cb.err != nil {
		return cb
	}
	if target == nil {
		cb.err = errors.New(ErrCodeInvalidBinding, "nil target for option "+option)
		return cb
	}
	cb.bindings = append(cb.bindings, binding{target: target, option: option, kind: kind})
	return cb
}

// BindString binds a scalar option (flags bind as "true"/"false").
func (cb *ConfigBinder) BindString(target *string, option string) *ConfigBinder {
	return cb.add(unsafe.Pointer(target), option, bindString) // #nosec G103 - typed pointer, see binding
}

// BindStrings binds a list option; a scalar binds as a one-element slice.
func (cb *ConfigBinder) BindStrings(target *[]string, option string) *ConfigBinder {
	return cb.add(unsafe.Pointer(target), option, bindStrings) // #nosec G103 - typed pointer, see binding
}

// BindInt binds a scalar option holding a decimal integer.
func (cb *ConfigBinder) BindInt(target *int, option string) *ConfigBinder {
	return cb.add(unsafe.Pointer(target), option, bindInt) // #nosec G103 - typed pointer, see binding
}

// BindInt64 binds a scalar option holding a 64-bit integer.
func (cb *ConfigBinder) BindInt64(target *int64, option string) *ConfigBinder {
	return cb.add(unsafe.Pointer(target), option, bindInt64) // #nosec G103 - typed pointer, see binding
}

// BindBool binds a flag option, or a scalar accepted by strconv.ParseBool.
func (cb *ConfigBinder) BindBool(target *bool, option string) *ConfigBinder {
	return cb.add(unsafe.Pointer(target), option, bindBool) // #nosec G103 - typed pointer, see binding
}

// BindFloat64 binds a scalar option holding a float.
func (cb *ConfigBinder) BindFloat64(target *float64, option string) *ConfigBinder {
	return cb.add(unsafe.Pointer(target), option, bindFloat64) // #nosec G103 - typed pointer, see binding
}

// BindDuration binds a scalar option in time.ParseDuration syntax.
func (cb *ConfigBinder) BindDuration(target *time.Duration, option string) *ConfigBinder {
	return cb.add(unsafe.Pointer(target), option, bindDuration) // #nosec G103 - typed pointer, see binding
}

// BindVersion binds a scalar option holding a semantic version ("1.9",
// "2.0.0-beta1"). Missing minor and patch components are read as zero.
func (cb *ConfigBinder) BindVersion(target **semver.Version, option string) *ConfigBinder {
	return cb.add(unsafe.Pointer(target), option, bindVersion) // #nosec G103 - typed pointer, see binding
}

// Apply converts every bound option and writes the targets. Unknown option
// names and conversion failures return ErrCodeInvalidBinding and leave
// every target unchanged.
func (cb *ConfigBinder) Apply() error {
	if cb.err != nil {
		return cb.err
	}

	writes := make([]func(), 0, len(cb.bindings))
	for _, b := range cb.bindings {
		write, err := cb.prepare(b)
		if err != nil {
			return errors.Wrap(err, ErrCodeInvalidBinding, "failed to bind option '"+b.option+"'")
		}
		if write != nil {
			writes = append(writes, write)
		}
	}
	for _, write := range writes {
		write()
	}
	return nil
}

// prepare converts one binding. A nil write means the option is unset.
func (cb *ConfigBinder) prepare(b binding) (func(), error) {
	v, declared := cb.cfg.bound(b.option)
	if !declared {
		return nil, errors.New(ErrCodeInvalidBinding, fmt.Sprintf("option %s is not declared", b.option))
	}
	if v == nil {
		return nil, nil
	}

	switch b.kind {
	case bindString:
		s, err := scalarText(v)
		if err != nil {
			return nil, err
		}
		return func() { *(*string)(b.target) = s }, nil
	case bindStrings:
		var list []string
		switch v.kind {
		case KindList:
			list = append([]string(nil), v.list...)
		case KindScalar:
			list = []string{v.scalar}
		default:
			return nil, errors.New(ErrCodeInvalidBinding, "cannot bind a flag to []string")
		}
		return func() { *(*[]string)(b.target) = list }, nil
	case bindBool:
		var val bool
		switch v.kind {
		case KindFlag:
			val = v.flag
		case KindScalar:
			parsed, err := strconv.ParseBool(v.scalar)
			if err != nil {
				return nil, err
			}
			val = parsed
		default:
			return nil, errors.New(ErrCodeInvalidBinding, "cannot bind a list to bool")
		}
		return func() { *(*bool)(b.target) = val }, nil
	}

	s, err := scalarText(v)
	if err != nil {
		return nil, err
	}
	switch b.kind {
	case bindInt:
		val, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		return func() { *(*int)(b.target) = val }, nil
	case bindInt64:
		val, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, err
		}
		return func() { *(*int64)(b.target) = val }, nil
	case bindFloat64:
		val, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		return func() { *(*float64)(b.target) = val }, nil
	case bindDuration:
		val, err := time.ParseDuration(s)
		if err != nil {
			return nil, err
		}
		return func() { *(*time.Duration)(b.target) = val }, nil
	case bindVersion:
		val, err := semver.NewVersion(s)
		if err != nil {
			return nil, err
		}
		return func() { *(**semver.Version)(b.target) = val }, nil
	default:
		return nil, errors.New(ErrCodeInvalidBinding, fmt.Sprintf("unsupported binding kind: %d", b.kind))
	}
}

func scalarText(v *boundValue) (string, error) {
	switch v.kind {
	case KindScalar:
		return v.scalar, nil
	case KindFlag:
		return strconv.FormatBool(v.flag), nil
	default:
		return "", errors.New(ErrCodeInvalidBinding, "cannot bind a list to a single value")
	}
}
