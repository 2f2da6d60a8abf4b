// registry.go: Built-in schemas by tool name
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package toolargs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agilira/go-errors"
	"github.com/agilira/janus"
)

var builtin = map[string]func() (*janus.Schema, error){
	"common":    CommonCompilerSchema,
	"native":    NativeCompilerSchema,
	"konanc":    NativeCompilerSchema,
	"interop":   CommonInteropSchema,
	"cinterop":  CInteropSchema,
	"jsinterop": JSInteropSchema,
	"benchmark": BenchmarkSchema,
}

// Names returns the tool names accepted by Lookup, sorted.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the built-in schema registered under name.
func Lookup(name string) (*janus.Schema, error) {
	build, ok := builtin[strings.ToLower(name)]
	if !ok {
		return nil, errors.New(janus.ErrCodeUnknownSchema,
			fmt.Sprintf("unknown schema %q, expected one of %s", name, strings.Join(Names(), ", ")))
	}
	return build()
}
