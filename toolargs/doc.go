// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

// Package toolargs declares the option schemas of the Kotlin/Native tool
// family: the compiler driver, the interop stub generators and the
// benchmark launcher.
//
// Every schema is built once, on first use, and shared read-only afterwards:
//
//	schema, err := toolargs.NativeCompilerSchema()
//	if err != nil {
//		log.Fatal(err)
//	}
//	cfg, diags := janus.Parse(schema, os.Args[1:])
//	if diags.HasErrors() {
//		for _, line := range janus.Format(diags) {
//			fmt.Fprintln(os.Stderr, line)
//		}
//		os.Exit(1)
//	}
//	args, err := toolargs.DecodeNative(cfg)
//
// Lookup resolves the built-in schemas by tool name for hosts such as the
// janus command line tool.
package toolargs
