// benchmark.go: Options of the benchmark launcher
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package toolargs

import (
	"sync"

	"github.com/agilira/janus"
)

// BenchmarkListCommand is the subcommand that prints the benchmark names
// instead of running them.
const BenchmarkListCommand = "list"

var benchmarkOptions = []janus.OptionSpec{
	{Name: "--warmup", Short: "-w", Kind: janus.KindScalar, Default: "20", ValueDescription: "<n>",
		Help: "Number of warm up iterations"},
	{Name: "--repeat", Short: "-r", Kind: janus.KindScalar, Default: "60", ValueDescription: "<n>",
		Help: "Number of each benchmark run"},
	{Name: "--prefix", Short: "-p", Kind: janus.KindScalar, ValueDescription: "<prefix>",
		Help: "Prefix added to benchmark name"},
	{Name: "--output", Short: "-o", Kind: janus.KindScalar, ValueDescription: "<file>",
		Help: "Output file"},
	{Name: "--filter", Short: "-f", Kind: janus.KindList, ValueDescription: "<name>",
		Help: "Benchmark to run"},
	{Name: "--filterRegex", Short: "-fr", Kind: janus.KindList, ValueDescription: "<regex>",
		Help: "Benchmark to run, described by a regular expression"},
	{Name: "--verbose", Short: "-v", Kind: janus.KindFlag, Help: "Verbose mode of running"},
}

var benchmarkSchema = sync.OnceValues(func() (*janus.Schema, error) {
	list, err := janus.Build(nil, nil,
		janus.WithName(BenchmarkListCommand),
		janus.WithDescription("Show list of benchmarks"))
	if err != nil {
		return nil, err
	}
	return janus.Build(nil, benchmarkOptions,
		janus.WithName("benchmark"),
		janus.WithDescription("Runs the benchmarks linked into this executable."),
		janus.WithSubcommands(list))
})

// BenchmarkSchema returns the schema of the benchmark launcher.
func BenchmarkSchema() (*janus.Schema, error) {
	return benchmarkSchema()
}

// BenchmarkArguments is the typed form of a benchmark launcher invocation.
type BenchmarkArguments struct {
	Warmup      int
	Repeat      int
	Prefix      string
	Output      string
	Filter      []string
	FilterRegex []string
	Verbose     bool

	// Command is BenchmarkListCommand when the list subcommand was
	// selected, empty for a benchmark run.
	Command string
}

// DecodeBenchmark copies a config bound against BenchmarkSchema into the
// typed record.
func DecodeBenchmark(cfg *janus.ParsedConfig) (*BenchmarkArguments, error) {
	a := &BenchmarkArguments{}
	err := janus.BindFromParsed(cfg).
		BindInt(&a.Warmup, "--warmup").
		BindInt(&a.Repeat, "--repeat").
		BindString(&a.Prefix, "--prefix").
		BindString(&a.Output, "--output").
		BindStrings(&a.Filter, "--filter").
		BindStrings(&a.FilterRegex, "--filterRegex").
		BindBool(&a.Verbose, "--verbose").
		Apply()
	if err != nil {
		return nil, err
	}
	a.Command, _ = cfg.Subcommand()
	return a, nil
}
