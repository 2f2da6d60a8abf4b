// interop.go: Interop stub generator options
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package toolargs

import (
	"sync"

	"github.com/agilira/janus"
)

// Interop flavors accepted by -flavor.
var InteropFlavors = []string{"jvm", "native", "wasm"}

var commonInteropOptions = []janus.OptionSpec{
	{Name: "-verbose", Kind: janus.KindFlag, Help: "Enable verbose logging output"},
	{Name: "-flavor", Kind: janus.KindScalar, Choices: InteropFlavors, Default: "jvm",
		ValueDescription: "<flavor>", Help: "Interop target"},
	{Name: "-pkg", Kind: janus.KindScalar, ValueDescription: "<package>",
		Help: "place generated bindings to the package"},
	{Name: "-output", Short: "-o", Kind: janus.KindScalar, Default: "nativelib",
		ValueDescription: "<file>", Help: "specifies the resulting library file"},
	{Name: "-libraryPath", Kind: janus.KindList, Delimiter: ',', ValueDescription: "<path>",
		Help: "add a library search path"},
	{Name: "-staticLibrary", Kind: janus.KindList, Delimiter: ',', ValueDescription: "<file>",
		Help: "embed static library to the result"},
	{Name: "-generated", Kind: janus.KindScalar, Default: ".", ValueDescription: "<dir>",
		Help: "place generated bindings to the directory"},
	{Name: "-natives", Kind: janus.KindScalar, Default: ".", ValueDescription: "<dir>",
		Help: "where to put the built native files"},
	{Name: "-library", Short: "-l", Kind: janus.KindList, ValueDescription: "<library>",
		Help: "library to use for building"},
	{Name: "-repo", Short: "-r", Kind: janus.KindList, ValueDescription: "<path>",
		Help: "repository to resolve dependencies"},
	{Name: "-nodefaultlibs", Kind: janus.KindFlag,
		Help: "don't link the libraries from dist/klib automatically"},
	{Name: "-noendorsedlibs", Kind: janus.KindFlag,
		Help: "don't link the endorsed libraries from dist automatically"},
	{Name: "-Xpurge-user-libs", Kind: janus.KindFlag, Visibility: janus.Internal,
		Help: "don't link unused libraries even explicitly specified"},
	{Name: "-Xtemporary-files-dir", Kind: janus.KindScalar, Visibility: janus.Internal,
		ValueDescription: "<dir>", Help: "save temporary files to the given directory"},
}

var cinteropOptions = []janus.OptionSpec{
	{Name: "-target", Kind: janus.KindScalar, Default: "host", ValueDescription: "<target>",
		Help: "native target to compile to"},
	{Name: "-def", Kind: janus.KindScalar, ValueDescription: "<file>", Help: "the library definition file"},
	{Name: "-header", Kind: janus.KindList, Delimiter: ',', ValueDescription: "<file>",
		Help: "header file to produce kotlin bindings for"},
	{Name: "-h", Kind: janus.KindList, Delimiter: ',', ValueDescription: "<file>",
		Help:              "header file to produce kotlin bindings for",
		DeprecatedWarning: "Option -h is deprecated. Please use -header."},
	{Name: "-headerFilterAdditionalSearchPrefix", Short: "-hfasp", Kind: janus.KindList, Delimiter: ',',
		ValueDescription: "<path>", Help: "header file to produce kotlin bindings for"},
	{Name: "-compilerOpts", Kind: janus.KindList, Delimiter: ' ', ValueDescription: "<args>",
		Help: "additional compiler options (allows to add several options separated by spaces)"},
	{Name: "-compiler-options", Kind: janus.KindList, Delimiter: ' ', ValueDescription: "<args>",
		Help: "additional compiler options (allows to add several options separated by spaces)"},
	{Name: "-linkerOpts", Kind: janus.KindList, Delimiter: ' ', ValueDescription: "<args>",
		Help: "additional linker options (allows to add several options separated by spaces)"},
	{Name: "-linker-options", Kind: janus.KindList, Delimiter: ' ', ValueDescription: "<args>",
		Help: "additional linker options (allows to add several options separated by spaces)"},
	{Name: "-compiler-option", Kind: janus.KindList, ValueDescription: "<arg>",
		Help: "additional compiler option"},
	{Name: "-linker-option", Kind: janus.KindList, ValueDescription: "<arg>",
		Help: "additional linker option"},
	{Name: "-copt", Kind: janus.KindList, Delimiter: ' ', ValueDescription: "<args>",
		Help:              "additional compiler options (allows to add several options separated by spaces)",
		DeprecatedWarning: "Option -copt is deprecated. Please use -compiler-options."},
	{Name: "-lopt", Kind: janus.KindList, Delimiter: ' ', ValueDescription: "<args>",
		Help:              "additional linker options (allows to add several options separated by spaces)",
		DeprecatedWarning: "Option -lopt is deprecated. Please use -linker-options."},
	{Name: "-linker", Kind: janus.KindScalar, ValueDescription: "<path>", Help: "use specified linker"},
}

var jsinteropOptions = []janus.OptionSpec{
	{Name: "-target", Kind: janus.KindScalar, Choices: []string{"wasm32"}, Default: "wasm32",
		ValueDescription: "<target>", Help: "wasm target to compile to"},
}

var (
	commonInteropSchema = sync.OnceValues(func() (*janus.Schema, error) {
		return janus.Build(nil, commonInteropOptions, janus.WithName("interop"))
	})
	cinteropSchema = sync.OnceValues(func() (*janus.Schema, error) {
		return extendInterop(cinteropOptions, "cinterop", "Generates Kotlin bindings for C libraries.")
	})
	jsinteropSchema = sync.OnceValues(func() (*janus.Schema, error) {
		return extendInterop(jsinteropOptions, "jsinterop", "Generates Kotlin bindings for JavaScript APIs.")
	})
)

func extendInterop(decls []janus.OptionSpec, name, description string) (*janus.Schema, error) {
	base, err := CommonInteropSchema()
	if err != nil {
		return nil, err
	}
	return janus.Build(base, decls, janus.WithName(name), janus.WithDescription(description))
}

// CommonInteropSchema returns the base schema of the interop tools.
func CommonInteropSchema() (*janus.Schema, error) { return commonInteropSchema() }

// CInteropSchema returns the cinterop schema. It declares -h itself, so
// -h is a deprecated header option there rather than a help request.
func CInteropSchema() (*janus.Schema, error) { return cinteropSchema() }

// JSInteropSchema returns the jsinterop schema.
func JSInteropSchema() (*janus.Schema, error) { return jsinteropSchema() }

// InteropArguments is the typed form of the options shared by interop tools.
type InteropArguments struct {
	Verbose        bool
	Flavor         string
	Package        string
	Output         string
	LibraryPaths   []string
	StaticLibrary  []string
	Generated      string
	Natives        string
	Libraries      []string
	Repositories   []string
	NoDefaultLibs  bool
	NoEndorsedLibs bool
	PurgeUserLibs  bool
	TempDir        string
}

// CInteropArguments is the typed form of a cinterop command line.
type CInteropArguments struct {
	InteropArguments
	Target                   string
	Def                      string
	Headers                  []string
	HeaderFilterSearchPrefix []string
	// CompilerOptions merges -compiler-options, -compilerOpts, -copt and
	// -compiler-option in that order; LinkerOptions does the same for the
	// linker spellings.
	CompilerOptions []string
	LinkerOptions   []string
	Linker          string
}

// JSInteropArguments is the typed form of a jsinterop command line.
type JSInteropArguments struct {
	InteropArguments
	Target string
}

func bindInterop(cb *janus.ConfigBinder, a *InteropArguments) *janus.ConfigBinder {
	return cb.
		BindBool(&a.Verbose, "-verbose").
		BindString(&a.Flavor, "-flavor").
		BindString(&a.Package, "-pkg").
		BindString(&a.Output, "-output").
		BindStrings(&a.LibraryPaths, "-libraryPath").
		BindStrings(&a.StaticLibrary, "-staticLibrary").
		BindString(&a.Generated, "-generated").
		BindString(&a.Natives, "-natives").
		BindStrings(&a.Libraries, "-library").
		BindStrings(&a.Repositories, "-repo").
		BindBool(&a.NoDefaultLibs, "-nodefaultlibs").
		BindBool(&a.NoEndorsedLibs, "-noendorsedlibs").
		BindBool(&a.PurgeUserLibs, "-Xpurge-user-libs").
		BindString(&a.TempDir, "-Xtemporary-files-dir")
}

// DecodeCInterop copies a config bound against CInteropSchema into the
// typed record. Headers given through the deprecated -h are appended to
// those of -header.
func DecodeCInterop(cfg *janus.ParsedConfig) (*CInteropArguments, error) {
	a := &CInteropArguments{}
	var shortHeaders []string
	var compilerOptions, compilerOpts, copt, compilerOpt []string
	var linkerOptions, linkerOpts, lopt, linkerOpt []string
	err := bindInterop(janus.BindFromParsed(cfg), &a.InteropArguments).
		BindString(&a.Target, "-target").
		BindString(&a.Def, "-def").
		BindStrings(&a.Headers, "-header").
		BindStrings(&shortHeaders, "-h").
		BindStrings(&a.HeaderFilterSearchPrefix, "-headerFilterAdditionalSearchPrefix").
		BindStrings(&compilerOptions, "-compiler-options").
		BindStrings(&compilerOpts, "-compilerOpts").
		BindStrings(&copt, "-copt").
		BindStrings(&compilerOpt, "-compiler-option").
		BindStrings(&linkerOptions, "-linker-options").
		BindStrings(&linkerOpts, "-linkerOpts").
		BindStrings(&lopt, "-lopt").
		BindStrings(&linkerOpt, "-linker-option").
		BindString(&a.Linker, "-linker").
		Apply()
	if err != nil {
		return nil, err
	}

	a.Headers = append(a.Headers, shortHeaders...)
	a.CompilerOptions = concat(compilerOptions, compilerOpts, copt, compilerOpt)
	a.LinkerOptions = concat(linkerOptions, linkerOpts, lopt, linkerOpt)
	return a, nil
}

// DecodeJSInterop copies a config bound against JSInteropSchema into the
// typed record.
func DecodeJSInterop(cfg *janus.ParsedConfig) (*JSInteropArguments, error) {
	a := &JSInteropArguments{}
	err := bindInterop(janus.BindFromParsed(cfg), &a.InteropArguments).
		BindString(&a.Target, "-target").
		Apply()
	if err != nil {
		return nil, err
	}
	return a, nil
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
