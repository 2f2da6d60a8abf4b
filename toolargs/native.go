// native.go: Kotlin/Native compiler options
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package toolargs

import (
	"sync"

	"github.com/agilira/janus"
)

// Produce kinds accepted by -produce.
var ProduceKinds = []string{"program", "static", "dynamic", "framework", "library", "bitcode"}

// nativeCompilerOptions lists public options first, then the -X developer
// options. Both groups are kept lexically sorted.
var nativeCompilerOptions = []janus.OptionSpec{
	{Name: "-enable-assertions", Short: "-ea", Deprecated: []string{"-enable_assertions"},
		Kind: janus.KindFlag, Help: "Enable runtime assertions in generated code"},
	{Name: "-g", Kind: janus.KindFlag, Help: "Enable emitting debug information"},
	{Name: "-generate-test-runner", Short: "-tr", Deprecated: []string{"-generate_test_runner"},
		Kind: janus.KindFlag, Help: "Produce a runner for unit tests"},
	{Name: "-include-binary", Short: "-ib", Deprecated: []string{"-includeBinary"},
		Kind: janus.KindList, ValueDescription: "<path>", Help: "Pack external binary within the klib"},
	{Name: "-library", Short: "-l", Kind: janus.KindList, Delimiter: ',',
		ValueDescription: "<path>", Help: "Link with the library"},
	{Name: "-library-version", Short: "-lv", Kind: janus.KindScalar,
		ValueDescription: "<version>", Help: "Set library version"},
	{Name: "-list-targets", Deprecated: []string{"-list_targets"},
		Kind: janus.KindFlag, Help: "List available hardware targets"},
	{Name: "-manifest", Kind: janus.KindScalar, ValueDescription: "<path>",
		Help: "Provide a manifest addend file"},
	{Name: "-module-name", Deprecated: []string{"-module_name"}, Kind: janus.KindScalar,
		ValueDescription: "<name>", Help: "Specify a name for the compilation module"},
	{Name: "-native-library", Short: "-nl", Deprecated: []string{"-nativelibrary"},
		Kind: janus.KindList, ValueDescription: "<path>", Help: "Include the native bitcode library"},
	{Name: "-nodefaultlibs", Kind: janus.KindFlag,
		Help: "Don't link the libraries from dist/klib automatically"},
	{Name: "-nomain", Kind: janus.KindFlag,
		Help: "Assume 'main' entry point to be provided by external libraries"},
	{Name: "-nopack", Kind: janus.KindFlag, Help: "Don't pack the library into a klib file"},
	{Name: "-linker-options", Deprecated: []string{"-linkerOpts"}, Kind: janus.KindList, Delimiter: ' ',
		ValueDescription: "<arg>", Help: "Pass arguments to linker"},
	{Name: "-nostdlib", Kind: janus.KindFlag, Help: "Don't link with stdlib"},
	{Name: "-opt", Kind: janus.KindFlag, Help: "Enable optimizations during compilation"},
	{Name: "-output", Short: "-o", Kind: janus.KindScalar, ValueDescription: "<name>",
		Help: "Output name"},
	{Name: "-entry", Short: "-e", Kind: janus.KindScalar, ValueDescription: "<name>",
		Help: "Qualified entry point name"},
	{Name: "-produce", Short: "-p", Kind: janus.KindScalar, Choices: ProduceKinds,
		ValueDescription: "<kind>", Help: "Specify output file kind"},
	{Name: "-repo", Short: "-r", Kind: janus.KindList, ValueDescription: "<path>",
		Help: "Library search path"},
	{Name: "-target", Kind: janus.KindScalar, ValueDescription: "<target>", Help: "Set hardware target"},
	{Name: "-friend-modules", Kind: janus.KindScalar, ValueDescription: "<path>",
		Help: "Paths to friend modules"},

	{Name: "-Xcheck-dependencies", Deprecated: []string{"--check_dependencies"}, Kind: janus.KindFlag,
		Visibility: janus.Internal, Help: "Check dependencies and download the missing ones"},
	{Name: "-Xcompatible-compiler-version", Kind: janus.KindList, Visibility: janus.Internal,
		ValueDescription: "<version>", Help: "Assume the given compiler version to be binary compatible"},
	{Name: "-Xdisable", Deprecated: []string{"--disable"}, Kind: janus.KindList, Visibility: janus.Internal,
		ValueDescription: "<Phase>", Help: "Disable backend phase"},
	{Name: "-Xenable", Deprecated: []string{"--enable"}, Kind: janus.KindList, Visibility: janus.Internal,
		ValueDescription: "<Phase>", Help: "Enable backend phase"},
	{Name: "-Xlist-phases", Deprecated: []string{"--list_phases"}, Kind: janus.KindFlag,
		Visibility: janus.Internal, Help: "List all backend phases"},
	{Name: "-Xprint-bitcode", Deprecated: []string{"--print_bitcode"}, Kind: janus.KindFlag,
		Visibility: janus.Internal, Help: "Print llvm bitcode"},
	{Name: "-Xprint-descriptors", Deprecated: []string{"--print_descriptors"}, Kind: janus.KindFlag,
		Visibility: janus.Internal, Help: "Print descriptor tree"},
	{Name: "-Xprint-ir", Deprecated: []string{"--print_ir"}, Kind: janus.KindFlag,
		Visibility: janus.Internal, Help: "Print IR"},
	{Name: "-Xprint-ir-with-descriptors", Deprecated: []string{"--print_ir_with_descriptors"}, Kind: janus.KindFlag,
		Visibility: janus.Internal, Help: "Print IR with descriptors"},
	{Name: "-Xprint-locations", Deprecated: []string{"--print_locations"}, Kind: janus.KindFlag,
		Visibility: janus.Internal, Help: "Print locations"},
	{Name: "-Xpurge-user-libs", Deprecated: []string{"--purge_user_libs"}, Kind: janus.KindFlag,
		Visibility: janus.Internal, Help: "Don't link unused libraries even explicitly specified"},
	{Name: "-Xruntime", Deprecated: []string{"--runtime"}, Kind: janus.KindScalar, Visibility: janus.Internal,
		ValueDescription: "<path>", Help: "Override standard 'runtime.bc' location"},
	{Name: "-Xtemporary-files-dir", Deprecated: []string{"--temporary_files_dir"}, Kind: janus.KindScalar,
		Visibility: janus.Internal, ValueDescription: "<path>", Help: "Save temporary files to the given directory"},
	{Name: "-Xtime", Deprecated: []string{"--time"}, Kind: janus.KindFlag,
		Visibility: janus.Internal, Help: "Report execution time for compiler phases"},
	{Name: "-Xverbose", Deprecated: []string{"--verbose"}, Kind: janus.KindList, Visibility: janus.Internal,
		ValueDescription: "<Phase>", Help: "Trace phase execution"},
	{Name: "-Xverify-bitcode", Deprecated: []string{"--verify_bitcode"}, Kind: janus.KindFlag,
		Visibility: janus.Internal, Help: "Verify llvm bitcode after each method"},
	{Name: "-Xverify-descriptors", Deprecated: []string{"--verify_descriptors"}, Kind: janus.KindFlag,
		Visibility: janus.Internal, Help: "Verify descriptor tree"},
	{Name: "-Xverify-ir", Deprecated: []string{"--verify_ir"}, Kind: janus.KindFlag,
		Visibility: janus.Internal, Help: "Verify IR"},
}

var nativeCompilerSchema = sync.OnceValues(func() (*janus.Schema, error) {
	base, err := CommonCompilerSchema()
	if err != nil {
		return nil, err
	}
	return janus.Build(base, nativeCompilerOptions,
		janus.WithName("konanc"),
		janus.WithDescription("Kotlin/Native compiler."))
})

// NativeCompilerSchema returns the compiler schema: the common options
// followed by the native ones.
func NativeCompilerSchema() (*janus.Schema, error) {
	return nativeCompilerSchema()
}

// NativeCompilerArguments is the typed form of a bound compiler command line.
type NativeCompilerArguments struct {
	// Common options
	NoWarn           bool
	WarningsAsErrors bool
	Verbose          bool
	Version          bool
	LanguageVersion  string
	APIVersion       string
	Progressive      bool
	PluginClasspaths []string
	PluginOptions    []string
	NoInline         bool
	MultiPlatform    bool

	EnableAssertions   bool
	Debug              bool
	GenerateTestRunner bool
	IncludeBinaries    []string
	Libraries          []string
	LibraryVersion     string
	ListTargets        bool
	ManifestFile       string
	ModuleName         string
	NativeLibraries    []string
	NoDefaultLibs      bool
	NoMain             bool
	NoPack             bool
	LinkerArguments    []string
	NoStdlib           bool
	Optimization       bool
	OutputName         string
	MainPackage        string
	Produce            string
	Repositories       []string
	Target             string
	FriendModules      string

	// Developer options
	CheckDependencies          bool
	CompatibleCompilerVersions []string
	DisablePhases              []string
	EnablePhases               []string
	ListPhases                 bool
	PrintBitCode               bool
	PrintDescriptors           bool
	PrintIr                    bool
	PrintIrWithDescriptors     bool
	PrintLocations             bool
	PurgeUserLibs              bool
	RuntimeFile                string
	TemporaryFilesDir          string
	TimePhases                 bool
	VerbosePhases              []string
	VerifyBitCode              bool
	VerifyDescriptors          bool
	VerifyIr                   bool

	// FreeArgs are the positional arguments: the sources to compile.
	FreeArgs []string
}

// DecodeNative copies a config bound against NativeCompilerSchema into
// the typed record. Options absent from the config keep their zero value.
func DecodeNative(cfg *janus.ParsedConfig) (*NativeCompilerArguments, error) {
	a := &NativeCompilerArguments{}
	err := janus.BindFromParsed(cfg).
		BindBool(&a.NoWarn, "-nowarn").
		BindBool(&a.WarningsAsErrors, "-Werror").
		BindBool(&a.Verbose, "-verbose").
		BindBool(&a.Version, "-version").
		BindString(&a.LanguageVersion, "-language-version").
		BindString(&a.APIVersion, "-api-version").
		BindBool(&a.Progressive, "-progressive").
		BindStrings(&a.PluginClasspaths, "-Xplugin").
		BindStrings(&a.PluginOptions, "-P").
		BindBool(&a.NoInline, "-Xno-inline").
		BindBool(&a.MultiPlatform, "-Xmulti-platform").
		BindBool(&a.EnableAssertions, "-enable-assertions").
		BindBool(&a.Debug, "-g").
		BindBool(&a.GenerateTestRunner, "-generate-test-runner").
		BindStrings(&a.IncludeBinaries, "-include-binary").
		BindStrings(&a.Libraries, "-library").
		BindString(&a.LibraryVersion, "-library-version").
		BindBool(&a.ListTargets, "-list-targets").
		BindString(&a.ManifestFile, "-manifest").
		BindString(&a.ModuleName, "-module-name").
		BindStrings(&a.NativeLibraries, "-native-library").
		BindBool(&a.NoDefaultLibs, "-nodefaultlibs").
		BindBool(&a.NoMain, "-nomain").
		BindBool(&a.NoPack, "-nopack").
		BindStrings(&a.LinkerArguments, "-linker-options").
		BindBool(&a.NoStdlib, "-nostdlib").
		BindBool(&a.Optimization, "-opt").
		BindString(&a.OutputName, "-output").
		BindString(&a.MainPackage, "-entry").
		BindString(&a.Produce, "-produce").
		BindStrings(&a.Repositories, "-repo").
		BindString(&a.Target, "-target").
		BindString(&a.FriendModules, "-friend-modules").
		BindBool(&a.CheckDependencies, "-Xcheck-dependencies").
		BindStrings(&a.CompatibleCompilerVersions, "-Xcompatible-compiler-version").
		BindStrings(&a.DisablePhases, "-Xdisable").
		BindStrings(&a.EnablePhases, "-Xenable").
		BindBool(&a.ListPhases, "-Xlist-phases").
		BindBool(&a.PrintBitCode, "-Xprint-bitcode").
		BindBool(&a.PrintDescriptors, "-Xprint-descriptors").
		BindBool(&a.PrintIr, "-Xprint-ir").
		BindBool(&a.PrintIrWithDescriptors, "-Xprint-ir-with-descriptors").
		BindBool(&a.PrintLocations, "-Xprint-locations").
		BindBool(&a.PurgeUserLibs, "-Xpurge-user-libs").
		BindString(&a.RuntimeFile, "-Xruntime").
		BindString(&a.TemporaryFilesDir, "-Xtemporary-files-dir").
		BindBool(&a.TimePhases, "-Xtime").
		BindStrings(&a.VerbosePhases, "-Xverbose").
		BindBool(&a.VerifyBitCode, "-Xverify-bitcode").
		BindBool(&a.VerifyDescriptors, "-Xverify-descriptors").
		BindBool(&a.VerifyIr, "-Xverify-ir").
		Apply()
	if err != nil {
		return nil, err
	}
	a.FreeArgs = cfg.Positionals()
	return a, nil
}
