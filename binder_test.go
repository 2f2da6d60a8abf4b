// binder_test.go: Tests for binding argument vectors
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func kinds(diags Diagnostics) []DiagnosticKind {
	out := make([]DiagnosticKind, len(diags))
	for i, d := range diags {
		out[i] = d.Kind
	}
	return out
}

func TestParse_EveryDeclaredSpellingBinds(t *testing.T) {
	s := testSchema(t)
	for _, o := range s.Options() {
		for _, spelling := range o.spellings() {
			argv := []string{spelling}
			if o.TakesValue() {
				value := "v"
				if len(o.Choices) > 0 {
					value = o.Choices[len(o.Choices)-1]
				}
				argv = append(argv, value)
			}
			cfg, diags := Parse(s, argv)
			if diags.HasErrors() {
				t.Errorf("%s: unexpected errors %v", spelling, Format(diags))
				continue
			}
			if cfg.Origin(o.Name) != OriginArgs {
				t.Errorf("%s did not bind %s", spelling, o.Name)
			}
		}
	}
}

func TestParse_FlagIsIdempotent(t *testing.T) {
	s := testSchema(t)
	once, d1 := Parse(s, []string{"-g"})
	twice, d2 := Parse(s, []string{"-g", "-g"})
	if len(d1) != 0 || len(d2) != 0 {
		t.Fatalf("unexpected diagnostics: %v %v", d1, d2)
	}
	if !once.Bool("-g") || !twice.Bool("-g") {
		t.Error("-g should be true in both runs")
	}
}

func TestParse_FlagInlineValue(t *testing.T) {
	s := testSchema(t)
	cfg, diags := Parse(s, []string{"-g=false"})
	if len(diags) != 0 || cfg.Bool("-g") || !cfg.IsSet("-g") {
		t.Errorf("-g=false should bind false: set=%v diags=%v", cfg.IsSet("-g"), diags)
	}

	cfg, diags = Parse(s, []string{"-g=maybe"})
	if got := kinds(diags); !slices.Equal(got, []DiagnosticKind{InvalidValue}) {
		t.Errorf("diagnostics = %v, want [InvalidValue]", got)
	}
	if cfg.IsSet("-g") {
		t.Error("an invalid boolean must not bind")
	}
}

func TestParse_ListWithDelimiter(t *testing.T) {
	s := testSchema(t)
	cfg, diags := Parse(s, []string{"-library", "a,b", "-l", "c"})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", Format(diags))
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, cfg.List("-library")); diff != "" {
		t.Errorf("-library mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ListWithoutDelimiter(t *testing.T) {
	s := testSchema(t)
	cfg, _ := Parse(s, []string{"-verbose", "Foo", "-verbose", "Bar,Baz"})
	if diff := cmp.Diff([]string{"Foo", "Bar,Baz"}, cfg.List("-verbose")); diff != "" {
		t.Errorf("-verbose mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_BadDelimiterUsage(t *testing.T) {
	s := testSchema(t)
	cfg, diags := Parse(s, []string{"-library", "a,,b,"})
	if got := kinds(diags); !slices.Equal(got, []DiagnosticKind{BadDelimiterUsage}) {
		t.Errorf("diagnostics = %v, want one BadDelimiterUsage", got)
	}
	if diff := cmp.Diff([]string{"a", "b"}, cfg.List("-library")); diff != "" {
		t.Errorf("non-empty parts should still bind (-want +got):\n%s", diff)
	}
}

func TestParse_WhitespaceDelimiterCollapses(t *testing.T) {
	s := MustBuild(nil, []OptionSpec{{Name: "-linker-options", Kind: KindList, Delimiter: ' '}})
	cfg, diags := Parse(s, []string{"-linker-options", " -lz  -lm "})
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", Format(diags))
	}
	if diff := cmp.Diff([]string{"-lz", "-lm"}, cfg.List("-linker-options")); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_WhitespaceDelimiterBlankValue(t *testing.T) {
	s := MustBuild(nil, []OptionSpec{{Name: "-linker-options", Kind: KindList, Delimiter: ' '}})
	for _, raw := range []string{"", "   "} {
		cfg, diags := Parse(s, []string{"-linker-options", raw})
		if got := kinds(diags); !slices.Equal(got, []DiagnosticKind{BadDelimiterUsage}) {
			t.Errorf("%q: diagnostics = %v, want one BadDelimiterUsage", raw, got)
		}
		if cfg.IsSet("-linker-options") {
			t.Errorf("%q: a blank value must not bind", raw)
		}
	}
}

func TestParse_UnknownFlagDoesNotConsume(t *testing.T) {
	s := testSchema(t)
	cfg, diags := Parse(s, []string{"-bogus", "main.kt", "-o", "a.kexe"})

	if got := kinds(diags); !slices.Equal(got, []DiagnosticKind{UnknownFlag}) {
		t.Fatalf("diagnostics = %v, want exactly one UnknownFlag", got)
	}
	if diags[0].Token != "-bogus" || diags[0].Index != 0 {
		t.Errorf("diagnostic should point at -bogus: %+v", diags[0])
	}
	if diff := cmp.Diff([]string{"main.kt"}, cfg.Positionals()); diff != "" {
		t.Errorf("following token must stay positional (-want +got):\n%s", diff)
	}
	if out, _ := cfg.String("-output"); out != "a.kexe" {
		t.Errorf("other flags should still bind, -output = %q", out)
	}
}

func TestParse_MissingValue(t *testing.T) {
	s := testSchema(t)

	for _, argv := range [][]string{{"-output"}, {"-output", "--", "x.kt"}} {
		t.Run(fmt.Sprint(argv), func(t *testing.T) {
			cfg, diags := Parse(s, argv)
			if got := kinds(diags); !slices.Equal(got, []DiagnosticKind{MissingValue}) {
				t.Fatalf("diagnostics = %v, want [MissingValue]", got)
			}
			if cfg.IsSet("-output") {
				t.Error("-output must stay unset")
			}
			if diags[0].Message != "no value for option -output <name>" {
				t.Errorf("unexpected message %q", diags[0].Message)
			}
		})
	}
}

func TestParse_ValueIsTakenWhateverItsShape(t *testing.T) {
	s := testSchema(t)
	cfg, diags := Parse(s, []string{"-output", "-g"})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", Format(diags))
	}
	if out, _ := cfg.String("-output"); out != "-g" {
		t.Errorf("-output = %q, want -g", out)
	}
	if cfg.IsSet("-g") {
		t.Error("-g was consumed as a value and must not bind")
	}
}

func TestParse_ScalarLastWriteWins(t *testing.T) {
	s := testSchema(t)
	cfg, diags := Parse(s, []string{"-o", "first", "-output=second"})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", Format(diags))
	}
	if out, _ := cfg.String("-output"); out != "second" {
		t.Errorf("-output = %q, want second", out)
	}
}

func TestParse_ScalarOnce(t *testing.T) {
	s := MustBuild(nil, []OptionSpec{{Name: "-target", Kind: KindScalar, Once: true}})
	cfg, diags := Parse(s, []string{"-target", "ios", "-target", "linux"})
	if got := kinds(diags); !slices.Equal(got, []DiagnosticKind{DuplicateFlag}) {
		t.Fatalf("diagnostics = %v, want [DuplicateFlag]", got)
	}
	if v, _ := cfg.String("-target"); v != "ios" {
		t.Errorf("first value should be kept, got %q", v)
	}
}

func TestParse_ChoicesAndDefaults(t *testing.T) {
	s := testSchema(t)

	cfg, diags := Parse(s, nil)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", Format(diags))
	}
	if v, _ := cfg.String("-produce"); v != "program" || cfg.Origin("-produce") != OriginDefault {
		t.Errorf("default not applied: %q (%s)", v, cfg.Origin("-produce"))
	}

	cfg, diags = Parse(s, []string{"-p", "applet"})
	if got := kinds(diags); !slices.Equal(got, []DiagnosticKind{InvalidValue}) {
		t.Fatalf("diagnostics = %v, want [InvalidValue]", got)
	}
	if cfg.Origin("-produce") != OriginDefault {
		t.Error("an invalid choice should leave the default in place")
	}
}

func TestParse_Required(t *testing.T) {
	s := MustBuild(nil, []OptionSpec{{Name: "-def", Kind: KindScalar, Required: true}})

	_, diags := Parse(s, []string{"x.kt"})
	if len(diags) != 1 || diags[0].Kind != MissingRequired || diags[0].Index != -1 || diags[0].Token != "-def" {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}

	cfg, diags := Parse(s, []string{"--help"})
	if len(diags) != 0 || !cfg.HelpRequested() {
		t.Errorf("help should suppress required checks: help=%v diags=%v", cfg.HelpRequested(), diags)
	}
}

func TestParse_HelpSpellings(t *testing.T) {
	s := testSchema(t)
	for _, h := range []string{"-h", "-help", "--help"} {
		cfg, diags := Parse(s, []string{h})
		if len(diags) != 0 || !cfg.HelpRequested() {
			t.Errorf("%s: help=%v diags=%v", h, cfg.HelpRequested(), diags)
		}
	}

	declared := MustBuild(nil, []OptionSpec{{Name: "-h", Kind: KindList}})
	cfg, _ := Parse(declared, []string{"-h", "a.h"})
	if cfg.HelpRequested() || len(cfg.List("-h")) != 1 {
		t.Error("a declared -h must bind as an option")
	}
}

func TestParse_Deprecated(t *testing.T) {
	s := MustBuild(testSchema(t), []OptionSpec{
		{Name: "-copt", Kind: KindList, DeprecatedWarning: "Option -copt is deprecated."},
	})
	cfg, diags := Parse(s, []string{"-enable_assertions", "-copt", "-DX"})

	if got := kinds(diags); !slices.Equal(got, []DiagnosticKind{DeprecatedFlag, DeprecatedFlag}) {
		t.Fatalf("diagnostics = %v", got)
	}
	if diags.HasErrors() {
		t.Error("deprecation must only warn")
	}
	if diags[0].Message != "option -enable_assertions is deprecated, use -enable-assertions instead" {
		t.Errorf("unexpected message %q", diags[0].Message)
	}
	if !cfg.Bool("-enable-assertions") || len(cfg.List("-copt")) != 1 {
		t.Error("deprecated spellings should still bind")
	}
}

func TestParse_DeprecationWarnsOncePerOption(t *testing.T) {
	s := MustBuild(testSchema(t), []OptionSpec{
		{Name: "-copt", Kind: KindList, Delimiter: ' ', DeprecatedWarning: "Option -copt is deprecated."},
	})
	cfg, diags := Parse(s, []string{"-copt", "x", "-copt", "y", "-copt", "z"})

	if got := diags.OfKind(DeprecatedFlag); len(got) != 1 {
		t.Fatalf("got %d deprecation warnings, want 1: %v", len(got), Format(diags))
	}
	if diags[0].Index != 0 {
		t.Errorf("warning should point at the first occurrence, got index %d", diags[0].Index)
	}
	if diff := cmp.Diff([]string{"x", "y", "z"}, cfg.List("-copt")); diff != "" {
		t.Errorf("-copt mismatch (-want +got):\n%s", diff)
	}

	_, again := Parse(s, []string{"-copt", "x"})
	if len(again.OfKind(DeprecatedFlag)) != 1 {
		t.Error("every run should warn again")
	}
}

func TestParse_DiagnosticsAreOrderedAndComplete(t *testing.T) {
	s := testSchema(t)
	_, diags := Parse(s, []string{"-x", "-p", "bad", "-y", "-library", ",", "-output"})
	want := []DiagnosticKind{UnknownFlag, InvalidValue, UnknownFlag, BadDelimiterUsage, MissingValue}
	if diff := cmp.Diff(want, kinds(diags)); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NilSchema(t *testing.T) {
	cfg, diags := Parse(nil, []string{"a", "-x"})
	if len(cfg.Positionals()) != 1 || len(diags) != 1 || diags[0].Kind != UnknownFlag {
		t.Errorf("nil schema should bind positionals and report flags: %v %v", cfg.Positionals(), diags)
	}
}

func TestBind_CustomTokenSource(t *testing.T) {
	s := testSchema(t)
	tokens := func(yield func(RawToken) bool) {
		_ = yield(RawToken{Kind: TokenFlag, Text: "-o", Flag: "-o", Index: 0}) &&
			yield(RawToken{Kind: TokenPositional, Text: "a.kexe", Index: 1})
	}
	cfg, diags := Bind(s, tokens)
	if out, _ := cfg.String("-output"); out != "a.kexe" || len(diags) != 0 {
		t.Errorf("-output = %q, diags = %v", out, diags)
	}
}

func TestParse_Deterministic(t *testing.T) {
	s := testSchema(t)
	argv := []string{"-g", "-l", "a,b", "-bogus", "-o", "x", "main.kt", "-verbose", "v"}
	first, d1 := Parse(s, argv)
	for range 10 {
		next, d2 := Parse(s, argv)
		if diff := cmp.Diff(d1, d2); diff != "" {
			t.Fatalf("diagnostics differ:\n%s", diff)
		}
		for _, name := range first.Names() {
			a, _ := first.Value(name)
			b, _ := next.Value(name)
			if diff := cmp.Diff(a, b); diff != "" {
				t.Fatalf("%s differs:\n%s", name, diff)
			}
		}
	}
}

func TestParse_ConcurrentSharedSchema(t *testing.T) {
	s := testSchema(t)
	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := range 32 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out := fmt.Sprintf("out%d", i)
			cfg, diags := Parse(s, []string{"-o", out, "-l", "a,b"})
			if got, _ := cfg.String("-output"); got != out || len(diags) != 0 {
				errs <- fmt.Sprintf("goroutine %d: -output=%q diags=%v", i, got, diags)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}
