// config_binder_test.go: Tests for typed binding of parsed options
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/go-cmp/cmp"
)

func binderSchema(t *testing.T) *Schema {
	t.Helper()
	return MustBuild(nil, []OptionSpec{
		{Name: "-output", Short: "-o", Kind: KindScalar},
		{Name: "-jobs", Short: "-j", Kind: KindScalar},
		{Name: "-size", Kind: KindScalar},
		{Name: "-ratio", Kind: KindScalar},
		{Name: "-timeout", Kind: KindScalar, Default: "30s"},
		{Name: "-strict", Kind: KindScalar},
		{Name: "-library", Kind: KindList, Delimiter: ','},
		{Name: "-g", Kind: KindFlag},
		{Name: "-nowarn", Kind: KindFlag},
	})
}

func TestConfigBinder_AllTypes(t *testing.T) {
	cfg, diags := Parse(binderSchema(t), []string{
		"-o", "a.kexe", "-j", "8", "-size=9000000000", "-ratio", "0.75",
		"-strict", "yes", "-library", "x,y", "-g",
	})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", Format(diags))
	}

	var (
		output   string
		jobs     int
		size     int64
		ratio    float64
		timeout  time.Duration
		strict   bool
		libs     []string
		debug    bool
		noWarn   = true
		gAsText  string
		outAsLst []string
	)
	err := BindFromParsed(cfg).
		BindString(&output, "-output").
		BindInt(&jobs, "-j").
		BindInt64(&size, "-size").
		BindFloat64(&ratio, "-ratio").
		BindDuration(&timeout, "-timeout").
		BindBool(&debug, "-g").
		BindBool(&noWarn, "-nowarn").
		BindStrings(&libs, "-library").
		BindString(&gAsText, "-g").
		BindStrings(&outAsLst, "-o").
		Apply()
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if output != "a.kexe" || jobs != 8 || size != 9000000000 || ratio != 0.75 {
		t.Errorf("scalars: %q %d %d %v", output, jobs, size, ratio)
	}
	if timeout != 30*time.Second {
		t.Errorf("default duration = %v", timeout)
	}
	if !debug || !noWarn || gAsText != "true" {
		t.Errorf("flags: debug=%v nowarn=%v g=%q", debug, noWarn, gAsText)
	}
	if diff := cmp.Diff([]string{"x", "y"}, libs); diff != "" {
		t.Errorf("libs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a.kexe"}, outAsLst); diff != "" {
		t.Errorf("scalar as list mismatch (-want +got):\n%s", diff)
	}

	// strict is "yes", which strconv.ParseBool rejects.
	err = BindFromParsed(cfg).BindBool(&strict, "-strict").Apply()
	assertCode(t, err, ErrCodeInvalidBinding)
}

func TestConfigBinder_FailureLeavesTargetsUntouched(t *testing.T) {
	cfg, _ := Parse(binderSchema(t), []string{"-o", "a.kexe", "-j", "many"})

	output := "unchanged"
	jobs := 4
	err := BindFromParsed(cfg).
		BindString(&output, "-output").
		BindInt(&jobs, "-jobs").
		Apply()
	assertCode(t, err, ErrCodeInvalidBinding)
	if output != "unchanged" || jobs != 4 {
		t.Errorf("targets modified on failure: %q %d", output, jobs)
	}
}

func TestConfigBinder_Errors(t *testing.T) {
	cfg, _ := Parse(binderSchema(t), []string{"-library", "a", "-g"})

	var s string
	var n int
	var list []string
	tests := []struct {
		name string
		cb   *ConfigBinder
	}{
		{"nil_config", BindFromParsed(nil).BindString(&s, "-output")},
		{"undeclared", BindFromParsed(cfg).BindString(&s, "-missing")},
		{"nil_target", BindFromParsed(cfg).BindString(nil, "-output")},
		{"list_to_string", BindFromParsed(cfg).BindString(&s, "-library")},
		{"list_to_int", BindFromParsed(cfg).BindInt(&n, "-library")},
		{"flag_to_list", BindFromParsed(cfg).BindStrings(&list, "-g")},
		{"flag_to_int", BindFromParsed(cfg).BindInt(&n, "-g")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertCode(t, tt.cb.Apply(), ErrCodeInvalidBinding)
		})
	}
}

func TestConfigBinder_UnsetKeepsValue(t *testing.T) {
	cfg, _ := Parse(binderSchema(t), nil)
	output := "default.kexe"
	libs := []string{"stdlib"}
	if err := BindFromParsed(cfg).BindString(&output, "-output").BindStrings(&libs, "-library").Apply(); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if output != "default.kexe" || len(libs) != 1 {
		t.Errorf("unset options must not touch targets: %q %v", output, libs)
	}
}

func TestConfigBinder_BindVersion(t *testing.T) {
	s := MustBuild(nil, []OptionSpec{
		{Name: "-language-version", Kind: KindScalar},
		{Name: "-api-version", Kind: KindScalar},
	})

	cfg, _ := Parse(s, []string{"-language-version", "1.9"})
	var lang, api *semver.Version
	if err := BindFromParsed(cfg).
		BindVersion(&lang, "-language-version").
		BindVersion(&api, "-api-version").
		Apply(); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if lang == nil || lang.String() != "1.9.0" {
		t.Errorf("language version = %v, want 1.9.0", lang)
	}
	if api != nil {
		t.Errorf("unset option should leave the target nil, got %v", api)
	}

	cfg, _ = Parse(s, []string{"-language-version", "latest"})
	err := BindFromParsed(cfg).BindVersion(&lang, "-language-version").Apply()
	assertCode(t, err, ErrCodeInvalidBinding)
	if lang.String() != "1.9.0" {
		t.Errorf("failed binding changed the target to %v", lang)
	}
}
