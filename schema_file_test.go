// schema_file_test.go: Tests for schema files in every supported format
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var schemaFixtures = map[string]string{
	"tool.json": `{
  "name": "konanc",
  "description": "Native compiler",
  "options": [
    {"name": "-output", "short": "-o", "kind": "scalar", "value": "<name>", "help": "Output name"},
    {"name": "-library", "short": "-l", "kind": "list", "delimiter": ",", "deprecated": ["-lib"]},
    {"name": "-produce", "kind": "scalar", "choices": ["program", "library"], "default": "program"},
    {"name": "-Xtime", "kind": "flag", "visibility": "internal", "env": "KONAN_TIME"}
  ]
}`,
	"tool.yaml": `name: konanc
description: Native compiler
options:
  - name: -output
    short: -o
    kind: scalar
    value: <name>
    help: Output name
  - name: -library
    short: -l
    kind: list
    delimiter: ","
    deprecated: [-lib]
  - name: -produce
    kind: scalar
    choices: [program, library]
    default: program
  - name: -Xtime
    kind: flag
    visibility: internal
    env: KONAN_TIME
`,
	"tool.toml": `name = "konanc"
description = "Native compiler"

[[options]]
name = "-output"
short = "-o"
kind = "scalar"
value = "<name>"
help = "Output name"

[[options]]
name = "-library"
short = "-l"
kind = "list"
delimiter = ","
deprecated = ["-lib"]

[[options]]
name = "-produce"
kind = "scalar"
choices = ["program", "library"]
default = "program"

[[options]]
name = "-Xtime"
kind = "flag"
visibility = "internal"
env = "KONAN_TIME"
`,
	"tool.hcl": `name        = "konanc"
description = "Native compiler"

option "-output" {
  short = "-o"
  kind  = "scalar"
  value = "<name>"
  help  = "Output name"
}

option "-library" {
  short      = "-l"
  kind       = "list"
  delimiter  = ","
  deprecated = ["-lib"]
}

option "-produce" {
  kind    = "scalar"
  choices = ["program", "library"]
  default = "program"
}

option "-Xtime" {
  kind       = "flag"
  visibility = "internal"
  env        = "KONAN_TIME"
}
`,
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSchemaFile_AllFormatsAgree(t *testing.T) {
	want := []OptionSpec{
		{Name: "-output", Short: "-o", Kind: KindScalar, ValueDescription: "<name>", Help: "Output name"},
		{Name: "-library", Short: "-l", Kind: KindList, Delimiter: ',', Deprecated: []string{"-lib"}},
		{Name: "-produce", Kind: KindScalar, Choices: []string{"program", "library"}, Default: "program"},
		{Name: "-Xtime", Kind: KindFlag, Visibility: Internal, Env: "KONAN_TIME"},
	}

	for name, content := range schemaFixtures {
		t.Run(name, func(t *testing.T) {
			s, err := LoadSchemaFile(writeFixture(t, name, content), nil)
			if err != nil {
				t.Fatalf("LoadSchemaFile: %v", err)
			}
			if s.Name() != "konanc" || s.Description() != "Native compiler" {
				t.Errorf("metadata: %q %q", s.Name(), s.Description())
			}
			if diff := cmp.Diff(want, s.Options(), cmp.Comparer(func(a, b []string) bool {
				return len(a) == len(b) && (len(a) == 0 || cmp.Equal(a, b))
			})); diff != "" {
				t.Errorf("options mismatch (-want +got):\n%s", diff)
			}

			cfg, diags := Parse(s, []string{"-lib", "a,b"})
			if len(diags) != 1 || diags[0].Kind != DeprecatedFlag {
				t.Errorf("deprecated spelling from file: %v", Format(diags))
			}
			if diff := cmp.Diff([]string{"a", "b"}, cfg.List("-library")); diff != "" {
				t.Errorf("-library mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadSchemaFile_ExtendsBase(t *testing.T) {
	base := MustBuild(nil, []OptionSpec{{Name: "-nowarn", Kind: KindFlag}}, WithName("kotlinc"))
	path := writeFixture(t, "ext.yaml", "options:\n  - name: -g\n    kind: flag\n")

	s, err := LoadSchemaFile(path, base)
	if err != nil {
		t.Fatalf("LoadSchemaFile: %v", err)
	}
	if s.Name() != "kotlinc" || s.Len() != 2 || s.Base() != base {
		t.Errorf("extension not merged: name=%q len=%d", s.Name(), s.Len())
	}

	dup := writeFixture(t, "dup.yaml", "options:\n  - name: -nowarn\n    kind: flag\n")
	_, err = LoadSchemaFile(dup, base)
	assertCode(t, err, ErrCodeSchemaFile)
}

func TestParseSchema_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format SchemaFormat
		data   string
	}{
		{"json_unknown_field", FormatJSON, `{"options":[{"name":"-a","colour":"red"}]}`},
		{"json_syntax", FormatJSON, `{"options":`},
		{"yaml_unknown_field", FormatYAML, "options:\n  - name: -a\n    colour: red\n"},
		{"toml_unknown_key", FormatTOML, "[[options]]\nname = \"-a\"\ncolour = \"red\"\n"},
		{"hcl_unknown_attribute", FormatHCL, "option \"-a\" {\n  colour = \"red\"\n}\n"},
		{"bad_kind", FormatYAML, "options:\n  - name: -a\n    kind: map\n"},
		{"bad_visibility", FormatYAML, "options:\n  - name: -a\n    visibility: secret\n"},
		{"long_delimiter", FormatYAML, "options:\n  - name: -a\n    kind: list\n    delimiter: ';;'\n"},
		{"invalid_spec", FormatYAML, "options:\n  - name: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchema([]byte(tt.data), tt.format, nil)
			assertCode(t, err, ErrCodeSchemaFile)
		})
	}
}

func TestParseSchema_EmptyYAML(t *testing.T) {
	s, err := ParseSchema(nil, FormatYAML, nil)
	if err != nil || s.Len() != 0 {
		t.Errorf("empty YAML should build an empty schema: %v", err)
	}
}

func TestLoadSchemaFile_Unsupported(t *testing.T) {
	_, err := LoadSchemaFile("schema.ini", nil)
	assertCode(t, err, ErrCodeUnsupportedSchemaFile)

	_, err = LoadSchemaFile(filepath.Join(t.TempDir(), "missing.json"), nil)
	assertCode(t, err, ErrCodeSchemaFile)
}

func TestDetectSchemaFormat(t *testing.T) {
	tests := map[string]SchemaFormat{
		"a.json": FormatJSON, "a.YAML": FormatYAML, "a.yml": FormatYAML,
		"a.toml": FormatTOML, "dir/a.hcl": FormatHCL, "a.ini": FormatUnknown, "native": FormatUnknown,
	}
	for path, want := range tests {
		if got := DetectSchemaFormat(path); got != want {
			t.Errorf("DetectSchemaFormat(%q) = %s, want %s", path, got, want)
		}
	}
}
