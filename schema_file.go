// schema_file.go: Schema declarations loaded from configuration files
//
// Supported Formats:
// - JSON (.json)
// - YAML (.yml, .yaml)
// - TOML (.toml)
// - HCL (.hcl)
//
// Every format decodes into the same document shape. Unknown keys are
// rejected so that a misspelt attribute never silently changes parsing.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/agilira/go-errors"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"go.yaml.in/yaml/v3"
)

// SchemaFormat identifies a schema file encoding.
type SchemaFormat int

const (
	FormatJSON SchemaFormat = iota
	FormatYAML
	FormatTOML
	FormatHCL
	FormatUnknown
)

func (f SchemaFormat) String() string {
	switch f {
	case FormatJSON:
		return "JSON"
	case FormatYAML:
		return "YAML"
	case FormatTOML:
		return "TOML"
	case FormatHCL:
		return "HCL"
	default:
		return "Unknown"
	}
}

// DetectSchemaFormat detects the format from the file extension.
func DetectSchemaFormat(path string) SchemaFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".hcl":
		return FormatHCL
	default:
		return FormatUnknown
	}
}

// schemaDocument is the on-disk form of a schema.
//
// In HCL every option and argument is a labelled block:
//
//	option "-output" {
//	  short = "-o"
//	  kind  = "scalar"
//	}
//
//	argument "files" {
//	  count = -1
//	}
//
// Subcommands are not part of the file form.
type schemaDocument struct {
	Name        string             `json:"name" yaml:"name" toml:"name" hcl:"name,optional"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty" hcl:"description,optional"`
	Options     []optionDocument   `json:"options" yaml:"options" toml:"options" hcl:"option,block"`
	Arguments   []argumentDocument `json:"arguments,omitempty" yaml:"arguments,omitempty" toml:"arguments,omitempty" hcl:"argument,block"`
}

type argumentDocument struct {
	Name     string   `json:"name" yaml:"name" toml:"name" hcl:"name,label"`
	Count    int      `json:"count,omitempty" yaml:"count,omitempty" toml:"count,omitempty" hcl:"count,optional"`
	Optional bool     `json:"optional,omitempty" yaml:"optional,omitempty" toml:"optional,omitempty" hcl:"optional,optional"`
	Default  []string `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty" hcl:"default,optional"`
	Choices  []string `json:"choices,omitempty" yaml:"choices,omitempty" toml:"choices,omitempty" hcl:"choices,optional"`
	Help     string   `json:"help,omitempty" yaml:"help,omitempty" toml:"help,omitempty" hcl:"help,optional"`
}

type optionDocument struct {
	Name              string   `json:"name" yaml:"name" toml:"name" hcl:"name,label"`
	Short             string   `json:"short,omitempty" yaml:"short,omitempty" toml:"short,omitempty" hcl:"short,optional"`
	Kind              string   `json:"kind" yaml:"kind" toml:"kind" hcl:"kind,optional"`
	Delimiter         string   `json:"delimiter,omitempty" yaml:"delimiter,omitempty" toml:"delimiter,omitempty" hcl:"delimiter,optional"`
	Visibility        string   `json:"visibility,omitempty" yaml:"visibility,omitempty" toml:"visibility,omitempty" hcl:"visibility,optional"`
	Value             string   `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty" hcl:"value,optional"`
	Help              string   `json:"help,omitempty" yaml:"help,omitempty" toml:"help,omitempty" hcl:"help,optional"`
	Deprecated        []string `json:"deprecated,omitempty" yaml:"deprecated,omitempty" toml:"deprecated,omitempty" hcl:"deprecated,optional"`
	DeprecatedWarning string   `json:"deprecated_warning,omitempty" yaml:"deprecated_warning,omitempty" toml:"deprecated_warning,omitempty" hcl:"deprecated_warning,optional"`
	Default           string   `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty" hcl:"default,optional"`
	Choices           []string `json:"choices,omitempty" yaml:"choices,omitempty" toml:"choices,omitempty" hcl:"choices,optional"`
	Required          bool     `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty" hcl:"required,optional"`
	Once              bool     `json:"once,omitempty" yaml:"once,omitempty" toml:"once,omitempty" hcl:"once,optional"`
	Env               string   `json:"env,omitempty" yaml:"env,omitempty" toml:"env,omitempty" hcl:"env,optional"`
}

// LoadSchemaFile reads path, detects its format from the extension and
// builds a schema on top of base (which may be nil).
func LoadSchemaFile(path string, base *Schema) (*Schema, error) {
	format := DetectSchemaFormat(path)
	if format == FormatUnknown {
		return nil, errors.Wrap(ErrUnsupportedFormat, ErrCodeUnsupportedSchemaFile,
			fmt.Sprintf("cannot detect schema format of %s", path))
	}
	// #nosec G304 - schema path is supplied by the tool author
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeSchemaFile, "failed to read schema file "+path)
	}
	return ParseSchema(data, format, base)
}

// ParseSchema decodes data in the given format and builds the schema.
// Decoding problems return ErrCodeSchemaFile; declaration problems keep the
// construction error wrapped under the same code.
func ParseSchema(data []byte, format SchemaFormat, base *Schema) (*Schema, error) {
	doc, err := decodeSchema(data, format)
	if err != nil {
		return nil, err
	}

	decls := make([]OptionSpec, 0, len(doc.Options))
	for i, od := range doc.Options {
		spec, err := od.toSpec()
		if err != nil {
			return nil, errors.Wrap(err, ErrCodeSchemaFile,
				fmt.Sprintf("option #%d (%s)", i+1, displayName(od.Name)))
		}
		decls = append(decls, spec)
	}

	var opts []SchemaOption
	if doc.Name != "" {
		opts = append(opts, WithName(doc.Name))
	}
	if doc.Description != "" {
		opts = append(opts, WithDescription(doc.Description))
	}
	if len(doc.Arguments) > 0 {
		args := make([]ArgumentSpec, len(doc.Arguments))
		for i, ad := range doc.Arguments {
			args[i] = ArgumentSpec(ad)
		}
		opts = append(opts, WithArguments(args...))
	}
	schema, err := Build(base, decls, opts...)
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeSchemaFile, "schema file declares an invalid schema")
	}
	return schema, nil
}

func decodeSchema(data []byte, format SchemaFormat) (*schemaDocument, error) {
	var doc schemaDocument
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, ErrCodeSchemaFile, "failed to parse JSON schema")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, ErrCodeSchemaFile, "failed to parse YAML schema")
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Wrap(err, ErrCodeSchemaFile, "failed to parse TOML schema")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, errors.New(ErrCodeSchemaFile,
				"unknown keys in TOML schema: "+strings.Join(keys, ", "))
		}
	case FormatHCL:
		// The file name only selects native HCL syntax over its JSON variant.
		if err := hclsimple.Decode("schema.hcl", data, nil, &doc); err != nil {
			return nil, errors.Wrap(err, ErrCodeSchemaFile, "failed to parse HCL schema")
		}
	default:
		return nil, ErrUnsupportedFormat
	}
	return &doc, nil
}

func (od optionDocument) toSpec() (OptionSpec, error) {
	kind, ok := ParseValueKind(od.Kind)
	if !ok {
		return OptionSpec{}, errors.New(ErrCodeSchemaFile, fmt.Sprintf("unknown kind %q", od.Kind))
	}
	visibility, ok := ParseVisibility(od.Visibility)
	if !ok {
		return OptionSpec{}, errors.New(ErrCodeSchemaFile, fmt.Sprintf("unknown visibility %q", od.Visibility))
	}

	var delim rune
	if od.Delimiter != "" {
		if utf8.RuneCountInString(od.Delimiter) != 1 {
			return OptionSpec{}, errors.New(ErrCodeSchemaFile,
				fmt.Sprintf("delimiter %q must be a single character", od.Delimiter))
		}
		delim, _ = utf8.DecodeRuneInString(od.Delimiter)
	}

	return OptionSpec{
		Name:              od.Name,
		Short:             od.Short,
		Kind:              kind,
		Delimiter:         delim,
		Visibility:        visibility,
		ValueDescription:  od.Value,
		Help:              od.Help,
		Deprecated:        od.Deprecated,
		DeprecatedWarning: od.DeprecatedWarning,
		Default:           od.Default,
		Choices:           od.Choices,
		Required:          od.Required,
		Once:              od.Once,
		Env:               od.Env,
	}, nil
}
