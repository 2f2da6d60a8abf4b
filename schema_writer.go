// schema_writer.go: Schema export to configuration files
//
// The writer is the inverse of schema_file.go: a built schema is encoded
// into the same document shape, so that a tool can publish its vocabulary
// and a sibling tool can extend it from a file. Files are replaced
// atomically through a temporary file in the same directory.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/agilira/go-errors"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"go.yaml.in/yaml/v3"
)

// MarshalSchema encodes schema in the given format.
//
// By default only the options and arguments the schema declares on top of
// its base are written, and the result must be loaded with the same base.
// With flatten the base declarations are included and the document stands
// alone. Subcommands are not written.
func MarshalSchema(schema *Schema, format SchemaFormat, flatten bool) ([]byte, error) {
	if schema == nil {
		return nil, ErrNilSchema
	}
	doc := documentOf(schema, flatten)

	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return nil, errors.Wrap(err, ErrCodeSchemaFile, "failed to encode JSON schema")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, errors.Wrap(err, ErrCodeSchemaFile, "failed to encode YAML schema")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, ErrCodeSchemaFile, "failed to encode YAML schema")
		}
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, errors.Wrap(err, ErrCodeSchemaFile, "failed to encode TOML schema")
		}
	case FormatHCL:
		buf.Write(encodeHCL(doc))
	default:
		return nil, ErrUnsupportedFormat
	}
	return buf.Bytes(), nil
}

// WriteSchemaFile encodes schema in the format implied by the extension of
// path and replaces the file atomically.
func WriteSchemaFile(schema *Schema, path string, flatten bool) error {
	format := DetectSchemaFormat(path)
	if format == FormatUnknown {
		return errors.Wrap(ErrUnsupportedFormat, ErrCodeUnsupportedSchemaFile,
			fmt.Sprintf("cannot detect schema format of %s", path))
	}
	data, err := MarshalSchema(schema, format, flatten)
	if err != nil {
		return err
	}
	return atomicWrite(path, data)
}

// documentOf projects a schema onto its file form.
func documentOf(schema *Schema, flatten bool) *schemaDocument {
	options, arguments := schema.options, schema.arguments
	if !flatten && schema.base != nil {
		options = options[len(schema.base.options):]
		arguments = arguments[len(schema.base.arguments):]
	}

	doc := &schemaDocument{
		Name:        schema.name,
		Description: schema.description,
		Options:     make([]optionDocument, 0, len(options)),
	}
	for _, o := range options {
		od := optionDocument{
			Name:              o.Name,
			Short:             o.Short,
			Kind:              o.Kind.String(),
			Value:             o.ValueDescription,
			Help:              o.Help,
			Deprecated:        o.Deprecated,
			DeprecatedWarning: o.DeprecatedWarning,
			Default:           o.Default,
			Choices:           o.Choices,
			Required:          o.Required,
			Once:              o.Once,
			Env:               o.Env,
		}
		if o.Delimiter != 0 {
			od.Delimiter = string(o.Delimiter)
		}
		if o.Visibility != Public {
			od.Visibility = o.Visibility.String()
		}
		doc.Options = append(doc.Options, od)
	}
	for _, a := range arguments {
		doc.Arguments = append(doc.Arguments, argumentDocument(a.clone()))
	}
	return doc
}

// encodeHCL writes one labelled option block per option, omitting empty
// attributes.
func encodeHCL(doc *schemaDocument) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()
	setString(root, "name", doc.Name)
	setString(root, "description", doc.Description)

	for _, od := range doc.Options {
		root.AppendNewline()
		body := root.AppendNewBlock("option", []string{od.Name}).Body()
		setString(body, "short", od.Short)
		setString(body, "kind", od.Kind)
		setString(body, "delimiter", od.Delimiter)
		setString(body, "visibility", od.Visibility)
		setString(body, "value", od.Value)
		setString(body, "help", od.Help)
		setStrings(body, "deprecated", od.Deprecated)
		setString(body, "deprecated_warning", od.DeprecatedWarning)
		setString(body, "default", od.Default)
		setStrings(body, "choices", od.Choices)
		if od.Required {
			body.SetAttributeValue("required", cty.True)
		}
		if od.Once {
			body.SetAttributeValue("once", cty.True)
		}
		setString(body, "env", od.Env)
	}

	for _, ad := range doc.Arguments {
		root.AppendNewline()
		body := root.AppendNewBlock("argument", []string{ad.Name}).Body()
		if ad.Count != 0 {
			body.SetAttributeValue("count", cty.NumberIntVal(int64(ad.Count)))
		}
		if ad.Optional {
			body.SetAttributeValue("optional", cty.True)
		}
		setStrings(body, "default", ad.Default)
		setStrings(body, "choices", ad.Choices)
		setString(body, "help", ad.Help)
	}
	return hclwrite.Format(f.Bytes())
}

func setString(body *hclwrite.Body, name, value string) {
	if value != "" {
		body.SetAttributeValue(name, cty.StringVal(value))
	}
}

func setStrings(body *hclwrite.Body, name string, values []string) {
	if len(values) == 0 {
		return
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.StringVal(v)
	}
	body.SetAttributeValue(name, cty.ListVal(vals))
}

// atomicWrite performs atomic file write using temporary file + rename.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, ErrCodeSchemaFile, "failed to create temporary schema file")
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(err, ErrCodeSchemaFile, "failed to write schema file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(err, ErrCodeSchemaFile, "failed to write schema file")
	}
	if err := os.Chmod(tempPath, 0600); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(err, ErrCodeSchemaFile, "failed to set schema file permissions")
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(err, ErrCodeSchemaFile, "failed to replace schema file "+path)
	}
	return nil
}
