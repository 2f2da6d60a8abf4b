// help.go: Usage text rendering
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

const (
	helpIndent = "  "
	// maxLabelWidth caps the option column; longer labels put their help
	// text on the following line.
	maxLabelWidth = 36
	// minHelpWidth is the narrowest help column RenderWidth will wrap to.
	minHelpWidth = 20
)

// Render returns the usage text of schema. Declared arguments come first,
// then public options; Internal ones are listed under "Advanced options:"
// only when includeInternal is true. Subcommands close the text. Help text
// is not wrapped.
func Render(schema *Schema, includeInternal bool) string {
	return RenderWidth(schema, includeInternal, 0)
}

// RenderWidth is like Render but wraps help text so that lines fit in width
// columns. A width of zero or less disables wrapping.
func RenderWidth(schema *Schema, includeInternal bool, width int) string {
	if schema == nil {
		schema = emptySchema
	}

	var public, internal []*OptionSpec
	for i := range schema.options {
		o := &schema.options[i]
		if o.Visibility == Internal {
			internal = append(internal, o)
		} else {
			public = append(public, o)
		}
	}

	var sb strings.Builder
	name := schema.name
	if name == "" {
		name = "command"
	}
	sb.WriteString("Usage: " + name + " [options]" + usageTail(schema) + "\n")
	if schema.description != "" {
		sb.WriteString("\n")
		sb.WriteString(wrap(schema.description, width))
		sb.WriteString("\n")
	}

	if len(schema.arguments) > 0 {
		sb.WriteString("\nArguments:\n")
		labels := make([]string, len(schema.arguments))
		for i := range schema.arguments {
			labels[i] = schema.arguments[i].placeholder()
		}
		column := labelColumn(labels)
		for i := range schema.arguments {
			writeEntry(&sb, labels[i], argumentHelp(&schema.arguments[i]), column, width)
		}
	}

	groups := []struct {
		title   string
		options []*OptionSpec
	}{{"Options:", public}}
	if includeInternal {
		groups = append(groups, struct {
			title   string
			options []*OptionSpec
		}{"Advanced options:", internal})
	}

	for _, g := range groups {
		if len(g.options) == 0 {
			continue
		}
		sb.WriteString("\n" + g.title + "\n")
		labels := make([]string, len(g.options))
		for i, o := range g.options {
			labels[i] = label(o)
		}
		column := labelColumn(labels)
		for i, o := range g.options {
			writeEntry(&sb, labels[i], helpText(o), column, width)
		}
	}

	if len(schema.commands) > 0 {
		sb.WriteString("\nCommands:\n")
		labels := make([]string, len(schema.commands))
		for i, sub := range schema.commands {
			labels[i] = sub.name
		}
		column := labelColumn(labels)
		for i, sub := range schema.commands {
			writeEntry(&sb, labels[i], sub.description, column, width)
		}
	}
	return sb.String()
}

// usageTail is the part of the usage line after "[options]".
func usageTail(schema *Schema) string {
	if len(schema.arguments) == 0 && len(schema.commands) == 0 {
		return " [arguments]"
	}
	var tail strings.Builder
	for i := range schema.arguments {
		tail.WriteString(" " + schema.arguments[i].placeholder())
	}
	if len(schema.commands) > 0 {
		tail.WriteString(" [<command> ...]")
	}
	return tail.String()
}

// label is the left column of an option line: "-output, -o <path>".
func label(o *OptionSpec) string {
	l := o.Name
	if o.Short != "" {
		l += ", " + o.Short
	}
	if o.ValueDescription != "" {
		l += " " + o.ValueDescription
	}
	return l
}

func labelColumn(labels []string) int {
	column := 0
	for _, l := range labels {
		if n := len(l); n > column && n <= maxLabelWidth {
			column = n
		}
	}
	return column
}

// helpText is the right column: the help string plus its annotations.
func helpText(o *OptionSpec) string {
	parts := make([]string, 0, 5)
	if o.Help != "" {
		parts = append(parts, o.Help)
	}
	if o.Default != "" {
		parts = append(parts, "(default: "+o.Default+")")
	}
	if len(o.Choices) > 0 {
		parts = append(parts, "(one of: "+strings.Join(o.Choices, "|")+")")
	}
	if o.Required {
		parts = append(parts, "(required)")
	}
	if o.DeprecatedWarning != "" {
		parts = append(parts, "(deprecated: "+o.DeprecatedWarning+")")
	}
	return strings.Join(parts, " ")
}

// argumentHelp is the right column of an argument line.
func argumentHelp(a *ArgumentSpec) string {
	parts := make([]string, 0, 4)
	if a.Help != "" {
		parts = append(parts, a.Help)
	}
	if len(a.Default) > 0 {
		parts = append(parts, "(default: "+strings.Join(a.Default, " ")+")")
	}
	if len(a.Choices) > 0 {
		parts = append(parts, "(one of: "+strings.Join(a.Choices, "|")+")")
	}
	if a.Optional {
		parts = append(parts, "(optional)")
	}
	return strings.Join(parts, " ")
}

func writeEntry(sb *strings.Builder, l, text string, column, width int) {
	sb.WriteString(helpIndent + l)
	if text == "" {
		sb.WriteString("\n")
		return
	}

	pad := strings.Repeat(" ", len(helpIndent)+column+2)
	if len(l) > column {
		// Label too wide for the column: help starts on its own line.
		sb.WriteString("\n" + pad)
	} else {
		sb.WriteString(strings.Repeat(" ", column-len(l)+2))
	}

	avail := 0
	if width > 0 {
		avail = max(width-len(pad), minHelpWidth)
	}
	lines := strings.Split(wrap(text, avail), "\n")
	sb.WriteString(lines[0] + "\n")
	for _, line := range lines[1:] {
		sb.WriteString(pad + line + "\n")
	}
}

// wrap word-wraps text to width columns; width <= 0 returns text unchanged.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	if width < minHelpWidth {
		width = minHelpWidth
	}
	return wordwrap.WrapString(text, uint(width))
}
