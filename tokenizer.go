// tokenizer.go: Schema-agnostic argument tokenizer
//
// The tokenizer classifies raw argv elements without consulting any schema,
// so one tokenizer serves every tool. Whether a flag consumes the following
// element is decided later by the binder.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"iter"
	"strings"
)

// TokenKind classifies a raw token.
type TokenKind uint8

const (
	// TokenFlag is a dash-prefixed element; it may carry an inline value
	// and may consume the following element.
	TokenFlag TokenKind = iota
	// TokenPositional is a bare argument.
	TokenPositional
	// TokenTerminator is the "--" element; everything after it is positional.
	TokenTerminator
)

func (k TokenKind) String() string {
	switch k {
	case TokenFlag:
		return "flag"
	case TokenPositional:
		return "positional"
	case TokenTerminator:
		return "terminator"
	default:
		return "unknown"
	}
}

// RawToken is one classified argv element.
type RawToken struct {
	Kind TokenKind
	// Text is the element exactly as it appeared in argv.
	Text string
	// Flag is the flag spelling without any inline value ("-output" for
	// "-output=a.kexe"). Empty for non-flag tokens.
	Flag string
	// Value is the inline value; meaningful only when HasValue is true.
	Value    string
	HasValue bool
	// Index is the position of the element in argv.
	Index int
}

// Tokenize lazily classifies argv.
func Tokenize(argv []string) iter.Seq[RawToken] {
	return func(yield func(RawToken) bool) {
		terminated := false
		for i, arg := range argv {
			var tok RawToken
			switch {
			case terminated:
				tok = RawToken{Kind: TokenPositional, Text: arg, Index: i}
			case arg == "--":
				terminated = true
				tok = RawToken{Kind: TokenTerminator, Text: arg, Index: i}
			case isFlagText(arg):
				tok = splitFlag(arg, i)
			default:
				tok = RawToken{Kind: TokenPositional, Text: arg, Index: i}
			}
			if !yield(tok) {
				return
			}
		}
	}
}

// isFlagText reports whether arg has flag shape. A lone "-" conventionally
// names stdin and stays positional.
func isFlagText(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}

func splitFlag(arg string, index int) RawToken {
	tok := RawToken{Kind: TokenFlag, Text: arg, Flag: arg, Index: index}
	if name, value, found := strings.Cut(arg, "="); found {
		tok.Flag = name
		tok.Value = value
		tok.HasValue = true
	}
	return tok
}
