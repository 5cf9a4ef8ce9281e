// Copyright (c) 2026 The unparser Authors
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

// Package syntax parses source text into [ast.Node] trees.
//
// The grammar is a compact subset of Ruby: literals, local/instance/global
// variables, constants, method calls with operators, assignments,
// conditionals, loops, method definitions, blocks, arrays and hashes.
// Every node produced by the parser carries an [ast.Span].
package syntax

import (
	"github.com/naw/unparser/ast"
)

const DefaultMaxDepth = 256

type ParseOption interface {
	apply(*ParseOptions)
}

type parseOption func(*ParseOptions)

func (fn parseOption) apply(opts *ParseOptions) {
	fn(opts)
}

// WithMaxDepth bounds how deeply expressions may nest. Values below 1 are
// ignored.
func WithMaxDepth(depth int) ParseOption {
	return parseOption(func(opts *ParseOptions) {
		if depth > 0 {
			opts.maxDepth = depth
		}
	})
}

func Parse(src []byte, opts ...ParseOption) (*ast.Node, error) {
	return NewParseOptions(opts...).Parse(src)
}

type ParseOptions struct {
	maxDepth int
}

func NewParseOptions(opts ...ParseOption) *ParseOptions {
	out := &ParseOptions{
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt.apply(out)
	}
	return out
}

func (opts *ParseOptions) MaxDepth() int {
	return opts.maxDepth
}

func (opts *ParseOptions) Parse(src []byte) (node *ast.Node, err error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{
		opts:   opts,
		src:    src,
		tokens: tokens,
	}
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			node, err = nil, b.err
		}
	}()
	return p.parseProgram(), nil
}

type lexeme struct {
	kind  TokenKind
	start uint32
	end   uint32
}

// lex drops spaces and comments. Adjacency is recovered from offsets.
func lex(src []byte) ([]lexeme, error) {
	tokens, err := NewTokens(src)
	if err != nil {
		return nil, err
	}
	var out []lexeme
	var token Token
	for {
		start := tokens.Offset()
		if err := tokens.Next(&token); err != nil {
			return nil, err
		}
		switch token.Kind {
		case T_SPACE, T_COMMENT:
			continue
		}
		out = append(out, lexeme{
			kind:  token.Kind,
			start: start,
			end:   start + uint32(token.Len),
		})
		if token.Kind == T_EOF {
			return out, nil
		}
	}
}
