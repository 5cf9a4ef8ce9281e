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

// Package unparser turns syntax trees back into source text and checks
// that the result parses to the same tree.
//
// The work is done by the [emitter], [syntax] and [verify] packages; this
// package wires them together for the common cases.
package unparser

import (
	"github.com/naw/unparser/ast"
	"github.com/naw/unparser/emitter"
	"github.com/naw/unparser/syntax"
	"github.com/naw/unparser/verify"
)

func Unparse(node *ast.Node) (string, error) {
	return emitter.Unparse(node)
}

// UnparseSource parses src and regenerates it. The result is not
// formatted like the input.
func UnparseSource(src []byte, opts ...syntax.ParseOption) (string, error) {
	node, err := syntax.Parse(src, opts...)
	if err != nil {
		return "", err
	}
	return emitter.Unparse(ast.Normalize(node))
}

// Verify round trips src. It returns nil when the regenerated source
// parses to an equal tree; see [verify.Check.Err] for the failure types.
func Verify(src string, opts ...verify.Option) error {
	return verify.NewCheck(verify.NewStringSource(src), opts...).Err()
}
