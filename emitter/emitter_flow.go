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

package emitter

import (
	"github.com/naw/unparser/ast"
)

// emitFlow renders return/break/next. Each argument is parenthesized on
// its own so it can never extend the keyword's grammar:
//
//	return
//	return (a)
//	return (a), (b)
//
// Under `||` or `&&` a keyword with arguments is wrapped once more, since
// the logical operator binds tighter than the argument list.
func emitFlow(keyword string) func(*emitter, *ast.Node, Parent) {
	return func(e *emitter, node *ast.Node, parent Parent) {
		args := node.NodesFrom(0)
		if len(args) == 0 {
			e.write(keyword)
			return
		}
		e.wrap(parent.isLogical(), func() {
			e.write(keyword)
			e.write(" ")
			inner := Parent{Kind: node.Kind(), Role: RoleArgument}
			for ii, arg := range args {
				if ii != 0 {
					e.write(", ")
				}
				e.wrapAlways(func() {
					e.visit(arg, inner)
				})
			}
		})
	}
}

// Logical operators leave control flow operands alone; emitFlow decides.
func flowPrecedence(_ *ast.Node, parent Parent) int {
	if parent.isLogical() {
		return precPrimary
	}
	return precStatement
}
