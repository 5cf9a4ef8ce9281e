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

func emitLogical(operator string, prec int) func(*emitter, *ast.Node, Parent) {
	return func(e *emitter, node *ast.Node, _ Parent) {
		operand := Parent{Kind: node.Kind(), Role: RoleOperand}
		e.visitAt(node.NodeAt(0), operand, prec)
		e.write(" " + operator + " ")
		e.visitAt(node.NodeAt(1), operand, prec+1)
	}
}

// emitBegin writes a statement sequence one per line where a body is
// expected, and as a parenthesized group everywhere else.
func emitBegin(e *emitter, node *ast.Node, parent Parent) {
	stmts := node.NodesFrom(0)
	inner := Parent{Kind: ast.K_BEGIN, Role: RoleStatement}
	if len(stmts) == 0 {
		e.write("()")
		return
	}
	if len(stmts) > 1 && (parent.Role == RoleNone || parent.Role == RoleBody) {
		for ii, stmt := range stmts {
			if ii != 0 {
				e.newline()
			}
			e.visitAt(stmt, inner, precStatement)
		}
		return
	}
	e.wrapAlways(func() {
		for ii, stmt := range stmts {
			if ii != 0 {
				e.write("; ")
			}
			e.visitAt(stmt, inner, precStatement)
		}
	})
}

func emitIf(e *emitter, node *ast.Node, _ Parent) {
	e.write("if ")
	e.ifTail(node)
}

// ifTail writes everything after the `if`/`elsif` keyword. An else branch
// that is itself a conditional is folded into an elsif chain.
func (e *emitter) ifTail(node *ast.Node) {
	e.visitAt(node.NodeAt(0), Parent{Kind: ast.K_IF, Role: RoleCondition}, precStatement)
	e.body(node.NodeAt(1), ast.K_IF)
	otherwise := node.NodeAt(2)
	switch {
	case otherwise == nil:
	case otherwise.Kind() == ast.K_IF:
		e.newline()
		e.write("elsif ")
		e.ifTail(otherwise)
		return
	default:
		e.newline()
		e.write("else")
		e.body(otherwise, ast.K_IF)
	}
	e.newline()
	e.write("end")
}

func emitLoop(keyword string) func(*emitter, *ast.Node, Parent) {
	return func(e *emitter, node *ast.Node, _ Parent) {
		cond := node.NodeAt(0)
		e.write(keyword + " ")
		// A `do` in the condition would be taken as the loop's own.
		e.wrap(containsKind(cond, ast.K_BLOCK), func() {
			e.visitAt(cond, Parent{Kind: node.Kind(), Role: RoleCondition}, precStatement)
		})
		e.body(node.NodeAt(1), node.Kind())
		e.newline()
		e.write("end")
	}
}

func containsKind(node *ast.Node, kind ast.Kind) bool {
	found := false
	ast.Walk(node, func(n *ast.Node) bool {
		if n.Kind() == kind {
			found = true
		}
		return !found
	})
	return found
}
