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

func emitDef(e *emitter, node *ast.Node, _ Parent) {
	e.write("def " + string(node.SymbolAt(0)))
	e.visit(node.NodeAt(1), Parent{Kind: ast.K_DEF, Role: RoleParameter})
	e.body(node.NodeAt(2), ast.K_DEF)
	e.newline()
	e.write("end")
}

func emitBlock(e *emitter, node *ast.Node, _ Parent) {
	e.visitAt(node.NodeAt(0), Parent{Kind: ast.K_BLOCK, Role: RoleReceiver}, precCall)
	e.write(" do")
	if params := node.NodeAt(1); params != nil && params.Len() > 0 {
		e.write(" ")
		e.visit(params, Parent{Kind: ast.K_BLOCK, Role: RoleParameter})
	}
	e.body(node.NodeAt(2), ast.K_BLOCK)
	e.newline()
	e.write("end")
}

// emitArgs writes a parameter list: parenthesized for methods, between
// pipes for blocks, nothing when empty.
func emitArgs(e *emitter, node *ast.Node, parent Parent) {
	params := node.NodesFrom(0)
	if len(params) == 0 {
		return
	}
	open, close := "(", ")"
	if parent.Kind == ast.K_BLOCK {
		open, close = "|", "|"
	}
	e.write(open)
	e.delimited(params, Parent{Kind: ast.K_ARGS, Role: RoleParameter}, precStatement)
	e.write(close)
}

func emitArg(e *emitter, node *ast.Node, _ Parent) {
	e.write(string(node.SymbolAt(0)))
}

func emitOptarg(e *emitter, node *ast.Node, _ Parent) {
	e.write(string(node.SymbolAt(0)) + " = ")
	e.visitAt(node.NodeAt(1), Parent{Kind: ast.K_OPTARG, Role: RoleValue}, precAssignment)
}
