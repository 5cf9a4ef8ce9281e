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

// Local, instance and global variables. Sigils are part of the name.
func emitName(e *emitter, node *ast.Node, _ Parent) {
	e.write(string(node.SymbolAt(0)))
}

func emitConst(e *emitter, node *ast.Node, _ Parent) {
	if scope := node.NodeAt(0); scope != nil {
		e.visitAt(scope, Parent{Kind: ast.K_CONST, Role: RoleReceiver}, precCall)
		e.write("::")
	}
	e.write(string(node.SymbolAt(1)))
}

func emitAssignment(e *emitter, node *ast.Node, _ Parent) {
	e.write(string(node.SymbolAt(0)))
	e.write(" = ")
	e.visitAt(node.NodeAt(1), Parent{Kind: node.Kind(), Role: RoleValue}, precAssignment)
}
