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

func emitArray(e *emitter, node *ast.Node, _ Parent) {
	e.write("[")
	e.delimited(node.NodesFrom(0), Parent{Kind: ast.K_ARRAY, Role: RoleElement}, precAssignment)
	e.write("]")
}

func emitHash(e *emitter, node *ast.Node, _ Parent) {
	pairs := node.NodesFrom(0)
	if len(pairs) == 0 {
		e.write("{}")
		return
	}
	e.write("{")
	e.delimited(pairs, Parent{Kind: ast.K_HASH, Role: RoleElement}, precStatement)
	e.write("}")
}

func emitPair(e *emitter, node *ast.Node, _ Parent) {
	inner := Parent{Kind: ast.K_PAIR, Role: RoleValue}
	e.visitAt(node.NodeAt(0), inner, precAssignment)
	e.write(" => ")
	e.visitAt(node.NodeAt(1), inner, precAssignment)
}
