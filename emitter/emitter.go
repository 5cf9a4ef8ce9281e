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

// Package emitter regenerates source text from [ast.Node] trees.
//
// Each node kind has one rule in a static registry. A rule writes its
// node into a shared output buffer, consults only the node and its
// immediate [Parent] context, and relies on the precedence ladder to
// decide where parentheses are needed. The output does not preserve the
// formatting of the original source; it only parses back into a
// structurally equal tree.
package emitter

import (
	"io"
	"strings"

	"github.com/naw/unparser/ast"
)

// Role is the position of a node within its parent.
type Role uint8

const (
	RoleNone Role = iota
	RoleBody
	RoleStatement
	RoleOperand
	RoleReceiver
	RoleArgument
	RoleCondition
	RoleValue
	RoleElement
	RoleParameter
)

var roleNames = [...]string{
	RoleNone:      "none",
	RoleBody:      "body",
	RoleStatement: "statement",
	RoleOperand:   "operand",
	RoleReceiver:  "receiver",
	RoleArgument:  "argument",
	RoleCondition: "condition",
	RoleValue:     "value",
	RoleElement:   "element",
	RoleParameter: "parameter",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// Parent describes the node enclosing the one being emitted. The zero
// value is the top level.
type Parent struct {
	Kind ast.Kind
	Role Role
}

func (p Parent) isLogical() bool {
	return p.Kind == ast.K_AND || p.Kind == ast.K_OR
}

// Unparse renders a tree as source text. A nil node renders as "".
func Unparse(node *ast.Node) (string, error) {
	var buf strings.Builder
	if err := UnparseTo(node, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func UnparseTo(node *ast.Node, w io.Writer) error {
	return EmitTo(w, node, Parent{})
}

// EmitTo renders node as it would appear inside parent. Output written
// before an error is left in w.
func EmitTo(w io.Writer, node *ast.Node, parent Parent) error {
	e := emitter{
		w:     w,
		rules: registry,
	}
	e.visit(node, parent)
	return e.err
}

type emitter struct {
	w      io.Writer
	rules  map[ast.Kind]rule
	indent int
	err    error
}

func (e *emitter) write(s string) {
	if e.err != nil {
		return
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		e.err = err
	}
}

func (e *emitter) newline() {
	e.write("\n")
	if e.indent > 0 {
		e.write(strings.Repeat("  ", e.indent))
	}
}

func (e *emitter) indented(body func()) {
	e.indent += 1
	body()
	e.indent -= 1
}

func (e *emitter) wrap(condition bool, body func()) {
	if !condition {
		body()
		return
	}
	e.write("(")
	body()
	e.write(")")
}

func (e *emitter) wrapAlways(body func()) {
	e.wrap(true, body)
}

func (e *emitter) lookup(node *ast.Node) (rule, bool) {
	if e.err != nil {
		return rule{}, false
	}
	r, ok := e.rules[node.Kind()]
	if !ok {
		e.err = &UnknownNodeKindError{kind: node.Kind()}
	}
	return r, ok
}

func (e *emitter) visit(node *ast.Node, parent Parent) {
	if node == nil {
		return
	}
	if r, ok := e.lookup(node); ok {
		r.emit(e, node, parent)
	}
}

// visitAt emits node and wraps it when it binds more loosely than minPrec.
func (e *emitter) visitAt(node *ast.Node, parent Parent, minPrec int) {
	if node == nil {
		return
	}
	r, ok := e.lookup(node)
	if !ok {
		return
	}
	e.wrap(r.precedenceOf(node, parent) < minPrec, func() {
		r.emit(e, node, parent)
	})
}

func (e *emitter) delimited(nodes []*ast.Node, parent Parent, minPrec int) {
	for ii, node := range nodes {
		if ii != 0 {
			e.write(", ")
		}
		e.visitAt(node, parent, minPrec)
	}
}

// body emits an indented statement block on its own lines. The caller
// writes the closing keyword.
func (e *emitter) body(node *ast.Node, kind ast.Kind) {
	if node == nil {
		return
	}
	e.indented(func() {
		e.newline()
		e.visitAt(node, Parent{Kind: kind, Role: RoleBody}, precStatement)
	})
}
