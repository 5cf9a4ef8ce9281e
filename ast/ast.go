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

// Package ast defines the syntax tree shared by the parser, the emitter and
// the round-trip verifier.
//
// A [Node] is an immutable value: a [Kind] tag plus an ordered list of
// children. Children are either nested nodes (a nil *Node marks an absent
// optional child) or literal values of type [Symbol], string, int64 or
// float64. Nodes produced by the parser also carry a [Span]; spans take
// part in [Equal], so trees must pass through [Normalize] before they are
// compared.
package ast

import (
	"fmt"
	"iter"
	"slices"
)

type Span struct {
	start, len uint32
}

func NewSpan(start, len uint32) Span {
	return Span{start, len}
}

func (s Span) Start() uint32 {
	return s.start
}

func (s Span) End() uint32 {
	return s.start + s.len
}

func (s Span) Len() uint32 {
	return s.len
}

// Symbol is an interned name: method names, variable names, symbol literals.
type Symbol string

type Node struct {
	kind     Kind
	children []any
	span     Span
	hasSpan  bool
}

// New constructs a node. Children must be *Node, nil, Symbol, string,
// int64 (int is accepted and widened) or float64.
func New(kind Kind, children ...any) *Node {
	owned := make([]any, len(children))
	for ii, child := range children {
		switch child := child.(type) {
		case nil:
			owned[ii] = (*Node)(nil)
		case *Node, Symbol, string, int64, float64:
			owned[ii] = child
		case int:
			owned[ii] = int64(child)
		default:
			panic(fmt.Sprintf("ast.New(%s): unsupported child %v (%T)", kind, child, child))
		}
	}
	return &Node{
		kind:     kind,
		children: owned,
	}
}

// WithSpan returns a copy of n that records its location in the source.
func (n *Node) WithSpan(span Span) *Node {
	return &Node{
		kind:     n.kind,
		children: n.children,
		span:     span,
		hasSpan:  true,
	}
}

func (n *Node) Kind() Kind {
	return n.kind
}

func (n *Node) Span() (Span, bool) {
	return n.span, n.hasSpan
}

func (n *Node) Len() int {
	return len(n.children)
}

func (n *Node) Child(index int) any {
	return n.children[index]
}

// Children returns a copy of the node's children.
func (n *Node) Children() []any {
	return slices.Clone(n.children)
}

// NodeAt returns child index as a node, or nil when the child is absent or
// is a literal.
func (n *Node) NodeAt(index int) *Node {
	if index >= len(n.children) {
		return nil
	}
	child, _ := n.children[index].(*Node)
	return child
}

func (n *Node) SymbolAt(index int) Symbol {
	if index >= len(n.children) {
		return ""
	}
	sym, _ := n.children[index].(Symbol)
	return sym
}

// NodesFrom returns the node children starting at index.
func (n *Node) NodesFrom(index int) []*Node {
	if index >= len(n.children) {
		return nil
	}
	out := make([]*Node, 0, len(n.children)-index)
	for _, child := range n.children[index:] {
		node, _ := child.(*Node)
		out = append(out, node)
	}
	return out
}

// ChildNodes yields the non-nil node children in order.
func (n *Node) ChildNodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, child := range n.children {
			if node, ok := child.(*Node); ok && node != nil {
				if !yield(node) {
					return
				}
			}
		}
	}
}

func (n *Node) String() string {
	return Dump(n)
}

func Walk(node *Node, walkFn func(*Node) bool) {
	if node == nil || !walkFn(node) {
		return
	}
	for child := range node.ChildNodes() {
		Walk(child, walkFn)
	}
}
