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

package ast

import (
	"math"
)

// Equal reports whether two trees are structurally identical: same kinds,
// same spans and pairwise equal children.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind || a.hasSpan != b.hasSpan || a.span != b.span {
		return false
	}
	if len(a.children) != len(b.children) {
		return false
	}
	for ii := range a.children {
		if !equalChild(a.children[ii], b.children[ii]) {
			return false
		}
	}
	return true
}

func equalChild(a, b any) bool {
	switch a := a.(type) {
	case *Node:
		b, ok := b.(*Node)
		return ok && Equal(a, b)
	case float64:
		b, ok := b.(float64)
		return ok && math.Float64bits(a) == math.Float64bits(b)
	default:
		return a == b
	}
}

// Normalize returns a copy of the tree with all spans removed. It is
// idempotent.
func Normalize(node *Node) *Node {
	if node == nil {
		return nil
	}
	children := make([]any, len(node.children))
	for ii, child := range node.children {
		if child, ok := child.(*Node); ok {
			children[ii] = Normalize(child)
			continue
		}
		children[ii] = child
	}
	return &Node{
		kind:     node.kind,
		children: children,
	}
}
