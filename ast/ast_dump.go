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
	"strconv"
	"strings"
)

// Dump renders a tree as an indented s-expression, one node per line:
//
//	(send
//	  (lvar :a) :+
//	  (int 1))
//
// Spans are not rendered.
func Dump(node *Node) string {
	if node == nil {
		return "nil"
	}
	var buf strings.Builder
	dumpTo(&buf, node, 0)
	return buf.String()
}

func dumpTo(buf *strings.Builder, node *Node, indent int) {
	buf.WriteString(strings.Repeat("  ", indent))
	buf.WriteByte('(')
	buf.WriteString(node.kind.String())
	for _, child := range node.children {
		if child, ok := child.(*Node); ok && child != nil {
			buf.WriteByte('\n')
			dumpTo(buf, child, indent+1)
			continue
		}
		buf.WriteByte(' ')
		buf.WriteString(inspectLiteral(child))
	}
	buf.WriteByte(')')
}

func inspectLiteral(value any) string {
	switch value := value.(type) {
	case *Node:
		return "nil"
	case Symbol:
		if isPlainName(string(value)) {
			return ":" + string(value)
		}
		return ":" + strconv.Quote(string(value))
	case string:
		return strconv.Quote(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		s := strconv.FormatFloat(value, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eIN") {
			s += ".0"
		}
		return s
	}
	return "?"
}

var operatorNames = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "**": true,
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
	"<=>": true, "!": true, "-@": true, "+@": true, "[]": true, "[]=": true,
}

func isPlainName(name string) bool {
	if operatorNames[name] {
		return true
	}
	name = strings.TrimPrefix(name, "@")
	name = strings.TrimPrefix(name, "$")
	if name == "" {
		return false
	}
	for ii, c := range name {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && ii > 0:
		case (c == '?' || c == '!' || c == '=') && ii == len(name)-1 && ii > 0:
		default:
			return false
		}
	}
	return true
}
