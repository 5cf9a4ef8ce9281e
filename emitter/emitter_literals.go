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
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/naw/unparser/ast"
)

func emitInt(e *emitter, node *ast.Node, _ Parent) {
	value, _ := node.Child(0).(int64)
	e.write(strconv.FormatInt(value, 10))
}

func emitFloat(e *emitter, node *ast.Node, _ Parent) {
	value, _ := node.Child(0).(float64)
	e.write(formatFloat(value))
}

func formatFloat(value float64) string {
	switch {
	case math.IsNaN(value):
		return "Float::NAN"
	case math.IsInf(value, 1):
		return "Float::INFINITY"
	case math.IsInf(value, -1):
		return "-Float::INFINITY"
	}
	s := strconv.FormatFloat(value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func emitStr(e *emitter, node *ast.Node, _ Parent) {
	value, _ := node.Child(0).(string)
	e.write(quoteText(value))
}

func emitSym(e *emitter, node *ast.Node, _ Parent) {
	name := string(node.SymbolAt(0))
	if isPlainSymbol(name) {
		e.write(":" + name)
		return
	}
	e.write(":" + quote(name))
}

func emitKeyword(keyword string) func(*emitter, *ast.Node, Parent) {
	return func(e *emitter, _ *ast.Node, _ Parent) {
		e.write(keyword)
	}
}

// isPlainSymbol reports whether name can follow a bare ':'.
func isPlainSymbol(name string) bool {
	if name == "" || !isIdentStart(name[0]) {
		return false
	}
	for ii := 1; ii < len(name); ii++ {
		c := name[ii]
		if isIdentStart(c) || (c >= '0' && c <= '9') {
			continue
		}
		return ii == len(name)-1 && (c == '?' || c == '!')
	}
	return true
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// quoteText picks the shorter of the double- and single-quoted forms,
// preferring double quotes on a tie.
func quoteText(s string) string {
	double := quote(s)
	if single, ok := quoteSingle(s); ok && len(single) < len(double) {
		return single
	}
	return double
}

// quoteSingle escapes only backslash and single quote. It refuses invalid
// UTF-8 and any control byte but tab.
func quoteSingle(s string) (string, bool) {
	if !utf8.ValidString(s) {
		return "", false
	}
	var buf strings.Builder
	buf.Grow(len(s) + 2)
	buf.WriteByte('\'')
	for ii := 0; ii < len(s); ii++ {
		c := s[ii]
		switch {
		case c == '\\' || c == '\'':
			buf.WriteByte('\\')
		case c == '\t':
		case c < 0x20 || c == 0x7F:
			return "", false
		}
		buf.WriteByte(c)
	}
	buf.WriteByte('\'')
	return buf.String(), true
}

func quote(s string) string {
	var buf strings.Builder
	buf.WriteByte('"')
	for ii := 0; ii < len(s); {
		c := s[ii]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[ii:])
			if r == utf8.RuneError && size == 1 {
				fmt.Fprintf(&buf, "\\x%02X", c)
			} else {
				buf.WriteString(s[ii : ii+size])
			}
			ii += size
			continue
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\t':
			buf.WriteString(`\t`)
		case '\r':
			buf.WriteString(`\r`)
		case 0x1B:
			buf.WriteString(`\e`)
		case '#':
			// Keeps "#{", "#@" and "#$" from reading as interpolation.
			if ii+1 < len(s) && (s[ii+1] == '{' || s[ii+1] == '@' || s[ii+1] == '$') {
				buf.WriteString(`\#`)
			} else {
				buf.WriteByte(c)
			}
		default:
			if c < 0x20 || c == 0x7F {
				fmt.Fprintf(&buf, "\\x%02X", c)
			} else {
				buf.WriteByte(c)
			}
		}
		ii++
	}
	buf.WriteByte('"')
	return buf.String()
}
