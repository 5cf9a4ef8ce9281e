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

package verify

import (
	"strings"

	"github.com/naw/unparser/ast"
)

func (c *Check) buildReport() (string, error) {
	state, err := c.State()
	if err != nil {
		return "", err
	}
	original, _ := c.originalAST()
	src, err := c.source.OriginalSource()
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	switch state {
	case StateOriginalParseFailed:
		buf.WriteString("Parsing of original source failed:\n")
		writeLine(&buf, src)
		writeLine(&buf, original.err.Error())
	case StateGeneratedParseFailed:
		generated, _ := c.generatedAST()
		generatedSrc, _ := c.generatedSource()
		buf.WriteString("Parsing of generated source failed:\n")
		buf.WriteString("Original-AST:\n")
		writeLine(&buf, ast.Dump(original.node))
		buf.WriteString("Source:\n")
		writeLine(&buf, generatedSrc)
		writeLine(&buf, generated.err.Error())
	case StateMismatch:
		generated, _ := c.generatedAST()
		generatedSrc, _ := c.generatedSource()
		writeLine(&buf, c.astDiff())
		buf.WriteString("Original-Source:\n")
		writeLine(&buf, src)
		buf.WriteString("Original-AST:\n")
		writeLine(&buf, ast.Dump(original.node))
		buf.WriteString("Generated-Source:\n")
		writeLine(&buf, generatedSrc)
		buf.WriteString("Generated-AST:\n")
		writeLine(&buf, ast.Dump(generated.node))
	}
	return buf.String(), nil
}

// writeLine writes s followed by a newline unless s already ends in one.
func writeLine(buf *strings.Builder, s string) {
	buf.WriteString(s)
	if !strings.HasSuffix(s, "\n") {
		buf.WriteByte('\n')
	}
}
