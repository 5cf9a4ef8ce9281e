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

package syntax

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/naw/unparser/ast"
)

type Error struct {
	code    uint32
	message string
	span    ast.Span
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

func (err *Error) Span() ast.Span {
	return err.span
}

func clampLen(n int) uint32 {
	if uint64(n) < math.MaxUint32 {
		return uint32(n)
	}
	return math.MaxUint32
}

func errSourceTooLong(srcLen int) error {
	return &Error{
		code: 1000,
		message: fmt.Sprintf(
			"Source size (%d bytes) exceeds maximum (%d bytes)",
			srcLen, maxSrcLen,
		),
		span: ast.NewSpan(0, clampLen(srcLen)),
	}
}

func errInvalidUtf8(src []byte) error {
	var off uint32
	for len(src) > 0 {
		r, size := utf8.DecodeRune(src)
		if r == utf8.RuneError && size == 1 {
			break
		}
		off += uint32(size)
		src = src[size:]
	}
	return &Error{
		code:    1001,
		message: "Source contains invalid UTF-8",
		span:    ast.NewSpan(off, 1),
	}
}

func errUnexpectedCharacter(start uint32, r rune) error {
	return &Error{
		code:    1002,
		message: fmt.Sprintf("Unexpected character '%s' (U+%04X)", string(r), r),
		span:    ast.NewSpan(start, uint32(utf8.RuneLen(r))),
	}
}

func errForbiddenControlCharacter(start uint32, c byte) error {
	return &Error{
		code:    1003,
		message: fmt.Sprintf("Forbidden control character U+%04X", c),
		span:    ast.NewSpan(start, 1),
	}
}

func errTokenTooLong(start uint32, tokenLen int) error {
	return &Error{
		code: 1004,
		message: fmt.Sprintf(
			"Token size (%d bytes) exceeds maximum (%d bytes)",
			tokenLen, maxTokenLen,
		),
		span: ast.NewSpan(start, clampLen(tokenLen)),
	}
}

func errNumLitInvalid(start uint32, token []byte) error {
	return &Error{
		code:    1005,
		message: fmt.Sprintf("Invalid numeric literal %q", token),
		span:    ast.NewSpan(start, clampLen(len(token))),
	}
}

func errTextLitUnterminated(start, tokenLen uint32) error {
	return &Error{
		code:    1006,
		message: "Unterminated text literal",
		span:    ast.NewSpan(start, tokenLen),
	}
}

func errTextLitContainsNewline(start, newlineLen uint32) error {
	return &Error{
		code:    1007,
		message: "Text literal contains unescaped newline",
		span:    ast.NewSpan(start, newlineLen),
	}
}

func errUnexpectedToken(want string, gotKind TokenKind, gotToken string, span ast.Span) error {
	return &Error{
		code:    2000,
		message: fmt.Sprintf("Expected %s, got (%s %q)", want, gotKind, gotToken),
		span:    span,
	}
}

func errExpectedExpression(gotKind TokenKind, gotToken string, span ast.Span) error {
	return &Error{
		code:    2001,
		message: fmt.Sprintf("Expected expression, got (%s %q)", gotKind, gotToken),
		span:    span,
	}
}

func errExpectedStatementEnd(gotKind TokenKind, gotToken string, span ast.Span) error {
	return &Error{
		code:    2002,
		message: fmt.Sprintf("Expected newline or ';' after statement, got (%s %q)", gotKind, gotToken),
		span:    span,
	}
}

func errInvalidAssignment(target string, span ast.Span) error {
	return &Error{
		code:    2003,
		message: fmt.Sprintf("Cannot assign to %q", target),
		span:    span,
	}
}

func errUnexpectedKeyword(keyword string, span ast.Span) error {
	return &Error{
		code:    2004,
		message: fmt.Sprintf("Unexpected keyword '%s'", keyword),
		span:    span,
	}
}

func errNestingTooDeep(maxDepth int, span ast.Span) error {
	return &Error{
		code:    2005,
		message: fmt.Sprintf("Expression nesting exceeds maximum depth (%d)", maxDepth),
		span:    span,
	}
}

func errBlockWithoutCall(span ast.Span) error {
	return &Error{
		code:    2006,
		message: "Block must follow a method call",
		span:    span,
	}
}

func errLabelOutsideHash(token string, span ast.Span) error {
	return &Error{
		code:    2007,
		message: fmt.Sprintf("Label %q is only valid as a hash key", token),
		span:    span,
	}
}

func errIntLitOutOfRange(token string, span ast.Span) error {
	return &Error{
		code: 2008,
		message: fmt.Sprintf(
			"Integer literal %s out of range (must be within [%d, %d])",
			token, int64(math.MinInt64), int64(math.MaxInt64),
		),
		span: span,
	}
}

func errFloatLitInvalid(token string, span ast.Span) error {
	return &Error{
		code:    2009,
		message: fmt.Sprintf("Invalid float literal %s", token),
		span:    span,
	}
}

func errTextLitInvalid(token string, span ast.Span) error {
	return &Error{
		code:    2010,
		message: fmt.Sprintf("Invalid text literal %s", token),
		span:    span,
	}
}

func errDuplicateParameter(name string, span ast.Span) error {
	return &Error{
		code:    2011,
		message: fmt.Sprintf("Duplicate parameter name %q", name),
		span:    span,
	}
}
