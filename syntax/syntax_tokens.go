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
)

const (
	maxSrcLen   = 0x7FFFFFFF // (2**31)-1
	maxTokenLen = int(math.MaxUint16)
)

type Token struct {
	Len  uint16
	Kind TokenKind
}

type TokenKind uint8

const (
	T_EOF TokenKind = iota

	T_SPACE
	T_NEWLINE
	T_COMMENT
	T_SEMICOLON

	T_COMMA
	T_DOT
	T_COLON2
	T_EQ
	T_FAT_ARROW
	T_PIPE

	T_EQ_EQ
	T_BANG_EQ
	T_LT
	T_LT_EQ
	T_GT
	T_GT_EQ
	T_AND_AND
	T_OR_OR
	T_BANG

	T_PLUS
	T_MINUS
	T_STAR
	T_SLASH
	T_PERCENT

	T_OPEN_CURL
	T_CLOSE_CURL
	T_OPEN_PAREN
	T_CLOSE_PAREN
	T_OPEN_SQUARE
	T_CLOSE_SQUARE

	T_INT_LIT
	T_FLOAT_LIT
	T_TEXT_LIT
	T_SYMBOL

	T_IDENT
	T_CONST
	T_IVAR
	T_GVAR
	T_LABEL
)

var tokenKindNames = [...]string{
	T_EOF:          "EOF",
	T_SPACE:        "SPACE",
	T_NEWLINE:      "NEWLINE",
	T_COMMENT:      "COMMENT",
	T_SEMICOLON:    "SEMICOLON",
	T_COMMA:        "COMMA",
	T_DOT:          "DOT",
	T_COLON2:       "COLON2",
	T_EQ:           "EQ",
	T_FAT_ARROW:    "FAT_ARROW",
	T_PIPE:         "PIPE",
	T_EQ_EQ:        "EQ_EQ",
	T_BANG_EQ:      "BANG_EQ",
	T_LT:           "LT",
	T_LT_EQ:        "LT_EQ",
	T_GT:           "GT",
	T_GT_EQ:        "GT_EQ",
	T_AND_AND:      "AND_AND",
	T_OR_OR:        "OR_OR",
	T_BANG:         "BANG",
	T_PLUS:         "PLUS",
	T_MINUS:        "MINUS",
	T_STAR:         "STAR",
	T_SLASH:        "SLASH",
	T_PERCENT:      "PERCENT",
	T_OPEN_CURL:    "OPEN_CURL",
	T_CLOSE_CURL:   "CLOSE_CURL",
	T_OPEN_PAREN:   "OPEN_PAREN",
	T_CLOSE_PAREN:  "CLOSE_PAREN",
	T_OPEN_SQUARE:  "OPEN_SQUARE",
	T_CLOSE_SQUARE: "CLOSE_SQUARE",
	T_INT_LIT:      "INT_LIT",
	T_FLOAT_LIT:    "FLOAT_LIT",
	T_TEXT_LIT:     "TEXT_LIT",
	T_SYMBOL:       "SYMBOL",
	T_IDENT:        "IDENT",
	T_CONST:        "CONST",
	T_IVAR:         "IVAR",
	T_GVAR:         "GVAR",
	T_LABEL:        "LABEL",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", uint8(k))
}

type Tokens struct {
	src    []byte
	offset uint32
}

func NewTokens(src []byte) (*Tokens, error) {
	if len(src) > maxSrcLen {
		return nil, errSourceTooLong(len(src))
	}
	if !utf8.Valid(src) {
		return nil, errInvalidUtf8(src)
	}
	return &Tokens{
		src: src,
	}, nil
}

// Offset is the position of the next token in the source.
func (t *Tokens) Offset() uint32 {
	return t.offset
}

func (t *Tokens) Next(token *Token) error {
	if len(t.src) == 0 {
		*token = Token{
			Kind: T_EOF,
		}
		return nil
	}

	c := t.src[0]
	var kind TokenKind
	switch c {
	case '\t', ' ':
		return t.nextSpace(token)
	case '\n':
		kind = T_NEWLINE
		goto len1
	case ';':
		kind = T_SEMICOLON
		goto len1
	case ',':
		kind = T_COMMA
		goto len1
	case '.':
		kind = T_DOT
		goto len1
	case '+':
		kind = T_PLUS
		goto len1
	case '-':
		kind = T_MINUS
		goto len1
	case '*':
		kind = T_STAR
		goto len1
	case '/':
		kind = T_SLASH
		goto len1
	case '%':
		kind = T_PERCENT
		goto len1
	case '{':
		kind = T_OPEN_CURL
		goto len1
	case '}':
		kind = T_CLOSE_CURL
		goto len1
	case '(':
		kind = T_OPEN_PAREN
		goto len1
	case ')':
		kind = T_CLOSE_PAREN
		goto len1
	case '[':
		kind = T_OPEN_SQUARE
		goto len1
	case ']':
		kind = T_CLOSE_SQUARE
		goto len1
	case '=':
		switch t.peekByte(1) {
		case '=':
			kind = T_EQ_EQ
			goto len2
		case '>':
			kind = T_FAT_ARROW
			goto len2
		}
		kind = T_EQ
		goto len1
	case '!':
		if t.peekByte(1) == '=' {
			kind = T_BANG_EQ
			goto len2
		}
		kind = T_BANG
		goto len1
	case '<':
		if t.peekByte(1) == '=' {
			kind = T_LT_EQ
			goto len2
		}
		kind = T_LT
		goto len1
	case '>':
		if t.peekByte(1) == '=' {
			kind = T_GT_EQ
			goto len2
		}
		kind = T_GT
		goto len1
	case '&':
		if t.peekByte(1) == '&' {
			kind = T_AND_AND
			goto len2
		}
		return errUnexpectedCharacter(t.offset, '&')
	case '|':
		if t.peekByte(1) == '|' {
			kind = T_OR_OR
			goto len2
		}
		kind = T_PIPE
		goto len1
	case ':':
		switch next := t.peekByte(1); {
		case next == ':':
			kind = T_COLON2
			goto len2
		case next == '"':
			return t.nextQuotedSymbol(token)
		case isIdentStart(next):
			return t.nextSymbol(token)
		}
		return errUnexpectedCharacter(t.offset, ':')
	case '#':
		return t.nextComment(token)
	case '"', '\'':
		return t.nextTextLit(token, T_TEXT_LIT, 0)
	case '@':
		return t.nextSigilIdent(token, T_IVAR)
	case '$':
		return t.nextSigilIdent(token, T_GVAR)
	case '\r':
		if len(t.src) < 2 || t.src[1] != '\n' {
			return errForbiddenControlCharacter(t.offset, c)
		}
		kind = T_NEWLINE
		goto len2
	default:
		goto big
	}

len1:
	return t.emit(token, kind, 1)

len2:
	return t.emit(token, kind, 2)

big:
	if c >= '0' && c <= '9' {
		return t.nextNumLit(token)
	}

	if isIdentStart(c) {
		return t.nextIdent(token)
	}

	r, _ := utf8.DecodeRune(t.src)
	if r < 0x20 || r == 0x7F {
		return errForbiddenControlCharacter(t.offset, c)
	}
	return errUnexpectedCharacter(t.offset, r)
}

func (t *Tokens) peekByte(index int) byte {
	if index < len(t.src) {
		return t.src[index]
	}
	return 0
}

func (t *Tokens) emit(token *Token, kind TokenKind, tokenLen int) error {
	checkedLen, err := t.checkTokenLen(tokenLen)
	if err != nil {
		return err
	}
	*token = Token{
		Kind: kind,
		Len:  checkedLen,
	}
	t.offset += uint32(checkedLen)
	t.src = t.src[checkedLen:]
	return nil
}

func (t *Tokens) checkTokenLen(tokenLen int) (uint16, error) {
	if tokenLen > maxTokenLen {
		return 0, errTokenTooLong(t.offset, tokenLen)
	}
	return uint16(tokenLen), nil
}

func (t *Tokens) nextSpace(token *Token) error {
	n := 0
	for n < len(t.src) && (t.src[n] == ' ' || t.src[n] == '\t') {
		n++
	}
	return t.emit(token, T_SPACE, n)
}

func (t *Tokens) nextComment(token *Token) error {
	n := len(t.src)
	for ii, c := range t.src {
		if c == '\n' || c == '\r' {
			n = ii
			break
		}
	}
	return t.emit(token, T_COMMENT, n)
}

func (t *Tokens) nextNumLit(token *Token) error {
	n := scanDigits(t.src, 0)
	kind := T_INT_LIT
	if n+1 < len(t.src) && t.src[n] == '.' && isDigit(t.src[n+1]) {
		kind = T_FLOAT_LIT
		n = scanDigits(t.src, n+1)
	}
	if n < len(t.src) && (t.src[n] == 'e' || t.src[n] == 'E') {
		exp := n + 1
		if exp < len(t.src) && (t.src[exp] == '+' || t.src[exp] == '-') {
			exp++
		}
		if exp < len(t.src) && isDigit(t.src[exp]) {
			kind = T_FLOAT_LIT
			n = scanDigits(t.src, exp)
		}
	}
	if n < len(t.src) && isIdentContinue(t.src[n]) {
		end := n
		for end < len(t.src) && isIdentContinue(t.src[end]) {
			end++
		}
		return errNumLitInvalid(t.offset, t.src[:end])
	}
	if kind == T_INT_LIT && n > 1 && t.src[0] == '0' {
		return errNumLitInvalid(t.offset, t.src[:n])
	}
	return t.emit(token, kind, n)
}

func (t *Tokens) nextIdent(token *Token) error {
	n := 1
	for n < len(t.src) && isIdentContinue(t.src[n]) {
		n++
	}
	kind := T_IDENT
	if t.src[0] >= 'A' && t.src[0] <= 'Z' {
		kind = T_CONST
	}
	if n < len(t.src) && (t.src[n] == '?' || t.src[n] == '!') {
		if n+1 >= len(t.src) || t.src[n+1] != '=' {
			n++
		}
	}
	if n < len(t.src) && t.src[n] == ':' {
		if n+1 >= len(t.src) || t.src[n+1] != ':' {
			return t.emit(token, T_LABEL, n+1)
		}
	}
	return t.emit(token, kind, n)
}

func (t *Tokens) nextSigilIdent(token *Token, kind TokenKind) error {
	if len(t.src) < 2 || !isIdentStart(t.src[1]) {
		return errUnexpectedCharacter(t.offset, rune(t.src[0]))
	}
	n := 2
	for n < len(t.src) && isIdentContinue(t.src[n]) {
		n++
	}
	return t.emit(token, kind, n)
}

func (t *Tokens) nextSymbol(token *Token) error {
	n := 2
	for n < len(t.src) && isIdentContinue(t.src[n]) {
		n++
	}
	if n < len(t.src) && (t.src[n] == '?' || t.src[n] == '!') {
		if n+1 >= len(t.src) || t.src[n+1] != '=' {
			n++
		}
	}
	return t.emit(token, T_SYMBOL, n)
}

func (t *Tokens) nextQuotedSymbol(token *Token) error {
	return t.nextTextLit(token, T_SYMBOL, 1)
}

// nextTextLit scans a quoted literal starting at src[prefix]. Escapes are
// validated later, when the parser decodes the literal.
func (t *Tokens) nextTextLit(token *Token, kind TokenKind, prefix int) error {
	quote := t.src[prefix]
	for ii := prefix + 1; ii < len(t.src); ii++ {
		switch c := t.src[ii]; c {
		case '\\':
			ii++
		case '\n', '\r':
			return errTextLitContainsNewline(t.offset+uint32(ii), 1)
		case quote:
			return t.emit(token, kind, ii+1)
		}
	}
	return errTextLitUnterminated(t.offset, uint32(len(t.src)))
}

func scanDigits(src []byte, n int) int {
	for n < len(src) && isDigit(src[n]) {
		n++
	}
	return n
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentContinue(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
