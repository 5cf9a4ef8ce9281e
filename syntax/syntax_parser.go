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
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/naw/unparser/ast"
)

const (
	precNone = iota
	precStatement
	precAssignment
	precOr
	precAnd
	precEquality
	precComparison
	precAdditive
	precMultiplicative
	precUnary
	precCall
)

var keywords = map[string]bool{
	"alias":  true,
	"and":    true,
	"begin":  true,
	"break":  true,
	"case":   true,
	"class":  true,
	"def":    true,
	"do":     true,
	"else":   true,
	"elsif":  true,
	"end":    true,
	"ensure": true,
	"false":  true,
	"for":    true,
	"if":     true,
	"in":     true,
	"module": true,
	"next":   true,
	"nil":    true,
	"not":    true,
	"or":     true,
	"redo":   true,
	"rescue": true,
	"retry":  true,
	"return": true,
	"self":   true,
	"super":  true,
	"then":   true,
	"true":   true,
	"undef":  true,
	"unless": true,
	"until":  true,
	"when":   true,
	"while":  true,
	"yield":  true,
}

type bailout struct {
	err error
}

type scope struct {
	locals  map[ast.Symbol]struct{}
	inherit bool
}

type parser struct {
	opts    *ParseOptions
	src     []byte
	tokens  []lexeme
	pos     int
	lastEnd uint32
	scopes  []*scope
	depth   int

	// Set while parsing a loop condition, where `do` belongs to the loop.
	noDo bool
}

func (p *parser) fail(err error) {
	panic(bailout{err})
}

func (p *parser) peek() lexeme {
	return p.tokens[p.pos]
}

func (p *parser) advance() lexeme {
	tok := p.tokens[p.pos]
	if tok.kind != T_EOF {
		p.pos++
	}
	p.lastEnd = tok.end
	return tok
}

func (p *parser) text(tok lexeme) string {
	return string(p.src[tok.start:tok.end])
}

func (p *parser) tokenSpan(tok lexeme) ast.Span {
	return ast.NewSpan(tok.start, tok.end-tok.start)
}

// adjacent reports whether the next token directly follows the previous
// one, with no whitespace between them.
func (p *parser) adjacent() bool {
	return p.pos > 0 && p.tokens[p.pos-1].end == p.tokens[p.pos].start
}

func (p *parser) isKeyword(tok lexeme, keyword string) bool {
	return tok.kind == T_IDENT && p.text(tok) == keyword
}

func (p *parser) unexpected(tok lexeme, want string) error {
	text := p.text(tok)
	if tok.kind == T_IDENT && keywords[text] {
		return errUnexpectedKeyword(text, p.tokenSpan(tok))
	}
	return errUnexpectedToken(want, tok.kind, text, p.tokenSpan(tok))
}

func (p *parser) expect(kind TokenKind, want string) lexeme {
	tok := p.peek()
	if tok.kind != kind {
		p.fail(p.unexpected(tok, want))
	}
	return p.advance()
}

func (p *parser) expectKeyword(keyword string) lexeme {
	tok := p.peek()
	if !p.isKeyword(tok, keyword) {
		p.fail(errUnexpectedToken("'"+keyword+"'", tok.kind, p.text(tok), p.tokenSpan(tok)))
	}
	return p.advance()
}

func (p *parser) expectTerminator() {
	switch tok := p.peek(); tok.kind {
	case T_NEWLINE, T_SEMICOLON:
		p.advance()
	default:
		p.fail(errExpectedStatementEnd(tok.kind, p.text(tok), p.tokenSpan(tok)))
	}
}

func (p *parser) skipNewlines() {
	for p.peek().kind == T_NEWLINE {
		p.advance()
	}
}

func (p *parser) skipTerminators() {
	for {
		switch p.peek().kind {
		case T_NEWLINE, T_SEMICOLON:
			p.advance()
		default:
			return
		}
	}
}

func (p *parser) finish(start uint32, node *ast.Node) *ast.Node {
	return node.WithSpan(ast.NewSpan(start, p.lastEnd-start))
}

func (p *parser) emptyArgs() *ast.Node {
	return ast.New(ast.K_ARGS).WithSpan(ast.NewSpan(p.lastEnd, 0))
}

func spanStart(node *ast.Node) uint32 {
	span, _ := node.Span()
	return span.Start()
}

func (p *parser) pushScope(inherit bool) {
	p.scopes = append(p.scopes, &scope{
		locals:  make(map[ast.Symbol]struct{}),
		inherit: inherit,
	})
}

func (p *parser) popScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

func (p *parser) declare(name ast.Symbol) {
	p.scopes[len(p.scopes)-1].locals[name] = struct{}{}
}

func (p *parser) isLocal(name ast.Symbol) bool {
	for ii := len(p.scopes) - 1; ii >= 0; ii-- {
		if _, ok := p.scopes[ii].locals[name]; ok {
			return true
		}
		if !p.scopes[ii].inherit {
			return false
		}
	}
	return false
}

func (p *parser) parseProgram() *ast.Node {
	p.pushScope(false)
	stmts := p.parseStatements()
	if tok := p.peek(); tok.kind != T_EOF {
		p.fail(p.unexpected(tok, "end of input"))
	}
	if len(stmts) == 0 {
		return ast.New(ast.K_BEGIN).WithSpan(ast.NewSpan(0, 0))
	}
	return sequence(stmts)
}

// sequence folds a statement list: one statement stands for itself, more
// become a begin node.
func sequence(stmts []*ast.Node) *ast.Node {
	if len(stmts) == 1 {
		return stmts[0]
	}
	first, _ := stmts[0].Span()
	last, _ := stmts[len(stmts)-1].Span()
	children := make([]any, len(stmts))
	for ii, stmt := range stmts {
		children[ii] = stmt
	}
	return ast.New(ast.K_BEGIN, children...).WithSpan(
		ast.NewSpan(first.Start(), last.End()-first.Start()),
	)
}

func (p *parser) parseBody() *ast.Node {
	saved := p.noDo
	p.noDo = false
	defer func() { p.noDo = saved }()

	stmts := p.parseStatements()
	if len(stmts) == 0 {
		return nil
	}
	return sequence(stmts)
}

func (p *parser) parseStatements() []*ast.Node {
	var stmts []*ast.Node
	for {
		p.skipTerminators()
		if p.atBodyEnd() {
			return stmts
		}
		stmts = append(stmts, p.parseExpr(precStatement))
		switch tok := p.peek(); tok.kind {
		case T_NEWLINE, T_SEMICOLON:
		default:
			if !p.atBodyEnd() {
				p.fail(errExpectedStatementEnd(tok.kind, p.text(tok), p.tokenSpan(tok)))
			}
		}
	}
}

func (p *parser) atBodyEnd() bool {
	tok := p.peek()
	switch tok.kind {
	case T_EOF, T_CLOSE_PAREN:
		return true
	case T_IDENT:
		switch p.text(tok) {
		case "end", "else", "elsif":
			return true
		}
	}
	return false
}

func (p *parser) parseExpr(minPrec int) *ast.Node {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.opts.maxDepth {
		p.fail(errNestingTooDeep(p.opts.maxDepth, p.tokenSpan(p.peek())))
	}

	left := p.parsePrefix()
	for {
		prec := p.infixPrecedence()
		if prec == precNone || prec < minPrec {
			return left
		}
		left = p.parseInfix(left)
	}
}

func binaryPrecedence(kind TokenKind) int {
	switch kind {
	case T_EQ_EQ, T_BANG_EQ:
		return precEquality
	case T_LT, T_LT_EQ, T_GT, T_GT_EQ:
		return precComparison
	case T_PLUS, T_MINUS:
		return precAdditive
	case T_STAR, T_SLASH, T_PERCENT:
		return precMultiplicative
	}
	return precNone
}

func (p *parser) infixPrecedence() int {
	tok := p.peek()
	switch tok.kind {
	case T_OR_OR:
		return precOr
	case T_AND_AND:
		return precAnd
	case T_DOT, T_COLON2:
		return precCall
	case T_OPEN_SQUARE:
		if p.adjacent() {
			return precCall
		}
		return precNone
	case T_IDENT:
		if !p.noDo && p.text(tok) == "do" {
			return precCall
		}
		return precNone
	}
	return binaryPrecedence(tok.kind)
}

func (p *parser) parseInfix(left *ast.Node) *ast.Node {
	start := spanStart(left)
	tok := p.advance()
	switch tok.kind {
	case T_OR_OR, T_AND_AND:
		kind, prec := ast.K_OR, precOr
		if tok.kind == T_AND_AND {
			kind, prec = ast.K_AND, precAnd
		}
		p.skipNewlines()
		right := p.parseExpr(prec + 1)
		return p.finish(start, ast.New(kind, left, right))
	case T_DOT:
		return p.parseMethodCall(start, left)
	case T_COLON2:
		name := p.expect(T_CONST, "constant name")
		return p.finish(start, ast.New(ast.K_CONST, left, ast.Symbol(p.text(name))))
	case T_OPEN_SQUARE:
		return p.parseIndex(start, left)
	case T_IDENT:
		return p.parseBlock(start, left, tok)
	}
	p.skipNewlines()
	right := p.parseExpr(binaryPrecedence(tok.kind) + 1)
	return p.finish(start, ast.New(ast.K_SEND, left, ast.Symbol(p.text(tok)), right))
}

func (p *parser) parsePrefix() *ast.Node {
	tok := p.peek()
	switch tok.kind {
	case T_INT_LIT, T_FLOAT_LIT:
		p.advance()
		return p.parseNumber(tok.start, tok, false)
	case T_TEXT_LIT:
		p.advance()
		return p.parseText(tok)
	case T_SYMBOL:
		p.advance()
		return p.parseSymbol(tok)
	case T_MINUS:
		p.advance()
		if next := p.peek(); (next.kind == T_INT_LIT || next.kind == T_FLOAT_LIT) && p.adjacent() {
			p.advance()
			return p.parseNumber(tok.start, next, true)
		}
		operand := p.parseExpr(precUnary)
		return p.finish(tok.start, ast.New(ast.K_SEND, operand, ast.Symbol("-@")))
	case T_BANG:
		p.advance()
		operand := p.parseExpr(precUnary)
		return p.finish(tok.start, ast.New(ast.K_SEND, operand, ast.Symbol("!")))
	case T_OPEN_PAREN:
		return p.parseParens()
	case T_OPEN_SQUARE:
		open := p.advance()
		items := p.parseDelimited(T_CLOSE_SQUARE, "']'")
		return p.finish(open.start, ast.New(ast.K_ARRAY, items...))
	case T_OPEN_CURL:
		return p.parseHash()
	case T_IVAR:
		return p.parseVariable(ast.K_IVAR, ast.K_IVASGN)
	case T_GVAR:
		return p.parseVariable(ast.K_GVAR, ast.K_GVASGN)
	case T_CONST:
		return p.parseConst()
	case T_LABEL:
		p.fail(errLabelOutsideHash(p.text(tok), p.tokenSpan(tok)))
	case T_IDENT:
		return p.parseKeywordOrIdent(tok)
	}
	p.fail(errExpectedExpression(tok.kind, p.text(tok), p.tokenSpan(tok)))
	return nil
}

func (p *parser) parseKeywordOrIdent(tok lexeme) *ast.Node {
	text := p.text(tok)
	switch text {
	case "nil", "true", "false", "self":
		p.advance()
		kind, _ := ast.KindByName(text)
		return p.finish(tok.start, ast.New(kind))
	case "if":
		p.advance()
		return p.parseIf(tok.start)
	case "while":
		return p.parseLoop(ast.K_WHILE)
	case "until":
		return p.parseLoop(ast.K_UNTIL)
	case "def":
		return p.parseDef()
	case "return":
		return p.parseFlow(ast.K_RETURN)
	case "break":
		return p.parseFlow(ast.K_BREAK)
	case "next":
		return p.parseFlow(ast.K_NEXT)
	}
	if keywords[text] {
		p.fail(errUnexpectedKeyword(text, p.tokenSpan(tok)))
	}
	return p.parseIdent()
}

func (p *parser) parseNumber(start uint32, tok lexeme, negative bool) *ast.Node {
	text := p.text(tok)
	if negative {
		text = "-" + text
	}
	span := ast.NewSpan(start, tok.end-start)
	if tok.kind == T_INT_LIT {
		value, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			p.fail(errIntLitOutOfRange(text, span))
		}
		return ast.New(ast.K_INT, value).WithSpan(span)
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.fail(errFloatLitInvalid(text, span))
	}
	return ast.New(ast.K_FLOAT, value).WithSpan(span)
}

func (p *parser) parseText(tok lexeme) *ast.Node {
	raw := p.text(tok)
	body := raw[1 : len(raw)-1]
	var value string
	if raw[0] == '\'' {
		value = decodeSingleQuoted(body)
	} else {
		var ok bool
		if value, ok = decodeDoubleQuoted(body); !ok {
			p.fail(errTextLitInvalid(raw, p.tokenSpan(tok)))
		}
	}
	return p.finish(tok.start, ast.New(ast.K_STR, value))
}

func (p *parser) parseSymbol(tok lexeme) *ast.Node {
	raw := p.text(tok)
	name := raw[1:]
	if raw[1] == '"' {
		var ok bool
		if name, ok = decodeDoubleQuoted(raw[2 : len(raw)-1]); !ok {
			p.fail(errTextLitInvalid(raw, p.tokenSpan(tok)))
		}
	}
	return p.finish(tok.start, ast.New(ast.K_SYM, ast.Symbol(name)))
}

func decodeSingleQuoted(body string) string {
	if !strings.Contains(body, `\`) {
		return body
	}
	var buf strings.Builder
	for ii := 0; ii < len(body); ii++ {
		c := body[ii]
		if c == '\\' && ii+1 < len(body) && (body[ii+1] == '\\' || body[ii+1] == '\'') {
			ii++
			c = body[ii]
		}
		buf.WriteByte(c)
	}
	return buf.String()
}

func decodeDoubleQuoted(body string) (string, bool) {
	if !strings.Contains(body, `\`) {
		return body, true
	}
	var buf strings.Builder
	for ii := 0; ii < len(body); ii++ {
		c := body[ii]
		if c != '\\' {
			buf.WriteByte(c)
			continue
		}
		ii++
		if ii == len(body) {
			return "", false
		}
		switch c = body[ii]; c {
		case 'n':
			buf.WriteByte('\n')
		case 't':
			buf.WriteByte('\t')
		case 'r':
			buf.WriteByte('\r')
		case 'e':
			buf.WriteByte(0x1B)
		case 's':
			buf.WriteByte(' ')
		case '0':
			buf.WriteByte(0)
		case 'a':
			buf.WriteByte(0x07)
		case 'b':
			buf.WriteByte(0x08)
		case 'f':
			buf.WriteByte(0x0C)
		case 'v':
			buf.WriteByte(0x0B)
		case '\\', '"', '\'', '#':
			buf.WriteByte(c)
		case 'x':
			var value byte
			digits := 0
			for digits < 2 && ii+1 < len(body) && isHexDigit(body[ii+1]) {
				ii++
				value = value<<4 | unhex(body[ii])
				digits++
			}
			if digits == 0 {
				return "", false
			}
			buf.WriteByte(value)
		case 'u':
			if len(body)-ii-1 < 4 {
				return "", false
			}
			r, err := strconv.ParseUint(body[ii+1:ii+5], 16, 32)
			if err != nil || !utf8.ValidRune(rune(r)) {
				return "", false
			}
			buf.WriteRune(rune(r))
			ii += 4
		default:
			return "", false
		}
	}
	return buf.String(), true
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	}
	return c - '0'
}

func isAssignableName(name string) bool {
	last := name[len(name)-1]
	return last != '?' && last != '!'
}

// isBlockCall reports whether a block may attach to the send: plain
// method calls only, not operators, indexing or attribute assignment.
func isBlockCall(call *ast.Node) bool {
	if call.Kind() != ast.K_SEND {
		return false
	}
	name := string(call.SymbolAt(1))
	if name == "" || !isIdentStart(name[0]) {
		return false
	}
	return name[len(name)-1] != '='
}

func (p *parser) parseIdent() *ast.Node {
	tok := p.advance()
	text := p.text(tok)
	name := ast.Symbol(text)
	next := p.peek()
	switch {
	case next.kind == T_OPEN_PAREN && p.adjacent():
		p.advance()
		args := p.parseDelimited(T_CLOSE_PAREN, "')'")
		return p.finish(tok.start, ast.New(ast.K_SEND, append([]any{nil, name}, args...)...))
	case next.kind == T_EQ:
		if !isAssignableName(text) {
			p.fail(errInvalidAssignment(text, p.tokenSpan(tok)))
		}
		p.advance()
		p.skipNewlines()
		p.declare(name)
		value := p.parseExpr(precAssignment)
		return p.finish(tok.start, ast.New(ast.K_LVASGN, name, value))
	case p.isLocal(name):
		return p.finish(tok.start, ast.New(ast.K_LVAR, name))
	}
	return p.finish(tok.start, ast.New(ast.K_SEND, nil, name))
}

func (p *parser) parseConst() *ast.Node {
	tok := p.advance()
	text := p.text(tok)
	name := ast.Symbol(text)
	next := p.peek()
	switch {
	case next.kind == T_OPEN_PAREN && p.adjacent():
		p.advance()
		args := p.parseDelimited(T_CLOSE_PAREN, "')'")
		return p.finish(tok.start, ast.New(ast.K_SEND, append([]any{nil, name}, args...)...))
	case next.kind == T_EQ:
		p.fail(errInvalidAssignment(text, p.tokenSpan(tok)))
	}
	return p.finish(tok.start, ast.New(ast.K_CONST, nil, name))
}

func (p *parser) parseVariable(kind, assignKind ast.Kind) *ast.Node {
	tok := p.advance()
	name := ast.Symbol(p.text(tok))
	if p.peek().kind == T_EQ {
		p.advance()
		p.skipNewlines()
		value := p.parseExpr(precAssignment)
		return p.finish(tok.start, ast.New(assignKind, name, value))
	}
	return p.finish(tok.start, ast.New(kind, name))
}

func (p *parser) parseMethodCall(start uint32, recv *ast.Node) *ast.Node {
	p.skipNewlines()
	tok := p.peek()
	if tok.kind != T_IDENT && tok.kind != T_CONST {
		p.fail(errUnexpectedToken("method name", tok.kind, p.text(tok), p.tokenSpan(tok)))
	}
	p.advance()
	text := p.text(tok)
	method := ast.Symbol(text)
	next := p.peek()
	switch {
	case next.kind == T_OPEN_PAREN && p.adjacent():
		p.advance()
		args := p.parseDelimited(T_CLOSE_PAREN, "')'")
		return p.finish(start, ast.New(ast.K_SEND, append([]any{recv, method}, args...)...))
	case next.kind == T_EQ && isAssignableName(text):
		p.advance()
		p.skipNewlines()
		value := p.parseExpr(precAssignment)
		return p.finish(start, ast.New(ast.K_SEND, recv, method+"=", value))
	}
	return p.finish(start, ast.New(ast.K_SEND, recv, method))
}

func (p *parser) parseIndex(start uint32, recv *ast.Node) *ast.Node {
	args := p.parseDelimited(T_CLOSE_SQUARE, "']'")
	if p.peek().kind == T_EQ {
		p.advance()
		p.skipNewlines()
		value := p.parseExpr(precAssignment)
		children := append([]any{recv, ast.Symbol("[]=")}, args...)
		return p.finish(start, ast.New(ast.K_SEND, append(children, value)...))
	}
	return p.finish(start, ast.New(ast.K_SEND, append([]any{recv, ast.Symbol("[]")}, args...)...))
}

// parseDelimited parses comma separated expressions up to and including
// the closing token. The opening token has already been consumed.
func (p *parser) parseDelimited(close TokenKind, want string) []any {
	saved := p.noDo
	p.noDo = false
	defer func() { p.noDo = saved }()

	var items []any
	for {
		p.skipNewlines()
		if p.peek().kind == close {
			p.advance()
			return items
		}
		items = append(items, p.parseExpr(precAssignment))
		p.skipNewlines()
		if p.peek().kind == T_COMMA {
			p.advance()
			continue
		}
		p.expect(close, want)
		return items
	}
}

func (p *parser) parseParens() *ast.Node {
	saved := p.noDo
	p.noDo = false
	defer func() { p.noDo = saved }()

	open := p.advance()
	stmts := p.parseStatements()
	p.expect(T_CLOSE_PAREN, "')'")
	if len(stmts) == 0 {
		return p.finish(open.start, ast.New(ast.K_BEGIN))
	}
	if len(stmts) == 1 {
		return stmts[0]
	}
	children := make([]any, len(stmts))
	for ii, stmt := range stmts {
		children[ii] = stmt
	}
	return p.finish(open.start, ast.New(ast.K_BEGIN, children...))
}

func (p *parser) parseHash() *ast.Node {
	saved := p.noDo
	p.noDo = false
	defer func() { p.noDo = saved }()

	open := p.advance()
	var pairs []any
	for {
		p.skipNewlines()
		if p.peek().kind == T_CLOSE_CURL {
			p.advance()
			break
		}
		tok := p.peek()
		var key *ast.Node
		if tok.kind == T_LABEL {
			p.advance()
			label := p.text(tok)
			key = p.finish(tok.start, ast.New(ast.K_SYM, ast.Symbol(label[:len(label)-1])))
		} else {
			key = p.parseExpr(precAssignment)
			p.skipNewlines()
			p.expect(T_FAT_ARROW, "'=>'")
		}
		p.skipNewlines()
		value := p.parseExpr(precAssignment)
		pairs = append(pairs, p.finish(tok.start, ast.New(ast.K_PAIR, key, value)))
		p.skipNewlines()
		if p.peek().kind == T_COMMA {
			p.advance()
			continue
		}
		p.expect(T_CLOSE_CURL, "'}'")
		break
	}
	return p.finish(open.start, ast.New(ast.K_HASH, pairs...))
}

func (p *parser) parseIf(start uint32) *ast.Node {
	cond := p.parseExpr(precStatement)
	if tok := p.peek(); p.isKeyword(tok, "then") {
		p.advance()
	} else {
		p.expectTerminator()
	}
	then := p.parseBody()

	tok := p.peek()
	switch {
	case p.isKeyword(tok, "elsif"):
		p.advance()
		otherwise := p.parseIf(tok.start)
		return p.finish(start, ast.New(ast.K_IF, cond, then, otherwise))
	case p.isKeyword(tok, "else"):
		p.advance()
		otherwise := p.parseBody()
		p.expectKeyword("end")
		return p.finish(start, ast.New(ast.K_IF, cond, then, otherwise))
	}
	p.expectKeyword("end")
	return p.finish(start, ast.New(ast.K_IF, cond, then, nil))
}

func (p *parser) parseLoop(kind ast.Kind) *ast.Node {
	kw := p.advance()
	saved := p.noDo
	p.noDo = true
	cond := p.parseExpr(precStatement)
	p.noDo = saved
	if tok := p.peek(); p.isKeyword(tok, "do") {
		p.advance()
	} else {
		p.expectTerminator()
	}
	body := p.parseBody()
	p.expectKeyword("end")
	return p.finish(kw.start, ast.New(kind, cond, body))
}

func (p *parser) parseDef() *ast.Node {
	kw := p.advance()
	tok := p.peek()
	text := p.text(tok)
	if (tok.kind != T_IDENT && tok.kind != T_CONST) || keywords[text] {
		p.fail(errUnexpectedToken("method name", tok.kind, text, p.tokenSpan(tok)))
	}
	p.advance()

	p.pushScope(false)
	defer p.popScope()

	var params *ast.Node
	if open := p.peek(); open.kind == T_OPEN_PAREN {
		p.advance()
		params = p.parseParams(open.start, T_CLOSE_PAREN, "')'")
	} else {
		params = p.emptyArgs()
	}
	body := p.parseBody()
	p.expectKeyword("end")
	return p.finish(kw.start, ast.New(ast.K_DEF, ast.Symbol(text), params, body))
}

func (p *parser) parseBlock(start uint32, call *ast.Node, doTok lexeme) *ast.Node {
	if !isBlockCall(call) {
		p.fail(errBlockWithoutCall(p.tokenSpan(doTok)))
	}
	p.pushScope(true)
	defer p.popScope()

	var params *ast.Node
	switch tok := p.peek(); tok.kind {
	case T_OR_OR:
		p.advance()
		params = p.finish(tok.start, ast.New(ast.K_ARGS))
	case T_PIPE:
		p.advance()
		params = p.parseParams(tok.start, T_PIPE, "'|'")
	default:
		params = p.emptyArgs()
	}
	body := p.parseBody()
	p.expectKeyword("end")
	return p.finish(start, ast.New(ast.K_BLOCK, call, params, body))
}

func (p *parser) parseParams(start uint32, close TokenKind, want string) *ast.Node {
	var params []any
	seen := make(map[ast.Symbol]bool)
	for {
		p.skipNewlines()
		if p.peek().kind == close {
			p.advance()
			break
		}
		tok := p.peek()
		text := p.text(tok)
		if tok.kind != T_IDENT || keywords[text] || !isAssignableName(text) {
			p.fail(errUnexpectedToken("parameter name", tok.kind, text, p.tokenSpan(tok)))
		}
		p.advance()
		name := ast.Symbol(text)
		if seen[name] {
			p.fail(errDuplicateParameter(text, p.tokenSpan(tok)))
		}
		seen[name] = true
		p.declare(name)

		if p.peek().kind == T_EQ {
			p.advance()
			p.skipNewlines()
			value := p.parseExpr(precAssignment)
			params = append(params, p.finish(tok.start, ast.New(ast.K_OPTARG, name, value)))
		} else {
			params = append(params, p.finish(tok.start, ast.New(ast.K_ARG, name)))
		}
		p.skipNewlines()
		if p.peek().kind == T_COMMA {
			p.advance()
			continue
		}
		p.expect(close, want)
		break
	}
	return p.finish(start, ast.New(ast.K_ARGS, params...))
}

func (p *parser) parseFlow(kind ast.Kind) *ast.Node {
	kw := p.advance()
	var args []any
	if p.startsExpression(p.peek()) {
		for {
			args = append(args, p.parseExpr(precAssignment))
			if p.peek().kind != T_COMMA {
				break
			}
			p.advance()
			p.skipNewlines()
		}
	}
	return p.finish(kw.start, ast.New(kind, args...))
}

func (p *parser) startsExpression(tok lexeme) bool {
	switch tok.kind {
	case T_INT_LIT, T_FLOAT_LIT, T_TEXT_LIT, T_SYMBOL,
		T_CONST, T_IVAR, T_GVAR,
		T_OPEN_PAREN, T_OPEN_SQUARE, T_OPEN_CURL,
		T_MINUS, T_BANG:
		return true
	case T_IDENT:
		switch p.text(tok) {
		case "end", "else", "elsif", "then", "do":
			return false
		}
		return true
	}
	return false
}
