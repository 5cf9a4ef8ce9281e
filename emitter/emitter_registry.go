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
	"slices"

	"github.com/naw/unparser/ast"
)

// Binding strength, loosest first.
const (
	precStatement = iota + 1
	precAssignment
	precOr
	precAnd
	precEquality
	precComparison
	precAdditive
	precMultiplicative
	precUnary
	precCall
	precPrimary
)

type rule struct {
	emit func(e *emitter, node *ast.Node, parent Parent)

	// nil means the node is a primary expression.
	precedence func(node *ast.Node, parent Parent) int
}

func (r rule) precedenceOf(node *ast.Node, parent Parent) int {
	if r.precedence == nil {
		return precPrimary
	}
	return r.precedence(node, parent)
}

func fixed(prec int) func(*ast.Node, Parent) int {
	return func(*ast.Node, Parent) int {
		return prec
	}
}

var registry = map[ast.Kind]rule{
	ast.K_INT:   {emit: emitInt},
	ast.K_FLOAT: {emit: emitFloat},
	ast.K_STR:   {emit: emitStr},
	ast.K_SYM:   {emit: emitSym},
	ast.K_NIL:   {emit: emitKeyword("nil")},
	ast.K_TRUE:  {emit: emitKeyword("true")},
	ast.K_FALSE: {emit: emitKeyword("false")},
	ast.K_SELF:  {emit: emitKeyword("self")},

	ast.K_LVAR:   {emit: emitName},
	ast.K_IVAR:   {emit: emitName},
	ast.K_GVAR:   {emit: emitName},
	ast.K_CONST:  {emit: emitConst},
	ast.K_LVASGN: {emit: emitAssignment, precedence: fixed(precAssignment)},
	ast.K_IVASGN: {emit: emitAssignment, precedence: fixed(precAssignment)},
	ast.K_GVASGN: {emit: emitAssignment, precedence: fixed(precAssignment)},

	ast.K_SEND: {emit: emitSend, precedence: sendPrecedence},
	ast.K_AND:  {emit: emitLogical("&&", precAnd), precedence: fixed(precAnd)},
	ast.K_OR:   {emit: emitLogical("||", precOr), precedence: fixed(precOr)},

	ast.K_BEGIN: {emit: emitBegin},
	ast.K_IF:    {emit: emitIf},
	ast.K_WHILE: {emit: emitLoop("while")},
	ast.K_UNTIL: {emit: emitLoop("until")},

	ast.K_DEF:    {emit: emitDef},
	ast.K_ARGS:   {emit: emitArgs},
	ast.K_ARG:    {emit: emitArg},
	ast.K_OPTARG: {emit: emitOptarg},
	ast.K_BLOCK:  {emit: emitBlock},

	ast.K_ARRAY: {emit: emitArray},
	ast.K_HASH:  {emit: emitHash},
	ast.K_PAIR:  {emit: emitPair},

	ast.K_RETURN: {emit: emitFlow("return"), precedence: flowPrecedence},
	ast.K_BREAK:  {emit: emitFlow("break"), precedence: flowPrecedence},
	ast.K_NEXT:   {emit: emitFlow("next"), precedence: flowPrecedence},
}

// Supported returns the node kinds that have a registered rule, in
// ascending order.
func Supported() []ast.Kind {
	kinds := make([]ast.Kind, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}
