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
	"github.com/naw/unparser/ast"
)

type sendForm uint8

const (
	sendCall sendForm = iota
	sendBinary
	sendUnary
	sendIndex
	sendIndexAssign
	sendAttrAssign
)

var binaryOperators = map[string]int{
	"==": precEquality,
	"!=": precEquality,
	"<":  precComparison,
	"<=": precComparison,
	">":  precComparison,
	">=": precComparison,
	"+":  precAdditive,
	"-":  precAdditive,
	"*":  precMultiplicative,
	"/":  precMultiplicative,
	"%":  precMultiplicative,
}

func classifySend(node *ast.Node) sendForm {
	if node.NodeAt(0) == nil {
		return sendCall
	}
	name := string(node.SymbolAt(1))
	argc := node.Len() - 2
	switch {
	case argc == 1 && binaryOperators[name] != 0:
		return sendBinary
	case argc == 0 && (name == "-@" || name == "!"):
		return sendUnary
	case name == "[]":
		return sendIndex
	case name == "[]=" && argc >= 1:
		return sendIndexAssign
	case argc == 1 && isSetter(name):
		return sendAttrAssign
	}
	return sendCall
}

func isSetter(name string) bool {
	return len(name) > 1 && isIdentStart(name[0]) && name[len(name)-1] == '='
}

func sendPrecedence(node *ast.Node, _ Parent) int {
	switch classifySend(node) {
	case sendBinary:
		return binaryOperators[string(node.SymbolAt(1))]
	case sendUnary:
		return precUnary
	case sendIndexAssign, sendAttrAssign:
		return precAssignment
	}
	return precCall
}

func emitSend(e *emitter, node *ast.Node, _ Parent) {
	recv := node.NodeAt(0)
	name := string(node.SymbolAt(1))
	args := node.NodesFrom(2)
	operand := Parent{Kind: ast.K_SEND, Role: RoleOperand}
	receiver := Parent{Kind: ast.K_SEND, Role: RoleReceiver}
	argument := Parent{Kind: ast.K_SEND, Role: RoleArgument}

	switch classifySend(node) {
	case sendBinary:
		prec := binaryOperators[name]
		e.visitAt(recv, operand, prec)
		e.write(" " + name + " ")
		e.visitAt(args[0], operand, prec+1)
	case sendUnary:
		if name == "!" {
			e.write("!")
			e.visitAt(recv, operand, precUnary)
			return
		}
		switch {
		case isAtomic(recv):
			e.write("-")
			e.visit(recv, operand)
		case isUnarySend(recv):
			// Spaced rather than wrapped so nested negations add no depth.
			e.write("- ")
			e.visit(recv, operand)
		default:
			e.write("-")
			e.wrapAlways(func() {
				e.visit(recv, operand)
			})
		}
	case sendIndex:
		e.visitAt(recv, receiver, precCall)
		e.write("[")
		e.delimited(args, argument, precAssignment)
		e.write("]")
	case sendIndexAssign:
		e.visitAt(recv, receiver, precCall)
		e.write("[")
		e.delimited(args[:len(args)-1], argument, precAssignment)
		e.write("] = ")
		e.visitAt(args[len(args)-1], Parent{Kind: ast.K_SEND, Role: RoleValue}, precAssignment)
	case sendAttrAssign:
		e.visitAt(recv, receiver, precCall)
		e.write("." + name[:len(name)-1] + " = ")
		e.visitAt(args[0], Parent{Kind: ast.K_SEND, Role: RoleValue}, precAssignment)
	default:
		if recv != nil {
			e.visitAt(recv, receiver, precCall)
			e.write("." + name)
			if len(args) == 0 {
				return
			}
		} else {
			// Always parenthesized: a bare name may read back as a local.
			e.write(name)
		}
		e.write("(")
		e.delimited(args, argument, precAssignment)
		e.write(")")
	}
}

// isAtomic reports whether a unary minus can precede node without
// parentheses. Numeric literals are excluded so -(1) stays a method call.
func isUnarySend(node *ast.Node) bool {
	return node != nil && node.Kind() == ast.K_SEND && classifySend(node) == sendUnary
}

func isAtomic(node *ast.Node) bool {
	if node == nil {
		return false
	}
	switch node.Kind() {
	case ast.K_LVAR, ast.K_IVAR, ast.K_GVAR, ast.K_CONST,
		ast.K_STR, ast.K_SYM, ast.K_NIL, ast.K_TRUE, ast.K_FALSE, ast.K_SELF,
		ast.K_ARRAY, ast.K_HASH, ast.K_BEGIN:
		return true
	}
	return false
}
