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
	"fmt"
)

type Kind uint8

const (
	K_INVALID Kind = iota

	K_INT
	K_FLOAT
	K_STR
	K_SYM
	K_NIL
	K_TRUE
	K_FALSE
	K_SELF

	K_LVAR
	K_IVAR
	K_GVAR
	K_CONST

	K_LVASGN
	K_IVASGN
	K_GVASGN

	K_SEND
	K_AND
	K_OR

	K_BEGIN
	K_IF
	K_WHILE
	K_UNTIL

	K_DEF
	K_ARGS
	K_ARG
	K_OPTARG
	K_BLOCK

	K_ARRAY
	K_HASH
	K_PAIR

	K_RETURN
	K_BREAK
	K_NEXT

	kindCount
)

var kindNames = [...]string{
	K_INVALID: "invalid",
	K_INT:     "int",
	K_FLOAT:   "float",
	K_STR:     "str",
	K_SYM:     "sym",
	K_NIL:     "nil",
	K_TRUE:    "true",
	K_FALSE:   "false",
	K_SELF:    "self",
	K_LVAR:    "lvar",
	K_IVAR:    "ivar",
	K_GVAR:    "gvar",
	K_CONST:   "const",
	K_LVASGN:  "lvasgn",
	K_IVASGN:  "ivasgn",
	K_GVASGN:  "gvasgn",
	K_SEND:    "send",
	K_AND:     "and",
	K_OR:      "or",
	K_BEGIN:   "begin",
	K_IF:      "if",
	K_WHILE:   "while",
	K_UNTIL:   "until",
	K_DEF:     "def",
	K_ARGS:    "args",
	K_ARG:     "arg",
	K_OPTARG:  "optarg",
	K_BLOCK:   "block",
	K_ARRAY:   "array",
	K_HASH:    "hash",
	K_PAIR:    "pair",
	K_RETURN:  "return",
	K_BREAK:   "break",
	K_NEXT:    "next",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Kinds yields every defined kind except K_INVALID.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := K_INT; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// KindByName maps a dump name ("send", "lvasgn", ...) back to its kind.
func KindByName(name string) (Kind, bool) {
	for k := K_INT; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return K_INVALID, false
}
