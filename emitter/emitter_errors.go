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

	"github.com/naw/unparser/ast"
)

// UnknownNodeKindError is returned when a tree contains a kind with no
// registered rule. Emission stops at that node.
type UnknownNodeKindError struct {
	kind ast.Kind
}

var _ error = (*UnknownNodeKindError)(nil)

func (err *UnknownNodeKindError) Error() string {
	return fmt.Sprintf("no emitter registered for node kind %s", err.kind)
}

func (err *UnknownNodeKindError) Kind() ast.Kind {
	return err.kind
}
