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
	"fmt"
)

// OriginalParseError reports input that the parser rejects. It is not a
// defect in the emitter.
type OriginalParseError struct {
	identification string
	cause          error
}

func (err *OriginalParseError) Error() string {
	return fmt.Sprintf("%s: parsing of original source failed: %v", err.identification, err.cause)
}

func (err *OriginalParseError) Unwrap() error {
	return err.cause
}

// GeneratedParseError reports regenerated text that the parser rejects.
type GeneratedParseError struct {
	identification string
	source         string
	cause          error
}

func (err *GeneratedParseError) Error() string {
	return fmt.Sprintf("%s: parsing of generated source failed: %v", err.identification, err.cause)
}

func (err *GeneratedParseError) Unwrap() error {
	return err.cause
}

// GeneratedSource is the text that failed to parse.
func (err *GeneratedParseError) GeneratedSource() string {
	return err.source
}

// MismatchError reports a regenerated tree that differs from the
// original.
type MismatchError struct {
	identification string
	diff           string
}

func (err *MismatchError) Error() string {
	return fmt.Sprintf("%s: generated AST differs from original", err.identification)
}

// Diff is the rendered difference between the two AST dumps.
func (err *MismatchError) Diff() string {
	return err.diff
}
