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

// Package diff renders line diffs between two texts, typically the AST
// dumps of an original and a regenerated source.
package diff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// A Differ renders the difference between two sequences of lines. Lines
// carry no trailing newline. The result is empty when a and b are equal.
type Differ interface {
	Diff(a, b []string) string
}

const DefaultContext = 3

// Unified renders a unified diff with Context lines of context around
// each hunk.
type Unified struct {
	Context  int
	FromFile string
	ToFile   string
}

var _ Differ = Unified{}

func (u Unified) Diff(a, b []string) string {
	context := u.Context
	if context < 0 {
		context = DefaultContext
	}
	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        withNewlines(a),
		B:        withNewlines(b),
		FromFile: u.FromFile,
		ToFile:   u.ToFile,
		Context:  context,
	})
	if err != nil {
		// Only writer failures can occur, and strings.Builder never fails.
		panic(err)
	}
	return out
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for ii, line := range lines {
		out[ii] = line + "\n"
	}
	return out
}

// Compact lists only the changed lines, each hunk introduced by the
// 1-based line numbers where it starts in a and b.
type Compact struct{}

var _ Differ = Compact{}

func (Compact) Diff(a, b []string) string {
	dmp := diffpatch.New()
	runesA, runesB, lineArray := dmp.DiffLinesToRunes(joinLines(a), joinLines(b))
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(runesA, runesB, false), lineArray)

	var buf strings.Builder
	lineA, lineB := 1, 1
	inHunk := false
	for _, d := range diffs {
		lines := splitLines(d.Text)
		switch d.Type {
		case diffpatch.DiffEqual:
			lineA += len(lines)
			lineB += len(lines)
			inHunk = false
			continue
		}
		if !inHunk {
			fmt.Fprintf(&buf, "@@ -%d +%d @@\n", lineA, lineB)
			inHunk = true
		}
		prefix := "-"
		if d.Type == diffpatch.DiffInsert {
			prefix = "+"
			lineB += len(lines)
		} else {
			lineA += len(lines)
		}
		for _, line := range lines {
			buf.WriteString(prefix)
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func splitLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// Lines splits text into lines without their trailing newlines.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	return splitLines(text)
}
