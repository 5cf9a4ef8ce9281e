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

package testutil

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/naw/unparser/ast"
	"github.com/naw/unparser/diff"
)

func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected (err != nil), got: nil")
	}
}

func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Expected (err == nil), got: %v", err)
	}
}

func ExpectNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Expected (err == nil), got: %v", err)
	}
}

func ExpectTrue(t *testing.T, cond bool) {
	t.Helper()
	if !cond {
		t.Errorf("Expected (true), got: %v", cond)
	}
}

func ExpectFalse(t *testing.T, cond bool) {
	t.Helper()
	if cond {
		t.Errorf("Expected (false), got: %v", cond)
	}
}

func ExpectEq[T comparable](t *testing.T, want, got T) {
	t.Helper()
	if want != got {
		t.Errorf("Expected %v, got: %v", want, got)
	}
}

func ExpectSliceEq[E comparable, S ~[]E](t *testing.T, want, got S) {
	t.Helper()
	if !slices.Equal(want, got) {
		t.Errorf("Expected %#v, got: %#v", want, got)
	}
}

func ExpectMatch[P *regexp.Regexp | string](t *testing.T, want P, got string) {
	t.Helper()
	var pattern *regexp.Regexp
	if p, ok := any(want).(*regexp.Regexp); ok {
		pattern = p
	} else {
		pattern = regexp.MustCompile(any(want).(string))
	}
	if !pattern.MatchString(got) {
		t.Errorf("Expected (match %q), got: %q", pattern.String(), got)
	}
}

// ExpectNoDiff fails with a unified diff of want and got.
func ExpectNoDiff(t *testing.T, want, got string) {
	t.Helper()
	if d := lineDiff(want, got); d != "" {
		t.Error(d)
	}
}

func lineDiff(want, got string) string {
	if want == got {
		return ""
	}
	return diff.Unified{
		Context:  5,
		FromFile: "want",
		ToFile:   "got",
	}.Diff(strings.Split(want, "\n"), strings.Split(got, "\n"))
}

// ExpectNodeEq compares two trees with [ast.Equal]. Spans take part in
// the comparison; when only spans differ they are listed per node.
func ExpectNodeEq(t *testing.T, want, got *ast.Node) {
	t.Helper()
	if ast.Equal(want, got) {
		return
	}
	if d := lineDiff(ast.Dump(want), ast.Dump(got)); d != "" {
		t.Errorf("tree mismatch:\n%s", d)
		return
	}
	t.Errorf("tree spans differ (-want +got):\n%s", cmp.Diff(spanList(want), spanList(got)))
}

func spanList(node *ast.Node) []string {
	var out []string
	ast.Walk(node, func(n *ast.Node) bool {
		if span, ok := n.Span(); ok {
			out = append(out, fmt.Sprintf("%s@%d+%d", n.Kind(), span.Start(), span.Len()))
		} else {
			out = append(out, n.Kind().String()+"@-")
		}
		return true
	})
	return out
}
