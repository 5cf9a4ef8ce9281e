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

package syntax_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"strings"
	"testing"

	"github.com/naw/unparser/ast"
	"github.com/naw/unparser/internal/testutil"
	"github.com/naw/unparser/syntax"
)

var (
	testdata     fs.FS
	syntaxErrors map[string]*testutil.SyntaxError
)

func init() {
	var err error
	testdata, err = testutil.TestdataFS()
	if err != nil {
		panic(err)
	}
	syntaxErrors, err = testutil.LoadSyntaxErrors(testdata)
	if err != nil {
		panic(err)
	}
}

func syntaxTest(t *testing.T, testName string) {
	t.Parallel()

	srcPath := fmt.Sprintf("syntax/%s/%s.rb", testName, testName)
	src, err := fs.ReadFile(testdata, srcPath)
	testutil.AssertNoError(t, err)

	expectOK := fmt.Sprintf("syntax/%s/expect_ok.txt", testName)
	expectErr := fmt.Sprintf("syntax/%s/expect_err.json", testName)

	if _, err := fs.Stat(testdata, expectErr); err == nil {
		testExpectErr(t, src, expectErr)
	} else {
		testExpectOK(t, src, expectOK)
	}
}

func testExpectOK(t *testing.T, src []byte, expectPath string) {
	expectDump, err := fs.ReadFile(testdata, expectPath)
	testutil.AssertNoError(t, err)
	expectDump = bytes.Trim(expectDump, "\n")

	node, err := syntax.Parse(src)
	testutil.AssertNoError(t, err)

	testutil.ExpectNoDiff(t, string(expectDump), ast.Dump(node))
}

func testExpectErr(t *testing.T, src []byte, expectPath string) {
	expectJSON, err := fs.ReadFile(testdata, expectPath)
	testutil.AssertNoError(t, err)

	test := make(map[string]any)
	decoder := json.NewDecoder(bytes.NewReader(expectJSON))
	decoder.UseNumber()
	testutil.AssertNoError(t, decoder.Decode(&test))

	_, err = syntax.Parse(src)
	testutil.AssertError(t, err)
	checkSyntaxError(t, test, err)
}

func checkSyntaxError(t *testing.T, test map[string]any, err error) {
	t.Helper()
	errorName := test["error"].(string)
	expectErr, ok := syntaxErrors[errorName]
	if !ok {
		t.Fatalf("unknown parse error name %q", errorName)
	}

	parseErr, ok := err.(*syntax.Error)
	if !ok {
		t.Fatalf("expected *syntax.Error, got %T: %v", err, err)
	}
	testutil.ExpectEq(t, expectErr.Code(), parseErr.Code())
	if pattern := expectErr.MessagePattern(); pattern != nil {
		testutil.ExpectMatch(t, pattern, parseErr.Message())
	} else if message := expectErr.Message(); message != "" {
		testutil.ExpectEq(t, message, parseErr.Message())
	}

	expectSpan := testutil.SpanOrDie(t, test["error_span"])
	testutil.ExpectEq(t, expectSpan, parseErr.Span())
}

func TestSyntax(t *testing.T) {
	t.Parallel()

	testDirs, err := fs.ReadDir(testdata, "syntax")
	testutil.AssertNoError(t, err)

	for _, testDir := range testDirs {
		if testDir.IsDir() {
			testName := testDir.Name()
			t.Run(testName, func(t *testing.T) {
				syntaxTest(t, testName)
			})
		}
	}
}

func TestErrorFormat(t *testing.T) {
	_, err := syntax.Parse([]byte("x = )"))
	testutil.AssertError(t, err)
	testutil.ExpectEq(t, `E2001: Expected expression, got (CLOSE_PAREN ")")`, err.Error())
}

func TestMaxDepth(t *testing.T) {
	_, err := syntax.Parse([]byte("[[[[1]]]]"), syntax.WithMaxDepth(3))
	testutil.AssertError(t, err)
	parseErr := err.(*syntax.Error)
	testutil.ExpectEq(t, 2005, parseErr.Code())
	testutil.ExpectEq(t, ast.NewSpan(3, 1), parseErr.Span())

	_, err = syntax.Parse([]byte("[[1]]"), syntax.WithMaxDepth(3))
	testutil.ExpectNoError(t, err)

	deep := strings.Repeat("(", 1000) + "1" + strings.Repeat(")", 1000)
	_, err = syntax.Parse([]byte(deep))
	testutil.AssertError(t, err)
	testutil.ExpectEq(t, 2005, err.(*syntax.Error).Code())
}

func TestParseOptions(t *testing.T) {
	testutil.ExpectEq(t, syntax.DefaultMaxDepth, syntax.NewParseOptions().MaxDepth())
	testutil.ExpectEq(t, 10, syntax.NewParseOptions(syntax.WithMaxDepth(10)).MaxDepth())
	testutil.ExpectEq(t, syntax.DefaultMaxDepth, syntax.NewParseOptions(syntax.WithMaxDepth(0)).MaxDepth())
}

func TestSpans(t *testing.T) {
	node, err := syntax.Parse([]byte("foo = bar.baz(1)\n"))
	testutil.AssertNoError(t, err)

	span, ok := node.Span()
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, ast.NewSpan(0, 16), span)

	call := node.NodeAt(1)
	span, _ = call.Span()
	testutil.ExpectEq(t, ast.NewSpan(6, 10), span)

	arg := call.NodeAt(2)
	span, _ = arg.Span()
	testutil.ExpectEq(t, ast.NewSpan(14, 1), span)
}

func TestIntegerLimits(t *testing.T) {
	node, err := syntax.Parse([]byte("-9223372036854775808"))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, ast.K_INT, node.Kind())
	testutil.ExpectEq(t, int64(math.MinInt64), node.Child(0).(int64))

	node, err = syntax.Parse([]byte("9223372036854775807"))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, int64(math.MaxInt64), node.Child(0).(int64))
}

func TestTextEscapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`"plain"`, "plain"},
		{`"a\nb\tc\\d\"e"`, "a\nb\tc\\d\"e"},
		{`"\e\s\0"`, "\x1b \x00"},
		{`"\x41\x7f\xFF"`, "A\x7f\xff"},
		{`"é"`, "é"},
		{`"\#{x}"`, "#{x}"},
		{`'a\'b\\c\d'`, `a'b\c\d`},
		{`"héllo"`, "héllo"},
	}
	for _, test := range tests {
		node, err := syntax.Parse([]byte(test.src))
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, ast.K_STR, node.Kind())
		testutil.ExpectEq(t, test.want, node.Child(0).(string))
	}
}

func TestLocalScopes(t *testing.T) {
	src := strings.Join([]string{
		"a = 1",
		"[1].each do |x|",
		"  b = a + x",
		"end",
		"b",
		"def f(y)",
		"  a + y",
		"end",
	}, "\n")
	got := testutil.MustParse(t, src)

	stmts := got.NodesFrom(0)
	testutil.ExpectEq(t, 4, len(stmts))

	// the block sees `a` and its own parameter
	blockBody := stmts[1].NodeAt(2)
	testutil.ExpectEq(t, ast.K_LVASGN, blockBody.Kind())
	sum := blockBody.NodeAt(1)
	testutil.ExpectEq(t, ast.K_LVAR, sum.NodeAt(0).Kind())
	testutil.ExpectEq(t, ast.K_LVAR, sum.NodeAt(2).Kind())

	// `b` was assigned inside the block only
	testutil.ExpectEq(t, ast.K_SEND, stmts[2].Kind())

	// methods do not see outer locals
	defBody := stmts[3].NodeAt(2)
	testutil.ExpectEq(t, ast.K_SEND, defBody.NodeAt(0).Kind())
	testutil.ExpectEq(t, ast.K_LVAR, defBody.NodeAt(2).Kind())
}

func TestCallRequiresAdjacentParen(t *testing.T) {
	call := testutil.MustParse(t, "x = 1\nx()")
	testutil.ExpectEq(t, ast.K_SEND, call.NodeAt(1).Kind())

	// `x (1)` is a local followed by a stray group
	_, err := syntax.Parse([]byte("x = 1\nx (1)"))
	testutil.AssertError(t, err)
	testutil.ExpectEq(t, 2002, err.(*syntax.Error).Code())
}

func TestNegativeLiteralFolding(t *testing.T) {
	testutil.ExpectNodeEq(t,
		ast.New(ast.K_INT, -1),
		testutil.MustParse(t, "-1"),
	)
	testutil.ExpectNodeEq(t,
		ast.New(ast.K_SEND, ast.New(ast.K_INT, 1), ast.Symbol("-@")),
		testutil.MustParse(t, "-(1)"),
	)
	testutil.ExpectNodeEq(t,
		ast.New(ast.K_SEND, ast.New(ast.K_INT, 2), ast.Symbol("-"), ast.New(ast.K_INT, 1)),
		testutil.MustParse(t, "2-1"),
	)
}

func TestLoopConditionDo(t *testing.T) {
	got := testutil.MustParse(t, "while foo() do\nend")
	testutil.ExpectEq(t, ast.K_WHILE, got.Kind())
	testutil.ExpectEq(t, ast.K_SEND, got.NodeAt(0).Kind())

	got = testutil.MustParse(t, "while (foo() do\nend)\nend")
	testutil.ExpectEq(t, ast.K_BLOCK, got.NodeAt(0).Kind())
}
