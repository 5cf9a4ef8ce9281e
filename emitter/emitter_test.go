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

package emitter_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/naw/unparser/ast"
	"github.com/naw/unparser/emitter"
	"github.com/naw/unparser/internal/testutil"
	"github.com/naw/unparser/syntax"
)

func lvar(name string) *ast.Node {
	return ast.New(ast.K_LVAR, ast.Symbol(name))
}

func num(value int64) *ast.Node {
	return ast.New(ast.K_INT, value)
}

func send(recv *ast.Node, name string, args ...any) *ast.Node {
	return ast.New(ast.K_SEND, append([]any{recv, ast.Symbol(name)}, args...)...)
}

func expectUnparse(t *testing.T, want string, node *ast.Node) {
	t.Helper()
	got, err := emitter.Unparse(node)
	testutil.AssertNoError(t, err)
	testutil.ExpectNoDiff(t, want, got)
}

func TestLiterals(t *testing.T) {
	expectUnparse(t, "1", num(1))
	expectUnparse(t, "-12", num(-12))
	expectUnparse(t, "1.0", ast.New(ast.K_FLOAT, 1.0))
	expectUnparse(t, "0.25", ast.New(ast.K_FLOAT, 0.25))
	expectUnparse(t, "1.5e+300", ast.New(ast.K_FLOAT, 1.5e300))
	expectUnparse(t, "Float::NAN", ast.New(ast.K_FLOAT, math.NaN()))
	expectUnparse(t, "-Float::INFINITY", ast.New(ast.K_FLOAT, math.Inf(-1)))
	expectUnparse(t, `"a\"b\\c\n\#{x}#y"`, ast.New(ast.K_STR, "a\"b\\c\n#{x}#y"))
	expectUnparse(t, `"\x01\x7F\e"`, ast.New(ast.K_STR, "\x01\x7f\x1b"))
	expectUnparse(t, `"\xFFé"`, ast.New(ast.K_STR, "\xffé"))
	expectUnparse(t, `'say "hi"'`, ast.New(ast.K_STR, `say "hi"`))
	expectUnparse(t, `"it's"`, ast.New(ast.K_STR, "it's"))
	expectUnparse(t, `'\'""\\'`, ast.New(ast.K_STR, `'""\`))
	expectUnparse(t, `"\"\x01"`, ast.New(ast.K_STR, "\"\x01"))
	expectUnparse(t, ":empty?", ast.New(ast.K_SYM, ast.Symbol("empty?")))
	expectUnparse(t, `:"two words"`, ast.New(ast.K_SYM, ast.Symbol("two words")))
	expectUnparse(t, `:"+"`, ast.New(ast.K_SYM, ast.Symbol("+")))
	expectUnparse(t, "nil", ast.New(ast.K_NIL))
	expectUnparse(t, "self", ast.New(ast.K_SELF))
	expectUnparse(t, "", nil)
}

func TestVariables(t *testing.T) {
	expectUnparse(t, "@x = $y", ast.New(ast.K_IVASGN,
		ast.Symbol("@x"),
		ast.New(ast.K_GVAR, ast.Symbol("$y")),
	))
	expectUnparse(t, "a = b = 1", ast.New(ast.K_LVASGN,
		ast.Symbol("a"),
		ast.New(ast.K_LVASGN, ast.Symbol("b"), num(1)),
	))
	expectUnparse(t, "Foo::Bar", ast.New(ast.K_CONST,
		ast.New(ast.K_CONST, nil, ast.Symbol("Foo")),
		ast.Symbol("Bar"),
	))
}

func TestBinaryPrecedence(t *testing.T) {
	a, b, c := lvar("a"), lvar("b"), lvar("c")

	expectUnparse(t, "a + b * c", send(a, "+", send(b, "*", c)))
	expectUnparse(t, "(a + b) * c", send(send(a, "+", b), "*", c))
	expectUnparse(t, "a - b - c", send(send(a, "-", b), "-", c))
	expectUnparse(t, "a - (b - c)", send(a, "-", send(b, "-", c)))
	expectUnparse(t, "a < b == true", send(send(a, "<", b), "==", ast.New(ast.K_TRUE)))
	expectUnparse(t, "a + (b = 1)", send(a, "+", ast.New(ast.K_LVASGN, ast.Symbol("b"), num(1))))
	expectUnparse(t, "2 - -1", send(num(2), "-", num(-1)))
}

func TestLogical(t *testing.T) {
	a, b, c := lvar("a"), lvar("b"), lvar("c")

	expectUnparse(t, "a && b || c", ast.New(ast.K_OR, ast.New(ast.K_AND, a, b), c))
	expectUnparse(t, "a || b && c", ast.New(ast.K_OR, a, ast.New(ast.K_AND, b, c)))
	expectUnparse(t, "(a || b) && c", ast.New(ast.K_AND, ast.New(ast.K_OR, a, b), c))
	expectUnparse(t, "a || (b || c)", ast.New(ast.K_OR, a, ast.New(ast.K_OR, b, c)))
	expectUnparse(t, "(a = 1) || b", ast.New(ast.K_OR, ast.New(ast.K_LVASGN, ast.Symbol("a"), num(1)), b))
}

func TestUnary(t *testing.T) {
	expectUnparse(t, "-(1)", send(num(1), "-@"))
	expectUnparse(t, "-(-1)", send(num(-1), "-@"))
	expectUnparse(t, "-a", send(lvar("a"), "-@"))
	expectUnparse(t, "-(foo())", send(send(nil, "foo"), "-@"))
	expectUnparse(t, "-(a + 1)", send(send(lvar("a"), "+", num(1)), "-@"))
	expectUnparse(t, "- -a", send(send(lvar("a"), "-@"), "-@"))
	expectUnparse(t, "- -(1)", send(send(num(1), "-@"), "-@"))
	expectUnparse(t, "- !a", send(send(lvar("a"), "!"), "-@"))
	expectUnparse(t, "!- -a", send(send(send(lvar("a"), "-@"), "-@"), "!"))
	expectUnparse(t, "!a.b", send(send(lvar("a"), "b"), "!"))
	expectUnparse(t, "!(a && b)", send(ast.New(ast.K_AND, lvar("a"), lvar("b")), "!"))
	expectUnparse(t, "-1.abs", send(num(-1), "abs"))
}

func TestSends(t *testing.T) {
	expectUnparse(t, "foo()", send(nil, "foo"))
	expectUnparse(t, "foo(1, a)", send(nil, "foo", num(1), lvar("a")))
	expectUnparse(t, "a.foo", send(lvar("a"), "foo"))
	expectUnparse(t, "a.foo(1)", send(lvar("a"), "foo", num(1)))
	expectUnparse(t, "(a + 1).foo", send(send(lvar("a"), "+", num(1)), "foo"))
	expectUnparse(t, "a[1, 2]", send(lvar("a"), "[]", num(1), num(2)))
	expectUnparse(t, "a[1] = 2", send(lvar("a"), "[]=", num(1), num(2)))
	expectUnparse(t, "a.b = c = 1", send(lvar("a"), "b=",
		ast.New(ast.K_LVASGN, ast.Symbol("c"), num(1))))
	expectUnparse(t, "foo(a = 1)", send(nil, "foo", ast.New(ast.K_LVASGN, ast.Symbol("a"), num(1))))
	expectUnparse(t, "(a.b = 1) + 2", send(send(lvar("a"), "b=", num(1)), "+", num(2)))
}

func TestControlFlow(t *testing.T) {
	ret := func(args ...any) *ast.Node {
		return ast.New(ast.K_RETURN, args...)
	}

	expectUnparse(t, "return", ret())
	expectUnparse(t, "return (1)", ret(num(1)))
	expectUnparse(t, "return (1), (2)", ret(num(1), num(2)))
	expectUnparse(t, "return (a || b)", ret(ast.New(ast.K_OR, lvar("a"), lvar("b"))))
	expectUnparse(t, "break (a = 1)", ast.New(ast.K_BREAK, ast.New(ast.K_LVASGN, ast.Symbol("a"), num(1))))
	expectUnparse(t, "next", ast.New(ast.K_NEXT))

	expectUnparse(t, "a || return", ast.New(ast.K_OR, lvar("a"), ret()))
	expectUnparse(t, "a || (return (1))", ast.New(ast.K_OR, lvar("a"), ret(num(1))))
	expectUnparse(t, "a && (next (1), (2))", ast.New(ast.K_AND, lvar("a"), ast.New(ast.K_NEXT, num(1), num(2))))
	expectUnparse(t, "x = (return (1))", ast.New(ast.K_LVASGN, ast.Symbol("x"), ret(num(1))))
	expectUnparse(t, "foo((return))", send(nil, "foo", ret()))
}

func TestControlFlowParents(t *testing.T) {
	tests := []struct {
		node   *ast.Node
		parent emitter.Parent
		want   string
	}{
		{ast.New(ast.K_RETURN), emitter.Parent{}, "return"},
		{ast.New(ast.K_RETURN), emitter.Parent{Kind: ast.K_OR, Role: emitter.RoleOperand}, "return"},
		{ast.New(ast.K_RETURN, num(1)), emitter.Parent{}, "return (1)"},
		{ast.New(ast.K_RETURN, num(1)), emitter.Parent{Kind: ast.K_AND, Role: emitter.RoleOperand}, "(return (1))"},
		{ast.New(ast.K_BREAK, num(1), num(2)), emitter.Parent{Kind: ast.K_OR, Role: emitter.RoleOperand}, "(break (1), (2))"},
		{ast.New(ast.K_NEXT, num(1)), emitter.Parent{Kind: ast.K_SEND, Role: emitter.RoleArgument}, "next (1)"},
	}
	for _, test := range tests {
		var buf strings.Builder
		testutil.AssertNoError(t, emitter.EmitTo(&buf, test.node, test.parent))
		testutil.ExpectEq(t, test.want, buf.String())
	}
}

func TestBegin(t *testing.T) {
	seq := ast.New(ast.K_BEGIN, send(nil, "a"), send(nil, "b"))

	expectUnparse(t, "a()\nb()", seq)
	expectUnparse(t, "()", ast.New(ast.K_BEGIN))
	expectUnparse(t, "[(a(); b())]", ast.New(ast.K_ARRAY, seq))
	expectUnparse(t, "x = (a(); b())", ast.New(ast.K_LVASGN, ast.Symbol("x"), seq))
	expectUnparse(t, "(a(); b())\nc()", ast.New(ast.K_BEGIN, seq, send(nil, "c")))
	expectUnparse(t, "-(a(); b())", send(seq, "-@"))
}

func TestConditionals(t *testing.T) {
	a, b := lvar("a"), lvar("b")

	expectUnparse(t, "if a\n  1\nend", ast.New(ast.K_IF, a, num(1), nil))
	expectUnparse(t, "if a\nend", ast.New(ast.K_IF, a, nil, nil))
	expectUnparse(t, "if a\n  1\nelse\n  2\nend", ast.New(ast.K_IF, a, num(1), num(2)))
	expectUnparse(t,
		"if a\n  1\nelsif b\n  2\nelse\n  3\nend",
		ast.New(ast.K_IF, a, num(1), ast.New(ast.K_IF, b, num(2), num(3))),
	)
	expectUnparse(t,
		"if a\n  if b\n    1\n    2\n  end\nend",
		ast.New(ast.K_IF, a, ast.New(ast.K_IF, b, ast.New(ast.K_BEGIN, num(1), num(2)), nil), nil),
	)
}

func TestLoops(t *testing.T) {
	body := ast.New(ast.K_LVASGN, ast.Symbol("x"), send(lvar("x"), "+", num(1)))
	expectUnparse(t,
		"while x < 10\n  x = x + 1\nend",
		ast.New(ast.K_WHILE, send(lvar("x"), "<", num(10)), body),
	)
	expectUnparse(t, "until done?()\nend", ast.New(ast.K_UNTIL, send(nil, "done?"), nil))

	withBlock := ast.New(ast.K_BLOCK, send(nil, "foo"), ast.New(ast.K_ARGS), nil)
	expectUnparse(t, "while (foo() do\nend)\nend", ast.New(ast.K_WHILE, withBlock, nil))
}

func TestDefinitions(t *testing.T) {
	params := ast.New(ast.K_ARGS,
		ast.New(ast.K_ARG, ast.Symbol("a")),
		ast.New(ast.K_OPTARG, ast.Symbol("b"), num(2)),
	)
	expectUnparse(t,
		"def add(a, b = 2)\n  return (a + b)\nend",
		ast.New(ast.K_DEF, ast.Symbol("add"), params,
			ast.New(ast.K_RETURN, send(lvar("a"), "+", lvar("b")))),
	)
	expectUnparse(t, "def noop\nend", ast.New(ast.K_DEF, ast.Symbol("noop"), ast.New(ast.K_ARGS), nil))

	block := ast.New(ast.K_BLOCK,
		send(ast.New(ast.K_ARRAY, num(1)), "each"),
		ast.New(ast.K_ARGS, ast.New(ast.K_ARG, ast.Symbol("x"))),
		ast.New(ast.K_BEGIN, send(nil, "puts", lvar("x")), ast.New(ast.K_NEXT)),
	)
	expectUnparse(t, "[1].each do |x|\n  puts(x)\n  next\nend", block)
}

func TestCollections(t *testing.T) {
	expectUnparse(t, "[]", ast.New(ast.K_ARRAY))
	expectUnparse(t, "{}", ast.New(ast.K_HASH))
	expectUnparse(t, `{:a => 1, "b" => [2, 3]}`, ast.New(ast.K_HASH,
		ast.New(ast.K_PAIR, ast.New(ast.K_SYM, ast.Symbol("a")), num(1)),
		ast.New(ast.K_PAIR, ast.New(ast.K_STR, "b"), ast.New(ast.K_ARRAY, num(2), num(3))),
	))
	expectUnparse(t, "[(return (1))]", ast.New(ast.K_ARRAY, ast.New(ast.K_RETURN, num(1))))
}

func TestUnknownNodeKind(t *testing.T) {
	var buf strings.Builder
	err := emitter.EmitTo(&buf, ast.New(ast.Kind(200)), emitter.Parent{})
	testutil.AssertError(t, err)

	var unknown *emitter.UnknownNodeKindError
	testutil.ExpectTrue(t, errors.As(err, &unknown))
	testutil.ExpectEq(t, ast.Kind(200), unknown.Kind())
	testutil.ExpectEq(t, "no emitter registered for node kind Kind(200)", err.Error())
	testutil.ExpectEq(t, "", buf.String())
}

func TestUnknownNodeKindPartialOutput(t *testing.T) {
	node := send(nil, "foo", ast.New(ast.Kind(200)))

	var buf strings.Builder
	err := emitter.EmitTo(&buf, node, emitter.Parent{})
	testutil.AssertError(t, err)
	testutil.ExpectEq(t, "foo(", buf.String())

	out, err := emitter.Unparse(node)
	testutil.AssertError(t, err)
	testutil.ExpectEq(t, "", out)
}

type failingWriter struct{}

var errWriteFailed = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

func TestWriterError(t *testing.T) {
	err := emitter.UnparseTo(send(nil, "foo"), failingWriter{})
	testutil.ExpectTrue(t, errors.Is(err, errWriteFailed))
}

func TestSupported(t *testing.T) {
	testutil.ExpectSliceEq(t, ast.Kinds(), emitter.Supported())
}

func TestRoleString(t *testing.T) {
	testutil.ExpectEq(t, "operand", emitter.RoleOperand.String())
	testutil.ExpectEq(t, "none", emitter.RoleNone.String())
	testutil.ExpectEq(t, "unknown", emitter.Role(99).String())
}

var roundTripSources = []string{
	"",
	"1 + 2 * 3 - 4",
	"(1 + 2) * 3",
	"1 == 2 != 3",
	"a = 1\nb = a - -1",
	"-(1)",
	"-1.abs",
	"x = 1\n- - -x",
	"x = 1\n- !- (x + 1)",
	`'say "hi"'`,
	"x = 1\n-x",
	"!foo()",
	"x = nil || true && false",
	"foo(1, 2).bar[3] = 4",
	"a = [1, 2]\na[0] = a[1]",
	"a = 1\na.b = 2 + 3",
	`h = {a: 1, "b" => [2], 3 => {}}`,
	"return",
	"return 1, 2",
	"return (1) || 2",
	"foo() || return 1",
	"foo() && break",
	"x = (return 1)",
	"def m(a, b = 2)\n  return a + b\nend",
	"def f\nend",
	"def f()\n  (1; 2)\nend",
	"[1, 2].each do |x|\n  next x\nend",
	"foo() do\nend.bar",
	"foo() do ||\nend",
	"while x < 10 do\n  x = x + 1\nend",
	"until (foo() do\nend)\nend",
	"if a\n  1\nelsif b\n  2\nelse\n  3\nend",
	"if a\nelse\n  if b\n    1\n  end\nend",
	"x = if true then 1 else 2 end",
	"Foo::Bar.baz",
	":sym",
	`:"odd sym"`,
	`"tab\tquote\" \#{not} interpolated"`,
	`'single \' quote'`,
	`"\x00\x1fé"`,
	"@x = $y",
	"1.5e-7\n2.0\n1e20",
	"(a; b)\nc",
	"x = (1; 2)",
	"[[1], {}, ()]",
	"()",
	"a = b = c = 1",
	"a = 1\n(a + 1).to_s(2).size",
	"x = -9223372036854775808",
	"puts(-(2 + 3) * 4)",
	"foo!() && bar?(1)",
}

func TestRoundTrip(t *testing.T) {
	for _, src := range roundTripSources {
		want := testutil.MustParse(t, src)

		generated, err := emitter.Unparse(want)
		testutil.AssertNoError(t, err)

		reparsed, err := syntax.Parse([]byte(generated))
		if err != nil {
			t.Errorf("source %q generated unparseable %q: %v", src, generated, err)
			continue
		}
		testutil.ExpectNodeEq(t, want, ast.Normalize(reparsed))

		// a second pass is a fixed point
		again, err := emitter.Unparse(ast.Normalize(reparsed))
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, generated, again)
	}
}
