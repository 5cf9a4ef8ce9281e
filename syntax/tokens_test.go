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
	"testing"

	"github.com/naw/unparser/internal/testutil"
	"github.com/naw/unparser/syntax"
)

type strToken struct {
	kind    string
	content string
}

func TestTokens(t *testing.T) {
	t.Parallel()

	testsJSON, err := fs.ReadFile(testdata, "tokens/tokens.json")
	testutil.AssertNoError(t, err)

	tests := make(map[string][]map[string]any)
	decoder := json.NewDecoder(bytes.NewReader(testsJSON))
	decoder.UseNumber()
	testutil.AssertNoError(t, decoder.Decode(&tests))

	for ii, test := range tests["expect_ok"] {
		src := test["source"].(string)
		var tokens []strToken
		for _, iface := range test["tokens"].([]any) {
			raw := iface.([]any)
			tokens = append(tokens, strToken{
				kind:    raw[0].(string),
				content: raw[1].(string),
			})
		}
		t.Run(fmt.Sprintf("expect_ok/%d", ii), func(t *testing.T) {
			testTokensOK(t, src, tokens)
		})
	}

	for ii, test := range tests["expect_err"] {
		t.Run(fmt.Sprintf("expect_err/%d", ii), func(t *testing.T) {
			testTokensErr(t, test)
		})
	}
}

func testTokensOK(t *testing.T, src string, want []strToken) {
	t.Logf("source: %q", src)

	tokens, err := syntax.NewTokens([]byte(src))
	testutil.AssertNoError(t, err)

	var got []strToken
	for {
		var token syntax.Token
		testutil.AssertNoError(t, tokens.Next(&token))
		if token.Kind == syntax.T_EOF {
			break
		}
		got = append(got, strToken{
			kind:    token.Kind.String(),
			content: src[:token.Len],
		})
		src = src[token.Len:]
	}

	testutil.ExpectSliceEq(t, want, got)
}

func testTokensErr(t *testing.T, test map[string]any) {
	src := test["source"].(string)
	t.Logf("source: %q", src)

	tokens, err := syntax.NewTokens([]byte(src))
	if err == nil {
		var token syntax.Token
		for {
			if err = tokens.Next(&token); err != nil || token.Kind == syntax.T_EOF {
				break
			}
		}
	}
	testutil.AssertError(t, err)
	checkSyntaxError(t, test, err)
}

func TestTokenKindString(t *testing.T) {
	testutil.ExpectEq(t, "IDENT", syntax.T_IDENT.String())
	testutil.ExpectEq(t, "TokenKind(250)", syntax.TokenKind(250).String())
}
