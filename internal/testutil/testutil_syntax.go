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
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"testing"

	"github.com/naw/unparser/ast"
	"github.com/naw/unparser/syntax"
)

// TestdataFS returns the repository's top-level testdata directory.
func TestdataFS() (fs.FS, error) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("testutil: cannot locate source file")
	}
	root := filepath.Join(filepath.Dir(file), "..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}
	return os.DirFS(root), nil
}

type SyntaxError struct {
	code    uint32
	message string
	pattern *regexp.Regexp
}

func (err *SyntaxError) Code() uint32 {
	return err.code
}

func (err *SyntaxError) Message() string {
	return err.message
}

func (err *SyntaxError) MessagePattern() *regexp.Regexp {
	return err.pattern
}

func LoadSyntaxErrors(testdata fs.FS) (map[string]*SyntaxError, error) {
	type syntaxError struct {
		Code    uint32 `json:"code"`
		Message string `json:"message"`
		Pattern string `json:"message_pattern"`
	}

	jsonData, err := fs.ReadFile(testdata, "diagnostics/syntax_errors.json")
	if err != nil {
		return nil, err
	}

	var rawErrors map[string]syntaxError
	decoder := json.NewDecoder(bytes.NewReader(jsonData))
	decoder.UseNumber()
	if err := decoder.Decode(&rawErrors); err != nil {
		return nil, err
	}

	out := make(map[string]*SyntaxError, len(rawErrors))
	codes := make(map[uint32]string, len(rawErrors))
	for key, raw := range rawErrors {
		if raw.Code == 0 {
			return nil, fmt.Errorf("syntax error %q has no error code", key)
		}
		if other, conflict := codes[raw.Code]; conflict {
			return nil, fmt.Errorf("syntax errors %q and %q share code %d", key, other, raw.Code)
		}
		codes[raw.Code] = key

		var pattern *regexp.Regexp
		if raw.Pattern != "" {
			pattern, err = regexp.Compile("(?i)" + raw.Pattern)
			if err != nil {
				return nil, err
			}
		}
		out[key] = &SyntaxError{
			code:    raw.Code,
			message: raw.Message,
			pattern: pattern,
		}
	}

	return out, nil
}

// SpanOrDie decodes a {"start": N, "len": N} object from a test fixture.
func SpanOrDie(t *testing.T, value any) ast.Span {
	t.Helper()
	obj, ok := value.(map[string]any)
	if !ok {
		t.Fatalf("expected span object, got %#v", value)
	}
	field := func(name string) uint32 {
		num, ok := obj[name].(json.Number)
		if !ok {
			t.Fatalf("span field %q: expected number, got %#v", name, obj[name])
		}
		n, err := num.Int64()
		if err != nil || n < 0 {
			t.Fatalf("span field %q: invalid value %s", name, num)
		}
		return uint32(n)
	}
	return ast.NewSpan(field("start"), field("len"))
}

// MustParse parses src and strips spans from the result.
func MustParse(t *testing.T, src string) *ast.Node {
	t.Helper()
	node, err := syntax.Parse([]byte(src))
	AssertNoError(t, err)
	return ast.Normalize(node)
}
