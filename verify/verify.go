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

// Package verify checks that regenerated source is faithful by round
// tripping it: parse, unparse, parse again and compare the normalized
// trees.
//
// A parse failure is an outcome of a [Check], reported through
// [Check.State] and [Check.ErrorReport]; it is never returned as an error.
// Only I/O failures and trees the emitter cannot render are returned as
// errors, so a caller scanning many sources can continue past individual
// failures.
package verify

import (
	"errors"
	"fmt"
	"sync"

	"github.com/naw/unparser/ast"
	"github.com/naw/unparser/diff"
	"github.com/naw/unparser/emitter"
	"github.com/naw/unparser/syntax"
)

type Parser interface {
	Parse(src []byte) (*ast.Node, error)
}

// ParserFunc adapts a function to the [Parser] interface.
type ParserFunc func(src []byte) (*ast.Node, error)

func (fn ParserFunc) Parse(src []byte) (*ast.Node, error) {
	return fn(src)
}

type Option interface {
	apply(*Options)
}

type option func(*Options)

func (fn option) apply(opts *Options) {
	fn(opts)
}

func WithParser(parser Parser) Option {
	return option(func(opts *Options) {
		opts.parser = parser
	})
}

func WithDiffer(differ diff.Differ) Option {
	return option(func(opts *Options) {
		opts.differ = differ
	})
}

type Options struct {
	parser Parser
	differ diff.Differ
}

func NewOptions(opts ...Option) *Options {
	out := &Options{
		parser: syntax.NewParseOptions(),
		differ: diff.Unified{Context: diff.DefaultContext},
	}
	for _, opt := range opts {
		opt.apply(out)
	}
	return out
}

func NewCheck(source Source, opts ...Option) *Check {
	return NewOptions(opts...).Check(source)
}

type State uint8

const (
	StateInitial State = iota
	StateOriginalParsed
	StateOriginalParseFailed
	StateGeneratedParsed
	StateGeneratedParseFailed
	StateMatch
	StateMismatch
)

var stateNames = [...]string{
	StateInitial:              "initial",
	StateOriginalParsed:       "original-parsed",
	StateOriginalParseFailed:  "original-parse-failed",
	StateGeneratedParsed:      "generated-parsed",
	StateGeneratedParseFailed: "generated-parse-failed",
	StateMatch:                "match",
	StateMismatch:             "mismatch",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// parsed is the outcome of one parse: a normalized tree, or the parser's
// complaint.
type parsed struct {
	node *ast.Node
	err  error
}

// A Check verifies one Source. Every derived value is computed at most
// once, on first use; a Check is safe for concurrent use.
type Check struct {
	source Source
	opts   *Options

	originalAST     func() (parsed, error)
	generatedSource func() (string, error)
	generatedAST    func() (parsed, error)
	report          func() (string, error)
}

func (opts *Options) Check(source Source) *Check {
	c := &Check{
		source: source,
		opts:   opts,
	}
	c.originalAST = sync.OnceValues(c.parseOriginal)
	c.generatedSource = sync.OnceValues(c.unparseOriginal)
	c.generatedAST = sync.OnceValues(c.parseGenerated)
	c.report = sync.OnceValues(c.buildReport)
	return c
}

func (c *Check) parse(src string) parsed {
	node, err := c.opts.parser.Parse([]byte(src))
	if err != nil {
		return parsed{err: err}
	}
	return parsed{node: ast.Normalize(node)}
}

func (c *Check) parseOriginal() (parsed, error) {
	src, err := c.source.OriginalSource()
	if err != nil {
		return parsed{}, err
	}
	return c.parse(src), nil
}

func (c *Check) unparseOriginal() (string, error) {
	original, err := c.originalAST()
	if err != nil {
		return "", err
	}
	if original.err != nil {
		return "", nil
	}
	return emitter.Unparse(original.node)
}

func (c *Check) parseGenerated() (parsed, error) {
	original, err := c.originalAST()
	if err != nil || original.err != nil {
		return parsed{}, err
	}
	src, err := c.generatedSource()
	if err != nil {
		return parsed{}, err
	}
	return c.parse(src), nil
}

func (c *Check) Identification() string {
	return c.source.Identification()
}

func (c *Check) OriginalSource() (string, error) {
	return c.source.OriginalSource()
}

// OriginalAST returns the normalized tree of the original source, or nil
// when it does not parse.
func (c *Check) OriginalAST() (*ast.Node, error) {
	original, err := c.originalAST()
	return original.node, err
}

// GeneratedSource returns the regenerated text, or "" when the original
// source does not parse.
func (c *Check) GeneratedSource() (string, error) {
	return c.generatedSource()
}

// GeneratedAST returns the normalized tree of the regenerated text, or
// nil when either parse failed.
func (c *Check) GeneratedAST() (*ast.Node, error) {
	generated, err := c.generatedAST()
	return generated.node, err
}

// State runs the check as far as needed and returns its terminal state.
func (c *Check) State() (State, error) {
	original, err := c.originalAST()
	if err != nil {
		return StateInitial, err
	}
	if original.err != nil {
		return StateOriginalParseFailed, nil
	}
	generated, err := c.generatedAST()
	if err != nil {
		return StateOriginalParsed, err
	}
	if generated.err != nil {
		return StateGeneratedParseFailed, nil
	}
	if ast.Equal(original.node, generated.node) {
		return StateMatch, nil
	}
	return StateMismatch, nil
}

func (c *Check) Success() (bool, error) {
	state, err := c.State()
	return state == StateMatch, err
}

// Err returns nil for a matching round trip, an I/O or emitter error if
// the check could not run, and otherwise one of [*OriginalParseError],
// [*GeneratedParseError] or [*MismatchError].
func (c *Check) Err() error {
	state, err := c.State()
	if err != nil {
		return err
	}
	id := c.Identification()
	switch state {
	case StateOriginalParseFailed:
		original, _ := c.originalAST()
		return &OriginalParseError{identification: id, cause: original.err}
	case StateGeneratedParseFailed:
		generated, _ := c.generatedAST()
		src, _ := c.generatedSource()
		return &GeneratedParseError{identification: id, source: src, cause: generated.err}
	case StateMismatch:
		return &MismatchError{identification: id, diff: c.astDiff()}
	}
	return nil
}

// ErrorReport describes a failed check in enough detail to locate the
// fault without rerunning it. It is empty when the round trip matches.
func (c *Check) ErrorReport() (string, error) {
	return c.report()
}

func (c *Check) astDiff() string {
	original, _ := c.originalAST()
	generated, _ := c.generatedAST()
	return c.opts.differ.Diff(
		diff.Lines(ast.Dump(original.node)),
		diff.Lines(ast.Dump(generated.node)),
	)
}

// IsParseFailure reports whether err is an [*OriginalParseError] or a
// [*GeneratedParseError].
func IsParseFailure(err error) bool {
	var original *OriginalParseError
	var generated *GeneratedParseError
	return errors.As(err, &original) || errors.As(err, &generated)
}
