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

package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/naw/unparser"
	"github.com/naw/unparser/ast"
	"github.com/naw/unparser/syntax"
)

type cmdUnparse struct {
	streams
	eval     string
	maxDepth int
}

func (*cmdUnparse) help() *commandHelp {
	return &commandHelp{
		usage:   "unparse [-e SOURCE | PATH]",
		summary: "Print the source regenerated from the parsed tree",
	}
}

func (cmd *cmdUnparse) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.eval, "eval", "e", "", "read SOURCE from the command line")
	flags.IntVar(&cmd.maxDepth, "max-depth", syntax.DefaultMaxDepth, "maximum expression nesting")
}

func (cmd *cmdUnparse) run(ctx context.Context, argv []string) int {
	src, name, err := readInput(cmd.streams, cmd.eval, argv)
	if err != nil {
		fmt.Fprintln(cmd.stderr, err)
		return 1
	}
	out, err := unparser.UnparseSource([]byte(src), syntax.WithMaxDepth(cmd.maxDepth))
	if err != nil {
		fmt.Fprintln(cmd.stderr, formatParseError(name, src, err))
		return 1
	}
	fmt.Fprintln(cmd.stdout, out)
	return 0
}

type cmdDump struct {
	streams
	eval     string
	maxDepth int
}

func (*cmdDump) help() *commandHelp {
	return &commandHelp{
		usage:   "dump [-e SOURCE | PATH]",
		summary: "Print the normalized syntax tree",
	}
}

func (cmd *cmdDump) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.eval, "eval", "e", "", "read SOURCE from the command line")
	flags.IntVar(&cmd.maxDepth, "max-depth", syntax.DefaultMaxDepth, "maximum expression nesting")
}

func (cmd *cmdDump) run(ctx context.Context, argv []string) int {
	src, name, err := readInput(cmd.streams, cmd.eval, argv)
	if err != nil {
		fmt.Fprintln(cmd.stderr, err)
		return 1
	}
	node, err := syntax.Parse([]byte(src), syntax.WithMaxDepth(cmd.maxDepth))
	if err != nil {
		fmt.Fprintln(cmd.stderr, formatParseError(name, src, err))
		return 1
	}
	fmt.Fprintln(cmd.stdout, ast.Dump(ast.Normalize(node)))
	return 0
}
