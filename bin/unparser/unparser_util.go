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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/naw/unparser/syntax"
)

// newLogger writes progress to w. Reports never go through the logger.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	encoderConfig.CallerKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}

// readInput returns the text to process and a name for diagnostics: the
// -e argument, stdin for "-", or the named file.
func readInput(in streams, eval string, argv []string) (src string, name string, err error) {
	switch {
	case eval != "" && len(argv) > 0:
		return "", "", errors.New("pass either -e SOURCE or a PATH, not both")
	case eval != "":
		return eval, "(string)", nil
	case len(argv) != 1:
		return "", "", errors.New("expected exactly one PATH (or -e SOURCE)")
	case argv[0] == "-":
		buf, err := io.ReadAll(in.stdin)
		return string(buf), "(stdin)", err
	}
	buf, err := os.ReadFile(argv[0])
	return string(buf), argv[0], err
}

// formatParseError prefixes a syntax error with its line and column.
func formatParseError(name, src string, err error) string {
	var syntaxErr *syntax.Error
	if !errors.As(err, &syntaxErr) {
		return fmt.Sprintf("%s: %v", name, err)
	}
	line, col := lineCol(src, int(syntaxErr.Span().Start()))
	return fmt.Sprintf("%s:%d:%d: %v", name, line, col, err)
}

// lineCol maps a byte offset to a 1-based line and column. Columns count
// bytes.
func lineCol(src string, offset int) (int, int) {
	if offset > len(src) {
		offset = len(src)
	}
	before := src[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - strings.LastIndexByte(before, '\n')
	return line, col
}

type reportColors struct {
	title   *color.Color
	removed *color.Color
	added   *color.Color
	hunk    *color.Color
	section *color.Color
}

// newReportColors resolves a --color mode. In "auto" mode colours are
// used only when w is a terminal.
func newReportColors(mode string, w io.Writer) *reportColors {
	colors := &reportColors{
		title:   color.New(color.Bold),
		removed: color.New(color.FgRed),
		added:   color.New(color.FgGreen),
		hunk:    color.New(color.FgCyan),
		section: color.New(color.FgYellow),
	}
	enabled := mode == "always"
	if mode == "auto" {
		if f, ok := w.(*os.File); ok {
			enabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}
	for _, c := range []*color.Color{colors.title, colors.removed, colors.added, colors.hunk, colors.section} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return colors
}

var reportSections = map[string]bool{
	"Original-Source:":  true,
	"Original-AST:":     true,
	"Generated-Source:": true,
	"Generated-AST:":    true,
	"Source:":           true,
}

// report colours the leading AST diff and the section headers. Lines after
// the first header are source text or dumps and stay plain.
func (colors *reportColors) report(report string) string {
	lines := strings.SplitAfter(report, "\n")
	var buf strings.Builder
	inDiff := true
	for _, line := range lines {
		text := strings.TrimSuffix(line, "\n")
		eol := line[len(text):]
		var c *color.Color
		switch {
		case reportSections[text]:
			inDiff = false
			c = colors.section
		case strings.HasPrefix(text, "Parsing of "):
			inDiff = false
			c = colors.title
		case !inDiff:
		case strings.HasPrefix(text, "@@"):
			c = colors.hunk
		case strings.HasPrefix(text, "---"), strings.HasPrefix(text, "+++"):
			c = colors.title
		case strings.HasPrefix(text, "-"):
			c = colors.removed
		case strings.HasPrefix(text, "+"):
			c = colors.added
		}
		if c == nil || text == "" {
			buf.WriteString(line)
			continue
		}
		buf.WriteString(c.Sprint(text))
		buf.WriteString(eol)
	}
	return buf.String()
}
