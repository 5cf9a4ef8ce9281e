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
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/naw/unparser/internal/config"
	"github.com/naw/unparser/verify"
)

type cmdVerify struct {
	streams
	flagSet *pflag.FlagSet

	eval       []string
	configPath string
}

func (*cmdVerify) help() *commandHelp {
	return &commandHelp{
		usage:   "verify [options] [PATH...]",
		summary: "Check that sources survive a parse/unparse round trip",
	}
}

func (cmd *cmdVerify) flags(flags *pflag.FlagSet) {
	cmd.flagSet = flags
	defaults := config.Default()

	flags.StringArrayVarP(&cmd.eval, "eval", "e", nil, "verify SOURCE given on the command line (repeatable)")
	flags.StringVar(&cmd.configPath, "config", "", "read options from FILE instead of ./"+config.FileName)
	flags.StringSlice("ignore", nil, "skip paths matching GLOB while walking directories")
	flags.Bool("fail-fast", false, "stop after the first failing source")
	flags.String("diff", defaults.Diff, "AST diff renderer: unified or compact")
	flags.Int("context", defaults.Context, "context lines in unified diffs")
	flags.String("color", defaults.Color, "colour reports: auto, always or never")
	flags.Int("max-depth", defaults.MaxDepth, "maximum expression nesting accepted by the parser")
	flags.BoolP("verbose", "v", false, "log each source as it is checked")
}

func (cmd *cmdVerify) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if cmd.configPath != "" {
		cfg, err = config.Load(cmd.configPath)
	} else {
		cfg, err = config.LoadDefault(".")
	}
	if err != nil {
		return nil, err
	}
	if cmd.flagSet != nil {
		if err := cfg.Override(cmd.flagSet); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (cmd *cmdVerify) run(ctx context.Context, argv []string) int {
	cfg, err := cmd.loadConfig()
	if err != nil {
		fmt.Fprintln(cmd.stderr, err)
		return 1
	}
	log := newLogger(cmd.stderr, cfg.Verbose)
	defer log.Sync()

	sources, err := collectSources(cfg, cmd.eval, argv, log)
	if err != nil {
		fmt.Fprintln(cmd.stderr, err)
		return 1
	}
	if len(sources) == 0 {
		fmt.Fprintln(cmd.stderr, "No sources to verify (pass PATH arguments or -e SOURCE)")
		return 1
	}

	opts := verify.NewOptions(cfg.VerifyOptions()...)
	colors := newReportColors(cfg.Color, cmd.stdout)

	checked, failed, errored := 0, 0, 0
	for _, source := range sources {
		if ctx.Err() != nil {
			break
		}
		check := opts.Check(source)
		id := check.Identification()
		log.Debug("verifying", zap.String("source", id))
		checked++

		ok, err := check.Success()
		if err != nil {
			errored++
			fmt.Fprintf(cmd.stderr, "%s: %v\n", id, err)
			if cfg.FailFast {
				break
			}
			continue
		}
		if ok {
			log.Debug("round trip matched", zap.String("source", id))
			continue
		}

		failed++
		state, _ := check.State()
		log.Warn("round trip failed", zap.String("source", id), zap.Stringer("state", state))
		report, err := check.ErrorReport()
		if err != nil {
			fmt.Fprintf(cmd.stderr, "%s: %v\n", id, err)
			continue
		}
		fmt.Fprintln(cmd.stdout, colors.title.Sprint(id))
		fmt.Fprint(cmd.stdout, colors.report(report))
		if cfg.FailFast {
			break
		}
	}

	fmt.Fprintf(cmd.stdout, "%d checked, %d failed, %d errors\n", checked, failed, errored)
	if failed > 0 || errored > 0 {
		return 1
	}
	return 0
}

// collectSources turns -e arguments and paths into sources. Directories
// are walked for *.rb files; explicitly named files are always included.
func collectSources(cfg *config.Config, eval []string, paths []string, log *zap.Logger) ([]verify.Source, error) {
	var sources []verify.Source
	for _, text := range eval {
		sources = append(sources, verify.NewStringSource(text))
	}
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			sources = append(sources, verify.NewFileSource(root))
			continue
		}
		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && cfg.Ignored(path) {
				log.Debug("ignoring", zap.String("path", path))
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !entry.IsDir() && filepath.Ext(path) == ".rb" {
				sources = append(sources, verify.NewFileSource(path))
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return sources, nil
}
