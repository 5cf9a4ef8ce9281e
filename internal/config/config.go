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

// Package config loads the command line's optional `.unparser.yml` file
// and merges it with explicitly set flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"

	"github.com/naw/unparser/diff"
	"github.com/naw/unparser/syntax"
	"github.com/naw/unparser/verify"
)

const FileName = ".unparser.yml"

type Config struct {
	// Ignore holds glob patterns matched against both the walked path and
	// its base name.
	Ignore   []string `yaml:"ignore"`
	FailFast bool     `yaml:"fail_fast"`
	Diff     string   `yaml:"diff"`
	Context  int      `yaml:"context"`
	Color    string   `yaml:"color"`
	MaxDepth int      `yaml:"max_depth"`
	Verbose  bool     `yaml:"verbose"`
}

func Default() *Config {
	return &Config{
		Diff:     "unified",
		Context:  diff.DefaultContext,
		Color:    "auto",
		MaxDepth: syntax.DefaultMaxDepth,
	}
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault reads FileName from dir. A missing file yields the
// defaults.
func LoadDefault(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (cfg *Config) Validate() error {
	switch cfg.Diff {
	case "unified", "compact":
	default:
		return fmt.Errorf("diff: unsupported renderer %q (choose 'unified' or 'compact')", cfg.Diff)
	}
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color: unsupported mode %q (choose 'auto', 'always' or 'never')", cfg.Color)
	}
	if cfg.Context < 0 {
		return fmt.Errorf("context: must not be negative, got %d", cfg.Context)
	}
	if cfg.MaxDepth < 1 {
		return fmt.Errorf("max_depth: must be positive, got %d", cfg.MaxDepth)
	}
	for _, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("ignore: invalid pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// Override applies every flag the user set explicitly. Ignore patterns
// from flags are added to those from the file.
func (cfg *Config) Override(flags *pflag.FlagSet) error {
	var err error
	flags.Visit(func(flag *pflag.Flag) {
		if err != nil {
			return
		}
		switch flag.Name {
		case "ignore":
			var patterns []string
			patterns, err = flags.GetStringSlice(flag.Name)
			cfg.Ignore = append(cfg.Ignore, patterns...)
		case "fail-fast":
			cfg.FailFast, err = flags.GetBool(flag.Name)
		case "diff":
			cfg.Diff = flag.Value.String()
		case "context":
			cfg.Context, err = flags.GetInt(flag.Name)
		case "color":
			cfg.Color = flag.Value.String()
		case "max-depth":
			cfg.MaxDepth, err = flags.GetInt(flag.Name)
		case "verbose":
			cfg.Verbose, err = flags.GetBool(flag.Name)
		}
	})
	if err != nil {
		return err
	}
	return cfg.Validate()
}

// Ignored reports whether path matches one of the ignore patterns.
func (cfg *Config) Ignored(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range cfg.Ignore {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

func (cfg *Config) Differ() diff.Differ {
	if cfg.Diff == "compact" {
		return diff.Compact{}
	}
	return diff.Unified{
		Context:  cfg.Context,
		FromFile: "original",
		ToFile:   "generated",
	}
}

func (cfg *Config) VerifyOptions() []verify.Option {
	return []verify.Option{
		verify.WithParser(syntax.NewParseOptions(syntax.WithMaxDepth(cfg.MaxDepth))),
		verify.WithDiffer(cfg.Differ()),
	}
}
