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

package verify

import (
	"io/fs"
	"os"
	"sync"
)

// A Source is one input to verify.
type Source interface {
	// Identification names the source in diagnostics.
	Identification() string

	// OriginalSource returns the text to verify. Errors are I/O failures.
	OriginalSource() (string, error)
}

type stringSource struct {
	text string
}

// NewStringSource returns a Source for literal text.
func NewStringSource(text string) Source {
	return &stringSource{text: text}
}

func (s *stringSource) Identification() string {
	return "(string)"
}

func (s *stringSource) OriginalSource() (string, error) {
	return s.text, nil
}

type fileSource struct {
	path string
	read func() (string, error)
}

// NewFileSource returns a Source backed by a file on disk. The file is
// read on first use and the result is cached, including a read error.
func NewFileSource(path string) Source {
	return newFileSource(path, func() ([]byte, error) {
		return os.ReadFile(path)
	})
}

// NewFileSourceFS is like [NewFileSource] but reads path from fsys.
func NewFileSourceFS(fsys fs.FS, path string) Source {
	return newFileSource(path, func() ([]byte, error) {
		return fs.ReadFile(fsys, path)
	})
}

func newFileSource(path string, readFile func() ([]byte, error)) *fileSource {
	return &fileSource{
		path: path,
		read: sync.OnceValues(func() (string, error) {
			content, err := readFile()
			if err != nil {
				return "", err
			}
			return string(content), nil
		}),
	}
}

func (s *fileSource) Identification() string {
	return "(" + s.path + ")"
}

func (s *fileSource) OriginalSource() (string, error) {
	return s.read()
}
