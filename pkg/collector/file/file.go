// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package file

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrNoValue is returned by GetValue when the file holds no usable value.
var ErrNoValue = errors.New("file holds no value")

// Option configures a Parser.
type Option func(*Parser)

// Parser reads and splits small text files.
type Parser struct {
	delimiter       string
	maxSize         int64
	skipComments    bool
	kvDelimiter     string
	vTrimChars      string
	skipEmptyValues bool
}

// WithDelimiter sets the entry delimiter. Default is "\n".
func WithDelimiter(delim string) Option {
	return func(p *Parser) {
		p.delimiter = delim
	}
}

// WithMaxSize sets the largest file, in bytes, the parser will accept.
// Default is 1MB.
func WithMaxSize(size int64) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments controls whether "#" lines are dropped. Default is true.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithKVDelimiter sets the key/value separator used by GetMap. Default is "=".
func WithKVDelimiter(kvDelim string) Option {
	return func(p *Parser) {
		p.kvDelimiter = kvDelim
	}
}

// WithVTrimChars sets characters trimmed from both ends of values,
// typically quotes.
func WithVTrimChars(trimChars string) Option {
	return func(p *Parser) {
		p.vTrimChars = trimChars
	}
}

// WithSkipEmptyValues drops GetMap entries whose value is empty, including
// lines without a key/value separator.
func WithSkipEmptyValues(skip bool) Option {
	return func(p *Parser) {
		p.skipEmptyValues = skip
	}
}

// NewParser returns a Parser with the given options applied over the defaults.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		delimiter:    "\n",
		maxSize:      1 << 20,
		skipComments: true,
		kvDelimiter:  "=",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetLines returns the trimmed, non-empty entries of the file at path.
func (p *Parser) GetLines(path string) ([]string, error) {
	content, err := p.read(path)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(content, p.delimiter)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if p.skipComments && strings.HasPrefix(part, "#") {
			continue
		}
		result = append(result, part)
	}
	return result, nil
}

// GetMap parses the file at path into key/value pairs. Lines without the
// separator map to an empty value unless WithSkipEmptyValues is set.
// Later keys override earlier ones.
func (p *Parser) GetMap(path string) (map[string]string, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(lines))
	for _, line := range lines {
		key, value, _ := strings.Cut(line, p.kvDelimiter)
		key = strings.TrimSpace(key)
		value = p.trimValue(value)

		if p.skipEmptyValues && value == "" {
			slog.Debug("skipping entry without value",
				slog.String("path", path),
				slog.String("key", key))
			continue
		}
		result[key] = value
	}
	return result, nil
}

// GetValue returns the first entry of a single-value file, such as a sysfs
// attribute. It returns ErrNoValue when the file is empty.
func (p *Parser) GetValue(path string) (string, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("%q: %w", path, ErrNoValue)
	}

	v := p.trimValue(lines[0])
	if v == "" {
		return "", fmt.Errorf("%q: %w", path, ErrNoValue)
	}
	return v, nil
}

func (p *Parser) trimValue(v string) string {
	v = strings.TrimSpace(v)
	if p.vTrimChars != "" {
		v = strings.Trim(v, p.vTrimChars)
	}
	return v
}

func (p *Parser) read(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", path, err)
	}
	defer f.Close()

	// sysfs and procfs report size 0, so the limit is enforced while reading.
	b, err := io.ReadAll(io.LimitReader(f, p.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", path, err)
	}
	if int64(len(b)) > p.maxSize {
		return "", fmt.Errorf("file %q exceeds maximum size of %d bytes", path, p.maxSize)
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	return string(b), nil
}
