// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gridfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A Reader reads Results in the Go benchmark format. Its API is
// modeled on bufio.Scanner.
//
// Lines that are neither configuration nor benchmark lines are
// skipped. A malformed benchmark line stops the Reader with a
// *SyntaxError.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	line     int
	err      error

	config []Config
	result *Result
}

// A SyntaxError reports a malformed line.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// NewReader returns a Reader reading from r. fileName is only used in
// error messages.
func NewReader(r io.Reader, fileName string) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	return &Reader{s: bufio.NewScanner(r), fileName: fileName}
}

// Scan advances to the next result and reports whether there was
// one. When Scan returns false, Err reports why.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.line++
		line := r.s.Text()
		if strings.HasPrefix(line, "Benchmark") {
			res, err := r.parseResult(line)
			if err != nil {
				r.err = err
				return false
			}
			if res != nil {
				r.result = res
				return true
			}
			continue
		}
		if key, val, ok := parseConfig(line); ok {
			r.setConfig(key, val)
		}
	}
	r.err = r.s.Err()
	return false
}

// Result returns the result read by the last successful Scan. The
// caller owns it.
func (r *Reader) Result() *Result { return r.result }

// Err returns the first I/O or syntax error, or nil at a clean end of
// input.
func (r *Reader) Err() error { return r.err }

func (r *Reader) setConfig(key, val string) {
	for i, c := range r.config {
		if c.Key == key {
			if val == "" {
				r.config = append(r.config[:i], r.config[i+1:]...)
			} else {
				r.config[i].Value = val
			}
			return
		}
	}
	if val != "" {
		r.config = append(r.config, Config{key, val})
	}
}

// parseConfig parses a "key: value" line. Keys start with a lower
// case letter and contain no upper case letters or spaces.
func parseConfig(line string) (key, val string, ok bool) {
	key, val, ok = strings.Cut(line, ":")
	if !ok || key == "" {
		return "", "", false
	}
	if c, _ := utf8.DecodeRuneInString(key); !unicode.IsLower(c) {
		return "", "", false
	}
	if strings.IndexFunc(key, func(c rune) bool { return unicode.IsUpper(c) || unicode.IsSpace(c) }) >= 0 {
		return "", "", false
	}
	return key, strings.TrimSpace(val), true
}

// parseResult parses a benchmark line. It returns nil, nil for lines
// that merely start with "Benchmark", such as "BenchmarkFoo" with no
// fields.
func (r *Reader) parseResult(line string) (*Result, error) {
	f := strings.Fields(line)
	name := strings.TrimPrefix(f[0], "Benchmark")
	if len(f) < 2 || name == "" {
		return nil, nil
	}
	if c, _ := utf8.DecodeRuneInString(name); unicode.IsLower(c) {
		// "Benchmarking" and friends are not benchmark lines.
		return nil, nil
	}
	iters, err := strconv.Atoi(f[1])
	if err != nil {
		return nil, r.syntaxError("parsing iteration count: %v", err)
	}
	res := &Result{
		Config: append([]Config(nil), r.config...),
		Name:   name,
		Iters:  iters,
	}
	rest := f[2:]
	if len(rest) == 0 {
		return nil, r.syntaxError("missing measurements")
	}
	if len(rest)%2 != 0 {
		return nil, r.syntaxError("missing unit after %s", rest[len(rest)-1])
	}
	for i := 0; i < len(rest); i += 2 {
		v, err := strconv.ParseFloat(rest[i], 64)
		if err != nil {
			return nil, r.syntaxError("parsing measurement: %v", err)
		}
		res.Values = append(res.Values, Value{v, rest[i+1]})
	}
	return res, nil
}

func (r *Reader) syntaxError(format string, args ...any) error {
	return &SyntaxError{r.fileName, r.line, fmt.Sprintf(format, args...)}
}
