// Copyright 2017 Alexey Naidyonov. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE.md file.

package includelines

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"
)

// ErrPathEscapes is reported when a source path is not local to the root.
var ErrPathEscapes = errors.New("path escapes from root")

var errIsDir = errors.New("is a directory")

// OpenError records a failure to open a source file.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string { return "error opening " + e.Path + ": " + e.Err.Error() }
func (e *OpenError) Unwrap() error { return e.Err }

// DecodeError is returned in Strict mode for a record that is not valid UTF-8.
type DecodeError struct {
	Path   string
	Record int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: line %d is not valid UTF-8", e.Path, e.Record)
}

// Reader produces the lines of a text file one at a time, in file order.
// Lines are split on '\n'; a trailing "\n" or "\r\n" is removed and a final
// newline does not produce an empty last line. Lines that are not valid
// UTF-8 are skipped unless the Strict flag is set.
//
// A Reader is single pass: once consumed it yields nothing further.
type Reader struct {
	br     *bufio.Reader
	closer io.Closer
	path   string
	strict bool

	line   string
	record int
	err    error
	done   bool
}

// Open opens the file name relative to root. Absolute names are accepted
// when they lie inside root.
func Open(root, name string, flags Flag) (*Reader, error) {
	if root == "" {
		root = "."
	}
	rel := name
	if filepath.IsAbs(name) {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, &OpenError{Path: name, Err: err}
		}
		if rel, err = filepath.Rel(absRoot, name); err != nil {
			return nil, &OpenError{Path: name, Err: ErrPathEscapes}
		}
	}
	if !filepath.IsLocal(rel) {
		return nil, &OpenError{Path: name, Err: ErrPathEscapes}
	}
	dir, err := os.OpenRoot(root)
	if err != nil {
		return nil, &OpenError{Path: name, Err: err}
	}
	defer dir.Close()
	file, err := dir.Open(rel)
	if err != nil {
		return nil, &OpenError{Path: name, Err: err}
	}
	if fi, err := file.Stat(); err != nil || fi.IsDir() {
		file.Close()
		if err == nil {
			err = errIsDir
		}
		return nil, &OpenError{Path: name, Err: err}
	}
	r := NewReader(file, flags)
	r.closer = file
	r.path = name
	return r, nil
}

// NewReader returns a Reader over rd. Closing the Reader does not close rd.
func NewReader(rd io.Reader, flags Flag) *Reader {
	return &Reader{
		br:     bufio.NewReader(rd),
		path:   "<input>",
		strict: flags.Strict(),
	}
}

// Scan advances to the next decodable line. It returns false at the end of
// input or on error; Err tells them apart.
func (r *Reader) Scan() bool {
	if r.done {
		return false
	}
	for {
		s, err := r.br.ReadString('\n')
		if err != nil && err != io.EOF {
			r.fail(err)
			return false
		}
		if s == "" {
			r.done = true
			return false
		}
		r.record++
		if strings.HasSuffix(s, "\n") {
			s = strings.TrimSuffix(s[:len(s)-1], "\r")
		}
		if !utf8.ValidString(s) {
			if r.strict {
				r.fail(&DecodeError{Path: r.path, Record: r.record})
				return false
			}
			continue
		}
		r.line = s
		return true
	}
}

func (r *Reader) fail(err error) {
	r.err = err
	r.line = ""
	r.done = true
}

// Text returns the line produced by the last successful Scan.
func (r *Reader) Text() string { return r.line }

// Err returns the first error that stopped the scan, if any.
func (r *Reader) Err() error { return r.err }

// All returns the remaining lines as an iterator. Check Err afterwards.
func (r *Reader) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for r.Scan() {
			if !yield(r.Text()) {
				return
			}
		}
	}
}

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// ReadLines returns all decodable lines of the file name under root.
func ReadLines(root, name string, flags Flag) ([]string, error) {
	r, err := Open(root, name, flags)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	lines := slices.Collect(r.All())
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}
	return lines, nil
}

// CountLines returns the number of lines ReadLines would return, without
// keeping their content.
func CountLines(root, name string, flags Flag) (int, error) {
	r, err := Open(root, name, flags)
	if err != nil {
		return 0, err
	}
	defer r.Close()
	n := 0
	for r.Scan() {
		n++
	}
	if err := r.Err(); err != nil {
		return 0, fmt.Errorf("error reading %s: %w", name, err)
	}
	return n, nil
}
