// Copyright 2017 Alexey Naidyonov. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE.md file.

// Package includelines turns the lines of text files into Go declarations:
// fixed-size arrays of the lines, or the number of lines as a constant.
// It is meant to be run from go:generate so that the data is compiled into
// the program and no file access is needed at run time.
package includelines

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/iancoleman/strcase"

	"github.com/growler/go-includelines/internal/ctxlog"
)

var (
	ErrInvalidName   = errors.New("invalid identifier")
	ErrDuplicateName = errors.New("duplicate identifier")
)

const header = "Code generated by go-includelines. DO NOT EDIT."

// lenSuffix names the length constant of the static kinds.
const lenSuffix = "Len"

// Entry asks for one declaration built from File.
// An empty Name is derived from the file name, see DefaultName.
type Entry struct {
	Name string
	File string
	Kind Kind
}

// Generator builds Go source for a set of entries. Files are resolved
// relative to Root, which defaults to the working directory.
//
// Every entry reads its file afresh. Two separate runs against a file that
// changed in between may disagree; the static kinds take the length and the
// content from a single read.
type Generator struct {
	Root    string
	Package string
	Flags   Flag
}

// DefaultName derives an identifier from the base name of file without its
// extension: "file.txt" gives FileLines, or FileLineCount for CountKind.
func DefaultName(file string, kind Kind, flags Flag) string {
	base := filepath.Base(file)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	suffix := "_lines"
	if kind == CountKind {
		suffix = "_line_count"
	}
	if flags.Unexported() {
		return strcase.ToLowerCamel(stem + suffix)
	}
	return strcase.ToCamel(stem + suffix)
}

func (g *Generator) root() string {
	if g.Root == "" {
		return "."
	}
	return g.Root
}

func (g *Generator) name(e Entry) (string, error) {
	name := e.Name
	if name == "" {
		name = DefaultName(e.File, e.Kind, g.Flags)
	}
	if !token.IsIdentifier(name) || name == "_" {
		return "", fmt.Errorf("%w %q for %s", ErrInvalidName, name, e.File)
	}
	return name, nil
}

// Expr returns the bare expression for e: an array literal, or the line
// count literal for CountKind. Static kinds give an array with a literal
// length.
func (g *Generator) Expr(ctx context.Context, e Entry) (jen.Code, error) {
	if e.Kind == CountKind {
		n, err := g.count(ctx, e.File)
		if err != nil {
			return nil, err
		}
		return CountLit(n), nil
	}
	lines, err := g.read(ctx, e.File)
	if err != nil {
		return nil, err
	}
	switch e.Kind {
	case LinesKind:
		return LinesArray(lines), nil
	case BytesKind:
		return BytesArray(lines), nil
	case StaticLinesKind:
		return SizedLinesArray(CountLit(len(lines)), lines), nil
	case StaticBytesKind:
		return SizedBytesArray(CountLit(len(lines)), lines), nil
	}
	return nil, fmt.Errorf("%w %s", ErrUnknownKind, e.Kind)
}

// File builds the generated file holding one declaration group per entry,
// in entry order.
func (g *Generator) File(ctx context.Context, entries []Entry) (*jen.File, error) {
	if !token.IsIdentifier(g.Package) || g.Package == "_" {
		return nil, fmt.Errorf("%w: package name %q", ErrInvalidName, g.Package)
	}
	f := jen.NewFile(g.Package)
	f.HeaderComment(header)

	owners := make(map[string]string)
	claim := func(name, file string) error {
		if prev, ok := owners[name]; ok {
			return fmt.Errorf("%w %s (from %s and %s)", ErrDuplicateName, name, prev, file)
		}
		owners[name] = file
		return nil
	}
	for i, e := range entries {
		name, err := g.name(e)
		if err != nil {
			return nil, err
		}
		if err = claim(name, e.File); err != nil {
			return nil, err
		}
		if e.Kind.Static() {
			if err = claim(name+lenSuffix, e.File); err != nil {
				return nil, err
			}
		}
		if i > 0 {
			f.Line()
		}
		if err = g.declare(ctx, f, name, e); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (g *Generator) declare(ctx context.Context, f *jen.File, name string, e Entry) error {
	src := filepath.ToSlash(e.File)
	if e.Kind == CountKind {
		n, err := g.count(ctx, e.File)
		if err != nil {
			return err
		}
		g.comment(f, "%s is the number of lines in %s.", name, src)
		f.Const().Id(name).Op("=").Add(CountLit(n))
		return nil
	}

	lines, err := g.read(ctx, e.File)
	if err != nil {
		return err
	}
	var array *jen.Statement
	switch e.Kind {
	case LinesKind:
		array = LinesArray(lines)
	case BytesKind:
		array = BytesArray(lines)
	case StaticLinesKind, StaticBytesKind:
		size := name + lenSuffix
		g.comment(f, "%s is the number of lines in %s.", size, src)
		f.Const().Id(size).Op("=").Add(CountLit(len(lines)))
		f.Line()
		if e.Kind == StaticLinesKind {
			array = SizedLinesArray(jen.Id(size), lines)
		} else {
			array = SizedBytesArray(jen.Id(size), lines)
		}
	default:
		return fmt.Errorf("%w %s", ErrUnknownKind, e.Kind)
	}
	if e.Kind.Owned() {
		g.comment(f, "%s holds a private copy of each line of %s.", name, src)
	} else {
		g.comment(f, "%s holds the lines of %s.", name, src)
	}
	f.Var().Id(name).Op("=").Add(array)
	return nil
}

func (g *Generator) comment(f *jen.File, format string, args ...any) {
	if g.Flags.Comments() {
		f.Comment(fmt.Sprintf(format, args...))
	}
}

func (g *Generator) read(ctx context.Context, file string) ([]string, error) {
	lines, err := ReadLines(g.root(), file, g.Flags)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("read lines", "file", file, "lines", len(lines))
	return lines, nil
}

func (g *Generator) count(ctx context.Context, file string) (int, error) {
	n, err := CountLines(g.root(), file, g.Flags)
	if err != nil {
		return 0, err
	}
	ctxlog.FromContext(ctx).Debug("counted lines", "file", file, "lines", n)
	return n, nil
}

// WriteFile renders the file for entries and writes it to out. Nothing is
// written if any entry fails.
func (g *Generator) WriteFile(ctx context.Context, out string, entries []Entry) error {
	f, err := g.File(ctx, entries)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err = f.Render(&buf); err != nil {
		return fmt.Errorf("error rendering %s: %w", out, err)
	}
	if dir := filepath.Dir(out); dir != "." {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err = os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("generated", "output", out, "package", g.Package, "entries", len(entries))
	return nil
}
