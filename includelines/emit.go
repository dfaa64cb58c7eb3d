// Copyright 2017 Alexey Naidyonov. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE.md file.

package includelines

import "github.com/dave/jennifer/jen"

// LinesArray renders lines as [...]string{...}.
func LinesArray(lines []string) *jen.Statement {
	return SizedLinesArray(jen.Op("..."), lines)
}

// SizedLinesArray renders lines as [size]string{...}.
func SizedLinesArray(size jen.Code, lines []string) *jen.Statement {
	return jen.Index(size).String().ValuesFunc(elements(lines, func(s string) jen.Code {
		return jen.Lit(s)
	}))
}

// BytesArray renders lines as [...][]byte{[]byte("..."), ...}, so every
// element is a separately allocated copy.
func BytesArray(lines []string) *jen.Statement {
	return SizedBytesArray(jen.Op("..."), lines)
}

// SizedBytesArray renders lines as [size][]byte{...}.
func SizedBytesArray(size jen.Code, lines []string) *jen.Statement {
	return jen.Index(size).Index().Byte().ValuesFunc(elements(lines, func(s string) jen.Code {
		return jen.Index().Byte().Parens(jen.Lit(s))
	}))
}

// CountLit renders n as an untyped integer literal.
func CountLit(n int) *jen.Statement {
	return jen.Lit(n)
}

// elements puts one element per line, with a trailing comma.
func elements(lines []string, lit func(string) jen.Code) func(*jen.Group) {
	return func(g *jen.Group) {
		for _, line := range lines {
			g.Line().Add(lit(line))
		}
		if len(lines) > 0 {
			g.Line()
		}
	}
}
