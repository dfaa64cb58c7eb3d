// Copyright 2017 Alexey Naidyonov. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE.md file.

package includelines

import "bytes"

type Flag int

const (
	// Fail on records that are not valid UTF-8 instead of skipping them
	Strict Flag = 1 << iota

	// Derive unexported identifiers from file names
	Unexported

	// Do not emit doc comments on generated declarations
	NoComments

	maxFlag uint = iota
)

func (f Flag) has(flag Flag) bool {
	return (f & flag) != 0
}

func (f Flag) Strict() bool     { return f.has(Strict) }
func (f Flag) Unexported() bool { return f.has(Unexported) }
func (f Flag) Comments() bool   { return !f.has(NoComments) }

func (f Flag) Set(s Flag, c bool) Flag {
	if c {
		return f | s
	}
	return f
}

func (f Flag) String() string {
	var buf bytes.Buffer
	var add = func(s string) {
		if buf.Len() > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(s)
	}
	if f.has(Strict) {
		add("Strict")
	}
	if f.has(Unexported) {
		add("Unexported")
	}
	if f.has(NoComments) {
		add("NoComments")
	}
	return buf.String()
}
