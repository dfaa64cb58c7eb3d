// Copyright 2017 Alexey Naidyonov. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE.md file.

package includelines

import (
	"errors"
	"fmt"
)

var ErrUnknownKind = errors.New("unknown kind")

// Kind selects what is emitted for a source file.
type Kind int

const (
	// [...]string array of the lines
	LinesKind Kind = iota

	// [...][]byte array of independent copies of the lines
	BytesKind

	// Integer constant with the number of lines
	CountKind

	// Length constant plus a [NameLen]string array sized by it
	StaticLinesKind

	// Length constant plus a [NameLen][]byte array sized by it
	StaticBytesKind
)

var kindNames = [...]string{
	LinesKind:       "lines",
	BytesKind:       "bytes",
	CountKind:       "count",
	StaticLinesKind: "static",
	StaticBytesKind: "static-bytes",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Static reports whether the kind declares a length constant next to the array.
func (k Kind) Static() bool { return k == StaticLinesKind || k == StaticBytesKind }

// Owned reports whether array elements are []byte copies.
func (k Kind) Owned() bool { return k == BytesKind || k == StaticBytesKind }

// ParseKind maps a kind name back to its Kind. The empty string means LinesKind.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return LinesKind, nil
	}
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownKind, s)
}
