// Copyright 2025 walteh LLC
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

package engine

import (
	"strings"
)

// 🚩 Flags are the modifiers a pattern is compiled with
type Flags struct {
	Global     bool // g: find every match instead of stopping at the first
	IgnoreCase bool // i
	Multiline  bool // m: ^ and $ match at line boundaries
	DotAll     bool // s: . matches newline
	Unicode    bool // u
	Sticky     bool // y: a match must start exactly at the search position
}

// FlagOrder is the canonical order flags are rendered in
const FlagOrder = "gimsuy"

// 🔍 ParseFlags parses a flags string such as "gi". Unknown or repeated
// letters are rejected the same way the pattern itself would be.
func ParseFlags(s string) (Flags, error) {
	var f Flags
	seen := make(map[rune]bool, len(s))
	for _, c := range s {
		if seen[c] {
			return Flags{}, invalidFlags(s)
		}
		seen[c] = true

		switch c {
		case 'g':
			f.Global = true
		case 'i':
			f.IgnoreCase = true
		case 'm':
			f.Multiline = true
		case 's':
			f.DotAll = true
		case 'u':
			f.Unicode = true
		case 'y':
			f.Sticky = true
		default:
			return Flags{}, invalidFlags(s)
		}
	}
	return f, nil
}

// Has reports whether the flag letter c is set
func (f Flags) Has(c rune) bool {
	switch c {
	case 'g':
		return f.Global
	case 'i':
		return f.IgnoreCase
	case 'm':
		return f.Multiline
	case 's':
		return f.DotAll
	case 'u':
		return f.Unicode
	case 'y':
		return f.Sticky
	}
	return false
}

// 📝 String renders the flags in canonical order
func (f Flags) String() string {
	var b strings.Builder
	for _, c := range FlagOrder {
		if f.Has(c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func invalidFlags(s string) *CompileError {
	return &CompileError{
		Flags:   s,
		Message: "Invalid flags supplied to RegExp constructor '" + s + "'",
	}
}
