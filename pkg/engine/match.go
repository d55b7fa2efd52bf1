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
	"unicode/utf8"
)

// 🎯 Mode selects what an evaluation produces
type Mode string

const (
	ModeMatch   Mode = "match"
	ModeReplace Mode = "replace"
)

// ParseMode recognizes exactly "replace"; anything else is match mode
func ParseMode(s string) Mode {
	if s == string(ModeReplace) {
		return ModeReplace
	}
	return ModeMatch
}

// 📦 Group is one capture group of a match
type Group struct {
	Number  int    `json:"number"`         // 1-based position in the pattern
	Name    string `json:"name,omitempty"` // empty for unnamed groups
	Value   string `json:"value"`
	Matched bool   `json:"matched"` // false when the group did not participate
}

// 🎯 Match is a single match normalized across backends
type Match struct {
	Text   string           `json:"text"`
	Index  int              `json:"index"` // offset in code points into the original text
	Groups []Group          `json:"groups"`
	Named  map[string]Group `json:"named,omitempty"`
}

// End returns the code point offset just past the match
func (m Match) End() int {
	return m.Index + utf8.RuneCountInString(m.Text)
}

// ByteOffsets returns the byte offset at which each code point of text
// starts, followed by len(text). An invalid UTF-8 byte counts as one code
// point, the same way a []rune conversion counts it, so code point offsets
// from any backend map back onto the original bytes.
func ByteOffsets(text string) []int {
	out := make([]int, 0, len(text)+1)
	for i := range text {
		out = append(out, i)
	}
	return append(out, len(text))
}

func (m *Match) addGroup(g Group) {
	m.Groups = append(m.Groups, g)
	if g.Name == "" {
		return
	}
	if m.Named == nil {
		m.Named = make(map[string]Group)
	}
	m.Named[g.Name] = g
}

// 📊 Result is the outcome of one evaluation
type Result struct {
	Mode    Mode    `json:"mode"`
	Matches []Match `json:"matches,omitempty"`
	Output  string  `json:"output,omitempty"` // replace mode only
}

// CompileError is returned when a pattern or its flags are rejected.
// Message is the engine's own diagnostic.
type CompileError struct {
	Pattern string
	Flags   string
	Message string
}

func (e *CompileError) Error() string {
	return e.Message
}
