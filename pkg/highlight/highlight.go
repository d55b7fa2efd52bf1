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

// Package highlight turns a text and its matches into display segments.
package highlight

import (
	"html"
	"html/template"
	"strings"

	"github.com/fatih/color"
	"github.com/walteh/regexlab/pkg/engine"
)

// 🎨 Segment is a run of text that is either plain or part of a match
type Segment struct {
	Text   string `json:"text"`
	Match  bool   `json:"match"`
	Number int    `json:"number,omitempty"` // 1-based match number, 0 for plain text
}

// 🎯 Segments splits text into alternating plain and highlighted runs that
// cover it exactly once. matches must be sorted by Index; a match that
// starts before the end of the previous one, or runs past the text, is
// skipped. Zero-length matches become empty highlighted segments.
func Segments(text string, matches []engine.Match) []Segment {
	if len(matches) == 0 {
		return []Segment{{Text: text}}
	}

	// slicing the original bytes keeps invalid UTF-8 intact
	offs := engine.ByteOffsets(text)
	n := len(offs) - 1
	out := make([]Segment, 0, 2*len(matches)+1)
	last := 0
	for i, m := range matches {
		end := m.End()
		if m.Index < last || end > n {
			continue
		}
		if m.Index > last {
			out = append(out, Segment{Text: text[offs[last]:offs[m.Index]]})
		}
		out = append(out, Segment{Text: text[offs[m.Index]:offs[end]], Match: true, Number: i + 1})
		last = end
	}
	if last < n || len(out) == 0 {
		out = append(out, Segment{Text: text[offs[last]:]})
	}

	return out
}

// Join concatenates the segments back into text
func Join(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// 🌐 HTML renders segments for a markup surface. All text is escaped and
// matches are wrapped in <mark class="match">.
func HTML(segments []Segment) template.HTML {
	var b strings.Builder
	for _, s := range segments {
		if !s.Match {
			b.WriteString(html.EscapeString(s.Text))
			continue
		}
		b.WriteString(`<mark class="match">`)
		b.WriteString(html.EscapeString(s.Text))
		b.WriteString(`</mark>`)
	}
	return template.HTML(b.String()) //nolint:gosec // every segment is escaped above
}

// 🖥️ ANSI renders segments for a terminal, painting matches with c.
// A nil c uses black on yellow.
func ANSI(segments []Segment, c *color.Color) string {
	if c == nil {
		c = color.New(color.BgYellow, color.FgBlack)
	}

	var b strings.Builder
	for _, s := range segments {
		if s.Match && s.Text != "" {
			b.WriteString(c.Sprint(s.Text))
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
