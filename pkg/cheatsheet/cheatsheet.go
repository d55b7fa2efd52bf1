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

// Package cheatsheet holds the regular-expression quick reference shown next
// to the tester.
package cheatsheet

import "strings"

// Row is one token and what it does
type Row struct {
	Token       string `json:"token"`
	Description string `json:"description"`
}

// Section groups related rows under a title
type Section struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

var sections = []Section{
	{Title: "Character Classes", Rows: []Row{
		{`.`, "Any character (except newline)"},
		{`\d`, "Digit [0-9]"},
		{`\D`, "Non-digit"},
		{`\w`, "Word char [a-zA-Z0-9_]"},
		{`\W`, "Non-word char"},
		{`\s`, "Whitespace"},
		{`\S`, "Non-whitespace"},
		{`[abc]`, "Any of a, b, or c"},
		{`[^abc]`, "Not a, b, or c"},
		{`[a-z]`, "Range a to z"},
	}},
	{Title: "Anchors", Rows: []Row{
		{`^`, "Start of string/line"},
		{`$`, "End of string/line"},
		{`\b`, "Word boundary"},
		{`\B`, "Non-word boundary"},
	}},
	{Title: "Quantifiers", Rows: []Row{
		{`*`, "0 or more"},
		{`+`, "1 or more"},
		{`?`, "0 or 1"},
		{`{n}`, "Exactly n"},
		{`{n,}`, "n or more"},
		{`{n,m}`, "Between n and m"},
		{`*?`, "Lazy 0 or more"},
		{`+?`, "Lazy 1 or more"},
	}},
	{Title: "Groups & Lookaround", Rows: []Row{
		{`(abc)`, "Capture group"},
		{`(?:abc)`, "Non-capture group"},
		{`(?<name>abc)`, "Named capture group"},
		{`\1`, "Back-reference"},
		{`(?=abc)`, "Lookahead"},
		{`(?!abc)`, "Negative lookahead"},
		{`(?<=abc)`, "Lookbehind"},
		{`(?<!abc)`, "Negative lookbehind"},
	}},
	{Title: "Flags", Rows: []Row{
		{`g`, "Global: find all matches"},
		{`i`, "Case-insensitive"},
		{`m`, "Multiline (^ $ per line)"},
		{`s`, "Dotall (. matches newline)"},
		{`u`, "Unicode"},
		{`y`, "Sticky (from lastIndex)"},
	}},
}

// Sections returns the full cheat sheet
func Sections() []Section {
	out := make([]Section, len(sections))
	for i, s := range sections {
		out[i] = Section{Title: s.Title, Rows: append([]Row(nil), s.Rows...)}
	}
	return out
}

// Filter keeps the rows whose token or description contains query,
// ignoring case. Sections left without rows are dropped.
func Filter(query string) []Section {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Sections()
	}

	var out []Section
	for _, s := range sections {
		var rows []Row
		for _, r := range s.Rows {
			if strings.Contains(strings.ToLower(r.Token), q) || strings.Contains(strings.ToLower(r.Description), q) {
				rows = append(rows, r)
			}
		}
		if len(rows) > 0 {
			out = append(out, Section{Title: s.Title, Rows: rows})
		}
	}
	return out
}
