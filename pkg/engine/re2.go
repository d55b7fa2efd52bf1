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
	"github.com/coregx/coregex"
)

type re2Matcher struct {
	re    *coregex.Regex
	names []string
	limit int
}

func compileRE2(pattern string, f Flags) (*re2Matcher, error) {
	prefix := ""
	if f.IgnoreCase {
		prefix += "i"
	}
	if f.Multiline {
		prefix += "m"
	}
	if f.DotAll {
		prefix += "s"
	}
	expr := pattern
	if prefix != "" {
		expr = "(?" + prefix + ")" + pattern
	}

	re, err := coregex.Compile(expr)
	if err != nil {
		return nil, err
	}

	limit := 1
	if f.Global {
		limit = -1
	}
	return &re2Matcher{re: re, names: re.SubexpNames(), limit: limit}, nil
}

// find walks the spans coregex reports for the whole text. coregex has no
// public resume-at-offset search, so the text is scanned once per input.
func (r *re2Matcher) find(in *input, start int) (*Match, error) {
	if !in.scanned {
		in.spans = r.re.FindAllStringSubmatchIndex(in.text, r.limit)
		in.scanned = true
	}

	for ; in.cursor < len(in.spans); in.cursor++ {
		loc := in.spans[in.cursor]
		if in.runeIndex(loc[0]) < start {
			continue
		}
		in.cursor++
		return r.convert(in, loc), nil
	}
	return nil, nil
}

func (r *re2Matcher) convert(in *input, loc []int) *Match {
	m := &Match{
		Text:   in.text[loc[0]:loc[1]],
		Index:  in.runeIndex(loc[0]),
		Groups: make([]Group, 0, len(loc)/2-1),
	}
	for i := 1; i < len(loc)/2; i++ {
		g := Group{Number: i}
		if i < len(r.names) {
			g.Name = r.names[i]
		}
		if s, e := loc[2*i], loc[2*i+1]; s >= 0 && e >= 0 {
			g.Value = in.text[s:e]
			g.Matched = true
		}
		m.addGroup(g)
	}
	return m
}
