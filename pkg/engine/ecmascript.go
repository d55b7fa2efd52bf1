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
	"strconv"
	"time"

	"github.com/dlclark/regexp2"
)

// slot maps a group's position in the pattern to regexp2's group number.
// regexp2 numbers named groups after all unnamed ones; patterns number
// groups left to right.
type slot struct {
	name string
	num  int
}

type ecmaMatcher struct {
	re     *regexp2.Regexp
	layout []slot
}

func compileECMAScript(pattern string, f Flags, timeout time.Duration) (*ecmaMatcher, error) {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if f.IgnoreCase {
		opts |= regexp2.IgnoreCase
	}
	if f.Multiline {
		opts |= regexp2.Multiline
	}
	if f.DotAll {
		opts |= regexp2.Singleline
	}
	if f.Unicode {
		opts |= regexp2.Unicode
	}

	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}

	return &ecmaMatcher{re: re, layout: ecmaLayout(re, pattern)}, nil
}

func ecmaLayout(re *regexp2.Regexp, pattern string) []slot {
	nums := re.GetGroupNumbers()
	total := len(nums) - 1

	names := captureNames(pattern)
	if len(names) != total {
		// the scan disagrees with the engine; trust the engine's order
		out := make([]slot, 0, total)
		for _, n := range nums[1:] {
			name := re.GroupNameFromNumber(n)
			if name == strconv.Itoa(n) {
				name = ""
			}
			out = append(out, slot{name: name, num: n})
		}
		return out
	}

	out := make([]slot, 0, total)
	unnamed := 1
	for _, name := range names {
		if name == "" {
			out = append(out, slot{num: unnamed})
			unnamed++
			continue
		}
		out = append(out, slot{name: name, num: re.GroupNumberFromName(name)})
	}
	return out
}

func (e *ecmaMatcher) find(in *input, start int) (*Match, error) {
	if start > in.len() {
		return nil, nil
	}

	res, err := e.re.FindRunesMatchStartingAt(in.runes, start)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}

	m := &Match{Text: in.slice(res.Index, res.Index+res.Length), Index: res.Index, Groups: make([]Group, 0, len(e.layout))}
	for i, s := range e.layout {
		g := Group{Number: i + 1, Name: s.name}
		if grp := res.GroupByNumber(s.num); grp != nil && len(grp.Captures) > 0 {
			g.Value = in.slice(grp.Index, grp.Index+grp.Length)
			g.Matched = true
		}
		m.addGroup(g)
	}
	return m, nil
}
