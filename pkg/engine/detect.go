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

import "strings"

// backtrackingTokens are constructs RE2 cannot execute
var backtrackingTokens = []string{
	// lookaround
	"(?=", "(?!", "(?<=", "(?<!",
	// named back-reference
	`\k<`,
	// escapes RE2 spells differently
	`\u`, `\c`, `\x{`,
}

// needsBacktracking reports whether pattern uses syntax only the
// ECMAScript backend understands
func needsBacktracking(pattern string) bool {
	for _, tok := range backtrackingTokens {
		if strings.Contains(pattern, tok) {
			return true
		}
	}

	// numbered back-references \1 .. \9
	escaped := false
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '\\' {
			escaped = false
			continue
		}
		if !escaped && i+1 < len(pattern) && pattern[i+1] >= '1' && pattern[i+1] <= '9' {
			return true
		}
		escaped = !escaped
	}

	return false
}

// captureNames lists the capturing groups of pattern in the order they
// open: the group name, or "" for an unnamed group.
func captureNames(pattern string) []string {
	var names []string
	inClass := false
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '(':
			rest := pattern[i+1:]
			switch {
			case !strings.HasPrefix(rest, "?"):
				names = append(names, "")
			case strings.HasPrefix(rest, "?<=") || strings.HasPrefix(rest, "?<!"):
			case strings.HasPrefix(rest, "?<"):
				names = appendName(names, rest[2:], '>')
			case strings.HasPrefix(rest, "?P<"):
				names = appendName(names, rest[3:], '>')
			case strings.HasPrefix(rest, "?'"):
				names = appendName(names, rest[2:], '\'')
			}
		}
	}
	return names
}

func appendName(names []string, rest string, close byte) []string {
	end := strings.IndexByte(rest, close)
	if end <= 0 {
		return names
	}
	return append(names, rest[:end])
}
