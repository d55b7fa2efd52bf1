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

// expand writes the replacement for m to b. The template follows the
// browser's String.prototype.replace rules:
//
//	$$       a literal $
//	$&       the whole match
//	$`       the text before the match
//	$'       the text after the match
//	$n, $nn  group n (1-99); two digits win when they name a group
//	$<name>  a named group, only when the pattern has named groups
//
// Groups that did not participate expand to nothing. Anything else is
// copied through unchanged.
func expand(b *strings.Builder, template, text string, offs []int, m Match) {
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '$' || i+1 == len(template) {
			b.WriteByte(c)
			continue
		}

		switch next := template[i+1]; {
		case next == '$':
			b.WriteByte('$')
			i++
		case next == '&':
			b.WriteString(m.Text)
			i++
		case next == '`':
			b.WriteString(text[:offs[m.Index]])
			i++
		case next == '\'':
			b.WriteString(text[offs[m.End()]:])
			i++
		case isDigit(next):
			if i+2 < len(template) && isDigit(template[i+2]) {
				if n := int(next-'0')*10 + int(template[i+2]-'0'); n >= 1 && n <= len(m.Groups) {
					b.WriteString(m.Groups[n-1].Value)
					i += 2
					continue
				}
			}
			if n := int(next - '0'); n >= 1 && n <= len(m.Groups) {
				b.WriteString(m.Groups[n-1].Value)
				i++
				continue
			}
			b.WriteByte('$')
		case next == '<' && len(m.Named) > 0:
			end := strings.IndexByte(template[i+2:], '>')
			if end < 0 {
				b.WriteByte('$')
				continue
			}
			if g, ok := m.Named[template[i+2:i+2+end]]; ok {
				b.WriteString(g.Value)
			}
			i += 2 + end
		default:
			b.WriteByte('$')
		}
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
