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

package library

import (
	"strings"
)

// 📚 Entry is a named example pattern with the flags it is meant to run with
type Entry struct {
	Name    string `json:"name" yaml:"name"`
	Pattern string `json:"pattern" yaml:"pattern"`
	Flags   string `json:"flags" yaml:"flags"`
}

var defaults = []Entry{
	{Name: "Email Address", Pattern: `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`, Flags: "g"},
	{Name: "URL", Pattern: `https?://[\w\-._~:/?#\[\]@!$&'()*+,;=%]+`, Flags: "gi"},
	{Name: "Phone (US)", Pattern: `\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`, Flags: "g"},
	{Name: "Phone (International)", Pattern: `\+?\d{1,4}[-.\s]?\(?\d{1,3}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9}`, Flags: "g"},
	{Name: "IPv4 Address", Pattern: `\b(?:(?:25[0-5]|2[0-4]\d|[01]?\d\d?)\.){3}(?:25[0-5]|2[0-4]\d|[01]?\d\d?)\b`, Flags: "g"},
	{Name: "IPv6 Address", Pattern: `([0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}`, Flags: "g"},
	{Name: "Date (YYYY-MM-DD)", Pattern: `\d{4}[-/](?:0[1-9]|1[0-2])[-/](?:0[1-9]|[12]\d|3[01])`, Flags: "g"},
	{Name: "Date (MM/DD/YYYY)", Pattern: `(?:0[1-9]|1[0-2])/(?:0[1-9]|[12]\d|3[01])/\d{4}`, Flags: "g"},
	{Name: "Time (HH:MM:SS)", Pattern: `(?:[01]\d|2[0-3]):[0-5]\d(?::[0-5]\d)?`, Flags: "g"},
	{Name: "Hex Color", Pattern: `#(?:[0-9a-fA-F]{3}){1,2}\b`, Flags: "gi"},
	{Name: "HTML Tag", Pattern: `<\/?[a-zA-Z][a-zA-Z0-9]*(?:\s[^>]*)?\/?>`, Flags: "g"},
	{Name: "Credit Card", Pattern: `\b(?:\d[ -]*?){13,19}\b`, Flags: "g"},
	{Name: "SSN (US)", Pattern: `\b\d{3}-\d{2}-\d{4}\b`, Flags: "g"},
	{Name: "Slug", Pattern: `[a-z0-9]+(?:-[a-z0-9]+)*`, Flags: "g"},
	{Name: "Username", Pattern: `[a-zA-Z0-9_]{3,20}`, Flags: "g"},
	{Name: "Strong Password", Pattern: `(?=.*[a-z])(?=.*[A-Z])(?=.*\d)(?=.*[@$!%*?&])[A-Za-z\d@$!%*?&]{8,}`, Flags: ""},
}

// 🎯 Defaults returns a copy of the built-in entries in display order
func Defaults() []Entry {
	out := make([]Entry, len(defaults))
	copy(out, defaults)
	return out
}

// 📦 Library is an ordered set of entries addressable by name
type Library struct {
	entries []Entry
	index   map[string]int
}

// 🏭 New builds a library from the built-ins followed by extra entries.
// An extra entry whose name matches an existing one replaces it in place.
func New(extra ...Entry) *Library {
	lib := &Library{index: make(map[string]int)}
	for _, e := range defaults {
		lib.put(e)
	}
	for _, e := range extra {
		lib.put(e)
	}
	return lib
}

func (l *Library) put(e Entry) {
	key := normalize(e.Name)
	if i, ok := l.index[key]; ok {
		l.entries[i] = e
		return
	}
	l.index[key] = len(l.entries)
	l.entries = append(l.entries, e)
}

// All returns every entry in display order
func (l *Library) All() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// 🔍 Lookup finds an entry by name, ignoring case and surrounding space
func (l *Library) Lookup(name string) (Entry, bool) {
	i, ok := l.index[normalize(name)]
	if !ok {
		return Entry{}, false
	}
	return l.entries[i], true
}

// Len returns the number of entries
func (l *Library) Len() int {
	return len(l.entries)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
