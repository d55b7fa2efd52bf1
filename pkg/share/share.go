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

// Package share encodes the editable state into a shareable URL and back.
package share

import (
	"net/url"

	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexlab/pkg/engine"
)

// 🔗 State is everything a shared link carries
type State struct {
	Pattern     string      `json:"pattern"`
	Flags       string      `json:"flags"`
	Text        string      `json:"text"`
	Mode        engine.Mode `json:"mode"`
	Replacement string      `json:"replacement"`
}

// Patch holds the fields a link actually set; nil means absent.
type Patch struct {
	Pattern     *string
	Flags       *string
	Text        *string
	Mode        *engine.Mode
	Replacement *string
}

// params is the wire shape of a link. p, f and t are always written; r is
// added by Encode in replace mode.
type params struct {
	Pattern string `url:"p"`
	Flags   string `url:"f"`
	Text    string `url:"t"`
	Mode    string `url:"m,omitempty"`
}

// 📦 Encode renders s as a query string
func Encode(s State) (string, error) {
	p := params{Pattern: s.Pattern, Flags: s.Flags, Text: s.Text}
	if s.Mode == engine.ModeReplace {
		p.Mode = string(engine.ModeReplace)
	}

	vals, err := query.Values(p)
	if err != nil {
		return "", errors.Errorf("encoding share query: %w", err)
	}

	if s.Mode == engine.ModeReplace {
		vals.Set("r", s.Replacement)
	}

	return vals.Encode(), nil
}

// 📥 Decode reads a query string into a Patch. m set to exactly "replace"
// selects replace mode and any other value selects match mode; r is only
// read in replace mode.
func Decode(raw string) (Patch, error) {
	vals, err := url.ParseQuery(raw)
	if err != nil {
		return Patch{}, errors.Errorf("decoding share query: %w", err)
	}

	var p Patch
	p.Pattern = lookup(vals, "p")
	p.Flags = lookup(vals, "f")
	p.Text = lookup(vals, "t")

	if m := lookup(vals, "m"); m != nil {
		mode := engine.ParseMode(*m)
		p.Mode = &mode
		if mode == engine.ModeReplace {
			p.Replacement = lookup(vals, "r")
		}
	}

	return p, nil
}

func lookup(vals url.Values, key string) *string {
	if !vals.Has(key) {
		return nil
	}
	v := vals.Get(key)
	return &v
}

// 🔀 Apply merges the patch over s, leaving absent fields untouched
func (p Patch) Apply(s State) State {
	if p.Pattern != nil {
		s.Pattern = *p.Pattern
	}
	if p.Flags != nil {
		s.Flags = *p.Flags
	}
	if p.Text != nil {
		s.Text = *p.Text
	}
	if p.Mode != nil {
		s.Mode = *p.Mode
	}
	if p.Replacement != nil {
		s.Replacement = *p.Replacement
	}
	return s
}

// Empty reports whether the patch sets nothing
func (p Patch) Empty() bool {
	return p.Pattern == nil && p.Flags == nil && p.Text == nil && p.Mode == nil && p.Replacement == nil
}

// 🌐 URL joins base and the encoded state. Any query or fragment already on
// base is replaced.
func URL(base string, s State) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", errors.Errorf("parsing base url %q: %w", base, err)
	}
	q, err := Encode(s)
	if err != nil {
		return "", err
	}
	u.RawQuery = q
	u.Fragment = ""
	return u.String(), nil
}

// ParseURL decodes the state carried by a full link
func ParseURL(raw string) (Patch, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Patch{}, errors.Errorf("parsing share url: %w", err)
	}
	return Decode(u.RawQuery)
}

// MarshalZerologObject lets a State be logged as a nested object
func (s State) MarshalZerologObject(e *zerolog.Event) {
	e.Str("pattern", s.Pattern).
		Str("flags", s.Flags).
		Int("text_len", len(s.Text)).
		Str("mode", string(s.Mode))
	if s.Mode == engine.ModeReplace {
		e.Str("replacement", s.Replacement)
	}
}
