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

// Package controller turns an editable state into a view: it runs the
// engine, highlights the text and builds the match table.
package controller

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexlab/pkg/engine"
	"github.com/walteh/regexlab/pkg/highlight"
	"github.com/walteh/regexlab/pkg/library"
	"github.com/walteh/regexlab/pkg/prefs"
	"github.com/walteh/regexlab/pkg/share"
)

const (
	// ReplaceCount is the count label shown in replace mode
	ReplaceCount = "Replace preview"
	// ShareToast is shown after a link reaches the clipboard
	ShareToast = "URL copied to clipboard!"
)

// 📦 AppState is everything the user can change
type AppState struct {
	Theme prefs.Theme `json:"theme"`
	State share.State `json:"state"`
}

// 🖼️ View is what a surface draws after a run
type View struct {
	Mode     engine.Mode         `json:"mode"`
	Segments []highlight.Segment `json:"segments"`
	Output   string              `json:"output,omitempty"`
	Count    string              `json:"count"`
	Rows     []Row               `json:"rows"`
	Error    string              `json:"error,omitempty"`
	Chips    []Chip              `json:"chips"`
}

// Row is one line of the match table
type Row struct {
	Number int          `json:"number"` // 1-based
	Text   string       `json:"text"`
	Index  int          `json:"index"`
	Groups []GroupLabel `json:"groups"`
}

// GroupLabel is a capture group as shown in the table. Label is the
// group's name when it has one, else its 1-based position.
type GroupLabel struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Matched bool   `json:"matched"`
}

// Display is the cell text; groups that did not take part read "undefined"
func (g GroupLabel) Display() string {
	if !g.Matched {
		return "undefined"
	}
	return g.Value
}

// 🎛️ Controller wires the engine, highlighter and library together
type Controller struct {
	ev  *engine.Evaluator
	lib *library.Library
}

// 🏭 New creates a controller
func New(ev *engine.Evaluator, lib *library.Library) *Controller {
	return &Controller{ev: ev, lib: lib}
}

// Library returns the pattern library the controller loads examples from
func (c *Controller) Library() *library.Library {
	return c.lib
}

// 🎯 Run evaluates s and builds the view. It never fails: compile errors
// and evaluation failures end up in View.Error with the text left as is.
func (c *Controller) Run(ctx context.Context, s share.State) View {
	logger := zerolog.Ctx(ctx)

	mode := engine.ParseMode(string(s.Mode))

	v := View{
		Mode:     mode,
		Segments: []highlight.Segment{{Text: s.Text}},
		Chips:    Chips(s.Flags),
	}

	if s.Pattern == "" {
		return v
	}

	res, err := c.ev.Evaluate(ctx, engine.Request{
		Pattern:     s.Pattern,
		Flags:       s.Flags,
		Text:        s.Text,
		Mode:        mode,
		Replacement: s.Replacement,
	})
	if err != nil {
		var cerr *engine.CompileError
		if !errors.As(err, &cerr) {
			logger.Warn().Err(err).Object("state", s).Msg("evaluation failed")
		}
		v.Error = err.Error()
		return v
	}

	if res.Mode == engine.ModeReplace {
		v.Output = res.Output
		v.Segments = []highlight.Segment{{Text: res.Output}}
		v.Count = ReplaceCount
		return v
	}

	v.Segments = highlight.Segments(s.Text, res.Matches)
	v.Count = CountLabel(len(res.Matches))
	v.Rows = make([]Row, 0, len(res.Matches))
	for i, m := range res.Matches {
		v.Rows = append(v.Rows, Row{
			Number: i + 1,
			Text:   m.Text,
			Index:  m.Index,
			Groups: labels(m.Groups),
		})
	}

	return v
}

func labels(groups []engine.Group) []GroupLabel {
	out := make([]GroupLabel, 0, len(groups))
	for _, g := range groups {
		label := g.Name
		if label == "" {
			label = strconv.Itoa(g.Number)
		}
		out = append(out, GroupLabel{Label: label, Value: g.Value, Matched: g.Matched})
	}
	return out
}

// CountLabel is "1 match" or "N matches"
func CountLabel(n int) string {
	if n == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", n)
}

// 📚 LoadExample sets the pattern and flags of s from the named library entry
func (c *Controller) LoadExample(s share.State, name string) (share.State, string, error) {
	e, ok := c.lib.Lookup(name)
	if !ok {
		return s, "", errors.Errorf("no library entry named %q", name)
	}
	s.Pattern = e.Pattern
	s.Flags = e.Flags
	return s, "Loaded: " + e.Name, nil
}

// 📋 Clipboard receives shared links
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// 🔗 Share builds the link for s under base and offers it to the clipboard.
// The toast is only set when the clipboard accepted the link; a clipboard
// failure is logged and otherwise ignored.
func (c *Controller) Share(ctx context.Context, base string, s share.State, cb Clipboard) (string, string, error) {
	url, err := share.URL(base, s)
	if err != nil {
		return "", "", errors.Errorf("building share url: %w", err)
	}

	if cb == nil {
		return url, "", nil
	}

	if err := cb.WriteText(ctx, url); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("clipboard write failed")
		return url, "", nil
	}

	return url, ShareToast, nil
}

// 🏷️ Chip is one flag toggle
type Chip struct {
	Flag    rune   `json:"flag"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

var chipLabels = map[rune]string{
	'g': "global",
	'i': "ignore case",
	'm': "multiline",
	's': "dot all",
	'u': "unicode",
	'y': "sticky",
}

// Chips lists the flag toggles in g i m s u y order, checked when flags
// contains the letter
func Chips(flags string) []Chip {
	out := make([]Chip, 0, len(engine.FlagOrder))
	for _, f := range engine.FlagOrder {
		out = append(out, Chip{Flag: f, Label: chipLabels[f], Checked: strings.ContainsRune(flags, f)})
	}
	return out
}

// SetFlag turns flag on or off and rebuilds flags from the chips, so the
// result is in chip order and drops letters no chip owns.
func SetFlag(flags string, flag rune, on bool) string {
	var b strings.Builder
	for _, c := range Chips(flags) {
		checked := c.Checked
		if c.Flag == flag {
			checked = on
		}
		if checked {
			b.WriteRune(c.Flag)
		}
	}
	return b.String()
}
