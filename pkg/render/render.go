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

// Package render draws controller views and reference data in a terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexlab/pkg/cheatsheet"
	"github.com/walteh/regexlab/pkg/controller"
	"github.com/walteh/regexlab/pkg/highlight"
	"github.com/walteh/regexlab/pkg/library"
)

var (
	countColor = color.New(color.Bold, color.FgCyan)
	matchColor = color.New(color.BgYellow, color.FgBlack)
	faint      = color.New(color.Faint)
)

// 🎯 Matches prints a match-mode view: the count, the highlighted text and
// the match table. A view carrying an error prints the error banner and the
// unchanged text instead.
func Matches(w io.Writer, v controller.View) error {
	if v.Error != "" {
		Error(w, v.Error)
		fmt.Fprintln(w, highlight.Join(v.Segments))
		return nil
	}

	if v.Count != "" {
		fmt.Fprintln(w, countColor.Sprint(v.Count))
	}
	fmt.Fprintln(w, highlight.ANSI(v.Segments, matchColor))

	if len(v.Rows) == 0 {
		return nil
	}

	data := pterm.TableData{{"#", "Match", "Index", "Groups"}}
	for _, r := range v.Rows {
		data = append(data, []string{
			strconv.Itoa(r.Number),
			r.Text,
			strconv.Itoa(r.Index),
			groupsCell(r.Groups),
		})
	}

	fmt.Fprintln(w)
	return table(w, data)
}

func groupsCell(groups []controller.GroupLabel) string {
	if len(groups) == 0 {
		return "—"
	}
	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		lines = append(lines, faint.Sprint(g.Label+":")+" "+g.Display())
	}
	return strings.Join(lines, "\n")
}

// 🔄 Replace prints a replace-mode view
func Replace(w io.Writer, v controller.View) error {
	if v.Error != "" {
		Error(w, v.Error)
		fmt.Fprintln(w, highlight.Join(v.Segments))
		return nil
	}
	if v.Count != "" {
		fmt.Fprintln(w, countColor.Sprint(v.Count))
	}
	fmt.Fprintln(w, v.Output)
	return nil
}

// ❌ Error prints the error banner
func Error(w io.Writer, msg string) {
	fmt.Fprint(w, pterm.Error.Sprintln(msg))
}

// Heading prints a section title
func Heading(w io.Writer, title string) {
	fmt.Fprint(w, pterm.DefaultSection.Sprintln(title))
}

// 📚 Library prints the library as a table
func Library(w io.Writer, entries []library.Entry) error {
	data := pterm.TableData{{"Name", "Pattern", "Flags"}}
	for _, e := range entries {
		data = append(data, []string{e.Name, e.Pattern, e.Flags})
	}
	return table(w, data)
}

// 📖 CheatSheet prints each section as a titled table
func CheatSheet(w io.Writer, sections []cheatsheet.Section) error {
	if len(sections) == 0 {
		fmt.Fprint(w, pterm.Warning.Sprintln("no cheat sheet entries match"))
		return nil
	}
	for _, s := range sections {
		Heading(w, s.Title)
		data := pterm.TableData{{"Token", "Description"}}
		for _, r := range s.Rows {
			data = append(data, []string{r.Token, r.Description})
		}
		if err := table(w, data); err != nil {
			return err
		}
	}
	return nil
}

func table(w io.Writer, data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering table: %w", err)
	}
	fmt.Fprint(w, out)
	return nil
}
