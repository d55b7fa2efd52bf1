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

package log

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLines(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   func(l *Logger)
		want []string
	}{
		{"file_line", func(l *Logger) {
			l.LogFileLine(context.Background(), FileLine{Path: "notes.txt", Count: 2})
		}, []string{"✓ notes.txt                           2 matches"}},
		{"notices", func(l *Logger) {
			l.Info("info message")
			l.Warning("warning message")
			l.Error("error message")
			l.Success("success message")
			l.Toast("URL copied to clipboard!")
		}, []string{"ℹ️  info message", "⚠️  warning message", "❌ error message", "✅ success message", "💬 URL copied to clipboard!"}},
		{"formatted", func(l *Logger) {
			l.Infof("%d files", 3)
			l.Warningf("skipped %s", "b.txt")
			l.Errorf("no %s", "match")
			l.Successf("theme set to %s", "dark")
		}, []string{"ℹ️  3 files", "⚠️  skipped b.txt", "❌ no match", "✅ theme set to dark"}},
		{"header", func(l *Logger) {
			l.Header("match /\\d+/g")
		}, []string{"regexlab • match /\\d+/g"}},
		{"newline", func(l *Logger) {
			l.Info("first")
			l.LogNewline()
			l.Info("second")
		}, []string{"ℹ️  first", "", "ℹ️  second"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.op(New(&buf, zerolog.New(zerolog.NewTestWriter(t))))

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Len(t, lines, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "line %d", i)
			}
		})
	}
}

func TestNoticeLevels(t *testing.T) {
	var records bytes.Buffer
	l := New(io.Discard, zerolog.New(&records))

	l.Warning("careful")
	l.Error("broken")
	l.Success("done")

	out := records.String()
	assert.Contains(t, out, `"level":"warn","message":"careful"`)
	assert.Contains(t, out, `"level":"error","message":"broken"`)
	assert.Contains(t, out, `"level":"info","message":"done"`)
}

func TestContext(t *testing.T) {
	l := New(io.Discard, zerolog.Nop())

	assert.Same(t, l, FromContext(NewContext(context.Background(), l)))
	assert.Panics(t, func() { FromContext(context.Background()) })
}

func TestFileLineFormatting(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		line FileLine
		want string
	}{
		{
			name: "one_match",
			line: FileLine{Path: "a.txt", Count: 1},
			want: "    ✓ a.txt                               1 match     ",
		},
		{
			name: "no_matches",
			line: FileLine{Path: "a.txt"},
			want: "    - a.txt                               0 matches   ",
		},
		{
			name: "replaced",
			line: FileLine{Path: "a.txt", Count: 3, Replace: true},
			want: "    ⟳ a.txt                               replaced    ",
		},
		{
			name: "failed",
			line: FileLine{Path: "a.txt", Err: errors.New("permission denied")},
			want: "    ✗ a.txt                               permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(io.Discard, zerolog.Nop())
			assert.Equal(t, tt.want, logger.formatFileLine(tt.line), "formatted output should match")
		})
	}

	logger := New(io.Discard, zerolog.Nop())
	for _, tt := range tests {
		logger.LogFileLine(context.Background(), tt.line)
	}
	assert.Equal(t, len(tests), logger.Files())
}
