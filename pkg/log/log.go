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
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 35 // Base width for filename
	countWidth = 12 // Width for the match count
)

// 🎯 FileLine is the per-file summary printed when evaluating files
type FileLine struct {
	Path    string // File path
	Count   int    // Matches found
	Replace bool   // Whether the file was run in replace mode
	Err     error  // Read or evaluation failure
}

// 🎯 Logger pairs console lines with structured zerolog records
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	files   int
}

// 🏭 New creates a new logger writing console lines to console and records to zlog
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{zlog: zlog, console: console}
}

type ctxKey struct{}

// FromContext returns the console logger stored by NewContext. It panics
// when there is none; commands always run after setup stored one.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	panic("log: no console logger in context")
}

// NewContext returns ctx carrying l
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// 📝 formatFileLine formats a file summary for display
func (l *Logger) formatFileLine(f FileLine) string {
	var symbol rune
	var symbolColor color.Attribute
	var status string
	switch {
	case f.Err != nil:
		symbol = '✗'
		symbolColor = color.FgRed
		status = f.Err.Error()
	case f.Replace:
		symbol = '⟳'
		symbolColor = color.FgBlue
		status = "replaced"
	case f.Count > 0:
		symbol = '✓'
		symbolColor = color.FgGreen
		status = countLabel(f.Count)
	default:
		symbol = '-'
		symbolColor = color.FgYellow
		status = countLabel(0)
	}

	return fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, f.Path),
		fmt.Sprintf("%-*s", countWidth, status))
}

func countLabel(n int) string {
	if n == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", n)
}

// 📝 LogFileLine prints a file summary
func (l *Logger) LogFileLine(ctx context.Context, f FileLine) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.files++
	fmt.Fprintln(l.console, l.formatFileLine(f))

	ev := l.zlog.Info()
	if f.Err != nil {
		ev = l.zlog.Warn().Err(f.Err)
	}
	ev.Str("file", f.Path).
		Int("matches", f.Count).
		Bool("replace", f.Replace).
		Msg("file evaluated")
}

// Files returns how many file lines were printed
func (l *Logger) Files() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.files
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("regexlab")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Toast prints a short-lived notice, the terminal form of a UI toast
func (l *Logger) Toast(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "💬 %s\n", color.New(color.FgMagenta).Sprint(msg))
	l.zlog.Debug().Str("toast", msg).Msg("toast shown")
}

// notice is one kind of one-line console message
type notice struct {
	prefix string
	attr   color.Attribute
	level  zerolog.Level
}

var (
	noticeSuccess = notice{"✅ ", color.FgGreen, zerolog.InfoLevel}
	noticeWarning = notice{"⚠️  ", color.FgYellow, zerolog.WarnLevel}
	noticeError   = notice{"❌ ", color.FgRed, zerolog.ErrorLevel}
	noticeInfo    = notice{"ℹ️  ", color.FgCyan, zerolog.InfoLevel}
)

func (l *Logger) notice(n notice, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, n.prefix+color.New(n.attr).Sprint(msg))
	l.zlog.WithLevel(n.level).Msg(msg)
}

// ✅ Success prints a success line
func (l *Logger) Success(msg string) { l.notice(noticeSuccess, msg) }

// ⚠️ Warning prints a warning line
func (l *Logger) Warning(msg string) { l.notice(noticeWarning, msg) }

// ❌ Error prints an error line
func (l *Logger) Error(msg string) { l.notice(noticeError, msg) }

// Info prints an informational line
func (l *Logger) Info(msg string) { l.notice(noticeInfo, msg) }

func (l *Logger) Successf(format string, args ...any) { l.Success(fmt.Sprintf(format, args...)) }
func (l *Logger) Warningf(format string, args ...any) { l.Warning(fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any)   { l.Error(fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...any)    { l.Info(fmt.Sprintf(format, args...)) }
