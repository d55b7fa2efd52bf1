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
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Backend names the regex engine a pattern is compiled with
type Backend string

const (
	// BackendECMAScript follows the browser's RegExp semantics (regexp2)
	BackendECMAScript Backend = "ecmascript"
	// BackendRE2 is linear time and rejects backtracking-only syntax (coregex)
	BackendRE2 Backend = "re2"
	// BackendAuto uses RE2 unless the pattern needs backtracking features
	BackendAuto Backend = "auto"
)

// ParseBackend validates a backend name. Empty means BackendECMAScript.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendECMAScript, nil
	case BackendECMAScript, BackendRE2, BackendAuto:
		return b, nil
	default:
		return "", errors.Errorf("unknown engine %q (want ecmascript, re2 or auto)", s)
	}
}

// ⚙️ Options configure an Evaluator
type Options struct {
	Backend Backend
	// MatchTimeout bounds a single match attempt. Zero means no limit.
	// Only the ECMAScript backend honours it; RE2 is linear time.
	MatchTimeout time.Duration
}

// 🏭 Evaluator compiles and runs patterns with a fixed set of options
type Evaluator struct {
	opts Options
}

// New creates an Evaluator
func New(opts Options) (*Evaluator, error) {
	b, err := ParseBackend(string(opts.Backend))
	if err != nil {
		return nil, err
	}
	if opts.MatchTimeout < 0 {
		return nil, errors.Errorf("match timeout must not be negative, got %s", opts.MatchTimeout)
	}
	opts.Backend = b
	return &Evaluator{opts: opts}, nil
}

// Options returns the options the evaluator was created with
func (e *Evaluator) Options() Options {
	return e.opts
}

// matcher is the per-backend search primitive
type matcher interface {
	// find returns the leftmost match starting at or after code point start
	find(in *input, start int) (*Match, error)
}

// 🎯 Regex is a compiled pattern and its flags
type Regex struct {
	pattern string
	flags   Flags
	backend Backend
	m       matcher
}

// 🔨 Compile compiles pattern with the given flags. Failures are *CompileError.
func (e *Evaluator) Compile(pattern, flags string) (*Regex, error) {
	f, err := ParseFlags(flags)
	if err != nil {
		return nil, err
	}

	var m matcher
	backend := e.opts.Backend
	switch backend {
	case BackendRE2:
		m, err = compileRE2(pattern, f)
	case BackendAuto:
		backend = BackendRE2
		if needsBacktracking(pattern) {
			backend = BackendECMAScript
			m, err = compileECMAScript(pattern, f, e.opts.MatchTimeout)
			break
		}
		if m, err = compileRE2(pattern, f); err != nil {
			backend = BackendECMAScript
			m, err = compileECMAScript(pattern, f, e.opts.MatchTimeout)
		}
	default:
		m, err = compileECMAScript(pattern, f, e.opts.MatchTimeout)
	}
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Flags: flags, Message: err.Error()}
	}

	return &Regex{pattern: pattern, flags: f, backend: backend, m: m}, nil
}

// String returns the pattern in /source/flags form
func (r *Regex) String() string {
	return "/" + r.pattern + "/" + r.flags.String()
}

// Flags returns the parsed flags
func (r *Regex) Flags() Flags {
	return r.flags
}

// Backend returns the backend that compiled the pattern
func (r *Regex) Backend() Backend {
	return r.backend
}

// 🔍 Exec returns the matches of r in text. With the global flag every
// match is returned in order; otherwise at most one. A zero-length match
// moves the search forward by one code point so the scan always ends.
func (r *Regex) Exec(ctx context.Context, text string) ([]Match, error) {
	in := newInput(text)

	var out []Match
	pos := 0
	for pos <= in.len() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("evaluating %s: %w", r, err)
		}

		m, err := r.m.find(in, pos)
		if err != nil {
			return nil, errors.Errorf("evaluating %s: %w", r, err)
		}
		if m == nil {
			break
		}
		if r.flags.Sticky && m.Index != pos {
			break
		}

		out = append(out, *m)
		if !r.flags.Global {
			break
		}

		next := m.End()
		if next == m.Index {
			next++
		}
		pos = next
	}

	return out, nil
}

// 🔄 Replace substitutes every match (global) or the first one with the
// expansion of template. See expand for the template syntax.
func (r *Regex) Replace(ctx context.Context, text, template string) (string, error) {
	matches, err := r.Exec(ctx, text)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return text, nil
	}

	offs := ByteOffsets(text)
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		b.WriteString(text[offs[last]:offs[m.Index]])
		expand(&b, template, text, offs, m)
		last = m.End()
	}
	b.WriteString(text[offs[last]:])

	return b.String(), nil
}

// 📝 Request is everything one evaluation needs
type Request struct {
	Pattern     string
	Flags       string
	Text        string
	Mode        Mode
	Replacement string
}

// 🎯 Evaluate compiles the request's pattern and runs it in the request's mode.
// A pattern that fails to compile returns a *CompileError and no result.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	re, err := e.Compile(req.Pattern, req.Flags)
	if err != nil {
		logger.Debug().Err(err).Str("pattern", req.Pattern).Str("flags", req.Flags).Msg("pattern rejected")
		return nil, err
	}

	mode := req.Mode
	if mode == "" {
		mode = ModeMatch
	}

	if mode == ModeReplace {
		out, err := re.Replace(ctx, req.Text, req.Replacement)
		if err != nil {
			return nil, errors.Errorf("replacing: %w", err)
		}
		logger.Debug().Stringer("regex", re).Str("backend", string(re.Backend())).Msg("replace evaluated")
		return &Result{Mode: ModeReplace, Output: out}, nil
	}

	matches, err := re.Exec(ctx, req.Text)
	if err != nil {
		return nil, errors.Errorf("matching: %w", err)
	}
	logger.Debug().Stringer("regex", re).Str("backend", string(re.Backend())).Int("matches", len(matches)).Msg("match evaluated")

	return &Result{Mode: ModeMatch, Matches: matches}, nil
}

// input caches the views of a text the backends need
type input struct {
	text    string
	runes   []rune
	offsets []int // code point offset -> byte offset

	// byte offset -> code point offset, built on demand
	runeOf []int

	// precomputed spans for backends that cannot resume mid-text
	spans   [][]int
	scanned bool
	cursor  int
}

func newInput(text string) *input {
	return &input{text: text, runes: []rune(text), offsets: ByteOffsets(text)}
}

// slice returns the original bytes between two code point offsets
func (in *input) slice(from, to int) string {
	return in.text[in.offsets[from]:in.offsets[to]]
}

func (in *input) len() int {
	return len(in.runes)
}

func (in *input) runeIndex(byteOff int) int {
	if in.runeOf == nil {
		in.runeOf = make([]int, len(in.text)+1)
		for i := range in.runeOf {
			in.runeOf[i] = -1
		}
		n := 0
		for i := range in.text {
			in.runeOf[i] = n
			n++
		}
		in.runeOf[len(in.text)] = n
		// continuation bytes map to the code point they belong to
		for i := 1; i < len(in.text); i++ {
			if in.runeOf[i] < 0 {
				in.runeOf[i] = in.runeOf[i-1]
			}
		}
	}
	return in.runeOf[byteOff]
}
