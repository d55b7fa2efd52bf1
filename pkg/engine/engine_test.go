package engine

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

type span struct {
	text  string
	index int
}

func spans(ms []Match) []span {
	out := make([]span, 0, len(ms))
	for _, m := range ms {
		out = append(out, span{m.Text, m.Index})
	}
	return out
}

func newEvaluator(t *testing.T, b Backend) *Evaluator {
	t.Helper()
	ev, err := New(Options{Backend: b})
	require.NoError(t, err, "creating evaluator should succeed")
	return ev
}

func TestExec(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		flags    string
		text     string
		backends []Backend
		want     []span
	}{
		{
			name:     "global_digits",
			pattern:  `\d+`,
			flags:    "g",
			text:     "a1 b22 c333",
			backends: []Backend{BackendECMAScript, BackendRE2},
			want:     []span{{"1", 1}, {"22", 4}, {"333", 8}},
		},
		{
			name:     "non_global_stops_after_first",
			pattern:  `\d+`,
			flags:    "",
			text:     "a1 b22 c333",
			backends: []Backend{BackendECMAScript, BackendRE2},
			want:     []span{{"1", 1}},
		},
		{
			name:     "no_match",
			pattern:  `z`,
			flags:    "g",
			text:     "abc",
			backends: []Backend{BackendECMAScript, BackendRE2},
			want:     []span{},
		},
		{
			name:     "empty_pattern_advances_one_code_point",
			pattern:  ``,
			flags:    "g",
			text:     "abc",
			backends: []Backend{BackendECMAScript, BackendRE2},
			want:     []span{{"", 0}, {"", 1}, {"", 2}, {"", 3}},
		},
		{
			name:     "zero_length_after_match",
			pattern:  `a*`,
			flags:    "g",
			text:     "baaac",
			backends: []Backend{BackendECMAScript},
			want:     []span{{"", 0}, {"aaa", 1}, {"", 4}, {"", 5}},
		},
		{
			name:     "offsets_are_code_points",
			pattern:  `\d+`,
			flags:    "g",
			text:     "é1ü22",
			backends: []Backend{BackendECMAScript, BackendRE2},
			want:     []span{{"1", 1}, {"22", 3}},
		},
		{
			name:     "sticky_stops_at_gap",
			pattern:  `\d`,
			flags:    "gy",
			text:     "12a3",
			backends: []Backend{BackendECMAScript, BackendRE2},
			want:     []span{{"1", 0}, {"2", 1}},
		},
		{
			name:     "sticky_requires_match_at_start",
			pattern:  `\d`,
			flags:    "y",
			text:     "a1",
			backends: []Backend{BackendECMAScript, BackendRE2},
			want:     []span{},
		},
		{
			name:     "ignore_case",
			pattern:  `abc`,
			flags:    "gi",
			text:     "ABC abc",
			backends: []Backend{BackendECMAScript, BackendRE2},
			want:     []span{{"ABC", 0}, {"abc", 4}},
		},
		{
			name:     "dotall",
			pattern:  `a.b`,
			flags:    "s",
			text:     "a\nb",
			backends: []Backend{BackendECMAScript, BackendRE2},
			want:     []span{{"a\nb", 0}},
		},
		{
			name:     "dot_without_dotall",
			pattern:  `a.b`,
			flags:    "",
			text:     "a\nb",
			backends: []Backend{BackendECMAScript, BackendRE2},
			want:     []span{},
		},
		{
			name:     "multiline_anchors",
			pattern:  `^\w`,
			flags:    "gm",
			text:     "a\nb",
			backends: []Backend{BackendECMAScript, BackendRE2},
			want:     []span{{"a", 0}, {"b", 2}},
		},
		{
			name:     "invalid_utf8_byte_is_one_code_point",
			pattern:  `b`,
			flags:    "g",
			text:     "caf\xe9 b",
			backends: []Backend{BackendECMAScript, BackendRE2},
			want:     []span{{"b", 5}},
		},
		{
			name:     "match_keeps_invalid_utf8_bytes",
			pattern:  `caf.`,
			flags:    "",
			text:     "caf\xe9 b",
			backends: []Backend{BackendECMAScript},
			want:     []span{{"caf\xe9", 0}},
		},
		{
			name:     "lookbehind",
			pattern:  `(?<=\$)\d+`,
			flags:    "g",
			text:     "cost $12 and 7",
			backends: []Backend{BackendECMAScript},
			want:     []span{{"12", 6}},
		},
	}

	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	for _, tt := range tests {
		for _, b := range tt.backends {
			t.Run(tt.name+"/"+string(b), func(t *testing.T) {
				re, err := newEvaluator(t, b).Compile(tt.pattern, tt.flags)
				require.NoError(t, err, "compile should succeed")

				got, err := re.Exec(ctx, tt.text)
				require.NoError(t, err, "exec should succeed")
				assert.Equal(t, tt.want, spans(got), "matches should match")

				for i := 1; i < len(got); i++ {
					assert.GreaterOrEqual(t, got[i].Index, got[i-1].End(), "matches must not overlap")
				}
			})
		}
	}
}

func TestExecGroups(t *testing.T) {
	ctx := context.Background()

	t.Run("positional_groups", func(t *testing.T) {
		for _, b := range []Backend{BackendECMAScript, BackendRE2} {
			re, err := newEvaluator(t, b).Compile(`(\w+)@(\w+)`, "")
			require.NoError(t, err)

			got, err := re.Exec(ctx, "x y@z w")
			require.NoError(t, err)
			require.Len(t, got, 1, "non-global should yield one match")

			assert.Equal(t, "y@z", got[0].Text)
			assert.Equal(t, 2, got[0].Index)
			assert.Equal(t, []Group{
				{Number: 1, Value: "y", Matched: true},
				{Number: 2, Value: "z", Matched: true},
			}, got[0].Groups, "groups should match for %s", b)
			assert.Empty(t, got[0].Named, "no named groups expected")
		}
	})

	t.Run("named_groups_keep_pattern_order", func(t *testing.T) {
		for _, b := range []Backend{BackendECMAScript, BackendRE2} {
			re, err := newEvaluator(t, b).Compile(`(\d)(?<mid>\d)(\d)`, "")
			require.NoError(t, err)

			got, err := re.Exec(ctx, "123")
			require.NoError(t, err)
			require.Len(t, got, 1)

			assert.Equal(t, []Group{
				{Number: 1, Value: "1", Matched: true},
				{Number: 2, Name: "mid", Value: "2", Matched: true},
				{Number: 3, Value: "3", Matched: true},
			}, got[0].Groups, "groups should be in pattern order for %s", b)
			assert.Equal(t, Group{Number: 2, Name: "mid", Value: "2", Matched: true}, got[0].Named["mid"])
		}
	})

	t.Run("non_participating_group", func(t *testing.T) {
		for _, b := range []Backend{BackendECMAScript, BackendRE2} {
			re, err := newEvaluator(t, b).Compile(`(a)|(b)`, "")
			require.NoError(t, err)

			got, err := re.Exec(ctx, "b")
			require.NoError(t, err)
			require.Len(t, got, 1)

			assert.False(t, got[0].Groups[0].Matched, "first group should not participate")
			assert.True(t, got[0].Groups[1].Matched, "second group should participate")
			assert.Equal(t, "b", got[0].Groups[1].Value)
		}
	})
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		backend Backend
		pattern string
		flags   string
	}{
		{name: "unbalanced_paren_ecmascript", backend: BackendECMAScript, pattern: "("},
		{name: "unbalanced_paren_re2", backend: BackendRE2, pattern: "("},
		{name: "unbalanced_paren_auto", backend: BackendAuto, pattern: "("},
		{name: "lookahead_on_re2", backend: BackendRE2, pattern: "(?=a)a"},
		{name: "unknown_flag", backend: BackendECMAScript, pattern: "a", flags: "gx"},
		{name: "repeated_flag", backend: BackendECMAScript, pattern: "a", flags: "gg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newEvaluator(t, tt.backend).Compile(tt.pattern, tt.flags)
			require.Error(t, err, "compile should fail")

			var ce *CompileError
			require.True(t, errors.As(err, &ce), "error should be a CompileError")
			assert.NotEmpty(t, ce.Message, "diagnostic should not be empty")
			assert.Equal(t, ce.Message, err.Error(), "error text should be the diagnostic")
		})
	}
}

func TestAutoBackend(t *testing.T) {
	tests := []struct {
		pattern string
		want    Backend
	}{
		{pattern: `\d+`, want: BackendRE2},
		{pattern: `(?<year>\d{4})`, want: BackendRE2},
		{pattern: `(?<=a)b`, want: BackendECMAScript},
		{pattern: `(\w)\1`, want: BackendECMAScript},
	}

	ev := newEvaluator(t, BackendAuto)
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re, err := ev.Compile(tt.pattern, "g")
			require.NoError(t, err)
			assert.Equal(t, tt.want, re.Backend(), "backend should match")
		})
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		flags    string
		text     string
		template string
		want     string
	}{
		{name: "collapse_whitespace", pattern: `\s+`, flags: "g", text: "a b  c", template: "_", want: "a_b_c"},
		{name: "first_only_without_global", pattern: `o`, flags: "", text: "foo", template: "0", want: "f0o"},
		{name: "swap_groups", pattern: `(\w+)\s(\w+)`, flags: "", text: "hello world", template: "$2 $1", want: "world hello"},
		{name: "named_groups", pattern: `(?<first>\w+) (?<last>\w+)`, flags: "", text: "Ada Lovelace", template: "$<last>, $<first>", want: "Lovelace, Ada"},
		{name: "whole_match_and_dollar", pattern: `\d+`, flags: "g", text: "1 and 22", template: "$$$&", want: "$1 and $22"},
		{name: "no_match_returns_text", pattern: `z`, flags: "g", text: "abc", template: "_", want: "abc"},
		{name: "zero_length_insertion", pattern: ``, flags: "g", text: "ab", template: "-", want: "-a-b-"},
		{name: "invalid_utf8_kept", pattern: `b`, flags: "g", text: "caf\xe9 b", template: "X", want: "caf\xe9 X"},
		{name: "invalid_utf8_in_prefix", pattern: `b`, flags: "g", text: "caf\xe9 b", template: "[$`]", want: "caf\xe9 [caf\xe9 ]"},
		{name: "multibyte_text", pattern: `ü`, flags: "g", text: "über müde", template: "ue", want: "ueber muede"},
	}

	ctx := context.Background()
	for _, tt := range tests {
		for _, b := range []Backend{BackendECMAScript, BackendRE2} {
			t.Run(tt.name+"/"+string(b), func(t *testing.T) {
				re, err := newEvaluator(t, b).Compile(tt.pattern, tt.flags)
				require.NoError(t, err)

				got, err := re.Replace(ctx, tt.text, tt.template)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got, "replacement should match")
			})
		}
	}
}

func TestEvaluate(t *testing.T) {
	ev := newEvaluator(t, BackendECMAScript)
	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	t.Run("match_mode", func(t *testing.T) {
		res, err := ev.Evaluate(ctx, Request{Pattern: `\d+`, Flags: "g", Text: "a1 b22 c333"})
		require.NoError(t, err)
		assert.Equal(t, ModeMatch, res.Mode, "empty mode should default to match")
		assert.Len(t, res.Matches, 3)
		assert.Empty(t, res.Output)
	})

	t.Run("replace_mode", func(t *testing.T) {
		res, err := ev.Evaluate(ctx, Request{Pattern: `\s+`, Flags: "g", Text: "a b  c", Mode: ModeReplace, Replacement: "_"})
		require.NoError(t, err)
		assert.Equal(t, ModeReplace, res.Mode)
		assert.Equal(t, "a_b_c", res.Output)
		assert.Empty(t, res.Matches, "replace mode has no match records")
	})

	t.Run("compile_failure", func(t *testing.T) {
		res, err := ev.Evaluate(ctx, Request{Pattern: "(", Text: "abc"})
		require.Error(t, err)
		assert.Nil(t, res, "no result on compile failure")

		var ce *CompileError
		assert.True(t, errors.As(err, &ce), "error should be a CompileError")
	})

	t.Run("cancelled_context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := ev.Evaluate(cctx, Request{Pattern: "a", Flags: "g", Text: "aaa"})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNew(t *testing.T) {
	ev, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, BackendECMAScript, ev.Options().Backend, "default backend should be ecmascript")

	_, err = New(Options{Backend: "pcre"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown engine")

	_, err = New(Options{MatchTimeout: -1})
	require.Error(t, err)
}
