package highlight

import (
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/regexlab/pkg/engine"
)

func matchesFor(t *testing.T, pattern, flags, text string) []engine.Match {
	t.Helper()
	ev, err := engine.New(engine.Options{})
	require.NoError(t, err)
	re, err := ev.Compile(pattern, flags)
	require.NoError(t, err)
	ms, err := re.Exec(context.Background(), text)
	require.NoError(t, err)
	return ms
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		flags   string
		text    string
		want    []Segment
	}{
		{
			name:    "digits",
			pattern: `\d+`,
			flags:   "g",
			text:    "a1 b22 c333",
			want: []Segment{
				{Text: "a"},
				{Text: "1", Match: true, Number: 1},
				{Text: " b"},
				{Text: "22", Match: true, Number: 2},
				{Text: " c"},
				{Text: "333", Match: true, Number: 3},
			},
		},
		{
			name:    "no_matches",
			pattern: `z`,
			flags:   "g",
			text:    "abc",
			want:    []Segment{{Text: "abc"}},
		},
		{
			name:    "adjacent_matches",
			pattern: `\d`,
			flags:   "g",
			text:    "12x",
			want: []Segment{
				{Text: "1", Match: true, Number: 1},
				{Text: "2", Match: true, Number: 2},
				{Text: "x"},
			},
		},
		{
			name:    "zero_length_matches",
			pattern: `^`,
			flags:   "g",
			text:    "ab",
			want: []Segment{
				{Text: "", Match: true, Number: 1},
				{Text: "ab"},
			},
		},
		{
			name:    "multibyte",
			pattern: `ü`,
			flags:   "g",
			text:    "müde",
			want: []Segment{
				{Text: "m"},
				{Text: "ü", Match: true, Number: 1},
				{Text: "de"},
			},
		},
		{
			name:    "empty_text",
			pattern: `a`,
			flags:   "g",
			text:    "",
			want:    []Segment{{Text: ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segments(tt.text, matchesFor(t, tt.pattern, tt.flags, tt.text))
			assert.Equal(t, tt.want, got, "segments should match")
			assert.Equal(t, tt.text, Join(got), "segments should cover the text")
		})
	}
}

func TestSegmentsCoverText(t *testing.T) {
	texts := []string{"", "a", "aaa", "a\nb\n", "ümlaut 123 <tag>", "   ", "caf\xe9 b", "\xff\xfe", "a\xe2\x82b"}
	patterns := []string{``, `a*`, `\w+`, `\s`, `$`, `(?=a)`, `.`}

	for _, text := range texts {
		for _, p := range patterns {
			got := Segments(text, matchesFor(t, p, "gm", text))
			assert.Equal(t, text, Join(got), "pattern %q should cover %q", p, text)
		}
	}
}

func TestSegmentsKeepInvalidUTF8(t *testing.T) {
	text := "caf\xe9 b"
	got := Segments(text, matchesFor(t, `b`, "g", text))

	assert.Equal(t, text, Join(got))
	assert.Equal(t, []Segment{
		{Text: "caf\xe9 "},
		{Text: "b", Match: true, Number: 1},
	}, got)
}

func TestSegmentsSkipsBadMatches(t *testing.T) {
	text := "abcdef"
	ms := []engine.Match{
		{Text: "bc", Index: 1},
		{Text: "cd", Index: 2}, // overlaps the previous match
		{Text: "zz", Index: 5}, // runs past the text
	}

	got := Segments(text, ms)
	assert.Equal(t, text, Join(got))
	assert.Equal(t, []Segment{
		{Text: "a"},
		{Text: "bc", Match: true, Number: 1},
		{Text: "def"},
	}, got)
}

func TestHTML(t *testing.T) {
	text := `<b>"x" & 'y'</b>`
	got := HTML(Segments(text, matchesFor(t, `x`, "g", text)))
	assert.Equal(t,
		`&lt;b&gt;&#34;<mark class="match">x</mark>&#34; &amp; &#39;y&#39;&lt;/b&gt;`,
		string(got), "markup should be escaped")

	plain := HTML([]Segment{{Text: "<script>"}})
	assert.Equal(t, "&lt;script&gt;", string(plain))
}

func TestANSI(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	segs := Segments("a1", matchesFor(t, `\d`, "g", "a1"))
	assert.Equal(t, "a1", ANSI(segs, nil), "without color the text is unchanged")
}
