package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	text := "before MATCH after"
	offs := ByteOffsets(text)
	unnamed := Match{
		Text:  "MATCH",
		Index: 7,
		Groups: []Group{
			{Number: 1, Value: "MA", Matched: true},
			{Number: 2, Matched: false},
		},
	}
	named := Match{
		Text:  "MATCH",
		Index: 7,
		Groups: []Group{
			{Number: 1, Name: "head", Value: "MA", Matched: true},
		},
		Named: map[string]Group{"head": {Number: 1, Name: "head", Value: "MA", Matched: true}},
	}

	tests := []struct {
		name     string
		template string
		m        Match
		want     string
	}{
		{name: "plain", template: "x", m: unnamed, want: "x"},
		{name: "dollar_escape", template: "$$", m: unnamed, want: "$"},
		{name: "whole_match", template: "[$&]", m: unnamed, want: "[MATCH]"},
		{name: "prefix", template: "$`", m: unnamed, want: "before "},
		{name: "suffix", template: "$'", m: unnamed, want: " after"},
		{name: "group", template: "<$1>", m: unnamed, want: "<MA>"},
		{name: "non_participating_group_is_empty", template: "<$2>", m: unnamed, want: "<>"},
		{name: "out_of_range_group_is_literal", template: "$3", m: unnamed, want: "$3"},
		{name: "two_digits_fall_back_to_one", template: "$10", m: unnamed, want: "MA0"},
		{name: "dollar_zero_is_literal", template: "$0", m: unnamed, want: "$0"},
		{name: "trailing_dollar", template: "a$", m: unnamed, want: "a$"},
		{name: "named_without_named_groups_is_literal", template: "$<head>", m: unnamed, want: "$<head>"},
		{name: "named_group", template: "$<head>!", m: named, want: "MA!"},
		{name: "unknown_name_is_empty", template: "[$<nope>]", m: named, want: "[]"},
		{name: "unterminated_name", template: "$<head", m: named, want: "$<head"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			expand(&b, tt.template, text, offs, tt.m)
			assert.Equal(t, tt.want, b.String())
		})
	}
}

func TestCaptureNames(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{pattern: `abc`, want: nil},
		{pattern: `(a)(?:b)(c)`, want: []string{"", ""}},
		{pattern: `(?<y>\d+)-(\d+)`, want: []string{"y", ""}},
		{pattern: `(?<=a)(b)(?<!c)`, want: []string{""}},
		{pattern: `\((a)[(]`, want: []string{""}},
		{pattern: `(?P<go>x)`, want: []string{"go"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, captureNames(tt.pattern))
		})
	}
}

func TestNeedsBacktracking(t *testing.T) {
	assert.False(t, needsBacktracking(`\d+`))
	assert.False(t, needsBacktracking(`\\1`), "escaped backslash is not a back-reference")
	assert.True(t, needsBacktracking(`(a)\1`))
	assert.True(t, needsBacktracking(`(?!x)`))
	assert.True(t, needsBacktracking(`\k<n>`))
}
