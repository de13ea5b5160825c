package ansi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PlainTextIsSingleUnstyledRun(t *testing.T) {
	for _, raw := range []string{"hello", "  \n\t", "line one\nline two\n", "[0;31m is not an escape"} {
		runs := Parse(raw)
		require.Len(t, runs, 1, "Parse(%q)", raw)
		assert.Equal(t, raw, runs[0].Text)
		assert.Empty(t, runs[0].Style)
	}
}

func TestParse_EmptyInputs(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("\x1b[0;31m\x1b[0m"))
	assert.Empty(t, Parse("\x1b[m\x1b[1;32m\x1b[0m"))
}

func TestParse_ColorThenReset(t *testing.T) {
	runs := Parse("\x1b[0;31mERROR\x1b[0m ok")
	require.Equal(t, Runs{
		{Text: "ERROR", Style: Style{AttrColor: "#ff6b6b"}},
		{Text: " ok", Style: Style{}},
	}, runs)
}

func TestParse_LaterCodeOverwritesColor(t *testing.T) {
	runs := Parse("\x1b[0;32ma\x1b[1;34mb")
	require.Len(t, runs, 2)
	assert.Equal(t, Style{AttrColor: "#51cf66"}, runs[0].Style)
	assert.Equal(t, Style{AttrColor: "#91d5ff"}, runs[1].Style)
}

func TestParse_SingleParameterForms(t *testing.T) {
	runs := Parse("\x1b[33my\x1b[93mY\x1b[00mz")
	require.Len(t, runs, 3)
	assert.Equal(t, "#ffd43b", runs[0].Style[AttrColor])
	assert.Equal(t, "#ffec99", runs[1].Style[AttrColor])
	assert.Empty(t, runs[2].Style)
}

func TestParse_TrailingZeroResets(t *testing.T) {
	runs := Parse("\x1b[0;31mred\x1b[31;0mplain\x1b[1;32;0mstill plain")
	require.Equal(t, Runs{
		{Text: "red", Style: Style{AttrColor: "#ff6b6b"}},
		{Text: "plain", Style: Style{}},
		{Text: "still plain", Style: Style{}},
	}, runs)
}

func TestParse_LeadingZerosInParameters(t *testing.T) {
	runs := Parse("\x1b[01;31ma\x1b[00;034mb\x1b[031mc")
	require.Len(t, runs, 3)
	assert.Equal(t, "#ff8787", runs[0].Style[AttrColor])
	assert.Equal(t, "#74c0fc", runs[1].Style[AttrColor])
	assert.Equal(t, "#ff6b6b", runs[2].Style[AttrColor])
}

func TestParse_UnknownCodeKeepsStyle(t *testing.T) {
	runs := Parse("\x1b[0;36mkeep\x1b[4;45mstill\x1b[38;5;208mcyan")
	require.Len(t, runs, 3)
	for _, run := range runs {
		assert.Equal(t, Style{AttrColor: "#20c997"}, run.Style, "run %q", run.Text)
	}
	assert.Equal(t, "keepstillcyan", runs.Text())
}

func TestParse_MalformedSequencesStayLiteral(t *testing.T) {
	cases := []string{
		"\x1b[31",       // unterminated
		"\x1b[3a1m",     // non-digit parameter
		"\x1b[;31m",     // empty parameter
		"\x1b31m",       // missing bracket
		"trailing \x1b", // lone escape
	}
	for _, raw := range cases {
		runs := Parse(raw)
		require.Len(t, runs, 1, "Parse(%q)", raw)
		assert.Equal(t, raw, runs[0].Text)
		assert.Empty(t, runs[0].Style)
	}
}

func TestParse_RunsDoNotShareStyle(t *testing.T) {
	runs := Parse("\x1b[0;31ma\x1b[4mb")
	require.Len(t, runs, 2)
	runs[0].Style[AttrColor] = "mutated"
	assert.Equal(t, "#ff6b6b", runs[1].Style[AttrColor])
}

func TestParse_WhitespaceRunsCarryStyle(t *testing.T) {
	runs := Parse("\x1b[0;31m-\x1b[0m\n\x1b[0;32m+ \n")
	require.Len(t, runs, 3)
	assert.Equal(t, "\n", runs[1].Text)
	assert.Empty(t, runs[1].Style)
	assert.Equal(t, "+ \n", runs[2].Text)
	assert.Equal(t, "#51cf66", runs[2].Style[AttrColor])
}

func TestStrip_ConcatenationDropsOnlySequences(t *testing.T) {
	cases := map[string]string{
		"":                                   "",
		"plain":                              "plain",
		"\x1b[0;31m-a\x1b[0m\n\x1b[0;32m+b":  "-a\n+b",
		"x\x1b[7my\x1b[mz":                   "xyz",
		"\x1b[1;33m{\x1b[0m\n  \"k\": 1\n}\n": "{\n  \"k\": 1\n}\n",
		"\x1b[31":                            "\x1b[31",
	}
	for raw, want := range cases {
		assert.Equal(t, want, Strip(raw), "Strip(%q)", raw)
	}
}

func TestStyle_Color(t *testing.T) {
	c, ok := Style{AttrColor: "#fff"}.Color()
	assert.True(t, ok)
	assert.Equal(t, "#fff", c)

	_, ok = Style{}.Color()
	assert.False(t, ok)
}
