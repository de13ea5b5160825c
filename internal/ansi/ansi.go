// Package ansi turns SGR-colorized text into styled runs.
package ansi

import (
	"regexp"
	"strconv"
	"strings"
)

// AttrColor is the style attribute set by the foreground color codes.
const AttrColor = "color"

// Style maps an attribute name to its display value. An empty Style means the
// terminal default.
type Style map[string]string

// Color returns the color attribute when present.
func (s Style) Color() (string, bool) {
	c, ok := s[AttrColor]
	return c, ok
}

func (s Style) clone() Style {
	dup := make(Style, len(s))
	for k, v := range s {
		dup[k] = v
	}
	return dup
}

// Run is a contiguous span of text and the style active while it was read.
type Run struct {
	Text  string
	Style Style
}

// Runs is an ordered sequence of styled text.
type Runs []Run

// Text concatenates the text of every run.
func (r Runs) Text() string {
	var b strings.Builder
	for _, run := range r {
		b.WriteString(run.Text)
	}
	return b.String()
}

// sgrPattern matches ESC[ <digits>(;<digits>)* m, including the bare ESC[m.
var sgrPattern = regexp.MustCompile(`\x1b\[((?:\d+;)*\d+)?m`)

// Display colors tuned for a dark background, keyed by parameter list.
var sgrColors = map[string]string{
	"0;30": "#666666",
	"0;31": "#ff6b6b",
	"0;32": "#51cf66",
	"0;33": "#ffd43b",
	"0;34": "#74c0fc",
	"0;35": "#da77f2",
	"0;36": "#20c997",
	"0;37": "#ffffff",
	"1;30": "#868e96",
	"1;31": "#ff8787",
	"1;32": "#69db7c",
	"1;33": "#ffec99",
	"1;34": "#91d5ff",
	"1;35": "#e599f7",
	"1;36": "#63e6be",
	"1;37": "#ffffff",
}

func init() {
	for code := 30; code <= 37; code++ {
		sgrColors[strconv.Itoa(code)] = sgrColors["0;"+strconv.Itoa(code)]
		sgrColors[strconv.Itoa(code+60)] = sgrColors["1;"+strconv.Itoa(code)]
	}
}

// Parse splits raw into runs. Unknown SGR codes are dropped without touching the
// current style; anything that is not a well-formed SGR sequence stays text.
func Parse(raw string) Runs {
	if raw == "" {
		return nil
	}

	var runs Runs
	style := Style{}
	pos := 0
	for _, loc := range sgrPattern.FindAllStringSubmatchIndex(raw, -1) {
		runs = appendRun(runs, raw[pos:loc[0]], style)
		params := ""
		if loc[2] >= 0 {
			params = raw[loc[2]:loc[3]]
		}
		style = apply(style, params)
		pos = loc[1]
	}
	return appendRun(runs, raw[pos:], style)
}

// Strip returns raw with every SGR sequence removed.
func Strip(raw string) string {
	return Parse(raw).Text()
}

func appendRun(runs Runs, text string, style Style) Runs {
	if text == "" {
		return runs
	}
	return append(runs, Run{Text: text, Style: style.clone()})
}

func apply(style Style, params string) Style {
	codes := normalize(params)
	if isReset(codes) {
		return Style{}
	}
	if color, ok := sgrColors[strings.Join(codes, ";")]; ok {
		style[AttrColor] = color
	}
	return style
}

// normalize drops leading zeros so 01;31 looks up as 1;31. An empty list
// stays empty.
func normalize(params string) []string {
	if params == "" {
		return nil
	}
	parts := strings.Split(params, ";")
	for i, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			parts[i] = strconv.Itoa(n)
		}
	}
	return parts
}

// isReset reports whether the sequence ends with the style cleared: no
// parameters, or a final 0 as in 31;0.
func isReset(codes []string) bool {
	return len(codes) == 0 || codes[len(codes)-1] == "0"
}
