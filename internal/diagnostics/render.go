package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/width"

	"github.com/zkcircuit/leoparse/internal/position"
)

// ColorMode selects when the renderer emits ANSI colour.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode maps the config spelling to a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("unknown color mode %q", s)
}

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// Renderer prints diagnostics with the offending source line and a caret
// run under the span.
type Renderer struct {
	w     io.Writer
	color bool
}

// NewRenderer creates a renderer writing to w. With ColorAuto colour is
// enabled only when w is a terminal.
func NewRenderer(w io.Writer, mode ColorMode) *Renderer {
	color := false
	switch mode {
	case ColorAlways:
		color = true
	case ColorAuto:
		if f, ok := w.(*os.File); ok {
			color = isTerminal(f.Fd())
		}
	}
	return &Renderer{w: w, color: color}
}

// Render formats a single diagnostic. src may be nil, in which case only
// the header line is produced.
func (r *Renderer) Render(src *position.SourceFile, d Diagnostic) string {
	var b strings.Builder

	levelColor := ansiRed
	if d.Level != DiagnosticError {
		levelColor = ansiYellow
	}
	fmt.Fprintf(&b, "%s: %s: %s\n",
		d.Span.Start,
		r.paint(levelColor+ansiBold, fmt.Sprintf("%s[%s]", d.Level, d.Code)),
		r.paint(ansiBold, d.Message))

	if src == nil || !d.Span.IsValid() {
		return b.String()
	}
	line := src.GetLine(d.Span.Start.Line)
	if line == "" {
		return b.String()
	}

	startCol := clamp(d.Span.Start.Column-1, 0, len(line))
	endCol := len(line)
	if d.Span.End.Line == d.Span.Start.Line {
		endCol = clamp(d.Span.End.Column-1, startCol, len(line))
	}

	gutter := fmt.Sprintf("%d", d.Span.Start.Line)
	pad := strings.Repeat(" ", len(gutter))
	fmt.Fprintf(&b, "%s\n", r.paint(ansiBlue, pad+" |"))
	fmt.Fprintf(&b, "%s %s\n", r.paint(ansiBlue, gutter+" |"), line)

	carets := displayWidth(line[startCol:endCol])
	if carets == 0 {
		carets = 1
	}
	fmt.Fprintf(&b, "%s %s%s\n",
		r.paint(ansiBlue, pad+" |"),
		indentFor(line[:startCol]),
		r.paint(levelColor+ansiBold, strings.Repeat("^", carets)))

	return b.String()
}

// RenderAll writes every diagnostic to the renderer's writer.
func (r *Renderer) RenderAll(src *position.SourceFile, diags []Diagnostic) error {
	for _, d := range diags {
		if _, err := io.WriteString(r.w, r.Render(src, d)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) paint(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}

// indentFor produces whitespace occupying the same display columns as
// prefix; tabs are kept so the caret lines up with the source.
func indentFor(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runeWidth(r)))
	}
	return b.String()
}

func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runeWidth(r)
	}
	return n
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
