package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zkcircuit/leoparse/internal/position"
)

func spanAt(sf *position.SourceFile, from, to int) position.Span {
	return position.NewSpan(sf.PositionFromOffset(from), sf.PositionFromOffset(to))
}

func TestHandlerEmit(t *testing.T) {
	h := NewHandler()
	if h.HasErrors() || h.Len() != 0 {
		t.Fatal("new handler should be empty")
	}

	h.Emit(NewDiagnosticBuilder().Warning().WithCode("w").WithMessage("later").Build())
	h.Emit(NewDiagnosticBuilder().Error().WithCode("e").WithMessagef("bad %d", 1).Build())

	if !h.HasErrors() || h.ErrorCount() != 1 || h.Len() != 2 {
		t.Fatalf("unexpected counts: errors=%d len=%d", h.ErrorCount(), h.Len())
	}
	if got := h.Diagnostics()[1].Message; got != "bad 1" {
		t.Fatalf("message = %q", got)
	}

	h.Clear()
	if h.Len() != 0 || h.HasErrors() {
		t.Fatal("Clear() should reset the handler")
	}
}

func TestHandlerErrorLimit(t *testing.T) {
	h := NewHandler()
	h.SetErrorLimit(2)
	for i := 0; i < 5; i++ {
		h.Emit(Diagnostic{Level: DiagnosticError, Code: "e"})
	}
	h.Emit(Diagnostic{Level: DiagnosticWarning, Code: "w"})

	if h.ErrorCount() != 2 {
		t.Errorf("ErrorCount() = %d, want 2", h.ErrorCount())
	}
	if h.Dropped() != 3 {
		t.Errorf("Dropped() = %d, want 3", h.Dropped())
	}
	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
}

func TestHandlerSorted(t *testing.T) {
	sf := position.NewSourceFile("a.leo", "abcdefghij")
	h := NewHandler()
	h.Emit(Diagnostic{Code: "second", Span: spanAt(sf, 5, 6)})
	h.Emit(Diagnostic{Code: "first", Span: spanAt(sf, 1, 2)})

	sorted := h.Sorted()
	if sorted[0].Code != "first" || sorted[1].Code != "second" {
		t.Fatalf("unexpected order: %v", sorted)
	}
	if h.Diagnostics()[0].Code != "second" {
		t.Fatal("Sorted() must not reorder the handler")
	}
}

func TestRenderCaret(t *testing.T) {
	src := "function main() {\n    x + 1;\n}"
	sf := position.NewSourceFile("main.leo", src)
	d := Diagnostic{
		Level:   DiagnosticError,
		Code:    "expr_stmts_disallowed",
		Message: "expression statements are not supported",
		Span:    spanAt(sf, 22, 28),
	}

	var buf bytes.Buffer
	r := NewRenderer(&buf, ColorNever)
	if err := r.RenderAll(sf, []Diagnostic{d}); err != nil {
		t.Fatalf("RenderAll() error: %v", err)
	}

	want := strings.Join([]string{
		"main.leo:2:5: error[expr_stmts_disallowed]: expression statements are not supported",
		"  |",
		"2 |     x + 1;",
		"  |     ^^^^^^",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("render mismatch:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestRenderWideRunes(t *testing.T) {
	src := `console.log("日本", x);`
	sf := position.NewSourceFile("w.leo", src)
	start := strings.Index(src, "x")
	d := Diagnostic{Code: "c", Message: "m", Span: spanAt(sf, start, start+1)}

	out := NewRenderer(&bytes.Buffer{}, ColorNever).Render(sf, d)
	lines := strings.Split(out, "\n")
	caretLine := lines[3]
	// `console.log("` is 13 columns, each CJK rune takes two, then `", `.
	want := "  | " + strings.Repeat(" ", 13+4+3) + "^"
	if caretLine != want {
		t.Fatalf("caret line = %q, want %q", caretLine, want)
	}
}

func TestRenderColor(t *testing.T) {
	d := Diagnostic{Code: "c", Message: "m"}
	out := NewRenderer(&bytes.Buffer{}, ColorAlways).Render(nil, d)
	if !strings.Contains(out, ansiRed) {
		t.Fatalf("expected ANSI colour in %q", out)
	}
	out = NewRenderer(&bytes.Buffer{}, ColorAuto).Render(nil, d)
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("buffer is not a terminal, got colour: %q", out)
	}
}

func TestParseColorMode(t *testing.T) {
	for in, want := range map[string]ColorMode{"": ColorAuto, "AUTO": ColorAuto, "always": ColorAlways, "never": ColorNever} {
		got, err := ParseColorMode(in)
		if err != nil || got != want {
			t.Errorf("ParseColorMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseColorMode("sometimes"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
