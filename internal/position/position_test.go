package position

import (
	"testing"
)

func TestPosition(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		pos      Position
		isValid  bool
	}{
		{
			name:     "Valid position with filename",
			pos:      Position{Filename: "src/main.leo", Line: 10, Column: 5, Offset: 100},
			isValid:  true,
			expected: "main.leo:10:5",
		},
		{
			name:     "Valid position without filename",
			pos:      Position{Line: 1, Column: 1, Offset: 0},
			isValid:  true,
			expected: "1:1",
		},
		{
			name:    "Invalid position - zero line",
			pos:     Position{Line: 0, Column: 1, Offset: 0},
			isValid: false,
		},
		{
			name:    "Invalid position - negative offset",
			pos:     Position{Line: 1, Column: 1, Offset: -1},
			isValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.isValid {
				t.Errorf("Position.IsValid() = %v, want %v", got, tt.isValid)
			}
			if tt.isValid {
				if got := tt.pos.String(); got != tt.expected {
					t.Errorf("Position.String() = %v, want %v", got, tt.expected)
				}
			}
		})
	}
}

func span(start, end int) Span {
	return Span{
		Start: Position{Line: 1, Column: start + 1, Offset: start},
		End:   Position{Line: 1, Column: end + 1, Offset: end},
	}
}

func TestSpanUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", span(0, 3), span(5, 9), span(0, 9)},
		{"reversed", span(5, 9), span(0, 3), span(0, 9)},
		{"nested", span(0, 10), span(2, 4), span(0, 10)},
		{"invalid left", Span{}, span(2, 4), span(2, 4)},
		{"invalid right", span(2, 4), Span{}, span(2, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("Union() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanUnionAssociative(t *testing.T) {
	a, b, c := span(4, 6), span(0, 2), span(9, 12)

	left := a.Union(b).Union(c)
	right := a.Union(b.Union(c))
	if left != right {
		t.Fatalf("union not associative: %v vs %v", left, right)
	}
	if got := Merge(a, b, c); got != left {
		t.Fatalf("Merge() = %v, want %v", got, left)
	}
	for _, s := range []Span{a, b, c} {
		if !left.Covers(s) {
			t.Errorf("%v does not cover %v", left, s)
		}
	}
}

func TestSourceFileSpanText(t *testing.T) {
	src := "let x: u8 = 1u8;\nreturn x;"
	sf := NewSourceFile("main.leo", src)

	start := sf.PositionFromOffset(17)
	if start.Line != 2 || start.Column != 1 {
		t.Fatalf("PositionFromOffset(17) = %v", start)
	}

	end := sf.PositionFromOffset(25)
	if got := sf.GetSpanText(NewSpan(start, end)); got != "return x" {
		t.Fatalf("GetSpanText() = %q", got)
	}
	if got := sf.GetLine(2); got != "return x;" {
		t.Fatalf("GetLine(2) = %q", got)
	}
	if got := sf.GetLine(3); got != "" {
		t.Fatalf("GetLine(3) = %q, want empty", got)
	}
}
