package parser

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var update = flag.Bool("update", false, "rewrite testdata/*.golden")

// renderGolden prints the parsed program followed by its diagnostics.
func renderGolden(name, src string) string {
	p := NewFromSource(src, name)
	program, err := p.ParseProgram()

	var b strings.Builder
	if program != nil {
		b.WriteString(program.String())
		b.WriteByte('\n')
	}
	for _, d := range p.Diagnostics() {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	var perr *Error
	if errors.As(err, &perr) {
		b.WriteString("fatal: " + perr.Diagnostic().String() + "\n")
	}
	return b.String()
}

func TestGoldenFiles(t *testing.T) {
	inputs, err := filepath.Glob(filepath.Join("testdata", "*.leo"))
	if err != nil {
		t.Fatal(err)
	}
	if len(inputs) == 0 {
		t.Fatal("no testdata")
	}

	for _, input := range inputs {
		name := strings.TrimSuffix(filepath.Base(input), ".leo")
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(input)
			if err != nil {
				t.Fatal(err)
			}
			got := renderGolden(filepath.Base(input), string(src))

			goldenPath := filepath.Join("testdata", name+".golden")
			if *update {
				if err := os.WriteFile(goldenPath, []byte(got), 0o644); err != nil {
					t.Fatal(err)
				}
				return
			}
			want, err := os.ReadFile(goldenPath)
			if err != nil {
				t.Fatalf("missing golden file, run with -update: %v", err)
			}
			if got != string(want) {
				t.Fatalf("output mismatch for %s:\n got:\n%s\nwant:\n%s", input, got, want)
			}
		})
	}
}

// Printing a program and parsing the result again must be stable.
func TestPrintRoundTrip(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "program.leo"))
	if err != nil {
		t.Fatal(err)
	}
	first, err := NewFromSource(string(src), "a.leo").ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error: %v", err)
	}
	printed := first.String()

	p := NewFromSource(printed, "b.leo")
	second, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("reparse error: %v\n%s", err, printed)
	}
	if second.String() != printed {
		t.Fatalf("round trip changed output:\n%s\n---\n%s", printed, second.String())
	}
	if len(p.Diagnostics()) != 0 {
		t.Fatalf("reparse diagnostics: %v", p.Diagnostics())
	}
}
