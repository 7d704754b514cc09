package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		err   string
	}{
		{`{"program": "hello.aleo", "version": "0.1.0"}`, ""},
		{`{"program": "hello.aleo", "version": "1.2.3-beta.1", "parser": ">= 0.3, < 1.0"}`, ""},
		{`{"version": "0.1.0"}`, "program name is required"},
		{`{"program": "hello.aleo", "version": "one"}`, "invalid version"},
		{`{"program": "hello.aleo", "version": "0.1.0", "parser": "banana"}`, "invalid parser constraint"},
		{`not json`, "failed to parse"},
	}

	for i, tt := range tests {
		m, err := Parse([]byte(tt.input))
		if tt.err == "" {
			if err != nil {
				t.Fatalf("tests[%d] - unexpected error: %v", i, err)
			}
			if m.SemVer() == nil {
				t.Fatalf("tests[%d] - version not parsed", i)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.err) {
			t.Fatalf("tests[%d] - error wrong. expected to contain %q, got=%v", i, tt.err, err)
		}
	}
}

func TestCheckParser(t *testing.T) {
	m, err := Parse([]byte(`{"program": "p.aleo", "version": "0.1.0", "parser": ">= 0.3, < 1.0"}`))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		version string
		ok      bool
	}{
		{"0.3.0", true},
		{"0.9.12", true},
		{"0.2.9", false},
		{"1.0.0", false},
	}
	for i, tt := range tests {
		err := m.CheckParser(tt.version)
		if tt.ok != (err == nil) {
			t.Fatalf("tests[%d] - CheckParser(%s) = %v", i, tt.version, err)
		}
		if err != nil {
			var incompatible *IncompatibleError
			if !errors.As(err, &incompatible) || incompatible.Program != "p.aleo" {
				t.Fatalf("tests[%d] - error is not *IncompatibleError: %v", i, err)
			}
		}
	}

	if err := m.CheckParser("not-a-version"); err == nil {
		t.Fatal("expected error for an invalid parser version")
	}

	open, _ := Parse([]byte(`{"program": "p.aleo", "version": "0.1.0"}`))
	if err := open.CheckParser("99.0.0"); err != nil {
		t.Fatalf("manifest without constraint rejected parser: %v", err)
	}
}

func TestLoadAndSourceFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, body string) {
		t.Helper()
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(FileName, `{"program": "token.aleo", "version": "0.2.0"}`)
	write("src/main.leo", "function main() {}")
	write("src/lib/math.leo", "function add() {}")
	write("src/notes.txt", "ignored")

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m.Dir() != dir {
		t.Fatalf("Dir() = %q", m.Dir())
	}

	files, err := m.SourceFiles()
	if err != nil {
		t.Fatalf("SourceFiles() error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "src", "lib", "math.leo"),
		filepath.Join(dir, "src", "main.leo"),
	}
	if len(files) != len(want) {
		t.Fatalf("SourceFiles() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrNoManifest) {
		t.Fatalf("Load() error = %v, want ErrNoManifest", err)
	}
}
