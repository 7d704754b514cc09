package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zkcircuit/leoparse/internal/diagnostics"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.json")} {
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig(%q) error: %v", path, err)
		}
		if cfg.Color != "auto" || cfg.Workers <= 0 || cfg.ServerAddr == "" {
			t.Fatalf("LoadConfig(%q) = %+v, want defaults", path, cfg)
		}
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	body := `{"verbose": true, "color": "never", "workers": 2, "error_limit": 5}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if !cfg.Verbose || cfg.Workers != 2 || cfg.ErrorLimit != 5 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.ColorMode() != diagnostics.ColorNever {
		t.Fatalf("ColorMode() = %v, want never", cfg.ColorMode())
	}
	if cfg.ServerAddr != "localhost:4433" {
		t.Fatalf("unset fields should keep defaults, got %q", cfg.ServerAddr)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"color": "sometimes"}`, "unknown color mode"},
		{`{"workers": -1}`, "workers must not be negative"},
		{`{"verbose": `, "failed to parse config file"},
	}

	dir := t.TempDir()
	for i, tt := range tests {
		path := filepath.Join(dir, "cfg.json")
		if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadConfig(path)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("tests[%d] - error wrong. expected to contain %q, got=%v", i, tt.want, err)
		}
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	cfg := DefaultConfig()
	cfg.Debug = true
	cfg.Workers = 3
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if !loaded.Debug || loaded.Workers != 3 {
		t.Fatalf("loaded = %+v", loaded)
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(false, false)
	l.SetOutput(&buf)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.Info("hidden %d", 1)
	l.Debug("hidden %d", 2)
	l.Warn("careful %s", "now")
	l.Error("broken")

	want := "[WARN] 03:04:05: careful now\n[ERROR] 03:04:05: broken\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	l.Verbose, l.DebugMode = true, true
	l.Info("parsed %d files", 3)
	l.Debug("tokens=%d", 12)
	want = "[INFO] 03:04:05: parsed 3 files\n[DEBUG] 03:04:05: tokens=12\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintVersion(&buf, "leoparse", false); err != nil {
		t.Fatalf("PrintVersion() error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "leoparse v"+Version+"\n") {
		t.Fatalf("unexpected text output %q", buf.String())
	}

	buf.Reset()
	if err := PrintVersion(&buf, "leoparse", true); err != nil {
		t.Fatalf("PrintVersion() error: %v", err)
	}
	var decoded struct {
		Tool        string      `json:"tool"`
		VersionInfo VersionInfo `json:"version_info"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if decoded.Tool != "leoparse" || decoded.VersionInfo.Version != Version {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestExitError(t *testing.T) {
	inner := errors.New("2 files failed")
	err := error(&ExitError{Code: 2, Err: inner})
	if !errors.Is(err, inner) {
		t.Fatal("ExitError should unwrap to its cause")
	}
	if err.Error() != "2 files failed" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if (&ExitError{Code: 3}).Error() != "exit status 3" {
		t.Fatal("bare ExitError message wrong")
	}
}
