package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zkcircuit/leoparse/internal/driver"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "a.leo", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "a.leo", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "a.leo", Op: fsnotify.Write | fsnotify.Chmod}, true},
		{fsnotify.Event{Name: "a.leo", Op: fsnotify.Remove}, false},
		{fsnotify.Event{Name: "a.leo", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "a.txt", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "program.json", Op: fsnotify.Create}, false},
	}

	for i, tt := range tests {
		if got := relevant(tt.ev); got != tt.want {
			t.Fatalf("tests[%d] - relevant(%v) = %v, want %v", i, tt.ev, got, tt.want)
		}
	}
}

func TestWatcherReparsesOnWrite(t *testing.T) {
	dir := t.TempDir()
	results := make(chan *driver.Result, 8)

	w, err := New(driver.New(driver.Options{}), func(r *driver.Result) { results <- r },
		WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := w.Add(dir); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	path := filepath.Join(dir, "main.leo")
	if err := os.WriteFile(path, []byte("function main() { return 1u8; }"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case res := <-results:
		if res.Path != path {
			t.Fatalf("result path = %q, want %q", res.Path, path)
		}
		if res.Failed() {
			t.Fatalf("reparse failed: %v %v", res.Err, res.Diagnostics)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reparse within 5s")
	}

	cancel()
	select {
	case err := <-errc:
		if err != context.Canceled {
			t.Fatalf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
}

func TestCloseWhileRunning(t *testing.T) {
	dir := t.TempDir()
	w, err := New(driver.New(driver.Options{}), func(*driver.Result) {}, WithDebounce(time.Hour))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := w.Add(dir); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	errc := make(chan error, 1)
	go func() { errc <- w.Run(context.Background()) }()

	// Leave debounce timers pending so Close has to stop them.
	for _, name := range []string{"a.leo", "b.leo", "c.leo"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("function main() {}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(50 * time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := w.Close(); err != nil {
				t.Errorf("Close() error: %v", err)
			}
		}()
	}
	wg.Wait()

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run() = %v, want nil after Close", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Close")
	}

	w.mu.Lock()
	pending := len(w.pending)
	w.mu.Unlock()
	if pending != 0 {
		t.Fatalf("pending timers = %d after Close", pending)
	}
}
