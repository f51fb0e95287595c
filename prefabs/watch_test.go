package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherForwardsSpecChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, CameraFile)
	if err := os.WriteFile(path, []byte("turn_speed: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if filepath.Base(got) != CameraFile {
			t.Fatalf("expected %s event, got %s", CameraFile, got)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}
}

func TestWatcherReportsBurstOnceAfterLastWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, CameraFile)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)
	if err := os.WriteFile(path, []byte("turn_speed: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	wrote := time.Now()

	select {
	case got := <-w.Events:
		if filepath.Base(got) != CameraFile {
			t.Fatalf("expected %s event, got %s", CameraFile, got)
		}
		if elapsed := time.Since(wrote); elapsed < debounce/2 {
			t.Fatalf("event forwarded %v after the last write, before the burst settled", elapsed)
		}
		data, err := os.ReadFile(got)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "turn_speed: 9\n" {
			t.Fatalf("expected final content when the event arrives, got %q", data)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}

	select {
	case got := <-w.Events:
		t.Fatalf("expected a single event for the burst, got another for %s", got)
	case <-time.After(3 * debounce):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatalf("events channel should be closed")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
