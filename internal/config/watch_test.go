package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_SignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "thresholds.ini", "[thresholds]\n")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[thresholds]\nskin_lower = 1, 2, 3\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "thresholds.ini", "[thresholds]\n")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	writeFile(t, dir, "other.ini", "x = 1\n")

	select {
	case <-w.Changes():
		t.Fatal("unexpected change notification")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "thresholds.ini")); err == nil {
		t.Error("expected error for missing directory")
	}
}
