package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherDebouncesBurstWrites(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "volume.raw")
	if err := os.WriteFile(file, []byte("start"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	fw, err := NewFileWatcher(100 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	var calls int32
	if err := fw.Watch([]string{file}, func(string) {
		atomic.AddInt32(&calls, 1)
	}); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	fw.Start()

	// A burst of writes within the debounce window must collapse to one
	// reload.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(file, []byte("chunk"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&calls) == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("debounce failed: expected 1 reload, got %d", got)
	}
}

func TestWatcherIgnoresUnwatchedFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "watched.mhd")
	if err := os.WriteFile(watched, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	fw, err := NewFileWatcher(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	var calls int32
	if err := fw.Watch([]string{watched}, func(string) {
		atomic.AddInt32(&calls, 1)
	}); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := fw.RemoveAll(); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	fw.Start()

	if err := os.WriteFile(watched, []byte("y"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	time.Sleep(200 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Errorf("RemoveAll failed: expected no reloads, got %d", got)
	}
}
