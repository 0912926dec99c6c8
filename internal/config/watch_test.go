package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.yaml", "log_level: info\n")

	w, err := NewWatcher(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads := make(chan string, 1)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, reloads) }()

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("log_level: debug\n"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	select {
	case <-reloads:
	case <-time.After(3 * time.Second):
		t.Fatalf("expected a reload notification")
	}

	select {
	case <-reloads:
		t.Fatalf("expected burst of writes to collapse into one notification")
	case <-time.After(2 * watchDebounce):
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.yaml", "log_level: info\n")

	w, err := NewWatcher(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads := make(chan string, 1)
	go func() { _ = w.Run(ctx, reloads) }()

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-reloads:
		t.Fatalf("unexpected reload for unrelated file")
	case <-time.After(3 * watchDebounce):
	}
}
