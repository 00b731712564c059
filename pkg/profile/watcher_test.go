package profile

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestIsProfileEvent(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"yaml write", fsnotify.Event{Name: "oval.yaml", Op: fsnotify.Write}, true},
		{"yml create", fsnotify.Event{Name: "road.yml", Op: fsnotify.Create}, true},
		{"yaml remove", fsnotify.Event{Name: "oval.yaml", Op: fsnotify.Remove}, true},
		{"yaml rename", fsnotify.Event{Name: "oval.yaml", Op: fsnotify.Rename}, true},
		{"yaml chmod only", fsnotify.Event{Name: "oval.yaml", Op: fsnotify.Chmod}, false},
		{"non-yaml write", fsnotify.Event{Name: "README.md", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isProfileEvent(tt.event); got != tt.want {
				t.Errorf("isProfileEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	defer d.stop()

	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		d.trigger(func() { calls.Add(1) })
	}

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 coalesced call, got %d", got)
	}
}

func TestWatcher_ReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oval.yaml")
	if err := os.WriteFile(path, []byte(sampleProfileYAML), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(dir, 20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	reloaded := make(chan struct{}, 1)
	go func() {
		w.Watch(ctx, func() error {
			select {
			case reloaded <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// Give the watch loop time to register before touching the file.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte(sampleProfileYAML+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	case <-ctx.Done():
		t.Fatal("reload callback never fired")
	}

	if err := w.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
}
