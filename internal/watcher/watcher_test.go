package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

type countingReloader struct {
	calls atomic.Int32
}

func (r *countingReloader) RequestReload() {
	r.calls.Add(1)
}

func TestSettingsChangeTriggersReload(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(target, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	reloader := &countingReloader{}
	w, err := New(target, reloader)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(target, []byte(`{"scale": 200}`), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for reloader.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no reload after settings write")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestUnrelatedFileIgnored(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "settings.json")

	reloader := &countingReloader{}
	w, err := New(target, reloader)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(2 * debounceWindow)
	if got := reloader.calls.Load(); got != 0 {
		t.Errorf("reloads = %d, want 0 for unrelated file", got)
	}
}

func TestBurstDebouncedToOneReload(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "settings.json")

	reloader := &countingReloader{}
	w, err := New(target, reloader)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(target, []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	deadline := time.Now().Add(3 * time.Second)
	for reloader.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no reload after settings writes")
		}
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(2 * debounceWindow)
	if got := reloader.calls.Load(); got != 1 {
		t.Errorf("reloads = %d, want 1 for a coalesced burst", got)
	}
}
