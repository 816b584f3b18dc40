package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func startWatcher(t *testing.T, path string, debounce time.Duration, handler Handler) (cancel func(), done <-chan error) {
	t.Helper()

	w, err := New(path, handler, debounce, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { w.Close() })

	ctx, cancelCtx := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	// Give the goroutine a moment to enter its select loop
	time.Sleep(50 * time.Millisecond)
	return cancelCtx, errCh
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "words.txt"), func(context.Context, string) error { return nil }, 0, nil)
	if err == nil {
		t.Error("Expected error when the parent directory does not exist")
	}
}

func TestNew_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	w, err := New(path, func(context.Context, string) error { return nil }, 0, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if w.debounce != DefaultDebounce {
		t.Errorf("debounce = %v, want %v", w.debounce, DefaultDebounce)
	}
	if !filepath.IsAbs(w.Path()) {
		t.Errorf("Path() = %q, want absolute path", w.Path())
	}
}

func TestRun_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(path, []byte("cat"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	var calls atomic.Int32
	called := make(chan string, 10)
	cancel, done := startWatcher(t, path, 200*time.Millisecond, func(_ context.Context, p string) error {
		calls.Add(1)
		called <- p
		return nil
	})
	defer cancel()

	for _, content := range []string{"cat,dog", "cat,dog,fish", "cat,dog,fish,bird"} {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
	}

	select {
	case got := <-called:
		want, _ := filepath.Abs(path)
		if got != want {
			t.Errorf("handler called with %q, want %q", got, want)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("handler was not called after file writes")
	}

	time.Sleep(500 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("handler called %d times for one burst of writes, want 1", n)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRun_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(path, []byte("cat"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	var calls atomic.Int32
	cancel, _ := startWatcher(t, path, 50*time.Millisecond, func(context.Context, string) error {
		calls.Add(1)
		return nil
	})
	defer cancel()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("dog"), 0644); err != nil {
		t.Fatalf("Failed to write other file: %v", err)
	}

	time.Sleep(300 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Errorf("handler called %d times for an unrelated file, want 0", n)
	}
}

func TestRun_HandlerErrorKeepsWatching(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(path, []byte("cat"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	called := make(chan struct{}, 10)
	cancel, _ := startWatcher(t, path, 50*time.Millisecond, func(context.Context, string) error {
		called <- struct{}{}
		return errors.New("boom")
	})
	defer cancel()

	for i := 0; i < 2; i++ {
		if err := os.WriteFile(path, []byte{byte('a' + i)}, 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
		select {
		case <-called:
		case <-time.After(3 * time.Second):
			t.Fatalf("handler not called for write %d", i+1)
		}
		time.Sleep(150 * time.Millisecond)
	}
}
