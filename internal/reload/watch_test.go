package reload

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchNotifiesOnChange(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "m.fwbo")
	if err := os.WriteFile(modelPath, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := newRecorder()
	d := New(5*time.Millisecond, rec.parse, rec.update, quietLogger())
	defer d.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Watch(ctx, d, modelPath, filepath.Join(dir, "m.fwbo.diagram"), 1, 5*time.Millisecond, nil)

	time.Sleep(20 * time.Millisecond)
	if err := os.WriteFile(modelPath, []byte("version two"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("change was not picked up")
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.parsed) == 0 || rec.parsed[0].Model != "version two" || rec.parsed[0].Version != 2 {
		t.Errorf("parsed = %+v", rec.parsed)
	}
}

func TestWatchNotifiesOnSameSizeRewrite(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "m.fwbo")
	if err := os.WriteFile(modelPath, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(modelPath)
	if err != nil {
		t.Fatal(err)
	}

	rec := newRecorder()
	d := New(5*time.Millisecond, rec.parse, rec.update, quietLogger())
	defer d.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Watch(ctx, d, modelPath, "", 1, 5*time.Millisecond, nil)

	time.Sleep(20 * time.Millisecond)
	if err := os.WriteFile(modelPath, []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Same size and the old mtime: only the content differs.
	if err := os.Chtimes(modelPath, fi.ModTime(), fi.ModTime()); err != nil {
		t.Fatal(err)
	}

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("same-size rewrite was not picked up")
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.parsed) == 0 || rec.parsed[0].Model != "v2" || rec.parsed[0].Version != 2 {
		t.Errorf("parsed = %+v", rec.parsed)
	}
}

func TestWatchIgnoresTouchWithoutChange(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "m.fwbo")
	if err := os.WriteFile(modelPath, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := newRecorder()
	d := New(5*time.Millisecond, rec.parse, rec.update, quietLogger())
	defer d.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Watch(ctx, d, modelPath, "", 1, 5*time.Millisecond, nil)

	time.Sleep(20 * time.Millisecond)
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(modelPath, later, later); err != nil {
		t.Fatal(err)
	}

	select {
	case <-rec.done:
		t.Error("touch without a content change triggered a reload")
	case <-time.After(100 * time.Millisecond):
	}
}
