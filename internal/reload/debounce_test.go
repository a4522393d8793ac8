package reload

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/result"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recorder struct {
	mu      sync.Mutex
	parsed  []Snapshot
	updates []Update
	done    chan struct{}
}

func newRecorder() *recorder {
	return &recorder{done: make(chan struct{}, 16)}
}

func (r *recorder) parse(s Snapshot) (*result.ParseResult, error) {
	r.mu.Lock()
	r.parsed = append(r.parsed, s)
	r.mu.Unlock()
	if s.Model == "bad" {
		return result.Failed("parse_error", errors.New("broken")), nil
	}
	return &result.ParseResult{Success: true, Data: model.Empty()}, nil
}

func (r *recorder) update(u Update) {
	r.mu.Lock()
	r.updates = append(r.updates, u)
	r.mu.Unlock()
	r.done <- struct{}{}
}

func (r *recorder) parsedVersions() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []int64
	for _, s := range r.parsed {
		out = append(out, s.Version)
	}
	return out
}

func TestBurstCollapsesToLatest(t *testing.T) {
	rec := newRecorder()
	d := New(20*time.Millisecond, rec.parse, rec.update, quietLogger())
	defer d.Stop()

	for v := int64(1); v <= 5; v++ {
		d.Notify(Snapshot{Version: v, Model: "ok"})
	}
	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("no update after burst")
	}
	time.Sleep(60 * time.Millisecond)

	got := rec.parsedVersions()
	if len(got) != 1 || got[0] != 5 {
		t.Errorf("parsed versions = %v, want [5]", got)
	}
}

func TestSameVersionSkippedUnlessForced(t *testing.T) {
	rec := newRecorder()
	d := New(time.Hour, rec.parse, rec.update, quietLogger())
	defer d.Stop()

	d.Notify(Snapshot{Version: 3, Model: "ok"})
	d.Flush()
	d.Notify(Snapshot{Version: 3, Model: "ok"})
	d.Flush()
	if got := rec.parsedVersions(); len(got) != 1 {
		t.Fatalf("parsed = %v, want one parse", got)
	}

	d.Force(Snapshot{Version: 3, Model: "ok"})
	d.Flush()
	if got := rec.parsedVersions(); len(got) != 2 {
		t.Errorf("parsed = %v, want forced re-parse", got)
	}
}

func TestFailureKeepsPreviousModel(t *testing.T) {
	rec := newRecorder()
	d := New(time.Hour, rec.parse, rec.update, quietLogger())
	defer d.Stop()

	d.Notify(Snapshot{Version: 1, Model: "ok"})
	d.Flush()
	good := d.Current()
	if good == nil {
		t.Fatal("no current result after good parse")
	}

	d.Notify(Snapshot{Version: 2, Model: "bad"})
	d.Flush()
	d.Notify(Snapshot{Version: 3, Model: "bad"})
	d.Flush()

	if d.Current() != good {
		t.Error("failed parse replaced the current result")
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.updates) != 2 {
		t.Fatalf("updates = %d, want good + one error report", len(rec.updates))
	}
	u := rec.updates[1]
	if u.Err == nil || u.Err.Error() != "broken" || u.Result != good || u.Version != 2 {
		t.Errorf("error update = %+v", u)
	}
}

func TestStopCancelsPending(t *testing.T) {
	rec := newRecorder()
	d := New(10*time.Millisecond, rec.parse, rec.update, quietLogger())
	d.Notify(Snapshot{Version: 1, Model: "ok"})
	d.Stop()
	d.Notify(Snapshot{Version: 2, Model: "ok"})
	time.Sleep(50 * time.Millisecond)
	if got := rec.parsedVersions(); len(got) != 0 {
		t.Errorf("parsed after Stop: %v", got)
	}
}
