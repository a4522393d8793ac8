// Package reload re-parses documents after edits settle.
package reload

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/fwbo-viewer/fwbo/internal/result"
)

// DefaultWindow is the quiet period before a re-parse.
const DefaultWindow = 50 * time.Millisecond

// Snapshot is one version of the document pair.
type Snapshot struct {
	Version int64
	Model   string
	Diagram string
}

// ParseFunc turns a snapshot into a parse result.
type ParseFunc func(Snapshot) (*result.ParseResult, error)

// Update is delivered after each parse that was not skipped.
// On failure Result is the last good result (possibly nil) and Err is set.
type Update struct {
	Version int64
	Result  *result.ParseResult
	Err     error
}

// Debouncer collapses bursts of notifications into one parse of the latest snapshot.
type Debouncer struct {
	window   time.Duration
	parse    ParseFunc
	onUpdate func(Update)
	log      *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *Snapshot
	force   bool
	stopped bool

	parseMu    sync.Mutex
	parsed     bool
	lastVer    int64
	current    *result.ParseResult
	lastErrMsg string
}

// New returns a debouncer. onUpdate runs on the timer goroutine.
func New(window time.Duration, parse ParseFunc, onUpdate func(Update), log *slog.Logger) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	if log == nil {
		log = slog.Default()
	}
	if onUpdate == nil {
		onUpdate = func(Update) {}
	}
	return &Debouncer{window: window, parse: parse, onUpdate: onUpdate, log: log}
}

// Notify records s as the latest snapshot and restarts the quiet period.
func (d *Debouncer) Notify(s Snapshot) {
	d.schedule(s, false)
}

// Force is Notify that parses even when the version was already parsed.
func (d *Debouncer) Force(s Snapshot) {
	d.schedule(s, true)
}

func (d *Debouncer) schedule(s Snapshot, force bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending = &s
	d.force = d.force || force
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// Flush parses the pending snapshot now instead of waiting for the timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.fire()
}

// Stop cancels any pending parse. Later notifications are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Current returns the last successful parse result.
func (d *Debouncer) Current() *result.ParseResult {
	d.parseMu.Lock()
	defer d.parseMu.Unlock()
	return d.current
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	s, force := d.pending, d.force
	d.pending, d.force = nil, false
	d.mu.Unlock()
	if s == nil {
		return
	}

	d.parseMu.Lock()
	defer d.parseMu.Unlock()

	if !force && d.parsed && s.Version == d.lastVer {
		d.log.Debug("reload skipped", "version", s.Version)
		return
	}

	res, err := d.parse(*s)
	if err == nil && (res == nil || !res.Success) {
		err = failure(res)
	}
	if err != nil {
		if err.Error() == d.lastErrMsg {
			d.log.Debug("reload failed again", "version", s.Version)
			return
		}
		d.lastErrMsg = err.Error()
		d.log.Warn("reload failed; keeping previous model", "version", s.Version, "error", err)
		d.onUpdate(Update{Version: s.Version, Result: d.current, Err: err})
		return
	}

	d.parsed = true
	d.lastVer = s.Version
	d.current = res
	d.lastErrMsg = ""
	d.log.Info("reloaded", "version", s.Version)
	d.onUpdate(Update{Version: s.Version, Result: res})
}

func failure(res *result.ParseResult) error {
	if res == nil || len(res.Errors) == 0 {
		return errors.New("parse produced no model")
	}
	return errors.New(res.Errors[0].Message)
}
