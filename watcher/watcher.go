/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
// Package watcher keeps a produced solution artifact synchronized with its
// source. It observes external edits to the source solution and the
// artifact, recomputes the filter, and merges each structural difference
// only if a caller-supplied predicate accepts it.
package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"bennypowers.dev/setaccio/closure"
	"bennypowers.dev/setaccio/filter"
	"bennypowers.dev/setaccio/fs"
	"bennypowers.dev/setaccio/solution"
)

// ErrWatch indicates the underlying file-system monitoring mechanism could
// not be created or attached. The watcher is Stopped when it is returned.
var ErrWatch = errors.New("watch")

// ErrStopped is returned by Start on a watcher that has already stopped.
// A stopped watcher is not reusable; construct a new one to resume.
var ErrStopped = errors.New("watcher stopped")

// State is the watcher's lifecycle state.
type State int32

const (
	// Idle means the watcher is constructed but not yet observing.
	Idle State = iota

	// Watching means the watcher is observing modification events.
	Watching

	// Evaluating means a re-application cycle is in progress.
	Evaluating

	// Stopped is terminal; monitoring has been released.
	Stopped
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Watching:
		return "watching"
	case Evaluating:
		return "evaluating"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// AcceptFunc decides whether one detected difference is merged into the
// persisted artifact. It is invoked synchronously from the watcher's
// goroutine, once per difference; a rejected difference leaves that portion
// of the artifact untouched.
type AcceptFunc func(solution.Difference) bool

// Watcher observes a spec's source solution and produced artifact and
// re-applies the filter when either changes externally.
//
// Lifecycle: Idle → Watching → (Evaluating → Watching | Stopped), with
// Stopped terminal. At most one evaluation runs at a time; events arriving
// mid-evaluation coalesce into at most one follow-up evaluation.
type Watcher struct {
	fsys   fs.FileSystem
	spec   *filter.Spec
	accept AcceptFunc
	fsw    *fsnotify.Watcher

	state    atomic.Int32
	done     chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	lastErr error
}

// New constructs an idle watcher for the spec. A nil accept predicate
// accepts every difference.
func New(fsys fs.FileSystem, spec *filter.Spec, accept AcceptFunc) (*Watcher, error) {
	if accept == nil {
		accept = func(solution.Difference) bool { return true }
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatch, err)
	}

	return &Watcher{
		fsys:   fsys,
		spec:   spec,
		accept: accept,
		fsw:    fsw,
		done:   make(chan struct{}),
	}, nil
}

// Start begins monitoring the directories holding the source solution and
// the artifact. If attaching fails the watcher stops and the error is
// surfaced here, once.
func (w *Watcher) Start() error {
	if !w.state.CompareAndSwap(int32(Idle), int32(Watching)) {
		if w.State() == Stopped {
			return ErrStopped
		}
		// Already watching; starting twice is a no-op.
		return nil
	}

	// Watch parent directories rather than the files themselves so that
	// editors which replace files via rename are still observed.
	dirs := []string{filepath.Dir(w.spec.SourcePath)}
	if outDir := filepath.Dir(w.spec.OutputPath()); !slices.Contains(dirs, outDir) {
		dirs = append(dirs, outDir)
	}
	for _, dir := range dirs {
		if err := w.fsw.Add(dir); err != nil {
			w.Stop()
			return fmt.Errorf("%w: attaching %s: %v", ErrWatch, dir, err)
		}
	}

	go w.loop()
	return nil
}

// Stop releases monitoring from any state. Safe to call concurrently with
// an in-flight evaluation: the cycle completes, but the watcher never
// returns to Watching afterwards.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.state.Store(int32(Stopped))
		close(w.done)
		w.fsw.Close()
	})
}

// State returns the current lifecycle state.
func (w *Watcher) State() State {
	return State(w.state.Load())
}

// Err returns the most recent evaluation or monitoring error, if any.
func (w *Watcher) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if !w.evaluateCoalesced() {
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.record(fmt.Errorf("%w: %v", ErrWatch, err))
		}
	}
}

// evaluateCoalesced runs one evaluation, then drains events that arrived
// while it ran into at most one follow-up evaluation per batch. Returns
// false once the watcher has stopped.
func (w *Watcher) evaluateCoalesced() bool {
	for {
		if !w.state.CompareAndSwap(int32(Watching), int32(Evaluating)) {
			return false
		}
		w.evaluate()
		if !w.state.CompareAndSwap(int32(Evaluating), int32(Watching)) {
			// Stop was called mid-cycle; the cycle completed but we
			// never return to Watching.
			return false
		}
		if !w.drainPending() {
			return true
		}
	}
}

// drainPending empties the event queue without blocking and reports
// whether any relevant event was pending.
func (w *Watcher) drainPending() bool {
	pending := false
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return pending
			}
			if w.relevant(event) {
				pending = true
			}
		default:
			return pending
		}
	}
}

// relevant reports whether the event is a modification of the source
// solution or the artifact.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == filepath.Clean(w.spec.SourcePath) ||
		name == filepath.Clean(w.spec.OutputPath())
}

// evaluate re-runs the filter pipeline against the current source, diffs
// the persisted artifact against the fresh result, and merges accepted
// differences. Nothing is written when no difference is accepted, so the
// watcher's own write converges instead of re-triggering itself.
func (w *Watcher) evaluate() {
	src, err := solution.ParseFile(w.fsys, w.spec.SourcePath)
	if err != nil {
		w.record(err)
		return
	}

	result := closure.Apply(src, w.spec)
	fresh := result.Reassemble(src, w.spec.OutputPath())

	current, err := solution.ParseFile(w.fsys, w.spec.OutputPath())
	if err != nil {
		// Artifact gone or unreadable: every kept project becomes an
		// addition onto an empty shell.
		current = &solution.Solution{
			Path:          w.spec.OutputPath(),
			FormatVersion: fresh.FormatVersion,
			Header:        slices.Clone(fresh.Header),
			Global:        slices.Clone(fresh.Global),
		}
	}

	accepted := 0
	merged := current.Clone()
	merged.Path = w.spec.OutputPath()
	for _, d := range solution.Diff(current, fresh) {
		if w.accept(d) {
			merged.Apply(d)
			accepted++
		}
	}
	if accepted == 0 {
		return
	}

	if err := solution.Write(w.fsys, merged); err != nil {
		w.record(err)
	}
}

func (w *Watcher) record(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastErr = err
}
