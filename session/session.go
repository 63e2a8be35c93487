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
// Package session orchestrates a filtering run: load the source graph,
// compute the closure, write the reduced artifact, and optionally keep a
// watcher alive for the spec.
package session

import (
	"fmt"
	"path/filepath"
	"sync"

	"bennypowers.dev/setaccio/closure"
	"bennypowers.dev/setaccio/filter"
	"bennypowers.dev/setaccio/fs"
	"bennypowers.dev/setaccio/solution"
	"bennypowers.dev/setaccio/watcher"
)

// Session runs filter specs and owns their watchers. A spec has at most
// one active watcher; starting a second while one is active is a no-op.
type Session struct {
	fsys   fs.FileSystem
	accept watcher.AcceptFunc

	mu       sync.Mutex
	watchers map[*filter.Spec]*watcher.Watcher
}

// New creates a session. The accept predicate gates differences during
// re-synchronization; nil accepts everything.
func New(fsys fs.FileSystem, accept watcher.AcceptFunc) *Session {
	return &Session{
		fsys:     fsys,
		accept:   accept,
		watchers: make(map[*filter.Spec]*watcher.Watcher),
	}
}

// Run loads the spec's source solution, applies the filter, and writes the
// reduced artifact at the spec's derived output path. Parse errors from the
// source propagate unchanged; unresolved keep-entries come back as
// warnings alongside a valid, smaller artifact. When the spec asks for
// auto-resync a watcher is started for it, bound to the just-produced
// artifact.
func (s *Session) Run(spec *filter.Spec) (*solution.Solution, []closure.Warning, error) {
	src, err := solution.ParseFile(s.fsys, spec.SourcePath)
	if err != nil {
		return nil, nil, err
	}

	result := closure.Apply(src, spec)
	reduced := result.Reassemble(src, spec.OutputPath())

	if err := solution.Write(s.fsys, reduced); err != nil {
		return nil, result.Warnings, err
	}

	if spec.CopyAuxiliaryFiles {
		if err := s.copyAuxiliary(src, reduced); err != nil {
			return nil, result.Warnings, err
		}
	}

	if spec.AutoResync {
		if err := s.watch(spec); err != nil {
			return reduced, result.Warnings, err
		}
	}

	return reduced, result.Warnings, nil
}

// Stop releases the spec's watcher if one is active. Idempotent.
func (s *Session) Stop(spec *filter.Spec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.watchers[spec]; ok {
		w.Stop()
		delete(s.watchers, spec)
	}
}

// Watching reports whether a watcher is active for the spec.
func (s *Session) Watching(spec *filter.Spec) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.watchers[spec]
	return ok
}

// Close stops every active watcher.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for spec, w := range s.watchers {
		w.Stop()
		delete(s.watchers, spec)
	}
}

func (s *Session) watch(spec *filter.Spec) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, active := s.watchers[spec]; active {
		return nil
	}

	w, err := watcher.New(s.fsys, spec, s.accept)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	s.watchers[spec] = w
	return nil
}

// copyAuxiliary mirrors the kept projects' auxiliary files from the source
// solution's directory into the artifact's directory. Files that do not
// exist at the source are skipped; they are auxiliary.
func (s *Session) copyAuxiliary(src, reduced *solution.Solution) error {
	srcDir := filepath.Dir(src.Path)
	outDir := filepath.Dir(reduced.Path)
	if srcDir == outDir {
		return nil
	}

	for _, p := range reduced.Projects {
		for _, rel := range p.AuxiliaryFiles {
			from := filepath.Join(srcDir, rel)
			if !s.fsys.Exists(from) {
				continue
			}
			data, err := s.fsys.ReadFile(from)
			if err != nil {
				return fmt.Errorf("copying auxiliary file %s: %w", from, err)
			}
			to := filepath.Join(outDir, rel)
			if err := s.fsys.MkdirAll(filepath.Dir(to), 0755); err != nil {
				return err
			}
			if err := s.fsys.WriteFile(to, data, 0644); err != nil {
				return err
			}
		}
	}
	return nil
}
