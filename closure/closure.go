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
// Package closure computes the dependency closure of a filter's keep-list
// over a solution's project graph. It is pure in-memory traversal: no I/O,
// no mutation of the source solution.
package closure

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"bennypowers.dev/setaccio/filter"
	"bennypowers.dev/setaccio/solution"
)

// Warning records a keep-entry that resolved to nothing against the
// current solution. Warnings are non-fatal: filtering proceeds with the
// remaining entries.
type Warning struct {
	// Entry is the keep-entry as written in the filter.
	Entry string
}

// String returns the warning message.
func (w Warning) String() string {
	return fmt.Sprintf("project %q not found in solution", w.Entry)
}

// Result is the computed closure: the kept projects in discovery order,
// each appearing exactly once, plus any warnings recorded along the way.
type Result struct {
	// Projects is the kept set in discovery order. Earlier keep-entries
	// and their dependencies precede later ones; within one entry's
	// expansion the entry itself precedes its dependencies.
	Projects []*solution.Project

	// Warnings collects keep-entries that resolved to nothing.
	Warnings []Warning

	seen map[string]bool
}

// Apply computes the minimal project set for the spec's keep-list:
// every named (or glob-matched) project, every structural descendant of
// those projects, and the full dependency closure of all of them.
func Apply(sol *solution.Solution, spec *filter.Spec) *Result {
	result := &Result{seen: make(map[string]bool)}

	for _, entry := range spec.Projects() {
		seeds := resolveEntry(sol, entry)
		if len(seeds) == 0 {
			result.Warnings = append(result.Warnings, Warning{Entry: entry})
			continue
		}
		for _, seed := range seeds {
			result.keep(sol, seed)
			for _, descendant := range sol.Descendants(seed) {
				result.keep(sol, descendant)
			}
		}
	}

	return result
}

// keep adds the project and its full dependency closure to the result.
// The traversal is an explicit worklist with a visited set checked before
// any expansion, so shared sub-dependencies enter once and dependency
// cycles terminate.
func (r *Result) keep(sol *solution.Solution, p *solution.Project) {
	work := []*solution.Project{p}
	for len(work) > 0 {
		current := work[0]
		work = work[1:]

		if r.seen[current.Name] {
			continue
		}
		r.seen[current.Name] = true
		r.Projects = append(r.Projects, current)

		work = append(work, sol.Dependencies(current)...)
	}
}

// Contains reports whether the named project is in the kept set.
func (r *Result) Contains(name string) bool {
	return r.seen[name]
}

// Names returns the kept projects' full names in discovery order.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Projects))
	for _, p := range r.Projects {
		names = append(names, p.Name)
	}
	return names
}

// Reassemble builds the reduced solution: the source's header and global
// configuration carried over verbatim, the project list replaced by the
// kept set, and the document's identity set to outputPath.
func (r *Result) Reassemble(src *solution.Solution, outputPath string) *solution.Solution {
	reduced := &solution.Solution{
		Path:          outputPath,
		FormatVersion: src.FormatVersion,
		Header:        slices.Clone(src.Header),
		Global:        slices.Clone(src.Global),
		Projects:      make([]*solution.Project, len(r.Projects)),
	}
	for i, p := range r.Projects {
		reduced.Projects[i] = p.Clone()
	}
	return reduced
}

// resolveEntry resolves one keep-entry to its seed projects. A literal
// entry resolves by full name; an entry containing glob metacharacters
// matches against every project full-name in document order.
func resolveEntry(sol *solution.Solution, entry string) []*solution.Project {
	if !strings.ContainsAny(entry, "*?[{") {
		if p := sol.FindByFullName(entry); p != nil {
			return []*solution.Project{p}
		}
		return nil
	}

	var seeds []*solution.Project
	for _, p := range sol.Projects {
		// An invalid pattern matches nothing and surfaces as the
		// entry's not-found warning.
		if ok, err := doublestar.Match(entry, p.Name); err == nil && ok {
			seeds = append(seeds, p)
		}
	}
	return seeds
}
