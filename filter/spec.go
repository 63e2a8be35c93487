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
// Package filter provides the persisted description of a filtering
// operation: which solution to reduce, which projects to keep, and how the
// produced artifact should behave afterwards.
package filter

import (
	"path/filepath"
	"slices"
	"strings"
)

// SolutionExt is the extension of a produced solution artifact.
const SolutionExt = ".sln"

// FilterExt is the extension of a persisted filter document.
const FilterExt = ".slnf"

// Spec describes one filtering operation.
type Spec struct {
	// SourcePath is the absolute path of the full solution.
	SourcePath string

	// FilterPath is the absolute path of the filter's own persisted
	// location. The artifact path is derived from it, never stored.
	FilterPath string

	// AutoResync starts a watcher after filtering.
	AutoResync bool

	// CopyAuxiliaryFiles mirrors kept projects' auxiliary files next to
	// the artifact.
	CopyAuxiliaryFiles bool

	// projects is the ordered keep-list. Duplicates collapse; order is
	// kept only for round-trip stability of the persisted form.
	projects []string
}

// New creates an empty spec with all flags false.
func New() *Spec {
	return &Spec{}
}

// Projects returns the keep-list in insertion order.
func (s *Spec) Projects() []string {
	return slices.Clone(s.projects)
}

// AddProject appends a keep-entry. Adding a name that is already present
// is a no-op.
func (s *Spec) AddProject(name string) {
	if slices.Contains(s.projects, name) {
		return
	}
	s.projects = append(s.projects, name)
}

// RemoveProject deletes a keep-entry. Removing an absent name is a no-op.
func (s *Spec) RemoveProject(name string) {
	s.projects = slices.DeleteFunc(s.projects, func(p string) bool {
		return p == name
	})
}

// SetSourcePath points the spec at a different source solution.
func (s *Spec) SetSourcePath(path string) {
	s.SourcePath = path
}

// OutputPath derives the artifact path from FilterPath by replacing its
// extension with the solution extension. It is a pure function of
// FilterPath.
func (s *Spec) OutputPath() string {
	return strings.TrimSuffix(s.FilterPath, filepath.Ext(s.FilterPath)) + SolutionExt
}
