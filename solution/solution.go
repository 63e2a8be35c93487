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
// Package solution provides the in-memory project graph for a solution:
// projects, their dependency and containment relations, and the structural
// JSON form they are persisted in. Native solution-file grammars are out of
// scope; header and configuration sections are carried through opaquely.
package solution

import (
	"encoding/json"
	"slices"
)

// Solution is the in-memory representation of a solution document.
type Solution struct {
	// Path is where the document lives on disk. Not serialized; set by
	// ParseFile and by reassembly.
	Path string `json:"-"`

	// FormatVersion identifies the document format.
	FormatVersion string `json:"formatVersion"`

	// Header carries solution-level metadata verbatim. Opaque to filtering.
	Header json.RawMessage `json:"header,omitempty"`

	// Global carries solution-wide configuration sections verbatim.
	// Opaque to filtering.
	Global json.RawMessage `json:"global,omitempty"`

	// Projects lists the solution's projects in document order.
	Projects []*Project `json:"projects"`
}

// Project is a single project entry in a solution.
type Project struct {
	// Name is the project's full name, unique within the solution.
	Name string `json:"name"`

	// Path points to the project's own file, relative to the solution.
	Path string `json:"path,omitempty"`

	// Dependencies names the projects this project depends on.
	Dependencies []string `json:"dependencies,omitempty"`

	// Children names the projects this project structurally contains,
	// e.g. entries nested under a solution folder.
	Children []string `json:"children,omitempty"`

	// AuxiliaryFiles lists per-project files that travel with the project,
	// relative to the solution directory.
	AuxiliaryFiles []string `json:"auxiliaryFiles,omitempty"`
}

// FindByFullName returns the project with the given full name, or nil.
func (s *Solution) FindByFullName(name string) *Project {
	for _, p := range s.Projects {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Dependencies resolves a project's direct dependencies against the
// solution, in declaration order. Names that resolve to nothing are
// skipped; a dangling dependency edge cannot contribute to a closure.
func (s *Solution) Dependencies(p *Project) []*Project {
	var deps []*Project
	for _, name := range p.Dependencies {
		if dep := s.FindByFullName(name); dep != nil {
			deps = append(deps, dep)
		}
	}
	return deps
}

// Descendants resolves every project structurally contained in p, directly
// or transitively, in declaration order. The traversal tolerates containment
// cycles in malformed documents.
func (s *Solution) Descendants(p *Project) []*Project {
	seen := map[string]bool{p.Name: true}
	var result []*Project

	work := slices.Clone(p.Children)
	for len(work) > 0 {
		name := work[0]
		work = work[1:]
		if seen[name] {
			continue
		}
		seen[name] = true

		child := s.FindByFullName(name)
		if child == nil {
			continue
		}
		result = append(result, child)
		work = append(work, child.Children...)
	}

	return result
}

// Clone creates a deep copy of the solution.
func (s *Solution) Clone() *Solution {
	if s == nil {
		return nil
	}

	result := &Solution{
		Path:          s.Path,
		FormatVersion: s.FormatVersion,
		Header:        slices.Clone(s.Header),
		Global:        slices.Clone(s.Global),
	}

	if s.Projects != nil {
		result.Projects = make([]*Project, len(s.Projects))
		for i, p := range s.Projects {
			result.Projects[i] = p.Clone()
		}
	}

	return result
}

// Clone creates a deep copy of the project.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	return &Project{
		Name:           p.Name,
		Path:           p.Path,
		Dependencies:   slices.Clone(p.Dependencies),
		Children:       slices.Clone(p.Children),
		AuxiliaryFiles: slices.Clone(p.AuxiliaryFiles),
	}
}

// ProjectNames returns the full names of the solution's projects in
// document order.
func (s *Solution) ProjectNames() []string {
	names := make([]string, 0, len(s.Projects))
	for _, p := range s.Projects {
		names = append(names, p.Name)
	}
	return names
}
