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
package solution

import (
	"fmt"
	"slices"
)

// DiffKind classifies a structural difference between two solutions.
type DiffKind int

const (
	// ProjectAdded means the project exists in the fresh solution only.
	ProjectAdded DiffKind = iota

	// ProjectRemoved means the project exists in the current solution only.
	ProjectRemoved

	// ProjectChanged means the project exists in both but its path,
	// dependencies, children or auxiliary files differ.
	ProjectChanged
)

// String returns the string representation of the kind.
func (k DiffKind) String() string {
	switch k {
	case ProjectAdded:
		return "added"
	case ProjectRemoved:
		return "removed"
	case ProjectChanged:
		return "changed"
	default:
		return "unknown"
	}
}

// Difference is one detected structural change between a previously
// produced solution and a freshly recomputed one.
type Difference struct {
	Kind DiffKind

	// Project is the fresh project for added/changed differences and the
	// current project for removed ones.
	Project *Project
}

// String describes the difference for logs and prompts.
func (d Difference) String() string {
	return fmt.Sprintf("%s %s", d.Kind, d.Project.Name)
}

// Diff computes the structural differences between current and fresh.
// Additions appear in fresh order, removals in current order, changes in
// fresh order.
func Diff(current, fresh *Solution) []Difference {
	var diffs []Difference

	for _, p := range fresh.Projects {
		existing := current.FindByFullName(p.Name)
		switch {
		case existing == nil:
			diffs = append(diffs, Difference{Kind: ProjectAdded, Project: p})
		case !existing.equal(p):
			diffs = append(diffs, Difference{Kind: ProjectChanged, Project: p})
		}
	}

	for _, p := range current.Projects {
		if fresh.FindByFullName(p.Name) == nil {
			diffs = append(diffs, Difference{Kind: ProjectRemoved, Project: p})
		}
	}

	return diffs
}

// Apply merges one difference into the solution in place. Added projects
// append, removed projects delete by name, changed projects replace in
// place. The difference's project is cloned so the solutions stay
// independent.
func (s *Solution) Apply(d Difference) {
	switch d.Kind {
	case ProjectAdded:
		if s.FindByFullName(d.Project.Name) == nil {
			s.Projects = append(s.Projects, d.Project.Clone())
		}
	case ProjectRemoved:
		s.Projects = slices.DeleteFunc(s.Projects, func(p *Project) bool {
			return p.Name == d.Project.Name
		})
	case ProjectChanged:
		for i, p := range s.Projects {
			if p.Name == d.Project.Name {
				s.Projects[i] = d.Project.Clone()
				return
			}
		}
	}
}

func (p *Project) equal(other *Project) bool {
	return p.Name == other.Name &&
		p.Path == other.Path &&
		slices.Equal(p.Dependencies, other.Dependencies) &&
		slices.Equal(p.Children, other.Children) &&
		slices.Equal(p.AuxiliaryFiles, other.AuxiliaryFiles)
}
