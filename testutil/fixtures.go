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
// Package testutil provides test fixtures for setaccio packages.
package testutil

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"bennypowers.dev/setaccio/fs"
	"bennypowers.dev/setaccio/solution"
)

// Project builds a project fixture with the given dependencies.
func Project(name string, deps ...string) *solution.Project {
	return &solution.Project{
		Name:         name,
		Path:         name + "/" + name + ".proj",
		Dependencies: deps,
	}
}

// Folder builds a container project fixture with the given children.
func Folder(name string, children ...string) *solution.Project {
	return &solution.Project{
		Name:     name,
		Children: children,
	}
}

// Solution builds a solution fixture around the given projects, with
// representative opaque header and global sections.
func Solution(projects ...*solution.Project) *solution.Solution {
	return &solution.Solution{
		FormatVersion: "1.0",
		Header:        json.RawMessage(`{"generator":"fixture"}`),
		Global:        json.RawMessage(`{"configurations":["Debug","Release"]}`),
		Projects:      projects,
	}
}

// WriteSolution serializes a solution fixture to the given path.
func WriteSolution(t *testing.T, fsys fs.FileSystem, path string, sol *solution.Solution) {
	t.Helper()
	sol.Path = path
	if err := solution.Write(fsys, sol); err != nil {
		t.Fatalf("writing solution fixture %s: %v", path, err)
	}
}

// FilterDocument renders a filter document body referencing the given
// source solution and keep-entries.
func FilterDocument(source string, entries ...string) string {
	var b strings.Builder
	b.WriteString("<SolutionFilter>\n")
	fmt.Fprintf(&b, "  <Solution>%s</Solution>\n", source)
	for _, entry := range entries {
		fmt.Fprintf(&b, "  <Project>%s</Project>\n", entry)
	}
	b.WriteString("</SolutionFilter>\n")
	return b.String()
}

// WriteFilter writes a filter document body to the given path.
func WriteFilter(t *testing.T, fsys fs.FileSystem, path, body string) {
	t.Helper()
	if err := fsys.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing filter fixture %s: %v", path, err)
	}
}
