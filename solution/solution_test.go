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
package solution_test

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"bennypowers.dev/setaccio/internal/mapfs"
	"bennypowers.dev/setaccio/solution"
)

func names(projects []*solution.Project) []string {
	result := make([]string, 0, len(projects))
	for _, p := range projects {
		result = append(result, p.Name)
	}
	return result
}

func TestFindByFullName(t *testing.T) {
	sol := &solution.Solution{
		Projects: []*solution.Project{
			{Name: "Apps.Client"},
			{Name: "Libs.Core"},
		},
	}

	if p := sol.FindByFullName("Libs.Core"); p == nil || p.Name != "Libs.Core" {
		t.Errorf("Expected to find Libs.Core, got %v", p)
	}
	if p := sol.FindByFullName("Absent"); p != nil {
		t.Errorf("Expected nil for an absent project, got %v", p)
	}
}

func TestDependencies(t *testing.T) {
	sol := &solution.Solution{
		Projects: []*solution.Project{
			{Name: "App", Dependencies: []string{"Lib", "Dangling", "Util"}},
			{Name: "Lib"},
			{Name: "Util"},
		},
	}

	got := names(sol.Dependencies(sol.FindByFullName("App")))
	// Dangling edges are skipped, declaration order kept.
	if !slices.Equal(got, []string{"Lib", "Util"}) {
		t.Errorf("Expected [Lib Util], got %v", got)
	}
}

func TestDescendants(t *testing.T) {
	tests := []struct {
		name string
		sol  *solution.Solution
		root string
		want []string
	}{
		{
			name: "nested containment resolves transitively",
			sol: &solution.Solution{
				Projects: []*solution.Project{
					{Name: "Root", Children: []string{"Mid"}},
					{Name: "Mid", Children: []string{"Leaf"}},
					{Name: "Leaf"},
				},
			},
			root: "Root",
			want: []string{"Mid", "Leaf"},
		},
		{
			name: "containment cycle terminates",
			sol: &solution.Solution{
				Projects: []*solution.Project{
					{Name: "A", Children: []string{"B"}},
					{Name: "B", Children: []string{"A"}},
				},
			},
			root: "A",
			want: []string{"B"},
		},
		{
			name: "dangling child names are skipped",
			sol: &solution.Solution{
				Projects: []*solution.Project{
					{Name: "Root", Children: []string{"Gone", "Here"}},
					{Name: "Here"},
				},
			},
			root: "Root",
			want: []string{"Here"},
		},
		{
			name: "leaf has no descendants",
			sol: &solution.Solution{
				Projects: []*solution.Project{{Name: "Leaf"}},
			},
			root: "Leaf",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(tt.sol.Descendants(tt.sol.FindByFullName(tt.root)))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Expected descendants %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := solution.Parse([]byte("not json at all")); !errors.Is(err, solution.ErrMalformedSolution) {
		t.Errorf("Expected ErrMalformedSolution, got %v", err)
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	mfs := mapfs.New()

	sol := &solution.Solution{
		Path:          "/proj/full.sln",
		FormatVersion: "1.0",
		Header:        json.RawMessage(`{"generator":"test"}`),
		Global:        json.RawMessage(`{"configurations":["Debug"]}`),
		Projects: []*solution.Project{
			{Name: "App", Path: "App/App.proj", Dependencies: []string{"Lib"}},
			{Name: "Lib", Path: "Lib/Lib.proj", AuxiliaryFiles: []string{"Lib/notes.txt"}},
		},
	}

	if err := solution.Write(mfs, sol); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	loaded, err := solution.ParseFile(mfs, "/proj/full.sln")
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	if loaded.Path != "/proj/full.sln" {
		t.Errorf("Expected path /proj/full.sln, got %s", loaded.Path)
	}
	if loaded.FormatVersion != "1.0" {
		t.Errorf("Expected format version 1.0, got %s", loaded.FormatVersion)
	}
	if !slices.Equal(names(loaded.Projects), []string{"App", "Lib"}) {
		t.Errorf("Expected projects [App Lib], got %v", names(loaded.Projects))
	}
	if !slices.Equal(loaded.Projects[0].Dependencies, []string{"Lib"}) {
		t.Errorf("Expected App to depend on Lib, got %v", loaded.Projects[0].Dependencies)
	}

	// Opaque sections survive structurally.
	var header map[string]any
	if err := json.Unmarshal(loaded.Header, &header); err != nil {
		t.Fatalf("header did not survive round trip: %v", err)
	}
	if header["generator"] != "test" {
		t.Errorf("Expected header generator test, got %v", header["generator"])
	}
}

func TestCloneIndependence(t *testing.T) {
	sol := &solution.Solution{
		FormatVersion: "1.0",
		Projects: []*solution.Project{
			{Name: "App", Dependencies: []string{"Lib"}},
		},
	}

	clone := sol.Clone()
	clone.Projects[0].Dependencies[0] = "mutated"
	clone.Projects = append(clone.Projects, &solution.Project{Name: "New"})

	if sol.Projects[0].Dependencies[0] != "Lib" {
		t.Error("Expected clone to be independent of the original")
	}
	if len(sol.Projects) != 1 {
		t.Error("Expected original project list to be unchanged")
	}
}
