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
package filter_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"bennypowers.dev/setaccio/filter"
	"bennypowers.dev/setaccio/internal/mapfs"
	"bennypowers.dev/setaccio/testutil"
)

func TestLoad(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/client.slnf", `<SolutionFilter>
  <Solution>full.sln</Solution>
  <AutoResync>true</AutoResync>
  <CopyAuxiliaryFiles>false</CopyAuxiliaryFiles>
  <Project>Apps.Client</Project>
  <Project>Libs.Core</Project>
  <Project>Apps.Client</Project>
</SolutionFilter>`, 0644)

	spec, err := filter.Load(mfs, "/proj/client.slnf")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Source resolves against the filter's own directory, not the
	// process working directory.
	if spec.SourcePath != "/proj/full.sln" {
		t.Errorf("Expected source /proj/full.sln, got %s", spec.SourcePath)
	}
	if spec.FilterPath != "/proj/client.slnf" {
		t.Errorf("Expected filter path /proj/client.slnf, got %s", spec.FilterPath)
	}
	if !spec.AutoResync {
		t.Error("Expected AutoResync true")
	}
	if spec.CopyAuxiliaryFiles {
		t.Error("Expected CopyAuxiliaryFiles false")
	}
	// The duplicate entry collapses to one.
	if got := spec.Projects(); !slices.Equal(got, []string{"Apps.Client", "Libs.Core"}) {
		t.Errorf("Expected projects [Apps.Client Libs.Core], got %v", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	mfs := mapfs.New()
	testutil.WriteFilter(t, mfs, "/proj/client.slnf", testutil.FilterDocument("full.sln"))

	spec, err := filter.Load(mfs, "/proj/client.slnf")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if spec.AutoResync || spec.CopyAuxiliaryFiles {
		t.Error("Expected absent flags to default to false")
	}
	if len(spec.Projects()) != 0 {
		t.Errorf("Expected empty keep-list, got %v", spec.Projects())
	}
}

func TestLoadKeepListOrder(t *testing.T) {
	mfs := mapfs.New()
	testutil.WriteFilter(t, mfs, "/proj/client.slnf",
		testutil.FilterDocument("full.sln", "Z.Last", "A.First", "M.Middle"))

	spec, err := filter.Load(mfs, "/proj/client.slnf")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := spec.Projects(); !slices.Equal(got, []string{"Z.Last", "A.First", "M.Middle"}) {
		t.Errorf("Expected document order preserved, got %v", got)
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "not a filter document",
			body: `{"this": "is json"}`,
		},
		{
			name: "missing solution reference",
			body: `<SolutionFilter><Project>A</Project></SolutionFilter>`,
		},
		{
			name: "unparseable boolean flag",
			body: `<SolutionFilter><Solution>full.sln</Solution><AutoResync>yes please</AutoResync></SolutionFilter>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mfs := mapfs.New()
			mfs.AddFile("/proj/client.slnf", tt.body, 0644)

			spec, err := filter.Load(mfs, "/proj/client.slnf")
			if !errors.Is(err, filter.ErrMalformedFilter) {
				t.Errorf("Expected ErrMalformedFilter, got %v", err)
			}
			if spec != nil {
				t.Error("Expected no partial spec on a failed load")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	mfs := mapfs.New()

	if _, err := filter.Load(mfs, "/proj/absent.slnf"); err == nil {
		t.Error("Expected error loading a missing filter")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	mfs := mapfs.New()

	spec := filter.New()
	spec.SetSourcePath("/proj/full.sln")
	spec.AutoResync = true
	spec.CopyAuxiliaryFiles = true
	spec.AddProject("Apps.Client")
	spec.AddProject("Libs.Core")
	spec.AddProject("Tools.Gen")

	if err := filter.Save(mfs, spec, "/proj/client.slnf"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := filter.Load(mfs, "/proj/client.slnf")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.SourcePath != spec.SourcePath {
		t.Errorf("Expected source %s, got %s", spec.SourcePath, loaded.SourcePath)
	}
	if loaded.AutoResync != spec.AutoResync {
		t.Error("AutoResync did not round-trip")
	}
	if loaded.CopyAuxiliaryFiles != spec.CopyAuxiliaryFiles {
		t.Error("CopyAuxiliaryFiles did not round-trip")
	}
	if !slices.Equal(loaded.Projects(), spec.Projects()) {
		t.Errorf("Expected projects %v, got %v", spec.Projects(), loaded.Projects())
	}
}

func TestSaveOmitsFalseFlags(t *testing.T) {
	mfs := mapfs.New()

	spec := filter.New()
	spec.SetSourcePath("/proj/full.sln")
	if err := filter.Save(mfs, spec, "/proj/client.slnf"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := mfs.ReadFile("/proj/client.slnf")
	if err != nil {
		t.Fatalf("reading saved filter: %v", err)
	}
	for _, element := range []string{"<AutoResync>", "<CopyAuxiliaryFiles>"} {
		if strings.Contains(string(data), element) {
			t.Errorf("Expected false flag %s to be omitted, document:\n%s", element, data)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name       string
		filterPath string
		want       string
	}{
		{
			name:       "standard filter extension",
			filterPath: "/proj/app.slnf",
			want:       "/proj/app.sln",
		},
		{
			name:       "derivation ignores the source name",
			filterPath: "/proj/just-the-client.slnf",
			want:       "/proj/just-the-client.sln",
		},
		{
			name:       "dotted directory names survive",
			filterPath: "/proj/v2.0/app.slnf",
			want:       "/proj/v2.0/app.sln",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := filter.New()
			spec.FilterPath = tt.filterPath
			spec.SourcePath = "/proj/some-other-name.sln"
			if got := spec.OutputPath(); got != tt.want {
				t.Errorf("Expected output path %s, got %s", tt.want, got)
			}
		})
	}
}

func TestAddRemoveProject(t *testing.T) {
	spec := filter.New()

	spec.AddProject("A")
	spec.AddProject("B")
	spec.AddProject("A") // duplicate collapses
	if got := spec.Projects(); !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("Expected [A B], got %v", got)
	}

	spec.RemoveProject("A")
	spec.RemoveProject("Absent") // no-op
	if got := spec.Projects(); !slices.Equal(got, []string{"B"}) {
		t.Errorf("Expected [B], got %v", got)
	}
}
