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
package filter

import (
	"encoding/xml"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"bennypowers.dev/setaccio/fs"
)

// ErrMalformedFilter indicates a filter document missing its mandatory
// source reference or containing an unparseable flag. Load never returns a
// partial spec alongside it.
var ErrMalformedFilter = errors.New("malformed filter")

// document is the on-disk form of a Spec: a single root element with one
// mandatory source reference, optional boolean-text flags, and one element
// per kept project.
type document struct {
	XMLName            xml.Name `xml:"SolutionFilter"`
	Solution           string   `xml:"Solution"`
	AutoResync         string   `xml:"AutoResync,omitempty"`
	CopyAuxiliaryFiles string   `xml:"CopyAuxiliaryFiles,omitempty"`
	Projects           []string `xml:"Project"`
}

// Load reads the filter document at path and returns a fully populated
// Spec. The source reference is resolved relative to the filter file's own
// directory, not the process working directory, so filters stay valid when
// the whole tree moves.
func Load(fsys fs.FileSystem, path string) (*Spec, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading filter %s: %w", path, err)
	}

	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedFilter, path, err)
	}
	if doc.Solution == "" {
		return nil, fmt.Errorf("%w: %s: missing solution reference", ErrMalformedFilter, path)
	}

	autoResync, err := parseFlag(doc.AutoResync)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: AutoResync: %v", ErrMalformedFilter, path, err)
	}
	copyAux, err := parseFlag(doc.CopyAuxiliaryFiles)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: CopyAuxiliaryFiles: %v", ErrMalformedFilter, path, err)
	}

	filterPath, err := absPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolving filter path %s: %w", path, err)
	}

	sourcePath := doc.Solution
	if !filepath.IsAbs(sourcePath) {
		sourcePath = filepath.Join(filepath.Dir(filterPath), sourcePath)
	}

	spec := &Spec{
		SourcePath:         sourcePath,
		FilterPath:         filterPath,
		AutoResync:         autoResync,
		CopyAuxiliaryFiles: copyAux,
	}
	for _, name := range doc.Projects {
		spec.AddProject(name)
	}
	return spec, nil
}

// Save writes the spec as a filter document at path and records path as the
// spec's new FilterPath. The source reference is written as a bare file
// name: the filter and its source solution are expected to co-reside, and
// stripping the directory keeps the document relocatable.
func Save(fsys fs.FileSystem, spec *Spec, path string) error {
	filterPath, err := absPath(path)
	if err != nil {
		return fmt.Errorf("resolving filter path %s: %w", path, err)
	}

	doc := document{
		Solution: filepath.Base(spec.SourcePath),
		Projects: spec.Projects(),
	}
	if spec.AutoResync {
		doc.AutoResync = strconv.FormatBool(spec.AutoResync)
	}
	if spec.CopyAuxiliaryFiles {
		doc.CopyAuxiliaryFiles = strconv.FormatBool(spec.CopyAuxiliaryFiles)
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing filter %s: %w", path, err)
	}

	if err := fsys.WriteFile(filterPath, append([]byte(xml.Header), append(data, '\n')...), 0644); err != nil {
		return err
	}

	spec.FilterPath = filterPath
	return nil
}

// parseFlag parses an optional boolean-text flag. Absent means false.
func parseFlag(text string) (bool, error) {
	if text == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(text)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", text)
	}
	return value, nil
}

func absPath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Abs(path)
}
