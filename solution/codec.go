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
	"encoding/json"
	"errors"
	"fmt"

	"bennypowers.dev/setaccio/fs"
)

// ErrMalformedSolution indicates a solution document that could not be
// decoded into a project graph.
var ErrMalformedSolution = errors.New("malformed solution")

// Parse decodes a solution document.
func Parse(data []byte) (*Solution, error) {
	var s Solution
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSolution, err)
	}
	return &s, nil
}

// ParseFile reads and decodes the solution document at path. The returned
// solution remembers the path it was read from.
func ParseFile(fsys fs.FileSystem, path string) (*Solution, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading solution %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing solution %s: %w", path, err)
	}

	s.Path = path
	return s, nil
}

// Write serializes the solution to its own Path. Writing a valid in-memory
// solution is total; only the underlying filesystem can fail.
func Write(fsys fs.FileSystem, s *Solution) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing solution %s: %w", s.Path, err)
	}
	return fsys.WriteFile(s.Path, append(data, '\n'), 0644)
}
