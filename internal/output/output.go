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

// Package output provides shared output utilities for setaccio CLI commands.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"bennypowers.dev/setaccio/closure"
	"bennypowers.dev/setaccio/fs"
	"bennypowers.dev/setaccio/solution"
)

// runSummary is the JSON form of a filtering run's outcome.
type runSummary struct {
	Artifact string   `json:"artifact"`
	Projects []string `json:"projects"`
	Warnings []string `json:"warnings,omitempty"`
}

// Summary formats and outputs a filtering run's outcome to stdout or a
// file. If viper's "output" flag is set, writes to that file; otherwise
// prints to stdout.
func Summary(osfs fs.FileSystem, reduced *solution.Solution, warnings []closure.Warning, format string) error {
	text, err := render(reduced, warnings, format)
	if err != nil {
		return err
	}

	if outputPath := viper.GetString("output"); outputPath != "" {
		return osfs.WriteFile(outputPath, []byte(text+"\n"), 0644)
	}
	fmt.Println(text)
	return nil
}

func render(reduced *solution.Solution, warnings []closure.Warning, format string) (string, error) {
	switch format {
	case "json":
		summary := runSummary{
			Artifact: reduced.Path,
			Projects: reduced.ProjectNames(),
		}
		for _, w := range warnings {
			summary.Warnings = append(summary.Warnings, w.String())
		}
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling summary: %w", err)
		}
		return string(data), nil
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "wrote %s (%d projects)", reduced.Path, len(reduced.Projects))
		for _, name := range reduced.ProjectNames() {
			fmt.Fprintf(&b, "\n  %s", name)
		}
		return b.String(), nil
	}
}
