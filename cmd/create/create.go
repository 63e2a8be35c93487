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

// Package create provides the create command for setaccio.
package create

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/setaccio/filter"
	"bennypowers.dev/setaccio/fs"
	"bennypowers.dev/setaccio/solution"
)

// Cmd is the create cobra command that builds a filter document from a
// solution and a set of project names or glob patterns.
var Cmd = &cobra.Command{
	Use:   "create <solution.sln> [filter.slnf]",
	Short: "Create a filter document from a solution",
	Long: `Create a filter document listing a subset of a solution's projects.

Project patterns are expanded against the solution's project full-names at
creation time, so the persisted filter holds literal entries. The filter is
written next to the solution unless an explicit filter path is given.`,
	Example: `  # Keep two projects
  setaccio create app.sln -p Apps.Client -p Libs.Core

  # Keep everything under Apps, resync automatically
  setaccio create app.sln -p 'Apps.*' --auto-resync`,
	Args: cobra.RangeArgs(1, 2),
	RunE: run,
}

func init() {
	Cmd.Flags().StringArrayP("project", "p", nil, "Project full-name or glob pattern to keep (can be repeated)")
	Cmd.Flags().Bool("auto-resync", false, "Keep the produced solution synchronized with its source")
	Cmd.Flags().Bool("copy-auxiliary-files", false, "Mirror kept projects' auxiliary files next to the artifact")

	_ = viper.BindPFlag("project", Cmd.Flags().Lookup("project"))
	_ = viper.BindPFlag("auto-resync", Cmd.Flags().Lookup("auto-resync"))
	_ = viper.BindPFlag("copy-auxiliary-files", Cmd.Flags().Lookup("copy-auxiliary-files"))
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()

	solutionPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid solution path: %w", err)
	}

	sol, err := solution.ParseFile(osfs, solutionPath)
	if err != nil {
		return err
	}

	spec := filter.New()
	spec.SetSourcePath(solutionPath)
	spec.AutoResync = viper.GetBool("auto-resync")
	spec.CopyAuxiliaryFiles = viper.GetBool("copy-auxiliary-files")

	for _, entry := range viper.GetStringSlice("project") {
		names := expand(sol, entry)
		if len(names) == 0 {
			fmt.Fprintf(os.Stderr, "Warning: %q matches no project in %s\n", entry, solutionPath)
			continue
		}
		for _, name := range names {
			spec.AddProject(name)
		}
	}

	// Default to <solution>.filtered.slnf: the artifact path derives from
	// the filter path, and reusing the solution's own name would make the
	// artifact overwrite the source.
	filterPath := strings.TrimSuffix(solutionPath, filepath.Ext(solutionPath)) + ".filtered" + filter.FilterExt
	if len(args) == 2 {
		filterPath = args[1]
	}

	if err := filter.Save(osfs, spec, filterPath); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d projects)\n", spec.FilterPath, len(spec.Projects()))
	return nil
}

// expand resolves a project entry against the solution: globs match every
// project full-name, literals pass through when the project exists.
func expand(sol *solution.Solution, entry string) []string {
	if !strings.ContainsAny(entry, "*?[{") {
		if sol.FindByFullName(entry) == nil {
			return nil
		}
		return []string{entry}
	}

	var names []string
	for _, name := range sol.ProjectNames() {
		if ok, err := doublestar.Match(entry, name); err == nil && ok {
			names = append(names, name)
		}
	}
	return names
}
