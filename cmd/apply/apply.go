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

// Package apply provides the apply command for setaccio.
package apply

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bennypowers.dev/setaccio/filter"
	"bennypowers.dev/setaccio/fs"
	"bennypowers.dev/setaccio/internal/output"
	"bennypowers.dev/setaccio/session"
)

// Cmd is the apply cobra command that runs a filter once and writes the
// reduced solution next to the filter document.
var Cmd = &cobra.Command{
	Use:   "apply <filter.slnf>",
	Short: "Apply a solution filter once",
	Long: `Apply a solution filter to its source solution.

Reads the filter document, keeps the listed projects together with every
project they transitively depend on, and writes the reduced solution at the
filter's derived output path.`,
	Example: `  # Produce app.sln next to app.slnf
  setaccio apply app.slnf

  # Summarize the run as JSON
  setaccio apply app.slnf --format json`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Summary format (text, json)")
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()

	spec, err := filter.Load(osfs, args[0])
	if err != nil {
		return err
	}

	// One-shot: keeping the artifact synchronized is the watch command's
	// job, whatever the document says.
	spec.AutoResync = false

	sess := session.New(osfs, nil)
	reduced, warnings, err := sess.Run(spec)
	if err != nil {
		return err
	}

	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("error reading format flag: %w", err)
	}
	return output.Summary(osfs, reduced, warnings, format)
}
