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

// Package watch provides the watch command for setaccio.
package watch

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/setaccio/filter"
	"bennypowers.dev/setaccio/fs"
	"bennypowers.dev/setaccio/internal/output"
	"bennypowers.dev/setaccio/session"
	"bennypowers.dev/setaccio/solution"
	"bennypowers.dev/setaccio/watcher"
)

// Cmd is the watch cobra command that applies a filter and then keeps the
// produced solution synchronized until interrupted.
var Cmd = &cobra.Command{
	Use:   "watch <filter.slnf>",
	Short: "Apply a solution filter and keep the artifact synchronized",
	Long: `Apply a solution filter, then watch the source solution and the produced
artifact for external edits. On each change the filter is recomputed and
every structural difference is merged according to the acceptance policy.`,
	Example: `  # Merge every detected difference
  setaccio watch app.slnf

  # Only ever add projects, never drop them
  setaccio watch app.slnf --accept additions`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().String("accept", "all", "Difference acceptance policy (all, additions, none)")
	Cmd.Flags().StringP("format", "f", "text", "Summary format (text, json)")

	_ = viper.BindPFlag("accept", Cmd.Flags().Lookup("accept"))
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()

	spec, err := filter.Load(osfs, args[0])
	if err != nil {
		return err
	}

	accept, err := policy(viper.GetString("accept"))
	if err != nil {
		return err
	}

	// Watching is this command's whole point, whatever the document says.
	spec.AutoResync = true

	sess := session.New(osfs, accept)
	defer sess.Close()

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
	if err := output.Summary(osfs, reduced, warnings, format); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "watching %s\n", spec.SourcePath)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	sess.Stop(spec)
	return nil
}

// policy maps the --accept flag to an acceptance predicate.
func policy(name string) (watcher.AcceptFunc, error) {
	switch name {
	case "all":
		return func(solution.Difference) bool { return true }, nil
	case "additions":
		return func(d solution.Difference) bool { return d.Kind == solution.ProjectAdded }, nil
	case "none":
		return func(solution.Difference) bool { return false }, nil
	default:
		return nil, fmt.Errorf("invalid accept policy %q: must be 'all', 'additions' or 'none'", name)
	}
}
