package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/procmap/internal/cli/formatter"
	"github.com/alexanderramin/procmap/internal/store"
	"github.com/alexanderramin/procmap/internal/timeline"
	"github.com/spf13/cobra"
)

func newMapCmd(app *App) *cobra.Command {
	var start, svgPath string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Show activities on a 12-month timeline with dependency links",
		RunE: func(cmd *cobra.Command, args []string) error {
			window := app.Config.Window(app.now())
			if start != "" {
				m, ok := timeline.ParseMonth(start)
				if !ok {
					return fmt.Errorf("invalid --start %q: use YYYY-MM", start)
				}
				window = timeline.NewWindow(m)
			}

			if interactive {
				if !app.interactive() {
					return errors.New("--interactive needs a terminal")
				}
				return runMapViewer(cmd, app, window)
			}

			snap := app.Store.Snapshot()
			p := project(app, snap, window)
			out := cmd.OutOrStdout()

			if svgPath != "" {
				if err := os.WriteFile(svgPath, []byte(formatter.RenderSVG(p)), 0o644); err != nil {
					return fmt.Errorf("writing SVG: %w", err)
				}
				fmt.Fprintf(out, "Wrote map with %d activities and %d links to %s\n",
					len(p.Nodes), len(p.Connectors), svgPath)
			} else {
				fmt.Fprint(out, formatter.FormatTimeline(p))
			}

			if app.Config.Verbose {
				fmt.Fprint(out, formatter.FormatOmissions(p.Omitted, snap.DisplayName))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First month of the window (YYYY-MM, default current month)")
	cmd.Flags().StringVar(&svgPath, "svg", "", "Write the map as an SVG file instead of printing it")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open a scrollable viewer")

	return cmd
}

// project lays out the snapshot with the configured grid dimensions.
func project(app *App, snap *store.Snapshot, window timeline.Window) timeline.Projection {
	return timeline.Project(snap.Stakeholders, window, app.Config.Timeline())
}
