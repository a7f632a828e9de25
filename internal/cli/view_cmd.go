package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/procmap/internal/cli/formatter"
	"github.com/alexanderramin/procmap/internal/domain"
	"github.com/spf13/cobra"
)

func newViewCmd(app *App) *cobra.Command {
	var show bool

	validViews := []string{string(domain.ViewStakeholders), string(domain.ViewActivities), string(domain.ViewProcessMap)}

	cmd := &cobra.Command{
		Use:       "view [" + strings.Join(validViews, "|") + "]",
		Short:     "Print or switch the current view",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: validViews,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), app.Store.CurrentView())
				return nil
			}

			view, err := domain.ParseView(args[0])
			if err != nil {
				return err
			}
			if err := app.Store.SetView(cmd.Context(), view); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Current view: %s\n", view)

			if show {
				return renderView(cmd, app, view)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Render the view after switching")

	return cmd
}

// renderView prints the screen for a view selector.
func renderView(cmd *cobra.Command, app *App, view domain.View) error {
	snap := app.Store.Snapshot()
	out := cmd.OutOrStdout()

	switch view {
	case domain.ViewActivities:
		fmt.Fprint(out, formatter.FormatActivityList(snap.Stakeholders))
	case domain.ViewProcessMap:
		p := project(app, snap, app.Config.Window(app.now()))
		fmt.Fprint(out, formatter.FormatTimeline(p))
		if app.Config.Verbose {
			fmt.Fprint(out, formatter.FormatOmissions(p.Omitted, snap.DisplayName))
		}
	default:
		fmt.Fprint(out, formatter.FormatStakeholderList(snap.Stakeholders))
	}
	return nil
}
