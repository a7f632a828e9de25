package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every stakeholder, entity and activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && app.interactive() {
				if err := app.runForm(confirmForm("Clear all process map data?", &yes)); err != nil {
					return err
				}
				if !yes {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if !yes {
				return errors.New("refusing to clear data without --yes")
			}

			if err := app.Store.Reset(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "All data cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm without prompting")

	return cmd
}
