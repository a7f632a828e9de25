package cli

import (
	"fmt"

	"github.com/alexanderramin/procmap/internal/cli/formatter"
	"github.com/alexanderramin/procmap/internal/domain"
	"github.com/spf13/cobra"
)

func newStakeholderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stakeholder",
		Aliases: []string{"stakeholders", "sh"},
		Short:   "Manage stakeholders",
	}

	cmd.AddCommand(
		newStakeholderAddCmd(app),
		newStakeholderUpdateCmd(app),
		newStakeholderListCmd(app),
	)

	return cmd
}

func newStakeholderAddCmd(app *App) *cobra.Command {
	var f domain.StakeholderFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new stakeholder",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.Name == "" && app.interactive() {
				if err := app.runForm(stakeholderForm(&f)); err != nil {
					return err
				}
			}
			if err := validateRequired(f.Name); err != nil {
				return fmt.Errorf("--name is required")
			}
			if err := validateOptionalColor(f.Color); err != nil {
				return fmt.Errorf("invalid color %q: %w", f.Color, err)
			}
			f.Color = colorOrDefault(f.Color)

			s, err := app.Store.AddStakeholder(cmd.Context(), f)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created stakeholder %s (%s)\n", s.Name, s.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.Name, "name", "", "Stakeholder name")
	cmd.Flags().StringVar(&f.Description, "description", "", "Description")
	cmd.Flags().StringVar(&f.Color, "color", defaultColor, "Display color (#rrggbb)")

	return cmd
}

func newStakeholderUpdateCmd(app *App) *cobra.Command {
	var name, description, color string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a stakeholder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(app.Store.Snapshot(), kindStakeholder, args[0])
			if err != nil {
				return err
			}

			var patch domain.StakeholderPatch
			if cmd.Flags().Changed("name") {
				if err := validateRequired(name); err != nil {
					return fmt.Errorf("--name cannot be empty")
				}
				patch.Name = &name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("color") {
				if err := validateOptionalColor(color); err != nil {
					return fmt.Errorf("invalid color %q: %w", color, err)
				}
				patch.Color = &color
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update (use --name, --description or --color)")
			}

			if _, err := app.Store.UpdateStakeholder(cmd.Context(), id, patch); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated stakeholder %s\n", displayName(app.Store.Snapshot(), id))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Stakeholder name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&color, "color", "", "Display color (#rrggbb)")

	return cmd
}

func newStakeholderListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stakeholders and their entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStakeholderList(app.Store.Snapshot().Stakeholders))
			return nil
		},
	}
}

func colorOrDefault(c string) string {
	if c == "" {
		return defaultColor
	}
	return c
}
