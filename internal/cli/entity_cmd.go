package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/procmap/internal/domain"
	"github.com/spf13/cobra"
)

func newEntityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entity",
		Aliases: []string{"entities"},
		Short:   "Manage entities within stakeholders",
	}

	cmd.AddCommand(
		newEntityAddCmd(app),
		newEntityUpdateCmd(app),
	)

	return cmd
}

func newEntityAddCmd(app *App) *cobra.Command {
	var stakeholderArg string
	var f domain.EntityFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entity to a stakeholder",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Store.Snapshot()

			var stakeholderID string
			if stakeholderArg != "" {
				id, err := resolveID(snap, kindStakeholder, stakeholderArg)
				if err != nil {
					return err
				}
				stakeholderID = id
			}

			if (f.Name == "" || stakeholderID == "") && app.interactive() {
				if len(snap.Stakeholders) == 0 {
					return errors.New("no stakeholders yet; add one with: procmap stakeholder add")
				}
				if err := app.runForm(entityForm(snap, &stakeholderID, &f)); err != nil {
					return err
				}
			}
			if stakeholderID == "" {
				return errors.New("--stakeholder is required")
			}
			if err := validateRequired(f.Name); err != nil {
				return errors.New("--name is required")
			}
			if err := validateOptionalColor(f.Color); err != nil {
				return fmt.Errorf("invalid color %q: %w", f.Color, err)
			}
			f.Color = colorOrDefault(f.Color)

			e, found, err := app.Store.AddEntity(cmd.Context(), stakeholderID, f)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("stakeholder not found: %q", stakeholderID)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created entity %s (%s) under %s\n",
				e.Name, e.ID, displayName(app.Store.Snapshot(), stakeholderID))
			return nil
		},
	}

	cmd.Flags().StringVar(&stakeholderArg, "stakeholder", "", "Owning stakeholder ID or prefix")
	cmd.Flags().StringVar(&f.Name, "name", "", "Entity name")
	cmd.Flags().StringVar(&f.Description, "description", "", "Description")
	cmd.Flags().StringVar(&f.Color, "color", defaultColor, "Display color (#rrggbb)")

	return cmd
}

func newEntityUpdateCmd(app *App) *cobra.Command {
	var name, description, color string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(app.Store.Snapshot(), kindEntity, args[0])
			if err != nil {
				return err
			}

			var patch domain.EntityPatch
			if cmd.Flags().Changed("name") {
				if err := validateRequired(name); err != nil {
					return errors.New("--name cannot be empty")
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
				return errors.New("nothing to update (use --name, --description or --color)")
			}

			if _, err := app.Store.UpdateEntity(cmd.Context(), id, patch); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated entity %s\n", displayName(app.Store.Snapshot(), id))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Entity name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&color, "color", "", "Display color (#rrggbb)")

	return cmd
}
