package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/procmap/internal/cli/formatter"
	"github.com/alexanderramin/procmap/internal/domain"
	"github.com/alexanderramin/procmap/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"activities", "act"},
		Short:   "Manage activities owned by entities",
	}

	cmd.AddCommand(
		newActivityAddCmd(app),
		newActivityUpdateCmd(app),
		newActivityListCmd(app),
		newActivityShowCmd(app),
		newActivityAssignCmd(app),
	)

	return cmd
}

// activityFlags are the flags shared by add and update.
type activityFlags struct {
	name         string
	description  string
	start        string
	deadline     string
	status       string
	deliverables []string
	dependsOn    []string
	raci         map[domain.RaciRole]*[]string
}

func newActivityFlags() *activityFlags {
	f := &activityFlags{raci: make(map[domain.RaciRole]*[]string, len(domain.RaciRoles))}
	for _, role := range domain.RaciRoles {
		f.raci[role] = new([]string)
	}
	return f
}

func (f *activityFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Activity name")
	fs.StringVar(&f.description, "description", "", "Description")
	fs.StringVar(&f.start, "start", "", "Start date (YYYY-MM-DD, default today)")
	fs.StringVar(&f.deadline, "deadline", "", "Deadline (YYYY-MM-DD, default today)")
	fs.StringVar(&f.status, "status", "", "Status: pending, in-progress or completed")
	fs.StringArrayVar(&f.deliverables, "deliverable", nil, "Deliverable (repeatable)")
	fs.StringSliceVar(&f.dependsOn, "depends-on", nil, "Activity this one depends on, ID or prefix (repeatable)")
	for _, role := range domain.RaciRoles {
		fs.StringSliceVar(f.raci[role], string(role), nil,
			fmt.Sprintf("%s stakeholder or entity, ID or prefix (repeatable)", roleTitle(role)))
	}
}

// raciFromFlags resolves the RACI flags against the snapshot. Roles whose
// flag was not given are taken from base.
func (f *activityFlags) raciFromFlags(snap *store.Snapshot, fs *pflag.FlagSet, base domain.Raci) (domain.Raci, bool, error) {
	out := base.Clone()
	changed := false
	for _, role := range domain.RaciRoles {
		if !fs.Changed(string(role)) {
			continue
		}
		ids, err := resolveIDs(snap, kindParty, *f.raci[role], false)
		if err != nil {
			return domain.Raci{}, false, fmt.Errorf("--%s: %w", role, err)
		}
		out = out.WithRole(role, ids)
		changed = true
	}
	return out.Normalize(), changed, nil
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func newActivityAddCmd(app *App) *cobra.Command {
	var entityArg string
	flags := newActivityFlags()

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an activity to an entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Store.Snapshot()
			today := app.now().Format(time.DateOnly)

			var entityID string
			if entityArg != "" {
				id, err := resolveID(snap, kindEntity, entityArg)
				if err != nil {
					return err
				}
				entityID = id
			}

			status, err := parseStatus(flags.status)
			if err != nil {
				return err
			}
			deps, err := resolveIDs(snap, kindActivity, flags.dependsOn, true)
			if err != nil {
				return fmt.Errorf("--depends-on: %w", err)
			}
			raci, _, err := flags.raciFromFlags(snap, cmd.Flags(), domain.Raci{})
			if err != nil {
				return err
			}

			values := activityFormValues{
				EntityID:     entityID,
				Name:         flags.name,
				Description:  flags.description,
				StartDate:    domain.CoalesceStr(flags.start, today),
				Deadline:     domain.CoalesceStr(flags.deadline, today),
				Status:       status,
				Deliverables: strings.Join(nonEmpty(flags.deliverables), "\n"),
				Dependencies: deps,
				Raci:         raci,
			}
			fields := values.fields()

			if (values.Name == "" || values.EntityID == "") && app.interactive() {
				if domain.EntityCount(snap.Stakeholders) == 0 {
					return errors.New("no entities yet; add one with: procmap entity add")
				}
				if err := app.runForm(activityForm(snap, &values)); err != nil {
					return err
				}
				fields = values.fields()
			}

			if values.EntityID == "" {
				return errors.New("--entity is required")
			}
			if err := validateRequired(fields.Name); err != nil {
				return errors.New("--name is required")
			}
			if err := validateRequiredDate(fields.StartDate); err != nil {
				return fmt.Errorf("invalid start date %q: %w", fields.StartDate, err)
			}
			if err := validateRequiredDate(fields.Deadline); err != nil {
				return fmt.Errorf("invalid deadline %q: %w", fields.Deadline, err)
			}

			a, found, err := app.Store.AddActivity(cmd.Context(), values.EntityID, fields)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("entity not found: %q", values.EntityID)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created activity %s (%s) under %s\n",
				a.Name, a.ID, displayName(app.Store.Snapshot(), values.EntityID))
			return nil
		},
	}

	cmd.Flags().StringVar(&entityArg, "entity", "", "Owning entity ID or prefix")
	flags.register(cmd.Flags())

	return cmd
}

func newActivityUpdateCmd(app *App) *cobra.Command {
	flags := newActivityFlags()

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an activity; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Store.Snapshot()
			id, err := resolveID(snap, kindActivity, args[0])
			if err != nil {
				return err
			}
			current, _ := snap.FindActivity(id)
			fs := cmd.Flags()

			var patch domain.ActivityPatch
			if fs.Changed("name") {
				if err := validateRequired(flags.name); err != nil {
					return errors.New("--name cannot be empty")
				}
				patch.Name = &flags.name
			}
			if fs.Changed("description") {
				patch.Description = &flags.description
			}
			if fs.Changed("start") {
				if err := validateRequiredDate(flags.start); err != nil {
					return fmt.Errorf("invalid start date %q: %w", flags.start, err)
				}
				patch.StartDate = &flags.start
			}
			if fs.Changed("deadline") {
				if err := validateRequiredDate(flags.deadline); err != nil {
					return fmt.Errorf("invalid deadline %q: %w", flags.deadline, err)
				}
				patch.Deadline = &flags.deadline
			}
			if fs.Changed("status") {
				status, err := domain.ParseActivityStatus(flags.status)
				if err != nil {
					return err
				}
				patch.Status = &status
			}
			if fs.Changed("deliverable") {
				deliverables := nonEmpty(flags.deliverables)
				patch.Deliverables = &deliverables
			}
			if fs.Changed("depends-on") {
				deps, err := resolveIDs(snap, kindActivity, flags.dependsOn, true)
				if err != nil {
					return fmt.Errorf("--depends-on: %w", err)
				}
				patch.Dependencies = &deps
			}
			raci, raciChanged, err := flags.raciFromFlags(snap, fs, current.Raci)
			if err != nil {
				return err
			}
			if raciChanged {
				patch.Raci = &raci
			}

			if patch.IsEmpty() {
				return errors.New("nothing to update")
			}

			if _, err := app.Store.UpdateActivity(cmd.Context(), id, patch); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s\n", displayName(app.Store.Snapshot(), id))
			return nil
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

func newActivityListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List activities grouped by stakeholder and entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActivityList(app.Store.Snapshot().Stakeholders))
			return nil
		},
	}
}

func newActivityShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show an activity with its dependencies and RACI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Store.Snapshot()
			id, err := resolveID(snap, kindActivity, args[0])
			if err != nil {
				return err
			}
			a, _ := snap.FindActivity(id)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActivityDetail(a, snap.DisplayName))
			return nil
		},
	}
}

func newActivityAssignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assign ID ROLE PARTY...",
		Short: "Add stakeholders or entities to one RACI role of an activity",
		Long: `Add stakeholders or entities to one RACI role of an activity.
ROLE is responsible, accountable, consulted or informed. Parties already
holding the role are kept; use "activity update --ROLE" to replace the list.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Store.Snapshot()
			id, err := resolveID(snap, kindActivity, args[0])
			if err != nil {
				return err
			}
			role, err := domain.ParseRaciRole(args[1])
			if err != nil {
				return err
			}
			parties, err := resolveIDs(snap, kindParty, args[2:], false)
			if err != nil {
				return err
			}

			current, _ := snap.FindActivity(id)
			assigned := domain.CloneStrings(current.Raci.Role(role))
			for _, p := range parties {
				if !slices.Contains(assigned, p) {
					assigned = append(assigned, p)
				}
			}
			raci := current.Raci.WithRole(role, assigned).Normalize()

			if _, err := app.Store.UpdateActivity(cmd.Context(), id, domain.ActivityPatch{Raci: &raci}); err != nil {
				return err
			}

			names := make([]string, len(assigned))
			for i, p := range assigned {
				names[i] = displayName(app.Store.Snapshot(), p)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s on %s: %s\n",
				roleTitle(role), current.Name, strings.Join(names, ", "))
			return nil
		},
	}
}

func roleTitle(role domain.RaciRole) string {
	s := string(role)
	return string(s[0]-'a'+'A') + s[1:]
}
