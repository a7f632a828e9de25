package cli

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/procmap/internal/cli/formatter"
	"github.com/alexanderramin/procmap/internal/domain"
	"github.com/alexanderramin/procmap/internal/store"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// defaultColor matches the color picker default of the web forms.
const defaultColor = "#3B82F6"

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// procmapHuhTheme returns a custom huh theme using the Gruvbox palette.
func procmapHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newThemedForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(procmapHuhTheme()).WithShowHelp(false)
}

// validateRequired rejects blank input.
func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateRequiredDate requires a YYYY-MM-DD date.
func validateRequiredDate(s string) error {
	if err := validateRequired(s); err != nil {
		return err
	}
	return validateOptionalDate(s)
}

// validateOptionalColor accepts empty or a #rgb / #rrggbb color.
func validateOptionalColor(s string) error {
	if s == "" || hexColorPattern.MatchString(s) {
		return nil
	}
	return fmt.Errorf("use a hex color such as %s", defaultColor)
}

// dateInput returns a huh.Input for a date field with YYYY-MM-DD validation.
func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(time.DateOnly).
		Value(value).
		Validate(validateRequiredDate)
}

func nameInput(title string, value *string) *huh.Input {
	return huh.NewInput().Title(title).Value(value).Validate(validateRequired)
}

func descriptionInput(value *string) *huh.Text {
	return huh.NewText().Title("Description").Lines(3).Value(value)
}

func colorInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Color").
		Placeholder(defaultColor).
		Value(value).
		Validate(validateOptionalColor)
}

// stakeholderForm collects the fields for a new stakeholder.
func stakeholderForm(f *domain.StakeholderFields) *huh.Form {
	return newThemedForm(
		huh.NewGroup(
			nameInput("Stakeholder Name", &f.Name),
			descriptionInput(&f.Description),
			colorInput(&f.Color),
		),
	)
}

// entityForm collects the fields for a new entity. When stakeholderID is
// empty the form starts with a stakeholder picker.
func entityForm(snap *store.Snapshot, stakeholderID *string, f *domain.EntityFields) *huh.Form {
	var groups []*huh.Group
	if *stakeholderID == "" {
		options := make([]huh.Option[string], 0, len(snap.Stakeholders))
		for _, s := range snap.Stakeholders {
			options = append(options, huh.NewOption(s.Name, s.ID))
		}
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which Stakeholder?").
				Options(options...).
				Value(stakeholderID),
		))
	}
	groups = append(groups, huh.NewGroup(
		nameInput("Entity Name", &f.Name),
		descriptionInput(&f.Description),
		colorInput(&f.Color),
	))
	return newThemedForm(groups...)
}

// activityFormValues holds the raw strings an activity form edits.
type activityFormValues struct {
	EntityID     string
	Name         string
	Description  string
	StartDate    string
	Deadline     string
	Status       domain.ActivityStatus
	Deliverables string // one per line
	Dependencies []string
	Raci         domain.Raci
}

// fields converts the form values into creation fields.
func (v activityFormValues) fields() domain.ActivityFields {
	var deliverables []string
	for _, line := range strings.Split(v.Deliverables, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			deliverables = append(deliverables, line)
		}
	}
	return domain.ActivityFields{
		Name:         strings.TrimSpace(v.Name),
		Description:  v.Description,
		StartDate:    v.StartDate,
		Deadline:     v.Deadline,
		Status:       v.Status,
		Deliverables: deliverables,
		Dependencies: v.Dependencies,
		Raci:         v.Raci.Normalize(),
	}
}

// activityForm collects the fields for a new activity. Existing activities
// are offered as dependencies, stakeholders and entities as RACI parties.
func activityForm(snap *store.Snapshot, v *activityFormValues) *huh.Form {
	var groups []*huh.Group
	if v.EntityID == "" {
		var options []huh.Option[string]
		for _, s := range snap.Stakeholders {
			for _, e := range s.Entities {
				options = append(options, huh.NewOption(s.Name+" / "+e.Name, e.ID))
			}
		}
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which Entity?").
				Options(options...).
				Value(&v.EntityID),
		))
	}

	statusOptions := []huh.Option[domain.ActivityStatus]{
		huh.NewOption("Pending", domain.StatusPending),
		huh.NewOption("In progress", domain.StatusInProgress),
		huh.NewOption("Completed", domain.StatusCompleted),
	}
	groups = append(groups, huh.NewGroup(
		nameInput("Activity Name", &v.Name),
		descriptionInput(&v.Description),
		dateInput("Start Date", &v.StartDate),
		dateInput("Deadline", &v.Deadline),
		huh.NewSelect[domain.ActivityStatus]().
			Title("Status").
			Options(statusOptions...).
			Value(&v.Status),
		huh.NewText().
			Title("Deliverables").
			Description("One per line").
			Lines(4).
			Value(&v.Deliverables),
	))

	var depOptions []huh.Option[string]
	for _, s := range snap.Stakeholders {
		for _, e := range s.Entities {
			for _, a := range e.Activities {
				depOptions = append(depOptions, huh.NewOption(e.Name+" / "+a.Name, a.ID))
			}
		}
	}
	if len(depOptions) > 0 {
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Depends On").
				Options(depOptions...).
				Value(&v.Dependencies),
		))
	}

	if parties := partyOptions(snap); len(parties) > 0 {
		groups = append(groups, huh.NewGroup(
			raciSelect(domain.RoleResponsible, parties, &v.Raci.Responsible),
			raciSelect(domain.RoleAccountable, parties, &v.Raci.Accountable),
			raciSelect(domain.RoleConsulted, parties, &v.Raci.Consulted),
			raciSelect(domain.RoleInformed, parties, &v.Raci.Informed),
		).Title("RACI"))
	}

	return newThemedForm(groups...)
}

// partyOptions lists every stakeholder followed by its entities.
func partyOptions(snap *store.Snapshot) []huh.Option[string] {
	var options []huh.Option[string]
	for _, s := range snap.Stakeholders {
		options = append(options, huh.NewOption(s.Name, s.ID))
		for _, e := range s.Entities {
			options = append(options, huh.NewOption(s.Name+" / "+e.Name, e.ID))
		}
	}
	return options
}

// raciSelect builds one role picker. huh records selection on the options
// themselves, so each picker owns a copy.
func raciSelect(role domain.RaciRole, options []huh.Option[string], ids *[]string) *huh.MultiSelect[string] {
	return huh.NewMultiSelect[string]().
		Title(roleTitle(role)).
		Options(slices.Clone(options)...).
		Value(ids)
}

// confirmForm creates a huh form for a yes/no confirmation.
func confirmForm(title string, result *bool) *huh.Form {
	return newThemedForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	)
}
