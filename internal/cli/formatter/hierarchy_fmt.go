package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/procmap/internal/domain"
)

// FormatStakeholderList renders stakeholders and their entities as a tree.
func FormatStakeholderList(stakeholders []domain.Stakeholder) string {
	if len(stakeholders) == 0 {
		return Dim("No stakeholders yet. Add one with: procmap stakeholder add --name NAME") + "\n"
	}

	var items []TreeItem
	for _, s := range stakeholders {
		items = append(items, TreeItem{
			Title:  s.Name + " " + TruncID(s.ID),
			Color:  s.Color,
			Detail: Count(len(s.Entities), "entity", "entities"),
		})
		if len(s.Entities) == 0 {
			items = append(items, TreeItem{Title: Dim("no entities"), Level: 1, IsLast: true})
			continue
		}
		for i, e := range s.Entities {
			items = append(items, TreeItem{
				Title:  e.Name + " " + TruncID(e.ID),
				Color:  e.Color,
				Level:  1,
				IsLast: i == len(s.Entities)-1,
				Detail: Count(len(e.Activities), "activity", "activities"),
			})
		}
	}

	return Header("Stakeholders") + "\n" + RenderTree(items)
}

// FormatActivityList renders activities grouped by stakeholder and entity.
func FormatActivityList(stakeholders []domain.Stakeholder) string {
	var b strings.Builder
	b.WriteString(Header("Activities"))
	b.WriteString("\n")

	if len(stakeholders) == 0 {
		b.WriteString(Dim("No stakeholders yet."))
		b.WriteString("\n")
		return b.String()
	}

	for _, s := range stakeholders {
		b.WriteString("\n")
		b.WriteString(Swatch(s.Color) + " " + Bold(s.Name))
		b.WriteString("\n")

		if len(s.Entities) == 0 {
			b.WriteString("  " + Dim("No entities yet") + "\n")
			continue
		}

		for _, e := range s.Entities {
			if len(e.Activities) == 0 {
				b.WriteString("  " + Colored(e.Color, e.Name) + "\n")
				b.WriteString("    " + Dim("No activities yet") + "\n")
				continue
			}
			b.WriteString("  " + Colored(e.Color, e.Name) + "  " + CompletionBar(e.Activities) + "\n")

			rows := make([][]string, 0, len(e.Activities))
			for _, a := range e.Activities {
				rows = append(rows, []string{
					TruncID(a.ID),
					a.Name,
					DateRange(a.StartDate, a.Deadline),
					StatusIndicator(a.Status),
					Count(len(a.Deliverables), "deliverable", "deliverables"),
				})
			}
			b.WriteString(RenderIndentedTable("    ",
				[]string{"ID", "ACTIVITY", "TIMELINE", "STATUS", "DELIVERABLES"}, rows))
		}
	}

	return b.String()
}

// NameResolver maps a record ID to a display name.
type NameResolver func(id string) (string, bool)

// FormatActivityDetail renders one activity with resolved dependency and
// RACI names. Unresolvable IDs are shown dimmed with a marker.
func FormatActivityDetail(a domain.Activity, resolve NameResolver) string {
	name := func(id string) string {
		if n, ok := resolve(id); ok {
			return n + " " + TruncID(id)
		}
		return Dim(id + " (missing)")
	}
	list := func(ids []string) string {
		if len(ids) == 0 {
			return Dim("--")
		}
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = name(id)
		}
		return strings.Join(parts, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(a.Name), TruncID(a.ID))
	if a.Description != "" {
		fmt.Fprintf(&b, "%s\n", a.Description)
	}
	b.WriteString("\n")

	rows := [][]string{
		{"Timeline", DateRange(a.StartDate, a.Deadline)},
		{"Status", StatusIndicator(a.Status)},
		{"Depends on", list(a.Dependencies)},
	}
	for _, role := range domain.RaciRoles {
		rows = append(rows, []string{roleLabel(role), list(a.Raci.Role(role))})
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%s %s\n", PadRight(Dim(r[0]), 12), r[1])
	}

	b.WriteString("\n" + Dim("Deliverables") + "\n")
	if len(a.Deliverables) == 0 {
		b.WriteString("  " + Dim("none") + "\n")
	}
	for _, d := range a.Deliverables {
		b.WriteString("  • " + d + "\n")
	}

	return b.String()
}

func roleLabel(role domain.RaciRole) string {
	s := string(role)
	return strings.ToUpper(s[:1]) + s[1:]
}
