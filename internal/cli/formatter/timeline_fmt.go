package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/procmap/internal/timeline"
)

const (
	gridLabelWidth = 14
	gridCellWidth  = 9 // "Jan 2006" plus one column of spacing
)

// FormatTimeline renders a projection as a terminal grid: one line per
// entity row, one cell per month, with a status marker in each activity's
// deadline position. A legend of placed activities and their dependency
// links follows the grid.
func FormatTimeline(p timeline.Projection) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Process map %s – %s",
		p.Window.Start.Format("Jan 2006"),
		p.Window.End().AddDate(0, 0, -1).Format("Jan 2006"))))
	b.WriteString("\n")

	b.WriteString(StyleHeader.Render(PadRight("STAKEHOLDER", gridLabelWidth)))
	b.WriteString(StyleHeader.Render(PadRight("ENTITY", gridLabelWidth)))
	for _, m := range p.Window.Months() {
		b.WriteString(StyleHeader.Render(PadRight(m.Format("Jan 2006"), gridCellWidth)))
	}
	b.WriteString("\n")
	b.WriteString(Dim(strings.Repeat("─", 2*gridLabelWidth+timeline.WindowMonths*gridCellWidth)))
	b.WriteString("\n")

	if len(p.Blocks) == 0 {
		b.WriteString(Dim("No stakeholders yet.") + "\n")
		return b.String()
	}

	byRow := make(map[int][]timeline.Node)
	for _, n := range p.Nodes {
		byRow[n.Row] = append(byRow[n.Row], n)
	}

	for _, blk := range p.Blocks {
		label := PadRight(Colored(blk.Color, Truncate(blk.Name, gridLabelWidth-1)), gridLabelWidth)
		if blk.RowSpan == 0 {
			b.WriteString(label + Dim("no entities") + "\n")
			continue
		}
		for r := blk.StartRow; r < blk.StartRow+blk.RowSpan; r++ {
			if r == blk.StartRow {
				b.WriteString(label)
			} else {
				b.WriteString(strings.Repeat(" ", gridLabelWidth))
			}
			row := p.Rows[r]
			b.WriteString(PadRight(Colored(row.Color, Truncate(row.Name, gridLabelWidth-1)), gridLabelWidth))
			b.WriteString(renderGridRow(byRow[r]))
			b.WriteString("\n")
		}
	}

	if len(p.Nodes) > 0 {
		b.WriteString("\n" + Dim("Activities") + "\n")
		for _, n := range p.Nodes {
			fmt.Fprintf(&b, "  %s %s  %s\n",
				Colored(n.Color, StatusMarker(n.Status)), n.Name, Dim(HumanDate(n.Deadline)))
		}
	}

	if len(p.Connectors) > 0 {
		names := make(map[string]string, len(p.Nodes))
		for _, n := range p.Nodes {
			names[n.ActivityID] = n.Name
		}
		b.WriteString("\n" + Dim("Dependencies") + "\n")
		for _, c := range p.Connectors {
			fmt.Fprintf(&b, "  %s %s %s\n", names[c.SourceID], Colored(c.Color, "→"), names[c.TargetID])
		}
	}

	return b.String()
}

// renderGridRow lays the row's nodes into month cells. Each cell starts with
// a dim boundary mark; a node lands at its day fraction within the cell and
// slides right when that slot is already taken.
func renderGridRow(nodes []timeline.Node) string {
	slots := make([]string, timeline.WindowMonths*gridCellWidth)
	for i := range slots {
		if i%gridCellWidth == 0 {
			slots[i] = Dim("┊")
		} else {
			slots[i] = " "
		}
	}
	taken := make([]bool, len(slots))

	for _, n := range nodes {
		offset := 1 + int(n.Fraction*float64(gridCellWidth-2))
		offset = min(max(offset, 1), gridCellWidth-1)
		pos := n.Month*gridCellWidth + offset
		for pos < len(slots)-1 && taken[pos] {
			pos++
		}
		taken[pos] = true
		slots[pos] = Colored(n.Color, StatusMarker(n.Status))
	}

	return strings.Join(slots, "")
}

// FormatOmissions lists activities and links left off the map.
func FormatOmissions(omitted []timeline.Omission, resolve NameResolver) string {
	if len(omitted) == 0 {
		return ""
	}
	name := func(id string) string {
		if n, ok := resolve(id); ok {
			return n
		}
		return id
	}

	var b strings.Builder
	b.WriteString("\n" + Dim("Not shown") + "\n")
	for _, o := range omitted {
		var why string
		switch o.Reason {
		case timeline.OmitOutOfWindow:
			why = "deadline outside the window"
		case timeline.OmitBadDeadline:
			why = "deadline is not a YYYY-MM-DD date"
		case timeline.OmitDanglingDependency:
			why = fmt.Sprintf("depends on unknown activity %s", o.Reference)
		case timeline.OmitUnplacedDependency:
			why = fmt.Sprintf("depends on %s, which is not on the map", name(o.Reference))
		default:
			why = string(o.Reason)
		}
		fmt.Fprintf(&b, "  %s %s: %s\n", StyleYellow.Render("!"), name(o.ActivityID), why)
	}
	return b.String()
}
