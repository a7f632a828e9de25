package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title  string
	Color  string // hex swatch shown before the title; empty for none
	Level  int
	IsLast bool
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree renders a list of TreeItems as an indented tree using
// box-drawing characters. Detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	// lastAt tracks, per level, whether the most recent ancestor at that
	// level was the last of its siblings, so its column is left blank.
	var lastAt []bool

	for idx, item := range items {
		for len(lastAt) <= item.Level {
			lastAt = append(lastAt, false)
		}
		lastAt[item.Level] = item.IsLast

		var prefix strings.Builder
		if item.Level > 0 {
			for i := 1; i < item.Level; i++ {
				if lastAt[i] {
					prefix.WriteString(treeBlank)
				} else {
					prefix.WriteString(treePipe)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		title := item.Title
		if item.Level == 0 {
			title = Bold(title)
		}
		if item.Color != "" {
			title = Swatch(item.Color) + " " + title
		}

		content := StyleDim.Render(prefix.String()) + title
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render("[ " + item.Detail + " ]")
		}
		maxContentWidth = max(maxContentWidth, lipgloss.Width(content))
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge == "" {
			b.WriteString(li.content + "\n")
			continue
		}
		pad := max(maxContentWidth-lipgloss.Width(li.content), 0)
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
	}

	return b.String()
}
