package cli

import (
	"fmt"

	"github.com/alexanderramin/procmap/internal/cli/formatter"
	"github.com/alexanderramin/procmap/internal/timeline"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// mapViewerFooterHeight is the status line below the viewport.
const mapViewerFooterHeight = 1

// mapViewer is a bubbletea model showing the timeline in a scrollable
// viewport. Left and right move the window by one month.
type mapViewer struct {
	app    *App
	window timeline.Window
	vp     viewport.Model
	ready  bool
}

func newMapViewer(app *App, window timeline.Window) mapViewer {
	vp := viewport.New(0, 0)
	vp.KeyMap = mapViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return mapViewer{app: app, window: window, vp: vp}
}

func runMapViewer(cmd *cobra.Command, app *App, window timeline.Window) error {
	p := tea.NewProgram(newMapViewer(app, window),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err := p.Run()
	return err
}

// mapViewportKeyMap returns a restricted keymap for vertical scrolling;
// left/right are reserved for moving the window.
func mapViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

func (m mapViewer) render() string {
	return formatter.FormatTimeline(project(m.app, m.app.Store.Snapshot(), m.window))
}

func (m mapViewer) shift(months int) mapViewer {
	m.window = timeline.NewWindow(m.window.Start.AddDate(0, months, 0))
	m.vp.SetContent(m.render())
	return m
}

func (m mapViewer) Init() tea.Cmd {
	return nil
}

func (m mapViewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-mapViewerFooterHeight, 1)
		m.vp.SetContent(m.render())
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			return m.shift(-1), nil
		case "right", "l":
			return m.shift(1), nil
		case "t":
			m.window = timeline.NewWindow(m.app.now())
			m.vp.SetContent(m.render())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m mapViewer) View() string {
	if !m.ready {
		return "Loading…"
	}
	return m.vp.View() + "\n" + m.footer()
}

func (m mapViewer) footer() string {
	hints := formatter.Dim("←/→ month  t today  ↑/↓ scroll  q quit")
	return fmt.Sprintf("%s  %s", scrollIndicator(m.vp), hints)
}

// scrollIndicator returns a dim scroll position string for the status bar.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() && vp.AtBottom() {
		return formatter.Dim("[ALL]")
	}
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}
