package cli

import (
	"testing"

	"github.com/alexanderramin/procmap/internal/teatest"
	"github.com/alexanderramin/procmap/internal/timeline"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViewerDriver(t *testing.T, app *App, opts ...teatest.Option) *teatest.Driver {
	t.Helper()
	return teatest.New(t, newMapViewer(app, app.Config.Window(app.now())), opts...)
}

func viewerOf(t *testing.T, d *teatest.Driver) mapViewer {
	t.Helper()
	m, ok := d.Model.(mapViewer)
	require.True(t, ok)
	return m
}

func TestMapViewer_LoadingUntilSized(t *testing.T) {
	d := newViewerDriver(t, testApp(t))
	assert.Equal(t, "Loading…", d.View())
}

func TestMapViewer_RendersWindow(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	d := newViewerDriver(t, app, teatest.WithSize(200, 40))
	view := d.View()

	assert.Contains(t, view, "Jan 2024")
	assert.Contains(t, view, "Payroll")
	assert.Contains(t, view, "q quit")
	assert.Equal(t, 39, viewerOf(t, d).vp.Height)
}

func TestMapViewer_ArrowKeysShiftWindow(t *testing.T) {
	app := testApp(t)
	d := newViewerDriver(t, app, teatest.WithSize(200, 40))

	d.Press(tea.KeyRight)
	assert.Equal(t, "2024-02", viewerOf(t, d).window.Start.Format("2006-01"))

	d.Type("hh")
	assert.Equal(t, "2023-12", viewerOf(t, d).window.Start.Format("2006-01"))
	assert.Contains(t, d.View(), "Dec 2023")

	d.Type("t")
	assert.Equal(t, timeline.NewWindow(testNow), viewerOf(t, d).window)
}

func TestMapViewer_ScrollKeysMoveViewport(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)
	d := newViewerDriver(t, app, teatest.WithSize(200, 4))
	require.False(t, viewerOf(t, d).vp.AtBottom())

	d.Press(tea.KeyDown)
	assert.Equal(t, 1, viewerOf(t, d).vp.YOffset)

	d.Type("k")
	assert.Equal(t, 0, viewerOf(t, d).vp.YOffset)
}

func TestMapViewer_Quit(t *testing.T) {
	app := testApp(t)

	for name, send := range map[string]func(*teatest.Driver){
		"q":      func(d *teatest.Driver) { d.Type("q") },
		"esc":    func(d *teatest.Driver) { d.Press(tea.KeyEsc) },
		"ctrl+c": func(d *teatest.Driver) { d.Press(tea.KeyCtrlC) },
	} {
		t.Run(name, func(t *testing.T) {
			d := newViewerDriver(t, app, teatest.WithSize(80, 20))
			send(d)
			assert.True(t, d.Quitting)

			// Keys after quitting are ignored.
			d.Press(tea.KeyRight)
			assert.Equal(t, "2024-01", viewerOf(t, d).window.Start.Format("2006-01"))
		})
	}
}

func TestScrollIndicator(t *testing.T) {
	app := testApp(t)
	d := newViewerDriver(t, app, teatest.WithSize(200, 100))
	assert.Contains(t, scrollIndicator(viewerOf(t, d).vp), "[ALL]")
}
