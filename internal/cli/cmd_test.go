package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/procmap/internal/config"
	"github.com/alexanderramin/procmap/internal/domain"
	"github.com/alexanderramin/procmap/internal/repository"
	"github.com/alexanderramin/procmap/internal/store"
	"github.com/alexanderramin/procmap/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.May, 10, 9, 30, 0, 0, time.UTC)

// sequentialIDs yields id-0001, id-0002, ... so tests can use prefixes.
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%04d", n)
	}
}

// testApp wires an App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	repo := repository.NewSQLiteStateRepo(testutil.NewTestDB(t))
	st, err := store.Open(context.Background(), repo, store.WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)

	return &App{
		Store:  st,
		Config: config.Config{WindowStart: "2024-01"},
		Now:    func() time.Time { return testNow },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// seedHierarchy creates Finance{Payroll{Collect, Pay}, Audit}, Legal{} via
// the CLI. IDs follow creation order.
func seedHierarchy(t *testing.T, app *App) {
	t.Helper()
	steps := [][]string{
		{"stakeholder", "add", "--name", "Finance", "--color", "#ff0000"}, // id-0001
		{"stakeholder", "add", "--name", "Legal"},                          // id-0002
		{"entity", "add", "--stakeholder", "id-0001", "--name", "Payroll"}, // id-0003
		{"entity", "add", "--stakeholder", "id-0001", "--name", "Audit"},   // id-0004
		{"activity", "add", "--entity", "id-0003", "--name", "Collect",
			"--start", "2024-01-02", "--deadline", "2024-01-31", "--status", "completed"}, // id-0005
		{"activity", "add", "--entity", "id-0003", "--name", "Pay",
			"--start", "2024-02-01", "--deadline", "2024-03-15", "--depends-on", "id-0005"}, // id-0006
	}
	for _, args := range steps {
		_, err := executeCmd(t, app, args...)
		require.NoError(t, err, strings.Join(args, " "))
	}
}

// --- stakeholder ---

func TestStakeholderAdd_CreatesAndReports(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "stakeholder", "add", "--name", "Finance", "--description", "Money")
	require.NoError(t, err)
	assert.Contains(t, out, "Created stakeholder Finance (id-0001)")

	s, ok := app.Store.FindStakeholder("id-0001")
	require.True(t, ok)
	assert.Equal(t, "Money", s.Description)
	assert.Equal(t, defaultColor, s.Color)
	assert.Empty(t, s.Entities)
}

func TestStakeholderAdd_RequiresName(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "stakeholder", "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--name is required")
	assert.Empty(t, app.Store.Stakeholders())
}

func TestStakeholderAdd_RejectsBadColor(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "stakeholder", "add", "--name", "X", "--color", "red")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid color")
}

func TestStakeholderAdd_InteractiveFormStillRequiresName(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	ran := false
	app.RunForm = func(*huh.Form) error {
		ran = true
		return nil
	}

	_, err := executeCmd(t, app, "stakeholder", "add")
	require.Error(t, err)
	assert.True(t, ran)
	assert.Contains(t, err.Error(), "--name is required")
}

func TestStakeholderAdd_InteractiveAbort(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	app.RunForm = func(*huh.Form) error { return huh.ErrUserAborted }

	_, err := executeCmd(t, app, "stakeholder", "add")
	assert.ErrorIs(t, err, huh.ErrUserAborted)
	assert.Empty(t, app.Store.Stakeholders())
}

func TestStakeholderAdd_FormSkippedWhenNameGiven(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	app.RunForm = func(*huh.Form) error {
		t.Fatal("form should not run")
		return nil
	}

	_, err := executeCmd(t, app, "stakeholder", "add", "--name", "Direct")
	require.NoError(t, err)
}

func TestStakeholderUpdate_OnlyChangedFields(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	out, err := executeCmd(t, app, "stakeholder", "update", "id-0001", "--description", "Books")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated stakeholder Finance")

	s, _ := app.Store.FindStakeholder("id-0001")
	assert.Equal(t, "Finance", s.Name)
	assert.Equal(t, "Books", s.Description)
	assert.Equal(t, "#ff0000", s.Color)
	assert.Len(t, s.Entities, 2)
}

func TestStakeholderUpdate_NothingToUpdate(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	_, err := executeCmd(t, app, "stakeholder", "update", "id-0001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestStakeholderUpdate_UnknownID(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	_, err := executeCmd(t, app, "stakeholder", "update", "id-0003", "--name", "X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stakeholder not found", "entity IDs are not stakeholder IDs")
}

func TestStakeholderList(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	out, err := executeCmd(t, app, "stakeholder", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Finance")
	assert.Contains(t, out, "Payroll")
	assert.Contains(t, out, "Audit")
	assert.Contains(t, out, "Legal")
}

// --- entity ---

func TestEntityAdd_UnknownStakeholder(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "entity", "add", "--stakeholder", "nope", "--name", "X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stakeholder not found")
}

func TestEntityAdd_RequiresStakeholder(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	_, err := executeCmd(t, app, "entity", "add", "--name", "X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--stakeholder is required")
}

func TestEntityAdd_AmbiguousPrefix(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	_, err := executeCmd(t, app, "entity", "add", "--stakeholder", "id-000", "--name", "X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestEntityAdd_SetsBackReference(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	out, err := executeCmd(t, app, "entity", "add", "--stakeholder", "id-0002", "--name", "Contracts")
	require.NoError(t, err)
	assert.Contains(t, out, "Created entity Contracts (id-0007) under Legal")

	e, ok := app.Store.FindEntity("id-0007")
	require.True(t, ok)
	assert.Equal(t, "id-0002", e.StakeholderID)
	assert.Empty(t, e.Activities)
}

func TestEntityUpdate(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	_, err := executeCmd(t, app, "entity", "update", "id-0004", "--name", "Internal Audit", "--color", "#abc")
	require.NoError(t, err)

	e, _ := app.Store.FindEntity("id-0004")
	assert.Equal(t, "Internal Audit", e.Name)
	assert.Equal(t, "#abc", e.Color)
	assert.Equal(t, "id-0001", e.StakeholderID)
}

// --- activity ---

func TestActivityAdd_AllFlags(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	out, err := executeCmd(t, app, "activity", "add",
		"--entity", "id-0004",
		"--name", "Review",
		"--start", "2024-04-01",
		"--deadline", "2024-04-30",
		"--status", "in-progress",
		"--deliverable", "Report, final",
		"--deliverable", "Slides",
		"--depends-on", "id-0006",
		"--responsible", "id-0004",
		"--accountable", "id-0001",
		"--informed", "id-0002,id-0003",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Created activity Review (id-0007) under Audit")

	a, ok := app.Store.FindActivity("id-0007")
	require.True(t, ok)
	assert.Equal(t, "id-0004", a.EntityID)
	assert.Equal(t, "2024-04-30", a.Deadline)
	assert.Equal(t, domain.StatusInProgress, a.Status)
	assert.Equal(t, []string{"Report, final", "Slides"}, a.Deliverables)
	assert.Equal(t, []string{"id-0006"}, a.Dependencies)
	assert.Equal(t, []string{"id-0004"}, a.Raci.Responsible)
	assert.Equal(t, []string{"id-0001"}, a.Raci.Accountable)
	assert.Equal(t, []string{}, a.Raci.Consulted)
	assert.Equal(t, []string{"id-0002", "id-0003"}, a.Raci.Informed)
}

func TestActivityAdd_DefaultsDatesToToday(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	_, err := executeCmd(t, app, "activity", "add", "--entity", "id-0004", "--name", "Quick")
	require.NoError(t, err)

	a, _ := app.Store.FindActivity("id-0007")
	assert.Equal(t, "2024-05-10", a.StartDate)
	assert.Equal(t, "2024-05-10", a.Deadline)
	assert.Equal(t, domain.StatusPending, a.Status)
	assert.Equal(t, []string{}, a.Deliverables)
	assert.Equal(t, []string{}, a.Dependencies)
}

func TestActivityAdd_KeepsUnknownDependency(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	_, err := executeCmd(t, app, "activity", "add", "--entity", "id-0004", "--name", "Later",
		"--depends-on", "external-ref")
	require.NoError(t, err)

	a, _ := app.Store.FindActivity("id-0007")
	assert.Equal(t, []string{"external-ref"}, a.Dependencies)
}

func TestActivityAdd_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing name", []string{"--entity", "id-0004"}, "--name is required"},
		{"missing entity", []string{"--name", "X"}, "--entity is required"},
		{"bad deadline", []string{"--entity", "id-0004", "--name", "X", "--deadline", "31/01/2024"}, "invalid deadline"},
		{"bad start", []string{"--entity", "id-0004", "--name", "X", "--start", "2024-13-01"}, "invalid start date"},
		{"bad status", []string{"--entity", "id-0004", "--name", "X", "--status", "done"}, "invalid status"},
		{"unknown raci party", []string{"--entity", "id-0004", "--name", "X", "--consulted", "zzz"}, "--consulted"},
		{"raci must be party", []string{"--entity", "id-0004", "--name", "X", "--responsible", "id-0005"}, "not found"},
		{"ambiguous dependency", []string{"--entity", "id-0004", "--name", "X", "--depends-on", "id-000"}, "ambiguous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)
			seedHierarchy(t, app)

			_, err := executeCmd(t, app, append([]string{"activity", "add"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			_, ok := app.Store.FindActivity("id-0007")
			assert.False(t, ok)
		})
	}
}

func TestActivityUpdate_StatusOnly(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)
	before, _ := app.Store.FindActivity("id-0006")

	out, err := executeCmd(t, app, "activity", "update", "id-0006", "--status", "completed")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated activity Pay")

	after, _ := app.Store.FindActivity("id-0006")
	assert.Equal(t, domain.StatusCompleted, after.Status)
	before.Status = domain.StatusCompleted
	assert.Equal(t, before, after)
}

func TestActivityUpdate_ClearDependencies(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	_, err := executeCmd(t, app, "activity", "update", "id-0006", "--depends-on=")
	require.NoError(t, err)

	a, _ := app.Store.FindActivity("id-0006")
	assert.Equal(t, []string{}, a.Dependencies)
}

func TestActivityUpdate_RaciRoleReplacesOnlyThatRole(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)
	_, err := executeCmd(t, app, "activity", "update", "id-0006", "--responsible", "id-0003", "--informed", "id-0002")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "activity", "update", "id-0006", "--responsible", "id-0001")
	require.NoError(t, err)

	a, _ := app.Store.FindActivity("id-0006")
	assert.Equal(t, []string{"id-0001"}, a.Raci.Responsible)
	assert.Equal(t, []string{"id-0002"}, a.Raci.Informed)
}

func TestActivityUpdate_NothingToUpdate(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	_, err := executeCmd(t, app, "activity", "update", "id-0006")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestActivityList(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	out, err := executeCmd(t, app, "activity", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Collect")
	assert.Contains(t, out, "Pay")
	assert.Contains(t, out, "No activities yet")
	assert.Contains(t, out, "No entities yet")
}

func TestActivityShow(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	out, err := executeCmd(t, app, "activity", "show", "id-0006")
	require.NoError(t, err)
	assert.Contains(t, out, "Pay")
	assert.Contains(t, out, "Collect")
	assert.Contains(t, out, "Mar 15, 2024")
}

// typeIntoForm focuses the first field of f and types text into it, the
// way a user would before submitting.
func typeIntoForm(f *huh.Form, text string) {
	f.Init()
	for _, r := range text {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestActivityAdd_InteractiveKeepsFlagValues(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)
	app.IsInteractive = func() bool { return true }
	ran := false
	app.RunForm = func(f *huh.Form) error {
		ran = true
		typeIntoForm(f, "Kickoff")
		return nil
	}

	out, err := executeCmd(t, app, "activity", "add",
		"--entity", "id-0004",
		"--deliverable", "Minutes",
		"--deliverable", "Slides",
		"--depends-on", "id-0005",
		"--informed", "id-0002",
	)
	require.NoError(t, err)
	require.True(t, ran)
	assert.Contains(t, out, "Created activity Kickoff (id-0007) under Audit")

	a, ok := app.Store.FindActivity("id-0007")
	require.True(t, ok)
	assert.Equal(t, "Kickoff", a.Name)
	assert.Equal(t, []string{"Minutes", "Slides"}, a.Deliverables)
	assert.Equal(t, []string{"id-0005"}, a.Dependencies)
	assert.Equal(t, []string{"id-0002"}, a.Raci.Informed)
	assert.Equal(t, []string{}, a.Raci.Responsible)
}

func TestActivityAdd_InteractiveAbort(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)
	app.IsInteractive = func() bool { return true }
	app.RunForm = func(*huh.Form) error { return huh.ErrUserAborted }

	_, err := executeCmd(t, app, "activity", "add", "--entity", "id-0004")
	assert.ErrorIs(t, err, huh.ErrUserAborted)
	_, ok := app.Store.FindActivity("id-0007")
	assert.False(t, ok)
}

func TestRaciSelect_PickersDoNotShareSelection(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)
	parties := partyOptions(app.Store.Snapshot())
	require.Len(t, parties, 4)
	assert.Equal(t, "Finance / Payroll", parties[1].Key)

	var responsible []string
	informed := []string{"id-0002"}
	f := newThemedForm(huh.NewGroup(
		raciSelect(domain.RoleResponsible, parties, &responsible),
		raciSelect(domain.RoleInformed, parties, &informed),
	))

	// Toggle the first party in the focused Responsible picker.
	typeIntoForm(f, "x")

	assert.Equal(t, []string{"id-0001"}, responsible)
	assert.Equal(t, []string{"id-0002"}, informed)
}

func TestActivityAssign_AddsPartiesToRole(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	out, err := executeCmd(t, app, "activity", "assign", "id-0005", "accountable", "id-0001", "id-0003")
	require.NoError(t, err)
	assert.Contains(t, out, "Accountable on Collect: Finance, Payroll")

	_, err = executeCmd(t, app, "activity", "assign", "id-0005", "accountable", "id-0001", "id-0002")
	require.NoError(t, err)

	a, _ := app.Store.FindActivity("id-0005")
	assert.Equal(t, []string{"id-0001", "id-0003", "id-0002"}, a.Raci.Accountable)
	assert.Equal(t, []string{}, a.Raci.Responsible)
}

func TestActivityAssign_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad role", []string{"id-0005", "owner", "id-0001"}, `invalid RACI role "owner"`},
		{"unknown party", []string{"id-0005", "informed", "zzz"}, "not found"},
		{"activity is not a party", []string{"id-0005", "informed", "id-0006"}, "not found"},
		{"unknown activity", []string{"nope", "informed", "id-0001"}, "activity not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)
			seedHierarchy(t, app)
			before := app.Store.Snapshot()

			_, err := executeCmd(t, app, append([]string{"activity", "assign"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Same(t, before, app.Store.Snapshot())
		})
	}
}

// --- view ---

func TestView_PrintAndSet(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "view")
	require.NoError(t, err)
	assert.Equal(t, "stakeholders\n", out)

	out, err = executeCmd(t, app, "view", "activities")
	require.NoError(t, err)
	assert.Contains(t, out, "Current view: activities")
	assert.Equal(t, domain.ViewActivities, app.Store.CurrentView())

	_, err = executeCmd(t, app, "view", "calendar")
	require.Error(t, err)
	assert.Equal(t, domain.ViewActivities, app.Store.CurrentView())
}

func TestRoot_RendersCurrentView(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "STAKEHOLDERS")

	require.NoError(t, app.Store.SetView(context.Background(), domain.ViewProcessMap))
	out, err = executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "PROCESS MAP")
	assert.Contains(t, out, "Pay → Collect")
}

// --- map ---

func TestMap_PrintsGrid(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	out, err := executeCmd(t, app, "map")
	require.NoError(t, err)
	assert.Contains(t, out, "Jan 2024")
	assert.Contains(t, out, "Dec 2024")
	assert.Contains(t, out, "Collect")
	assert.Contains(t, out, "Pay → Collect")
	assert.NotContains(t, out, "Not shown")
}

func TestMap_StartFlagMovesWindow(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	out, err := executeCmd(t, app, "map", "--start", "2024-03", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Mar 2024")
	assert.Contains(t, out, "Feb 2025")
	assert.Contains(t, out, "Not shown")
	assert.Contains(t, out, "Collect: deadline outside the window")
	assert.Contains(t, out, "Pay: depends on Collect, which is not on the map")
}

func TestMap_InvalidStart(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "map", "--start", "2024-3-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM")
}

func TestMap_WritesSVG(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)
	path := filepath.Join(t.TempDir(), "map.svg")

	out, err := executeCmd(t, app, "map", "--svg", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote map with 2 activities and 1 links")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<path id="id-0006-id-0005"`)
	assert.Contains(t, string(data), `stroke="#3B82F6"`)
}

func TestMap_InteractiveNeedsTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "map", "--interactive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal")
}

// --- reset ---

func TestReset_RequiresConfirmation(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)

	_, err := executeCmd(t, app, "reset")
	require.Error(t, err)
	assert.Len(t, app.Store.Stakeholders(), 2)

	out, err := executeCmd(t, app, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "All data cleared.")
	assert.Empty(t, app.Store.Stakeholders())
}

func TestReset_InteractiveDecline(t *testing.T) {
	app := testApp(t)
	seedHierarchy(t, app)
	app.IsInteractive = func() bool { return true }
	app.RunForm = func(*huh.Form) error { return nil }

	out, err := executeCmd(t, app, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Len(t, app.Store.Stakeholders(), 2)
}

// --- wiring ---

func TestRoot_SetupReceivesLoadedConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PROCMAP_WINDOW_START", "2024-06")

	var got config.Config
	app := &App{
		Setup: func(ctx context.Context, a *App) error {
			got = a.Config
			repo := repository.NewSQLiteStateRepo(testutil.NewTestDB(t))
			st, err := store.Open(ctx, repo)
			if err != nil {
				return err
			}
			a.Store = st
			return nil
		},
	}

	_, err := executeCmd(t, app, "--db", "/tmp/explicit.db", "view")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/explicit.db", got.DB)
	assert.Equal(t, "2024-06", got.WindowStart)
	assert.NotNil(t, app.Logger)
}

func TestRoot_NoStoreConfigured(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := executeCmd(t, &App{}, "view")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no store configured")
}
