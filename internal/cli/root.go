package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/procmap/internal/config"
	"github.com/alexanderramin/procmap/internal/store"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// App holds the store and runtime settings used by CLI commands.
type App struct {
	Store  *store.Store
	Config config.Config
	Logger *slog.Logger

	// Setup opens the store once configuration is loaded. It is skipped
	// when Store is already set.
	Setup func(ctx context.Context, app *App) error

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// Now defaults to time.Now.
	Now func() time.Time
	// RunForm runs a huh form; tests replace it to fill values directly.
	RunForm func(*huh.Form) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) runForm(f *huh.Form) error {
	if a.RunForm != nil {
		return a.RunForm(f)
	}
	return f.Run()
}

// NewRootCmd creates the top-level "procmap" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "procmap",
		Short:         "Map stakeholders, entities and activities on a timeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd, configFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderView(cmd, app, app.Store.CurrentView())
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ~/.procmap/config.yaml)")
	root.PersistentFlags().String(config.KeyDB, "", "SQLite database path (default ~/.procmap/procmap.db)")
	root.PersistentFlags().BoolP(config.KeyVerbose, "v", false, "Log mutations and list omitted map elements")

	root.AddCommand(
		newViewCmd(app),
		newStakeholderCmd(app),
		newEntityCmd(app),
		newActivityCmd(app),
		newMapCmd(app),
		newResetCmd(app),
	)

	return root
}

// init loads configuration and opens the store on first use.
func (a *App) init(cmd *cobra.Command, configFile string) error {
	if a.Store != nil {
		if v, err := cmd.Flags().GetBool(config.KeyVerbose); err == nil && v {
			a.Config.Verbose = true
		}
		if a.Logger == nil {
			a.Logger = newLogger(cmd.ErrOrStderr(), a.Config.Verbose)
		}
		return nil
	}

	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}
	a.Config = cfg
	a.Logger = newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	if a.Setup != nil {
		if err := a.Setup(cmd.Context(), a); err != nil {
			return err
		}
	}
	if a.Store == nil {
		return errors.New("no store configured")
	}
	return nil
}

// newLogger returns a text logger on w; verbose lowers the level to Info.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
