package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/alexanderramin/procmap/internal/cli"
	"github.com/alexanderramin/procmap/internal/db"
	"github.com/alexanderramin/procmap/internal/repository"
	"github.com/alexanderramin/procmap/internal/store"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{
		// Open the database once flags and config are known.
		Setup: func(ctx context.Context, app *cli.App) error {
			var err error
			database, err = db.OpenDB(app.Config.DB)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}

			st, err := store.Open(ctx, repository.NewSQLiteStateRepo(database),
				store.WithLogger(app.Logger),
				store.WithObserver(store.NewSlogMutationObserver(app.Logger)),
			)
			if err != nil {
				return err
			}
			app.Store = st
			return nil
		},
	}

	// Detect interactive terminal for forms and the map viewer.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(context.Background())
}
