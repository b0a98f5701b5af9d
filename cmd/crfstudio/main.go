package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/tbeaumont/crfstudio/internal/cli"
	"github.com/tbeaumont/crfstudio/internal/db"
	"github.com/tbeaumont/crfstudio/internal/repository"
	"github.com/tbeaumont/crfstudio/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.crfstudio/crfstudio.db
	dbPath := os.Getenv("CRFSTUDIO_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".crfstudio", "crfstudio.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	studyRepo := repository.NewSQLiteStudyRepo(database)
	formRepo := repository.NewSQLiteFormRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Studies: service.NewStudyService(studyRepo),
		Forms:   service.NewFormService(formRepo, uow),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
