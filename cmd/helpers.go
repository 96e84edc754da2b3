package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rolo/internal/config"
	"github.com/zjrosen/rolo/internal/contacts/application"
	"github.com/zjrosen/rolo/internal/infrastructure/sqlite"
	"github.com/zjrosen/rolo/internal/log"
	"github.com/zjrosen/rolo/internal/presentation"
	"github.com/zjrosen/rolo/internal/tracing"
)

// openService opens the database and builds the application service. The
// returned cleanup closes everything in reverse order and must be called
// even on error paths after a successful return.
func openService(cmd *cobra.Command) (*application.Service, *sqlite.DB, func(), error) {
	if err := config.Validate(cfg); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initializing tracing: %w", err)
	}

	dbPath := cfg.Path
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	db, err := sqlite.NewDB(dbPath)
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, nil, nil, fmt.Errorf("opening database: %w", err)
	}

	svc, err := application.NewService(db.RegistryStore(), provider.Tracer())
	if err != nil {
		_ = db.Close()
		_ = provider.Shutdown(context.Background())
		return nil, nil, nil, err
	}

	cleanup := func() {
		if err := svc.Close(); err != nil {
			log.ErrorErr(log.CatDB, "Closing service", err)
		}
		if err := db.Close(); err != nil {
			log.ErrorErr(log.CatDB, "Closing database", err)
		}
		_ = provider.Shutdown(context.Background())
	}
	return svc, db, cleanup, nil
}

// newFormatter builds a formatter for the configured output mode.
func newFormatter() (*presentation.Formatter, error) {
	output, err := presentation.ParseOutput(cfg.Output)
	if err != nil {
		return nil, err
	}
	return presentation.NewFormatter(os.Stdout, output), nil
}

// selectedBook returns the book a command should operate on: the --book
// flag when set, otherwise the configured default.
func selectedBook(cmd *cobra.Command) string {
	if book, _ := cmd.Flags().GetString("book"); book != "" {
		return book
	}
	return cfg.DefaultBook
}
