package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/vk/paramgridgo/expand"
	"github.com/vk/paramgridgo/gridfile"
	"github.com/vk/paramgridgo/internal/ctxlog"
)

// App encapsulates the preview tool's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, appConfig *AppConfig) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")
	return &App{outW: outW, logger: logger}
}

// Run loads the parameter tables and prints the preview: per-table rows by
// default, or the full cross product with synthesized unit names when
// Product is set. It never executes any test body.
func (a *App) Run(ctx context.Context, appConfig *AppConfig) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	tables, err := gridfile.Load(ctx, appConfig.GridPath)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	if appConfig.NamePattern != "" {
		expand.SetNamePattern(appConfig.NamePattern)
		defer expand.SetNamePattern("")
	}

	if !appConfig.Product {
		for _, name := range names {
			recs, err := tables[name].Generate(nil)
			if err != nil {
				return fmt.Errorf("parameter table %q: %w", name, err)
			}
			fmt.Fprintf(a.outW, "params %q: %d row(s)\n", name, len(recs))
			for _, rec := range recs {
				fmt.Fprintf(a.outW, "  - %s\n", rec.Label())
			}
		}
		return nil
	}

	// Attach every table, in name order, to one prototype and expand it;
	// merge conflicts across tables surface here as errors.
	suite := expand.NewSuite("grid")
	unit := suite.Case("unit", func(context.Context, *expand.Call) error { return nil })
	for _, name := range names {
		unit.Foreach(tables[name])
	}

	units, err := expand.Expand(suite)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.outW, "%d generated unit(s)\n", len(units))
	for _, u := range units {
		fmt.Fprintf(a.outW, "  %s\n", u.Name())
	}
	return nil
}
