package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"catalog-dashboard/config"
	"catalog-dashboard/models"
	"catalog-dashboard/presentation"
	"catalog-dashboard/server"
	"catalog-dashboard/services"
	"catalog-dashboard/storage"
	"catalog-dashboard/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var selectionFlags = []cli.Flag{
	&cli.StringSliceFlag{Name: "type", Usage: "content type to include (repeatable; default: all types)"},
	&cli.IntSliceFlag{Name: "year", Usage: "release year to include (repeatable; default: any)"},
	&cli.StringSliceFlag{Name: "country", Usage: "exact country value to include (repeatable; default: any)"},
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "catalog-dashboard",
		Usage: "Explore a media catalog: filter titles and view genre, type and release summaries.",
		// country values such as "France, India" contain commas
		DisableSliceFlagSeparator: true,
		Commands: []*cli.Command{
			{
				Name:   "report",
				Usage:  "Print the dashboard for a selection",
				Flags:  selectionFlags,
				Action: reportAction,
			},
			{
				Name:  "table",
				Usage: "Write the filtered title table as CSV",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default: stdout)"},
				}, selectionFlags...),
				Action: tableAction,
			},
			{
				Name:   "options",
				Usage:  "List the available filter values",
				Action: optionsAction,
			},
			{
				Name:   "serve",
				Usage:  "Serve the dashboard API over HTTP",
				Action: serveAction,
			},
			{
				Name:   "export",
				Usage:  "Load the CSV catalog and store the cleaned titles in PostgreSQL",
				Action: exportAction,
			},
		},
		Action: reportAction,
	}
}

// app bundles the dependencies every command needs.
type app struct {
	cfg      *config.Config
	logger   *utils.Logger
	store    *services.Store
	insights *services.InsightService
	closer   func() error
}

func setup(ctx context.Context) (*app, error) {
	logger := utils.NewLoggerWithOptions("info", "console", os.Stderr)
	cfg, err := config.Load(logger)
	if err != nil {
		return nil, err
	}
	logger = utils.NewLoggerWithOptions(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	a := &app{cfg: cfg, logger: logger, closer: func() error { return nil }}

	var src storage.TitleSource
	switch cfg.DatasetSource {
	case "postgres":
		pg, err := storage.NewPostgresStore(ctx, cfg.DSN(), a.retry())
		if err != nil {
			return nil, err
		}
		src, a.closer = pg, pg.Close
	default:
		src = storage.NewCSVSource(cfg.DatasetPath)
	}

	logger.Info("Dataset source: %s (%s)", cfg.SourceName(), cfg.DatasetSource)
	a.store = services.NewStore(src, services.NewCleaner(logger), logger)
	a.insights = services.NewInsightService(logger, services.InsightOptions{
		CounterTypes: cfg.CounterTypes,
		TopN:         cfg.TopN,
	})
	return a, nil
}

func (a *app) retry() *utils.RetryConfig {
	return &utils.RetryConfig{MaxAttempts: a.cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: a.logger}
}

func (a *app) presentationOptions() presentation.Options {
	return presentation.Options{
		TopN:                a.cfg.TopN,
		WordCloudWidth:      a.cfg.WordCloudWidth,
		WordCloudHeight:     a.cfg.WordCloudHeight,
		WordCloudBackground: a.cfg.WordCloudBackground,
	}
}

// selectionFromFlags mirrors the dashboard's multiselects. Omitting --type
// selects every type; passing only empty --type values selects none.
func selectionFromFlags(c *cli.Context, ds *services.Dataset) models.Selection {
	sel := services.DefaultSelection(ds)
	if c.IsSet("type") {
		sel.Types = nonEmpty(c.StringSlice("type"))
	}
	sel.Years = c.IntSlice("year")
	sel.Countries = nonEmpty(c.StringSlice("country"))
	return sel
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func reportAction(c *cli.Context) error {
	a, err := setup(c.Context)
	if err != nil {
		return err
	}
	defer a.closer()

	ds, err := a.store.Dataset(c.Context)
	if err != nil {
		return err
	}

	report := a.insights.Generate(ds, selectionFromFlags(c, ds))
	presentation.Render(os.Stdout, presentation.Build(report, a.presentationOptions()))
	return nil
}

func tableAction(c *cli.Context) error {
	a, err := setup(c.Context)
	if err != nil {
		return err
	}
	defer a.closer()

	ds, err := a.store.Dataset(c.Context)
	if err != nil {
		return err
	}

	var w storage.TableWriter
	if out := c.String("out"); out != "" {
		fw, err := storage.NewCSVWriter(out)
		if err != nil {
			return err
		}
		w = fw
	} else {
		w = storage.NewCSVStreamWriter(os.Stdout)
	}

	table := presentation.BuildTable(services.Apply(ds, selectionFromFlags(c, ds)).Titles())
	if err := w.WriteTable(table.Columns, table.Rows); err != nil {
		_ = w.Close()
		return err
	}
	a.logger.Info("[table] Wrote %d rows", len(table.Rows))
	return w.Close()
}

func optionsAction(c *cli.Context) error {
	a, err := setup(c.Context)
	if err != nil {
		return err
	}
	defer a.closer()

	ds, err := a.store.Dataset(c.Context)
	if err != nil {
		return err
	}

	fmt.Printf("Types     : %q\n", ds.DistinctTypes())
	fmt.Printf("Years     : %v\n", ds.ReleaseYears())
	fmt.Printf("Countries : %d distinct values\n", len(ds.Countries()))
	for _, country := range ds.Countries() {
		fmt.Printf("  %s\n", country)
	}
	return nil
}

func serveAction(c *cli.Context) error {
	a, err := setup(c.Context)
	if err != nil {
		return err
	}
	defer a.closer()

	// Load up front so a broken source is reported at startup; the API
	// keeps answering 503 until a reload succeeds.
	if _, err := a.store.Dataset(c.Context); err != nil {
		a.logger.Error("[server] Dataset %s unavailable: %v", a.cfg.SourceName(), err)
	}

	srv := server.New(a.store, a.insights, a.presentationOptions(), a.logger)
	return srv.ListenAndServe(c.Context, a.cfg.ListenAddr)
}

func exportAction(c *cli.Context) error {
	a, err := setup(c.Context)
	if err != nil {
		return err
	}
	defer a.closer()

	cleaner := services.NewCleaner(a.logger)
	ds, err := services.Load(c.Context, storage.NewCSVSource(a.cfg.DatasetPath), cleaner)
	if err != nil {
		return err
	}

	pg, err := storage.NewPostgresStore(c.Context, a.cfg.DSN(), a.retry())
	if err != nil {
		a.logger.Error("Failed to connect to PostgreSQL: %v", err)
		return err
	}
	defer pg.Close()

	var w storage.TitleWriter = pg
	if err := w.Write(c.Context, ds.All().Titles()); err != nil {
		return err
	}
	a.logger.Info("[export] Stored %d titles in PostgreSQL (table: titles)", ds.Len())
	return nil
}
