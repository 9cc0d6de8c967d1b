package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sales_ledger/internal/config"
	"sales_ledger/internal/logging"
	"sales_ledger/internal/sales"
)

// app is the wiring shared by every command.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *sales.Service
	now     func() time.Time
}

func newApp(cmd *cobra.Command) (*app, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		return nil, err
	}

	records := sales.SampleRecords()
	if cfg.RecordsFile != "" {
		records, err = sales.LoadRecords(cfg.RecordsFile)
		if err != nil {
			return nil, err
		}
		logger.Info("records loaded", zap.String("file", cfg.RecordsFile), zap.Int("count", len(records)))
	}

	storage, err := sales.NewLocalStorage(records...)
	if err != nil {
		return nil, fmt.Errorf("failed to seed storage: %w", err)
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		service: sales.NewService(storage, logger, cfg.CacheSize),
		now:     cfg.Clock(),
	}, nil
}

// queryFlags are the view controls shared by the query and export commands.
type queryFlags struct {
	start, end, preset, ref string
	sort, dir               string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "first date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "last date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.preset, "preset", "", "date preset: today, week or month")
	cmd.Flags().StringVar(&f.ref, "ref", "", "reference date for --preset (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.sort, "sort", string(sales.SortByDate), "sort column: date, product, quantity, unitPrice or total")
	cmd.Flags().StringVar(&f.dir, "dir", string(sales.Descending), "sort direction: asc or desc")
}

func (f *queryFlags) request(now func() time.Time) (sales.QueryRequest, error) {
	req := sales.QueryRequest{
		Sort: sales.SortSpec{Key: sales.SortKey(f.sort), Direction: sales.ParseDirection(f.dir)},
	}

	if f.preset != "" {
		ref := now()
		if f.ref != "" {
			t, err := time.ParseInLocation(sales.DateLayout, f.ref, ref.Location())
			if err != nil {
				return req, fmt.Errorf("invalid --ref %q: %w", f.ref, err)
			}
			ref = t
		}
		req.Window = sales.ResolvePreset(sales.Preset(f.preset), ref)
		return req, nil
	}

	var err error
	if f.start != "" {
		if req.Window.Start, err = sales.ParseDate(f.start); err != nil {
			return req, fmt.Errorf("invalid --start %q: %w", f.start, err)
		}
	}
	if f.end != "" {
		if req.Window.End, err = sales.ParseDate(f.end); err != nil {
			return req, fmt.Errorf("invalid --end %q: %w", f.end, err)
		}
	}
	return req, nil
}
