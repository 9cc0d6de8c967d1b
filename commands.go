package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sales_ledger/api"
	"sales_ledger/internal/export"
	"sales_ledger/internal/sales"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger view over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			if !a.cfg.Development {
				gin.SetMode(gin.ReleaseMode)
			}
			r := gin.New()
			r.Use(gin.Recovery())
			api.InitRoutes(r, a.service, a.logger, a.now)

			addr := ":" + strconv.Itoa(a.cfg.Port)
			a.logger.Info("starting server", zap.String("addr", addr))
			if err := r.Run(addr); err != nil {
				return fmt.Errorf("error trying to start server: %w", err)
			}
			return nil
		},
	}
}

func newQueryCmd() *cobra.Command {
	var flags queryFlags
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the filtered, sorted ledger and its summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			req, err := flags.request(a.now)
			if err != nil {
				return err
			}
			view, err := a.service.Query(req)
			if err != nil {
				return err
			}
			renderView(cmd.OutOrStdout(), view)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		flags queryFlags
		out   string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered, sorted ledger to an xlsx workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			req, err := flags.request(a.now)
			if err != nil {
				return err
			}
			view, err := a.service.Query(req)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := export.WriteXLSX(f, view); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", out, err)
			}
			a.logger.Info("workbook written", zap.String("file", out), zap.Int("rows", view.FilteredCount))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "sales.xlsx", "output workbook path")
	return cmd
}

func renderView(w io.Writer, view sales.View) {
	rows := make([][]string, 0, len(view.Records))
	for _, r := range view.Records {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			string(r.Date),
			r.Product,
			strconv.Itoa(r.Quantity),
			r.UnitPrice.StringFixed(2),
			r.Total.StringFixed(2),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Date", "Product", "Qty", "Unit Price", "Total").
		Rows(rows...)
	fmt.Fprintln(w, t.Render())

	s := view.Summary.Rounded()
	fmt.Fprintf(w, "Total revenue:  %s\n", s.TotalRevenue.StringFixed(2))
	fmt.Fprintf(w, "Units sold:     %d\n", s.TotalUnits)
	fmt.Fprintf(w, "Average ticket: %s\n", s.AverageTicket.StringFixed(2))
	fmt.Fprintf(w, "Showing %d of %d records\n", view.FilteredCount, view.TotalCount)
}
