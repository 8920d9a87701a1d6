package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
	"github.com/davicafu/consentlab/internal/shared/platform/query"
	sharedUtils "github.com/davicafu/consentlab/internal/shared/utils"
	"github.com/davicafu/consentlab/pkg/logger"
	"github.com/davicafu/consentlab/pkg/utils"
)

// listFlags son las opciones comunes de todos los listados.
type listFlags struct {
	page     int
	pageSize int
	sort     string
	desc     bool
	status   string
	search   string
	groupBy  string
	output   string
}

func (f listFlags) query(criteria sharedDomain.Criteria) query.ListQuery {
	return query.ListQuery{
		Criteria: criteria,
		Sort:     query.Sort{Field: f.sort, Desc: f.desc},
		Page:     listview.PageState{CurrentPage: f.page, PageSize: f.pageSize},
	}
}

// NewRootCmd construye portalctl con un subcomando por vista del portal.
func NewRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "portalctl",
		Short:         "Browse the building-consent portal datasets from the terminal",
		SilenceUsage: true,
		Example: `  # Second page of approved applications, newest first
  portalctl applications --status approved --sort lodged_at --desc --page 2

  # Referrals per department
  portalctl referrals --group-by department`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.Init(logLevel)
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "error", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newApplicationsCmd(),
		newReferralsCmd(),
		newDocumentsCmd(),
		newTasksCmd(),
	)
	return cmd
}

// addListFlags registra los flags comunes. statusUsage vacío = sin --status.
func addListFlags(cmd *cobra.Command, f *listFlags, statusUsage string) {
	cmd.Flags().IntVar(&f.page, "page", 1, "page number (1-based)")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 10, "items per page")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort field")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort descending")
	cmd.Flags().StringVar(&f.search, "search", "", "free text search")
	cmd.Flags().StringVar(&f.groupBy, "group-by", "", "print counts grouped by this field instead of a page")
	cmd.Flags().StringVarP(&f.output, "output", "o", "table", "output format: table or json")
	if statusUsage != "" {
		cmd.Flags().StringVar(&f.status, "status", "", statusUsage)
	}
}

// view es lo que cada subcomando aporta: cómo listar, cómo contar y cómo pintar una fila.
type view[T any] struct {
	list    func(cmd *cobra.Command, q query.ListQuery) (listview.PageResult[T], error)
	stats   func(cmd *cobra.Command, criteria sharedDomain.Criteria, field string) ([]listview.Count[string], error)
	headers []string
	row     func(T) []string
}

func (v view[T]) run(cmd *cobra.Command, f listFlags, criteria sharedDomain.Criteria) error {
	if f.output != "table" && f.output != "json" {
		return fmt.Errorf("%w: unknown output %q", sharedDomain.ErrInvalidArgument, f.output)
	}

	if f.groupBy != "" {
		counts, err := v.stats(cmd, criteria, f.groupBy)
		if err != nil {
			return err
		}
		return printCounts(cmd, f, counts)
	}

	page, err := v.list(cmd, f.query(criteria))
	if err != nil {
		return err
	}
	logger.Sugar().Debugf("page %d/%d sorted %s %s", page.CurrentPage, page.TotalPages, f.sort, sharedUtils.Ternary(f.desc, "desc", "asc"))

	out := cmd.OutOrStdout()
	if f.output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(utils.NewPageResponse(page))
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(v.headers, "\t"))
	for _, item := range page.Items {
		fmt.Fprintln(tw, strings.Join(v.row(item), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "page %d of %d (%d items)\n", page.CurrentPage, page.TotalPages, page.TotalItems)
	return nil
}

func printCounts(cmd *cobra.Command, f listFlags, counts []listview.Count[string]) error {
	out := cmd.OutOrStdout()
	if f.output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(counts)
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tCOUNT\n", strings.ToUpper(f.groupBy))
	for _, c := range counts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Key, c.Count)
	}
	return tw.Flush()
}

// date deja "-" cuando no hay fecha.
func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}
