package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/garagepay/paytrack/internal/model"
	"github.com/garagepay/paytrack/internal/report"
	"github.com/garagepay/paytrack/internal/sheet"
	"github.com/garagepay/paytrack/internal/tracker"
)

type reportOptions struct {
	rentPath    string
	bankPath    string
	outPath     string
	format      string
	asOf        string
	tolerance   int
	grace       int
	workers     int
	consume     bool
	overdueOnly bool
}

var writers = map[string]func(io.Writer, *report.Report) error{
	"xlsx": sheet.WriteXLSX,
	"csv":  sheet.WriteCSV,
	"json": sheet.WriteJSON,
}

func newReportCommand(a *app) *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Match a rental schedule against a bank statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("tolerance") {
				a.cfg.Matching.ToleranceDays = opts.tolerance
			}
			if flags.Changed("grace") {
				a.cfg.Status.GraceDays = opts.grace
			}
			if flags.Changed("workers") {
				a.cfg.Matching.Workers = opts.workers
			}
			if flags.Changed("consume") {
				a.cfg.Matching.ConsumeOnMatch = opts.consume
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return runReport(cmd, a, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.rentPath, "rent", "", "rental schedule (.xlsx, .xls, .csv)")
	f.StringVar(&opts.bankPath, "bank", "", "bank statement (.xlsx, .xls, .csv)")
	f.StringVarP(&opts.outPath, "out", "o", "", "output file, - for stdout (default payment_report_<timestamp>.<format>)")
	f.StringVar(&opts.format, "format", "", "output format: xlsx, csv, json (default from --out extension, else xlsx)")
	f.StringVar(&opts.asOf, "as-of", "", "evaluation date YYYY-MM-DD (default today)")
	f.IntVar(&opts.tolerance, "tolerance", 0, "days a payment may differ from the due date")
	f.IntVar(&opts.grace, "grace", 0, "days after the due date before a payment is overdue")
	f.IntVar(&opts.workers, "workers", 0, "obligations evaluated concurrently")
	f.BoolVar(&opts.consume, "consume", false, "let each bank payment settle only one obligation")
	f.BoolVar(&opts.overdueOnly, "overdue-only", false, "write only overdue payments")
	_ = cmd.MarkFlagRequired("rent")
	_ = cmd.MarkFlagRequired("bank")

	return cmd
}

func runReport(cmd *cobra.Command, a *app, opts reportOptions) error {
	var asOf time.Time
	if opts.asOf != "" {
		t, err := time.Parse(time.DateOnly, opts.asOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of %q: use YYYY-MM-DD", opts.asOf)
		}
		asOf = t
	}

	format, err := resolveFormat(opts.format, opts.outPath)
	if err != nil {
		return err
	}

	rent, err := sheet.OpenRent(opts.rentPath)
	if err != nil {
		return err
	}
	bank, err := sheet.OpenBank(opts.bankPath)
	if err != nil {
		return err
	}

	svc := tracker.NewService(*a.cfg, a.logger)
	rep, err := svc.Generate(cmd.Context(), rent, bank, asOf)
	if err != nil {
		return err
	}
	if opts.overdueOnly {
		if rep, err = rep.OnlyOverdue(); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := writers[format](&buf, rep); err != nil {
		return err
	}

	out := opts.outPath
	if out == "-" {
		_, err := buf.WriteTo(cmd.OutOrStdout())
		return err
	}
	if out == "" {
		out = fmt.Sprintf("payment_report_%s.%s", time.Now().Format("20060102_150405"), format)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	printSummary(cmd.OutOrStdout(), rep)
	fmt.Fprintf(cmd.OutOrStdout(), "\nReport written to %s\n", out)
	return nil
}

func resolveFormat(format, out string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" && out != "" && out != "-" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
	}
	if format == "" {
		format = "xlsx"
	}
	if _, ok := writers[format]; !ok {
		return "", fmt.Errorf("unknown format %q: use xlsx, csv or json", format)
	}
	if format == "xlsx" && out == "-" {
		return "", fmt.Errorf("xlsx output cannot be written to stdout")
	}
	return format, nil
}

func printSummary(w io.Writer, rep *report.Report) {
	s := rep.Summary
	fmt.Fprintf(w, "Payment report %s as of %s\n", rep.ID, rep.AsOf.Format(time.DateOnly))
	fmt.Fprintf(w, "  %-10s %d\n", "garages:", s.TotalGarages)
	for _, st := range model.Statuses {
		fmt.Fprintf(w, "  %-10s %d (%s)\n", strings.ToLower(string(st))+":", s.StatusBreakdown[st], st.Label())
	}

	overdue, _ := rep.Overdue()
	if len(overdue) == 0 {
		return
	}
	fmt.Fprintln(w, "\nOverdue:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range overdue {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", r.GarageName, r.ExpectedPaymentDate.Format(time.DateOnly), r.PaymentAmount.StringFixed(2), r.TenantName)
	}
	tw.Flush()
}
