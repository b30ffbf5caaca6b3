package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	apiclient "github.com/donaldgifford/ml-explorer/internal/api/client"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printProducts(w io.Writer, resp *apiclient.ProductsResponse) error {
	tw := newTabWriter(w)
	if resp.Mock {
		tw.writef("Demo data (%s) for %q\n\n", resp.FallbackReason, resp.Query)
	}
	tw.writef("ID\tTITLE\tBRAND\tPRICE\tSHIPPING\n")
	for i := range resp.Products {
		p := &resp.Products[i]
		shipping := "-"
		if p.FreeShipping {
			shipping = "free"
		}
		tw.writef("%s\t%s\t%s\t%s %.2f\t%s\n",
			p.ID,
			truncate(p.Title, 50),
			truncate(p.Brand, 20),
			p.Currency,
			p.Price,
			shipping,
		)
	}
	tw.writef("\n%d products\n", resp.Total)
	return tw.finish()
}

func printQuota(w io.Writer, q *apiclient.QuotaResponse) error {
	tw := newTabWriter(w)
	if q.Budget == 0 {
		tw.writef("Budget:\tunlimited\n")
	} else {
		tw.writef("Budget:\t%d\n", q.Budget)
		tw.writef("Remaining:\t%d\n", q.Remaining)
	}
	tw.writef("Used:\t%d\n", q.Used)
	if q.ResetAt != nil {
		tw.writef("Resets:\t%s\n", q.ResetAt.Format(time.RFC3339))
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
