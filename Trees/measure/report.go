package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderResults writes one row per (tree, workload) pair. The last column is the
// mean relative to the aa tree on the same workload, when aa was measured.
func renderResults(w io.Writer, cfg WorkloadConfig, results []result) {
	base := make(map[string]float64)
	for _, r := range results {
		if r.Tree == "aa" {
			base[r.Workload] = r.Mean
		}
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle("%s keys, %d samples each", humanize.Comma(int64(cfg.Size)), cfg.Repeat)
	tbl.AppendHeader(table.Row{"Tree", "Workload", "Ops", "ns/op", "stddev", "vs aa"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	for _, r := range results {
		rel := "-"
		if b, ok := base[r.Workload]; ok && b > 0 {
			rel = fmt.Sprintf("%.2fx", r.Mean/b)
		}
		tbl.AppendRow(table.Row{
			r.Tree,
			r.Workload,
			humanize.Comma(int64(r.Ops)),
			humanize.CommafWithDigits(r.Mean, 1),
			humanize.CommafWithDigits(r.Stddev, 1),
			rel,
		})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d measurements", len(results))})
	tbl.Render()
}
