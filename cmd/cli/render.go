package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"pokedex/pkg/models"
)

// renderChart prints a chart as a table: one row per label, one column per
// dataset.
func renderChart(w io.Writer, name string, chart *models.ChartSeries) {
	fmt.Fprintf(w, "== %s ==\n", name)
	if chart == nil {
		fmt.Fprintln(w, "(unavailable)")
		return
	}
	if len(chart.Labels) == 0 {
		fmt.Fprintln(w, "(no data)")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{""}
	for _, ds := range chart.Datasets {
		header = append(header, ds.Label)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for i, label := range chart.Labels {
		row := []string{label}
		for _, ds := range chart.Datasets {
			v := ""
			if i < len(ds.Data) {
				v = fmt.Sprint(ds.Data[i])
			}
			row = append(row, v)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}
