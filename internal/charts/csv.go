package charts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"pokedex/pkg/models"
)

// WriteCSV writes chart as a table with a label column followed by one
// column per dataset.
func WriteCSV(w io.Writer, chart *models.ChartSeries) error {
	if chart == nil {
		return fmt.Errorf("write csv: no chart")
	}

	cw := csv.NewWriter(w)
	header := make([]string, 0, len(chart.Datasets)+1)
	header = append(header, "label")
	for _, ds := range chart.Datasets {
		header = append(header, ds.Label)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, label := range chart.Labels {
		row := make([]string, 0, len(header))
		row = append(row, label)
		for _, ds := range chart.Datasets {
			if i >= len(ds.Data) {
				return fmt.Errorf("write csv: dataset %q has %d values for %d labels", ds.Label, len(ds.Data), len(chart.Labels))
			}
			row = append(row, strconv.Itoa(ds.Data[i]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
