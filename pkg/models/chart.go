package models

// ChartSeries is the labeled-series shape consumed by the chart widgets.
// Every dataset's Data is index-aligned with Labels.
type ChartSeries struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label           string   `json:"label"`
	Data            []int    `json:"data"`
	BackgroundColor []string `json:"backgroundColor"`
	BorderColor     []string `json:"borderColor,omitempty"`
	BorderWidth     int      `json:"borderWidth,omitempty"`
}
