package charts

import (
	"context"
	"fmt"
	"slices"

	"pokedex/pkg/models"
)

// SortOrder is a per-chart sort policy on member counts.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// PopulationSpec describes how a single-list population chart is shaped.
type PopulationSpec struct {
	Label  string
	Order  SortOrder
	Format func(name string) (string, error)
}

var (
	typesSpec = PopulationSpec{
		Label:  "Pokémons of this type",
		Order:  Descending,
		Format: func(name string) (string, error) { return Capitalize(name), nil },
	}
	generationsSpec = PopulationSpec{
		Label:  "Pokémons of this generation",
		Order:  Ascending,
		Format: FormatGeneration,
	}
)

// TypesChart counts Pokémon per type, largest first.
func (a *Aggregator) TypesChart(ctx context.Context) *models.ChartSeries {
	const msg = "Error retrieving pokémon types"

	records, err := fetchRecords(ctx, a.API, a.endpoint("/type"), FromType)
	if err != nil {
		a.fail(ctx, KindTypes, "fetch", err, msg)
		return nil
	}
	series, err := PopulationSeries(records, typesSpec)
	if err != nil {
		a.fail(ctx, KindTypes, "shape", err, msg)
		return nil
	}
	return series
}

// GenerationsChart counts species per generation, smallest first.
func (a *Aggregator) GenerationsChart(ctx context.Context) *models.ChartSeries {
	const msg = "Error retrieving pokémon generations"

	records, err := fetchRecords(ctx, a.API, a.endpoint("/generation"), FromGeneration)
	if err != nil {
		a.fail(ctx, KindGenerations, "fetch", err, msg)
		return nil
	}
	series, err := PopulationSeries(records, generationsSpec)
	if err != nil {
		a.fail(ctx, KindGenerations, "shape", err, msg)
		return nil
	}
	return series
}

// PopulationSeries drops empty records, stable-sorts the rest by member
// count and shapes them into a single-dataset chart.
func PopulationSeries(records []Record, spec PopulationSpec) (*models.ChartSeries, error) {
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Count() > 0 {
			kept = append(kept, r)
		}
	}

	slices.SortStableFunc(kept, func(x, y Record) int {
		if spec.Order == Descending {
			return y.Count() - x.Count()
		}
		return x.Count() - y.Count()
	})

	labels := make([]string, 0, len(kept))
	data := make([]int, 0, len(kept))
	for _, r := range kept {
		label, err := spec.Format(r.Name)
		if err != nil {
			return nil, fmt.Errorf("label %s: %w", r.Kind, err)
		}
		labels = append(labels, label)
		data = append(data, r.Count())
	}

	colors := GenerateColors(len(data))
	return &models.ChartSeries{
		Labels: labels,
		Datasets: []models.Dataset{{
			Label:           spec.Label,
			Data:            data,
			BackgroundColor: colors.Background,
			BorderColor:     colors.Border,
			BorderWidth:     2,
		}},
	}, nil
}
