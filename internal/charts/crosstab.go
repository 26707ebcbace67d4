package charts

import (
	"context"
	"fmt"

	"pokedex/pkg/models"
)

// CrossTab holds, for each generation in listing order, how many of its
// species fall in each recognised gender bucket.
type CrossTab struct {
	Generations []string
	Totals      []int
	Genders     []Gender // recognised genders in listing order
	Counts      map[Gender][]int
}

// CrossTabulate joins gender membership with generation membership by
// species name. Genders that are not female, male or genderless are left
// out and returned in skipped.
func CrossTabulate(genders, generations []Record) (tab CrossTab, skipped []string) {
	buckets := make(map[Gender]map[string]struct{}, 3)
	for _, g := range genders {
		gender := ParseGender(g.Name)
		if gender == GenderUnrecognized {
			skipped = append(skipped, g.Name)
			continue
		}
		if _, dup := buckets[gender]; dup {
			continue
		}
		set := make(map[string]struct{}, len(g.Members))
		for _, m := range g.Members {
			set[m] = struct{}{}
		}
		buckets[gender] = set
		tab.Genders = append(tab.Genders, gender)
	}

	tab.Counts = make(map[Gender][]int, len(tab.Genders))
	for _, gender := range tab.Genders {
		tab.Counts[gender] = make([]int, len(generations))
	}
	tab.Generations = make([]string, 0, len(generations))
	tab.Totals = make([]int, 0, len(generations))

	for i, gen := range generations {
		tab.Generations = append(tab.Generations, gen.Name)
		tab.Totals = append(tab.Totals, gen.Count())
		for _, species := range gen.Members {
			for _, gender := range tab.Genders {
				if _, ok := buckets[gender][species]; ok {
					tab.Counts[gender][i]++
				}
			}
		}
	}
	return tab, skipped
}

// GenderSeries shapes a CrossTab into one dataset per gender.
func GenderSeries(tab CrossTab) (*models.ChartSeries, error) {
	labels := make([]string, 0, len(tab.Generations))
	for _, name := range tab.Generations {
		label, err := FormatGeneration(name)
		if err != nil {
			return nil, fmt.Errorf("generation label: %w", err)
		}
		labels = append(labels, label)
	}

	datasets := make([]models.Dataset, 0, len(tab.Genders))
	for _, gender := range tab.Genders {
		datasets = append(datasets, models.Dataset{
			Label:           gender.String(),
			Data:            tab.Counts[gender],
			BackgroundColor: []string{gender.Color()},
		})
	}
	return &models.ChartSeries{Labels: labels, Datasets: datasets}, nil
}

// GendersByGenerationChart cross-tabulates gender buckets against every
// generation's species list.
func (a *Aggregator) GendersByGenerationChart(ctx context.Context) *models.ChartSeries {
	const kind = KindGendersByGeneration

	genderPage, err := a.listing(ctx, "/gender")
	if err != nil {
		a.fail(ctx, kind, "gender listing", err, "Error retrieving genders")
		return nil
	}
	genders, err := fetchDetailRecords(ctx, a.API, genderPage.Results, FromGender)
	if err != nil {
		a.fail(ctx, kind, "gender details", err, "Error retrieving gender details")
		return nil
	}

	genPage, err := a.listing(ctx, "/generation")
	if err != nil {
		a.fail(ctx, kind, "generation listing", err, "Error fetching generations")
		return nil
	}
	generations, err := fetchDetailRecords(ctx, a.API, genPage.Results, FromGeneration)
	if err != nil {
		a.fail(ctx, kind, "generation details", err, "Error retrieving generation details")
		return nil
	}

	tab, skipped := CrossTabulate(genders, generations)
	if len(skipped) > 0 {
		a.Log.Warn().Strs("genders", skipped).Msg("unrecognized genders left out of the chart")
	}

	series, err := GenderSeries(tab)
	if err != nil {
		a.fail(ctx, kind, "shape", err, "Error retrieving pokémon genders per generation")
		return nil
	}
	return series
}
