package charts

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"pokedex/internal/pokeapi"
	"pokedex/pkg/models"
)

// Aggregator builds the dashboard charts from PokeAPI. Every chart method
// returns nil on failure after logging the cause and reporting a message to
// Reporter; a cancelled context also yields nil but is not reported.
type Aggregator struct {
	API      pokeapi.Getter
	BaseURL  string
	Reporter Reporter
	Log      zerolog.Logger
}

func NewAggregator(api pokeapi.Getter, baseURL string, reporter Reporter, log zerolog.Logger) *Aggregator {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Aggregator{
		API:      api,
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Reporter: reporter,
		Log:      log,
	}
}

// Chart builds the chart named by kind.
func (a *Aggregator) Chart(ctx context.Context, kind Kind) *models.ChartSeries {
	switch kind {
	case KindTypes:
		return a.TypesChart(ctx)
	case KindGenerations:
		return a.GenerationsChart(ctx)
	case KindGendersByGeneration:
		return a.GendersByGenerationChart(ctx)
	}
	a.Log.Warn().Str("chart", string(kind)).Msg("unknown chart requested")
	return nil
}

// All builds every chart concurrently. Each entry degrades to nil on its
// own failure.
func (a *Aggregator) All(ctx context.Context) map[Kind]*models.ChartSeries {
	kinds := Kinds()
	results := make([]*models.ChartSeries, len(kinds))

	var wg sync.WaitGroup
	for i, k := range kinds {
		i, k := i, k
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = a.Chart(ctx, k)
		}()
	}
	wg.Wait()

	out := make(map[Kind]*models.ChartSeries, len(kinds))
	for i, k := range kinds {
		out[k] = results[i]
	}
	return out
}

func (a *Aggregator) endpoint(path string) string {
	return a.BaseURL + path
}

func (a *Aggregator) listing(ctx context.Context, path string) (models.ListingPage, error) {
	return pokeapi.FetchListing(ctx, a.API, a.endpoint(path))
}

// fail logs and reports a stage failure unless ctx was cancelled.
func (a *Aggregator) fail(ctx context.Context, kind Kind, stage string, err error, message string) {
	if ctx.Err() != nil {
		a.Log.Debug().Err(err).Str("chart", string(kind)).Str("stage", stage).Msg("chart aggregation cancelled")
		return
	}
	a.Log.Error().Err(err).Str("chart", string(kind)).Str("stage", stage).Msg(message)
	a.reporter().Report(message)
}

func (a *Aggregator) reporter() Reporter {
	if a.Reporter == nil {
		return nopReporter{}
	}
	return a.Reporter
}

func fetchRecords[T any](ctx context.Context, g pokeapi.Getter, endpoint string, normalize func(T) Record) ([]Record, error) {
	page, err := pokeapi.FetchListing(ctx, g, endpoint)
	if err != nil {
		return nil, err
	}
	return fetchDetailRecords(ctx, g, page.Results, normalize)
}

func fetchDetailRecords[T any](ctx context.Context, g pokeapi.Getter, refs []models.NamedResource, normalize func(T) Record) ([]Record, error) {
	details, err := pokeapi.FetchAllDetails[T](ctx, g, refs)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(details))
	for _, d := range details {
		records = append(records, normalize(d))
	}
	return records, nil
}
