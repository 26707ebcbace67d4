package charts

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"
)

func record(kind RecordKind, name string, n int) Record {
	r := Record{Kind: kind, Name: name}
	for i := 0; i < n; i++ {
		r.Members = append(r.Members, name)
	}
	return r
}

func TestPopulationSeriesTypesExample(t *testing.T) {
	records := []Record{
		record(RecordType, "fire", 52),
		record(RecordType, "water", 105),
		record(RecordType, "bug", 0),
	}
	series, err := PopulationSeries(records, typesSpec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(series.Labels, []string{"Water", "Fire"}) {
		t.Fatalf("unexpected labels %v", series.Labels)
	}
	if len(series.Datasets) != 1 {
		t.Fatalf("expected one dataset, got %d", len(series.Datasets))
	}
	ds := series.Datasets[0]
	if !reflect.DeepEqual(ds.Data, []int{105, 52}) {
		t.Fatalf("unexpected data %v", ds.Data)
	}
	if ds.Label != "Pokémons of this type" || ds.BorderWidth != 2 {
		t.Fatalf("unexpected dataset meta %+v", ds)
	}
	if len(ds.BackgroundColor) != 2 || len(ds.BorderColor) != 2 {
		t.Fatalf("expected one color per label, got %d/%d", len(ds.BackgroundColor), len(ds.BorderColor))
	}
}

func TestPopulationSeriesSortDirections(t *testing.T) {
	records := []Record{
		record(RecordGeneration, "generation-i", 151),
		record(RecordGeneration, "generation-ii", 100),
		record(RecordGeneration, "generation-iii", 135),
		record(RecordGeneration, "generation-iv", 107),
		record(RecordGeneration, "generation-v", 156),
	}

	asc, err := PopulationSeries(records, generationsSpec)
	if err != nil {
		t.Fatalf("generations: %v", err)
	}
	data := asc.Datasets[0].Data
	for i := 1; i < len(data); i++ {
		if data[i] < data[i-1] {
			t.Fatalf("generations must be non-decreasing: %v", data)
		}
	}
	if asc.Labels[0] != "Generation-II" {
		t.Fatalf("expected smallest generation first, got %v", asc.Labels)
	}

	desc, err := PopulationSeries(records, PopulationSpec{Label: "x", Order: Descending, Format: FormatGeneration})
	if err != nil {
		t.Fatalf("descending: %v", err)
	}
	data = desc.Datasets[0].Data
	for i := 1; i < len(data); i++ {
		if data[i] > data[i-1] {
			t.Fatalf("types order must be non-increasing: %v", data)
		}
	}
}

func TestPopulationSeriesStableTies(t *testing.T) {
	records := []Record{
		record(RecordType, "rock", 10),
		record(RecordType, "ice", 10),
		record(RecordType, "dark", 10),
	}
	series, err := PopulationSeries(records, typesSpec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(series.Labels, []string{"Rock", "Ice", "Dark"}) {
		t.Fatalf("ties must keep listing order, got %v", series.Labels)
	}
}

func TestPopulationSeriesAllEmpty(t *testing.T) {
	series, err := PopulationSeries([]Record{record(RecordType, "unknown", 0)}, typesSpec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series.Labels) != 0 || len(series.Datasets[0].Data) != 0 {
		t.Fatalf("expected an empty chart, got %+v", series)
	}
}

func TestPopulationSeriesFormatError(t *testing.T) {
	_, err := PopulationSeries([]Record{record(RecordGeneration, "generationi", 3)}, generationsSpec)
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestTypesChartEndToEnd(t *testing.T) {
	f := newFakePokeAPI(t)
	f.listing("type", "fire", "water", "bug")
	f.typeDetail("fire", 52)
	f.typeDetail("water", 105)
	f.typeDetail("bug", 0)

	agg, rec := newTestAggregator(f)
	series := agg.TypesChart(context.Background())
	if series == nil {
		t.Fatalf("expected chart, got nil (reports: %v)", rec.all())
	}
	if !reflect.DeepEqual(series.Labels, []string{"Water", "Fire"}) {
		t.Fatalf("unexpected labels %v", series.Labels)
	}
	if !reflect.DeepEqual(series.Datasets[0].Data, []int{105, 52}) {
		t.Fatalf("unexpected data %v", series.Datasets[0].Data)
	}
	if len(rec.all()) != 0 {
		t.Fatalf("unexpected reports %v", rec.all())
	}
}

func TestTypesChartDetailFailureReportsAndReturnsNil(t *testing.T) {
	f := newFakePokeAPI(t)
	f.listing("type", "fire", "water")
	f.typeDetail("fire", 52)
	f.typeDetail("water", 105)
	f.failWith(f.detailPath("type", "water"), http.StatusInternalServerError)

	agg, rec := newTestAggregator(f)
	if series := agg.TypesChart(context.Background()); series != nil {
		t.Fatalf("expected nil chart on partial failure, got %+v", series)
	}
	if !reflect.DeepEqual(rec.all(), []string{"Error retrieving pokémon types"}) {
		t.Fatalf("unexpected reports %v", rec.all())
	}
}

func TestGenerationsChartMalformedNameReports(t *testing.T) {
	f := newFakePokeAPI(t)
	f.listing("generation", "generation-i", "generationx")
	f.generationDetail("generation-i", "bulbasaur")
	f.generationDetail("generationx", "missingno")

	agg, rec := newTestAggregator(f)
	if series := agg.GenerationsChart(context.Background()); series != nil {
		t.Fatalf("expected nil chart, got %+v", series)
	}
	if !reflect.DeepEqual(rec.all(), []string{"Error retrieving pokémon generations"}) {
		t.Fatalf("unexpected reports %v", rec.all())
	}
}

func TestChartCancelledIsNotReported(t *testing.T) {
	f := newFakePokeAPI(t)
	f.listing("type", "fire")
	f.typeDetail("fire", 3)

	agg, rec := newTestAggregator(f)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if series := agg.TypesChart(ctx); series != nil {
		t.Fatalf("expected nil chart for cancelled context")
	}
	if len(rec.all()) != 0 {
		t.Fatalf("cancellation must not be reported, got %v", rec.all())
	}
}
