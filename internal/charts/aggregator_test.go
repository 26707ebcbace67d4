package charts

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(" " + string(k) + " ")
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := ParseKind("moves"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestAllChartsDegradeIndependently(t *testing.T) {
	f := newFakePokeAPI(t)
	f.listing("type", "fire")
	f.typeDetail("fire", 2)
	f.failWith("/api/v2/type", http.StatusServiceUnavailable)
	f.listing("generation", "generation-i")
	f.generationDetail("generation-i", "bulbasaur")
	f.listing("gender", "female")
	f.genderDetail("female", "bulbasaur")

	agg, rec := newTestAggregator(f)
	all := agg.All(context.Background())

	if all[KindTypes] != nil {
		t.Fatalf("types chart should have failed")
	}
	if all[KindGenerations] == nil || all[KindGendersByGeneration] == nil {
		t.Fatalf("other charts must not be affected: %+v", all)
	}
	if got := rec.all(); len(got) != 1 || got[0] != "Error retrieving pokémon types" {
		t.Fatalf("unexpected reports %v", got)
	}
}

func TestChartUnknownKind(t *testing.T) {
	f := newFakePokeAPI(t)
	agg, rec := newTestAggregator(f)
	if agg.Chart(context.Background(), Kind("moves")) != nil {
		t.Fatalf("unknown kind must yield nil")
	}
	if len(rec.all()) != 0 {
		t.Fatalf("unknown kind is not a pipeline failure")
	}
}

func TestNilReporterIsTolerated(t *testing.T) {
	f := newFakePokeAPI(t)
	f.failWith("/api/v2/type", http.StatusInternalServerError)
	agg, _ := newTestAggregator(f)
	agg.Reporter = nil
	if agg.TypesChart(context.Background()) != nil {
		t.Fatalf("expected nil chart")
	}
}

func TestLatestCancelsSupersededRun(t *testing.T) {
	l := NewLatest()

	first, doneFirst := l.Begin(context.Background(), "u1:types")
	second, doneSecond := l.Begin(context.Background(), "u1:types")
	other, doneOther := l.Begin(context.Background(), "u2:types")

	select {
	case <-first.Done():
	case <-time.After(time.Second):
		t.Fatalf("first run was not cancelled")
	}
	if second.Err() != nil || other.Err() != nil {
		t.Fatalf("newest run and other keys must stay alive")
	}

	// finishing the superseded run must not drop the newer one
	doneFirst()
	if l.InFlight() != 2 {
		t.Fatalf("expected 2 in flight, got %d", l.InFlight())
	}
	doneSecond()
	doneOther()
	if l.InFlight() != 0 {
		t.Fatalf("expected nothing in flight, got %d", l.InFlight())
	}
}

func TestLatestConcurrentBegin(t *testing.T) {
	l := NewLatest()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, done := l.Begin(context.Background(), "k")
			done()
		}()
	}
	wg.Wait()
	if l.InFlight() != 0 {
		t.Fatalf("expected nothing in flight, got %d", l.InFlight())
	}
}
