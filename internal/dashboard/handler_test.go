package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pokedex/internal/charts"
	"pokedex/pkg/models"
)

// mapGetter answers PokeAPI URLs from an in-memory map.
type mapGetter map[string]any

func (m mapGetter) Get(ctx context.Context, url string, useCache bool, out any) error {
	v, ok := m[url]
	if !ok {
		return fmt.Errorf("no fixture for %s", url)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

const base = "http://pokeapi.test/api/v2"

func typeFixtures() mapGetter {
	m := mapGetter{}
	page := models.ListingPage{Count: 2}
	for name, n := range map[string]int{"fire": 2, "water": 3} {
		url := base + "/type/" + name + "/"
		page.Results = append(page.Results, models.NamedResource{Name: name, URL: url})
		d := models.TypeDetail{Name: name}
		for i := 0; i < n; i++ {
			d.Pokemon = append(d.Pokemon, models.TypePokemon{Slot: 1, Pokemon: models.NamedResource{Name: fmt.Sprintf("%s-%d", name, i)}})
		}
		m[url] = d
	}
	m[base+"/type"] = page
	return m
}

func newRouter(c Charts) (*gin.Engine, *Handler) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(c, zerolog.Nop())
	r := gin.New()
	h.RegisterRoutes(r.Group("/dashboard"))
	return r, h
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestChartByKind(t *testing.T) {
	agg := charts.NewAggregator(typeFixtures(), base, nil, zerolog.Nop())
	r, _ := newRouter(agg)

	w := get(r, "/dashboard/charts/types")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Kind  string              `json:"kind"`
		Chart *models.ChartSeries `json:"chart"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Kind != "types" || body.Chart == nil {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
	if got := body.Chart.Labels; len(got) != 2 || got[0] != "Water" || got[1] != "Fire" {
		t.Fatalf("labels %v, want [Water Fire]", got)
	}
	if got := body.Chart.Datasets[0].Data; got[0] != 3 || got[1] != 2 {
		t.Fatalf("data %v, want [3 2]", got)
	}
}

func TestChartFailureIsNull(t *testing.T) {
	// no generation fixtures: the chart degrades to null, not an error status
	agg := charts.NewAggregator(typeFixtures(), base, nil, zerolog.Nop())
	r, _ := newRouter(agg)

	w := get(r, "/dashboard/charts/generations")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if want := `{"chart":null,"kind":"generations"}`; w.Body.String() != want {
		t.Fatalf("body %s, want %s", w.Body.String(), want)
	}
}

func TestUnknownChart(t *testing.T) {
	r, _ := newRouter(charts.NewAggregator(mapGetter{}, base, nil, zerolog.Nop()))

	w := get(r, "/dashboard/charts/abilities")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
}

func TestAllCharts(t *testing.T) {
	agg := charts.NewAggregator(typeFixtures(), base, nil, zerolog.Nop())
	r, _ := newRouter(agg)

	w := get(r, "/dashboard/charts")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var body map[string]*models.ChartSeries
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 3 {
		t.Fatalf("want 3 entries, got %v", body)
	}
	if body["types"] == nil {
		t.Fatal("types chart missing")
	}
	if body["generations"] != nil || body["genders_by_generation"] != nil {
		t.Fatal("charts without fixtures should be null")
	}
}

// blockingCharts blocks its first Chart call until the context ends.
type blockingCharts struct {
	calls   atomic.Int32
	started chan struct{}
}

func (b *blockingCharts) Chart(ctx context.Context, kind charts.Kind) *models.ChartSeries {
	if b.calls.Add(1) == 1 {
		close(b.started)
		<-ctx.Done()
		return nil
	}
	return &models.ChartSeries{Labels: []string{"Fire"}}
}

func (b *blockingCharts) All(ctx context.Context) map[charts.Kind]*models.ChartSeries {
	return nil
}

func TestNewerRequestSupersedes(t *testing.T) {
	fake := &blockingCharts{started: make(chan struct{})}
	r, h := newRouter(fake)

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() { first <- get(r, "/dashboard/charts/types") }()

	select {
	case <-fake.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first request never reached the aggregator")
	}

	w := get(r, "/dashboard/charts/types")
	if w.Code != http.StatusOK {
		t.Fatalf("second request status %d", w.Code)
	}

	select {
	case w1 := <-first:
		if w1.Code != http.StatusConflict {
			t.Fatalf("first request status %d, want 409", w1.Code)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("first request was not cancelled")
	}

	if n := h.Latest.InFlight(); n != 0 {
		t.Fatalf("%d runs still in flight", n)
	}
}

// lateCharts finishes its first chart only once released, ignoring
// cancellation, so a newer request can arrive after the work is done.
type lateCharts struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (l *lateCharts) Chart(ctx context.Context, kind charts.Kind) *models.ChartSeries {
	if l.calls.Add(1) == 1 {
		close(l.started)
		<-l.release
		return &models.ChartSeries{Labels: []string{"Water"}}
	}
	return &models.ChartSeries{Labels: []string{"Fire"}}
}

func (l *lateCharts) All(ctx context.Context) map[charts.Kind]*models.ChartSeries {
	return nil
}

func TestFinishedChartIsServedEvenIfCancelled(t *testing.T) {
	fake := &lateCharts{started: make(chan struct{}), release: make(chan struct{})}
	r, _ := newRouter(fake)

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() { first <- get(r, "/dashboard/charts/types") }()

	select {
	case <-fake.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first request never reached the aggregator")
	}

	// cancels the first run; its chart is already on the way back
	if w := get(r, "/dashboard/charts/types"); w.Code != http.StatusOK {
		t.Fatalf("second request status %d", w.Code)
	}
	close(fake.release)

	select {
	case w := <-first:
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"Water"`) {
			t.Fatalf("first request: status %d body %s", w.Code, w.Body.String())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("first request never finished")
	}
}
