package charts

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"pokedex/internal/pokeapi"
	"pokedex/pkg/models"
)

// fakePokeAPI serves PokeAPI-shaped JSON under /api/v2.
type fakePokeAPI struct {
	t      *testing.T
	srv    *httptest.Server
	mu     sync.Mutex
	bodies map[string]string
	status map[string]int
}

func newFakePokeAPI(t *testing.T) *fakePokeAPI {
	t.Helper()
	f := &fakePokeAPI{t: t, bodies: map[string]string{}, status: map[string]int{}}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		body, ok := f.bodies[r.URL.Path]
		code := f.status[r.URL.Path]
		f.mu.Unlock()
		if code != 0 {
			http.Error(w, "upstream failure", code)
			return
		}
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakePokeAPI) base() string { return f.srv.URL + "/api/v2" }

func (f *fakePokeAPI) detailPath(resource, name string) string {
	return fmt.Sprintf("/api/v2/%s/%s/", resource, name)
}

func (f *fakePokeAPI) set(path string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		f.t.Fatalf("marshal %s: %v", path, err)
	}
	f.mu.Lock()
	f.bodies[path] = string(b)
	f.mu.Unlock()
}

func (f *fakePokeAPI) failWith(path string, code int) {
	f.mu.Lock()
	f.status[path] = code
	f.mu.Unlock()
}

func (f *fakePokeAPI) listing(resource string, names ...string) {
	page := models.ListingPage{Count: len(names)}
	for _, n := range names {
		page.Results = append(page.Results, models.NamedResource{Name: n, URL: f.srv.URL + f.detailPath(resource, n)})
	}
	f.set("/api/v2/"+resource, page)
}

func (f *fakePokeAPI) typeDetail(name string, pokemonCount int) {
	d := models.TypeDetail{Name: name}
	for i := 0; i < pokemonCount; i++ {
		d.Pokemon = append(d.Pokemon, models.TypePokemon{Slot: 1, Pokemon: models.NamedResource{Name: fmt.Sprintf("%s-%d", name, i)}})
	}
	f.set(f.detailPath("type", name), d)
}

func (f *fakePokeAPI) generationDetail(name string, species ...string) {
	d := models.GenerationDetail{Name: name}
	for _, s := range species {
		d.PokemonSpecies = append(d.PokemonSpecies, models.NamedResource{Name: s})
	}
	f.set(f.detailPath("generation", name), d)
}

func (f *fakePokeAPI) genderDetail(name string, species ...string) {
	d := models.GenderDetail{Name: name}
	for _, s := range species {
		d.PokemonSpeciesDetails = append(d.PokemonSpeciesDetails, models.SpeciesRate{Rate: 4, PokemonSpecies: models.NamedResource{Name: s}})
	}
	f.set(f.detailPath("gender", name), d)
}

type reportRecorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *reportRecorder) Report(message string) {
	r.mu.Lock()
	r.messages = append(r.messages, message)
	r.mu.Unlock()
}

func (r *reportRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

func newTestAggregator(f *fakePokeAPI) (*Aggregator, *reportRecorder) {
	rec := &reportRecorder{}
	client := pokeapi.NewClient(f.base(), 2*time.Second, nil, zerolog.Nop())
	return NewAggregator(client, f.base(), rec, zerolog.Nop()), rec
}
