package models

// NamedResource is the {name, url} descriptor PokeAPI uses for every link
// between resources.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListingPage is one page of a paginated catalog endpoint such as /type.
// Only Results of the first page are used; Next is never followed.
type ListingPage struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

type TypePokemon struct {
	Slot    int           `json:"slot"`
	Pokemon NamedResource `json:"pokemon"`
}

// TypeDetail is the subset of GET /type/{id} the dashboard reads.
type TypeDetail struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	Generation NamedResource `json:"generation"`
	Pokemon    []TypePokemon `json:"pokemon"`
}

// GenerationDetail is the subset of GET /generation/{id} the dashboard reads.
type GenerationDetail struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	MainRegion     NamedResource   `json:"main_region"`
	PokemonSpecies []NamedResource `json:"pokemon_species"`
}

type SpeciesRate struct {
	Rate           int           `json:"rate"`
	PokemonSpecies NamedResource `json:"pokemon_species"`
}

// GenderDetail is the subset of GET /gender/{id} the dashboard reads.
type GenderDetail struct {
	ID                    int             `json:"id"`
	Name                  string          `json:"name"`
	PokemonSpeciesDetails []SpeciesRate   `json:"pokemon_species_details"`
	RequiredForEvolution  []NamedResource `json:"required_for_evolution"`
}
