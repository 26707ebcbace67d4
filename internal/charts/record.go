package charts

import "pokedex/pkg/models"

// RecordKind tags which upstream resource a Record was built from.
type RecordKind int

const (
	RecordType RecordKind = iota
	RecordGeneration
	RecordGender
)

func (k RecordKind) String() string {
	switch k {
	case RecordType:
		return "type"
	case RecordGeneration:
		return "generation"
	case RecordGender:
		return "gender"
	}
	return "unknown"
}

// Record is the {name, members} projection every detail resource is
// reduced to before aggregation.
type Record struct {
	Kind    RecordKind
	Name    string
	Members []string
}

func (r Record) Count() int { return len(r.Members) }

func FromType(d models.TypeDetail) Record {
	members := make([]string, 0, len(d.Pokemon))
	for _, p := range d.Pokemon {
		members = append(members, p.Pokemon.Name)
	}
	return Record{Kind: RecordType, Name: d.Name, Members: members}
}

func FromGeneration(d models.GenerationDetail) Record {
	members := make([]string, 0, len(d.PokemonSpecies))
	for _, s := range d.PokemonSpecies {
		members = append(members, s.Name)
	}
	return Record{Kind: RecordGeneration, Name: d.Name, Members: members}
}

func FromGender(d models.GenderDetail) Record {
	members := make([]string, 0, len(d.PokemonSpeciesDetails))
	for _, s := range d.PokemonSpeciesDetails {
		members = append(members, s.PokemonSpecies.Name)
	}
	return Record{Kind: RecordGender, Name: d.Name, Members: members}
}
