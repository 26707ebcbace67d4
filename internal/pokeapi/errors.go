package pokeapi

import "fmt"

// NetworkError is any transport, status or decode failure of a PokeAPI GET.
type NetworkError struct {
	URL    string
	Status int // 0 when no response was received
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("pokeapi: GET %s: status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("pokeapi: GET %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
