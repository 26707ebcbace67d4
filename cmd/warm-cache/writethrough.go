package main

import (
	"context"
	"encoding/json"

	"pokedex/internal/pokeapi"
)

// writeThrough fetches every URL fresh and stores the body in cache,
// ignoring what the cache already holds.
type writeThrough struct {
	client *pokeapi.Client
	cache  *pokeapi.SQLCache
}

func (w writeThrough) Get(ctx context.Context, url string, _ bool, out any) error {
	var raw json.RawMessage
	if err := w.client.Get(ctx, url, false, &raw); err != nil {
		return err
	}
	if err := w.cache.Put(ctx, w.client.Resolve(url), raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
