package pokeapi

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"pokedex/pkg/models"
)

// FetchListing reads the first page of a catalog endpoint. Next is not
// followed.
func FetchListing(ctx context.Context, g Getter, endpoint string) (models.ListingPage, error) {
	var page models.ListingPage
	if err := g.Get(ctx, endpoint, true, &page); err != nil {
		return models.ListingPage{}, fmt.Errorf("listing %s: %w", endpoint, err)
	}
	return page, nil
}

// FetchAllDetails requests every ref concurrently and returns the decoded
// details in the order of refs. It is all-or-nothing: the first failure
// cancels the remaining requests and no partial result is returned.
func FetchAllDetails[T any](ctx context.Context, g Getter, refs []models.NamedResource) ([]T, error) {
	out := make([]T, len(refs))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, ref := range refs {
		i, ref := i, ref
		eg.Go(func() error {
			var v T
			if err := g.Get(egCtx, ref.URL, true, &v); err != nil {
				return fmt.Errorf("detail %s: %w", ref.Name, err)
			}
			out[i] = v
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
