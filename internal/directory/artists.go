// Package directory exposes read-through typed views over the store's
// named collections. Absence of a collection is an empty slice, not an
// error; store failures surface as errors for the HTTP boundary to
// degrade.
package directory

import (
	"context"

	"github.com/singerjob/singerjob/internal/domain/user"
	"github.com/singerjob/singerjob/internal/filter"
	"github.com/singerjob/singerjob/internal/store"
)

type Artists struct {
	store store.Store
}

func NewArtists(s store.Store) *Artists {
	return &Artists{store: s}
}

// GetAll reads the artist collection. The password hash never leaves
// this boundary.
func (d *Artists) GetAll(ctx context.Context) ([]user.User, error) {
	records, _, err := store.Load[[]user.Stored](ctx, d.store, store.UsersKey(user.TypeArtist))

	if err != nil {
		return nil, err
	}

	out := make([]user.User, 0, len(records))

	for _, rec := range records {
		u := rec.Record()
		u.PasswordHash = ""
		out = append(out, u)
	}

	return out, nil
}

// Search keeps artists whose name or art type contains the query,
// case-insensitively. An empty query returns everything.
func (d *Artists) Search(ctx context.Context, query string) ([]user.User, error) {
	all, err := d.GetAll(ctx)

	if err != nil {
		return nil, err
	}

	out := make([]user.User, 0, len(all))

	for _, a := range all {
		if filter.MatchArtist(a, query) {
			out = append(out, a)
		}
	}

	return out, nil
}
