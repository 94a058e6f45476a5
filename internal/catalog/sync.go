// Package catalog refreshes the local opportunity catalog from the
// upstream marketplace. The directory stays a pure read-through of the
// store; only the syncer writes the catalog key.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/singerjob/singerjob/internal/domain/opportunity"
	"github.com/singerjob/singerjob/internal/store"
)

// Fetcher is the slice of the upstream client the syncer needs.
type Fetcher interface {
	FetchOpportunities(ctx context.Context, spec opportunity.FilterSpec) ([]opportunity.Opportunity, error)
}

type Syncer struct {
	fetcher Fetcher
	store   store.Store
	log     *slog.Logger
}

func NewSyncer(f Fetcher, s store.Store, log *slog.Logger) *Syncer {
	return &Syncer{fetcher: f, store: s, log: log}
}

// Sync replaces the stored catalog with the upstream one. A fetch or
// write failure leaves the previous catalog in place.
func (s *Syncer) Sync(ctx context.Context) (int, error) {
	items, err := s.fetcher.FetchOpportunities(ctx, opportunity.FilterSpec{})

	if err != nil {
		return 0, fmt.Errorf("catalog sync: fetch: %w", err)
	}

	if err := store.Save(ctx, s.store, store.KeyCatalog, items); err != nil {
		return 0, fmt.Errorf("catalog sync: save: %w", err)
	}

	s.log.Info("catalog synced", "count", len(items))

	return len(items), nil
}
