package directory

import (
	"context"

	"github.com/singerjob/singerjob/internal/domain/opportunity"
	"github.com/singerjob/singerjob/internal/filter"
	"github.com/singerjob/singerjob/internal/store"
)

type Opportunities struct {
	store store.Store
}

func NewOpportunities(s store.Store) *Opportunities {
	return &Opportunities{store: s}
}

// GetAll reads the opportunity catalog in stored order.
func (d *Opportunities) GetAll(ctx context.Context) ([]opportunity.Opportunity, error) {
	items, _, err := store.Load[[]opportunity.Opportunity](ctx, d.store, store.KeyCatalog)

	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []opportunity.Opportunity{}
	}

	return items, nil
}

// Search keeps opportunities whose title, description or art type
// contains the query, case-insensitively.
func (d *Opportunities) Search(ctx context.Context, query string) ([]opportunity.Opportunity, error) {
	all, err := d.GetAll(ctx)

	if err != nil {
		return nil, err
	}

	out := make([]opportunity.Opportunity, 0, len(all))

	for _, opp := range all {
		if filter.MatchOpportunity(opp, query) {
			out = append(out, opp)
		}
	}

	return out, nil
}

// GetByIDs resolves saved-id sets back into catalog entries, keeping
// catalog order and skipping ids no longer present upstream.
func (d *Opportunities) GetByIDs(ctx context.Context, ids []string) ([]opportunity.Opportunity, error) {
	all, err := d.GetAll(ctx)

	if err != nil {
		return nil, err
	}

	want := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		want[id] = struct{}{}
	}

	out := make([]opportunity.Opportunity, 0, len(ids))

	for _, opp := range all {
		if _, ok := want[opp.ID]; ok {
			out = append(out, opp)
		}
	}

	return out, nil
}
