// Package recommend derives a bounded, ranked slice of opportunities
// for the current session's user.
package recommend

import (
	"context"
	"sort"

	"github.com/singerjob/singerjob/internal/directory"
	"github.com/singerjob/singerjob/internal/domain/opportunity"
	"github.com/singerjob/singerjob/internal/domain/user"
	"github.com/singerjob/singerjob/internal/store"
)

// Limit caps every recommendation feed.
const Limit = 5

type Engine struct {
	store store.Store
	opps  *directory.Opportunities
}

func NewEngine(s store.Store, opps *directory.Opportunities) *Engine {
	return &Engine{store: s, opps: opps}
}

// Personal returns the newest opportunities matching the session
// user's art type or location. No session means an empty feed, not an
// error. Match-any relevance, not a scored ranking.
func (e *Engine) Personal(ctx context.Context) ([]opportunity.Opportunity, error) {
	session, found, err := store.Load[user.Stored](ctx, e.store, store.KeySession)

	if err != nil {
		return nil, err
	}

	if !found {
		return []opportunity.Opportunity{}, nil
	}

	all, err := e.opps.GetAll(ctx)

	if err != nil {
		return nil, err
	}

	kept := make([]opportunity.Opportunity, 0, len(all))

	for _, opp := range all {
		if opp.ArtType == session.ArtType || opp.Location == session.Location {
			kept = append(kept, opp)
		}
	}

	return newestFirst(kept), nil
}

// Latest is the session-independent fallback feed: the newest entries
// of the whole catalog.
func (e *Engine) Latest(ctx context.Context) ([]opportunity.Opportunity, error) {
	all, err := e.opps.GetAll(ctx)

	if err != nil {
		return nil, err
	}

	return newestFirst(all), nil
}

// newestFirst sorts descending by DatePosted, stable so catalog order
// breaks ties, then truncates to Limit.
func newestFirst(items []opportunity.Opportunity) []opportunity.Opportunity {
	out := make([]opportunity.Opportunity, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DatePosted.After(out[j].DatePosted)
	})

	if len(out) > Limit {
		out = out[:Limit]
	}

	return out
}
