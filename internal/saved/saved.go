// Package saved keeps the persisted set of saved opportunity ids and
// its idempotent membership toggle.
package saved

import (
	"context"
	"fmt"
	"sync"

	"github.com/singerjob/singerjob/internal/store"
)

type Service struct {
	store store.Store

	// The whole set lives under one key, so every read-modify-write
	// serializes on one mutex; two rapid toggles, same id or not,
	// must never both read the same stale set.
	mu sync.Mutex
}

func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// Toggle flips membership of the id in the saved set and returns the
// NEW state: true means now saved, false means now unsaved. A failed
// write leaves the persisted set unchanged.
func (s *Service) Toggle(ctx context.Context, opportunityID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, _, err := store.Load[[]string](ctx, s.store, store.KeySavedOpps)

	if err != nil {
		return false, fmt.Errorf("saved toggle: %w", err)
	}

	idx := -1

	for i, id := range ids {
		if id == opportunityID {
			idx = i
			break
		}
	}

	var updated []string
	var nowSaved bool

	if idx >= 0 {
		updated = append(ids[:idx:idx], ids[idx+1:]...)
		nowSaved = false
	} else {
		updated = append(ids, opportunityID)
		nowSaved = true
	}

	if err := store.Save(ctx, s.store, store.KeySavedOpps, updated); err != nil {
		// state unchanged on failure; report the pre-call membership
		return idx >= 0, fmt.Errorf("saved toggle: %w", err)
	}

	return nowSaved, nil
}

// IDs returns the saved set. Absence is an empty set.
func (s *Service) IDs(ctx context.Context) ([]string, error) {
	ids, _, err := store.Load[[]string](ctx, s.store, store.KeySavedOpps)

	if err != nil {
		return nil, fmt.Errorf("saved ids: %w", err)
	}

	if ids == nil {
		ids = []string{}
	}

	return ids, nil
}

// IsSaved reports current membership for one id.
func (s *Service) IsSaved(ctx context.Context, opportunityID string) (bool, error) {
	ids, err := s.IDs(ctx)

	if err != nil {
		return false, err
	}

	for _, id := range ids {
		if id == opportunityID {
			return true, nil
		}
	}

	return false, nil
}
