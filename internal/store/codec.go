package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Load reads and decodes a record. found=false with a nil error means
// the key is simply absent, which callers treat as an empty
// collection rather than a failure.
func Load[T any](ctx context.Context, s Store, key string) (out T, found bool, err error) {
	raw, err := s.Get(ctx, key)

	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return out, false, nil
		}

		return out, false, err
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false, fmt.Errorf("decode %s: %w", key, err)
	}

	return out, true, nil
}

// Save encodes and writes a record whole.
func Save[T any](ctx context.Context, s Store, key string, value T) error {
	raw, err := json.Marshal(value)

	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	return s.Set(ctx, key, raw)
}
