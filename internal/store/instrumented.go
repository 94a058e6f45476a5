package store

import "context"

// Observer wraps one logical store operation for metrics. Satisfied
// by observability.Prom.
type Observer interface {
	ObserveStore(op string, fn func() error) error
}

// Instrumented decorates a backend with operation metrics.
type Instrumented struct {
	next Store
	obs  Observer
}

func WithMetrics(next Store, obs Observer) *Instrumented {
	return &Instrumented{next: next, obs: obs}
}

func (s *Instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	var out []byte

	err := s.obs.ObserveStore("get", func() error {
		var err error
		out, err = s.next.Get(ctx, key)

		// absence is a normal outcome, not an error class
		if err == ErrNotFound {
			return nil
		}

		return err
	})

	if err != nil {
		return nil, err
	}

	if out == nil {
		return nil, ErrNotFound
	}

	return out, nil
}

func (s *Instrumented) Set(ctx context.Context, key string, value []byte) error {
	return s.obs.ObserveStore("set", func() error {
		return s.next.Set(ctx, key, value)
	})
}

func (s *Instrumented) Remove(ctx context.Context, key string) error {
	return s.obs.ObserveStore("remove", func() error {
		return s.next.Remove(ctx, key)
	})
}
