package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/singerjob/singerjob/internal/domain/opportunity"
	"github.com/singerjob/singerjob/internal/http/handlers"
)

type fakeRecommender struct {
	personalFn func(ctx context.Context) ([]opportunity.Opportunity, error)
	latestFn   func(ctx context.Context) ([]opportunity.Opportunity, error)
}

func (f *fakeRecommender) Personal(ctx context.Context) ([]opportunity.Opportunity, error) {
	if f.personalFn != nil {
		return f.personalFn(ctx)
	}

	return []opportunity.Opportunity{}, nil
}

func (f *fakeRecommender) Latest(ctx context.Context) ([]opportunity.Opportunity, error) {
	if f.latestFn != nil {
		return f.latestFn(ctx)
	}

	return []opportunity.Opportunity{}, nil
}

func TestPersonalRecommendationsHandler(t *testing.T) {
	tests := []struct {
		name      string
		setUp     func(*fakeRecommender)
		wantCount int
	}{
		{
			name: "feed_with_items",
			setUp: func(f *fakeRecommender) {
				f.personalFn = func(ctx context.Context) ([]opportunity.Opportunity, error) {
					return []opportunity.Opportunity{{ID: "o1"}, {ID: "o2"}}, nil
				}
			},
			wantCount: 2,
		},
		{
			name:      "no_session_is_empty_feed",
			wantCount: 0,
		},
		{
			// engine failure degrades to an empty 200, never a 5xx
			name: "store_error_degrades_to_empty",
			setUp: func(f *fakeRecommender) {
				f.personalFn = func(ctx context.Context) ([]opportunity.Opportunity, error) {
					return nil, errors.New("store down")
				}
			},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeRecommender{}

			if tt.setUp != nil {
				tt.setUp(engine)
			}

			h := handlers.NewRecommendationsHandler(engine, discardLogger())

			r := setupRouter(http.MethodGet, "/recommendations", h.Personal)

			w := doGet(r, "/recommendations")

			if w.Code != http.StatusOK {
				t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
			}

			var resp listResponse

			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}

			if resp.Count != tt.wantCount {
				t.Fatalf("got count %d, want %d", resp.Count, tt.wantCount)
			}
		})
	}
}

func TestLatestRecommendationsHandler(t *testing.T) {
	engine := &fakeRecommender{
		latestFn: func(ctx context.Context) ([]opportunity.Opportunity, error) {
			return []opportunity.Opportunity{{ID: "o5"}}, nil
		},
	}

	h := handlers.NewRecommendationsHandler(engine, discardLogger())

	r := setupRouter(http.MethodGet, "/recommendations/latest", h.Latest)

	w := doGet(r, "/recommendations/latest")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp listResponse

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Count != 1 || resp.Items[0].ID != "o5" {
		t.Fatalf("got %+v", resp)
	}
}
