package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/singerjob/singerjob/internal/domain/opportunity"
	"github.com/singerjob/singerjob/internal/http/handlers"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Fake implementations of the handlers.OpportunityDirectory and
// handlers.SavedToggler interfaces

type fakeOppsDir struct {
	getAllFn   func(ctx context.Context) ([]opportunity.Opportunity, error)
	getByIDsFn func(ctx context.Context, ids []string) ([]opportunity.Opportunity, error)
}

func (f *fakeOppsDir) GetAll(ctx context.Context) ([]opportunity.Opportunity, error) {
	if f.getAllFn != nil {
		return f.getAllFn(ctx)
	}

	return []opportunity.Opportunity{}, nil
}

func (f *fakeOppsDir) GetByIDs(ctx context.Context, ids []string) ([]opportunity.Opportunity, error) {
	if f.getByIDsFn != nil {
		return f.getByIDsFn(ctx, ids)
	}

	return []opportunity.Opportunity{}, nil
}

type fakeSaved struct {
	toggleFn func(ctx context.Context, id string) (bool, error)
	idsFn    func(ctx context.Context) ([]string, error)
}

func (f *fakeSaved) Toggle(ctx context.Context, id string) (bool, error) {
	if f.toggleFn != nil {
		return f.toggleFn(ctx, id)
	}

	return false, nil
}

func (f *fakeSaved) IDs(ctx context.Context) ([]string, error) {
	if f.idsFn != nil {
		return f.idsFn(ctx)
	}

	return []string{}, nil
}

type listResponse struct {
	Items []opportunity.Opportunity `json:"items"`
	Count int                       `json:"count"`
}

func doGet(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func catalogFixture() []opportunity.Opportunity {
	return []opportunity.Opportunity{
		{ID: "o1", Title: "Vocalista", ArtType: "Música", Location: "São Paulo", PaymentRange: opportunity.PaymentRange{Min: 800}},
		{ID: "o2", Title: "Bailarinos", ArtType: "Dança", Location: "Rio de Janeiro", PaymentRange: opportunity.PaymentRange{Min: 1200}},
		{ID: "o3", Title: "Ator", ArtType: "Teatro", Location: "São Paulo", PaymentRange: opportunity.PaymentRange{Min: 300}},
	}
}

func TestListOpportunitiesHandler(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		dirSetUp       func(*fakeOppsDir)
		wantStatusCode int
		wantIDs        []string
	}{
		{
			name: "unfiltered",
			path: "/opportunities",
			dirSetUp: func(f *fakeOppsDir) {
				f.getAllFn = func(ctx context.Context) ([]opportunity.Opportunity, error) {
					return catalogFixture(), nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantIDs:        []string{"o1", "o2", "o3"},
		},
		{
			name: "filtered_by_art_type_and_location",
			path: "/opportunities?artTypes=Música,Teatro&locations=São%20Paulo",
			dirSetUp: func(f *fakeOppsDir) {
				f.getAllFn = func(ctx context.Context) ([]opportunity.Opportunity, error) {
					return catalogFixture(), nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantIDs:        []string{"o1", "o3"},
		},
		{
			name: "min_payment",
			path: "/opportunities?minPayment=800",
			dirSetUp: func(f *fakeOppsDir) {
				f.getAllFn = func(ctx context.Context) ([]opportunity.Opportunity, error) {
					return catalogFixture(), nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantIDs:        []string{"o1", "o2"},
		},
		{
			name:           "bad_min_payment",
			path:           "/opportunities?minPayment=abc",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// store failure degrades to an empty listing, never a 5xx
			name: "store_error_degrades_to_empty",
			path: "/opportunities",
			dirSetUp: func(f *fakeOppsDir) {
				f.getAllFn = func(ctx context.Context) ([]opportunity.Opportunity, error) {
					return nil, errors.New("store down")
				}
			},
			wantStatusCode: http.StatusOK,
			wantIDs:        []string{},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			dir := &fakeOppsDir{}

			if tt.dirSetUp != nil {
				tt.dirSetUp(dir)
			}

			h := handlers.NewOpportunitiesHandler(dir, &fakeSaved{}, discardLogger())

			r := setupRouter(http.MethodGet, "/opportunities", h.List)

			w := doGet(r, tt.path)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode != http.StatusOK {
				return
			}

			var resp listResponse

			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}

			if resp.Count != len(tt.wantIDs) || len(resp.Items) != len(tt.wantIDs) {
				t.Fatalf("got count %d items %d, want %d", resp.Count, len(resp.Items), len(tt.wantIDs))
			}

			for i, id := range tt.wantIDs {
				if resp.Items[i].ID != id {
					t.Fatalf("position %d: got %s, want %s", i, resp.Items[i].ID, id)
				}
			}
		})
	}
}

func TestListSavedHandler(t *testing.T) {
	dir := &fakeOppsDir{
		getByIDsFn: func(ctx context.Context, ids []string) ([]opportunity.Opportunity, error) {
			if len(ids) != 2 {
				t.Errorf("got ids %v, want 2", ids)
			}

			return []opportunity.Opportunity{{ID: "o1"}, {ID: "o3"}}, nil
		},
	}

	sv := &fakeSaved{
		idsFn: func(ctx context.Context) ([]string, error) {
			return []string{"o1", "o3"}, nil
		},
	}

	h := handlers.NewOpportunitiesHandler(dir, sv, discardLogger())

	r := setupRouter(http.MethodGet, "/opportunities/saved", h.ListSaved)

	w := doGet(r, "/opportunities/saved")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp listResponse

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Count != 2 {
		t.Fatalf("got count %d, want 2", resp.Count)
	}
}

func TestToggleSavedHandler(t *testing.T) {
	tests := []struct {
		name           string
		savedSetUp     func(*fakeSaved)
		wantStatusCode int
		wantSaved      bool
	}{
		{
			name: "now_saved",
			savedSetUp: func(f *fakeSaved) {
				f.toggleFn = func(ctx context.Context, id string) (bool, error) {
					if id != "o1" {
						t.Errorf("got id %q, want o1", id)
					}

					return true, nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantSaved:      true,
		},
		{
			name: "now_unsaved",
			savedSetUp: func(f *fakeSaved) {
				f.toggleFn = func(ctx context.Context, id string) (bool, error) {
					return false, nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantSaved:      false,
		},
		{
			name: "store_error_is_503",
			savedSetUp: func(f *fakeSaved) {
				f.toggleFn = func(ctx context.Context, id string) (bool, error) {
					return false, errors.New("store down")
				}
			},
			wantStatusCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			sv := &fakeSaved{}

			if tt.savedSetUp != nil {
				tt.savedSetUp(sv)
			}

			h := handlers.NewOpportunitiesHandler(&fakeOppsDir{}, sv, discardLogger())

			r := setupRouter(http.MethodPost, "/opportunities/:id/save", h.ToggleSaved)

			w := postJSON(r, "/opportunities/o1/save", "")

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode != http.StatusOK {
				return
			}

			var resp struct {
				Saved bool `json:"saved"`
			}

			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}

			if resp.Saved != tt.wantSaved {
				t.Fatalf("got saved=%v, want %v", resp.Saved, tt.wantSaved)
			}
		})
	}
}
