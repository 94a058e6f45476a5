package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/singerjob/singerjob/internal/domain/opportunity"
	"github.com/singerjob/singerjob/internal/filter"
)

type OpportunityDirectory interface {
	GetAll(ctx context.Context) ([]opportunity.Opportunity, error)
	GetByIDs(ctx context.Context, ids []string) ([]opportunity.Opportunity, error)
}

type SavedToggler interface {
	Toggle(ctx context.Context, opportunityID string) (bool, error)
	IDs(ctx context.Context) ([]string, error)
}

type OpportunitiesHandler struct {
	dir   OpportunityDirectory
	saved SavedToggler
	log   *slog.Logger
}

func NewOpportunitiesHandler(dir OpportunityDirectory, saved SavedToggler, log *slog.Logger) *OpportunitiesHandler {
	return &OpportunitiesHandler{dir: dir, saved: saved, log: log}
}

// List serves the catalog narrowed by filters and free-text query,
// degrading to an empty listing when the store is unavailable.
func (h *OpportunitiesHandler) List(ctx *gin.Context) {
	spec, ok := FilterSpecFromQuery(ctx)

	if !ok {
		return
	}

	all, err := h.dir.GetAll(ctx.Request.Context())

	if err != nil {
		h.log.Error("opportunity catalog unavailable", "err", err)

		ctx.JSON(http.StatusOK, gin.H{
			"items": []opportunity.Opportunity{},
			"count": 0,
		})
		return
	}

	items := filter.Opportunities(all, spec)

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// ListSaved resolves the saved-id set back into catalog entries.
func (h *OpportunitiesHandler) ListSaved(ctx *gin.Context) {
	ids, err := h.saved.IDs(ctx.Request.Context())

	if err != nil {
		h.log.Error("saved set unavailable", "err", err)

		ctx.JSON(http.StatusOK, gin.H{
			"items": []opportunity.Opportunity{},
			"count": 0,
		})
		return
	}

	items, err := h.dir.GetByIDs(ctx.Request.Context(), ids)

	if err != nil {
		h.log.Error("opportunity catalog unavailable", "err", err)

		ctx.JSON(http.StatusOK, gin.H{
			"items": []opportunity.Opportunity{},
			"count": 0,
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// ToggleSaved flips membership for one id and returns the new state.
// A store failure means no state change; 503 so the client can retry.
func (h *OpportunitiesHandler) ToggleSaved(ctx *gin.Context) {
	id := ctx.Param("id")

	if id == "" {
		RespondBadRequest(ctx, "opportunity id is required", nil)
		return
	}

	nowSaved, err := h.saved.Toggle(ctx.Request.Context(), id)

	if err != nil {
		h.log.Error("saved toggle failed", "opportunity_id", id, "err", err)
		RespondUnavailable(ctx, "Could not update saved opportunities")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"saved": nowSaved})
}
