package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/singerjob/singerjob/internal/domain/opportunity"
)

type Recommender interface {
	Personal(ctx context.Context) ([]opportunity.Opportunity, error)
	Latest(ctx context.Context) ([]opportunity.Opportunity, error)
}

type RecommendationsHandler struct {
	engine Recommender
	log    *slog.Logger
}

func NewRecommendationsHandler(engine Recommender, log *slog.Logger) *RecommendationsHandler {
	return &RecommendationsHandler{engine: engine, log: log}
}

// Personal serves the session-relative feed. No session yields an
// empty feed; a store failure degrades the same way.
func (h *RecommendationsHandler) Personal(ctx *gin.Context) {
	items, err := h.engine.Personal(ctx.Request.Context())

	if err != nil {
		h.log.Error("personal recommendations unavailable", "err", err)
		items = []opportunity.Opportunity{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// Latest serves the session-independent fallback feed.
func (h *RecommendationsHandler) Latest(ctx *gin.Context) {
	items, err := h.engine.Latest(ctx.Request.Context())

	if err != nil {
		h.log.Error("latest recommendations unavailable", "err", err)
		items = []opportunity.Opportunity{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}
