package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/singerjob/singerjob/internal/domain/user"
	"github.com/singerjob/singerjob/internal/filter"
)

type ArtistDirectory interface {
	GetAll(ctx context.Context) ([]user.User, error)
}

type ArtistsHandler struct {
	dir ArtistDirectory
	log *slog.Logger
}

func NewArtistsHandler(dir ArtistDirectory, log *slog.Logger) *ArtistsHandler {
	return &ArtistsHandler{dir: dir, log: log}
}

// List serves the artist directory narrowed by filters and free-text
// query. A store failure degrades to an empty listing: the app shows
// an empty state, never an error dialog.
func (h *ArtistsHandler) List(ctx *gin.Context) {
	spec, ok := FilterSpecFromQuery(ctx)

	if !ok {
		return
	}

	all, err := h.dir.GetAll(ctx.Request.Context())

	if err != nil {
		h.log.Error("artist directory unavailable", "err", err)

		ctx.JSON(http.StatusOK, gin.H{
			"items": []user.User{},
			"count": 0,
		})
		return
	}

	items := filter.Artists(all, spec)

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}
