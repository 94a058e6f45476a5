package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/singerjob/singerjob/internal/filestore"
)

// maxUploadBytes bounds profile-image uploads.
const maxUploadBytes = 8 << 20

type UploadHandler struct {
	storage filestore.Storage
	log     *slog.Logger
}

func NewUploadHandler(storage filestore.Storage, log *slog.Logger) *UploadHandler {
	return &UploadHandler{storage: storage, log: log}
}

// Upload accepts a multipart file under "file" and returns the public
// URL of the stored object.
func (h *UploadHandler) Upload(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxUploadBytes)

	fileHeader, err := ctx.FormFile("file")

	if err != nil {
		RespondBadRequest(ctx, "A file is required under the \"file\" field", nil)
		return
	}

	f, err := fileHeader.Open()

	if err != nil {
		RespondInternal(ctx, "Could not read upload")
		return
	}

	defer f.Close()

	url, err := h.storage.Save(ctx.Request.Context(), uuid.New(), fileHeader.Filename, f)

	if err != nil {
		h.log.Error("upload failed", "filename", fileHeader.Filename, "err", err)
		RespondInternal(ctx, "Could not store upload")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"url": url})
}
