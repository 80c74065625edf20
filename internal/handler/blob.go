package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/batch26/keepsake/internal/storage"
)

// presigner is implemented by storage backends whose objects the browser
// should fetch directly.
type presigner interface {
	PresignedURL(ctx context.Context, path string) (string, error)
}

type BlobHandler struct {
	storage storage.Storage
}

func NewBlobHandler(storage storage.Storage) *BlobHandler {
	return &BlobHandler{
		storage: storage,
	}
}

// ServeBlob serves GET /blobs/{path...}. S3 objects are handed off with a
// redirect to a presigned URL; in-process blobs are streamed.
func (h *BlobHandler) ServeBlob(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")
	if path == "" {
		http.NotFound(w, r)
		return
	}

	if p, ok := h.storage.(presigner); ok {
		url, err := p.PresignedURL(r.Context(), path)
		if err != nil {
			slog.Error("failed to presign blob", "error", err, "path", path)
			http.Error(w, genericErrorMessage, http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, url, http.StatusFound)
		return
	}

	obj, err := h.storage.Open(r.Context(), path)
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to open blob", "error", err, "path", path)
		http.Error(w, genericErrorMessage, http.StatusInternalServerError)
		return
	}
	defer func() {
		closeErr := obj.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close blob", "error", closeErr, "path", path)
		}
	}()

	w.Header().Set("Content-Type", obj.ContentType)
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.Header().Set("Cache-Control", "private, max-age=3600")

	_, err = io.Copy(w, obj.Body)
	if err != nil {
		slog.Debug("blob copy interrupted", "error", err, "path", path)
	}
}
