package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/batch26/keepsake/internal/ctxkeys"
	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/service"
	"github.com/batch26/keepsake/internal/ui"
	"github.com/batch26/keepsake/internal/ui/components"
	"github.com/batch26/keepsake/internal/ui/pages"
)

const uploadSlot = "innerHTML:#upload-slot"

// multipartOverhead leaves room for the caption and boundaries on top of the file.
const multipartOverhead = 1 << 20

type VaultHandler struct {
	vaultService *service.VaultService
}

func NewVaultHandler(vaultService *service.VaultService) *VaultHandler {
	return &VaultHandler{
		vaultService: vaultService,
	}
}

func (h *VaultHandler) VaultPage(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = model.FilterAllMemories
	}

	items, err := h.vaultService.Media(r.Context())
	if err != nil {
		slog.Error("failed to list media", "error", err)
		http.Error(w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Vault(pages.VaultData{
		Filters: model.VaultFilters,
		Filter:  filter,
		Grid:    components.VaultGridProps{Items: service.FilterMedia(items, filter)},
		Upload:  h.uploadForm("", ""),
	}, dialogFor(r)))
}

// Upload adds a photo or video to the top of the vault. Only reachable
// through RequireAuth.
func (h *VaultHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.vaultService.MaxUploadSize()+multipartOverhead)
	file, header, err := r.FormFile("file")
	caption := r.FormValue("caption")
	if err != nil {
		var tooLarge *http.MaxBytesError
		message := "Please choose a photo or video to upload."
		if errors.As(err, &tooLarge) {
			message = "That file is too large."
		}
		h.uploadFailed(w, r, caption, message)
		return
	}
	defer func() {
		closeErr := file.Close()
		if closeErr != nil {
			slog.Error("failed to close uploaded file", "error", closeErr)
		}
	}()

	item, err := h.vaultService.Upload(r.Context(), service.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
		Caption:     caption,
	}, user)
	if err != nil {
		h.uploadFailed(w, r, caption, userMessage(err, "upload media", service.ErrSignInRequired))
		return
	}

	ui.Render(w, r, components.VaultItem(item))
	ui.RenderOOB(w, r, components.UploadForm(h.uploadForm("", "")), uploadSlot)
	ui.RenderOOB(w, r, components.Toast(components.ToastProps{
		Title:       "Memory saved",
		Description: "Your upload is now in the vault.",
		Variant:     components.ToastSuccess,
	}), components.ToastContainer)
}

func (h *VaultHandler) uploadFailed(w http.ResponseWriter, r *http.Request, caption, message string) {
	w.Header().Set("HX-Reswap", "none")
	ui.RenderOOB(w, r, components.UploadForm(h.uploadForm(caption, message)), uploadSlot)
}

func (h *VaultHandler) uploadForm(caption, errorMessage string) components.UploadFormProps {
	return components.UploadFormProps{
		Caption:   caption,
		Error:     errorMessage,
		MaxSizeMB: h.vaultService.MaxUploadSize() >> 20,
	}
}
