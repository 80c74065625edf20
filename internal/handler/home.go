package handler

import (
	"log/slog"
	"net/http"

	"github.com/batch26/keepsake/internal/service"
	"github.com/batch26/keepsake/internal/ui"
	"github.com/batch26/keepsake/internal/ui/pages"
)

type HomeHandler struct {
	timelineService *service.TimelineService
}

func NewHomeHandler(timelineService *service.TimelineService) *HomeHandler {
	return &HomeHandler{
		timelineService: timelineService,
	}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Home(dialogFor(r)))
}

func (h *HomeHandler) TimelinePage(w http.ResponseWriter, r *http.Request) {
	events, err := h.timelineService.Events()
	if err != nil {
		slog.Error("failed to load timeline", "error", err)
		http.Error(w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Timeline(events, dialogFor(r)))
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	ui.Render(w, r, pages.NotFound())
}
