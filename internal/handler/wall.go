package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/batch26/keepsake/internal/ctxkeys"
	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/service"
	"github.com/batch26/keepsake/internal/ui"
	"github.com/batch26/keepsake/internal/ui/components"
	"github.com/batch26/keepsake/internal/ui/pages"
)

const composeSlot = "innerHTML:#wall-compose-slot"

type WallHandler struct {
	wallService *service.WallService
}

func NewWallHandler(wallService *service.WallService) *WallHandler {
	return &WallHandler{
		wallService: wallService,
	}
}

func (h *WallHandler) WallPage(w http.ResponseWriter, r *http.Request) {
	messages, err := h.wallService.Messages(r.Context())
	if err != nil {
		slog.Error("failed to list wall messages", "error", err)
		http.Error(w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Wall(pages.WallData{
		Messages: messages,
		Compose:  freshCompose(r),
	}, dialogFor(r)))
}

// PostMessage pins a note with a random paper style, signed as WallAuthor decides.
func (h *WallHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.FormValue("text"))
	if text == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	author, major := service.WallAuthor(r.FormValue("author"), r.FormValue("anonymous") != "", ctxkeys.User(r.Context()))

	message, err := h.wallService.Post(r.Context(), model.NewWallMessage{
		Text:   text,
		Author: author,
		Major:  major,
	})
	if err != nil {
		w.Header().Set("HX-Reswap", "none")
		ui.RenderOOB(w, r, components.WallCompose(components.WallComposeProps{
			Text:   text,
			Author: r.FormValue("author"),
			Error:  userMessage(err, "post message"),
		}), composeSlot)
		return
	}

	slog.Info("wall message posted", "id", message.ID, "author", message.Author)
	ui.Render(w, r, components.Note(message))
	ui.RenderOOB(w, r, components.WallCompose(freshCompose(r)), composeSlot)
}

// freshCompose prefills the author with the signed-in user's name.
func freshCompose(r *http.Request) components.WallComposeProps {
	var props components.WallComposeProps
	if user := ctxkeys.User(r.Context()); user != nil {
		props.Author = user.Name
	}
	return props
}
