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

type YearbookHandler struct {
	yearbookService *service.YearbookService
}

func NewYearbookHandler(yearbookService *service.YearbookService) *YearbookHandler {
	return &YearbookHandler{
		yearbookService: yearbookService,
	}
}

// YearbookPage lists students. The search box asks for just the grid by
// targeting #student-grid.
func (h *YearbookHandler) YearbookPage(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = model.FilterAllMajors
	}
	query := r.URL.Query().Get("q")

	students, err := h.yearbookService.Students(r.Context())
	if err != nil {
		slog.Error("failed to list students", "error", err)
		http.Error(w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	grid := components.StudentGridProps{Students: service.FilterStudents(students, filter, query)}
	if r.Header.Get("HX-Target") == "student-grid" {
		ui.Render(w, r, components.StudentGrid(grid))
		return
	}

	ui.Render(w, r, pages.Yearbook(pages.YearbookData{
		Filters: model.MajorFilters,
		Filter:  filter,
		Query:   query,
		Grid:    grid,
	}, dialogFor(r)))
}

// StudentDialog shows one profile with its guestbook.
func (h *YearbookHandler) StudentDialog(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	student, err := h.yearbookService.Profile(r.Context(), id)
	if err != nil {
		errorToast(w, r, userMessage(err, "get profile"))
		return
	}
	if student == nil {
		errorToast(w, r, "That classmate is not in the yearbook.")
		return
	}

	signatures, err := h.yearbookService.Signatures(r.Context(), id)
	if err != nil {
		errorToast(w, r, userMessage(err, "list signatures"))
		return
	}

	ui.Render(w, r, components.StudentDialog(components.StudentDialogProps{
		Student: student,
		Guestbook: components.GuestbookProps{
			StudentID:  id,
			Signatures: signatures,
		},
	}))
}

// SignGuestbook appends a signature. Signed-in users sign with their name,
// everyone else as Anonymous. Blank text is ignored.
func (h *YearbookHandler) SignGuestbook(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	text := strings.TrimSpace(r.FormValue("text"))
	if text == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	author := service.AnonymousAuthor
	if user := ctxkeys.User(r.Context()); user != nil {
		author = user.Name
	}

	props := components.GuestbookProps{StudentID: id}

	_, err := h.yearbookService.Sign(r.Context(), id, text, author)
	if err != nil {
		props.Error = userMessage(err, "sign guestbook")
	} else {
		slog.Info("guestbook signed", "student_id", id, "author", author)
	}

	props.Signatures, err = h.yearbookService.Signatures(r.Context(), id)
	if err != nil {
		errorToast(w, r, userMessage(err, "list signatures"))
		return
	}

	ui.Render(w, r, components.Guestbook(props))
}
