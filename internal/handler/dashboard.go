package handler

import (
	"net/http"
	"strings"

	"github.com/batch26/keepsake/internal/ctxkeys"
	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/service"
	"github.com/batch26/keepsake/internal/ui"
	"github.com/batch26/keepsake/internal/ui/components"
)

type DashboardHandler struct {
	yearbookService *service.YearbookService
}

func NewDashboardHandler(yearbookService *service.YearbookService) *DashboardHandler {
	return &DashboardHandler{
		yearbookService: yearbookService,
	}
}

// DashboardDialog shows the signed-in user's yearbook profile. A user without
// a profile yet gets a form prefilled from their identity.
func (h *DashboardHandler) DashboardDialog(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	student, err := h.yearbookService.Profile(r.Context(), user.ID)
	if err != nil {
		errorToast(w, r, userMessage(err, "get profile"))
		return
	}
	if student == nil {
		student = &model.Student{ID: user.ID, Name: user.Name}
	}

	ui.Render(w, r, components.DashboardDialog(components.DashboardProps{
		User:    user,
		Student: student,
		Next:    currentView(r),
	}))
}

// SaveProfile upserts the profile keyed by the user's id. The picture is
// always the user's avatar and the tags are reset to ["Student"].
func (h *DashboardHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	student := &model.Student{
		ID:    user.ID,
		Name:  strings.TrimSpace(r.FormValue("name")),
		Major: strings.TrimSpace(r.FormValue("major")),
		Quote: strings.TrimSpace(r.FormValue("quote")),
		Image: user.AvatarURL,
		Tags:  model.StringList{model.TagStudent},
		Socials: model.Socials{
			LinkedIn:  strings.TrimSpace(r.FormValue("linkedin")),
			Instagram: strings.TrimSpace(r.FormValue("instagram")),
			Twitter:   strings.TrimSpace(r.FormValue("twitter")),
		},
	}

	props := components.DashboardProps{
		User:    user,
		Student: student,
		Next:    currentView(r),
	}

	saved, err := h.yearbookService.UpdateProfile(r.Context(), student)
	if err != nil {
		props.Error = userMessage(err, "update profile")
		ui.Render(w, r, components.DashboardDialog(props))
		return
	}

	props.Student = saved
	props.Saved = true
	ui.Render(w, r, components.DashboardDialog(props))
	ui.RenderOOB(w, r, components.Toast(components.ToastProps{
		Title:   "Profile saved",
		Variant: components.ToastSuccess,
	}), components.ToastContainer)
}
