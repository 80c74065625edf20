package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/batch26/keepsake/internal/service"
	"github.com/batch26/keepsake/internal/ui"
	"github.com/batch26/keepsake/internal/ui/components"
	"github.com/batch26/keepsake/internal/validation"
)

type NewsletterHandler struct {
	emailService *service.EmailService
}

func NewNewsletterHandler(emailService *service.EmailService) *NewsletterHandler {
	return &NewsletterHandler{
		emailService: emailService,
	}
}

// Subscribe signs an email up for reunion updates. Any valid address gets
// the same success response, whether or not the provider accepted it.
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))

	err := validation.ValidateEmail(email)
	if err != nil {
		ui.Render(w, r, components.NewsletterForm("Please provide a valid email address"))
		return
	}

	err = h.emailService.SubscribeNewsletter(r.Context(), email)
	if err != nil {
		slog.Warn("newsletter subscription error", "error", err, "email", email)
	}

	ui.Render(w, r, components.NewsletterSuccess())
}
