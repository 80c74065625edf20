// Package pages renders the full documents for each view.
package pages

import (
	"net/url"

	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/ui"
	"github.com/batch26/keepsake/internal/ui/components"
)

type YearbookData struct {
	Filters []string
	Filter  string
	Query   string
	Grid    components.StudentGridProps
}

type VaultData struct {
	Filters []string
	Filter  string
	Grid    components.VaultGridProps
	Upload  components.UploadFormProps
}

type WallData struct {
	Messages []*model.WallMessage
	Compose  components.WallComposeProps
}

// filterURL links a filter chip, keeping the search query when there is one.
func filterURL(path, filter, query string) string {
	q := url.Values{"filter": {filter}}
	if query != "" {
		q.Set("q", query)
	}
	return path + "?" + q.Encode()
}

func chipClass(active bool) string {
	base := "whitespace-nowrap rounded-full px-4 py-1.5 text-sm font-medium transition-all"
	if active {
		return ui.Classes(base, "bg-gold-500 text-stone-950")
	}
	return ui.Classes(base, "bg-stone-900 text-stone-400 hover:bg-stone-800 hover:text-stone-200")
}

func eventClass(e *model.MemoryEvent) string {
	return ui.Classes("relative grid items-center gap-8 md:grid-cols-2", "timeline-"+e.Align)
}

func figureClass(e *model.MemoryEvent) string {
	switch e.Align {
	case model.AlignRight:
		return "md:order-2"
	case model.AlignCenter:
		return "md:col-span-2 mx-auto max-w-2xl"
	}
	return ""
}

func textClass(e *model.MemoryEvent) string {
	if e.Align == model.AlignCenter {
		return "md:col-span-2 text-center"
	}
	return ""
}
