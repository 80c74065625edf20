// Package layouts wraps pages in the document shell.
package layouts

import (
	"github.com/batch26/keepsake/internal/model"
)

type Props struct {
	View  model.View
	Title string
	// Dialog is fetched into #dialog once the page loads, so deep links
	// such as /yearbook?student=x open with the dialog showing.
	Dialog string
}

func (p Props) documentTitle(appName string) string {
	if p.Title == "" {
		return appName
	}
	return p.Title + " · " + appName
}

func navClass(active bool) string {
	if active {
		return "text-gold-500 px-2 py-1 transition-colors"
	}
	return "text-stone-400 hover:text-stone-100 px-2 py-1 transition-colors"
}
