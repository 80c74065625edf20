package model

type View string

const (
	ViewHome     View = "home"
	ViewTimeline View = "timeline"
	ViewYearbook View = "yearbook"
	ViewVault    View = "vault"
	ViewWall     View = "wall"
)

// NavViews are the views reachable from the navigation bar, in display order.
var NavViews = []View{ViewTimeline, ViewYearbook, ViewVault, ViewWall}

func ParseView(s string) (View, bool) {
	switch View(s) {
	case ViewHome, ViewTimeline, ViewYearbook, ViewVault, ViewWall:
		return View(s), true
	}
	return ViewHome, false
}

// Path is the route that renders the view.
func (v View) Path() string {
	if v == ViewHome {
		return "/"
	}
	return "/" + string(v)
}

// ShowsChrome reports whether navigation and footer are rendered around the view.
func (v View) ShowsChrome() bool {
	return v != ViewHome
}
