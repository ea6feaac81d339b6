// Package navbar builds the site navigation bar from the current request URL.
// Nothing here is stored between requests: the active tab and the mobile menu
// flag are recomputed from the URL every time.
package navbar

import (
	"net/url"
	"strings"

	"weave_web/internal/models"
)

// MenuParam is the query parameter that opens the mobile menu overlay.
const MenuParam = "menu"

type Tab struct {
	ID     string
	Label  string
	Href   string
	Active bool
}

// Tabs are the static navigation entries, in display order.
var Tabs = []Tab{
	{ID: "home", Label: "Home", Href: "/"},
	{ID: "about", Label: "About", Href: "/about"},
	{ID: "feedback", Label: "Feedback", Href: "/feedback"},
}

type Navbar struct {
	Tabs       []Tab
	Menu       models.MenuState
	ToggleHref string
	Auth       models.AuthState
}

// ActiveTab returns the first path segment, with the site root mapped to "home".
func ActiveTab(path string) string {
	segment := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)[0]
	if segment == "" {
		return "home"
	}
	return segment
}

// Build derives the navbar for u. auth is passed through untouched.
func Build(u *url.URL, auth models.AuthState) Navbar {
	menu := models.MenuState{
		Open:      u.Query().Get(MenuParam) == "open",
		ActiveTab: ActiveTab(u.Path),
	}

	tabs := make([]Tab, len(Tabs))
	for i, tab := range Tabs {
		tab.Active = tab.ID == menu.ActiveTab
		tabs[i] = tab
	}

	return Navbar{
		Tabs:       tabs,
		Menu:       menu,
		ToggleHref: toggleHref(u, !menu.Open),
		Auth:       auth,
	}
}

// toggleHref is the current URL with the menu flag set or cleared.
func toggleHref(u *url.URL, open bool) string {
	q := u.Query()
	if open {
		q.Set(MenuParam, "open")
	} else {
		q.Del(MenuParam)
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	if encoded := q.Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}
