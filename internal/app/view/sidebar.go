package view

// Route identifies a top-level page.
type Route string

const (
	RouteHome    Route = "home"
	RouteSearch  Route = "search"
	RouteLibrary Route = "library"
)

// NavItem is one sidebar entry.
type NavItem struct {
	Label  string `json:"label"`
	Route  Route  `json:"route"`
	Active bool   `json:"active"`
}

// Sidebar is the navigation panel.
type Sidebar struct {
	Title  string    `json:"title"`
	Items  []NavItem `json:"items"`
	Footer string    `json:"footer"`
}

// BuildSidebar returns the sidebar with the entry for route marked active.
// Detail pages (artist, playlist) pass an empty route.
func BuildSidebar(route Route) Sidebar {
	items := []NavItem{
		{Label: "Home", Route: RouteHome},
		{Label: "Search", Route: RouteSearch},
		{Label: "Your Library", Route: RouteLibrary},
	}
	for i := range items {
		items[i].Active = items[i].Route == route
	}
	return Sidebar{
		Title:  "tunedeck",
		Items:  items,
		Footer: "© Doraemon Music",
	}
}
