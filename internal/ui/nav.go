package ui

import "strings"

// NavItem is one entry of the top navigation.
type NavItem struct {
	Href   string
	Label  string
	Active bool
}

// AriaCurrent returns "page" for the active entry.
func (n NavItem) AriaCurrent() string {
	if n.Active {
		return "page"
	}
	return ""
}

var navEntries = []NavItem{
	{Href: "/", Label: "Início"},
	{Href: "/dashboard", Label: "Dashboard"},
	{Href: "/simulacoes", Label: "Simulações"},
	{Href: "/orcamento", Label: "Orçamento"},
	{Href: "/bi", Label: "BI"},
}

// Navigation returns the top navigation with the entry matching currentPath marked active.
// The home entry only matches "/" exactly; the others match their subtree.
func Navigation(currentPath string) []NavItem {
	items := make([]NavItem, len(navEntries))
	for i, entry := range navEntries {
		entry.Active = isActive(entry.Href, currentPath)
		items[i] = entry
	}
	return items
}

func isActive(href, path string) bool {
	if href == "/" {
		return path == "/"
	}
	return path == href || strings.HasPrefix(path, href+"/")
}
