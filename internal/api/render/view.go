package render

import (
	"strings"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/token"
	"github.com/csemotors/dealership/internal/validation"
)

// NavItem is one entry in the site navigation bar.
type NavItem struct {
	Href  string
	Label string
}

// ViewData is the render contract every page receives: at minimum title,
// nav, and errors; forms additionally carry echoed non-secret fields.
type ViewData struct {
	Title    string
	Nav      []NavItem
	Messages []string
	Errors   validation.Errors
	Identity *token.Claims
	Fields   map[string]string
	Data     map[string]any
}

// Field returns an echoed field value, empty when absent.
func (v ViewData) Field(name string) string {
	return v.Fields[name]
}

// Get returns a per-view data value.
func (v ViewData) Get(name string) any {
	return v.Data[name]
}

// Nav builds the navigation bar: Home plus one entry per classification.
func Nav(classifications []domain.Classification) []NavItem {
	items := make([]NavItem, 0, len(classifications)+1)
	items = append(items, NavItem{Href: "/", Label: "Home"})
	for _, c := range classifications {
		items = append(items, NavItem{Href: "/inv/type/" + c.ID, Label: c.Name})
	}
	return items
}

// EchoFields produces the echo map for a re-rendered form: every submitted
// field verbatim except password-bearing ones, which are never sent back
// into markup. Pure; independent of the template engine.
func EchoFields(submitted map[string]string) map[string]string {
	out := make(map[string]string, len(submitted))
	for name, value := range submitted {
		if isSecretField(name) {
			continue
		}
		out[name] = value
	}
	return out
}

func isSecretField(name string) bool {
	return strings.Contains(strings.ToLower(name), "password")
}
