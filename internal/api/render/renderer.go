// Package render adapts the embedded HTML templates to echo's Renderer
// contract and builds the view models handed to them.
package render

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/web"
)

// Renderer executes a named page template inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

var funcMap = template.FuncMap{
	"usd":    formatUSD,
	"commas": formatCommas,
}

// NewRenderer parses every page under web/templates into its own template
// set cloned from the layout. Page names are the path relative to the
// templates root without the extension, e.g. "account/login".
func NewRenderer() (*Renderer, error) {
	sub, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("render: templates root: %w", err)
	}

	layout, err := template.New("layout").Funcs(funcMap).ParseFS(sub, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("render: parse layout: %w", err)
	}

	pages := make(map[string]*template.Template)
	err = fs.WalkDir(sub, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || p == "layout.html" || path.Ext(p) != ".html" {
			return nil
		}

		set, err := layout.Clone()
		if err != nil {
			return fmt.Errorf("clone layout: %w", err)
		}
		if _, err := set.ParseFS(sub, p); err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		pages[strings.TrimSuffix(p, ".html")] = set
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return &Renderer{pages: pages}, nil
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	set, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("render: unknown view %q", name)
	}
	return set.ExecuteTemplate(w, "layout", data)
}

func formatUSD(v float64) string {
	return "$" + formatCommas(int(v))
}

// formatCommas renders an integer with thousands separators.
func formatCommas(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	out := b.String()
	if neg {
		return "-" + out
	}
	return out
}
