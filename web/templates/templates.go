// Package templates holds the embedded page bodies and the echo renderer.
// Pages are html/template "content" blocks rendered inside the templ layout.
package templates

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"weave_web/internal/models"
	"weave_web/internal/navbar"
	"weave_web/web/components"
)

//go:embed partials/*.html pages/*.html
var files embed.FS

// PageData is the common data every layout page receives.
type PageData struct {
	Title     string
	Nav       navbar.Navbar
	CSRFToken string
	Data      interface{} // Page-specific data
}

// Renderer is an echo.Renderer using per-page template cloning so each page
// can define its own "content" block next to the shared partials.
type Renderer struct {
	base  *template.Template
	pages map[string]*template.Template
}

// NewRenderer parses the embedded partials and pages.
func NewRenderer() (*Renderer, error) {
	base, err := template.New("partials").Funcs(template.FuncMap{
		"navAuth": func(auth models.AuthState) (template.HTML, error) {
			return templ.ToGoHTML(context.Background(), components.NavAuth(auth))
		},
	}).ParseFS(files, "partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse partials: %w", err)
	}

	pageFiles, err := fs.Glob(files, "pages/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, page := range pageFiles {
		pageTemplate, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := pageTemplate.ParseFS(files, page); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}
		if pageTemplate.Lookup("content") == nil {
			return nil, fmt.Errorf("%s does not define a content block", page)
		}
		pages[path.Base(page)] = pageTemplate
	}

	return &Renderer{base: base, pages: pages}, nil
}

// Render renders a page ("signup.html") inside the layout. data must be a PageData.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	pd, ok := data.(PageData)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Page %s rendered without page data", name))
	}

	page, err := r.Page(name, pd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if c != nil {
		ctx = c.Request().Context()
	}
	return page.Render(ctx, w)
}

// Page returns the named page wrapped in the layout.
func (r *Renderer) Page(name string, data PageData) (templ.Component, error) {
	tmpl, ok := r.pages[name]
	if !ok {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Template not found: "+name)
	}

	body := templ.FromGoHTML(tmpl.Lookup("content"), data)
	layout := components.Layout(data.Title, r.Navbar(data.Nav))
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return layout.Render(templ.WithChildren(ctx, body), w)
	}), nil
}

// Navbar renders the navbar partial for nav.
func (r *Renderer) Navbar(nav navbar.Navbar) templ.Component {
	return templ.FromGoHTML(r.base.Lookup("navbar"), nav)
}
