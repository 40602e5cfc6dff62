// Package view renders the server-side HTML pages and serves the embedded
// static assets.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"

	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names.
const (
	PageSignup    = "signup"
	PageLogin     = "login"
	PageIndex     = "index"
	PageAddEvent  = "add_event"
	PageEditEvent = "edit_event"
	PageError     = "error"
)

var pages = []string{PageSignup, PageLogin, PageIndex, PageAddEvent, PageEditEvent, PageError}

// Page is the data every template receives.
type Page struct {
	Title         string
	Flashes       []domain.Flash
	Authenticated bool
	Data          any
}

// Renderer implements echo.Renderer over the embedded templates. Each page is
// parsed together with the shared layout.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New("layout.html").ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// MustRenderer panics when the embedded templates do not parse.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}

// StaticFS returns the asset tree rooted so that js/custom.js resolves.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// ErrorData feeds the error page.
type ErrorData struct {
	Code    int
	Message string
}
