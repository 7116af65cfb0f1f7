// Package pages renders the public site and the admin dashboard as
// server-side HTML. Forms post back to the handlers in forms.go. Every
// handler expects to sit behind Sessions.OptionalAuth, which puts the
// signed-in admin on the request context.
package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"brewbliss/app"
	"brewbliss/filemgr"
	"brewbliss/middleware"
	"brewbliss/models"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var pageNames = []string{"home", "menu", "about", "contact", "admin", "denied"}

// Pages holds one parsed template set per page, each sharing the layout.
type Pages struct {
	app   *app.App
	views map[string]*template.Template
	now   func() time.Time
}

// view is what every page template receives. Data is page specific.
type view struct {
	Title   string
	Active  string
	Admin   bool
	Loading bool
	Year    int
	Data    any
}

var funcs = template.FuncMap{
	"image": itemImage,
	"thumb": func(item models.MenuItem) string { return filemgr.ThumbURL(itemImage(item)) },
}

func itemImage(item models.MenuItem) string {
	if item.Image != "" {
		return item.Image
	}
	return filemgr.PlaceholderURL(item.Category)
}

func New(a *app.App) (*Pages, error) {
	views := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.gohtml", "templates/"+name+".gohtml")
		if err != nil {
			return nil, fmt.Errorf("parse %s page: %w", name, err)
		}
		views[name] = tmpl
	}
	return &Pages{app: a, views: views, now: time.Now}, nil
}

// render buffers the page so a template failure never leaves a half-written 200.
func (p *Pages) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	_, isAdmin := middleware.UserFromContext(r.Context())
	v := view{
		Title:   title,
		Active:  name,
		Admin:   isAdmin,
		Loading: p.app.Store.IsLoading(),
		Year:    p.now().Year(),
		Data:    data,
	}

	var buf bytes.Buffer
	if err := p.views[name].ExecuteTemplate(&buf, "layout", v); err != nil {
		p.app.Logger.Printf("render %s: %v", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
