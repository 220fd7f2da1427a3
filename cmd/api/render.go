package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"

	"dogparks/internal/domain/ratings"
	"dogparks/internal/domain/venues"
	"dogparks/internal/ui"
)

type nearbySection struct {
	Title  string
	Venues []venues.Venue
}

var functions = template.FuncMap{
	"stars": func() []int {
		s := make([]int, 0, ratings.MaxStars)
		for i := ratings.MinStars; i <= ratings.MaxStars; i++ {
			s = append(s, i)
		}
		return s
	},
	"nearby": func(title string, v []venues.Venue) nearbySection {
		return nearbySection{Title: title, Venues: v}
	},
}

// newTemplateCache parses every page together with the base layout and
// partials, keyed by page file name ("details.html").
func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages, err := fs.Glob(ui.Files, "html/pages/*.html")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := path.Base(page)

		ts, err := template.New(name).Funcs(functions).ParseFS(ui.Files,
			"html/base.html",
			"html/partials/*.html",
			page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}

		cache[name] = ts
	}

	return cache, nil
}

// render executes the page into a buffer first so a template failure still
// produces a clean 500 instead of a half-written page.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	buf, err := app.execute(page, data)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (app *application) renderError(w http.ResponseWriter, r *http.Request, status int, data errorPage) {
	buf, err := app.execute("error.html", data)
	if err != nil {
		app.logger.Errorw("render error page", "path", r.URL.Path, "error", err.Error())
		http.Error(w, data.Message, status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (app *application) execute(page string, data any) (*bytes.Buffer, error) {
	ts, ok := app.templates[page]
	if !ok {
		return nil, fmt.Errorf("the template %s does not exist", page)
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", page, err)
	}
	return buf, nil
}
