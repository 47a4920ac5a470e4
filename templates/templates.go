// Package templates renders the HTML pages and htmx fragments of the site.
//
// Pages and fragments are html/template definitions embedded in the binary and
// exposed as templ components, so handlers render everything through one path.
package templates

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"

	"github.com/a-h/templ"

	"findaccommodation/httpx"
	"findaccommodation/listing"
)

//go:embed html
var files embed.FS

var pages = mustParsePages(files)

// Layout is the data a full page executes with. Page specific data is in Props.
type Layout struct {
	Title   string
	User    *httpx.UserSessionData
	CSRF    string
	NavBar  []listing.MenuItem
	Other   []listing.MenuItem
	Account []listing.MenuItem
	Props   any
}

func mustParsePages(fsys fs.FS) map[string]*template.Template {
	parsed, err := parsePages(fsys)
	if err != nil {
		panic(err)
	}
	return parsed
}

func parsePages(fsys fs.FS) (map[string]*template.Template, error) {
	base, err := template.New("").Funcs(Funcs()).ParseFS(fsys, "html/layout.html", "html/components/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	names, err := fs.Glob(fsys, "html/pages/*.html")
	if err != nil {
		return nil, err
	}

	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t, err := template.Must(base.Clone()).ParseFS(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		out[path.Base(name[:len(name)-len(path.Ext(name))])] = t
	}

	return out, nil
}

func newLayout(ctx context.Context, title string, props any) Layout {
	return Layout{
		Title:   title,
		User:    httpx.UserFromContext(ctx),
		CSRF:    httpx.CSRFFromContext(ctx),
		NavBar:  listing.NavBar,
		Other:   listing.Other,
		Account: listing.Account,
		Props:   props,
	}
}

// Page renders a full document: the layout around the "content" of page.
func Page(page, title string, props any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		def, err := lookup(page, "layout")
		if err != nil {
			return err
		}
		return templ.FromGoHTML(def, newLayout(ctx, title, props)).Render(ctx, w)
	})
}

// Fragment renders a single named definition of page with props as its data,
// e.g. the result list swapped in by htmx.
func Fragment(page, name string, props any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		def, err := lookup(page, name)
		if err != nil {
			return err
		}
		return templ.FromGoHTML(def, props).Render(ctx, w)
	})
}

func lookup(page, name string) (*template.Template, error) {
	t, ok := pages[page]
	if !ok {
		return nil, fmt.Errorf("templates: unknown page %q", page)
	}

	def := t.Lookup(name)
	if def == nil {
		return nil, fmt.Errorf("templates: page %q has no template %q", page, name)
	}

	return def, nil
}
