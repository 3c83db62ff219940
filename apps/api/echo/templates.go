package echoapi

import (
	"html/template"
	"io"
	"io/fs"
	"path"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	tplStudentIndex  = "students/index.html"
	tplStudentForm   = "students/form.html"
	tplStudentDelete = "students/delete.html"
	tplCatalog       = "catalog.html"
)

var pages = []string{tplStudentIndex, tplStudentForm, tplStudentDelete, tplCatalog}

type (
	// page is the data every template receives.
	page struct {
		Title   string
		CSRF    string
		Content interface{}
	}

	templateRenderer struct {
		pages map[string]*template.Template
	}
)

func newPage(ctx echo.Context, title string, content interface{}) page {
	return page{Title: title, CSRF: csrfToken(ctx), Content: content}
}

// newTemplateRenderer parses every page together with the shared layout.
func newTemplateRenderer(fsys fs.FS) (*templateRenderer, error) {
	r := &templateRenderer{pages: make(map[string]*template.Template, len(pages))}
	layout := path.Join("templates", "layout.html")
	for _, name := range pages {
		tpl, err := template.ParseFS(fsys, layout, path.Join("templates", name))
		if err != nil {
			return nil, errors.Wrapf(err, "parsing template %s", name)
		}
		r.pages[name] = tpl
	}
	return r, nil
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tpl, ok := r.pages[name]
	if !ok {
		return errors.Errorf("unknown template %s", name)
	}
	return tpl.ExecuteTemplate(w, "layout", data)
}
