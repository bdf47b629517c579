package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html templates/partials/*.html
var templatesFS embed.FS

// Tên các page template (templates/<name>.html)
const (
	PageIndex         = "index"
	PageDetail        = "detail"
	PageAbout         = "about"
	PageAddStar       = "add_star"
	PageCountry       = "country"
	PageIndustry      = "industry"
	PageConfirmDelete = "confirm_delete"
	PageSitemap       = "sitemap"
	PageSitemapLetter = "sitemap_letter"
	PageNotFound      = "404"
	PageServerError   = "500"
)

var pages = []string{
	PageIndex, PageDetail, PageAbout, PageAddStar, PageCountry, PageIndustry,
	PageConfirmDelete, PageSitemap, PageSitemapLetter, PageNotFound, PageServerError,
}

// Renderer implement gin render.HTMLRender.
// Mỗi page được parse cùng layout + partials thành một template riêng,
// nên các page có thể định nghĩa cùng tên block "content".
type Renderer struct {
	templates map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

func NewRenderer(funcs template.FuncMap) (*Renderer, error) {
	partials, err := fs.Glob(templatesFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob partials: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		files := append([]string{"templates/layout.html", path.Join("templates", name+".html")}, partials...)

		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

// Instance: gin gọi khi handler dùng c.HTML(status, name, data)
func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.templates[name]
	if !ok {
		tmpl = r.templates[PageServerError]
	}
	return render.HTML{Template: tmpl, Name: "layout", Data: data}
}
