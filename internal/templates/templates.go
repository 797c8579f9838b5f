package templates

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"time"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

// Views maps every template name a handler renders to its view file.
var Views = []string{
	"posts/index.html",
	"posts/group.html",
	"posts/profile.html",
	"posts/post.html",
	"posts/create.html",
	"posts/follow.html",
	"auth/login.html",
	"auth/signup.html",
	"auth/logged_out.html",
	"error.html",
}

// Load parses each view together with the base layout and the shared
// includes. The layout goes first so executing the set runs it.
func Load(fsys fs.FS) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	layouts, err := fs.Glob(fsys, "templates/layouts/*.html")
	if err != nil {
		return nil, err
	}
	includes, err := fs.Glob(fsys, "templates/includes/*.html")
	if err != nil {
		return nil, err
	}

	for _, view := range Views {
		files := make([]string, 0, len(layouts)+len(includes)+1)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, path.Join("templates/views", view))

		tmpl, err := template.New(path.Base(files[0])).Funcs(FuncMap()).ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", view, err)
		}
		r.Add(view, tmpl)
	}
	return r, nil
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"markdown": utils.RenderMarkdown,
		"timeAgo":  timeAgo,
		"date": func(t time.Time) string {
			return t.Format("2 January 2006")
		},
		"errorFor": errorFor,
	}
}

// errorFor tolerates a missing Errors key in the page data.
func errorFor(errs any, field string) string {
	switch e := errs.(type) {
	case services.FieldErrors:
		return e[field]
	case map[string]string:
		return e[field]
	}
	return ""
}

func timeAgo(t time.Time) string {
	seconds := int(time.Since(t).Seconds())
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return plural(seconds/60, "minute")
	case seconds < 86400:
		return plural(seconds/3600, "hour")
	case seconds < 2592000:
		return plural(seconds/86400, "day")
	case seconds < 31536000:
		return plural(seconds/2592000, "month")
	}
	return plural(seconds/31536000, "year")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
