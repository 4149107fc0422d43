package pages

import (
	"html/template"
	"net/url"
	"strconv"
	"time"
)

// TemplateFuncs are the helpers the page templates rely on, mainly for
// building pagination links that keep the active filters.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"pageurl": func(path string, p listParams, page int) string {
			q := url.Values{}
			if p.Search != "" {
				q.Set("search", p.Search)
			}
			if p.Status != "" {
				q.Set("status", p.Status)
			}
			q.Set("page", strconv.Itoa(page))
			q.Set("limit", strconv.Itoa(p.Limit))
			return path + "?" + q.Encode()
		},
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006 15:04")
		},
		"money": func(v float64) string {
			return strconv.FormatFloat(v, 'f', 2, 64)
		},
	}
}
