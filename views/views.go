// Package views holds the server-rendered pages.
package views

import (
	"embed"
	"html/template"
	"time"

	"instabarakat-leads/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// TimeLayout is how timestamps are shown on the dashboard.
const TimeLayout = "02.01.2006 15:04"

// Templates parses every page. Times are rendered in loc.
func Templates(loc *time.Location) *template.Template {
	if loc == nil {
		loc = time.UTC
	}
	funcs := template.FuncMap{
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.In(loc).Format(TimeLayout)
		},
		"seconds": func(d time.Duration) int {
			return int(d / time.Second)
		},
		"statuses": func() []models.SubmissionStatus {
			return models.SubmissionStatuses
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))
}
