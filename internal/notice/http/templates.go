package http

import (
	"embed"
	"html/template"
)

//go:embed views/*.html
var viewFS embed.FS

// Templates parses the embedded notice views. Embedding keeps the
// binary self-contained and lets handler tests render the real views
// without caring about the working directory.
func Templates() *template.Template {
	return template.Must(template.ParseFS(viewFS, "views/*.html"))
}
