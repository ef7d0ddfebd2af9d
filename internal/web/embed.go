package web

import (
	"embed"
	"html/template"
	"io"
	"log/slog"
)

//go:embed templates
var templateFiles embed.FS

// Templates is the compiled template set for all views.
var Templates *template.Template

func init() {
	var err error

	Templates, err = template.New("").ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		slog.Error("web: failed to parse templates", "err", err)
		panic(err)
	}
}

// Page is the view model for the analyzer page. Error is the banner text as shown.
type Page struct {
	Title    string
	Warning  string
	Accept   string
	Context  string
	Analysis string
	Error    string
	// Succeeded marks a completed call; the section is shown even when Analysis is empty.
	Succeeded bool
}

// HasAnalysis reports whether the page shows a result section.
func (p Page) HasAnalysis() bool {
	return p.Error == "" && p.Succeeded
}

// WithAnalysis sets the text returned by a successful analysis call.
func (p Page) WithAnalysis(text string) Page {
	p.Analysis = text
	p.Succeeded = true
	return p
}

const (
	pageTitle   = "Financial Literacy Expense Analyzer"
	pageWarning = "Do NOT upload or include any personal or sensitive information such as Social Security Numbers, " +
		"bank account numbers, routing numbers, passwords, or home address."
)

// NewPage returns a page with the fixed title and warning banner.
func NewPage(accept string) Page {
	return Page{Title: pageTitle, Warning: pageWarning, Accept: accept}
}

// WithFailure sets the banner for a failed analysis call.
func (p Page) WithFailure(description string) Page {
	p.Error = "Error: " + description
	p.Succeeded = false
	return p
}

// RenderIndex writes the analyzer page. Values are HTML-escaped by the template.
func RenderIndex(w io.Writer, p Page) error {
	return Templates.ExecuteTemplate(w, "index.html", p)
}
