// Package ui renders the HTML pages from templates embedded in the binary.
// Every page shares the navigation shell defined in layout.html.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"trainerweb/internal/service"
)

//go:embed templates/*.html
var files embed.FS

// Page names accepted by Render.
const (
	PageHome      = "home"
	PageCustomers = "customers"
	PageTrainings = "trainings"
	PageError     = "error"
)

// Page is the data handed to the layout. Active selects the highlighted link.
type Page struct {
	Title     string
	Active    string
	RequestID string
	Data      any
}

// ErrorData is the Data of the error page.
type ErrorData struct {
	Status  int
	Message string
}

// CustomersData is the Data of the customer page: the session's view state
// with its rows already sorted and filtered by Query.
type CustomersData struct {
	service.CustomerState
	Query service.ListQuery
}

// TrainingsData is the Data of the training page.
type TrainingsData struct {
	service.TrainingState
	Query service.ListQuery
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{PageHome, PageCustomers, PageTrainings, PageError} {
		t, err := template.ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes the named page wrapped in the navigation shell.
func (r *Renderer) Render(w io.Writer, name string, p Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", p)
}
