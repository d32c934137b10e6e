package server

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"time"

	"github.com/Daskott/agenda/server/forms"
	"github.com/Daskott/agenda/server/models"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

const baseTemplate = "templates/base.html"

type templates struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"money": func(value decimal.Decimal) string {
		return value.StringFixed(models.VALUE_DECIMAL_PLACES)
	},
	"date": func(value time.Time) string {
		return value.Format("02/01/2006 15:04")
	},
	"fieldArgs": func(form *forms.PersonForm, name, label string) fieldArgs {
		return fieldArgs{Form: form, Name: name, Label: label}
	},
}

// fieldArgs feeds the "text_field" partial.
type fieldArgs struct {
	Form  *forms.PersonForm
	Name  string
	Label string
}

// parseTemplates parses every page together with the base layout.
func parseTemplates() (*templates, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	tmpl := &templates{pages: map[string]*template.Template{}}
	for _, page := range pages {
		if page == baseTemplate {
			continue
		}

		t, err := template.New(path.Base(baseTemplate)).Funcs(templateFuncs).ParseFS(templateFS, baseTemplate, page)
		if err != nil {
			return nil, fmt.Errorf("parse %v: %v", page, err)
		}

		tmpl.pages[path.Base(page)] = t
	}

	return tmpl, nil
}

func (t *templates) execute(w io.Writer, page string, data interface{}) error {
	tmpl, ok := t.pages[page]
	if !ok {
		return fmt.Errorf("unknown template %q", page)
	}

	return tmpl.ExecuteTemplate(w, path.Base(baseTemplate), data)
}

// ---------------------------------------------------------------------------------//
// Page data
// --------------------------------------------------------------------------------//

type errorPage struct {
	Status  int
	Message string
}

type personListPage struct {
	Persons []models.Person
	Paging  *models.Paging
	Query   string
}

type personDetailPage struct {
	Person *models.Person
}

type personFormPage struct {
	Form   *forms.PersonForm
	Person *models.Person
	Action string
}

type personDeletePage struct {
	Person *models.Person
	Error  string
}

type expenseListPage struct {
	Expenses []models.Expense
	Paging   *models.Paging
}

type expenseFormPage struct {
	Form    *forms.ExpenseForm
	Persons []models.Person
}

type expenseReportPage struct {
	Expenses []models.Expense
	Total    decimal.Decimal
}
