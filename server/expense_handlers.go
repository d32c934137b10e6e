package server

import (
	"errors"
	"net/http"

	"github.com/Daskott/agenda/server/forms"
	"github.com/Daskott/agenda/server/models"
	"gorm.io/gorm"
)

const MAX_RECEIPT_SIZE = 10 << 20

func (s *Server) listExpenses(rw http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(r)
	if !ok {
		s.notFound(rw, r)
		return
	}

	expenses, paging, err := s.repo.ListExpenses(page)
	if errors.Is(err, models.ErrInvalidPage) {
		s.notFound(rw, r)
		return
	}

	if err != nil {
		s.renderError(rw, http.StatusInternalServerError, err.Error())
		return
	}

	s.render(rw, "expense_list.html", expenseListPage{Expenses: expenses, Paging: paging}, http.StatusOK)
}

func (s *Server) printExpenses(rw http.ResponseWriter, r *http.Request) {
	expenses, err := s.repo.AllExpenses()
	if err != nil {
		s.renderError(rw, http.StatusInternalServerError, err.Error())
		return
	}

	s.render(rw, "expense_report.html", expenseReportPage{Expenses: expenses, Total: models.Total(expenses)}, http.StatusOK)
}

func (s *Server) createExpense(rw http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.renderExpenseForm(rw, forms.NewExpenseForm(), http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(rw, r.Body, MAX_RECEIPT_SIZE)
	err := r.ParseMultipartForm(MAX_RECEIPT_SIZE)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		s.renderError(rw, http.StatusBadRequest, err.Error())
		return
	}

	form := forms.BindExpense(r.PostForm)
	if !form.IsValid() {
		s.renderExpenseForm(rw, form, http.StatusOK)
		return
	}

	expense := form.Expense()
	if r.MultipartForm != nil {
		file, header, err := r.FormFile("image")
		if err == nil {
			defer file.Close()

			expense.Image, err = s.receipts.Save(r.Context(), header.Filename, file)
			if err != nil {
				logg.Info(err)
				form.AddError("image", "Envie uma imagem válida.")
				s.renderExpenseForm(rw, form, http.StatusOK)
				return
			}
		} else if !errors.Is(err, http.ErrMissingFile) {
			s.renderError(rw, http.StatusBadRequest, err.Error())
			return
		}
	}

	err = s.repo.CreateExpense(expense)

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		form.AddErrors(verr)
		s.renderExpenseForm(rw, form, http.StatusOK)
	case errors.Is(err, gorm.ErrRecordNotFound):
		form.AddError("person", "Faça uma escolha válida.")
		s.renderExpenseForm(rw, form, http.StatusOK)
	case err != nil:
		s.renderError(rw, http.StatusInternalServerError, err.Error())
	default:
		http.Redirect(rw, r, "/expense/", http.StatusFound)
	}
}

func (s *Server) renderExpenseForm(rw http.ResponseWriter, form *forms.ExpenseForm, statusCode int) {
	persons, err := s.repo.AllPersons()
	if err != nil {
		s.renderError(rw, http.StatusInternalServerError, err.Error())
		return
	}

	s.render(rw, "expense_form.html", expenseFormPage{Form: form, Persons: persons}, statusCode)
}
