package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Daskott/agenda/server/forms"
	"github.com/Daskott/agenda/server/models"
	"gorm.io/gorm"
)

func (s *Server) home(rw http.ResponseWriter, r *http.Request) {
	s.render(rw, "index.html", nil, http.StatusOK)
}

func (s *Server) listPersons(rw http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(r)
	if !ok {
		s.notFound(rw, r)
		return
	}

	query := r.URL.Query().Get("search_box")
	persons, paging, err := s.repo.ListPersons(query, page)
	if errors.Is(err, models.ErrInvalidPage) {
		s.notFound(rw, r)
		return
	}

	if err != nil {
		s.renderError(rw, http.StatusInternalServerError, err.Error())
		return
	}

	s.render(rw, "person_list.html", personListPage{Persons: persons, Paging: paging, Query: query}, http.StatusOK)
}

func (s *Server) detailPerson(rw http.ResponseWriter, r *http.Request) {
	person, ok := s.findPerson(rw, r)
	if !ok {
		return
	}

	s.render(rw, "person_detail.html", personDetailPage{Person: person}, http.StatusOK)
}

func (s *Server) createPerson(rw http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(rw, "person_form.html", personFormPage{Form: forms.NewPersonForm(nil), Action: "/person/add/"}, http.StatusOK)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.renderError(rw, http.StatusBadRequest, err.Error())
		return
	}

	form := forms.BindPerson(r.PostForm)
	if !form.IsValid() {
		s.render(rw, "person_form.html", personFormPage{Form: form, Action: "/person/add/"}, http.StatusOK)
		return
	}

	person := form.Person()
	err := s.repo.CreatePerson(person)

	var verr *models.ValidationError
	if errors.As(err, &verr) {
		form.AddErrors(verr)
		s.render(rw, "person_form.html", personFormPage{Form: form, Action: "/person/add/"}, http.StatusOK)
		return
	}

	if err != nil {
		s.renderError(rw, http.StatusInternalServerError, err.Error())
		return
	}

	http.Redirect(rw, r, person.AbsoluteURL(), http.StatusFound)
}

func (s *Server) updatePerson(rw http.ResponseWriter, r *http.Request) {
	person, ok := s.findPerson(rw, r)
	if !ok {
		return
	}

	action := person.AbsoluteURL() + "edit/"
	if r.Method == http.MethodGet {
		s.render(rw, "person_form.html", personFormPage{Form: forms.NewPersonForm(person), Person: person, Action: action}, http.StatusOK)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.renderError(rw, http.StatusBadRequest, err.Error())
		return
	}

	form := forms.BindPerson(r.PostForm)
	if !form.IsValid() {
		s.render(rw, "person_form.html", personFormPage{Form: form, Person: person, Action: action}, http.StatusOK)
		return
	}

	updated := form.Person()
	err := s.repo.UpdatePerson(person.ID, updated)

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		form.AddErrors(verr)
		s.render(rw, "person_form.html", personFormPage{Form: form, Person: person, Action: action}, http.StatusOK)
	case errors.Is(err, gorm.ErrRecordNotFound):
		s.notFound(rw, r)
	case err != nil:
		s.renderError(rw, http.StatusInternalServerError, err.Error())
	default:
		http.Redirect(rw, r, updated.AbsoluteURL(), http.StatusFound)
	}
}

func (s *Server) deletePerson(rw http.ResponseWriter, r *http.Request) {
	person, ok := s.findPerson(rw, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		s.render(rw, "person_confirm_delete.html", personDeletePage{Person: person}, http.StatusOK)
		return
	}

	err := s.repo.DeletePerson(person.ID)
	switch {
	case errors.Is(err, models.ErrProtected):
		logg.Info(err)
		s.render(rw, "person_confirm_delete.html", personDeletePage{
			Person: person,
			Error: fmt.Sprintf(
				"Não é possível excluir \"%v\" porque existem telefones vinculados a este contato.", person),
		}, http.StatusConflict)
	case errors.Is(err, gorm.ErrRecordNotFound):
		s.notFound(rw, r)
	case err != nil:
		s.renderError(rw, http.StatusInternalServerError, err.Error())
	default:
		http.Redirect(rw, r, "/person/", http.StatusFound)
	}
}

// findPerson loads the person named by the {id} route variable, writing
// the not found or error response itself when it cannot.
func (s *Server) findPerson(rw http.ResponseWriter, r *http.Request) (*models.Person, bool) {
	id, ok := idParam(r)
	if !ok {
		s.notFound(rw, r)
		return nil, false
	}

	person, err := s.repo.FindPerson(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.notFound(rw, r)
		return nil, false
	}

	if err != nil {
		s.renderError(rw, http.StatusInternalServerError, err.Error())
		return nil, false
	}

	return person, true
}
