package forms

import (
	"net/url"
	"strings"

	"github.com/Daskott/agenda/server/models"
)

// PersonFields lists the person form fields in display order.
var PersonFields = []string{
	"first_name",
	"last_name",
	"email",
	"address",
	"complement",
	"district",
	"city",
	"uf",
	"cep",
	"blocked",
}

type PersonForm struct {
	Data   map[string]string
	Errors map[string][]string

	person  models.Person
	checked bool
}

// NewPersonForm returns an unbound form, pre-filled from person when it is
// not nil (as the edit page does).
func NewPersonForm(person *models.Person) *PersonForm {
	form := &PersonForm{Data: map[string]string{}, Errors: map[string][]string{}}
	if person == nil {
		return form
	}

	form.Data = map[string]string{
		"first_name": person.FirstName,
		"last_name":  person.LastName,
		"email":      person.Email,
		"address":    person.Address.Address,
		"complement": person.Complement,
		"district":   person.District,
		"city":       person.City,
		"uf":         string(person.UF),
		"cep":        person.Cep,
	}
	if person.Blocked {
		form.Data["blocked"] = "on"
	}

	return form
}

// BindPerson reads the person fields from values. Unknown keys are ignored.
func BindPerson(values url.Values) *PersonForm {
	form := NewPersonForm(nil)
	for _, field := range PersonFields {
		form.Data[field] = strings.TrimSpace(values.Get(field))
	}

	return form
}

// IsValid validates the bound data, filling Errors on failure.
func (form *PersonForm) IsValid() bool {
	if form.checked {
		return len(form.Errors) == 0
	}

	form.checked = true
	form.person = models.Person{
		FirstName: form.Data["first_name"],
		LastName:  form.Data["last_name"],
		Email:     form.Data["email"],
		Blocked:   parseCheckbox(form.Data["blocked"]),
		Address: models.Address{
			Address:    form.Data["address"],
			Complement: form.Data["complement"],
			District:   form.Data["district"],
			City:       form.Data["city"],
			UF:         models.UF(form.Data["uf"]),
			Cep:        form.Data["cep"],
		},
	}

	if verr := form.person.Validate(); verr != nil {
		form.Errors = verr.Fields
	}

	return len(form.Errors) == 0
}

// Person returns the validated record. It panics if the form is not valid.
func (form *PersonForm) Person() *models.Person {
	if !form.IsValid() {
		panic("forms: Person called on an invalid form")
	}

	person := form.person
	return &person
}

// AddErrors merges a *models.ValidationError raised later by the store.
func (form *PersonForm) AddErrors(verr *models.ValidationError) {
	for field, msgs := range verr.Fields {
		form.Errors[field] = append(form.Errors[field], msgs...)
	}
}

func (form *PersonForm) Value(field string) string {
	return form.Data[field]
}

func (form *PersonForm) Checked(field string) bool {
	return parseCheckbox(form.Data[field])
}

func (form *PersonForm) FieldErrors(field string) []string {
	return form.Errors[field]
}

func (form *PersonForm) StateChoices() []models.Choice {
	return models.STATE_CHOICES
}

func parseCheckbox(value string) bool {
	switch strings.ToLower(value) {
	case "on", "true", "1", "yes":
		return true
	}

	return false
}
