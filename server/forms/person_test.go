package forms

import (
	"net/url"
	"testing"

	"github.com/Daskott/agenda/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPersonValues() url.Values {
	return url.Values{
		"first_name": {"Regis"},
		"last_name":  {"da Silva"},
		"email":      {"regis@example.com"},
		"address":    {"Rua Um, 123"},
		"complement": {""},
		"district":   {"Centro"},
		"city":       {"São Paulo"},
		"uf":         {"SP"},
		"cep":        {"01000-000"},
		"blocked":    {"on"},
	}
}

func TestPersonFieldsOrder(t *testing.T) {
	assert.Equal(t, []string{
		"first_name", "last_name", "email", "address", "complement",
		"district", "city", "uf", "cep", "blocked",
	}, PersonFields)
}

func TestBindPersonValid(t *testing.T) {
	values := validPersonValues()
	values.Set("first_name", "  Regis ")
	values.Set("unknown", "ignored")

	form := BindPerson(values)
	require.True(t, form.IsValid(), "errors: %v", form.Errors)

	person := form.Person()
	assert.Equal(t, "Regis", person.FirstName)
	assert.Equal(t, "Regis da Silva", person.String())
	assert.Equal(t, models.UF("SP"), person.UF)
	assert.True(t, person.Blocked)
	assert.NotContains(t, form.Data, "unknown")
}

func TestBindPersonInvalid(t *testing.T) {
	cases := []struct {
		description string
		field       string
		value       string
		message     string
	}{
		{"first name is required", "first_name", "", models.MSG_REQUIRED},
		{"email must be valid", "email", "regis@", models.MSG_INVALID_EMAIL},
		{"uf must be a choice", "uf", "XX", "Faça uma escolha válida. XX não é uma das escolhas disponíveis."},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			values := validPersonValues()
			values.Set(c.field, c.value)

			form := BindPerson(values)
			assert.False(t, form.IsValid())
			assert.Equal(t, []string{c.message}, form.FieldErrors(c.field))
			assert.Equal(t, c.value, form.Value(c.field), "bound data should be kept for re-rendering")
			assert.Panics(t, func() { form.Person() })
		})
	}
}

func TestBindPersonUnchecked(t *testing.T) {
	values := validPersonValues()
	values.Del("blocked")

	form := BindPerson(values)
	require.True(t, form.IsValid())
	assert.False(t, form.Person().Blocked)
	assert.False(t, form.Checked("blocked"))
}

func TestNewPersonFormFromPerson(t *testing.T) {
	person := &models.Person{
		FirstName: "Ana",
		Blocked:   true,
		Address:   models.Address{City: "Recife", UF: "PE"},
	}

	form := NewPersonForm(person)
	assert.Equal(t, "Ana", form.Value("first_name"))
	assert.Equal(t, "Recife", form.Value("city"))
	assert.Equal(t, "PE", form.Value("uf"))
	assert.True(t, form.Checked("blocked"))
	assert.Empty(t, form.Errors)
}

func TestPersonFormAddErrors(t *testing.T) {
	form := BindPerson(validPersonValues())
	require.True(t, form.IsValid())

	verr := models.NewValidationError()
	verr.Add("email", "taken")
	form.AddErrors(verr)

	assert.Equal(t, []string{"taken"}, form.FieldErrors("email"))
}
