package forms

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Daskott/agenda/server/models"
	"github.com/shopspring/decimal"
)

const MSG_POSITIVE_VALUE = "Certifique-se de que este valor seja maior que 0."

var ExpenseFields = []string{"person", "value"}

type ExpenseForm struct {
	Data   map[string]string
	Errors map[string][]string

	expense models.Expense
	checked bool
}

func NewExpenseForm() *ExpenseForm {
	return &ExpenseForm{Data: map[string]string{}, Errors: map[string][]string{}}
}

func BindExpense(values url.Values) *ExpenseForm {
	form := NewExpenseForm()
	for _, field := range ExpenseFields {
		form.Data[field] = strings.TrimSpace(values.Get(field))
	}

	return form
}

func (form *ExpenseForm) IsValid() bool {
	if form.checked {
		return len(form.Errors) == 0
	}
	form.checked = true

	personID, err := strconv.ParseUint(form.Data["person"], 10, 64)
	if form.Data["person"] == "" {
		form.addError("person", models.MSG_REQUIRED)
	} else if err != nil || personID == 0 {
		form.addError("person", "Faça uma escolha válida.")
	}

	value, ok := form.parseValue()
	if ok {
		for _, msg := range models.CheckDecimal(value, models.VALUE_MAX_DIGITS, models.VALUE_DECIMAL_PLACES) {
			form.addError("value", msg)
		}
		if !value.IsPositive() {
			form.addError("value", MSG_POSITIVE_VALUE)
		}
	}

	form.expense = models.Expense{PersonID: uint(personID), Value: value}
	return len(form.Errors) == 0
}

// Expense returns the validated record. It panics if the form is not valid.
func (form *ExpenseForm) Expense() *models.Expense {
	if !form.IsValid() {
		panic("forms: Expense called on an invalid form")
	}

	expense := form.expense
	return &expense
}

func (form *ExpenseForm) AddErrors(verr *models.ValidationError) {
	for field, msgs := range verr.Fields {
		form.Errors[field] = append(form.Errors[field], msgs...)
	}
}

func (form *ExpenseForm) AddError(field, msg string) {
	form.addError(field, msg)
}

func (form *ExpenseForm) Value(field string) string {
	return form.Data[field]
}

func (form *ExpenseForm) FieldErrors(field string) []string {
	return form.Errors[field]
}

// parseValue accepts both "12.34" and "12,34".
func (form *ExpenseForm) parseValue() (decimal.Decimal, bool) {
	raw := form.Data["value"]
	if raw == "" {
		form.addError("value", models.MSG_REQUIRED)
		return decimal.Zero, false
	}

	value, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil {
		form.addError("value", models.MSG_INVALID_NUMBER)
		return decimal.Zero, false
	}

	return value, true
}

func (form *ExpenseForm) addError(field, msg string) {
	form.Errors[field] = append(form.Errors[field], msg)
}
