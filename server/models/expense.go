package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Expense struct {
	BaseModel
	TimeStamped
	PersonID uint            `json:"person_id" gorm:"not null;index" validate:"required"`
	Person   *Person         `json:"person,omitempty"`
	Value    decimal.Decimal `json:"value" gorm:"type:decimal(8,2);not null"`
	Image    string          `json:"image,omitempty" gorm:"size:100"`
}

// String renders "<person> - <value>" with the value at two decimal places.
// It needs the Person association: every Store method returning an expense
// loads it, and an expense built by hand without it renders " - <value>".
func (expense Expense) String() string {
	person := ""
	if expense.Person != nil {
		person = expense.Person.String()
	}

	return fmt.Sprintf("%s - %s", person, expense.Value.StringFixed(VALUE_DECIMAL_PLACES))
}

func (expense *Expense) Validate() *ValidationError {
	verr := NewValidationError()
	verr.Merge(ValidateStruct(expense))

	for _, msg := range CheckDecimal(expense.Value, VALUE_MAX_DIGITS, VALUE_DECIMAL_PLACES) {
		verr.Add("value", msg)
	}

	if verr.Empty() {
		return nil
	}

	return verr
}

// Total sums the expense values exactly.
func Total(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Value)
	}

	return total
}

var editableExpenseFields = []string{"person_id", "value", "image", "modified"}
