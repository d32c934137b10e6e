package models

import (
	"fmt"
	"strings"
)

// Address holds the postal fields shared by records that have one.
type Address struct {
	Address    string `json:"address" gorm:"size:100" validate:"max=100"`
	Complement string `json:"complement" gorm:"size:100" validate:"max=100"`
	District   string `json:"district" gorm:"size:100" validate:"max=100"`
	City       string `json:"city" gorm:"size:100" validate:"max=100"`
	UF         UF     `json:"uf" gorm:"size:2" validate:"uf"`
	Cep        string `json:"cep" gorm:"size:9" validate:"max=9"`
}

type Person struct {
	BaseModel
	TimeStamped
	FirstName string `json:"first_name" gorm:"size:50;not null;index" validate:"required,max=50"`
	LastName  string `json:"last_name" gorm:"size:50" validate:"max=50"`
	Email     string `json:"email" gorm:"size:254" validate:"omitempty,max=254,email"`
	Blocked   bool   `json:"blocked" gorm:"not null;default:false"`
	Address
	Phones   []Phone   `json:"phones,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Expenses []Expense `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// String joins the non-empty name parts with a single space.
func (person Person) String() string {
	parts := []string{}
	for _, part := range []string{person.FirstName, person.LastName} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, " ")
}

func (person Person) FullName() string {
	return person.String()
}

func (person Person) AbsoluteURL() string {
	return fmt.Sprintf("/person/%d/", person.ID)
}

func (person *Person) Validate() *ValidationError {
	return ValidateStruct(person)
}

// editablePersonFields are the columns an update is allowed to touch.
var editablePersonFields = []string{
	"first_name",
	"last_name",
	"email",
	"blocked",
	"address",
	"complement",
	"district",
	"city",
	"uf",
	"cep",
	"modified",
}
