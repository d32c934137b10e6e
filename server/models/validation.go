package models

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"
)

const (
	MSG_REQUIRED       = "Este campo é obrigatório."
	MSG_INVALID_EMAIL  = "Informe um endereço de email válido."
	MSG_INVALID_NUMBER = "Informe um número."
	MSG_MAX_DIGITS     = "Certifique-se de que não tenha mais de %d dígitos no total."
	MSG_MAX_DECIMALS   = "Certifique-se de que não tenha mais de %d casas decimais."

	VALUE_MAX_DIGITS     = 8
	VALUE_DECIMAL_PLACES = 2
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	err := RegisterValidators(validate)
	if err != nil {
		panic(err)
	}
}

// RegisterValidators adds the choice-field tags ("uf", "phone_type") to v.
func RegisterValidators(v *validator.Validate) error {
	err := v.RegisterValidation("uf", func(fl validator.FieldLevel) bool {
		return UF(fl.Field().String()).Valid()
	})
	if err != nil {
		return err
	}

	return v.RegisterValidation("phone_type", func(fl validator.FieldLevel) bool {
		return PhoneType(fl.Field().String()).Valid()
	})
}

// ValidationError maps a field name to the messages describing what is
// wrong with it.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// Merge copies every message of other into e.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}

	for field, msgs := range other.Fields {
		for _, msg := range msgs {
			e.Add(field, msg)
		}
	}
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], " ")))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateStruct runs the struct's validate tags and returns the failures
// as a *ValidationError, or nil if there are none.
func ValidateStruct(s interface{}) *ValidationError {
	verr := NewValidationError()

	err := validate.Struct(s)
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range errs {
			verr.Add(fe.Field(), messageFor(fe))
		}
	} else if err != nil {
		verr.Add("__all__", err.Error())
	}

	if verr.Empty() {
		return nil
	}

	return verr
}

// CheckDecimal reports the precision problems of value, if any.
func CheckDecimal(value decimal.Decimal, maxDigits, decimalPlaces int) []string {
	var msgs []string

	if !value.Equal(value.Round(int32(decimalPlaces))) {
		msgs = append(msgs, fmt.Sprintf(MSG_MAX_DECIMALS, decimalPlaces))
	}

	limit := decimal.New(1, int32(maxDigits-decimalPlaces))
	if value.Abs().GreaterThanOrEqual(limit) {
		msgs = append(msgs, fmt.Sprintf(MSG_MAX_DIGITS, maxDigits))
	}

	return msgs
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MSG_REQUIRED
	case "email":
		return MSG_INVALID_EMAIL
	case "max":
		return fmt.Sprintf(
			"Certifique-se de que o valor tenha no máximo %s caracteres (ele possui %d).",
			fe.Param(), utf8.RuneCountInString(fmt.Sprint(fe.Value())))
	case "uf", "phone_type":
		return fmt.Sprintf("Faça uma escolha válida. %v não é uma das escolhas disponíveis.", fe.Value())
	}

	return fmt.Sprintf("Valor inválido (%s).", fe.Tag())
}
