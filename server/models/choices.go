package models

import "fmt"

// UF is a Brazilian state code.
type UF string

// Choice is a (code, label) pair, in the order it should be offered to users.
type Choice struct {
	Value string
	Label string
}

var STATE_CHOICES = []Choice{
	{"AC", "Acre"},
	{"AL", "Alagoas"},
	{"AP", "Amapá"},
	{"AM", "Amazonas"},
	{"BA", "Bahia"},
	{"CE", "Ceará"},
	{"DF", "Distrito Federal"},
	{"ES", "Espírito Santo"},
	{"GO", "Goiás"},
	{"MA", "Maranhão"},
	{"MT", "Mato Grosso"},
	{"MS", "Mato Grosso do Sul"},
	{"MG", "Minas Gerais"},
	{"PA", "Pará"},
	{"PB", "Paraíba"},
	{"PR", "Paraná"},
	{"PE", "Pernambuco"},
	{"PI", "Piauí"},
	{"RJ", "Rio de Janeiro"},
	{"RN", "Rio Grande do Norte"},
	{"RS", "Rio Grande do Sul"},
	{"RO", "Rondônia"},
	{"RR", "Roraima"},
	{"SC", "Santa Catarina"},
	{"SP", "São Paulo"},
	{"SE", "Sergipe"},
	{"TO", "Tocantins"},
}

// ParseUF returns the UF for code. The empty string is a valid "not set" value.
func ParseUF(code string) (UF, error) {
	if code == "" {
		return "", nil
	}

	for _, choice := range STATE_CHOICES {
		if choice.Value == code {
			return UF(code), nil
		}
	}

	return "", fmt.Errorf("invalid uf %q", code)
}

func (uf UF) Valid() bool {
	_, err := ParseUF(string(uf))
	return err == nil
}

// Label returns the state name, or the raw code if it is unknown.
func (uf UF) Label() string {
	return label(STATE_CHOICES, string(uf))
}

// PhoneType classifies a phone number.
type PhoneType string

const (
	PRINCIPAL_PHONE   PhoneType = "pri"
	COMMERCIAL_PHONE  PhoneType = "com"
	RESIDENTIAL_PHONE PhoneType = "res"
	CELLULAR_PHONE    PhoneType = "cel"
	CLARO_PHONE       PhoneType = "cl"
	OI_PHONE          PhoneType = "oi"
	TIM_PHONE         PhoneType = "t"
	VIVO_PHONE        PhoneType = "v"
	NEXTEL_PHONE      PhoneType = "n"
	FAX_PHONE         PhoneType = "fax"
	OTHER_PHONE       PhoneType = "o"
)

var PHONE_TYPE_CHOICES = []Choice{
	{string(PRINCIPAL_PHONE), "principal"},
	{string(COMMERCIAL_PHONE), "comercial"},
	{string(RESIDENTIAL_PHONE), "residencial"},
	{string(CELLULAR_PHONE), "celular"},
	{string(CLARO_PHONE), "Claro"},
	{string(OI_PHONE), "Oi"},
	{string(TIM_PHONE), "Tim"},
	{string(VIVO_PHONE), "Vivo"},
	{string(NEXTEL_PHONE), "Nextel"},
	{string(FAX_PHONE), "fax"},
	{string(OTHER_PHONE), "outros"},
}

// ParsePhoneType returns the PhoneType for code, defaulting to principal
// when code is empty.
func ParsePhoneType(code string) (PhoneType, error) {
	if code == "" {
		return PRINCIPAL_PHONE, nil
	}

	for _, choice := range PHONE_TYPE_CHOICES {
		if choice.Value == code {
			return PhoneType(code), nil
		}
	}

	return "", fmt.Errorf("invalid phone type %q", code)
}

func (pt PhoneType) Valid() bool {
	if pt == "" {
		return false
	}

	_, err := ParsePhoneType(string(pt))
	return err == nil
}

func (pt PhoneType) Label() string {
	return label(PHONE_TYPE_CHOICES, string(pt))
}

func label(choices []Choice, value string) string {
	for _, choice := range choices {
		if choice.Value == value {
			return choice.Label
		}
	}

	return value
}
