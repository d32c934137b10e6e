package models

type Phone struct {
	BaseModel
	Phone     string    `json:"phone" gorm:"size:20" validate:"max=20"`
	PhoneType PhoneType `json:"phone_type" gorm:"size:3;not null;default:pri" validate:"phone_type"`
	PersonID  uint      `json:"person_id" gorm:"not null;index" validate:"required"`
}

func (phone Phone) String() string {
	return phone.Phone
}

func (phone *Phone) Validate() *ValidationError {
	if phone.PhoneType == "" {
		phone.PhoneType = PRINCIPAL_PHONE
	}

	return ValidateStruct(phone)
}

var editablePhoneFields = []string{"phone", "phone_type"}
