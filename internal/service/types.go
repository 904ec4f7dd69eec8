package service

import "condo-forms/internal/validation"

type FieldInput struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type FieldResult struct {
	Field     string              `json:"field"`
	Valid     bool                `json:"valid"`
	Errors    []string            `json:"errors"`
	Strength  validation.Strength `json:"strength,omitempty"`
	Formatted string              `json:"formatted,omitempty"`
}

type BatchInput struct {
	Items []FieldInput `json:"items" binding:"required,dive"`
}

type BatchOutput struct {
	BatchID string        `json:"batch_id"`
	Valid   bool          `json:"valid"`
	Results []FieldResult `json:"results"`
}

type ResidentRegistrationInput struct {
	Name                 string `json:"name" validate:"required,fullname"`
	Email                string `json:"email" validate:"required,emailaddr"`
	CPF                  string `json:"cpf" validate:"required,cpf"`
	Phone                string `json:"phone" validate:"required,phone_br"`
	BirthDate            string `json:"birth_date" validate:"required,date_br,adult"`
	Unit                 string `json:"unit" validate:"required,unit"`
	CEP                  string `json:"cep" validate:"omitempty,cep"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

type ResidentRegistrationOutput struct {
	Name             string              `json:"name"`
	Email            string              `json:"email"`
	CPF              string              `json:"cpf"`
	Phone            string              `json:"phone"`
	BirthDate        string              `json:"birth_date"`
	Age              int                 `json:"age"`
	Unit             string              `json:"unit"`
	CEP              string              `json:"cep,omitempty"`
	PasswordStrength validation.Strength `json:"password_strength"`
}

type VisitorAuthorizationInput struct {
	Name      string `json:"name" validate:"required,fullname"`
	Document  string `json:"document" validate:"required,document"`
	Phone     string `json:"phone" validate:"omitempty,phone_br"`
	Plate     string `json:"plate" validate:"omitempty,plate"`
	VisitDate string `json:"visit_date" validate:"required,date_br,not_past"`
	Unit      string `json:"unit" validate:"required,unit"`
	PhotoURL  string `json:"photo_url" validate:"omitempty,httpurl"`
}

type VisitorAuthorizationOutput struct {
	Name      string `json:"name"`
	Document  string `json:"document"`
	Phone     string `json:"phone,omitempty"`
	Plate     string `json:"plate,omitempty"`
	VisitDate string `json:"visit_date"`
	Unit      string `json:"unit"`
	PhotoURL  string `json:"photo_url,omitempty"`
}

type ReservationInput struct {
	Amenity string `json:"amenity" validate:"notblank,minchars=3,maxchars=60"`
	Unit    string `json:"unit" validate:"required,unit"`
	Date    string `json:"date" validate:"required,date_br,not_past"`
	Guests  int    `json:"guests" validate:"gte=0,lte=50"`
	Notes   string `json:"notes" validate:"maxchars=500"`
	Fee     string `json:"fee" validate:"omitempty,money"`
}

type ReservationOutput struct {
	Amenity   string  `json:"amenity"`
	Unit      string  `json:"unit"`
	Date      string  `json:"date"`
	Guests    int     `json:"guests"`
	Notes     string  `json:"notes,omitempty"`
	Fee       string  `json:"fee,omitempty"`
	FeeAmount float64 `json:"fee_amount"`
}

type FormatOutput struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type MoneyOutput struct {
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
}
