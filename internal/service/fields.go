package service

import (
	"time"

	"condo-forms/internal/validation"
)

const (
	FieldCPF            = "cpf"
	FieldCNPJ           = "cnpj"
	FieldDocument       = "document"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldCEP            = "cep"
	FieldName           = "name"
	FieldPlate          = "plate"
	FieldDate           = "date"
	FieldBirthDate      = "birth_date"
	FieldURL            = "url"
	FieldUnit           = "unit"
	FieldPassword       = "password"
	FieldStrongPassword = "strong_password"
	FieldMoney          = "money"
	FieldPercentage     = "percentage"
)

type fieldChecker struct {
	check   func(value string) bool
	format  func(value string) string
	message string
}

func lookupChecker(field string, now func() time.Time) (fieldChecker, bool) {
	switch field {
	case FieldCPF:
		return fieldChecker{validation.ValidateCPF, validation.FormatCPF, "CPF inválido"}, true
	case FieldCNPJ:
		return fieldChecker{validation.ValidateCNPJAlphanumeric, validation.FormatCNPJAlphanumeric, "CNPJ inválido"}, true
	case FieldDocument:
		return fieldChecker{validation.ValidateDocument, validation.FormatDocument, "CPF/CNPJ inválido"}, true
	case FieldEmail:
		return fieldChecker{validation.ValidateEmail, nil, "E-mail inválido"}, true
	case FieldPhone:
		return fieldChecker{validation.ValidatePhone, validation.FormatPhone, "Telefone inválido"}, true
	case FieldCEP:
		return fieldChecker{validation.ValidateCEP, validation.FormatCEP, "CEP inválido"}, true
	case FieldName:
		return fieldChecker{validation.ValidateName, nil, "Informe o nome completo"}, true
	case FieldPlate:
		return fieldChecker{validation.ValidatePlate, validation.FormatPlate, "Placa inválida"}, true
	case FieldDate:
		return fieldChecker{validation.ValidateDate, nil, "Data inválida"}, true
	case FieldBirthDate:
		adult := func(value string) bool { return validation.ValidateAgeAt(value, now()) }
		return fieldChecker{adult, nil, "É necessário ter pelo menos 18 anos"}, true
	case FieldURL:
		return fieldChecker{validation.ValidateURL, nil, "URL inválida"}, true
	case FieldUnit:
		return fieldChecker{validation.ValidateUnit, nil, "Unidade inválida"}, true
	default:
		return fieldChecker{}, false
	}
}

func lookupFormatter(field string) (func(string) string, bool) {
	switch field {
	case FieldCPF:
		return validation.FormatCPF, true
	case FieldCNPJ:
		return validation.FormatCNPJAlphanumeric, true
	case FieldDocument:
		return validation.FormatDocument, true
	case FieldCEP:
		return validation.FormatCEP, true
	case FieldPhone:
		return validation.FormatPhone, true
	case FieldPlate:
		return validation.FormatPlate, true
	case FieldMoney:
		return validation.FormatMoney, true
	case FieldDate:
		return validation.FormatDate, true
	case FieldPercentage:
		return validation.FormatPercentage, true
	default:
		return nil, false
	}
}

// checkField runs the rules of a single field. ok is false for unknown fields.
func checkField(field string, value string, now func() time.Time) (FieldResult, bool) {
	switch field {
	case FieldPassword:
		result := validation.ValidatePassword(value)
		return FieldResult{Field: field, Valid: result.Valid, Errors: result.Errors}, true
	case FieldStrongPassword:
		result := validation.ValidateStrongPassword(value)
		return FieldResult{Field: field, Valid: result.Valid, Errors: result.Errors, Strength: result.Strength}, true
	}

	checker, ok := lookupChecker(field, now)
	if !ok {
		return FieldResult{}, false
	}

	result := FieldResult{Field: field, Valid: checker.check(value), Errors: []string{}}
	if !result.Valid {
		result.Errors = append(result.Errors, checker.message)
		return result, true
	}
	if checker.format != nil {
		result.Formatted = checker.format(value)
	}
	return result, true
}
