package validation

import (
	"regexp"
	"unicode/utf8"
)

type Strength string

const (
	StrengthWeak       Strength = "Fraca"
	StrengthMedium     Strength = "Média"
	StrengthStrong     Strength = "Forte"
	StrengthVeryStrong Strength = "Muito Forte"
)

// Messages surfaced verbatim by the app screens.
const (
	MessagePasswordRequired    = "Senha é obrigatória"
	MessagePasswordMinLength   = "Senha deve ter no mínimo 6 caracteres"
	MessagePasswordLetter      = "Senha deve conter pelo menos uma letra"
	MessagePasswordNumber      = "Senha deve conter pelo menos um número"
	MessageStrongMinLength     = "Senha deve ter no mínimo 8 caracteres"
	MessageStrongLowercase     = "Senha deve conter pelo menos uma letra minúscula"
	MessageStrongUppercase     = "Senha deve conter pelo menos uma letra maiúscula"
	MessageStrongSpecialSymbol = "Senha deve conter pelo menos um caractere especial"
)

const (
	passwordMinLength       = 6
	strongPasswordMinLength = 8
	strongLength            = 10
	veryStrongLength        = 12
)

var (
	letterPattern    = regexp.MustCompile(`[a-zA-Z]`)
	lowercasePattern = regexp.MustCompile(`[a-z]`)
	uppercasePattern = regexp.MustCompile(`[A-Z]`)
	digitPattern     = regexp.MustCompile(`[0-9]`)
	specialPattern   = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// Result is the outcome of a multi-rule check. Errors lists every broken
// rule in a fixed order; Strength is only meaningful when Valid is true.
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Strength Strength `json:"strength,omitempty"`
}

func ValidatePassword(password string) Result {
	if password == "" {
		return Result{Errors: []string{MessagePasswordRequired}}
	}

	errs := []string{}
	if utf8.RuneCountInString(password) < passwordMinLength {
		errs = append(errs, MessagePasswordMinLength)
	}
	if !letterPattern.MatchString(password) {
		errs = append(errs, MessagePasswordLetter)
	}
	if !digitPattern.MatchString(password) {
		errs = append(errs, MessagePasswordNumber)
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

func ValidateStrongPassword(password string) Result {
	if password == "" {
		return Result{Errors: []string{MessagePasswordRequired}, Strength: StrengthWeak}
	}

	length := utf8.RuneCountInString(password)
	errs := []string{}
	if length < strongPasswordMinLength {
		errs = append(errs, MessageStrongMinLength)
	}
	if !lowercasePattern.MatchString(password) {
		errs = append(errs, MessageStrongLowercase)
	}
	if !uppercasePattern.MatchString(password) {
		errs = append(errs, MessageStrongUppercase)
	}
	if !digitPattern.MatchString(password) {
		errs = append(errs, MessagePasswordNumber)
	}
	if !specialPattern.MatchString(password) {
		errs = append(errs, MessageStrongSpecialSymbol)
	}

	result := Result{Valid: len(errs) == 0, Errors: errs, Strength: StrengthWeak}
	if !result.Valid {
		return result
	}

	switch {
	case length >= veryStrongLength:
		result.Strength = StrengthVeryStrong
	case length >= strongLength:
		result.Strength = StrengthStrong
	default:
		result.Strength = StrengthMedium
	}
	return result
}
