package validation

import (
	"net/url"
	"strconv"
)

const (
	landlineLength = 10
	mobileLength   = 11
	cepLength      = 8
)

// ValidatePhone accepts a Brazilian landline (DDD + 8 digits) or mobile
// (DDD + 9 + 8 digits) number in any punctuation.
func ValidatePhone(phone string) bool {
	digits := RemoveNonNumeric(phone)
	if len(digits) != landlineLength && len(digits) != mobileLength {
		return false
	}
	areaCode, err := strconv.Atoi(digits[:2])
	if err != nil || areaCode < 11 || areaCode > 99 {
		return false
	}
	if len(digits) == mobileLength && digits[2] != '9' {
		return false
	}
	return true
}

func ValidateCEP(cep string) bool {
	digits := RemoveNonNumeric(cep)
	return len(digits) == cepLength && !repeatedDigits(digits)
}

func ValidateURL(raw string) bool {
	if raw == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
