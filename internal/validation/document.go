package validation

import "github.com/inovacc/brdoc"

const (
	cpfLength  = 11
	cnpjLength = 14
)

func ValidateCPF(cpf string) bool {
	digits := RemoveNonNumeric(cpf)
	if len(digits) != cpfLength || repeatedDigits(digits) {
		return false
	}
	if cpfCheckDigit(digits[:9]) != digits[9] {
		return false
	}
	return cpfCheckDigit(digits[:10]) == digits[10]
}

func ValidateCNPJ(cnpj string) bool {
	digits := RemoveNonNumeric(cnpj)
	if len(digits) != cnpjLength || repeatedDigits(digits) {
		return false
	}
	if cnpjCheckDigit(digits[:12]) != digits[12] {
		return false
	}
	return cnpjCheckDigit(digits[:13]) == digits[13]
}

// ValidateCNPJAlphanumeric accepts both the numeric CNPJ and the alphanumeric
// layout issued from July 2026 (12 alphanumeric characters + 2 check digits).
func ValidateCNPJAlphanumeric(cnpj string) bool {
	normalized := NormalizeCNPJ(cnpj)
	if len(normalized) != cnpjLength || repeatedDigits(normalized) {
		return false
	}
	return brdoc.NewCNPJ().Validate(normalized)
}

// ValidateDocument accepts a CPF or a CNPJ in either layout.
func ValidateDocument(document string) bool {
	if len(NormalizeCNPJ(document)) == cpfLength {
		return ValidateCPF(document)
	}
	return ValidateCNPJ(document) || ValidateCNPJAlphanumeric(document)
}

// cpfCheckDigit weighs the prefix from len(prefix)+1 down to 2.
func cpfCheckDigit(prefix string) byte {
	sum := 0
	weight := len(prefix) + 1
	for i := 0; i < len(prefix); i++ {
		sum += int(prefix[i]-'0') * weight
		weight--
	}
	remainder := (sum * 10) % 11
	if remainder >= 10 {
		remainder = 0
	}
	return byte('0' + remainder)
}

// cnpjCheckDigit cycles the weights 9..2 starting at len(window)-7.
func cnpjCheckDigit(window string) byte {
	sum := 0
	pos := len(window) - 7
	for i := 0; i < len(window); i++ {
		sum += int(window[i]-'0') * pos
		pos--
		if pos < 2 {
			pos = 9
		}
	}
	if sum%11 < 2 {
		return '0'
	}
	return byte('0' + 11 - sum%11)
}
