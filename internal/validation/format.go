package validation

import "strconv"

const (
	dateDigits        = 8
	percentageCeiling = 1000
)

func FormatCPF(cpf string) string {
	digits := RemoveNonNumeric(cpf)
	if len(digits) != cpfLength {
		return cpf
	}
	return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11]
}

func FormatCNPJ(cnpj string) string {
	digits := RemoveNonNumeric(cnpj)
	if len(digits) != cnpjLength {
		return cnpj
	}
	return maskCNPJ(digits)
}

// FormatCNPJAlphanumeric masks a CNPJ in either layout, upper-casing letters.
// Anything that is not 14 characters long is returned unchanged.
func FormatCNPJAlphanumeric(cnpj string) string {
	normalized := NormalizeCNPJ(cnpj)
	if len(normalized) != cnpjLength {
		return cnpj
	}
	return maskCNPJ(normalized)
}

// FormatDocument masks a CPF or a CNPJ (numeric or alphanumeric). Anything
// else is returned unchanged.
func FormatDocument(document string) string {
	normalized := NormalizeCNPJ(document)
	switch {
	case len(normalized) == cpfLength:
		return FormatCPF(document)
	case len(normalized) == cnpjLength:
		return maskCNPJ(normalized)
	default:
		return document
	}
}

func maskCNPJ(s string) string {
	return s[0:2] + "." + s[2:5] + "." + s[5:8] + "/" + s[8:12] + "-" + s[12:14]
}

func FormatCEP(cep string) string {
	digits := RemoveNonNumeric(cep)
	if len(digits) != cepLength {
		return cep
	}
	return digits[0:5] + "-" + digits[5:8]
}

// FormatPhone masks a phone number progressively so it can run on every
// keystroke: "(1", "(11) 987", "(11) 98765-43", "(11) 98765-4321".
func FormatPhone(phone string) string {
	digits := RemoveNonNumeric(phone)
	switch n := len(digits); {
	case n == 0:
		return phone
	case n <= 2:
		return "(" + digits
	case n <= 7:
		return "(" + digits[:2] + ") " + digits[2:]
	case n <= 9:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	case n == landlineLength:
		return "(" + digits[:2] + ") " + digits[2:6] + "-" + digits[6:]
	case n == mobileLength:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	default:
		return phone
	}
}

// FormatPlate hyphenates legacy plates (ABC-1234). Mercosul plates have no
// separator and anything else comes back stripped and upper-cased.
func FormatPlate(plate string) string {
	cleaned := NormalizePlate(plate)
	if legacyPlatePattern.MatchString(cleaned) {
		return cleaned[:3] + "-" + cleaned[3:]
	}
	return cleaned
}

// FormatDate inserts the slashes of DD/MM/YYYY while the user types.
func FormatDate(date string) string {
	digits := RemoveNonNumeric(date)
	if len(digits) > dateDigits {
		digits = digits[:dateDigits]
	}
	switch {
	case len(digits) <= 2:
		return digits
	case len(digits) <= 4:
		return digits[:2] + "/" + digits[2:]
	default:
		return digits[:2] + "/" + digits[2:4] + "/" + digits[4:]
	}
}

// FormatPercentage reads three digits as tenths ("125" is 12,5%) and fewer
// as whole units; 1000 and above clamp to 100%.
func FormatPercentage(value string) string {
	digits := RemoveNonNumeric(value)
	if digits == "" {
		return ""
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n >= percentageCeiling {
		return "100%"
	}
	if n >= 100 {
		return strconv.Itoa(n/10) + "," + strconv.Itoa(n%10) + "%"
	}
	return strconv.Itoa(n) + "%"
}
