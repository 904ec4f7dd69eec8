package validation

import (
	"math"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxUnitLength bounds apartment/unit identifiers such as "101", "B-12" or "3/204".
const MaxUnitLength = 10

var (
	namePattern          = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\p{Zs}\s]+$`)
	unitPattern          = regexp.MustCompile(`^[0-9A-Za-z\-/]+$`)
	legacyPlatePattern   = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)
	mercosulPlatePattern = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)
)

// ValidateName requires a full name: at least two words of two or more
// letters each, accented Latin letters included.
func ValidateName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if utf8.RuneCountInString(trimmed) < 3 {
		return false
	}
	parts := strings.Fields(trimmed)
	if len(parts) < 2 {
		return false
	}
	for _, part := range parts {
		if utf8.RuneCountInString(part) < 2 {
			return false
		}
	}
	return namePattern.MatchString(trimmed)
}

func ValidatePlate(plate string) bool {
	cleaned := NormalizePlate(plate)
	if cleaned == "" {
		return false
	}
	return legacyPlatePattern.MatchString(cleaned) || mercosulPlatePattern.MatchString(cleaned)
}

func ValidateUnit(unit string) bool {
	trimmed := strings.TrimSpace(unit)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > MaxUnitLength {
		return false
	}
	return unitPattern.MatchString(trimmed)
}

// ValidateRequired reports whether value carries something to validate.
// Pointers are followed; collections must be non-empty and floats not NaN.
func ValidateRequired(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case bool:
		return v
	case float64:
		return !math.IsNaN(v)
	case float32:
		return !math.IsNaN(float64(v))
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return false
		}
		return ValidateRequired(rv.Elem().Interface())
	case reflect.String:
		return strings.TrimSpace(rv.String()) != ""
	case reflect.Slice, reflect.Map:
		return !rv.IsNil() && rv.Len() > 0
	case reflect.Array:
		return rv.Len() > 0
	default:
		return true
	}
}

func ValidateMinLength(value string, minLength int) bool {
	if value == "" {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(value)) >= minLength
}

// ValidateMaxLength treats an empty value as within any maximum.
func ValidateMaxLength(value string, maxLength int) bool {
	if value == "" {
		return true
	}
	return utf8.RuneCountInString(strings.TrimSpace(value)) <= maxLength
}
