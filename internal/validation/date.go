package validation

import (
	"regexp"
	"strconv"
	"time"
)

// MinimumAge is the age a resident must have reached to register.
const MinimumAge = 18

const (
	minYear      = 1900
	maxYear      = 2100
	brDateLayout = "02/01/2006"
)

var datePattern = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01])/(0[1-9]|1[0-2])/(\d{4})$`)

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func ValidateDate(date string) bool {
	_, ok := ParseDate(date)
	return ok
}

// ParseDate parses a calendar-correct DD/MM/YYYY date as midnight UTC.
func ParseDate(date string) (time.Time, bool) {
	match := datePattern.FindStringSubmatch(date)
	if match == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])
	if year < minYear || year > maxYear {
		return time.Time{}, false
	}

	maxDay := daysInMonth[month-1]
	if month == 2 && isLeapYear(year) {
		maxDay = 29
	}
	if day > maxDay {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

func isLeapYear(year int) bool {
	return year%400 == 0 || (year%100 != 0 && year%4 == 0)
}

func CalculateAge(birth time.Time, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

func ValidateAge(birthDate string) bool {
	return ValidateAgeAt(birthDate, time.Now())
}

func ValidateAgeAt(birthDate string, now time.Time) bool {
	birth, ok := ParseDate(birthDate)
	if !ok {
		return false
	}
	return CalculateAge(birth, now) >= MinimumAge
}

// ValidateFutureDate accepts a valid date falling on now's calendar day or later.
func ValidateFutureDate(date string, now time.Time) bool {
	parsed, ok := ParseDate(date)
	if !ok {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !parsed.Before(today)
}

func FormatDateBR(t time.Time) string {
	return t.Format(brDateLayout)
}
