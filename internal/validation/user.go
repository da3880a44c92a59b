package validation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	// MaxNameLen максимальная длина имени в символах
	MaxNameLen = 64
	// MinAge минимальный возраст
	MinAge = 0
	// MaxAge максимальный возраст
	MaxAge = 150
)

// NormalizeName обрезает пробелы и приводит имя к NFC,
// чтобы одинаковые на вид имена совпадали побайтно
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// ValidateName проверяет имя пользователя
// Непустое после trim, не длиннее MaxNameLen символов, только печатные символы
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if !utf8.ValidString(name) {
		return fmt.Errorf("name must be valid UTF-8")
	}

	if utf8.RuneCountInString(name) > MaxNameLen {
		return fmt.Errorf("name must not exceed %d characters", MaxNameLen)
	}

	for _, r := range name {
		if !unicode.IsPrint(r) {
			return fmt.Errorf("name contains non-printable character %q", r)
		}
	}

	return nil
}

// ValidateAge проверяет диапазон возраста
func ValidateAge(age int) error {
	if age < MinAge || age > MaxAge {
		return fmt.Errorf("age must be between %d and %d", MinAge, MaxAge)
	}
	return nil
}

// ValidateUser проверяет имя и возраст
func ValidateUser(name string, age int) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return ValidateAge(age)
}

// ParseAge разбирает возраст из пользовательского ввода
func ParseAge(s string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("age must be a number: %q", s)
	}
	if err := ValidateAge(age); err != nil {
		return 0, err
	}
	return age, nil
}

// ParseID разбирает id записи; временные id отрицательны
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be an integer: %q", s)
	}
	return id, nil
}
