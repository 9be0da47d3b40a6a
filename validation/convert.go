package validation

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

func ParseStringToInt64(str string) (int64, error) {
	if str == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, err
	}
	return value, nil
}

func ParseStringToInt32(str string) (int32, error) {
	if str == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(str, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(value), nil
}

func ParseNullStringToFloat(nullString sql.NullString) (float64, error) {
	if nullString.Valid {
		return strconv.ParseFloat(nullString.String, 64)
	}
	return 0, fmt.Errorf("valor nulo")
}

func ParseStringToFloat(text string) (float64, error) {
	return strconv.ParseFloat(text, 64)
}

func GetStringFromNull(nullString sql.NullString) string {
	if nullString.Valid {
		return nullString.String
	}
	return ""
}

func NewNullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// OnlyDigits remove tudo que não for dígito.
func OnlyDigits(s string) string {
	re := regexp.MustCompile(`\D`)
	return re.ReplaceAllString(s, "")
}

func RemoveHTMLTags(s string) string {
	re := regexp.MustCompile(`<[^>]*>`)
	return re.ReplaceAllString(s, "")
}
