package employee

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// idLayout renders the local time as YYYYMMDDHHMMSS.
const idLayout = "20060102150405"

// Name holds the structured parts of an employee name. The flat schema keeps
// the whole display name in First.
type Name struct {
	First  string
	Middle string
	Last   string
}

// Full joins the non-empty name parts with single spaces.
func (n Name) Full() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{n.First, n.Middle, n.Last} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Address holds up to two address lines plus an optional country.
type Address struct {
	Line1   string
	Line2   string
	Country string
}

// Record is one employee entry exchanged with the remote service.
type Record struct {
	ID      string
	Name    Name
	Age     int
	Title   string
	Address Address
	Misc    string
}

// NewID returns a caller-generated identifier derived from t.
func NewID(t time.Time) string {
	return t.Format(idLayout)
}

// ErrInvalidAge is returned when non-blank age input is not an integer.
var ErrInvalidAge = errors.New("age must be a whole number")

// ParseAge coerces form input to an age. Blank input maps to zero.
func ParseAge(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	age, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAge, trimmed)
	}
	return age, nil
}

// FieldError reports a column whose text could not be mapped onto a Record.
type FieldError struct {
	Column string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Column, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
