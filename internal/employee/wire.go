package employee

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

var jsonNull = []byte("null")

// idText decodes an identifier sent as either a JSON string or number and
// always encodes it as a string.
type idText string

func (id *idText) UnmarshalJSON(b []byte) error {
	s, err := scalarText(b)
	if err != nil {
		return fmt.Errorf("identifier: %w", err)
	}
	*id = idText(s)
	return nil
}

// idNumber behaves like idText on decode but encodes identifiers in canonical
// integer form as JSON numbers. Anything else, including digits with a leading
// zero, stays a string so it survives a round trip unchanged.
type idNumber string

func (id idNumber) MarshalJSON() ([]byte, error) {
	s := strings.TrimSpace(string(id))
	if isCanonicalInt(s) {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

func (id *idNumber) UnmarshalJSON(b []byte) error {
	s, err := scalarText(b)
	if err != nil {
		return fmt.Errorf("identifier: %w", err)
	}
	*id = idNumber(s)
	return nil
}

// ageNumber encodes as a JSON number and tolerates numeric strings, blank
// strings and null on decode. Values that are not whole numbers decode as 0.
type ageNumber int

func (a *ageNumber) UnmarshalJSON(b []byte) error {
	*a = ageNumber(lenientAge(b))
	return nil
}

// ageText is the legacy form: the age travels as text.
type ageText int

func (a ageText) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.Itoa(int(a)))
}

func (a *ageText) UnmarshalJSON(b []byte) error {
	*a = ageText(lenientAge(b))
	return nil
}

// text decodes any JSON scalar into a string. Booleans keep their literal
// form; objects and arrays keep their compact JSON text.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	s, err := scalarText(b)
	if err != nil {
		var buf bytes.Buffer
		if err := json.Compact(&buf, b); err != nil {
			return err
		}
		s = buf.String()
	}
	*t = text(s)
	return nil
}

// lenientAge is lenientInt with the error logged and replaced by 0.
func lenientAge(b []byte) int {
	n, err := lenientInt(b)
	if err != nil {
		log.Warn().Err(err).Str("value", string(b)).Msg("unparsable age, using 0")
		return 0
	}
	return n
}

func lenientInt(b []byte) (int, error) {
	s, err := scalarText(b)
	if err != nil {
		return 0, fmt.Errorf("age: %w", err)
	}
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("age: %w", err)
		}
		return int(f), nil
	}
	n, err := ParseAge(s)
	if err != nil {
		return 0, fmt.Errorf("age: %w", err)
	}
	return n, nil
}

// scalarText returns the text of a JSON string or number; null yields "".
func scalarText(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, jsonNull) {
		return "", nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return "", fmt.Errorf("expected string or number, got %s", b)
	}
	return n.String(), nil
}

func isCanonicalInt(s string) bool {
	if s == "" || len(s) > 18 {
		return false
	}
	if s == "0" {
		return true
	}
	if s[0] == '0' {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
