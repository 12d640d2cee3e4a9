// Package phone represents a candidate or user phone number. Numbers arrive
// from public forms in many shapes, so parsing normalizes them to digits with
// an optional leading + before storage.
package phone

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"
)

// Phone represents a normalized phone number.
type Phone struct {
	value string
}

// String returns the value of the phone number.
func (p Phone) String() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Phone) Equal(p2 Phone) bool {
	return p.value == p2.value
}

// MarshalText provides support for logging and any marshal needs.
func (p Phone) MarshalText() ([]byte, error) {
	return []byte(p.value), nil
}

// =============================================================================

// normalize strips spaces, dots, hyphens and parentheses, keeping digits and
// a single leading +. It returns an error when what remains is not a
// plausible number.
func normalize(value string) (string, error) {
	var b strings.Builder
	b.Grow(len(value))

	for i, r := range value {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return "", fmt.Errorf("invalid phone %q", value)
		}
	}

	digits := strings.TrimPrefix(b.String(), "+")
	if len(digits) < 6 || len(digits) > 15 {
		return "", fmt.Errorf("invalid phone %q", value)
	}

	return b.String(), nil
}

// Parse parses the string value and returns a phone number if the value
// complies with the rules for a phone number.
func Parse(value string) (Phone, error) {
	normalized, err := normalize(value)
	if err != nil {
		return Phone{}, err
	}

	return Phone{normalized}, nil
}

// MustParse parses the string value and returns a phone number if the value
// complies with the rules for a phone number. If an error occurs the function
// panics.
func MustParse(value string) Phone {
	phone, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return phone
}

// =============================================================================

// Null represents a phone number in the system that can be empty.
type Null struct {
	value string
	valid bool
}

// ToSQLNullString converts a Null value to a sql NullString.
func ToSQLNullString(n Null) sql.NullString {
	return sql.NullString{
		String: n.value,
		Valid:  n.valid,
	}
}

// String returns the value of the phone number.
func (n Null) String() string {
	if !n.valid {
		return "NULL"
	}

	return n.value
}

// Equal provides support for the go-cmp package and testing.
func (n Null) Equal(n2 Null) bool {
	return n.value == n2.value && n.valid == n2.valid
}

// MarshalText provides support for logging and any marshal needs.
func (n Null) MarshalText() ([]byte, error) {
	return []byte(n.value), nil
}

// =============================================================================

// ParseNull parses the string value and returns a phone number if the value
// complies with the rules for a phone number. An empty value is a valid null.
func ParseNull(value string) (Null, error) {
	if value == "" {
		return Null{}, nil
	}

	normalized, err := normalize(value)
	if err != nil {
		return Null{}, err
	}

	return Null{normalized, true}, nil
}

// MustParseNull parses the string value and returns a phone number if the
// value complies with the rules for a phone number. If an error occurs the
// function panics.
func MustParseNull(value string) Null {
	phone, err := ParseNull(value)
	if err != nil {
		panic(err)
	}

	return phone
}
