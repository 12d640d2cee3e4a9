// Package jobtype represents the employment type of a job posting.
package jobtype

import "fmt"

// The set of employment types that can be used.
var (
	FullTime   = newType("full_time")
	PartTime   = newType("part_time")
	Contract   = newType("contract")
	Internship = newType("internship")
	Temporary  = newType("temporary")
)

// =============================================================================

// Set of known types.
var types = make(map[string]Type)

// Type represents an employment type in the system.
type Type struct {
	value string
}

func newType(jobType string) Type {
	t := Type{jobType}
	types[jobType] = t
	return t
}

// String returns the name of the employment type.
func (t Type) String() string {
	return t.value
}

// Equal provides support for the go-cmp package and testing.
func (t Type) Equal(t2 Type) bool {
	return t.value == t2.value
}

// MarshalText provides support for logging and any marshal needs.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.value), nil
}

// =============================================================================

// Parse parses the string value and returns an employment type if one exists.
func Parse(value string) (Type, error) {
	t, exists := types[value]
	if !exists {
		return Type{}, fmt.Errorf("invalid job type %q", value)
	}

	return t, nil
}

// MustParse parses the string value and returns an employment type if one
// exists. If an error occurs the function panics.
func MustParse(value string) Type {
	t, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return t
}
