// Package module represents the optional capability areas a tenant can have
// enabled, together with their human display names.
package module

import (
	"fmt"
	"sort"
	"strings"
)

// The set of modules that can be enabled for a tenant.
var (
	Jobs       = newModule("jobs", "Job Board")
	Contrats   = newModule("contrats", "Contracts")
	Timesheets = newModule("timesheets", "Timesheets")
)

// =============================================================================

// Set of known modules.
var modules = make(map[string]Module)

// Module represents an optional capability area in the system.
type Module struct {
	code string
	name string
}

func newModule(code string, name string) Module {
	m := Module{code: code, name: name}
	modules[code] = m
	return m
}

// String returns the code of the module.
func (m Module) String() string {
	return m.code
}

// Name returns the human display name of the module.
func (m Module) Name() string {
	return m.name
}

// Equal provides support for the go-cmp package and testing.
func (m Module) Equal(m2 Module) bool {
	return m.code == m2.code
}

// MarshalText provides support for logging and any marshal needs.
func (m Module) MarshalText() ([]byte, error) {
	return []byte(m.code), nil
}

// =============================================================================

// Parse parses the string value and returns a module if one exists.
func Parse(value string) (Module, error) {
	m, exists := modules[value]
	if !exists {
		return Module{}, fmt.Errorf("invalid module %q", value)
	}

	return m, nil
}

// MustParse parses the string value and returns a module if one exists. If
// an error occurs the function panics.
func MustParse(value string) Module {
	m, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return m
}

// =============================================================================

// Set represents the modules enabled for a tenant, each with the set of
// sub-features unlocked by the tenant's subscription tier.
type Set struct {
	features map[string]map[string]struct{}
}

// ParseSet parses a serialized module set in the form
// "jobs:featured,webhooks;contrats" into a Set value.
func ParseSet(value string) (Set, error) {
	set := Set{features: make(map[string]map[string]struct{})}

	if value == "" {
		return set, nil
	}

	for _, part := range strings.Split(value, ";") {
		code, featureList, _ := strings.Cut(part, ":")

		m, err := Parse(strings.TrimSpace(code))
		if err != nil {
			return Set{}, fmt.Errorf("parse set: %w", err)
		}

		features := make(map[string]struct{})
		if featureList != "" {
			for _, f := range strings.Split(featureList, ",") {
				features[strings.TrimSpace(f)] = struct{}{}
			}
		}

		set.features[m.code] = features
	}

	return set, nil
}

// MustParseSet parses a serialized module set and panics on failure.
func MustParseSet(value string) Set {
	set, err := ParseSet(value)
	if err != nil {
		panic(err)
	}

	return set
}

// String serializes the set back into its storage form.
func (s Set) String() string {
	parts := make([]string, 0, len(s.features))

	for code, features := range s.features {
		if len(features) == 0 {
			parts = append(parts, code)
			continue
		}

		fs := make([]string, 0, len(features))
		for f := range features {
			fs = append(fs, f)
		}
		sort.Strings(fs)
		parts = append(parts, code+":"+strings.Join(fs, ","))
	}

	sort.Strings(parts)

	return strings.Join(parts, ";")
}

// Has reports whether the module is enabled in the set.
func (s Set) Has(m Module) bool {
	_, exists := s.features[m.code]
	return exists
}

// HasFeature reports whether the named sub-feature of the module is enabled.
func (s Set) HasFeature(m Module, feature string) bool {
	features, exists := s.features[m.code]
	if !exists {
		return false
	}

	_, exists = features[feature]
	return exists
}

// Modules returns the enabled modules in the set.
func (s Set) Modules() []Module {
	ms := make([]Module, 0, len(s.features))
	for code := range s.features {
		ms = append(ms, modules[code])
	}
	return ms
}
