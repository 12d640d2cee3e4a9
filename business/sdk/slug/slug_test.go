package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/workforcehq/jobboard/business/sdk/slug"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"simple", "Senior Go Developer", "senior-go-developer"},
		{"punctuation folded", "DevOps / SRE (Remote)", "devops-sre-remote"},
		{"leading trailing junk", "  --Data Analyst--  ", "data-analyst"},
		{"digits kept", "Engineer L3", "engineer-l3"},
		{"empty", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Make(tt.text))
		})
	}
}

func TestMakeUnique(t *testing.T) {
	a := slug.MakeUnique("Senior Go Developer")
	b := slug.MakeUnique("Senior Go Developer")

	assert.True(t, strings.HasPrefix(a, "senior-go-developer-"))
	assert.NotEqual(t, a, b)

	// An empty base still yields a usable slug.
	c := slug.MakeUnique("!!!")
	assert.Len(t, c, 8)
}
