package module_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforcehq/jobboard/business/types/module"
)

func TestParseSetRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "", ""},
		{"single module", "jobs", "jobs"},
		{"module with features", "jobs:featured,webhooks", "jobs:featured,webhooks"},
		{"multiple modules", "jobs:webhooks;contrats", "contrats;jobs:webhooks"},
		{"features sorted", "jobs:webhooks,featured", "jobs:featured,webhooks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := module.ParseSet(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, set.String())
		})
	}
}

func TestParseSetUnknownModule(t *testing.T) {
	_, err := module.ParseSet("payroll")
	assert.Error(t, err)
}

func TestSetHas(t *testing.T) {
	set := module.MustParseSet("jobs:featured;contrats")

	assert.True(t, set.Has(module.Jobs))
	assert.True(t, set.Has(module.Contrats))
	assert.False(t, set.Has(module.Timesheets))

	assert.True(t, set.HasFeature(module.Jobs, "featured"))
	assert.False(t, set.HasFeature(module.Jobs, "webhooks"))
	assert.False(t, set.HasFeature(module.Contrats, "anything"))
	assert.False(t, set.HasFeature(module.Timesheets, "anything"))
}

func TestParse(t *testing.T) {
	m, err := module.Parse("jobs")
	require.NoError(t, err)
	assert.Equal(t, "jobs", m.String())
	assert.Equal(t, "Job Board", m.Name())

	_, err = module.Parse("nope")
	assert.Error(t, err)
}
