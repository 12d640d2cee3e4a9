package page_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforcehq/jobboard/business/sdk/page"
)

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p, err := page.Parse("", "")
		require.NoError(t, err)
		assert.Equal(t, 1, p.Number())
		assert.Equal(t, 10, p.RowsPerPage())
	})

	t.Run("explicit values", func(t *testing.T) {
		p, err := page.Parse("3", "25")
		require.NoError(t, err)
		assert.Equal(t, 3, p.Number())
		assert.Equal(t, 25, p.RowsPerPage())
	})

	tests := []struct {
		name string
		page string
		rows string
	}{
		{"page zero", "0", "10"},
		{"negative page", "-1", "10"},
		{"rows zero", "1", "0"},
		{"rows over cap", "1", "101"},
		{"non numeric page", "x", "10"},
		{"non numeric rows", "1", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := page.Parse(tt.page, tt.rows)
			assert.Error(t, err)
		})
	}
}
